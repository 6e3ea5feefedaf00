package xmlrpc

import "time"

// Kind identifies which XML-RPC scalar or compound a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindDouble
	KindTime
	KindBase64
	KindArray
	KindStruct
)

// Value is one decoded XML-RPC value. Only the field matching Kind is set.
type Value struct {
	Kind   Kind
	Str    string
	Int    int
	Bool   bool
	Double float64
	Time   time.Time
	Bytes  []byte
	List   []Value
	Map    map[string]Value
}

// AsString returns the value as a string when it is one, else "".
func (v Value) AsString() string {
	if v.Kind == KindString {
		return v.Str
	}
	return ""
}

// AsInt converts int and double values to an int.
func (v Value) AsInt() int {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindDouble:
		return int(v.Double)
	}
	return 0
}

// AsBool accepts native booleans as well as the 0/1 integers some clients
// send for the publish flag.
func (v Value) AsBool() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindString:
		return v.Str == "1" || v.Str == "true"
	}
	return false
}

// AsStrings flattens an array value into its string elements.
func (v Value) AsStrings() []string {
	if v.Kind != KindArray {
		return nil
	}
	out := make([]string, 0, len(v.List))
	for _, item := range v.List {
		out = append(out, item.AsString())
	}
	return out
}

// Member looks up a struct member by name.
func (v Value) Member(name string) (Value, bool) {
	if v.Kind != KindStruct {
		return Value{}, false
	}
	m, ok := v.Map[name]
	return m, ok
}
