package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// wire-format time layouts. The first is the canonical XML-RPC form; the
// rest cover what real desktop clients actually send.
var timeLayouts = []string{
	"20060102T15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
}

const timeLayoutOut = "20060102T15:04:05"

type xmlCall struct {
	XMLName    xml.Name   `xml:"methodCall"`
	MethodName string     `xml:"methodName"`
	Params     []xmlValue `xml:"params>param>value"`
}

type xmlValue struct {
	Raw      string     `xml:",chardata"`
	Str      *string    `xml:"string"`
	I4       *string    `xml:"i4"`
	Int      *string    `xml:"int"`
	Boolean  *string    `xml:"boolean"`
	Double   *string    `xml:"double"`
	DateTime *string    `xml:"dateTime.iso8601"`
	Base64   *string    `xml:"base64"`
	Struct   *xmlStruct `xml:"struct"`
	Array    *xmlArray  `xml:"array"`
}

type xmlStruct struct {
	Members []xmlMember `xml:"member"`
}

type xmlMember struct {
	Name  string   `xml:"name"`
	Value xmlValue `xml:"value"`
}

type xmlArray struct {
	Values []xmlValue `xml:"data>value"`
}

// UnmarshalCall decodes a methodCall document into the method name and its
// positional parameters.
func UnmarshalCall(body []byte) (string, []Value, error) {
	var call xmlCall
	if err := xml.Unmarshal(body, &call); err != nil {
		return "", nil, fmt.Errorf("parsing method call: %w", err)
	}
	if call.MethodName == "" {
		return "", nil, fmt.Errorf("method call has no methodName")
	}

	params := make([]Value, 0, len(call.Params))
	for i, p := range call.Params {
		v, err := decodeValue(p)
		if err != nil {
			return "", nil, fmt.Errorf("param %d: %w", i, err)
		}
		params = append(params, v)
	}
	return call.MethodName, params, nil
}

func decodeValue(x xmlValue) (Value, error) {
	switch {
	case x.Str != nil:
		return Value{Kind: KindString, Str: *x.Str}, nil
	case x.I4 != nil:
		return decodeInt(*x.I4)
	case x.Int != nil:
		return decodeInt(*x.Int)
	case x.Boolean != nil:
		b := strings.TrimSpace(*x.Boolean)
		return Value{Kind: KindBool, Bool: b == "1" || b == "true"}, nil
	case x.Double != nil:
		d, err := strconv.ParseFloat(strings.TrimSpace(*x.Double), 64)
		if err != nil {
			return Value{}, fmt.Errorf("bad double %q", *x.Double)
		}
		return Value{Kind: KindDouble, Double: d}, nil
	case x.DateTime != nil:
		return decodeTime(*x.DateTime)
	case x.Base64 != nil:
		raw, err := base64.StdEncoding.DecodeString(collapseWhitespace(*x.Base64))
		if err != nil {
			return Value{}, fmt.Errorf("bad base64 value: %w", err)
		}
		return Value{Kind: KindBase64, Bytes: raw}, nil
	case x.Struct != nil:
		m := make(map[string]Value, len(x.Struct.Members))
		for _, member := range x.Struct.Members {
			v, err := decodeValue(member.Value)
			if err != nil {
				return Value{}, fmt.Errorf("member %q: %w", member.Name, err)
			}
			m[member.Name] = v
		}
		return Value{Kind: KindStruct, Map: m}, nil
	case x.Array != nil:
		list := make([]Value, 0, len(x.Array.Values))
		for i, item := range x.Array.Values {
			v, err := decodeValue(item)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			list = append(list, v)
		}
		return Value{Kind: KindArray, List: list}, nil
	default:
		// a bare <value>text</value> is a string per the XML-RPC spec
		return Value{Kind: KindString, Str: strings.TrimSpace(x.Raw)}, nil
	}
}

func decodeInt(s string) (Value, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Value{}, fmt.Errorf("bad int %q", s)
	}
	return Value{Kind: KindInt, Int: n}, nil
}

func decodeTime(s string) (Value, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Value{Kind: KindTime, Time: t}, nil
		}
	}
	return Value{}, fmt.Errorf("bad dateTime %q", s)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// MarshalResponse encodes a successful methodResponse carrying one value.
// Supported native types: string, int, bool, float64, time.Time, []byte,
// []any and map[string]any (nested).
func MarshalResponse(result any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<methodResponse><params><param>")
	if err := encodeValue(&buf, result); err != nil {
		return nil, err
	}
	buf.WriteString("</param></params></methodResponse>")
	return buf.Bytes(), nil
}

// MarshalFault encodes a methodResponse fault.
func MarshalFault(f *Fault) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<methodResponse><fault><value><struct>")
	buf.WriteString("<member><name>faultCode</name><value><int>")
	buf.WriteString(strconv.Itoa(f.Code))
	buf.WriteString("</int></value></member>")
	buf.WriteString("<member><name>faultString</name><value><string>")
	_ = xml.EscapeText(&buf, []byte(f.Message))
	buf.WriteString("</string></value></member>")
	buf.WriteString("</struct></value></fault></methodResponse>")
	return buf.Bytes()
}

func encodeValue(buf *bytes.Buffer, v any) error {
	buf.WriteString("<value>")
	defer buf.WriteString("</value>")

	switch t := v.(type) {
	case nil:
		buf.WriteString("<string></string>")
	case string:
		buf.WriteString("<string>")
		if err := xml.EscapeText(buf, []byte(t)); err != nil {
			return err
		}
		buf.WriteString("</string>")
	case int:
		fmt.Fprintf(buf, "<int>%d</int>", t)
	case int64:
		fmt.Fprintf(buf, "<int>%d</int>", t)
	case bool:
		if t {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	case float64:
		fmt.Fprintf(buf, "<double>%g</double>", t)
	case time.Time:
		buf.WriteString("<dateTime.iso8601>")
		buf.WriteString(t.Format(timeLayoutOut))
		buf.WriteString("</dateTime.iso8601>")
	case []byte:
		buf.WriteString("<base64>")
		buf.WriteString(base64.StdEncoding.EncodeToString(t))
		buf.WriteString("</base64>")
	case []string:
		buf.WriteString("<array><data>")
		for _, item := range t {
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("</data></array>")
	case []any:
		buf.WriteString("<array><data>")
		for _, item := range t {
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("</data></array>")
	case map[string]any:
		buf.WriteString("<struct>")
		for _, name := range sortedKeys(t) {
			buf.WriteString("<member><name>")
			if err := xml.EscapeText(buf, []byte(name)); err != nil {
				return err
			}
			buf.WriteString("</name>")
			if err := encodeValue(buf, t[name]); err != nil {
				return err
			}
			buf.WriteString("</member>")
		}
		buf.WriteString("</struct>")
	default:
		return fmt.Errorf("cannot encode value of type %T", v)
	}
	return nil
}

// deterministic member order keeps responses diffable in tests and logs
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
