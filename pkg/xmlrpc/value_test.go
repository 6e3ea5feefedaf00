package xmlrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueAsBool(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"native true", Value{Kind: KindBool, Bool: true}, true},
		{"native false", Value{Kind: KindBool}, false},
		{"int one", Value{Kind: KindInt, Int: 1}, true},
		{"int zero", Value{Kind: KindInt}, false},
		{"string one", Value{Kind: KindString, Str: "1"}, true},
		{"string true", Value{Kind: KindString, Str: "true"}, true},
		{"string zero", Value{Kind: KindString, Str: "0"}, false},
		{"struct", Value{Kind: KindStruct}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.AsBool())
		})
	}
}

func TestValueAsInt(t *testing.T) {
	assert.Equal(t, 5, Value{Kind: KindInt, Int: 5}.AsInt())
	assert.Equal(t, 3, Value{Kind: KindDouble, Double: 3.9}.AsInt())
	assert.Equal(t, 0, Value{Kind: KindString, Str: "5"}.AsInt())
}

func TestValueMember(t *testing.T) {
	v := Value{Kind: KindStruct, Map: map[string]Value{
		"title": {Kind: KindString, Str: "x"},
	}}

	m, ok := v.Member("title")
	assert.True(t, ok)
	assert.Equal(t, "x", m.Str)

	_, ok = v.Member("missing")
	assert.False(t, ok)

	_, ok = Value{Kind: KindArray}.Member("title")
	assert.False(t, ok)
}

func TestValueAsStrings(t *testing.T) {
	v := Value{Kind: KindArray, List: []Value{
		{Kind: KindString, Str: "a"},
		{Kind: KindString, Str: "b"},
	}}
	assert.Equal(t, []string{"a", "b"}, v.AsStrings())
	assert.Nil(t, Value{Kind: KindString}.AsStrings())
}
