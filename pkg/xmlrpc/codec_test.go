package xmlrpc

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalCall(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
<methodCall>
  <methodName>metaWeblog.newPost</methodName>
  <params>
    <param><value><string>blog</string></value></param>
    <param><value>admin</value></param>
    <param><value><string>secret</string></value></param>
    <param><value><struct>
      <member><name>title</name><value><string>Hello &amp; Welcome</string></value></member>
      <member><name>dateCreated</name><value><dateTime.iso8601>20240315T09:30:00</dateTime.iso8601></value></member>
      <member><name>categories</name><value><array><data>
        <value><string>go</string></value>
        <value><string>cms</string></value>
      </data></array></value></member>
    </struct></value></param>
    <param><value><boolean>1</boolean></value></param>
  </params>
</methodCall>`)

	method, params, err := UnmarshalCall(body)
	require.NoError(t, err)
	assert.Equal(t, "metaWeblog.newPost", method)
	require.Len(t, params, 5)

	assert.Equal(t, "blog", params[0].AsString())
	assert.Equal(t, "admin", params[1].AsString(), "bare value decodes as string")
	assert.Equal(t, "secret", params[2].AsString())

	content := params[3]
	require.Equal(t, KindStruct, content.Kind)
	title, ok := content.Member("title")
	require.True(t, ok)
	assert.Equal(t, "Hello & Welcome", title.AsString())

	stamp, ok := content.Member("dateCreated")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC), stamp.Time)

	cats, ok := content.Member("categories")
	require.True(t, ok)
	assert.Equal(t, []string{"go", "cms"}, cats.AsStrings())

	assert.True(t, params[4].AsBool())
}

func TestUnmarshalCallScalars(t *testing.T) {
	body := []byte(`<methodCall><methodName>m</methodName><params>
		<param><value><i4>42</i4></value></param>
		<param><value><int> 7 </int></value></param>
		<param><value><double>2.5</double></value></param>
		<param><value><boolean>0</boolean></value></param>
		<param><value><base64>aGVsbG8=</base64></value></param>
	</params></methodCall>`)

	_, params, err := UnmarshalCall(body)
	require.NoError(t, err)
	require.Len(t, params, 5)
	assert.Equal(t, 42, params[0].Int)
	assert.Equal(t, 7, params[1].Int)
	assert.Equal(t, 2.5, params[2].Double)
	assert.False(t, params[3].AsBool())
	assert.Equal(t, []byte("hello"), params[4].Bytes)
}

func TestUnmarshalCallBase64WithLineBreaks(t *testing.T) {
	body := []byte(`<methodCall><methodName>m</methodName><params>
		<param><value><base64>
aGVs
bG8=
		</base64></value></param>
	</params></methodCall>`)

	_, params, err := UnmarshalCall(body)
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, []byte("hello"), params[0].Bytes)
}

func TestUnmarshalCallRejectsGarbage(t *testing.T) {
	_, _, err := UnmarshalCall([]byte("this is not xml"))
	assert.Error(t, err)

	_, _, err = UnmarshalCall([]byte("<methodCall><params></params></methodCall>"))
	assert.Error(t, err, "a call without a methodName is malformed")

	_, _, err = UnmarshalCall([]byte(`<methodCall><methodName>m</methodName><params>
		<param><value><int>not-a-number</int></value></param>
	</params></methodCall>`))
	assert.Error(t, err)
}

func TestDecodeTimeLayouts(t *testing.T) {
	tests := []string{
		"20240315T09:30:00",
		"2024-03-15T09:30:00",
		"2024-03-15T09:30:00Z",
	}
	for _, input := range tests {
		v, err := decodeTime(input)
		require.NoError(t, err, input)
		assert.Equal(t, 2024, v.Time.Year())
		assert.Equal(t, 9, v.Time.Hour())
	}

	_, err := decodeTime("yesterday")
	assert.Error(t, err)
}

func TestMarshalResponse(t *testing.T) {
	out, err := MarshalResponse(map[string]any{
		"postid":   "blog#hello",
		"answer":   42,
		"enabled":  true,
		"weight":   1.5,
		"keywords": []string{"a", "b"},
		"when":     time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<methodResponse><params><param>")
	assert.Contains(t, s, "<member><name>postid</name><value><string>blog#hello</string></value></member>")
	assert.Contains(t, s, "<int>42</int>")
	assert.Contains(t, s, "<boolean>1</boolean>")
	assert.Contains(t, s, "<double>1.5</double>")
	assert.Contains(t, s, "<dateTime.iso8601>20240315T09:30:00</dateTime.iso8601>")
	assert.Contains(t, s, "<array><data><value><string>a</string></value><value><string>b</string></value></data></array>")
}

func TestMarshalResponseEscapes(t *testing.T) {
	out, err := MarshalResponse("a <b> & c")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<string>a &lt;b&gt; &amp; c</string>")
}

func TestMarshalResponseRejectsUnknownType(t *testing.T) {
	_, err := MarshalResponse(struct{}{})
	assert.Error(t, err)
}

func TestMarshalResponseRoundTripsThroughDecode(t *testing.T) {
	out, err := MarshalResponse([]any{
		map[string]any{"name": "x", "count": 3},
		"tail",
	})
	require.NoError(t, err)

	// a response body decodes with the same value machinery as a call
	wrapped := strings.ReplaceAll(string(out), "methodResponse", "methodCall")
	wrapped = strings.Replace(wrapped, "<params>", "<methodName>m</methodName><params>", 1)

	_, params, err := UnmarshalCall([]byte(wrapped))
	require.NoError(t, err)
	require.Len(t, params, 1)
	require.Equal(t, KindArray, params[0].Kind)
	require.Len(t, params[0].List, 2)

	first := params[0].List[0]
	name, ok := first.Member("name")
	require.True(t, ok)
	assert.Equal(t, "x", name.AsString())
	count, ok := first.Member("count")
	require.True(t, ok)
	assert.Equal(t, 3, count.Int)
	assert.Equal(t, "tail", params[0].List[1].AsString())
}

func TestMarshalFault(t *testing.T) {
	out := MarshalFault(NewFault(403, "bad login for %q", "alice"))
	s := string(out)
	assert.Contains(t, s, "<fault>")
	assert.Contains(t, s, "<member><name>faultCode</name><value><int>403</int></value></member>")
	assert.Contains(t, s, `bad login for &#34;alice&#34;`)
}
