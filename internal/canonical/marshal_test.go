package canonical

import (
	"testing"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"max int64", Int(9223372036854775807), "9223372036854775807"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"empty array", Array{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"strings", strs("main", "cap26"), `["main","cap26"]`},
		{"simple object", Object{"a": Int(1)}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalSortedKeys(t *testing.T) {
	obj := objectOf(
		pair("zebra", Int(1)),
		pair("alpha", Int(2)),
		pair("beta", Object{"b": Int(1), "a": Int(2)}),
	)

	result, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":{"a":2,"b":1},"zebra":1}`, string(result))
}

func TestMarshalUTF16Ordering(t *testing.T) {
	// U+E000 vs U+10000: UTF-16 order differs from UTF-8
	obj := Object{
		"\uE000":     Int(1),
		"\U00010000": Int(2), // surrogate pair 0xD800 0xDC00
	}

	result, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(result))
}

func TestMarshalArrayOrderPreserved(t *testing.T) {
	a := MustMarshal(strs("device", "ledgerHQHardwareWallet"))
	b := MustMarshal(strs("ledgerHQHardwareWallet", "device"))
	assert.NotEqual(t, a, b)
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	result, err := Marshal(String("Orange <scratched> & worn"))
	require.NoError(t, err)
	assert.Equal(t, `"Orange <scratched> & worn"`, string(result))
	assert.NotContains(t, string(result), `\u003c`)
	assert.NotContains(t, string(result), `\u0026`)
}

func TestMarshalLineSeparators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"line separator", "a\u2028b", "\"a\u2028b\""},
		{"paragraph separator", "a\u2029b", "\"a\u2029b\""},
		{"escaped backslash before u2028 text", `a\u2028b`, `"a\\u2028b"`},
		{"control character", "a\x01b", `"a\u0001b"`},
		{"newline", "a\nb", `"a\nb"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(String(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalNFCNormalization(t *testing.T) {
	composed := MustMarshal(String("\u00e9"))
	decomposed := MustMarshal(String("e\u0301"))
	assert.Equal(t, composed, decomposed)
}

func TestMarshalRejectsNull(t *testing.T) {
	_, err := Marshal(nil)
	require.Error(t, err)

	_, err = Marshal(Object{"hint": Array{String("ok"), nil}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `value for key "hint"`)
	assert.Contains(t, err.Error(), "array[1]")
}

func TestMustMarshalPanicsOnNull(t *testing.T) {
	assert.Panics(t, func() {
		MustMarshal(Array{nil})
	})
}

// The cyberphone reference canonicalizer re-serializes arbitrary JSON, so
// running our output through it must be a no-op.
func TestMarshalMatchesReferenceCanonicalizer(t *testing.T) {
	values := []Value{
		Object{
			"discriminator": String("device"),
			"device": Object{
				"hint": Object{
					"name":              String("Unknown Name"),
					"model":             String("iPhone"),
					"mnemonicWordCount": Int(24),
				},
				"common": Object{
					"flags": strs("main"),
				},
			},
		},
		Object{"\uE000": Int(1), "\U00010000": Int(2), "a": Bool(true)},
		Object{"html": String("<a href=\"x\">&</a>"), "sep": String("x\u2028y")},
		Array{Int(-7), Int(0), String("tab\there"), Array{}},
	}

	for _, v := range values {
		ours := MustMarshal(v)
		ref, err := cyberphone.Transform(ours)
		require.NoError(t, err)
		assert.Equal(t, string(ref), string(ours))
	}
}
