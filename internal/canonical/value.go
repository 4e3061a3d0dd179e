package canonical

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types that have a canonical form.
// Only String, Int, Bool, Array and Object implement it.
type Value interface {
	canonicalValue() // Sealed
}

// String is a JSON string.
type String string

func (String) canonicalValue() {}

// Int is a JSON integer. Always int64, never float64.
type Int int64

func (Int) canonicalValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) canonicalValue() {}

// Array is an ordered list of values. Order is part of the value.
type Array []Value

func (Array) canonicalValue() {}

// Object maps string keys to values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) canonicalValue() {}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's sort.Strings orders by UTF-8 bytes, which differs for non-BMP runes.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
