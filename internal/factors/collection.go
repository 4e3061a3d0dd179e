package factors

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/roach88/walletkit/internal/canonical"
)

// FactorSources is an ordered, immutable collection of factor sources.
//
// Equality is structural: same length and equal elements at every index.
// Construction never reorders or de-duplicates; use
// NewIdentifiedFactorSources to reject duplicates instead.
type FactorSources struct {
	items []FactorSource
}

// NewFactorSources copies items into a new collection, preserving order.
func NewFactorSources(items ...FactorSource) FactorSources {
	cloned := make([]FactorSource, len(items))
	for i, fs := range items {
		cloned[i] = fs.Clone()
	}
	return FactorSources{items: cloned}
}

// NewIdentifiedFactorSources is like NewFactorSources but rejects repeated
// values and distinct values sharing an id.
func NewIdentifiedFactorSources(items ...FactorSource) (FactorSources, error) {
	seen := make(map[FactorSourceIDFromHash]FactorSource, len(items))
	for i, fs := range items {
		prev, ok := seen[fs.ID()]
		if !ok {
			seen[fs.ID()] = fs
			continue
		}
		if prev.Equal(fs) {
			return FactorSources{}, fmt.Errorf("index %d: %w", i, ErrDuplicateValuesFound)
		}
		return FactorSources{}, fmt.Errorf("index %d: %s: %w", i, fs.ID(), ErrDuplicateIDOfValuesFound)
	}
	return NewFactorSources(items...), nil
}

// WithBDFS builds a single-element collection from the main Babylon device
// factor source.
func WithBDFS(d DeviceFactorSource) (FactorSources, error) {
	if !d.IsMainBDFS() {
		return FactorSources{}, fmt.Errorf("%s: %w", d.ID, ErrNotMainBDFS)
	}
	return NewFactorSources(FromDevice(d)), nil
}

// Len returns the number of factor sources.
func (c FactorSources) Len() int {
	return len(c.items)
}

// At returns a copy of the element at index i. Panics if i is out of range.
func (c FactorSources) At(i int) FactorSource {
	return c.items[i].Clone()
}

// All iterates over copies of the elements in order.
func (c FactorSources) All() iter.Seq2[int, FactorSource] {
	return func(yield func(int, FactorSource) bool) {
		for i, fs := range c.items {
			if !yield(i, fs.Clone()) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements.
func (c FactorSources) Slice() []FactorSource {
	out := make([]FactorSource, len(c.items))
	for i, fs := range c.items {
		out[i] = fs.Clone()
	}
	return out
}

// Validate returns ErrEmpty for an empty collection.
func (c FactorSources) Validate() error {
	if len(c.items) == 0 {
		return ErrEmpty
	}
	return nil
}

// AssertNotEmpty panics if the collection is empty, which must never happen
// for a collection owned by a profile.
func (c FactorSources) AssertNotEmpty() {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("FactorSources empty, which must never happen: %v", err))
	}
}

// Equal reports structural equality.
func (c FactorSources) Equal(other FactorSources) bool {
	if len(c.items) != len(other.items) {
		return false
	}
	for i := range c.items {
		if !c.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// Digest hashes the length followed by each element digest, in order.
// Format: SHA256(DomainFactorSources + 0x00 + uint64be(len) + digest_0 + ... + digest_n)
func (c FactorSources) Digest() canonical.Sum {
	parts := make([][]byte, 0, len(c.items)+1)
	parts = append(parts, binary.BigEndian.AppendUint64(nil, uint64(len(c.items))))
	for _, fs := range c.items {
		d := fs.Digest()
		parts = append(parts, d[:])
	}
	return canonical.HashWithDomain(DomainFactorSources, parts...)
}

// Hash folds Digest to 64 bits. Equal collections have equal hashes.
func (c FactorSources) Hash() uint64 {
	return c.Digest().Uint64()
}

func (c FactorSources) String() string {
	ids := make([]string, len(c.items))
	for i, fs := range c.items {
		ids[i] = fs.ID().String()
	}
	return "FactorSources[" + strings.Join(ids, ", ") + "]"
}

// Canonical returns the canonical array of element trees.
func (c FactorSources) Canonical() canonical.Array {
	arr := make(canonical.Array, len(c.items))
	for i, fs := range c.items {
		arr[i] = fs.Canonical()
	}
	return arr
}

// MarshalJSON emits the canonical form.
func (c FactorSources) MarshalJSON() ([]byte, error) {
	return canonical.Marshal(c.Canonical())
}

// UnmarshalJSON decodes a JSON array of factor sources, preserving order
// and duplicates.
func (c *FactorSources) UnmarshalJSON(data []byte) error {
	var items []FactorSource
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("factor sources: %w", err)
	}
	*c = FactorSources{items: items}
	return nil
}
