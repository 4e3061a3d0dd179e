package factors

import (
	"encoding/hex"
	"fmt"

	"github.com/roach88/walletkit/internal/canonical"
)

// Hash32 is a 32-byte hash, rendered as lowercase hex.
type Hash32 [32]byte

// ParseHash32 decodes a 64-character hex string.
func ParseHash32(s string) (Hash32, error) {
	var h Hash32
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidHash, len(h), len(b))
	}
	copy(h[:], b)
	return h, nil
}

// MustParseHash32 is like ParseHash32 but panics on error.
// Use only for fixed constants.
func MustParseHash32(s string) Hash32 {
	h, err := ParseHash32(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Hex returns the lowercase hex encoding.
func (h Hash32) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash32) String() string {
	return h.Hex()
}

// FactorSourceIDFromHash identifies a factor source by the hash of a special
// child key of the HD root of its mnemonic. Comparable; usable as a map key.
type FactorSourceIDFromHash struct {
	Kind FactorSourceKind
	Body Hash32
}

// NewFactorSourceIDFromHash returns an id of the given kind.
func NewFactorSourceIDFromHash(kind FactorSourceKind, body Hash32) FactorSourceIDFromHash {
	return FactorSourceIDFromHash{Kind: kind, Body: body}
}

func (id FactorSourceIDFromHash) String() string {
	return string(id.Kind) + ":" + id.Body.Hex()
}

func (id FactorSourceIDFromHash) canonical() canonical.Object {
	return canonical.Object{
		"kind": canonical.String(id.Kind),
		"body": canonical.String(id.Body.Hex()),
	}
}

type idJSON struct {
	Kind string `json:"kind"`
	Body string `json:"body"`
}

func (w idJSON) decode() (FactorSourceIDFromHash, error) {
	kind, err := parseKind(w.Kind)
	if err != nil {
		return FactorSourceIDFromHash{}, fmt.Errorf("id.kind: %w", err)
	}
	body, err := ParseHash32(w.Body)
	if err != nil {
		return FactorSourceIDFromHash{}, fmt.Errorf("id.body: %w", err)
	}
	return NewFactorSourceIDFromHash(kind, body), nil
}
