package canonical

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Sum is a SHA-256 digest.
type Sum [sha256.Size]byte

// Hex returns the lowercase hex encoding of the digest.
func (s Sum) Hex() string {
	return hex.EncodeToString(s[:])
}

// Uint64 folds the digest to its first eight bytes, big-endian.
func (s Sum) Uint64() uint64 {
	return binary.BigEndian.Uint64(s[:8])
}

// HashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + parts...)
// The null separator prevents domain/data boundary ambiguity.
func HashWithDomain(domain string, parts ...[]byte) Sum {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	for _, p := range parts {
		h.Write(p)
	}
	var sum Sum
	h.Sum(sum[:0])
	return sum
}
