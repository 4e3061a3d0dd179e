package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWithDomainDeterminism(t *testing.T) {
	data := []byte(`{"kind":"device"}`)

	h1 := HashWithDomain("walletkit/test/v1", data)
	h2 := HashWithDomain("walletkit/test/v1", data)

	assert.Equal(t, h1, h2, "hash must be deterministic")
	assert.Len(t, h1.Hex(), 64, "SHA-256 hex is 64 characters")
	assert.Equal(t, h1.Uint64(), h2.Uint64())
}

func TestDomainSeparationPreventsCrossTypeCollision(t *testing.T) {
	data := []byte(`{"kind":"device"}`)

	a := HashWithDomain("walletkit/factor_source/v1", data)
	b := HashWithDomain("walletkit/factor_sources/v1", data)

	assert.NotEqual(t, a, b)
}

func TestNullSeparatorPreventsBoundaryAmbiguity(t *testing.T) {
	// "ab"+"c" and "a"+"bc" would collide without the separator
	a := HashWithDomain("ab", []byte("c"))
	b := HashWithDomain("a", []byte("bc"))

	assert.NotEqual(t, a, b)
}

func TestHashWithDomainPartsConcatenate(t *testing.T) {
	joined := HashWithDomain("d", []byte("abc"))
	split := HashWithDomain("d", []byte("a"), []byte("bc"))

	assert.Equal(t, joined, split)
}

func TestSumUint64IsBigEndianPrefix(t *testing.T) {
	var s Sum
	s[0] = 0x01
	s[7] = 0xff
	s[8] = 0xaa // ignored

	assert.Equal(t, uint64(0x01000000000000ff), s.Uint64())
}

func TestHashKeyOrderIndependent(t *testing.T) {
	a, err := hashValue("d", objectOf(pair("a", Int(1)), pair("b", Int(2))))
	require.NoError(t, err)
	b, err := hashValue("d", objectOf(pair("b", Int(2)), pair("a", Int(1))))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestHashRejectsNull(t *testing.T) {
	_, err := hashValue("d", Array{nil})
	require.Error(t, err)
}
