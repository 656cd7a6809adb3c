package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodePackedDeterministic(t *testing.T) {
	addr := RandAddress()
	h := RandHash()
	amount := big.NewInt(12345)

	a := EncodePacked(addr, amount, h, uint64(7))
	b := EncodePacked(addr, amount, h, uint64(7))
	assert.Equal(t, a, b)

	c := EncodePacked(addr, amount, h, uint64(8))
	assert.NotEqual(t, a, c)
}

func TestHashersDiffer(t *testing.T) {
	h := RandHash()
	assert.NotEqual(t, KeccakHasher{}.Hash(h), Sha3Hasher{}.Hash(h))

	// each is stable
	assert.Equal(t, KeccakHasher{}.Hash(h), KeccakHasher{}.Hash(h))
	assert.Equal(t, Sha3Hasher{}.Hash(h), Sha3Hasher{}.Hash(h))
}

func TestFitsI128(t *testing.T) {
	assert.True(t, FitsI128(big.NewInt(0)))
	assert.True(t, FitsI128(MaxI128))
	assert.True(t, FitsI128(MinI128))
	assert.False(t, FitsI128(new(big.Int).Add(MaxI128, big.NewInt(1))))
	assert.False(t, FitsI128(new(big.Int).Sub(MinI128, big.NewInt(1))))
}
