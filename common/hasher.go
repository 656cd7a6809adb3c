package common

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// KeccakHasher hashes packed tuples with keccak256, matching what the
// on-chain side computes. This is the default engine hasher.
type KeccakHasher struct{}

func (KeccakHasher) Hash(values ...interface{}) common.Hash {
	return crypto.Keccak256Hash(EncodePacked(values...))
}

// Sha3Hasher uses standard SHA3-256. Deployments that pair with a
// non-EVM counterpart chain can select it instead of keccak.
type Sha3Hasher struct{}

func (Sha3Hasher) Hash(values ...interface{}) common.Hash {
	return common.Hash(sha3.Sum256(EncodePacked(values...)))
}
