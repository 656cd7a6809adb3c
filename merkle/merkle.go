// Package merkle verifies the inclusion proofs gating partial fills.
package merkle

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
)

// VerifyProof folds the proof into the leaf with the sorted-pair rule:
// each step hashes (min, max) of the running hash and the proof element,
// compared as byte sequences. Sorting makes verification independent of
// the leaf position, so no sibling-side bits travel with the proof. The
// root must have been built with the same rule. An empty proof is valid
// only for the single-leaf tree where leaf == root.
func VerifyProof(hasher agreement.Hasher, proof []common.Hash, root common.Hash, leaf common.Hash) bool {
	computed := leaf

	for _, proofElement := range proof {
		if bytes.Compare(computed[:], proofElement[:]) < 0 {
			computed = hasher.Hash(computed, proofElement)
		} else {
			computed = hasher.Hash(proofElement, computed)
		}
	}

	return computed == root
}

// FillLeaf derives the authorization leaf for one (resolver, amount,
// nonce) fill slot. The nonce keeps equal-sized slots distinct so a
// proof cannot be replayed for another fill of the same size.
func FillLeaf(hasher agreement.Hasher, resolver common.Address, fillAmount *big.Int, nonce uint64) common.Hash {
	return hasher.Hash(resolver, fillAmount, nonce)
}
