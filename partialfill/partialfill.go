// Package partialfill implements the proof-gated fill execution and
// the fill-size distribution algorithm.
package partialfill

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/htlc"
	"github.com/StellarBridge-io/swap-engine-go/merkle"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

// Execute validates and applies one partial fill to the swap in place
// and returns the resolver reward. The caller persists the mutated swap
// and moves the funds; nothing here touches storage.
//
// The authorization leaf is Hash(resolver, fillAmount, nonce). The swap
// id is not part of the leaf, so a root shared between two swaps with
// overlapping slots would accept the same proof for either. Roots must
// be built per swap.
func Execute(
	hasher agreement.Hasher,
	swap *agreement.Swap,
	resolver ethcommon.Address,
	fillAmount *big.Int,
	merkleProof []ethcommon.Hash,
	nonce uint64,
	now uint64,
	rewardRateBps uint32,
) (*big.Int, error) {
	if err := htlc.ValidatePartialFill(swap, fillAmount, now); err != nil {
		return nil, err
	}

	leaf := merkle.FillLeaf(hasher, resolver, fillAmount, nonce)
	if !merkle.VerifyProof(hasher, merkleProof, swap.MerkleRoot, leaf) {
		return nil, swaperr.ErrInvalidMerkleProof
	}

	reward, err := htlc.CalculateFillReward(fillAmount, rewardRateBps)
	if err != nil {
		return nil, err
	}

	swap.Filled = new(big.Int).Add(swap.Filled, fillAmount)
	if swap.Filled.Cmp(swap.Amount) == 0 {
		swap.State = agreement.SwapStateCompleted
	} else {
		swap.State = agreement.SwapStatePartialFilled
	}

	return reward, nil
}

// CalculateOptimalFillSizes splits totalAmount into up to numResolvers
// slot sizes. The emitted sizes always sum to exactly totalAmount: when
// the even share clears minFillSize the remainder units go to the
// earliest slots, otherwise slots take minFillSize until what is left
// falls below it, and the final slot absorbs the rest even when below
// the minimum.
func CalculateOptimalFillSizes(totalAmount *big.Int, numResolvers uint32, minFillSize *big.Int) []*big.Int {
	fillSizes := []*big.Int{}

	if numResolvers == 0 || totalAmount == nil || totalAmount.Sign() <= 0 {
		return fillSizes
	}

	n := new(big.Int).SetUint64(uint64(numResolvers))
	baseFill, remainder := new(big.Int).QuoRem(totalAmount, n, new(big.Int))

	remaining := new(big.Int).Set(totalAmount)
	for i := uint32(0); i < numResolvers; i++ {
		var fillSize *big.Int
		if baseFill.Cmp(minFillSize) >= 0 {
			fillSize = new(big.Int).Set(baseFill)
			if new(big.Int).SetUint64(uint64(i)).Cmp(remainder) < 0 {
				fillSize.Add(fillSize, big.NewInt(1))
			}
		} else if remaining.Cmp(minFillSize) >= 0 {
			fillSize = new(big.Int).Set(minFillSize)
			if remaining.Cmp(fillSize) < 0 {
				fillSize.Set(remaining)
			}
		} else {
			fillSize = new(big.Int).Set(remaining)
		}

		if fillSize.Sign() > 0 {
			fillSizes = append(fillSizes, fillSize)
			remaining.Sub(remaining, fillSize)
		}

		if remaining.Sign() <= 0 {
			break
		}
	}

	return fillSizes
}
