// Package htlc holds the pure guard and calculation functions of the
// swap lifecycle. Everything here takes the current time as a plain
// value; the engine reads it from the injected clock.
package htlc

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	swapcommon "github.com/StellarBridge-io/swap-engine-go/common"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

// ValidateSecret checks that the revealed secret hashes to the
// commitment stored in the swap.
func ValidateSecret(hasher agreement.Hasher, secret common.Hash, secretHash common.Hash) bool {
	return hasher.Hash(secret) == secretHash
}

// IsTimelockExpired is true exactly when now >= timelock.
// Equality counts as expired.
func IsTimelockExpired(now uint64, timelock uint64) bool {
	return now >= timelock
}

// CanCompleteSwap guards the complete transition. Completion requires a
// live (initiated or partially filled) swap whose timelock has not yet
// passed; the refund window owns everything at or after the timelock.
func CanCompleteSwap(swap *agreement.Swap, now uint64) error {
	switch swap.State {
	case agreement.SwapStateInitiated, agreement.SwapStatePartialFilled:
		if IsTimelockExpired(now, swap.Timelock) {
			return swaperr.ErrSwapExpired
		}
		return nil
	case agreement.SwapStateCompleted:
		return swaperr.ErrSwapAlreadyCompleted
	case agreement.SwapStateRefunded:
		return swaperr.ErrSwapAlreadyRefunded
	default:
		return swaperr.ErrSwapExpired
	}
}

// CanRefundSwap guards the refund transition. Only the initiator may
// refund, and only once the timelock has passed.
func CanRefundSwap(swap *agreement.Swap, caller common.Address, now uint64) error {
	if caller != swap.Initiator {
		return swaperr.ErrUnauthorizedRefund
	}

	switch swap.State {
	case agreement.SwapStateInitiated, agreement.SwapStatePartialFilled:
		if !IsTimelockExpired(now, swap.Timelock) {
			return swaperr.ErrTimelockNotExpired
		}
		return nil
	case agreement.SwapStateCompleted:
		return swaperr.ErrSwapAlreadyCompleted
	case agreement.SwapStateRefunded:
		return swaperr.ErrSwapAlreadyRefunded
	default:
		return swaperr.ErrSwapExpired
	}
}

// ValidatePartialFill runs the fill admission checks in order and
// returns the first failure.
func ValidatePartialFill(swap *agreement.Swap, fillAmount *big.Int, now uint64) error {
	if !swap.PartialFillEnabled {
		return swaperr.ErrPartialFillsNotEnabled
	}

	switch swap.State {
	case agreement.SwapStateInitiated, agreement.SwapStatePartialFilled:
	default:
		return swaperr.ErrInvalidSwapState
	}

	if IsTimelockExpired(now, swap.Timelock) {
		return swaperr.ErrSwapExpired
	}

	if fillAmount == nil || fillAmount.Sign() <= 0 {
		return swaperr.ErrInvalidFillAmount
	}

	if new(big.Int).Add(swap.Filled, fillAmount).Cmp(swap.Amount) > 0 {
		return swaperr.ErrExceedsSwapAmount
	}

	return nil
}

// CalculateFillReward computes floor(fillAmount * rateBps / 10000).
// The intermediate product must stay within the signed 128-bit amount
// range; exceeding it is an overflow failure, never a wrap.
func CalculateFillReward(fillAmount *big.Int, rateBps uint32) (*big.Int, error) {
	product := new(big.Int).Mul(fillAmount, big.NewInt(int64(rateBps)))
	if !swapcommon.FitsI128(product) {
		return nil, swaperr.ErrCalculationOverflow
	}
	return product.Quo(product, big.NewInt(10000)), nil
}
