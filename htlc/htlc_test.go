package htlc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	swapcommon "github.com/StellarBridge-io/swap-engine-go/common"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

func newLiveSwap(state agreement.SwapState) *agreement.Swap {
	return &agreement.Swap{
		Initiator:          swapcommon.RandAddress(),
		Token:              swapcommon.RandAddress(),
		Amount:             big.NewInt(1000),
		Filled:             big.NewInt(0),
		SecretHash:         swapcommon.RandHash(),
		Timelock:           2000,
		State:              state,
		PartialFillEnabled: true,
		CreatedAt:          1000,
	}
}

func TestValidateSecret(t *testing.T) {
	hasher := swapcommon.KeccakHasher{}
	secret := swapcommon.RandHash()
	secretHash := hasher.Hash(secret)

	assert.True(t, ValidateSecret(hasher, secret, secretHash))
	assert.False(t, ValidateSecret(hasher, secret, swapcommon.RandHash()))
}

func TestIsTimelockExpired(t *testing.T) {
	assert.False(t, IsTimelockExpired(1000, 2000))
	assert.True(t, IsTimelockExpired(2500, 2000))

	// boundary: equality counts as expired
	assert.True(t, IsTimelockExpired(2000, 2000))
}

func TestCanCompleteSwap(t *testing.T) {
	swap := newLiveSwap(agreement.SwapStateInitiated)
	assert.NoError(t, CanCompleteSwap(swap, 1500))

	swap.State = agreement.SwapStatePartialFilled
	assert.NoError(t, CanCompleteSwap(swap, 1500))

	// past the timelock completion is impossible
	assert.ErrorIs(t, CanCompleteSwap(swap, 2000), swaperr.ErrSwapExpired)

	swap.State = agreement.SwapStateCompleted
	assert.ErrorIs(t, CanCompleteSwap(swap, 1500), swaperr.ErrSwapAlreadyCompleted)

	swap.State = agreement.SwapStateRefunded
	assert.ErrorIs(t, CanCompleteSwap(swap, 1500), swaperr.ErrSwapAlreadyRefunded)

	swap.State = agreement.SwapStateExpired
	assert.ErrorIs(t, CanCompleteSwap(swap, 1500), swaperr.ErrSwapExpired)
}

func TestCanRefundSwap(t *testing.T) {
	swap := newLiveSwap(agreement.SwapStateInitiated)

	assert.ErrorIs(t, CanRefundSwap(swap, swapcommon.RandAddress(), 2500), swaperr.ErrUnauthorizedRefund)
	assert.ErrorIs(t, CanRefundSwap(swap, swap.Initiator, 1500), swaperr.ErrTimelockNotExpired)
	assert.NoError(t, CanRefundSwap(swap, swap.Initiator, 2000))
	assert.NoError(t, CanRefundSwap(swap, swap.Initiator, 2500))

	swap.State = agreement.SwapStateCompleted
	assert.ErrorIs(t, CanRefundSwap(swap, swap.Initiator, 2500), swaperr.ErrSwapAlreadyCompleted)

	swap.State = agreement.SwapStateRefunded
	assert.ErrorIs(t, CanRefundSwap(swap, swap.Initiator, 2500), swaperr.ErrSwapAlreadyRefunded)
}

// For any now, at most one of complete/refund may be valid.
func TestCompleteRefundWindowsDisjoint(t *testing.T) {
	swap := newLiveSwap(agreement.SwapStateInitiated)

	for _, now := range []uint64{0, 1999, 2000, 2001, 10000} {
		canComplete := CanCompleteSwap(swap, now) == nil
		canRefund := CanRefundSwap(swap, swap.Initiator, now) == nil
		assert.False(t, canComplete && canRefund, "both windows open at now=%d", now)
	}
}

func TestValidatePartialFill(t *testing.T) {
	swap := newLiveSwap(agreement.SwapStateInitiated)

	assert.NoError(t, ValidatePartialFill(swap, big.NewInt(100), 1500))

	swap.PartialFillEnabled = false
	assert.ErrorIs(t, ValidatePartialFill(swap, big.NewInt(100), 1500), swaperr.ErrPartialFillsNotEnabled)
	swap.PartialFillEnabled = true

	swap.State = agreement.SwapStateCompleted
	assert.ErrorIs(t, ValidatePartialFill(swap, big.NewInt(100), 1500), swaperr.ErrInvalidSwapState)
	swap.State = agreement.SwapStateInitiated

	assert.ErrorIs(t, ValidatePartialFill(swap, big.NewInt(100), 2000), swaperr.ErrSwapExpired)
	assert.ErrorIs(t, ValidatePartialFill(swap, big.NewInt(0), 1500), swaperr.ErrInvalidFillAmount)
	assert.ErrorIs(t, ValidatePartialFill(swap, big.NewInt(-5), 1500), swaperr.ErrInvalidFillAmount)

	swap.Filled = big.NewInt(950)
	assert.ErrorIs(t, ValidatePartialFill(swap, big.NewInt(100), 1500), swaperr.ErrExceedsSwapAmount)
	assert.NoError(t, ValidatePartialFill(swap, big.NewInt(50), 1500))
}

func TestCalculateFillReward(t *testing.T) {
	// 1% fee (100 basis points)
	reward, err := CalculateFillReward(big.NewInt(10000), 100)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), reward)

	// 0.1% fee (10 basis points)
	reward, err = CalculateFillReward(big.NewInt(10000), 10)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(10), reward)

	// 10% fee (1000 basis points)
	reward, err = CalculateFillReward(big.NewInt(10000), 1000)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), reward)

	// flooring
	reward, err = CalculateFillReward(big.NewInt(9999), 1)
	assert.NoError(t, err)
	// big.Int zero values can differ in internal representation, so
	// compare by value rather than reflect.DeepEqual
	assert.Zero(t, big.NewInt(0).Cmp(reward))
}

func TestCalculateFillRewardOverflow(t *testing.T) {
	// near-max i128 fill with a nonzero rate overflows the working
	// width and must fail, not wrap
	nearMax := new(big.Int).Sub(swapcommon.MaxI128, big.NewInt(1))
	_, err := CalculateFillReward(nearMax, 10)
	assert.ErrorIs(t, err, swaperr.ErrCalculationOverflow)

	var se *swaperr.Error
	assert.ErrorAs(t, err, &se)
	assert.True(t, se.IsCritical())
}
