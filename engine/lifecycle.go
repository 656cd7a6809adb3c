package engine

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	logger "github.com/sirupsen/logrus"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/common"
	"github.com/StellarBridge-io/swap-engine-go/htlc"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

// InitiateParams carries the caller inputs of InitiateSwap.
type InitiateParams struct {
	Initiator          ethcommon.Address
	Token              ethcommon.Address
	Amount             *big.Int
	SecretHash         ethcommon.Hash
	TimelockDelta      uint64 // seconds from now
	CounterpartAddress []byte
	PartialFillEnabled bool
	MerkleRoot         ethcommon.Hash
}

// InitiateSwap locks the initiator's funds against the secret hash and
// timelock and stores the new swap. The swap id is derived from the
// initiate tuple plus the creation time.
func (e *Engine) InitiateSwap(p *InitiateParams) (ethcommon.Hash, error) {
	if err := e.requireNotPaused(); err != nil {
		return ethcommon.Hash{}, err
	}

	if p.Amount == nil || p.Amount.Sign() <= 0 || !common.FitsI128(p.Amount) {
		return ethcommon.Hash{}, swaperr.ErrInvalidAmount
	}
	if p.SecretHash == (ethcommon.Hash{}) {
		return ethcommon.Hash{}, swaperr.ErrInvalidSecretHash
	}
	if p.TimelockDelta < e.cfg.MinTimelock || p.TimelockDelta > e.cfg.MaxTimelock {
		return ethcommon.Hash{}, swaperr.ErrInvalidTimelock
	}

	now := e.clock.Now()
	swapId := e.hasher.Hash(p.Initiator, p.Token, p.Amount, p.SecretHash, p.TimelockDelta, now)

	exists, err := e.storage.HasSwap(swapId)
	if err != nil {
		return ethcommon.Hash{}, swaperr.ErrStorageError
	}
	if exists {
		return ethcommon.Hash{}, swaperr.ErrSwapAlreadyExists
	}

	// Lock the funds in escrow before the record exists. A transfer
	// failure leaves no trace of the swap.
	if err := e.transferor.Transfer(p.Token, p.Initiator, e.cfg.EscrowAddress, p.Amount); err != nil {
		return ethcommon.Hash{}, swaperr.ErrTransferFailed
	}

	swap := &agreement.Swap{
		Initiator:          p.Initiator,
		Token:              p.Token,
		Amount:             new(big.Int).Set(p.Amount),
		Filled:             big.NewInt(0),
		SecretHash:         p.SecretHash,
		Timelock:           now + p.TimelockDelta,
		CounterpartAddress: p.CounterpartAddress,
		State:              agreement.SwapStateInitiated,
		PartialFillEnabled: p.PartialFillEnabled,
		MerkleRoot:         p.MerkleRoot,
		CreatedAt:          now,
	}

	if err := e.storage.InsertSwap(swapId, swap); err != nil {
		return ethcommon.Hash{}, swaperr.ErrStorageError
	}

	if err := e.bumpSwapAnalytics(p.Amount); err != nil {
		return ethcommon.Hash{}, err
	}

	logger.Infof("swap initiated: id=%s initiator=%s amount=%v timelock=%d",
		swapId, p.Initiator, p.Amount, swap.Timelock)

	return swapId, nil
}

// CompleteSwap releases the unfilled remainder to the caller in
// exchange for the reveal secret. The secret is consumed globally.
func (e *Engine) CompleteSwap(swapId ethcommon.Hash, secret ethcommon.Hash, caller ethcommon.Address) (*big.Int, error) {
	if err := e.requireNotPaused(); err != nil {
		return nil, err
	}

	unlock := e.lockSwap(swapId)
	defer unlock()

	swap, err := e.GetSwap(swapId)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if err := htlc.CanCompleteSwap(swap, now); err != nil {
		return nil, err
	}

	if !e.vault.Validate(secret, swap.SecretHash) {
		return nil, swaperr.ErrInvalidSecret
	}

	used, err := e.vault.IsUsed(secret)
	if err != nil {
		return nil, swaperr.ErrStorageError
	}
	if used {
		return nil, swaperr.ErrSecretAlreadyUsed
	}

	remaining := swap.Remaining()
	if remaining.Sign() > 0 {
		if err := e.transferor.Transfer(swap.Token, e.cfg.EscrowAddress, caller, remaining); err != nil {
			return nil, swaperr.ErrTransferFailed
		}
	}

	if err := e.vault.MarkUsed(secret); err != nil {
		return nil, swaperr.ErrStorageError
	}

	prevState, prevFilled := swap.State, new(big.Int).Set(swap.Filled)
	swap.State = agreement.SwapStateCompleted
	ok, err := e.storage.UpdateSwapCAS(swapId, swap, prevState, prevFilled)
	if err != nil || !ok {
		return nil, swaperr.ErrStorageError
	}

	if err := e.foldCompletionTime(now - swap.CreatedAt); err != nil {
		return nil, err
	}

	logger.Infof("swap completed: id=%s caller=%s remaining=%v", swapId, caller, remaining)

	return remaining, nil
}

// RefundSwap returns the unfilled remainder to the initiator once the
// timelock has passed. Refund works while paused; pausing must not
// trap user funds.
func (e *Engine) RefundSwap(swapId ethcommon.Hash, caller ethcommon.Address) (*big.Int, error) {
	unlock := e.lockSwap(swapId)
	defer unlock()

	swap, err := e.GetSwap(swapId)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if err := htlc.CanRefundSwap(swap, caller, now); err != nil {
		return nil, err
	}

	refund := swap.Remaining()
	if refund.Sign() > 0 {
		if err := e.transferor.Transfer(swap.Token, e.cfg.EscrowAddress, swap.Initiator, refund); err != nil {
			return nil, swaperr.ErrTransferFailed
		}
	}

	prevState, prevFilled := swap.State, new(big.Int).Set(swap.Filled)
	swap.State = agreement.SwapStateRefunded
	ok, err := e.storage.UpdateSwapCAS(swapId, swap, prevState, prevFilled)
	if err != nil || !ok {
		return nil, swaperr.ErrStorageError
	}

	logger.Infof("swap refunded: id=%s initiator=%s amount=%v", swapId, swap.Initiator, refund)

	return refund, nil
}

func (e *Engine) bumpSwapAnalytics(amount *big.Int) error {
	a, err := e.storage.GetAnalytics()
	if err != nil {
		return swaperr.ErrStorageError
	}
	a.TotalSwaps++
	a.TotalVolume = new(big.Int).Add(a.TotalVolume, amount)
	if err := e.storage.PutAnalytics(a); err != nil {
		return swaperr.ErrStorageError
	}
	return nil
}

// foldCompletionTime keeps a running average of initiate-to-complete
// latency across completed swaps.
func (e *Engine) foldCompletionTime(elapsed uint64) error {
	a, err := e.storage.GetAnalytics()
	if err != nil {
		return swaperr.ErrStorageError
	}
	if a.AverageCompletionTime == 0 {
		a.AverageCompletionTime = elapsed
	} else {
		a.AverageCompletionTime = (a.AverageCompletionTime + elapsed) / 2
	}
	if err := e.storage.PutAnalytics(a); err != nil {
		return swaperr.ErrStorageError
	}
	return nil
}
