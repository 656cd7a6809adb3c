package engine

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	logger "github.com/sirupsen/logrus"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/partialfill"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

// ExecutePartialFill lets an active resolver claim fillAmount of the
// swap under a pre-committed Merkle authorization. Returns the resolver
// reward.
func (e *Engine) ExecutePartialFill(
	swapId ethcommon.Hash,
	resolverAddr ethcommon.Address,
	fillAmount *big.Int,
	merkleProof []ethcommon.Hash,
	nonce uint64,
) (*big.Int, error) {
	if err := e.requireNotPaused(); err != nil {
		return nil, err
	}

	if err := e.ledger.RequireActive(resolverAddr); err != nil {
		return nil, err
	}

	unlock := e.lockSwap(swapId)
	defer unlock()

	swap, err := e.GetSwap(swapId)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	prevState, prevFilled := swap.State, new(big.Int).Set(swap.Filled)

	reward, err := partialfill.Execute(
		e.hasher, swap, resolverAddr, fillAmount, merkleProof, nonce, now, e.cfg.ResolverRewardRate)
	if err != nil {
		return nil, err
	}

	if reward.Sign() > 0 {
		if err := e.transferor.Transfer(swap.Token, e.cfg.EscrowAddress, resolverAddr, reward); err != nil {
			return nil, swaperr.ErrTransferFailed
		}
	}

	ok, err := e.storage.UpdateSwapCAS(swapId, swap, prevState, prevFilled)
	if err != nil || !ok {
		return nil, swaperr.ErrStorageError
	}

	if err := e.ledger.RecordFill(resolverAddr, fillAmount, now); err != nil {
		return nil, err
	}

	if err := e.storage.AppendPartialFill(&agreement.PartialFill{
		SwapId:      swapId,
		Resolver:    resolverAddr,
		Amount:      new(big.Int).Set(fillAmount),
		Timestamp:   now,
		MerkleProof: merkleProof,
	}); err != nil {
		return nil, swaperr.ErrStorageError
	}

	logger.Infof("partial fill executed: id=%s resolver=%s amount=%v filled=%v reward=%v",
		swapId, resolverAddr, fillAmount, swap.Filled, reward)

	return reward, nil
}

// RegisterResolver posts the stake in the native token and creates the
// ledger entry.
func (e *Engine) RegisterResolver(resolverAddr ethcommon.Address, stake *big.Int) error {
	if stake == nil || stake.Cmp(e.cfg.MinStake) < 0 {
		return swaperr.ErrInsufficientStake
	}

	exists, err := e.storage.HasResolver(resolverAddr)
	if err != nil {
		return swaperr.ErrStorageError
	}
	if exists {
		return swaperr.ErrResolverAlreadyRegistered
	}

	if err := e.transferor.Transfer(e.cfg.NativeToken, resolverAddr, e.cfg.EscrowAddress, stake); err != nil {
		return swaperr.ErrTransferFailed
	}

	if err := e.ledger.Register(resolverAddr, stake, e.clock.Now()); err != nil {
		return err
	}

	a, err := e.storage.GetAnalytics()
	if err != nil {
		return swaperr.ErrStorageError
	}
	a.TotalResolvers++
	if err := e.storage.PutAnalytics(a); err != nil {
		return swaperr.ErrStorageError
	}

	logger.Infof("resolver registered: addr=%s stake=%v", resolverAddr, stake)

	return nil
}
