package agreement

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EngineConfig carries the per-deployment parameters of the swap engine.
type EngineConfig struct {
	// Admin may pause/unpause the engine.
	Admin common.Address

	// EscrowAddress holds locked swap funds and resolver stakes.
	EscrowAddress common.Address

	// MinTimelock/MaxTimelock bound the requested timelock delta (seconds).
	MinTimelock uint64
	MaxTimelock uint64

	// MinStake is the smallest stake accepted at resolver registration.
	MinStake *big.Int

	// BaseFeeRate in basis points (10000 = 100%).
	BaseFeeRate uint32

	// ResolverRewardRate in basis points, applied to each executed fill.
	ResolverRewardRate uint32

	// NativeToken is the token resolver stakes are posted in.
	NativeToken common.Address
}
