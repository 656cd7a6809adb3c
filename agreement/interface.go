package agreement

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Clock is the injected time source. Implementations return
// seconds since unix epoch; tests supply a fixed value.
type Clock interface {
	Now() uint64
}

// Hasher is the injected 256-bit collision-resistant hash.
// Values are packed the same way regardless of implementation,
// so keccak256 and sha3-256 engines are interchangeable per deployment.
type Hasher interface {
	Hash(values ...interface{}) common.Hash
}

// TokenTransferor moves token amounts between addresses.
// Any error aborts the enclosing engine operation with no state change.
type TokenTransferor interface {
	Transfer(token common.Address, from common.Address, to common.Address, amount *big.Int) error
}

// SwapStorage persists swap records keyed by swap id.
type SwapStorage interface {
	GetSwap(id common.Hash) (*Swap, bool, error)
	HasSwap(id common.Hash) (bool, error)
	InsertSwap(id common.Hash, swap *Swap) error

	// UpdateSwapCAS writes the swap only if the stored record still has
	// the given previous state and filled amount. Returns false when the
	// record changed underneath the caller (check-then-act conflict).
	UpdateSwapCAS(id common.Hash, swap *Swap, prevState SwapState, prevFilled *big.Int) (bool, error)
}

// ResolverStorage persists resolver records keyed by address.
type ResolverStorage interface {
	GetResolver(addr common.Address) (*Resolver, bool, error)
	HasResolver(addr common.Address) (bool, error)
	PutResolver(addr common.Address, resolver *Resolver) error
}

// SecretStorage is the global used-secret set. Membership is
// system-wide, not per swap.
type SecretStorage interface {
	IsSecretUsed(secret common.Hash) (bool, error)
	MarkSecretUsed(secret common.Hash) error
}

// FillStorage is the append-only partial fill audit trail.
type FillStorage interface {
	AppendPartialFill(fill *PartialFill) error
	GetPartialFills(swapId common.Hash) ([]*PartialFill, error)
}

// AnalyticsStorage persists the aggregate counters.
type AnalyticsStorage interface {
	GetAnalytics() (*Analytics, error)
	PutAnalytics(a *Analytics) error
}

// EngineStorage is the full storage surface the engine requires.
// The sqlite implementation in enginedb satisfies it with one database.
type EngineStorage interface {
	SwapStorage
	ResolverStorage
	SecretStorage
	FillStorage
	AnalyticsStorage
}
