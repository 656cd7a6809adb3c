// The engine owns the public operation surface of the swap system. It
// wires the lifecycle guards, the partial fill execution, the secret
// vault and the resolver ledger onto injected storage, clock, hasher
// and token transfer collaborators.
//
// Each mutating operation is a single read-validate-write against one
// swap id. The engine serializes writers per swap id with a keyed lock
// and additionally persists through a compare-and-swap, so two
// concurrent fills can never both read the old filled amount and win.
package engine

import (
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/resolver"
	"github.com/StellarBridge-io/swap-engine-go/secretvault"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

type Engine struct {
	cfg        *agreement.EngineConfig
	storage    agreement.EngineStorage
	clock      agreement.Clock
	hasher     agreement.Hasher
	transferor agreement.TokenTransferor

	vault  *secretvault.Vault
	ledger *resolver.Ledger

	pauseMu sync.RWMutex
	paused  bool

	locksMu   sync.Mutex
	swapLocks map[ethcommon.Hash]*sync.Mutex
}

func NewEngine(
	cfg *agreement.EngineConfig,
	storage agreement.EngineStorage,
	clock agreement.Clock,
	hasher agreement.Hasher,
	transferor agreement.TokenTransferor,
) *Engine {
	return &Engine{
		cfg:        cfg,
		storage:    storage,
		clock:      clock,
		hasher:     hasher,
		transferor: transferor,
		vault:      secretvault.NewVault(hasher, storage),
		ledger:     resolver.NewLedger(storage, cfg.MinStake),
		swapLocks:  make(map[ethcommon.Hash]*sync.Mutex),
	}
}

// lockSwap serializes mutating operations on one swap id. The lock is
// created lazily and retained; swaps are never deleted.
func (e *Engine) lockSwap(id ethcommon.Hash) func() {
	e.locksMu.Lock()
	mu, ok := e.swapLocks[id]
	if !ok {
		mu = &sync.Mutex{}
		e.swapLocks[id] = mu
	}
	e.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// Pause stops the mutating operations. Admin only.
func (e *Engine) Pause(caller ethcommon.Address) error {
	if caller != e.cfg.Admin {
		return swaperr.ErrUnauthorized
	}
	e.pauseMu.Lock()
	e.paused = true
	e.pauseMu.Unlock()
	return nil
}

func (e *Engine) Unpause(caller ethcommon.Address) error {
	if caller != e.cfg.Admin {
		return swaperr.ErrUnauthorized
	}
	e.pauseMu.Lock()
	e.paused = false
	e.pauseMu.Unlock()
	return nil
}

func (e *Engine) requireNotPaused() error {
	e.pauseMu.RLock()
	defer e.pauseMu.RUnlock()
	if e.paused {
		return swaperr.ErrContractPaused
	}
	return nil
}

// GetSwap returns the stored swap record.
func (e *Engine) GetSwap(id ethcommon.Hash) (*agreement.Swap, error) {
	swap, found, err := e.storage.GetSwap(id)
	if err != nil {
		return nil, swaperr.ErrStorageError
	}
	if !found {
		return nil, swaperr.ErrSwapNotFound
	}
	return swap, nil
}

// GetResolver returns the resolver ledger entry.
func (e *Engine) GetResolver(addr ethcommon.Address) (*agreement.Resolver, error) {
	return e.ledger.Get(addr)
}

// GetAnalytics returns the aggregate counters.
func (e *Engine) GetAnalytics() (*agreement.Analytics, error) {
	a, err := e.storage.GetAnalytics()
	if err != nil {
		return nil, swaperr.ErrStorageError
	}
	return a, nil
}

// GetPartialFills returns the audit trail for one swap.
func (e *Engine) GetPartialFills(swapId ethcommon.Hash) ([]*agreement.PartialFill, error) {
	fills, err := e.storage.GetPartialFills(swapId)
	if err != nil {
		return nil, swaperr.ErrStorageError
	}
	return fills, nil
}

// IsSecretUsed reports global used-secret membership.
func (e *Engine) IsSecretUsed(secret ethcommon.Hash) (bool, error) {
	used, err := e.vault.IsUsed(secret)
	if err != nil {
		return false, swaperr.ErrStorageError
	}
	return used, nil
}
