// Package resolver tracks resolver registration, stake and cumulative
// filled volume.
package resolver

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/swaperr"
)

const (
	// StartingReputation is assigned at registration.
	StartingReputation uint32 = 1000

	// StartingSuccessRate is 100% in basis points.
	StartingSuccessRate uint32 = 10000
)

type Ledger struct {
	storage  agreement.ResolverStorage
	minStake *big.Int
}

func NewLedger(storage agreement.ResolverStorage, minStake *big.Int) *Ledger {
	return &Ledger{
		storage:  storage,
		minStake: minStake,
	}
}

// Register records a new resolver with the starting reputation and
// success rate. Stake custody is the caller's responsibility.
func (l *Ledger) Register(addr common.Address, stake *big.Int, now uint64) error {
	if stake == nil || stake.Cmp(l.minStake) < 0 {
		return swaperr.ErrInsufficientStake
	}

	exists, err := l.storage.HasResolver(addr)
	if err != nil {
		return swaperr.ErrStorageError
	}
	if exists {
		return swaperr.ErrResolverAlreadyRegistered
	}

	return l.storage.PutResolver(addr, &agreement.Resolver{
		Stake:            new(big.Int).Set(stake),
		Reputation:       StartingReputation,
		TotalVolume:      big.NewInt(0),
		SuccessRate:      StartingSuccessRate,
		Active:           true,
		RegistrationTime: now,
	})
}

// RequireActive checks fill eligibility.
func (l *Ledger) RequireActive(addr common.Address) error {
	r, found, err := l.storage.GetResolver(addr)
	if err != nil {
		return swaperr.ErrStorageError
	}
	if !found {
		return swaperr.ErrResolverNotFound
	}
	if !r.Active {
		return swaperr.ErrResolverNotActive
	}
	return nil
}

// RecordFill adds amount to the resolver's cumulative volume. A missing
// ledger entry gets defaults; that is a defensive path, registration is
// the normal entry point.
func (l *Ledger) RecordFill(addr common.Address, amount *big.Int, now uint64) error {
	r, found, err := l.storage.GetResolver(addr)
	if err != nil {
		return swaperr.ErrStorageError
	}
	if !found {
		r = &agreement.Resolver{
			Stake:            big.NewInt(0),
			Reputation:       StartingReputation,
			TotalVolume:      big.NewInt(0),
			SuccessRate:      StartingSuccessRate,
			Active:           false,
			RegistrationTime: now,
		}
	}

	r.TotalVolume = new(big.Int).Add(r.TotalVolume, amount)
	if err := l.storage.PutResolver(addr, r); err != nil {
		return swaperr.ErrStorageError
	}
	return nil
}

// Get returns the resolver record.
func (l *Ledger) Get(addr common.Address) (*agreement.Resolver, error) {
	r, found, err := l.storage.GetResolver(addr)
	if err != nil {
		return nil, swaperr.ErrStorageError
	}
	if !found {
		return nil, swaperr.ErrResolverNotFound
	}
	return r, nil
}
