// Global agreement on types shared across the engine packages.

package agreement

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SwapState follows the one-directional lifecycle
// Initiated -> PartialFilled -> Completed | Refunded | Expired.
// Completed and Refunded are terminal.
type SwapState string

const (
	SwapStateInitiated     SwapState = "initiated"      // funds locked, nothing claimed yet
	SwapStatePartialFilled SwapState = "partial_filled" // some resolvers have filled a portion
	SwapStateCompleted     SwapState = "completed"      // secret revealed or fully filled
	SwapStateRefunded      SwapState = "refunded"       // initiator reclaimed after timelock
	SwapStateExpired       SwapState = "expired"        // lazily observed past-timelock state
)

// Swap is the central HTLC record, keyed by a derived 32-byte id.
// Amounts are signed 128-bit quantities carried as *big.Int.
type Swap struct {
	Initiator          common.Address
	Token              common.Address
	Amount             *big.Int
	Filled             *big.Int
	SecretHash         common.Hash
	Timelock           uint64 // absolute expiry timestamp (seconds)
	CounterpartAddress []byte // address on the other chain, passed through opaque
	State              SwapState
	PartialFillEnabled bool
	MerkleRoot         common.Hash
	CreatedAt          uint64
}

func (s *Swap) String() string {
	return fmt.Sprintf("%+v", *s)
}

// Remaining is amount - filled, the quantity still claimable.
func (s *Swap) Remaining() *big.Int {
	return new(big.Int).Sub(s.Amount, s.Filled)
}

// Resolver is a staked party permitted to execute partial fills.
type Resolver struct {
	Stake            *big.Int
	Reputation       uint32
	TotalVolume      *big.Int
	SuccessRate      uint32 // basis points, 10000 = 100%
	Active           bool
	RegistrationTime uint64
}

func (r *Resolver) String() string {
	return fmt.Sprintf("%+v", *r)
}

// PartialFill is a write-once audit record of one executed fill.
type PartialFill struct {
	SwapId      common.Hash
	Resolver    common.Address
	Amount      *big.Int
	Timestamp   uint64
	MerkleProof []common.Hash
}

// Analytics holds the aggregate counters the engine maintains.
type Analytics struct {
	TotalVolume           *big.Int
	TotalSwaps            uint32
	TotalResolvers        uint32
	SuccessRate           uint32 // basis points
	AverageCompletionTime uint64 // seconds
}

// NewAnalytics returns the zero-value analytics record used
// before any swap has been initiated.
func NewAnalytics() *Analytics {
	return &Analytics{
		TotalVolume: big.NewInt(0),
		SuccessRate: 10000,
	}
}
