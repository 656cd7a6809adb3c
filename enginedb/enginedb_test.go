package enginedb

import (
	"database/sql"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/common"
)

func newTestEngineDB(t *testing.T) (*EngineDB, func()) {
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	db, err := NewEngineDB(sqlDB)
	assert.NoError(t, err)
	return db, func() {
		db.Close()
		sqlDB.Close()
	}
}

func randSwap() *agreement.Swap {
	return &agreement.Swap{
		Initiator:          common.RandAddress(),
		Token:              common.RandAddress(),
		Amount:             big.NewInt(1000),
		Filled:             big.NewInt(0),
		SecretHash:         common.RandHash(),
		Timelock:           5000,
		CounterpartAddress: []byte{0xca, 0xfe},
		State:              agreement.SwapStateInitiated,
		PartialFillEnabled: true,
		MerkleRoot:         common.RandHash(),
		CreatedAt:          4000,
	}
}

func TestSwapRoundTrip(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	id := common.RandHash()
	expected := randSwap()
	assert.NoError(t, db.InsertSwap(id, expected))

	has, err := db.HasSwap(id)
	assert.NoError(t, err)
	assert.True(t, has)

	actual, found, err := db.GetSwap(id)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, expected.Initiator, actual.Initiator)
	assert.Equal(t, expected.Token, actual.Token)
	assert.Equal(t, expected.Amount, actual.Amount)
	assert.Equal(t, expected.Filled, actual.Filled)
	assert.Equal(t, expected.SecretHash, actual.SecretHash)
	assert.Equal(t, expected.Timelock, actual.Timelock)
	assert.Equal(t, expected.CounterpartAddress, actual.CounterpartAddress)
	assert.Equal(t, expected.State, actual.State)
	assert.Equal(t, expected.PartialFillEnabled, actual.PartialFillEnabled)
	assert.Equal(t, expected.MerkleRoot, actual.MerkleRoot)
	assert.Equal(t, expected.CreatedAt, actual.CreatedAt)
}

func TestGetSwapMissing(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	_, found, err := db.GetSwap(common.RandHash())
	assert.NoError(t, err)
	assert.False(t, found)

	has, err := db.HasSwap(common.RandHash())
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestInsertSwapDuplicate(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	id := common.RandHash()
	assert.NoError(t, db.InsertSwap(id, randSwap()))
	assert.Error(t, db.InsertSwap(id, randSwap()))
}

func TestUpdateSwapCAS(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	id := common.RandHash()
	swap := randSwap()
	assert.NoError(t, db.InsertSwap(id, swap))

	prevState, prevFilled := swap.State, new(big.Int).Set(swap.Filled)
	swap.Filled = big.NewInt(400)
	swap.State = agreement.SwapStatePartialFilled

	ok, err := db.UpdateSwapCAS(id, swap, prevState, prevFilled)
	assert.NoError(t, err)
	assert.True(t, ok)

	// stale previous values lose the race
	ok, err = db.UpdateSwapCAS(id, swap, prevState, prevFilled)
	assert.NoError(t, err)
	assert.False(t, ok)

	actual, _, err := db.GetSwap(id)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(400), actual.Filled)
	assert.Equal(t, agreement.SwapStatePartialFilled, actual.State)
}

func TestResolverRoundTrip(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	addr := common.RandAddress()
	expected := &agreement.Resolver{
		Stake:            big.NewInt(5000),
		Reputation:       1000,
		TotalVolume:      big.NewInt(0),
		SuccessRate:      10000,
		Active:           true,
		RegistrationTime: 4000,
	}
	assert.NoError(t, db.PutResolver(addr, expected))

	has, err := db.HasResolver(addr)
	assert.NoError(t, err)
	assert.True(t, has)

	actual, found, err := db.GetResolver(addr)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, expected, actual)

	_, found, err = db.GetResolver(common.RandAddress())
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestUsedSecrets(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	secret := common.RandHash()
	used, err := db.IsSecretUsed(secret)
	assert.NoError(t, err)
	assert.False(t, used)

	assert.NoError(t, db.MarkSecretUsed(secret))

	used, err = db.IsSecretUsed(secret)
	assert.NoError(t, err)
	assert.True(t, used)

	// marking twice is idempotent
	assert.NoError(t, db.MarkSecretUsed(secret))
}

func TestPartialFillTrail(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	swapId := common.RandHash()
	f1 := &agreement.PartialFill{
		SwapId:      swapId,
		Resolver:    common.RandAddress(),
		Amount:      big.NewInt(300),
		Timestamp:   4100,
		MerkleProof: []ethcommon.Hash{common.RandHash(), common.RandHash()},
	}
	f2 := &agreement.PartialFill{
		SwapId:    swapId,
		Resolver:  common.RandAddress(),
		Amount:    big.NewInt(700),
		Timestamp: 4200,
	}
	assert.NoError(t, db.AppendPartialFill(f1))
	assert.NoError(t, db.AppendPartialFill(f2))

	fills, err := db.GetPartialFills(swapId)
	assert.NoError(t, err)
	assert.Len(t, fills, 2)
	assert.Equal(t, f1.Resolver, fills[0].Resolver)
	assert.Equal(t, f1.Amount, fills[0].Amount)
	assert.Equal(t, f1.MerkleProof, fills[0].MerkleProof)
	assert.Equal(t, f2.Amount, fills[1].Amount)
	assert.Nil(t, fills[1].MerkleProof)

	fills, err = db.GetPartialFills(common.RandHash())
	assert.NoError(t, err)
	assert.Len(t, fills, 0)
}

func TestAnalyticsRoundTrip(t *testing.T) {
	db, close := newTestEngineDB(t)
	defer close()

	// empty db returns the zero-value record
	a, err := db.GetAnalytics()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), a.TotalSwaps)
	assert.Equal(t, uint32(10000), a.SuccessRate)

	a.TotalSwaps = 3
	a.TotalResolvers = 2
	a.TotalVolume = big.NewInt(123456)
	a.AverageCompletionTime = 77
	assert.NoError(t, db.PutAnalytics(a))

	b, err := db.GetAnalytics()
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}
