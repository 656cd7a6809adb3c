package engine

import (
	"database/sql"
	"math/big"
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/sirupsen/logrus"
)

// SimClock is a settable clock for deterministic tests.
type SimClock struct {
	mu  sync.Mutex
	now uint64
}

func NewSimClock(now uint64) *SimClock {
	return &SimClock{now: now}
}

func (c *SimClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Set(now uint64) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *SimClock) Advance(delta uint64) {
	c.mu.Lock()
	c.now += delta
	c.mu.Unlock()
}

// SimTokenLedger keeps token balances in memory and moves them like the
// external transfer collaborator would. Transfers that would overdraw
// fail, which doubles as failure injection in tests.
type SimTokenLedger struct {
	mu       sync.Mutex
	balances map[ethcommon.Address]map[ethcommon.Address]*big.Int // token -> holder -> balance
}

func NewSimTokenLedger() *SimTokenLedger {
	return &SimTokenLedger{
		balances: make(map[ethcommon.Address]map[ethcommon.Address]*big.Int),
	}
}

func (l *SimTokenLedger) Fund(token, holder ethcommon.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(token, holder, amount)
}

func (l *SimTokenLedger) BalanceOf(token, holder ethcommon.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.balances[token][holder]; ok {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

func (l *SimTokenLedger) Transfer(token, from, to ethcommon.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.balances[token][from]
	if !ok || b.Cmp(amount) < 0 {
		return errInsufficientSimBalance
	}

	b.Sub(b, amount)
	l.credit(token, to, amount)
	return nil
}

func (l *SimTokenLedger) credit(token, holder ethcommon.Address, amount *big.Int) {
	if l.balances[token] == nil {
		l.balances[token] = make(map[ethcommon.Address]*big.Int)
	}
	if l.balances[token][holder] == nil {
		l.balances[token][holder] = big.NewInt(0)
	}
	l.balances[token][holder].Add(l.balances[token][holder], amount)
}

var errInsufficientSimBalance = &simLedgerError{}

type simLedgerError struct{}

func (*simLedgerError) Error() string { return "insufficient simulated balance" }

func getMemoryDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		logger.Fatal(err)
	}
	return db
}
