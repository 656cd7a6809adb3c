// EngineDB is the sqlite realization of the engine storage surface.
// One database holds the swap, resolver, used-secret, partial-fill and
// analytics tables. Row last-writer-wins atomicity comes from sqlite;
// the per-swap check-then-act discipline is handled by UpdateSwapCAS.
package enginedb

import (
	"database/sql"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	_ "github.com/mattn/go-sqlite3"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/database"
)

type EngineDB struct {
	stmtCache *database.StmtCache
}

func NewEngineDB(db *sql.DB) (*EngineDB, error) {
	// 1. Create the tables.
	if _, err := db.Exec(swapTable + resolverTable + fillTable + secretTable + analyticsTable); err != nil {
		return nil, err
	}

	// 2. A stmt cache + db.
	return &EngineDB{
		stmtCache: database.NewStmtCache(db),
	}, nil
}

func (st *EngineDB) Close() {
	st.stmtCache.Clear()
}

func (st *EngineDB) GetSwap(id ethcommon.Hash) (*agreement.Swap, bool, error) {
	query := `SELECT` + swapParamList + `FROM swap WHERE swapId = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, false, err
	}

	var (
		swapId, initiator, token, amount, filled string
		secretHash, state, merkleRoot            string
		counterpart                              []byte
		timelock, createdAt                      uint64
		partialFillEnabled                       bool
	)
	row := stmt.QueryRow(hashToHex(id))
	err = row.Scan(&swapId, &initiator, &token, &amount, &filled, &secretHash,
		&timelock, &counterpart, &state, &partialFillEnabled, &merkleRoot, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	amountBig, err := strToBig(amount)
	if err != nil {
		return nil, false, err
	}
	filledBig, err := strToBig(filled)
	if err != nil {
		return nil, false, err
	}

	swap := &agreement.Swap{
		Initiator:          ethcommon.HexToAddress(initiator),
		Token:              ethcommon.HexToAddress(token),
		Amount:             amountBig,
		Filled:             filledBig,
		SecretHash:         ethcommon.HexToHash(secretHash),
		Timelock:           timelock,
		CounterpartAddress: counterpart,
		State:              agreement.SwapState(state),
		PartialFillEnabled: partialFillEnabled,
		MerkleRoot:         ethcommon.HexToHash(merkleRoot),
		CreatedAt:          createdAt,
	}

	return swap, true, nil
}

func (st *EngineDB) HasSwap(id ethcommon.Hash) (bool, error) {
	query := `SELECT 1 FROM swap WHERE swapId = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var one int
	if err := stmt.QueryRow(hashToHex(id)).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (st *EngineDB) InsertSwap(id ethcommon.Hash, swap *agreement.Swap) error {
	query := `INSERT INTO swap (` + swapParamList + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		hashToHex(id),
		addrToHex(swap.Initiator),
		addrToHex(swap.Token),
		bigToStr(swap.Amount),
		bigToStr(swap.Filled),
		hashToHex(swap.SecretHash),
		swap.Timelock,
		swap.CounterpartAddress,
		string(swap.State),
		swap.PartialFillEnabled,
		hashToHex(swap.MerkleRoot),
		swap.CreatedAt,
	)
	return err
}

// UpdateSwapCAS persists the mutated swap only if the stored row still
// carries the previous state and filled amount. A false return means
// another writer got there first.
func (st *EngineDB) UpdateSwapCAS(id ethcommon.Hash, swap *agreement.Swap, prevState agreement.SwapState, prevFilled *big.Int) (bool, error) {
	query := `UPDATE swap SET filled = ?, state = ? WHERE swapId = ? AND state = ? AND filled = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	res, err := stmt.Exec(
		bigToStr(swap.Filled),
		string(swap.State),
		hashToHex(id),
		string(prevState),
		bigToStr(prevFilled),
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (st *EngineDB) GetResolver(addr ethcommon.Address) (*agreement.Resolver, bool, error) {
	query := `SELECT stake, reputation, totalVolume, successRate, active, registrationTime FROM resolver WHERE addr = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, false, err
	}

	var (
		stake, totalVolume      string
		reputation, successRate uint32
		active                  bool
		registrationTime        uint64
	)
	err = stmt.QueryRow(addrToHex(addr)).Scan(&stake, &reputation, &totalVolume, &successRate, &active, &registrationTime)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	stakeBig, err := strToBig(stake)
	if err != nil {
		return nil, false, err
	}
	volumeBig, err := strToBig(totalVolume)
	if err != nil {
		return nil, false, err
	}

	return &agreement.Resolver{
		Stake:            stakeBig,
		Reputation:       reputation,
		TotalVolume:      volumeBig,
		SuccessRate:      successRate,
		Active:           active,
		RegistrationTime: registrationTime,
	}, true, nil
}

func (st *EngineDB) HasResolver(addr ethcommon.Address) (bool, error) {
	query := `SELECT 1 FROM resolver WHERE addr = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var one int
	if err := stmt.QueryRow(addrToHex(addr)).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (st *EngineDB) PutResolver(addr ethcommon.Address, r *agreement.Resolver) error {
	query := `INSERT OR REPLACE INTO resolver (addr, stake, reputation, totalVolume, successRate, active, registrationTime)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		addrToHex(addr),
		bigToStr(r.Stake),
		r.Reputation,
		bigToStr(r.TotalVolume),
		r.SuccessRate,
		r.Active,
		r.RegistrationTime,
	)
	return err
}

func (st *EngineDB) IsSecretUsed(secret ethcommon.Hash) (bool, error) {
	query := `SELECT 1 FROM used_secret WHERE secret = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var one int
	if err := stmt.QueryRow(hashToHex(secret)).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (st *EngineDB) MarkSecretUsed(secret ethcommon.Hash) error {
	query := `INSERT OR IGNORE INTO used_secret (secret) VALUES (?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(hashToHex(secret))
	return err
}

func (st *EngineDB) AppendPartialFill(fill *agreement.PartialFill) error {
	query := `INSERT INTO partial_fill (swapId, resolver, amount, timestamp, merkleProof) VALUES (?, ?, ?, ?, ?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	proof, err := EncodeProof(fill.MerkleProof)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		hashToHex(fill.SwapId),
		addrToHex(fill.Resolver),
		bigToStr(fill.Amount),
		fill.Timestamp,
		proof,
	)
	return err
}

func (st *EngineDB) GetPartialFills(swapId ethcommon.Hash) ([]*agreement.PartialFill, error) {
	query := `SELECT resolver, amount, timestamp, merkleProof FROM partial_fill WHERE swapId = ? ORDER BY id`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(hashToHex(swapId))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fills := []*agreement.PartialFill{}
	for rows.Next() {
		var (
			resolver, amount string
			timestamp        uint64
			proofBlob        []byte
		)
		if err := rows.Scan(&resolver, &amount, &timestamp, &proofBlob); err != nil {
			return nil, err
		}

		amountBig, err := strToBig(amount)
		if err != nil {
			return nil, err
		}
		proof, err := DecodeProof(proofBlob)
		if err != nil {
			return nil, err
		}

		fills = append(fills, &agreement.PartialFill{
			SwapId:      swapId,
			Resolver:    ethcommon.HexToAddress(resolver),
			Amount:      amountBig,
			Timestamp:   timestamp,
			MerkleProof: proof,
		})
	}

	return fills, rows.Err()
}

func (st *EngineDB) GetAnalytics() (*agreement.Analytics, error) {
	query := `SELECT totalVolume, totalSwaps, totalResolvers, successRate, averageCompletionTime FROM analytics WHERE id = 0`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	var (
		totalVolume                         string
		totalSwaps, totalResolvers, sucRate uint32
		avgCompletion                       uint64
	)
	err = stmt.QueryRow().Scan(&totalVolume, &totalSwaps, &totalResolvers, &sucRate, &avgCompletion)
	if err == sql.ErrNoRows {
		return agreement.NewAnalytics(), nil
	}
	if err != nil {
		return nil, err
	}

	volumeBig, err := strToBig(totalVolume)
	if err != nil {
		return nil, err
	}

	return &agreement.Analytics{
		TotalVolume:           volumeBig,
		TotalSwaps:            totalSwaps,
		TotalResolvers:        totalResolvers,
		SuccessRate:           sucRate,
		AverageCompletionTime: avgCompletion,
	}, nil
}

func (st *EngineDB) PutAnalytics(a *agreement.Analytics) error {
	query := `INSERT OR REPLACE INTO analytics (id, totalVolume, totalSwaps, totalResolvers, successRate, averageCompletionTime)
	VALUES (0, ?, ?, ?, ?, ?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		bigToStr(a.TotalVolume),
		a.TotalSwaps,
		a.TotalResolvers,
		a.SuccessRate,
		a.AverageCompletionTime,
	)
	return err
}
