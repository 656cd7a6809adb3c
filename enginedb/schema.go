package enginedb

import "strings"

var (
	strZeroBytes32 = strings.Repeat("0", 64)

	// table that stores the life cycle of a swap
	swapTable = `CREATE TABLE IF NOT EXISTS swap (
		swapId CHAR(64) PRIMARY KEY NOT NULL,
		initiator CHAR(40) NOT NULL,
		token CHAR(40) NOT NULL,
		amount VARCHAR(40) NOT NULL,
		filled VARCHAR(40) NOT NULL,
		secretHash CHAR(64) NOT NULL,
		timelock BIGINT UNSIGNED NOT NULL,
		counterpartAddress BLOB,
		state VARCHAR(14) NOT NULL,
		partialFillEnabled BOOLEAN NOT NULL,
		merkleRoot CHAR(64) NOT NULL,
		createdAt BIGINT UNSIGNED NOT NULL,
		CONSTRAINT chk_state CHECK (state IN ('initiated', 'partial_filled', 'completed', 'refunded', 'expired')),
		CONSTRAINT chk_secretHash CHECK (secretHash != '` + strZeroBytes32 + `')
	);`

	resolverTable = `CREATE TABLE IF NOT EXISTS resolver (
		addr CHAR(40) PRIMARY KEY NOT NULL,
		stake VARCHAR(40) NOT NULL,
		reputation INTEGER UNSIGNED NOT NULL,
		totalVolume VARCHAR(40) NOT NULL,
		successRate INTEGER UNSIGNED NOT NULL,
		active BOOLEAN NOT NULL,
		registrationTime BIGINT UNSIGNED NOT NULL
	);`

	// append-only audit trail of executed fills
	fillTable = `CREATE TABLE IF NOT EXISTS partial_fill (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		swapId CHAR(64) NOT NULL,
		resolver CHAR(40) NOT NULL,
		amount VARCHAR(40) NOT NULL,
		timestamp BIGINT UNSIGNED NOT NULL,
		merkleProof BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_fill_swap ON partial_fill (swapId);`

	// global set of revealed secrets
	secretTable = `CREATE TABLE IF NOT EXISTS used_secret (
		secret CHAR(64) PRIMARY KEY NOT NULL
	);`

	// single-row table of aggregate counters
	analyticsTable = `CREATE TABLE IF NOT EXISTS analytics (
		id INTEGER PRIMARY KEY CHECK (id = 0),
		totalVolume VARCHAR(40) NOT NULL,
		totalSwaps INTEGER UNSIGNED NOT NULL,
		totalResolvers INTEGER UNSIGNED NOT NULL,
		successRate INTEGER UNSIGNED NOT NULL,
		averageCompletionTime BIGINT UNSIGNED NOT NULL
	);`

	swapParamList = " swapId, initiator, token, amount, filled, secretHash, timelock, counterpartAddress, state, partialFillEnabled, merkleRoot, createdAt "
)
