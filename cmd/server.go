package cmd

import (
	"database/sql"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	ethcommon "github.com/ethereum/go-ethereum/common"
	logger "github.com/sirupsen/logrus"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/common"
	"github.com/StellarBridge-io/swap-engine-go/engine"
	"github.com/StellarBridge-io/swap-engine-go/enginedb"
	"github.com/StellarBridge-io/swap-engine-go/reporter"
)

// SwapServerConfig collects everything the server needs to run.
type SwapServerConfig struct {
	DbPath string

	Admin         ethcommon.Address
	EscrowAddress ethcommon.Address
	NativeToken   ethcommon.Address

	MinTimelock uint64
	MaxTimelock uint64
	MinStake    *big.Int

	BaseFeeRate        uint32
	ResolverRewardRate uint32

	// HashScheme selects "keccak" (default) or "sha3".
	HashScheme string

	HttpIP   string
	HttpPort string
}

// instructionTransferor emits transfer instructions to the log. Actual
// asset movement happens on chain; the engine only produces the
// instruction.
type instructionTransferor struct{}

func (instructionTransferor) Transfer(token, from, to ethcommon.Address, amount *big.Int) error {
	logger.Infof("transfer instruction: token=%s from=%s to=%s amount=%v", token, from, to, amount)
	return nil
}

// StartSwapServerAndWait builds the engine from config, starts the
// http reporter and blocks until interrupted.
func StartSwapServerAndWait(ssc *SwapServerConfig) {
	db, err := sql.Open("sqlite3", ssc.DbPath)
	if err != nil {
		logger.Fatalf("cannot open database: %v", err)
	}
	defer db.Close()

	storage, err := enginedb.NewEngineDB(db)
	if err != nil {
		logger.Fatalf("cannot init engine db: %v", err)
	}
	defer storage.Close()

	var hasher agreement.Hasher = common.KeccakHasher{}
	if ssc.HashScheme == "sha3" {
		hasher = common.Sha3Hasher{}
	}

	cfg := &agreement.EngineConfig{
		Admin:              ssc.Admin,
		EscrowAddress:      ssc.EscrowAddress,
		MinTimelock:        ssc.MinTimelock,
		MaxTimelock:        ssc.MaxTimelock,
		MinStake:           ssc.MinStake,
		BaseFeeRate:        ssc.BaseFeeRate,
		ResolverRewardRate: ssc.ResolverRewardRate,
		NativeToken:        ssc.NativeToken,
	}

	eng := engine.NewEngine(cfg, storage, common.WallClock{}, hasher, instructionTransferor{})

	rep := reporter.NewHttpReporter(ssc.HttpIP, ssc.HttpPort, eng)
	go rep.Run()

	logger.Infof("swap engine server up: http=%s:%s db=%s", ssc.HttpIP, ssc.HttpPort, ssc.DbPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")
}
