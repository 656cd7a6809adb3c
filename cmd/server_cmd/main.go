package main

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/StellarBridge-io/swap-engine-go/cmd"
	"github.com/StellarBridge-io/swap-engine-go/logconfig"
)

const (
	ENV_CONFIG_FILE_PATH = "SWAP_ENGINE_CONFIG"
)

func main() {
	logconfig.ConfigProductionLogger()

	// Tool to read environment variables
	viper.AutomaticEnv()

	// Accessing an environment variable of configuration file location.
	_config_file := viper.GetString(ENV_CONFIG_FILE_PATH)
	fmt.Printf("Swap engine configuration file = %s\n", _config_file)

	// See if file exists
	if !cmd.FileExists(_config_file) {
		fmt.Printf("Swap engine configuration file not found: %s\n", _config_file)
		return
	}

	// Read from config file.
	success := initializeViper(_config_file)
	if !success {
		return
	}

	// Make the configuration
	ssc := PrepareSwapServerConfig()
	if ssc == nil {
		fmt.Printf("Error loading swap engine configuration\n")
		return
	}

	fmt.Println("Starting swap engine server... press Ctrl+C to kill the server")
	// Start server and block.
	cmd.StartSwapServerAndWait(ssc)
}

func initializeViper(filePath string) bool {
	viper.SetConfigFile(filePath)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("Error reading configuration file, %s", err)
		return false
	}
	return true
}

// PrepareSwapServerConfig reads configuration variables and returns a SwapServerConfig.
func PrepareSwapServerConfig() *cmd.SwapServerConfig {

	// *** prepare values that aren't string type ***

	minStake, ok := new(big.Int).SetString(viper.GetString("MIN_STAKE"), 10)
	if !ok {
		fmt.Printf("Invalid MIN_STAKE value: %s\n", viper.GetString("MIN_STAKE"))
		return nil
	}

	return &cmd.SwapServerConfig{
		DbPath: viper.GetString("DB_PATH"),

		Admin:         ethcommon.HexToAddress(viper.GetString("ADMIN_ADDRESS")),
		EscrowAddress: ethcommon.HexToAddress(viper.GetString("ESCROW_ADDRESS")),
		NativeToken:   ethcommon.HexToAddress(viper.GetString("NATIVE_TOKEN")),

		MinTimelock: viper.GetUint64("MIN_TIMELOCK"),
		MaxTimelock: viper.GetUint64("MAX_TIMELOCK"),
		MinStake:    minStake,

		BaseFeeRate:        viper.GetUint32("BASE_FEE_RATE"),
		ResolverRewardRate: viper.GetUint32("RESOLVER_REWARD_RATE"),

		HashScheme: viper.GetString("HASH_SCHEME"),

		HttpIP:   viper.GetString("HTTP_IP"),
		HttpPort: viper.GetString("HTTP_PORT"),
	}
}
