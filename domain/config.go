package domain

import (
	"crypto/ecdsa"
	"fmt"
	"log"
	"math/big"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/viper"
)

const (
	SepoliaChainId  = 11155111
	SepoliaRpcUrl   = "https://ethereum-sepolia-rpc.publicnode.com"
	DefaultDecimals = 18
)

var (
	ErrorInvalidChainId = fmt.Errorf("chain_id must be a positive integer")
	ErrorInvalidRpcUrl  = fmt.Errorf("rpc_url must not be empty")

	ErrorNoPrivateKey          = fmt.Errorf("no private key is defined")
	ErrorPrivateKeyConflict    = fmt.Errorf("only one of private_key or private_key_file must be defined")
	ErrorReadingPrivateKeyFile = fmt.Errorf("error in reading private key file")
	ErrorInvalidPrivateKey     = fmt.Errorf("invalid private key")

	ErrorInvalidPosterAddress = fmt.Errorf("invalid poster address")
	ErrorInvalidTokenAddress  = fmt.Errorf("invalid token address")

	ErrorInvalidRefreshInterval = fmt.Errorf("invalid time interval for refresh process")

	ErrorInvalidDeployTokenAddress = fmt.Errorf("invalid deploy token address")
	ErrorInvalidDeployThreshold    = fmt.Errorf("deploy threshold must be a non-negative decimal integer")
	ErrorInvalidDeployNewOwner     = fmt.Errorf("invalid deploy new owner address")
)

var (
	TrailingSlashRE = regexp.MustCompile("/+$")
)

var (
	dbUri string

	network       NetworkParams
	walletRpcUrl  string
	posterAddress common.Address
	tokenAddress  common.Address

	privateKey *ecdsa.PrivateKey

	refreshInterval time.Duration
	metricsAddr     string

	posterArtifact     string
	deployTokenAddress common.Address
	deployThreshold    *big.Int
	deployNewOwner     common.Address
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("chain_id", SepoliaChainId)
	viper.SetDefault("chain_name", "Sepolia Test Network")
	viper.SetDefault("rpc_url", SepoliaRpcUrl)
	viper.SetDefault("explorer_url", "https://sepolia.etherscan.io")
	viper.SetDefault("currency_name", "Sepolia ETH")
	viper.SetDefault("currency_symbol", "ETH")
	viper.SetDefault("currency_decimals", DefaultDecimals)

	viper.SetDefault("poster_address", "0x60349E3B0A05dbd8BE334f67B48e2e58012C02bc")
	viper.SetDefault("token_address", "0x96C12162c7DC9FBec711112513E1817cbdF80980")

	viper.SetDefault("refresh_interval", "30s")

	viper.SetDefault("poster_artifact", "artifacts/Poster.json")
	viper.SetDefault("deploy_token_address", "0x0000000000000000000000000000000000000000")
	viper.SetDefault("deploy_threshold", "0")
	viper.SetDefault("deploy_new_owner", "0xB3C1BE13202342256696191C5b2B8E142F593855")
}

func ReadConfig(filePath string) {
	if filePath != "" {
		viper.SetConfigFile(filePath)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("⚠️ Failed reading config file: %v\n", err.Error())
	}

	err := initializeVariables()
	if err != nil {
		log.Fatalf("Configuration error - %v\n", err.Error())
	}
}

// This method processes the configuration parameters and keeps the processed values
// in some variables for later accesses rapidly.
func initializeVariables() error {
	var err error

	// Database stuff
	dbUri = TrailingSlashRE.ReplaceAllString(viper.GetString("service_db_uri"), "")

	// Network stuff
	chainId, ok := new(big.Int).SetString(strings.TrimSpace(viper.GetString("chain_id")), 10)
	if !ok || chainId.Sign() <= 0 {
		return ErrorInvalidChainId
	}

	rpcUrl := strings.TrimSpace(viper.GetString("rpc_url"))
	if rpcUrl == "" {
		return ErrorInvalidRpcUrl
	}

	network = NetworkParams{
		ChainId:   chainId,
		ChainName: strings.TrimSpace(viper.GetString("chain_name")),
		RpcUrls:   []string{rpcUrl},
		NativeCurrency: Currency{
			Name:     viper.GetString("currency_name"),
			Symbol:   viper.GetString("currency_symbol"),
			Decimals: uint8(viper.GetUint("currency_decimals")),
		},
	}
	if explorer := strings.TrimSpace(viper.GetString("explorer_url")); explorer != "" {
		network.BlockExplorerUrls = []string{TrailingSlashRE.ReplaceAllString(explorer, "")}
	}

	walletRpcUrl = strings.TrimSpace(viper.GetString("wallet_rpc_url"))
	if walletRpcUrl == "" {
		walletRpcUrl = rpcUrl
	}

	// Contract stuff
	posterAddress, err = parseAddress(viper.GetString("poster_address"), ErrorInvalidPosterAddress)
	if err != nil {
		return err
	}

	tokenAddress, err = parseAddress(viper.GetString("token_address"), ErrorInvalidTokenAddress)
	if err != nil {
		return err
	}

	// Wallet stuff
	key := strings.TrimSpace(viper.GetString("private_key"))
	keyFile := strings.TrimSpace(viper.GetString("private_key_file"))
	if key == "" && keyFile == "" {
		return ErrorNoPrivateKey
	}
	if key != "" && keyFile != "" {
		return ErrorPrivateKeyConflict
	}

	if keyFile != "" {
		key, err = readPrivateKeyFile(keyFile)
		if err != nil {
			return ErrorReadingPrivateKeyFile
		}
	}

	privateKey, err = crypto.HexToECDSA(strings.TrimPrefix(key, "0x"))
	if err != nil {
		log.Printf("Failed to parse private key - %v\n", err.Error())
		return ErrorInvalidPrivateKey
	}

	//---------------------------------------------------------------
	// refresh interval
	strValue := viper.GetString("refresh_interval")
	refreshInterval, err = time.ParseDuration(strValue)
	if err != nil || refreshInterval <= 0 {
		return ErrorInvalidRefreshInterval
	}

	metricsAddr = strings.TrimSpace(viper.GetString("metrics_addr"))

	//---------------------------------------------------------------
	// deployment
	posterArtifact = strings.TrimSpace(viper.GetString("poster_artifact"))

	deployTokenAddress, err = parseAddress(viper.GetString("deploy_token_address"), ErrorInvalidDeployTokenAddress)
	if err != nil {
		return err
	}

	deployThreshold, ok = new(big.Int).SetString(strings.TrimSpace(viper.GetString("deploy_threshold")), 10)
	if !ok || deployThreshold.Sign() < 0 {
		return ErrorInvalidDeployThreshold
	}

	deployNewOwner, err = parseAddress(viper.GetString("deploy_new_owner"), ErrorInvalidDeployNewOwner)
	if err != nil {
		return err
	}

	return nil
}

func parseAddress(value string, invalid error) (common.Address, error) {
	value = strings.TrimSpace(value)
	if !common.IsHexAddress(value) {
		return common.Address{}, invalid
	}
	return common.HexToAddress(value), nil
}

func readPrivateKeyFile(filePath string) (string, error) {

	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Failed to read private key file - %v\n", err.Error())
		return "", err
	}

	return strings.TrimSpace(string(fileContent)), nil
}

//-------------------------------------------------------------------
// Normal configuration values

func GetDbUri() string {
	return dbUri
}

func GetNetwork() NetworkParams {
	return network
}

func GetChainId() *big.Int {
	return network.ChainId
}

func GetWalletRpcUrl() string {
	return walletRpcUrl
}

func GetPosterAddress() common.Address {
	return posterAddress
}

func GetTokenAddress() common.Address {
	return tokenAddress
}

func GetPrivateKey() *ecdsa.PrivateKey {
	return privateKey
}

func GetRefreshInterval() time.Duration {
	return refreshInterval
}

func GetMetricsAddr() string {
	return metricsAddr
}

func GetPosterArtifact() string {
	return posterArtifact
}

func GetDeployTokenAddress() common.Address {
	return deployTokenAddress
}

func GetDeployThreshold() *big.Int {
	return new(big.Int).Set(deployThreshold)
}

func GetDeployNewOwner() common.Address {
	return deployNewOwner
}
