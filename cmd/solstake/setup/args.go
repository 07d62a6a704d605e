package setup

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solsuite/solstake/config"
	"github.com/solsuite/solstake/config/constants"
)

// RpcArgs are the persistent flags every command accepts. Flags
// override the config file, which overrides built-in defaults.
type RpcArgs struct {
	Rpc            string
	ConfigPath     string
	KeypairRef     string
	Commitment     string
	NoSend         bool
	VerbosityCount int
}

func AddRpcArgs(cmd *cobra.Command) {
	cmd.PersistentFlags().String("rpc", "", "RPC url to use. Overrides the configured endpoint.")
	cmd.PersistentFlags().String("config", "", fmt.Sprintf("Path to config.yaml (may set %s).", constants.ConfigEnv))
	cmd.PersistentFlags().String("keypair", "", "Secret reference to the wallet keypair (file:, env:, vault:, raw:).")
	cmd.PersistentFlags().String("commitment", "", "Confirmation level to use (processed, confirmed, finalized).")
	cmd.PersistentFlags().Bool("no-send", false, "Build and sign transactions without broadcasting them.")
	cmd.PersistentFlags().CountP("verbose", "v", "Set verbosity.")
}

func RpcArgsFromCmd(cmd *cobra.Command) (*RpcArgs, error) {
	rpc, _ := cmd.Flags().GetString("rpc")
	configPath, _ := cmd.Flags().GetString("config")
	keypair, _ := cmd.Flags().GetString("keypair")
	commitment, _ := cmd.Flags().GetString("commitment")
	noSend, _ := cmd.Flags().GetBool("no-send")
	count, _ := cmd.Flags().GetCount("verbose")

	if keypair != "" && !config.HasTypePrefix(keypair) {
		return nil, fmt.Errorf("--keypair must be a secret reference (file:, env:, vault:, raw:), not the key itself")
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		_ = os.Setenv(constants.ConfigEnv, configPath)
	}

	return &RpcArgs{
		Rpc:            rpc,
		ConfigPath:     configPath,
		KeypairRef:     keypair,
		Commitment:     commitment,
		NoSend:         noSend,
		VerbosityCount: count,
	}, nil
}

// ConfigureLogger maps -v counts onto log levels. With no -v the level
// falls back to the environment, and the formatter is always picked up
// from there.
func ConfigureLogger(args *RpcArgs) {
	switch {
	case args.VerbosityCount >= 3:
		config.ConfigureLogger("trace")
	case args.VerbosityCount == 2:
		config.ConfigureLogger("debug")
	case args.VerbosityCount == 1:
		config.ConfigureLogger("info")
	default:
		config.ConfigureLogger()
	}
}
