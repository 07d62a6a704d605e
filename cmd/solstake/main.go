package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solsuite/solstake/client"
	"github.com/solsuite/solstake/cmd/solstake/setup"
	"github.com/solsuite/solstake/config"
)

func CmdSolstake() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "solstake",
		Short:        "Manage a Solana wallet and its stake accounts",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			args, err := setup.RpcArgsFromCmd(cmd)
			if err != nil {
				return err
			}
			setup.ConfigureLogger(args)

			cfg, err := config.LoadWallet()
			if err != nil {
				return err
			}
			if args.Rpc != "" {
				cfg.RpcURL = args.Rpc
			}
			if args.Commitment != "" {
				cfg.Commitment = args.Commitment
			}
			if args.KeypairRef != "" {
				cfg.Keypair = config.Secret(args.KeypairRef)
			}
			commitment, err := client.CommitmentFromString(cfg.Commitment)
			if err != nil {
				return err
			}
			cli := client.NewClient(cfg.RpcURL, commitment)

			logrus.WithFields(logrus.Fields{
				"rpc":        cfg.RpcURL,
				"commitment": commitment,
			}).Info("node")
			cmd.SetContext(setup.CreateContext(cli, cfg, args))
			return nil
		},
	}
	setup.AddRpcArgs(cmd)

	cmd.AddCommand(CmdBalance())
	cmd.AddCommand(CmdTransfer())
	cmd.AddCommand(CmdAirdrop())
	cmd.AddCommand(CmdConfirm())
	cmd.AddCommand(CmdHistory())
	cmd.AddCommand(CmdLargestAccounts())
	cmd.AddCommand(CmdNonce())
	cmd.AddCommand(CmdStake())
	cmd.AddCommand(CmdValidators())
	cmd.AddCommand(CmdCluster())
	cmd.AddCommand(CmdConfig())

	return cmd
}

func main() {
	rootCmd := CmdSolstake()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
