package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	solstake "github.com/solsuite/solstake"
	"github.com/solsuite/solstake/cmd/solstake/setup"
	"github.com/solsuite/solstake/wallet"
)

func CmdBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Check the SOL balance of an address, or of the wallet.",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			address, err := resolveAddress(cmd, args)
			if err != nil {
				return err
			}
			lamports, err := cli.FetchBalance(context.Background(), address)
			if err != nil {
				return err
			}
			fmt.Println(solstake.FormatLamports(lamports))
			return nil
		},
	}
	return cmd
}

func CmdTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer <to> <amount>",
		Short: "Transfer SOL from the wallet. The amount is in decimal SOL.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			lamports, err := parseLamports(args[1])
			if err != nil {
				return err
			}
			w, err := loadSession(cmd)
			if err != nil {
				return err
			}
			receipt, err := w.Run(context.Background(), wallet.Transfer{
				Recipient: recipient,
				Lamports:  lamports,
			})
			if err != nil {
				return err
			}
			printReceipt(receipt)
			return nil
		},
	}
	return cmd
}

func CmdAirdrop() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airdrop <amount> [address]",
		Short: "Request SOL from the faucet. Devnet and testnet only.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			lamports, err := parseLamports(args[0])
			if err != nil {
				return err
			}
			address, err := resolveAddress(cmd, args[1:])
			if err != nil {
				return err
			}
			signature, err := cli.RequestAirdrop(context.Background(), address, lamports)
			if err != nil {
				return err
			}
			fmt.Println(signature)
			return nil
		},
	}
	return cmd
}

func CmdConfirm() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm <signature>",
		Short: "Check the confirmation status of a submitted transaction.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			status, err := cli.ConfirmSignature(context.Background(), args[0])
			if err != nil {
				return err
			}
			jsonprint(status)
			return nil
		},
	}
	return cmd
}

func CmdHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [address]",
		Short: "List recent transactions involving an address, newest first.",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			address, err := resolveAddress(cmd, args)
			if err != nil {
				return err
			}
			entries, err := cli.FetchHistory(context.Background(), address)
			if err != nil {
				return err
			}
			printHistory(entries)
			return nil
		},
	}
	return cmd
}

func CmdLargestAccounts() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "largest-accounts",
		Short: "List the cluster's largest accounts by balance.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			accounts, err := cli.FetchLargestAccounts(context.Background())
			if err != nil {
				return err
			}
			for _, account := range accounts {
				fmt.Printf("%-44s  %s\n", account.Address, solstake.FormatLamports(account.Lamports))
			}
			return nil
		},
	}
	return cmd
}

func CmdNonce() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nonce",
		Short: "Inspect durable nonce accounts.",
	}
	cmd.AddCommand(CmdNonceShow())
	return cmd
}

func CmdNonceShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <address>",
		Short: "Show a durable nonce account.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			nonce, err := cli.FetchNonceAccount(context.Background(), address)
			if err != nil {
				return err
			}
			jsonprint(nonce)
			return nil
		},
	}
	return cmd
}
