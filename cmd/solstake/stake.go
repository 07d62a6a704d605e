package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	solstake "github.com/solsuite/solstake"
	"github.com/solsuite/solstake/client/types"
	"github.com/solsuite/solstake/cmd/solstake/setup"
	"github.com/solsuite/solstake/staking"
	"github.com/solsuite/solstake/wallet"
)

func CmdStake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Manage the wallet's stake accounts.",
	}
	cmd.AddCommand(CmdStakeCreate())
	cmd.AddCommand(CmdStakeDelegate())
	cmd.AddCommand(CmdStakeDeactivate())
	cmd.AddCommand(CmdStakeWithdraw())
	cmd.AddCommand(CmdStakeSplit())
	cmd.AddCommand(CmdStakeMerge())
	cmd.AddCommand(CmdStakeShow())
	cmd.AddCommand(CmdStakeList())
	cmd.AddCommand(CmdStakeHistory())
	return cmd
}

func CmdStakeHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <stake-account>",
		Short: "List recent transactions involving a stake account, newest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			// confirm it exists and is a stake account before listing
			if _, err := cli.FetchStakeAccount(context.Background(), address); err != nil {
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

func CmdStakeCreate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <amount>",
		Short: "Fund and initialize a new stake account. The amount is in decimal SOL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lamports, err := parseLamports(args[0])
			if err != nil {
				return err
			}
			op := wallet.CreateStake{Lamports: lamports}
			if stakerRaw, _ := cmd.Flags().GetString("staker"); stakerRaw != "" {
				if op.Staker, err = parseAddress(stakerRaw); err != nil {
					return err
				}
			}
			if withdrawerRaw, _ := cmd.Flags().GetString("withdrawer"); withdrawerRaw != "" {
				if op.Withdrawer, err = parseAddress(withdrawerRaw); err != nil {
					return err
				}
			}
			w, err := loadSession(cmd)
			if err != nil {
				return err
			}
			receipt, err := w.Run(context.Background(), op)
			if err != nil {
				return err
			}
			printReceipt(receipt)
			return nil
		},
	}
	cmd.Flags().String("staker", "", "Stake authority of the new account. Defaults to the wallet.")
	cmd.Flags().String("withdrawer", "", "Withdraw authority of the new account. Defaults to the wallet.")
	return cmd
}

func CmdStakeDelegate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delegate <stake-account> <validator>",
		Short: "Delegate a stake account to a validator. The validator may be its vote account or node identity.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stakeAccount, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			validator, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			w, err := loadSession(cmd)
			if err != nil {
				return err
			}
			receipt, err := w.Run(context.Background(), wallet.DelegateStake{
				StakeAccount: stakeAccount,
				Validator:    validator,
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

func CmdStakeDeactivate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deactivate <stake-account>",
		Short: "Begin undelegating a stake account. The stake cools down over the following epoch boundary.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stakeAccount, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			w, err := loadSession(cmd)
			if err != nil {
				return err
			}
			receipt, err := w.Run(context.Background(), wallet.DeactivateStake{StakeAccount: stakeAccount})
			if err != nil {
				return err
			}
			printReceipt(receipt)
			return nil
		},
	}
	return cmd
}

func CmdStakeWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw <stake-account> <recipient> [amount]",
		Short: "Withdraw SOL from a cooled-down stake account. Omitting the amount withdraws everything and closes the account.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			stakeAccount, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			recipient, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			op := wallet.WithdrawStake{StakeAccount: stakeAccount, Recipient: recipient}
			if len(args) > 2 {
				if op.Lamports, err = parseLamports(args[2]); err != nil {
					return err
				}
			}
			w, err := loadSession(cmd)
			if err != nil {
				return err
			}
			receipt, err := w.Run(context.Background(), op)
			if err != nil {
				return err
			}
			printReceipt(receipt)
			return nil
		},
	}
	return cmd
}

func CmdStakeSplit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <stake-account> <amount>",
		Short: "Split SOL off a stake account into a new one, preserving the delegation state.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseAddress(args[0])
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
			receipt, err := w.Run(context.Background(), wallet.SplitStake{
				Source:   source,
				Lamports: lamports,
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

func CmdStakeMerge() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <destination> <source>",
		Short: "Merge the source stake account into the destination. The source ceases to exist.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			source, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			w, err := loadSession(cmd)
			if err != nil {
				return err
			}
			receipt, err := w.Run(context.Background(), wallet.MergeStake{
				Destination: destination,
				Source:      source,
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

func CmdStakeShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <stake-account>",
		Short: "Show a stake account's balance, authorities and delegation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			if useParsed, _ := cmd.Flags().GetBool("parsed"); useParsed {
				parsed, err := cli.LookupStakeAccountParsed(context.Background(), address)
				if err != nil {
					return err
				}
				jsonprint(parsed)
				return nil
			}
			account, err := cli.FetchStakeAccount(context.Background(), address)
			if err != nil {
				return err
			}
			epoch, err := cli.FetchEpoch(context.Background())
			if err != nil {
				return err
			}
			printStakeAccount(account, epoch)
			return nil
		},
	}
	cmd.Flags().Bool("parsed", false, "Print the node's jsonParsed rendering of the account instead.")
	return cmd
}

func CmdStakeList() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [staker]",
		Short: "List the stake accounts whose stake authority is the given address, or the wallet.",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			staker, err := resolveAddress(cmd, args)
			if err != nil {
				return err
			}
			accounts, err := cli.FetchStakeAccountsByStaker(context.Background(), staker)
			if err != nil {
				return err
			}
			epoch, err := cli.FetchEpoch(context.Background())
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println("no stake accounts found")
				return nil
			}
			fmt.Printf("%-44s  %-18s  %-13s  %s\n", "ADDRESS", "BALANCE", "STATE", "VALIDATOR")
			for _, account := range accounts {
				state := account.State.Name()
				validator := ""
				if delegation, ok := account.Delegation(); ok {
					state = string(types.DelegationState(delegation.ActivationEpoch, delegation.DeactivationEpoch, epoch))
					validator = delegation.Voter.String()
				}
				fmt.Printf("%-44s  %-18s  %-13s  %s\n",
					account.Address, solstake.FormatLamports(account.Lamports), state, validator)
			}
			return nil
		},
	}
	return cmd
}

func printStakeAccount(account *staking.StakeAccount, currentEpoch uint64) {
	fmt.Printf("address:      %s\n", account.Address)
	fmt.Printf("balance:      %s\n", solstake.FormatLamports(account.Lamports))
	fmt.Printf("state:        %s\n", account.State.Name())
	meta, ok := account.Meta()
	if !ok {
		return
	}
	fmt.Printf("rent reserve: %s\n", solstake.FormatLamports(meta.RentExemptReserve))
	fmt.Printf("staker:       %s\n", meta.Authorized.Staker)
	fmt.Printf("withdrawer:   %s\n", meta.Authorized.Withdrawer)
	if meta.Lockup.Epoch > 0 || meta.Lockup.UnixTimestamp > 0 {
		fmt.Printf("lockup:       epoch %d, timestamp %d, custodian %s\n",
			meta.Lockup.Epoch, meta.Lockup.UnixTimestamp, meta.Lockup.Custodian)
	}
	delegation, ok := account.Delegation()
	if !ok {
		return
	}
	fmt.Printf("validator:    %s\n", delegation.Voter)
	fmt.Printf("delegated:    %s\n", solstake.FormatLamports(delegation.StakeLamports))
	fmt.Printf("lifecycle:    %s\n", types.DelegationState(delegation.ActivationEpoch, delegation.DeactivationEpoch, currentEpoch))
	if delegation.DeactivationRequested() {
		fmt.Printf("deactivation: epoch %d\n", delegation.DeactivationEpoch)
	}
}
