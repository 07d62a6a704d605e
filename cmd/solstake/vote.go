package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	solstake "github.com/solsuite/solstake"
	"github.com/solsuite/solstake/cmd/solstake/setup"
	"github.com/solsuite/solstake/errors"
)

func CmdValidators() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vote",
		Aliases: []string{"validators"},
		Short:   "Inspect the cluster's validators and their vote accounts.",
	}
	cmd.AddCommand(CmdValidatorsList())
	cmd.AddCommand(CmdValidatorsShow())
	return cmd
}

func CmdValidatorsList() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the current validators by vote account.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			validators, err := cli.FetchVoteAccounts(context.Background())
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			fmt.Printf("%-44s  %-44s  %-20s  %s\n", "VOTE ACCOUNT", "IDENTITY", "ACTIVATED STAKE", "COMMISSION")
			for i, validator := range validators {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Printf("%-44s  %-44s  %-20s  %d%%\n",
					validator.VotePubkey, validator.NodePubkey,
					solstake.FormatLamports(validator.ActivatedStake), validator.Commission)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 0, "Maximum number of validators to list. 0 lists all.")
	return cmd
}

func CmdValidatorsShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <validator>",
		Short: "Show one validator, looked up by vote account or node identity.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			validators, err := cli.FetchVoteAccounts(context.Background())
			if err != nil {
				return err
			}
			for _, validator := range validators {
				if validator.VotePubkey.Equals(address) || validator.NodePubkey.Equals(address) {
					jsonprint(validator)
					return nil
				}
			}
			return errors.NotFoundf("validator not found: %s", address)
		},
	}
	return cmd
}
