package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solsuite/solstake/cmd/solstake/setup"
)

func CmdCluster() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Inspect the cluster the configured node belongs to.",
	}
	cmd.AddCommand(CmdClusterVersion())
	cmd.AddCommand(CmdClusterSlot())
	cmd.AddCommand(CmdClusterEpoch())
	cmd.AddCommand(CmdClusterTxCount())
	return cmd
}

func CmdClusterVersion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the node's software version.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			version, err := cli.FetchClusterVersion(context.Background())
			if err != nil {
				return err
			}
			jsonprint(version)
			return nil
		},
	}
	return cmd
}

func CmdClusterSlot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Show the current slot.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			slot, err := cli.FetchSlot(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(slot)
			return nil
		},
	}
	return cmd
}

func CmdClusterEpoch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epoch",
		Short: "Show the cluster's position within the current epoch.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			info, err := cli.FetchEpochInfo(context.Background())
			if err != nil {
				return err
			}
			jsonprint(info)
			return nil
		},
	}
	return cmd
}

func CmdClusterTxCount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx-count",
		Short: "Show the cluster's total transaction count.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			count, err := cli.FetchTransactionCount(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		},
	}
	return cmd
}
