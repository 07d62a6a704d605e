package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solsuite/solstake/cmd/solstake/setup"
	"github.com/solsuite/solstake/config"
	"github.com/solsuite/solstake/config/constants"
)

func CmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and bootstrap the wallet configuration.",
	}
	cmd.AddCommand(CmdConfigShow())
	cmd.AddCommand(CmdConfigInit())
	return cmd
}

func CmdConfigShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration. Secret references are shown, never their values.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapWalletConfig(cmd.Context())
			bz, err := yaml.Marshal(map[string]*config.Wallet{"wallet": cfg})
			if err != nil {
				return err
			}
			fmt.Print(string(bz))
			return nil
		},
	}
	return cmd
}

func CmdConfigInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config.yaml.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(constants.DefaultHome, "config.yaml")
			if custom, _ := cmd.Flags().GetString("path"); custom != "" {
				path = custom
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("refusing to overwrite existing config at %s", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(config.StarterConfig), 0o600); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("path", "", fmt.Sprintf("Where to write the config. Defaults to %s/config.yaml.", constants.DefaultHome))
	return cmd
}
