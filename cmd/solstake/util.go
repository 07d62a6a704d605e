package main

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	solstake "github.com/solsuite/solstake"
	"github.com/solsuite/solstake/client"
	"github.com/solsuite/solstake/cmd/solstake/setup"
	"github.com/solsuite/solstake/signer"
	"github.com/solsuite/solstake/wallet"
)

func jsonprint(v interface{}) {
	bz, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(bz))
}

func parseAddress(input string) (solana.PublicKey, error) {
	address, err := solana.PublicKeyFromBase58(input)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid address %q: %v", input, err)
	}
	return address, nil
}

func parseLamports(input string) (uint64, error) {
	amount, err := solstake.ParseSolAmount(input)
	if err != nil {
		return 0, err
	}
	return amount.Lamports(), nil
}

// loadSigner resolves the wallet key: --keypair flag, then the
// configured keypair reference, then the private key env var.
func loadSigner(cmd *cobra.Command) (*signer.Signer, error) {
	cfg := setup.UnwrapWalletConfig(cmd.Context())
	secret := cfg.Keypair.LoadOrBlank()
	if secret == "" {
		secret = signer.ReadPrivateKeyEnv()
	}
	if secret == "" {
		return nil, fmt.Errorf("no wallet keypair available (set wallet.keypair or %s)", signer.EnvPrivateKey)
	}
	return signer.New(secret)
}

// loadSession builds the wallet for commands that sign and submit.
func loadSession(cmd *cobra.Command) (*wallet.Wallet, error) {
	txSigner, err := loadSigner(cmd)
	if err != nil {
		return nil, err
	}
	args := setup.UnwrapArgs(cmd.Context())
	w := wallet.New(setup.UnwrapClient(cmd.Context()), txSigner)
	w.NoSend = args.NoSend
	return w, nil
}

// resolveAddress returns the explicit address argument if given, else
// the wallet's own address.
func resolveAddress(cmd *cobra.Command, args []string) (solana.PublicKey, error) {
	if len(args) > 0 {
		return parseAddress(args[0])
	}
	txSigner, err := loadSigner(cmd)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("pass an address or configure a keypair (%v)", err)
	}
	return txSigner.PublicKey(), nil
}

func shortSignature(signature string) string {
	if len(signature) <= 16 {
		return signature
	}
	return signature[:8] + "..." + signature[len(signature)-8:]
}

func printHistory(entries []client.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Println("no transactions found")
		return
	}
	fmt.Printf("%-19s  %-12s  %-8s  %s\n", "TIME", "SLOT", "STATUS", "SIGNATURE")
	for _, entry := range entries {
		when := "~"
		if entry.BlockTime != nil {
			when = entry.BlockTime.UTC().Format("2006-01-02 15:04:05")
		}
		status := "ok"
		if !entry.Succeeded {
			status = "FAILED"
		}
		fmt.Printf("%-19s  %-12d  %-8s  %s\n", when, entry.Slot, status, shortSignature(entry.Signature))
	}
}

func printReceipt(receipt *wallet.Receipt) {
	if !receipt.Submitted {
		fmt.Println(receipt.SignedTx)
		return
	}
	jsonprint(receipt)
}
