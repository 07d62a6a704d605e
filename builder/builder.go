// Package builder assembles unsigned transactions, one method per
// wallet operation. Amounts are always atomic lamports here; display
// conversion happens at the boundary that parsed the user input.
package builder

import (
	"github.com/gagliardetto/solana-go"
	compute_budget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/solsuite/solstake/tx"
	"github.com/solsuite/solstake/tx_input"
)

// TxBuilder builds transactions paid for and signed by a single
// authority, the wallet key.
type TxBuilder struct {
	Authority solana.PublicKey
}

func NewTxBuilder(authority solana.PublicKey) TxBuilder {
	return TxBuilder{Authority: authority}
}

// Transfer moves lamports from the wallet to a recipient.
func (builder TxBuilder) Transfer(to solana.PublicKey, lamports uint64, input *tx_input.TxInput) (*tx.Tx, error) {
	instructions := []solana.Instruction{
		system.NewTransferInstruction(
			lamports,
			builder.Authority,
			to,
		).Build(),
	}
	return builder.buildSolanaTx(instructions, input)
}

func (builder TxBuilder) buildSolanaTx(instructions []solana.Instruction, input *tx_input.TxInput) (*tx.Tx, error) {
	if priorityFee := input.GetLimitedPrioritizationFee(0); priorityFee > 0 {
		instructions = append([]solana.Instruction{
			compute_budget.NewSetComputeUnitPriceInstruction(priorityFee).Build(),
		}, instructions...)
	}
	solTx, err := solana.NewTransaction(
		instructions,
		input.RecentBlockHash,
		solana.TransactionPayer(builder.Authority),
	)
	if err != nil {
		return nil, err
	}
	return &tx.Tx{
		SolTx: solTx,
	}, nil
}
