package builder

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/stake"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/solsuite/solstake/staking"
	"github.com/solsuite/solstake/tx"
	"github.com/solsuite/solstake/tx/instructions/stakeprog"
	"github.com/solsuite/solstake/tx_input"
)

// CreateStakeAccount funds a brand new account at the input's transient
// key and initializes it with the given authorities. The transient key
// must co-sign, so it is registered on the returned transaction.
func (builder TxBuilder) CreateStakeAccount(staker, withdrawer solana.PublicKey, lamports uint64, input *tx_input.StakingInput) (*tx.Tx, error) {
	stakeAccount := input.StakeAccount()
	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(lamports, staking.AccountSize, solana.StakeProgramID, builder.Authority, stakeAccount).Build(),
		stake.NewInitializeInstruction(staker, withdrawer, stakeAccount).Build(),
	}
	built, err := builder.buildSolanaTx(instructions, &input.TxInput)
	if err != nil {
		return nil, err
	}
	built.AddTransientSigner(input.StakingKey)
	return built, nil
}

// Delegate points an initialized stake account at the validator vote
// account resolved into the input.
func (builder TxBuilder) Delegate(stakeAccount solana.PublicKey, input *tx_input.StakingInput) (*tx.Tx, error) {
	instructions := []solana.Instruction{
		stake.NewDelegateStakeInstruction(input.ValidatorVoteAccount, builder.Authority, stakeAccount).Build(),
	}
	return builder.buildSolanaTx(instructions, &input.TxInput)
}

// Deactivate begins undelegating a stake account.
func (builder TxBuilder) Deactivate(stakeAccount solana.PublicKey, input *tx_input.TxInput) (*tx.Tx, error) {
	instructions := []solana.Instruction{
		stakeprog.NewDeactivateInstruction(stakeAccount, builder.Authority),
	}
	return builder.buildSolanaTx(instructions, input)
}

// WithdrawStake moves lamports out of a stake account to a recipient.
func (builder TxBuilder) WithdrawStake(stakeAccount, recipient solana.PublicKey, lamports uint64, input *tx_input.TxInput) (*tx.Tx, error) {
	instructions := []solana.Instruction{
		stakeprog.NewWithdrawInstruction(lamports, stakeAccount, recipient, builder.Authority),
	}
	return builder.buildSolanaTx(instructions, input)
}

// Split carves lamports off a stake account into a new one at the
// input's transient key. The stake program requires the destination to
// exist as a stake-program-owned allocation first.
func (builder TxBuilder) Split(source solana.PublicKey, lamports uint64, input *tx_input.StakingInput) (*tx.Tx, error) {
	destination := input.StakeAccount()
	instructions := []solana.Instruction{
		system.NewAllocateInstruction(staking.AccountSize, destination).Build(),
		system.NewAssignInstruction(solana.StakeProgramID, destination).Build(),
		stakeprog.NewSplitInstruction(lamports, source, destination, builder.Authority),
	}
	built, err := builder.buildSolanaTx(instructions, &input.TxInput)
	if err != nil {
		return nil, err
	}
	built.AddTransientSigner(input.StakingKey)
	return built, nil
}

// Merge absorbs the source stake account into the destination. The
// source account ceases to exist on success.
func (builder TxBuilder) Merge(destination, source solana.PublicKey, input *tx_input.TxInput) (*tx.Tx, error) {
	instructions := []solana.Instruction{
		stakeprog.NewMergeInstruction(destination, source, builder.Authority),
	}
	return builder.buildSolanaTx(instructions, input)
}
