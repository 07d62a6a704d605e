package builder_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solsuite/solstake/builder"
	"github.com/solsuite/solstake/tx_input"
)

var (
	authority    = solana.MustPublicKeyFromBase58("Hzn3n914JaSpnxo5mBbmuCDmGL6mxWN9Ac2HzEXFSGtb")
	stakeAccount = solana.MustPublicKeyFromBase58("CCTFhyxoUHGmdQvuUxFquyYMK4H5hdqwCCN7XAXtK9HC")
	recipient    = solana.MustPublicKeyFromBase58("8zrSGLMdE6dK57Q7a8N8TDohmyft1MrsLYdRqhDvCerc")
	voteAccount  = solana.MustPublicKeyFromBase58("FvoZJRfV8LWMbkMzmXreBBFFPfCMNbiNPBtfPkvF6V4x")
	blockHash    = solana.MustHashFromBase58("DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK")
)

func baseInput() *tx_input.TxInput {
	return &tx_input.TxInput{
		RecentBlockHash: blockHash,
	}
}

func stakingInput(t *testing.T) *tx_input.StakingInput {
	t.Helper()
	input, err := tx_input.NewStakingInput(baseInput())
	require.NoError(t, err)
	return input
}

func TestTransfer(t *testing.T) {
	b := builder.NewTxBuilder(authority)
	built, err := b.Transfer(recipient, 1_500_000_000, baseInput())
	require.NoError(t, err)

	transfers := built.GetSystemTransfers()
	require.Len(t, transfers, 1)
	require.Equal(t, uint64(1_500_000_000), *transfers[0].Instruction.Lamports)
	require.Equal(t, authority, transfers[0].Instruction.GetFundingAccount().PublicKey)
	require.Equal(t, recipient, transfers[0].Instruction.GetRecipientAccount().PublicKey)
	require.Equal(t, blockHash.String(), built.RecentBlockhash())
}

func TestDeactivateBuildsSingleInstruction(t *testing.T) {
	b := builder.NewTxBuilder(authority)
	built, err := b.Deactivate(stakeAccount, baseInput())
	require.NoError(t, err)

	// no priority fee requested, so the deactivate stands alone
	require.Len(t, built.SolTx.Message.Instructions, 1)
	deactivates := built.GetDeactivateStakes()
	require.Len(t, deactivates, 1)
	require.Equal(t, stakeAccount, deactivates[0].Instruction.GetStakeAccount().PublicKey)
	require.Equal(t, authority, deactivates[0].Instruction.GetStakeAuthority().PublicKey)
}

func TestWithdrawStake(t *testing.T) {
	b := builder.NewTxBuilder(authority)
	built, err := b.WithdrawStake(stakeAccount, recipient, 2_000_000_000, baseInput())
	require.NoError(t, err)

	withdraws := built.GetStakeWithdraws()
	require.Len(t, withdraws, 1)
	require.Equal(t, uint64(2_000_000_000), *withdraws[0].Instruction.Lamports)
	require.Equal(t, stakeAccount, withdraws[0].Instruction.GetStakeAccount().PublicKey)
	require.Equal(t, recipient, withdraws[0].Instruction.GetRecipientAccount().PublicKey)
}

func TestCreateStakeAccount(t *testing.T) {
	input := stakingInput(t)
	b := builder.NewTxBuilder(authority)
	built, err := b.CreateStakeAccount(authority, authority, 5_000_000_000, input)
	require.NoError(t, err)

	creates := built.GetCreateAccounts()
	require.Len(t, creates, 1)
	require.Equal(t, uint64(5_000_000_000), creates[0].Instruction.Lamports)
	require.Equal(t, input.StakeAccount(), creates[0].Instruction.NewAccount)

	// both the wallet and the new account must sign
	sighashes, err := built.Sighashes()
	require.NoError(t, err)
	require.Len(t, sighashes, 1)
	err = built.AddSignatures(make([]byte, solana.SignatureLength))
	require.NoError(t, err)
	require.Len(t, built.SolTx.Signatures, 2)
}

func TestDelegate(t *testing.T) {
	input := stakingInput(t)
	input.ValidatorVoteAccount = voteAccount
	b := builder.NewTxBuilder(authority)
	built, err := b.Delegate(stakeAccount, input)
	require.NoError(t, err)

	delegates := built.GetDelegateStakes()
	require.Len(t, delegates, 1)
	require.Equal(t, stakeAccount, delegates[0].Instruction.GetStakeAccount().PublicKey)
	require.Equal(t, voteAccount, delegates[0].Instruction.GetVoteAccount().PublicKey)
	require.Equal(t, authority, delegates[0].Instruction.GetStakeAuthority().PublicKey)
}

func TestSplit(t *testing.T) {
	input := stakingInput(t)
	b := builder.NewTxBuilder(authority)
	built, err := b.Split(stakeAccount, 3_000_000_000, input)
	require.NoError(t, err)

	// allocate + assign + split
	require.Len(t, built.SolTx.Message.Instructions, 3)
	splits := built.GetSplitStakes()
	require.Len(t, splits, 1)
	require.Equal(t, uint64(3_000_000_000), *splits[0].Instruction.Lamports)

	err = built.AddSignatures(make([]byte, solana.SignatureLength))
	require.NoError(t, err)
	require.Len(t, built.SolTx.Signatures, 2)
}

func TestMerge(t *testing.T) {
	b := builder.NewTxBuilder(authority)
	built, err := b.Merge(stakeAccount, recipient, baseInput())
	require.NoError(t, err)

	merges := built.GetStakeMerges()
	require.Len(t, merges, 1)
	require.Equal(t, stakeAccount, merges[0].Instruction.GetDestinationAccount().PublicKey)
	require.Equal(t, recipient, merges[0].Instruction.GetSourceAccount().PublicKey)
	require.Equal(t, authority, merges[0].Instruction.GetStakeAuthorityAccount().PublicKey)
}

func TestPriorityFeePrepended(t *testing.T) {
	input := baseInput()
	input.PrioritizationFee = 1_000
	b := builder.NewTxBuilder(authority)
	built, err := b.Deactivate(stakeAccount, input)
	require.NoError(t, err)

	require.Len(t, built.SolTx.Message.Instructions, 2)
	deactivates := built.GetDeactivateStakes()
	require.Len(t, deactivates, 1)
	// the compute budget instruction comes first
	require.Equal(t, "2", deactivates[0].ID)
}
