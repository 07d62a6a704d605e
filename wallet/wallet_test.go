package wallet_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"

	"github.com/solsuite/solstake/client"
	"github.com/solsuite/solstake/errors"
	"github.com/solsuite/solstake/signer"
	"github.com/solsuite/solstake/testutil"
	"github.com/solsuite/solstake/tx"
	"github.com/solsuite/solstake/wallet"
)

const blockhashResponse = `{"context":{"slot":83986105},"value":{"blockhash":"DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK","lastValidBlockHeight":83986105}}`
const submittedSignature = "2id3YC2jK9G5Wo2phDx4gJVAew8DcY5NAojnVuao8rkxwPYPe8cSwE5GzhEgJA2y8fVjDEo6iR6ykBvDxrTQrtpb"

func newTestWallet(t *testing.T, rpcURL string) *wallet.Wallet {
	txSigner, err := signer.New(strings.Repeat("42", 32))
	require.NoError(t, err)
	return wallet.New(client.NewClient(rpcURL, rpc.CommitmentConfirmed), txSigner)
}

func TestDeactivate(t *testing.T) {
	require := require.New(t)
	stakeAccount := solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo")

	txSigner, err := signer.New(strings.Repeat("42", 32))
	require.NoError(err)
	authority := txSigner.PublicKey()

	server, close := testutil.MockJSONRPC(t, []string{
		testutil.AccountInfoResponse(
			solana.StakeProgramID.String(),
			2_283_880_000,
			testutil.DelegatedStakeData(2_282_880, authority, authority,
				solana.MustPublicKeyFromBase58("FwR3PbjS5iyqzLiLugrBqKSa5EKZ4vK9SKs7eQXtT59f"),
				2_000_000_000, 200, ^uint64(0)),
		),
		blockhashResponse,
		`[]`,
		`"` + submittedSignature + `"`,
		`{"context":{"slot":83986110},"value":[{"slot":83986106,"confirmations":null,"err":null,"confirmationStatus":"finalized"}]}`,
	})
	defer close()

	w := wallet.New(client.NewClient(server.URL, rpc.CommitmentConfirmed), txSigner)
	receipt, err := w.Run(context.Background(), wallet.DeactivateStake{StakeAccount: stakeAccount})
	require.NoError(err)
	require.True(receipt.Submitted)
	require.Equal(submittedSignature, receipt.Signature)
	require.NotEmpty(receipt.SignedTx)
}

func TestDeactivateNoSend(t *testing.T) {
	require := require.New(t)
	stakeAccount := solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo")

	txSigner, err := signer.New(strings.Repeat("42", 32))
	require.NoError(err)
	authority := txSigner.PublicKey()

	// only three responses: the mock proves nothing was broadcast
	server, close := testutil.MockJSONRPC(t, []string{
		testutil.AccountInfoResponse(
			solana.StakeProgramID.String(),
			2_283_880_000,
			testutil.DelegatedStakeData(2_282_880, authority, authority,
				solana.MustPublicKeyFromBase58("FwR3PbjS5iyqzLiLugrBqKSa5EKZ4vK9SKs7eQXtT59f"),
				2_000_000_000, 200, ^uint64(0)),
		),
		blockhashResponse,
		`[]`,
	})
	defer close()

	w := wallet.New(client.NewClient(server.URL, rpc.CommitmentConfirmed), txSigner)
	w.NoSend = true
	receipt, err := w.Run(context.Background(), wallet.DeactivateStake{StakeAccount: stakeAccount})
	require.NoError(err)
	require.False(receipt.Submitted)
	require.Empty(receipt.Signature)

	raw, err := base64.StdEncoding.DecodeString(receipt.SignedTx)
	require.NoError(err)
	solTx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	require.NoError(err)
	decoded := tx.NewTxFrom(solTx)
	deactivates := decoded.GetDeactivateStakes()
	require.Len(deactivates, 1)
	require.Equal(stakeAccount, deactivates[0].Instruction.GetStakeAccount().PublicKey)
	require.Equal(authority, deactivates[0].Instruction.GetStakeAuthority().PublicKey)
}

func TestDeactivateAlreadyProcessed(t *testing.T) {
	require := require.New(t)
	stakeAccount := solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo")

	txSigner, err := signer.New(strings.Repeat("42", 32))
	require.NoError(err)
	authority := txSigner.PublicKey()

	// the node reports a duplicate submission: an earlier broadcast of
	// this same transaction already landed, so the run still succeeds
	server, close := testutil.MockJSONRPC(t, []string{
		testutil.AccountInfoResponse(
			solana.StakeProgramID.String(),
			2_283_880_000,
			testutil.DelegatedStakeData(2_282_880, authority, authority,
				solana.MustPublicKeyFromBase58("FwR3PbjS5iyqzLiLugrBqKSa5EKZ4vK9SKs7eQXtT59f"),
				2_000_000_000, 200, ^uint64(0)),
		),
		blockhashResponse,
		`[]`,
		`{"jsonrpc":"2.0","id":1,"error":{"code":-32002,"message":"Transaction has already been processed"}}`,
		`{"context":{"slot":83986110},"value":[{"slot":83986106,"confirmations":null,"err":null,"confirmationStatus":"finalized"}]}`,
	})
	defer close()

	w := wallet.New(client.NewClient(server.URL, rpc.CommitmentConfirmed), txSigner)
	receipt, err := w.Run(context.Background(), wallet.DeactivateStake{StakeAccount: stakeAccount})
	require.NoError(err)
	require.True(receipt.Submitted)

	// the reported signature is this transaction's own first signature
	raw, err := base64.StdEncoding.DecodeString(receipt.SignedTx)
	require.NoError(err)
	solTx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	require.NoError(err)
	require.Equal(tx.NewTxFrom(solTx).Hash(), receipt.Signature)
}

func TestDeactivateResubmitsUntilAccepted(t *testing.T) {
	require := require.New(t)
	stakeAccount := solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo")

	txSigner, err := signer.New(strings.Repeat("42", 32))
	require.NoError(err)
	authority := txSigner.PublicKey()

	// the first two broadcasts hit a node that has not seen the
	// blockhash yet; the third is accepted
	server, close := testutil.MockJSONRPC(t, []string{
		testutil.AccountInfoResponse(
			solana.StakeProgramID.String(),
			2_283_880_000,
			testutil.DelegatedStakeData(2_282_880, authority, authority,
				solana.MustPublicKeyFromBase58("FwR3PbjS5iyqzLiLugrBqKSa5EKZ4vK9SKs7eQXtT59f"),
				2_000_000_000, 200, ^uint64(0)),
		),
		blockhashResponse,
		`[]`,
		`{"jsonrpc":"2.0","id":1,"error":{"code":-32002,"message":"Transaction simulation failed: Blockhash not found"}}`,
		`{"jsonrpc":"2.0","id":1,"error":{"code":-32002,"message":"Transaction simulation failed: Blockhash not found"}}`,
		`"` + submittedSignature + `"`,
		`{"context":{"slot":83986110},"value":[{"slot":83986106,"confirmations":null,"err":null,"confirmationStatus":"finalized"}]}`,
	})
	defer close()

	w := wallet.New(client.NewClient(server.URL, rpc.CommitmentConfirmed), txSigner)
	w.ResubmitInterval = time.Millisecond
	receipt, err := w.Run(context.Background(), wallet.DeactivateStake{StakeAccount: stakeAccount})
	require.NoError(err)
	require.True(receipt.Submitted)
	require.Equal(submittedSignature, receipt.Signature)
}

func TestDeactivateRejectionNotRetried(t *testing.T) {
	require := require.New(t)
	stakeAccount := solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo")

	txSigner, err := signer.New(strings.Repeat("42", 32))
	require.NoError(err)
	authority := txSigner.PublicKey()

	// a program rejection is final: the mock proves no resubmission
	server, close := testutil.MockJSONRPC(t, []string{
		testutil.AccountInfoResponse(
			solana.StakeProgramID.String(),
			2_283_880_000,
			testutil.DelegatedStakeData(2_282_880, authority, authority,
				solana.MustPublicKeyFromBase58("FwR3PbjS5iyqzLiLugrBqKSa5EKZ4vK9SKs7eQXtT59f"),
				2_000_000_000, 200, ^uint64(0)),
		),
		blockhashResponse,
		`[]`,
		`{"jsonrpc":"2.0","id":1,"error":{"code":-32002,"message":"Transaction simulation failed: Error processing Instruction 0: custom program error: 0x6"}}`,
	})
	defer close()

	w := wallet.New(client.NewClient(server.URL, rpc.CommitmentConfirmed), txSigner)
	w.ResubmitInterval = time.Millisecond
	_, err = w.Run(context.Background(), wallet.DeactivateStake{StakeAccount: stakeAccount})
	require.Error(err)
	require.Equal(errors.SubmissionRejected, errors.StatusOf(err))
}

func TestWithdrawDeniedBeforeAnySubmission(t *testing.T) {
	require := require.New(t)
	stakeAccount := solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo")

	// only the state lookups are answered. Any build or submit
	// attempt would trip the mock's extra-call check.
	server, close := testutil.MockJSONRPC(t, []string{
		testutil.AccountInfoResponse(solana.StakeProgramID.String(), 2_282_880, testutil.UninitializedStakeData()),
		`{"absoluteSlot":83986105,"blockHeight":83000000,"epoch":500,"slotIndex":2790,"slotsInEpoch":432000,"transactionCount":22661093}`,
	})
	defer close()

	w := newTestWallet(t, server.URL)
	receipt, err := w.Run(context.Background(), wallet.WithdrawStake{StakeAccount: stakeAccount})
	require.Error(err)
	require.Nil(receipt)
	require.True(errors.IsDenied(err))
	require.Equal(errors.WrongState, errors.ReasonOf(err))
}

func TestDeactivateNotFound(t *testing.T) {
	require := require.New(t)
	server, close := testutil.MockJSONRPC(t, `{"context":{"slot":83986105},"value":null}`)
	defer close()

	w := newTestWallet(t, server.URL)
	_, err := w.Run(context.Background(), wallet.DeactivateStake{
		StakeAccount: solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo"),
	})
	require.Error(err)
	require.Equal(errors.NotFound, errors.StatusOf(err))
}

func TestDeactivateNotAuthorized(t *testing.T) {
	require := require.New(t)
	other := solana.MustPublicKeyFromBase58("FwR3PbjS5iyqzLiLugrBqKSa5EKZ4vK9SKs7eQXtT59f")

	server, close := testutil.MockJSONRPC(t, testutil.AccountInfoResponse(
		solana.StakeProgramID.String(),
		2_283_880_000,
		testutil.DelegatedStakeData(2_282_880, other, other, other, 2_000_000_000, 200, ^uint64(0)),
	))
	defer close()

	w := newTestWallet(t, server.URL)
	_, err := w.Run(context.Background(), wallet.DeactivateStake{
		StakeAccount: solana.MustPublicKeyFromBase58("Hzr4Sqt7t26eLcJQDBzQhqCsHSmdYUFRWn2s4fcUfVMo"),
	})
	require.Error(err)
	require.Equal(errors.NotAuthorized, errors.ReasonOf(err))
}
