package client

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	"github.com/solsuite/solstake/errors"
	"github.com/solsuite/solstake/staking"
	"github.com/solsuite/solstake/tx"
	"github.com/solsuite/solstake/tx_input"
)

// Client wraps the node JSON-RPC connection. Construct it once at
// startup and share it; every method fetches fresh state.
type Client struct {
	Sol        *rpc.Client
	commitment rpc.CommitmentType
}

func NewClient(rpcURL string, commitment rpc.CommitmentType) *Client {
	return &Client{
		Sol:        rpc.New(rpcURL),
		commitment: commitment,
	}
}

func (client *Client) Commitment() rpc.CommitmentType {
	return client.commitment
}

// CommitmentFromString parses a configured confirmation level.
func CommitmentFromString(level string) (rpc.CommitmentType, error) {
	switch level {
	case "processed":
		return rpc.CommitmentProcessed, nil
	case "confirmed", "":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	}
	return "", fmt.Errorf("invalid commitment level: %q (options: processed, confirmed, finalized)", level)
}

// FetchTxInput captures the chain state a new transaction is built
// against: the latest blockhash and a prioritization fee averaged from
// what the network recently paid.
func (client *Client) FetchTxInput(ctx context.Context, feePayer solana.PublicKey) (*tx_input.TxInput, error) {
	input := tx_input.NewTxInput()

	recent, err := client.Sol.GetLatestBlockhash(ctx, client.commitment)
	if err != nil {
		return nil, errors.NetworkErrorf("could not get latest blockhash: %v", err)
	}
	if recent == nil || recent.Value == nil {
		return nil, errors.NetworkErrorf("empty response fetching latest blockhash")
	}
	input.RecentBlockHash = recent.Value.Blockhash
	input.SetUnix(time.Now().Unix())

	fees, err := client.Sol.GetRecentPrioritizationFees(ctx, solana.PublicKeySlice{feePayer})
	if err != nil {
		return nil, errors.NetworkErrorf("could not lookup priority fees: %v", err)
	}
	feeCount := uint64(0)
	// start with 100 min priority fee, then average in the recent priority fees paid.
	feeSum := uint64(100)
	for _, fee := range fees {
		if fee.PrioritizationFee > 0 {
			feeSum += fee.PrioritizationFee
			feeCount += 1
		}
	}
	if feeCount > 0 {
		input.PrioritizationFee = feeSum / feeCount
	} else {
		input.PrioritizationFee = 100
	}
	return input, nil
}

// FetchStakeAccount reads and decodes a stake account. The returned
// snapshot is only as current as the node's view at this commitment;
// it must be refetched for every operation, never cached.
func (client *Client) FetchStakeAccount(ctx context.Context, address solana.PublicKey) (*staking.StakeAccount, error) {
	info, err := client.Sol.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: client.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if stderrors.Is(err, rpc.ErrNotFound) {
			return nil, errors.NotFoundf("no account found at %s", address)
		}
		return nil, errors.NetworkErrorf("could not fetch account %s: %v", address, err)
	}
	if info == nil || info.Value == nil {
		return nil, errors.NotFoundf("no account found at %s", address)
	}
	if !info.Value.Owner.Equals(solana.StakeProgramID) {
		return nil, errors.Errorf(errors.OwnershipError,
			"account %s is owned by %s, not the stake program %s",
			address, info.Value.Owner, solana.StakeProgramID)
	}
	state, err := staking.DecodeState(info.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	return &staking.StakeAccount{
		Address:  address,
		Lamports: info.Value.Lamports,
		State:    state,
	}, nil
}

// FetchEpoch returns the current epoch.
func (client *Client) FetchEpoch(ctx context.Context) (uint64, error) {
	info, err := client.Sol.GetEpochInfo(ctx, client.commitment)
	if err != nil {
		return 0, errors.NetworkErrorf("could not fetch epoch info: %v", err)
	}
	return info.Epoch, nil
}

// FetchBalance returns the lamport balance of any account, zero if the
// account does not exist.
func (client *Client) FetchBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	out, err := client.Sol.GetBalance(ctx, address, client.commitment)
	if err != nil {
		return 0, errors.NetworkErrorf("could not fetch balance of %s: %v", address, err)
	}
	if out == nil {
		return 0, nil
	}
	return out.Value, nil
}

// RentExemptMinimum returns the lamports a stake-account-sized account
// must hold to be rent exempt.
func (client *Client) RentExemptMinimum(ctx context.Context) (uint64, error) {
	minimum, err := client.Sol.GetMinimumBalanceForRentExemption(ctx, staking.AccountSize, client.commitment)
	if err != nil {
		return 0, errors.NetworkErrorf("could not fetch rent exempt minimum: %v", err)
	}
	return minimum, nil
}

// SubmitTx broadcasts a signed transaction. The node's refusal reason
// is surfaced verbatim; nothing is retried here.
func (client *Client) SubmitTx(ctx context.Context, transaction *tx.Tx) (string, error) {
	payload, err := transaction.Serialize()
	if err != nil {
		return "", errors.Errorf(errors.SigningError, "could not encode transaction: %v", err)
	}
	signature, err := client.Sol.SendEncodedTransactionWithOpts(
		ctx,
		base64.StdEncoding.EncodeToString(payload),
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: client.commitment,
		},
	)
	if err != nil {
		status := CheckError(err)
		if status == errors.FailedPrecondition {
			return "", errors.FailedPreconditionf("node not ready for transaction: %v", err)
		}
		if status == errors.UnknownError {
			// an rpc-level refusal we have no special handling for
			status = errors.SubmissionRejected
		}
		return "", errors.Errorf(status, "node rejected transaction: %v", err)
	}
	return signature.String(), nil
}

const confirmationPollInterval = 3 * time.Second
const confirmationTimeout = 2 * time.Minute

// WaitForConfirmation blocks until the submitted signature reaches the
// client's commitment level, the node reports the transaction failed,
// or the wait times out.
func (client *Client) WaitForConfirmation(ctx context.Context, signature string) error {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return errors.Errorf(errors.UnknownError, "invalid signature %s: %v", signature, err)
	}
	log := logrus.WithField("signature", signature)
	start := time.Now()
	for {
		if time.Since(start) > confirmationTimeout {
			return errors.NetworkErrorf("timed out waiting for confirmation of %s", signature)
		}
		statuses, err := client.Sol.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			log.WithError(err).Debug("could not fetch signature status")
		} else if len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.Err != nil {
				return errors.SubmissionRejectedf("transaction %s failed on chain: %v", signature, status.Err)
			}
			if commitmentReached(status.ConfirmationStatus, client.commitment) {
				log.WithField("status", status.ConfirmationStatus).Debug("transaction confirmed")
				return nil
			}
			log.WithField("status", status.ConfirmationStatus).Debug("waiting for confirmation")
		}
		select {
		case <-ctx.Done():
			return errors.NetworkErrorf("interrupted waiting for confirmation of %s: %v", signature, ctx.Err())
		case <-time.After(confirmationPollInterval):
		}
	}
}

func commitmentRank(level rpc.ConfirmationStatusType) int {
	switch level {
	case rpc.ConfirmationStatusProcessed:
		return 1
	case rpc.ConfirmationStatusConfirmed:
		return 2
	case rpc.ConfirmationStatusFinalized:
		return 3
	}
	return 0
}

func commitmentReached(status rpc.ConfirmationStatusType, target rpc.CommitmentType) bool {
	return commitmentRank(status) >= commitmentRank(rpc.ConfirmationStatusType(target))
}

// RequestAirdrop asks the faucet for lamports. Devnet and testnet only.
func (client *Client) RequestAirdrop(ctx context.Context, address solana.PublicKey, lamports uint64) (string, error) {
	signature, err := client.Sol.RequestAirdrop(ctx, address, lamports, client.commitment)
	if err != nil {
		status := CheckError(err)
		if status == errors.UnknownError {
			status = errors.SubmissionRejected
		}
		return "", errors.Errorf(status, "airdrop request failed: %v", err)
	}
	return signature.String(), nil
}

// SignatureStatus is the confirmation state of a submitted signature.
type SignatureStatus struct {
	Slot          uint64      `json:"slot"`
	Confirmations *uint64     `json:"confirmations"`
	Status        string      `json:"status"`
	Err           interface{} `json:"err,omitempty"`
}

// ConfirmSignature looks up the confirmation state of a signature.
func (client *Client) ConfirmSignature(ctx context.Context, signature string) (*SignatureStatus, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, errors.Errorf(errors.UnknownError, "invalid signature %s: %v", signature, err)
	}
	statuses, err := client.Sol.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, errors.NetworkErrorf("could not fetch signature status: %v", err)
	}
	if len(statuses.Value) == 0 || statuses.Value[0] == nil {
		return nil, errors.NotFoundf("signature %s not found", signature)
	}
	status := statuses.Value[0]
	return &SignatureStatus{
		Slot:          status.Slot,
		Confirmations: status.Confirmations,
		Status:        string(status.ConfirmationStatus),
		Err:           status.Err,
	}, nil
}
