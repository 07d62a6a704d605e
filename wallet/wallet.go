// Package wallet ties the pieces together: every operation fetches
// fresh chain state, runs the local validators, builds and signs a
// transaction, submits it, and blocks until the node confirms it.
// Validation is an optimistic pre-check; the node remains the final
// authority on every transition.
package wallet

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/solsuite/solstake/builder"
	"github.com/solsuite/solstake/client"
	"github.com/solsuite/solstake/errors"
	"github.com/solsuite/solstake/signer"
	"github.com/solsuite/solstake/staking"
	"github.com/solsuite/solstake/tx"
	"github.com/solsuite/solstake/tx_input"
)

const resubmitInterval = 3 * time.Second
const resubmitTimeout = 2 * time.Minute

// Wallet executes operations with a single key that acts as fee payer,
// stake authority and withdraw authority.
type Wallet struct {
	client  *client.Client
	signer  *signer.Signer
	builder builder.TxBuilder
	address solana.PublicKey

	// NoSend builds and signs but never broadcasts. The receipt
	// carries the serialized transaction instead of a signature.
	NoSend bool

	// ResubmitInterval and ResubmitTimeout override the broadcast
	// retry cadence. Zero values use the defaults.
	ResubmitInterval time.Duration
	ResubmitTimeout  time.Duration
}

func New(rpcClient *client.Client, txSigner *signer.Signer) *Wallet {
	address := txSigner.PublicKey()
	return &Wallet{
		client:  rpcClient,
		signer:  txSigner,
		builder: builder.NewTxBuilder(address),
		address: address,
	}
}

func (wallet *Wallet) Address() solana.PublicKey {
	return wallet.address
}

func (wallet *Wallet) Client() *client.Client {
	return wallet.client
}

// Receipt reports what Run did. Signature is set once the node
// accepted the transaction; StakeAccount is set for operations that
// created a new stake account.
type Receipt struct {
	Signature    string           `json:"signature,omitempty"`
	SignedTx     string           `json:"signed_tx"`
	StakeAccount solana.PublicKey `json:"stake_account,omitempty"`
	Submitted    bool             `json:"submitted"`
}

// Run executes one operation end to end. On a validation denial
// nothing is built or sent.
func (wallet *Wallet) Run(ctx context.Context, operation Operation) (*Receipt, error) {
	log := logrus.WithFields(logrus.Fields{
		"operation": operation.Name(),
		"wallet":    wallet.address.String(),
	})

	var built *tx.Tx
	var stakeAccount solana.PublicKey
	var err error
	switch op := operation.(type) {
	case CreateStake:
		built, stakeAccount, err = wallet.prepareCreate(ctx, op)
	case DelegateStake:
		built, err = wallet.prepareDelegate(ctx, op)
	case DeactivateStake:
		built, err = wallet.prepareDeactivate(ctx, op)
	case WithdrawStake:
		built, err = wallet.prepareWithdraw(ctx, op)
	case SplitStake:
		built, stakeAccount, err = wallet.prepareSplit(ctx, op)
	case MergeStake:
		built, err = wallet.prepareMerge(ctx, op)
	case Transfer:
		built, err = wallet.prepareTransfer(ctx, op)
	default:
		return nil, errors.Errorf(errors.UnknownError, "unsupported operation type %T", operation)
	}
	if err != nil {
		return nil, err
	}

	if err := wallet.sign(built); err != nil {
		return nil, err
	}
	payload, err := built.Serialize()
	if err != nil {
		return nil, errors.Errorf(errors.SigningError, "could not encode transaction: %v", err)
	}
	receipt := &Receipt{
		SignedTx:     base64.StdEncoding.EncodeToString(payload),
		StakeAccount: stakeAccount,
	}
	if wallet.NoSend {
		log.Debug("transaction built and signed, not broadcasting")
		return receipt, nil
	}

	signature, err := wallet.submit(ctx, built, log)
	if err != nil {
		return nil, err
	}
	log.WithField("signature", signature).Info("transaction submitted")
	if err := wallet.client.WaitForConfirmation(ctx, signature); err != nil {
		return nil, err
	}
	receipt.Signature = signature
	receipt.Submitted = true
	return receipt, nil
}

func (wallet *Wallet) sign(built *tx.Tx) error {
	payloads, err := built.Sighashes()
	if err != nil {
		return errors.SigningErrorf("could not derive signing payloads: %v", err)
	}
	signatures, err := wallet.signer.SignAll(payloads)
	if err != nil {
		return err
	}
	if err := built.AddSignatures(signatures...); err != nil {
		return errors.SigningErrorf("could not attach signatures: %v", err)
	}
	return nil
}

// submit broadcasts, resubmitting the identical transaction while the
// node reports a precondition failure. That happens when the blockhash
// the transaction was built against is newer than the node's view; the
// node catches up within a slot or two.
func (wallet *Wallet) submit(ctx context.Context, built *tx.Tx, log *logrus.Entry) (string, error) {
	interval := wallet.ResubmitInterval
	if interval == 0 {
		interval = resubmitInterval
	}
	timeout := wallet.ResubmitTimeout
	if timeout == 0 {
		timeout = resubmitTimeout
	}
	start := time.Now()
	for {
		signature, err := wallet.client.SubmitTx(ctx, built)
		if err == nil {
			return signature, nil
		}
		status := errors.StatusOf(err)
		if status == errors.TransactionExists {
			// an earlier submit of this same transaction already landed
			return built.Hash(), nil
		}
		if status != errors.FailedPrecondition {
			return "", err
		}
		if time.Since(start) > timeout {
			return "", err
		}
		log.WithError(err).Debug("node not ready for transaction, resubmitting")
		select {
		case <-ctx.Done():
			return "", errors.NetworkErrorf("interrupted while submitting: %v", ctx.Err())
		case <-time.After(interval):
		}
	}
}

func (wallet *Wallet) prepareCreate(ctx context.Context, op CreateStake) (*tx.Tx, solana.PublicKey, error) {
	base, err := wallet.client.FetchTxInput(ctx, wallet.address)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	input, err := tx_input.NewStakingInput(base)
	if err != nil {
		return nil, solana.PublicKey{}, errors.SigningErrorf("could not generate stake account key: %v", err)
	}
	stakeAccount := input.StakeAccount()

	var existing *staking.StakeAccount
	existing, err = wallet.client.FetchStakeAccount(ctx, stakeAccount)
	if err != nil {
		if errors.StatusOf(err) != errors.NotFound {
			return nil, solana.PublicKey{}, err
		}
		existing = nil
	}
	rentExemptMinimum, err := wallet.client.RentExemptMinimum(ctx)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	balance, err := wallet.client.FetchBalance(ctx, wallet.address)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	if err := staking.ValidateCreate(existing, op.Lamports, rentExemptMinimum, balance); err != nil {
		return nil, solana.PublicKey{}, err
	}

	staker := op.Staker
	if staker.IsZero() {
		staker = wallet.address
	}
	withdrawer := op.Withdrawer
	if withdrawer.IsZero() {
		withdrawer = wallet.address
	}
	built, err := wallet.builder.CreateStakeAccount(staker, withdrawer, op.Lamports, input)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	return built, stakeAccount, nil
}

func (wallet *Wallet) prepareDelegate(ctx context.Context, op DelegateStake) (*tx.Tx, error) {
	account, err := wallet.client.FetchStakeAccount(ctx, op.StakeAccount)
	if err != nil {
		return nil, err
	}
	if err := staking.ValidateDelegate(account, wallet.address); err != nil {
		return nil, err
	}
	voteAccount, err := wallet.client.ResolveVoteAccount(ctx, op.Validator)
	if err != nil {
		return nil, err
	}
	base, err := wallet.client.FetchTxInput(ctx, wallet.address)
	if err != nil {
		return nil, err
	}
	input := &tx_input.StakingInput{
		TxInput:              *base,
		ValidatorVoteAccount: voteAccount,
	}
	return wallet.builder.Delegate(op.StakeAccount, input)
}

func (wallet *Wallet) prepareDeactivate(ctx context.Context, op DeactivateStake) (*tx.Tx, error) {
	account, err := wallet.client.FetchStakeAccount(ctx, op.StakeAccount)
	if err != nil {
		return nil, err
	}
	if err := staking.ValidateDeactivate(account, wallet.address); err != nil {
		return nil, err
	}
	input, err := wallet.client.FetchTxInput(ctx, wallet.address)
	if err != nil {
		return nil, err
	}
	return wallet.builder.Deactivate(op.StakeAccount, input)
}

func (wallet *Wallet) prepareWithdraw(ctx context.Context, op WithdrawStake) (*tx.Tx, error) {
	account, err := wallet.client.FetchStakeAccount(ctx, op.StakeAccount)
	if err != nil {
		return nil, err
	}
	epoch, err := wallet.client.FetchEpoch(ctx)
	if err != nil {
		return nil, err
	}
	lamports := op.Lamports
	if lamports == 0 {
		// withdraw everything, closing the account
		lamports = account.Lamports
	}
	if err := staking.ValidateWithdraw(account, wallet.address, epoch, time.Now().Unix(), lamports); err != nil {
		return nil, err
	}
	recipient := op.Recipient
	if recipient.IsZero() {
		recipient = wallet.address
	}
	input, err := wallet.client.FetchTxInput(ctx, wallet.address)
	if err != nil {
		return nil, err
	}
	return wallet.builder.WithdrawStake(op.StakeAccount, recipient, lamports, input)
}

func (wallet *Wallet) prepareSplit(ctx context.Context, op SplitStake) (*tx.Tx, solana.PublicKey, error) {
	source, err := wallet.client.FetchStakeAccount(ctx, op.Source)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	rentExemptMinimum, err := wallet.client.RentExemptMinimum(ctx)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	if err := staking.ValidateSplit(source, wallet.address, op.Lamports, rentExemptMinimum); err != nil {
		return nil, solana.PublicKey{}, err
	}
	base, err := wallet.client.FetchTxInput(ctx, wallet.address)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	input, err := tx_input.NewStakingInput(base)
	if err != nil {
		return nil, solana.PublicKey{}, errors.SigningErrorf("could not generate stake account key: %v", err)
	}
	built, err := wallet.builder.Split(op.Source, op.Lamports, input)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	return built, input.StakeAccount(), nil
}

func (wallet *Wallet) prepareMerge(ctx context.Context, op MergeStake) (*tx.Tx, error) {
	destination, err := wallet.client.FetchStakeAccount(ctx, op.Destination)
	if err != nil {
		return nil, err
	}
	source, err := wallet.client.FetchStakeAccount(ctx, op.Source)
	if err != nil {
		return nil, err
	}
	epoch, err := wallet.client.FetchEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if err := staking.ValidateMerge(destination, source, wallet.address, epoch, time.Now().Unix()); err != nil {
		return nil, err
	}
	input, err := wallet.client.FetchTxInput(ctx, wallet.address)
	if err != nil {
		return nil, err
	}
	return wallet.builder.Merge(op.Destination, op.Source, input)
}

func (wallet *Wallet) prepareTransfer(ctx context.Context, op Transfer) (*tx.Tx, error) {
	balance, err := wallet.client.FetchBalance(ctx, wallet.address)
	if err != nil {
		return nil, err
	}
	if balance < op.Lamports {
		return nil, errors.Denyf(errors.InsufficientBalance,
			"wallet holds %d lamports, %d requested", balance, op.Lamports)
	}
	input, err := wallet.client.FetchTxInput(ctx, wallet.address)
	if err != nil {
		return nil, err
	}
	return wallet.builder.Transfer(op.Recipient, op.Lamports, input)
}
