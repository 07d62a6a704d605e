package wallet

import (
	"github.com/gagliardetto/solana-go"
)

// Operation is a closed set of requested mutations. Each variant is
// consumed exactly once by Run: validated against fresh on-chain
// state, built, signed and submitted.
type Operation interface {
	// Name is the operation's name as used in messages and logs.
	Name() string
	operation()
}

// CreateStake funds and initializes a new stake account. Authorities
// default to the wallet key when left zero.
type CreateStake struct {
	Lamports   uint64
	Staker     solana.PublicKey
	Withdrawer solana.PublicKey
}

// DelegateStake points an initialized stake account at a validator.
// Validator may be the vote account or the node identity.
type DelegateStake struct {
	StakeAccount solana.PublicKey
	Validator    solana.PublicKey
}

// DeactivateStake begins undelegating a stake account.
type DeactivateStake struct {
	StakeAccount solana.PublicKey
}

// WithdrawStake moves lamports out of a stake account. Zero Lamports
// means withdraw the full balance, closing the account.
type WithdrawStake struct {
	StakeAccount solana.PublicKey
	Recipient    solana.PublicKey
	Lamports     uint64
}

// SplitStake carves lamports off a stake account into a fresh one.
type SplitStake struct {
	Source   solana.PublicKey
	Lamports uint64
}

// MergeStake absorbs the source stake account into the destination.
type MergeStake struct {
	Destination solana.PublicKey
	Source      solana.PublicKey
}

// Transfer moves lamports from the wallet to any recipient.
type Transfer struct {
	Recipient solana.PublicKey
	Lamports  uint64
}

func (CreateStake) operation()     {}
func (DelegateStake) operation()   {}
func (DeactivateStake) operation() {}
func (WithdrawStake) operation()   {}
func (SplitStake) operation()      {}
func (MergeStake) operation()      {}
func (Transfer) operation()        {}

func (CreateStake) Name() string     { return "create-stake" }
func (DelegateStake) Name() string   { return "delegate-stake" }
func (DeactivateStake) Name() string { return "deactivate-stake" }
func (WithdrawStake) Name() string   { return "withdraw-stake" }
func (SplitStake) Name() string      { return "split-stake" }
func (MergeStake) Name() string      { return "merge-stake" }
func (Transfer) Name() string        { return "transfer" }
