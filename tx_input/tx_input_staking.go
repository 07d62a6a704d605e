package tx_input

import (
	"github.com/gagliardetto/solana-go"
)

// StakingInput extends TxInput for operations that create a new stake
// account (create, split). The fresh account must co-sign the
// transaction, so its private key travels with the input.
type StakingInput struct {
	TxInput
	ValidatorVoteAccount solana.PublicKey `json:"validator_vote_account,omitempty"`
	// The new staking account to create
	StakingKey solana.PrivateKey `json:"staking_key"`
}

func NewStakingInput(base *TxInput) (*StakingInput, error) {
	stakingKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}
	return &StakingInput{
		TxInput:    *base,
		StakingKey: stakingKey,
	}, nil
}

// StakeAccount is the address of the account the StakingKey controls.
func (input *StakingInput) StakeAccount() solana.PublicKey {
	return input.StakingKey.PublicKey()
}
