package client

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	"github.com/solsuite/solstake/client/types"
	"github.com/solsuite/solstake/errors"
	"github.com/solsuite/solstake/staking"
)

// FetchStakeAccountsByStaker lists every stake account whose staker
// authority is the given address, decoded from the binary layout.
func (client *Client) FetchStakeAccountsByStaker(ctx context.Context, staker solana.PublicKey) ([]*staking.StakeAccount, error) {
	res, err := client.Sol.GetProgramAccountsWithOpts(ctx, solana.StakeProgramID, &rpc.GetProgramAccountsOpts{
		Commitment: client.commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				DataSize: staking.AccountSize,
			},
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: staking.StakerAuthorityOffset,
					Bytes:  staker[:],
				},
			},
		},
	})
	if err != nil {
		return nil, errors.NetworkErrorf("could not list stake accounts of %s: %v", staker, err)
	}
	accounts := []*staking.StakeAccount{}
	for _, keyed := range res {
		state, err := staking.DecodeState(keyed.Account.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &staking.StakeAccount{
			Address:  keyed.Pubkey,
			Lamports: keyed.Account.Lamports,
			State:    state,
		})
	}
	return accounts, nil
}

// LookupStakeAccountParsed fetches the node's jsonParsed rendering of a
// stake account, for display.
func (client *Client) LookupStakeAccountParsed(ctx context.Context, address solana.PublicKey) (*types.StakeAccount, error) {
	info, err := client.Sol.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: client.commitment,
		Encoding:   solana.EncodingJSONParsed,
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
	var parsed types.StakeAccount
	if err := json.Unmarshal(info.Value.Data.GetRawJSON(), &parsed); err != nil {
		return nil, errors.Errorf(errors.DecodeError, "unexpected jsonParsed data for %s: %v", address, err)
	}
	return &parsed, nil
}

// VoteAccount is one active validator vote account.
type VoteAccount struct {
	VotePubkey     solana.PublicKey `json:"vote_pubkey"`
	NodePubkey     solana.PublicKey `json:"node_pubkey"`
	ActivatedStake uint64           `json:"activated_stake"`
	Commission     uint8            `json:"commission"`
}

// FetchVoteAccounts lists the current validators.
func (client *Client) FetchVoteAccounts(ctx context.Context) ([]VoteAccount, error) {
	res, err := client.Sol.GetVoteAccounts(ctx, &rpc.GetVoteAccountsOpts{
		Commitment: client.commitment,
	})
	if err != nil {
		return nil, errors.NetworkErrorf("could not fetch vote accounts: %v", err)
	}
	accounts := []VoteAccount{}
	for _, voteAccount := range res.Current {
		accounts = append(accounts, VoteAccount{
			VotePubkey:     voteAccount.VotePubkey,
			NodePubkey:     voteAccount.NodePubkey,
			ActivatedStake: voteAccount.ActivatedStake,
			Commission:     voteAccount.Commission,
		})
	}
	return accounts, nil
}

// ResolveVoteAccount maps a validator address to its vote account.
// Operators often paste the node identity instead of the vote account;
// both are accepted.
func (client *Client) ResolveVoteAccount(ctx context.Context, validator solana.PublicKey) (solana.PublicKey, error) {
	voteAccounts, err := client.FetchVoteAccounts(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	for _, voteAccount := range voteAccounts {
		if voteAccount.VotePubkey.Equals(validator) {
			return voteAccount.VotePubkey, nil
		}
		if voteAccount.NodePubkey.Equals(validator) {
			logrus.WithFields(logrus.Fields{
				"identity": voteAccount.NodePubkey.String(),
				"vote":     voteAccount.VotePubkey.String(),
			}).Warn("validator identity pubkey was input, using the vote pubkey instead")
			return voteAccount.VotePubkey, nil
		}
	}
	return solana.PublicKey{}, errors.NotFoundf("validator vote account not found: %s", validator)
}
