package client

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solsuite/solstake/client/types"
	"github.com/solsuite/solstake/errors"
)

// ClusterVersion is the software version the node reports.
type ClusterVersion struct {
	SolanaCore string `json:"solana_core"`
	FeatureSet int64  `json:"feature_set"`
}

func (client *Client) FetchClusterVersion(ctx context.Context) (*ClusterVersion, error) {
	version, err := client.Sol.GetVersion(ctx)
	if err != nil {
		return nil, errors.NetworkErrorf("could not fetch cluster version: %v", err)
	}
	return &ClusterVersion{
		SolanaCore: version.SolanaCore,
		FeatureSet: version.FeatureSet,
	}, nil
}

func (client *Client) FetchSlot(ctx context.Context) (uint64, error) {
	slot, err := client.Sol.GetSlot(ctx, client.commitment)
	if err != nil {
		return 0, errors.NetworkErrorf("could not fetch slot: %v", err)
	}
	return slot, nil
}

// EpochInfo is the cluster's position within the current epoch.
type EpochInfo struct {
	Epoch        uint64 `json:"epoch"`
	SlotIndex    uint64 `json:"slot_index"`
	SlotsInEpoch uint64 `json:"slots_in_epoch"`
	AbsoluteSlot uint64 `json:"absolute_slot"`
}

func (client *Client) FetchEpochInfo(ctx context.Context) (*EpochInfo, error) {
	info, err := client.Sol.GetEpochInfo(ctx, client.commitment)
	if err != nil {
		return nil, errors.NetworkErrorf("could not fetch epoch info: %v", err)
	}
	return &EpochInfo{
		Epoch:        info.Epoch,
		SlotIndex:    info.SlotIndex,
		SlotsInEpoch: info.SlotsInEpoch,
		AbsoluteSlot: info.AbsoluteSlot,
	}, nil
}

func (client *Client) FetchTransactionCount(ctx context.Context) (uint64, error) {
	count, err := client.Sol.GetTransactionCount(ctx, client.commitment)
	if err != nil {
		return 0, errors.NetworkErrorf("could not fetch transaction count: %v", err)
	}
	return count, nil
}

// LargestAccount is one of the cluster's largest accounts by balance.
type LargestAccount struct {
	Address  solana.PublicKey `json:"address"`
	Lamports uint64           `json:"lamports"`
}

func (client *Client) FetchLargestAccounts(ctx context.Context) ([]LargestAccount, error) {
	res, err := client.Sol.GetLargestAccounts(ctx, client.commitment, "")
	if err != nil {
		return nil, errors.NetworkErrorf("could not fetch largest accounts: %v", err)
	}
	accounts := []LargestAccount{}
	for _, item := range res.Value {
		accounts = append(accounts, LargestAccount{
			Address:  item.Address,
			Lamports: item.Lamports,
		})
	}
	return accounts, nil
}

// FetchNonceAccount fetches the jsonParsed rendering of a durable
// nonce account.
func (client *Client) FetchNonceAccount(ctx context.Context, address solana.PublicKey) (*types.NonceAccount, error) {
	info, err := client.Sol.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: client.commitment,
		Encoding:   "jsonParsed",
	})
	if err != nil {
		if stderrors.Is(err, rpc.ErrNotFound) {
			return nil, errors.NotFoundf("no account found at %s", address)
		}
		return nil, errors.NetworkErrorf("could not fetch account %s: %v", address, err)
	}
	if !info.Value.Owner.Equals(solana.SystemProgramID) {
		return nil, errors.Errorf(errors.OwnershipError,
			"account %s is owned by %s, not the system program", address, info.Value.Owner)
	}
	var parsed types.NonceAccount
	if err := json.Unmarshal(info.Value.Data.GetRawJSON(), &parsed); err != nil {
		return nil, errors.Errorf(errors.DecodeError, "unexpected jsonParsed data for %s: %v", address, err)
	}
	return &parsed, nil
}
