package client

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solsuite/solstake/errors"
)

// HistoryLimit caps how many recent signatures a history query returns.
const HistoryLimit = 20

// HistoryEntry is one transaction signature touching an account.
type HistoryEntry struct {
	Slot      uint64     `json:"slot"`
	Signature string     `json:"signature"`
	Succeeded bool       `json:"succeeded"`
	BlockTime *time.Time `json:"block_time,omitempty"`
}

// FetchHistory returns the most recent transaction signatures involving
// the address, newest first, as the node reports them. An account with
// no history yields an empty slice, not an error.
func (client *Client) FetchHistory(ctx context.Context, address solana.PublicKey) ([]HistoryEntry, error) {
	limit := HistoryLimit
	signatures, err := client.Sol.GetSignaturesForAddressWithOpts(ctx, address, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: client.commitment,
	})
	if err != nil {
		return nil, errors.NetworkErrorf("could not fetch signatures for %s: %v", address, err)
	}
	entries := []HistoryEntry{}
	for _, item := range signatures {
		entry := HistoryEntry{
			Slot:      item.Slot,
			Signature: item.Signature.String(),
			Succeeded: item.Err == nil,
		}
		if item.BlockTime != nil {
			blockTime := item.BlockTime.Time()
			entry.BlockTime = &blockTime
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
