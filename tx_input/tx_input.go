package tx_input

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// TxInput captures the chain state a transaction depends on: the
// recent block hash it will be signed over and the prioritization fee
// to attach. Inputs are fetched fresh for every submission.
type TxInput struct {
	RecentBlockHash   solana.Hash `json:"recent_block_hash"`
	PrioritizationFee uint64      `json:"prioritization_fee,omitempty"`
	Timestamp         int64       `json:"timestamp,omitempty"`
}

func NewTxInput() *TxInput {
	return &TxInput{}
}

// Solana recent-block-hash timeout margin
const SafetyTimeoutMargin = (5 * time.Minute)

// Returns the microlamports to set the compute budget unit price.
// It will not go above the max price amount for safety concerns.
func (input *TxInput) GetLimitedPrioritizationFee(maxPrice uint64) uint64 {
	fee := input.PrioritizationFee
	max := maxPrice
	if max == 0 {
		// set default max price to spend max 1 SOL on a transaction
		// 1 SOL = (1 * 10 ** 9) * 10 ** 6 microlamports
		// /200_000 compute units
		max = 5_000_000_000
	}
	if fee > max {
		fee = max
	}
	return fee
}

func (input *TxInput) SetUnix(unix int64) {
	input.Timestamp = unix
}

// Stale reports whether the captured block hash is old enough that the
// node may no longer accept it. Solana block hashes last ~1 minute, so
// anything past the safety margin must be refetched before signing.
func (input *TxInput) Stale(now int64) bool {
	if input.Timestamp == 0 {
		return false
	}
	return now-input.Timestamp >= int64(SafetyTimeoutMargin.Seconds())
}
