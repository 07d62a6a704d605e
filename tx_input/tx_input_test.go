package tx_input

import (
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestTxInputStale(t *testing.T) {
	type testcase struct {
		input *TxInput
		now   int64
		stale bool
	}
	startTime := int64((100 * time.Hour).Seconds())
	vectors := []testcase{
		{
			input: &TxInput{
				RecentBlockHash: solana.Hash([32]byte{1}),
				Timestamp:       startTime,
			},
			now:   startTime + int64(SafetyTimeoutMargin.Seconds()) - 1,
			stale: false,
		},
		{
			input: &TxInput{
				RecentBlockHash: solana.Hash([32]byte{1}),
				Timestamp:       startTime,
			},
			now:   startTime + int64(SafetyTimeoutMargin.Seconds()),
			stale: true,
		},
		{
			// an input that never captured a timestamp is trusted
			input: &TxInput{
				RecentBlockHash: solana.Hash([32]byte{2}),
			},
			now:   startTime,
			stale: false,
		},
	}
	for i, v := range vectors {
		require.Equal(t, v.stale, v.input.Stale(v.now), "vector %d", i)
	}
}

func TestGetLimitedPrioritizationFee(t *testing.T) {
	input := &TxInput{PrioritizationFee: 1_000}
	require.EqualValues(t, 1_000, input.GetLimitedPrioritizationFee(0))
	require.EqualValues(t, 500, input.GetLimitedPrioritizationFee(500))

	input = &TxInput{PrioritizationFee: 10_000_000_000}
	require.EqualValues(t, 5_000_000_000, input.GetLimitedPrioritizationFee(0))
}

func TestNewStakingInput(t *testing.T) {
	base := &TxInput{
		RecentBlockHash: solana.Hash([32]byte{3}),
		Timestamp:       500,
	}
	input, err := NewStakingInput(base)
	require.NoError(t, err)
	require.Equal(t, base.RecentBlockHash, input.RecentBlockHash)
	require.Len(t, input.StakingKey, 64)
	require.Equal(t, input.StakingKey.PublicKey(), input.StakeAccount())
}
