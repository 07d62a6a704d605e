package testutil

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
)

// Hand-rolled bincode encoders for stake account test fixtures, kept
// independent of the production decoder on purpose.

const stakeAccountSize = 200

func appendMeta(buf []byte, rentReserve uint64, staker, withdrawer solana.PublicKey) []byte {
	var custodian solana.PublicKey
	buf = binary.LittleEndian.AppendUint64(buf, rentReserve)
	buf = append(buf, staker[:]...)
	buf = append(buf, withdrawer[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, 0) // lockup timestamp
	buf = binary.LittleEndian.AppendUint64(buf, 0) // lockup epoch
	buf = append(buf, custodian[:]...)
	return buf
}

func pad(buf []byte) []byte {
	for len(buf) < stakeAccountSize {
		buf = append(buf, 0)
	}
	return buf
}

func UninitializedStakeData() []byte {
	return pad(binary.LittleEndian.AppendUint32(nil, 0))
}

func InitializedStakeData(rentReserve uint64, staker, withdrawer solana.PublicKey) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, 1)
	return pad(appendMeta(buf, rentReserve, staker, withdrawer))
}

func DelegatedStakeData(rentReserve uint64, staker, withdrawer, voter solana.PublicKey, stakeLamports, activationEpoch, deactivationEpoch uint64) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, 2)
	buf = appendMeta(buf, rentReserve, staker, withdrawer)
	buf = append(buf, voter[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, stakeLamports)
	buf = binary.LittleEndian.AppendUint64(buf, activationEpoch)
	buf = binary.LittleEndian.AppendUint64(buf, deactivationEpoch)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(0.25))
	buf = binary.LittleEndian.AppendUint64(buf, 0) // credits observed
	buf = append(buf, 0)                           // stake flags
	return pad(buf)
}

// AccountInfoResponse renders a getAccountInfo result for the mock
// rpc server.
func AccountInfoResponse(owner string, lamports uint64, data []byte) string {
	return fmt.Sprintf(
		`{"context":{"slot":83986105},"value":{"data":["%s","base64"],"executable":false,"lamports":%d,"owner":"%s","rentEpoch":361}}`,
		base64.StdEncoding.EncodeToString(data), lamports, owner,
	)
}
