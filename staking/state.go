package staking

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/solsuite/solstake/errors"
)

// AccountSize is the fixed data size of a stake account.
const AccountSize = 200

// EpochMax marks a delegation with no deactivation requested.
const EpochMax = ^uint64(0)

// MinimumDelegation is the smallest stake the program accepts for a delegation.
const MinimumDelegation uint64 = 1_000_000

// StakerAuthorityOffset is the byte offset of the staker authority within
// stake account data: 4 (status) + 8 (rent exempt reserve).
const StakerAuthorityOffset = 12

const (
	statusUninitialized uint32 = iota
	statusInitialized
	statusStake
	statusRewardsPool
)

type Authorized struct {
	Staker     solana.PublicKey
	Withdrawer solana.PublicKey
}

type Lockup struct {
	UnixTimestamp int64
	Epoch         uint64
	Custodian     solana.PublicKey
}

// IsInForce reports whether the lockup still restricts withdrawals.
// The custodian may move funds regardless.
func (lockup *Lockup) IsInForce(now int64, currentEpoch uint64, caller solana.PublicKey) bool {
	if !lockup.Custodian.IsZero() && caller == lockup.Custodian {
		return false
	}
	return now < lockup.UnixTimestamp || currentEpoch < lockup.Epoch
}

type Meta struct {
	RentExemptReserve uint64
	Authorized        Authorized
	Lockup            Lockup
}

type Delegation struct {
	Voter              solana.PublicKey
	StakeLamports      uint64
	ActivationEpoch    uint64
	DeactivationEpoch  uint64
	WarmupCooldownRate float64
}

// DeactivationRequested reports whether a deactivation epoch has been set.
func (delegation *Delegation) DeactivationRequested() bool {
	return delegation.DeactivationEpoch != EpochMax
}

type Stake struct {
	Delegation      Delegation
	CreditsObserved uint64
}

// State is the decoded state of a stake account. It is a closed set:
// Uninitialized, Initialized, Delegated or RewardsPool.
type State interface {
	// Name is the state's name as used in messages.
	Name() string
	stakeState()
}

// Uninitialized is an account the stake program owns but that was never
// initialized with authorities.
type Uninitialized struct{}

// Initialized carries authorities and rent reserve but no delegation.
type Initialized struct {
	Meta Meta
}

// Delegated carries an active, deactivating or fully deactivated delegation.
type Delegated struct {
	Meta  Meta
	Stake Stake
	Flags byte
}

// RewardsPool is a legacy variant; such accounts cannot be operated on.
type RewardsPool struct{}

func (Uninitialized) stakeState() {}
func (Initialized) stakeState()   {}
func (Delegated) stakeState()     {}
func (RewardsPool) stakeState()   {}

func (Uninitialized) Name() string { return "uninitialized" }
func (Initialized) Name() string   { return "initialized" }
func (Delegated) Name() string     { return "delegated" }
func (RewardsPool) Name() string   { return "rewards pool" }

// StakeAccount is the on-chain snapshot a transition is validated against.
type StakeAccount struct {
	Address  solana.PublicKey
	Lamports uint64
	State    State
}

// Meta returns the account metadata for initialized and delegated accounts.
func (account *StakeAccount) Meta() (Meta, bool) {
	switch state := account.State.(type) {
	case Initialized:
		return state.Meta, true
	case Delegated:
		return state.Meta, true
	}
	return Meta{}, false
}

// Delegation returns the delegation of a delegated account.
func (account *StakeAccount) Delegation() (Delegation, bool) {
	if state, ok := account.State.(Delegated); ok {
		return state.Stake.Delegation, true
	}
	return Delegation{}, false
}

func (meta *Meta) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	meta.RentExemptReserve, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	if err = readPublicKey(decoder, &meta.Authorized.Staker); err != nil {
		return err
	}
	if err = readPublicKey(decoder, &meta.Authorized.Withdrawer); err != nil {
		return err
	}
	timestamp, err := decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	meta.Lockup.UnixTimestamp = int64(timestamp)
	meta.Lockup.Epoch, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	return readPublicKey(decoder, &meta.Lockup.Custodian)
}

func (stake *Stake) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	if err = readPublicKey(decoder, &stake.Delegation.Voter); err != nil {
		return err
	}
	stake.Delegation.StakeLamports, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	stake.Delegation.ActivationEpoch, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	stake.Delegation.DeactivationEpoch, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	stake.Delegation.WarmupCooldownRate, err = decoder.ReadFloat64(bin.LE)
	if err != nil {
		return err
	}
	stake.CreditsObserved, err = decoder.ReadUint64(bin.LE)
	return err
}

func readPublicKey(decoder *bin.Decoder, dst *solana.PublicKey) error {
	raw, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	copy(dst[:], raw)
	return nil
}

// DecodeState parses bincode-serialized stake account data.
func DecodeState(data []byte) (State, error) {
	decoder := bin.NewBinDecoder(data)
	status, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return nil, errors.Errorf(errors.DecodeError, "stake account data too short: %d bytes", len(data))
	}
	switch status {
	case statusUninitialized:
		return Uninitialized{}, nil
	case statusInitialized:
		var meta Meta
		if err := meta.UnmarshalWithDecoder(decoder); err != nil {
			return nil, errors.Errorf(errors.DecodeError, "bad initialized stake account data: %v", err)
		}
		return Initialized{Meta: meta}, nil
	case statusStake:
		var state Delegated
		if err := state.Meta.UnmarshalWithDecoder(decoder); err != nil {
			return nil, errors.Errorf(errors.DecodeError, "bad delegated stake account data: %v", err)
		}
		if err := state.Stake.UnmarshalWithDecoder(decoder); err != nil {
			return nil, errors.Errorf(errors.DecodeError, "bad delegated stake account data: %v", err)
		}
		if state.Flags, err = decoder.ReadByte(); err != nil {
			return nil, errors.Errorf(errors.DecodeError, "bad delegated stake account data: %v", err)
		}
		return state, nil
	case statusRewardsPool:
		return RewardsPool{}, nil
	default:
		return nil, errors.Errorf(errors.DecodeError, "unknown stake account status %d", status)
	}
}
