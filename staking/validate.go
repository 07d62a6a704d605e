package staking

import (
	"github.com/gagliardetto/solana-go"
	"github.com/solsuite/solstake/errors"
)

// ValidateDeactivate decides whether caller may deactivate the stake.
// The account must hold a delegation that is not already deactivating,
// and the caller must be the stake authority.
func ValidateDeactivate(account *StakeAccount, caller solana.PublicKey) error {
	state, ok := account.State.(Delegated)
	if !ok {
		if _, initialized := account.State.(Initialized); initialized {
			return errors.Denyf(errors.WrongState,
				"stake account %s is initialized but not delegated", account.Address)
		}
		return errors.Denyf(errors.WrongState,
			"stake account %s is %s, nothing to deactivate", account.Address, account.State.Name())
	}
	delegation := state.Stake.Delegation
	if delegation.DeactivationRequested() {
		return errors.Denyf(errors.AlreadyDeactivating,
			"stake account %s already began deactivating at epoch %d",
			account.Address, delegation.DeactivationEpoch)
	}
	if caller != state.Meta.Authorized.Staker {
		return errors.Denyf(errors.NotAuthorized,
			"signer %s is not the stake authority %s", caller, state.Meta.Authorized.Staker)
	}
	return nil
}

// ValidateWithdraw decides whether caller may withdraw requested lamports.
// A delegated account must be fully cooled down first; a partial
// withdrawal must leave the rent exempt reserve behind.
func ValidateWithdraw(account *StakeAccount, caller solana.PublicKey, currentEpoch uint64, now int64, requested uint64) error {
	meta, ok := account.Meta()
	if !ok {
		return errors.Denyf(errors.WrongState,
			"cannot withdraw from %s stake account %s", account.State.Name(), account.Address)
	}
	if caller != meta.Authorized.Withdrawer {
		return errors.Denyf(errors.NotAuthorized,
			"signer %s is not the withdraw authority %s", caller, meta.Authorized.Withdrawer)
	}
	if state, ok := account.State.(Delegated); ok {
		delegation := state.Stake.Delegation
		if !delegation.DeactivationRequested() {
			return errors.Denyf(errors.StillActive,
				"stake account %s is still delegated to %s, deactivate it first",
				account.Address, delegation.Voter)
		}
		if currentEpoch <= delegation.DeactivationEpoch {
			return errors.Denyf(errors.CoolingDown,
				"stake account %s is cooling down, %d epoch(s) remaining",
				account.Address, delegation.DeactivationEpoch-currentEpoch)
		}
	}
	if meta.Lockup.IsInForce(now, currentEpoch, caller) {
		return errors.Denyf(errors.LockupInForce,
			"stake account %s is locked until epoch %d (timestamp %d)",
			account.Address, meta.Lockup.Epoch, meta.Lockup.UnixTimestamp)
	}
	if requested > account.Lamports {
		return errors.Denyf(errors.InsufficientBalance,
			"requested %d lamports but only %d available", requested, account.Lamports)
	}
	if requested < account.Lamports && account.Lamports-requested < meta.RentExemptReserve {
		return errors.Denyf(errors.InsufficientBalance,
			"withdrawing %d lamports would leave less than the rent exempt reserve, withdraw at most %d or the full %d",
			requested, account.Lamports-meta.RentExemptReserve, account.Lamports)
	}
	return nil
}

// ValidateDelegate decides whether caller may delegate the stake account.
// The account must be initialized, undelegated, and hold at least the
// minimum delegation above its rent reserve.
func ValidateDelegate(account *StakeAccount, caller solana.PublicKey) error {
	switch state := account.State.(type) {
	case Delegated:
		return errors.Denyf(errors.AlreadyDelegated,
			"stake account %s is already delegated to %s",
			account.Address, state.Stake.Delegation.Voter)
	case Initialized:
		if caller != state.Meta.Authorized.Staker {
			return errors.Denyf(errors.NotAuthorized,
				"signer %s is not the stake authority %s", caller, state.Meta.Authorized.Staker)
		}
		available := uint64(0)
		if account.Lamports > state.Meta.RentExemptReserve {
			available = account.Lamports - state.Meta.RentExemptReserve
		}
		if available < MinimumDelegation {
			return errors.Denyf(errors.BelowMinimumDelegation,
				"stake account %s has %d lamports to delegate, the minimum is %d",
				account.Address, available, MinimumDelegation)
		}
		return nil
	default:
		return errors.Denyf(errors.WrongState,
			"stake account %s is %s, initialize it first", account.Address, account.State.Name())
	}
}

// ValidateSplit decides whether caller may split amount lamports off the
// source account into a new one. Both resulting accounts must remain
// viable: rent exempt plus the minimum delegation.
func ValidateSplit(source *StakeAccount, caller solana.PublicKey, amount uint64, rentExemptMinimum uint64) error {
	meta, ok := source.Meta()
	if !ok {
		return errors.Denyf(errors.WrongState,
			"cannot split %s stake account %s", source.State.Name(), source.Address)
	}
	if caller != meta.Authorized.Staker {
		return errors.Denyf(errors.NotAuthorized,
			"signer %s is not the stake authority %s", caller, meta.Authorized.Staker)
	}
	if amount < rentExemptMinimum+MinimumDelegation {
		return errors.Denyf(errors.BelowMinimumDelegation,
			"splitting off %d lamports cannot fund a stake account, need at least %d",
			amount, rentExemptMinimum+MinimumDelegation)
	}
	if amount > source.Lamports {
		return errors.Denyf(errors.InsufficientBalance,
			"requested %d lamports but only %d available", amount, source.Lamports)
	}
	if remainder := source.Lamports - amount; remainder < meta.RentExemptReserve+MinimumDelegation {
		return errors.Denyf(errors.InsufficientBalance,
			"splitting off %d lamports would leave %d, the source needs at least %d",
			amount, remainder, meta.RentExemptReserve+MinimumDelegation)
	}
	return nil
}

type mergeKind int

const (
	mergeKindInactive mergeKind = iota
	mergeKindActivationEpoch
	mergeKindFullyActive
)

func classifyForMerge(account *StakeAccount, currentEpoch uint64) (mergeKind, error) {
	delegation, ok := account.Delegation()
	if !ok {
		return mergeKindInactive, nil
	}
	if delegation.ActivationEpoch > currentEpoch {
		return 0, errors.Denyf(errors.TransientStake,
			"stake account %s is still activating", account.Address)
	}
	if delegation.DeactivationRequested() {
		if currentEpoch > delegation.DeactivationEpoch {
			return mergeKindInactive, nil
		}
		return 0, errors.Denyf(errors.TransientStake,
			"stake account %s is deactivating, mergeable after epoch %d",
			account.Address, delegation.DeactivationEpoch)
	}
	if delegation.ActivationEpoch == currentEpoch {
		return mergeKindActivationEpoch, nil
	}
	return mergeKindFullyActive, nil
}

// ValidateMerge decides whether caller may merge source into destination.
// Authorities must match, lockups must match or be expired, and the two
// delegations must be in compatible activation states.
func ValidateMerge(destination, source *StakeAccount, caller solana.PublicKey, currentEpoch uint64, now int64) error {
	destMeta, ok := destination.Meta()
	if !ok {
		return errors.Denyf(errors.WrongState,
			"cannot merge into %s stake account %s", destination.State.Name(), destination.Address)
	}
	sourceMeta, ok := source.Meta()
	if !ok {
		return errors.Denyf(errors.WrongState,
			"cannot merge %s stake account %s", source.State.Name(), source.Address)
	}
	if caller != destMeta.Authorized.Staker || caller != sourceMeta.Authorized.Staker {
		return errors.Denyf(errors.NotAuthorized,
			"signer %s must be the stake authority of both %s and %s",
			caller, destination.Address, source.Address)
	}
	if destMeta.Authorized != sourceMeta.Authorized {
		return errors.Denyf(errors.MergeMismatch,
			"authorities of %s and %s differ", destination.Address, source.Address)
	}
	lockupsMergeable := destMeta.Lockup == sourceMeta.Lockup ||
		(!destMeta.Lockup.IsInForce(now, currentEpoch, solana.PublicKey{}) &&
			!sourceMeta.Lockup.IsInForce(now, currentEpoch, solana.PublicKey{}))
	if !lockupsMergeable {
		return errors.Denyf(errors.MergeMismatch,
			"lockups of %s and %s differ", destination.Address, source.Address)
	}
	destKind, err := classifyForMerge(destination, currentEpoch)
	if err != nil {
		return err
	}
	sourceKind, err := classifyForMerge(source, currentEpoch)
	if err != nil {
		return err
	}
	switch {
	case destKind == mergeKindInactive && sourceKind == mergeKindFullyActive,
		destKind == mergeKindFullyActive && sourceKind == mergeKindInactive,
		destKind == mergeKindFullyActive && sourceKind == mergeKindActivationEpoch,
		destKind == mergeKindActivationEpoch && sourceKind == mergeKindFullyActive:
		return errors.Denyf(errors.MergeMismatch,
			"stake accounts %s and %s are in incompatible activation states",
			destination.Address, source.Address)
	}
	if destKind == mergeKindFullyActive || (destKind == mergeKindActivationEpoch && sourceKind == mergeKindActivationEpoch) {
		destDelegation, _ := destination.Delegation()
		sourceDelegation, _ := source.Delegation()
		if destDelegation.Voter != sourceDelegation.Voter {
			return errors.Denyf(errors.MergeMismatch,
				"stake accounts are delegated to different validators: %s and %s",
				destDelegation.Voter, sourceDelegation.Voter)
		}
	}
	return nil
}

// ValidateCreate decides whether a new stake account may be funded.
// The address must be unoccupied and the wallet must cover an amount of
// at least the rent exempt minimum.
func ValidateCreate(existing *StakeAccount, amount uint64, rentExemptMinimum uint64, walletBalance uint64) error {
	if existing != nil {
		return errors.Denyf(errors.AccountExists,
			"account %s already exists with %d lamports as %s",
			existing.Address, existing.Lamports, existing.State.Name())
	}
	if amount < rentExemptMinimum {
		return errors.Denyf(errors.BelowMinimumDelegation,
			"%d lamports cannot fund a stake account, the rent exempt minimum is %d",
			amount, rentExemptMinimum)
	}
	if walletBalance < amount {
		return errors.Denyf(errors.InsufficientBalance,
			"wallet holds %d lamports, %d requested", walletBalance, amount)
	}
	return nil
}
