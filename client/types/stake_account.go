package types

import "strconv"

// LifecycleState summarizes where a delegation is in the epoch machinery.
type LifecycleState string

const (
	Activating   LifecycleState = "activating"
	Active       LifecycleState = "active"
	Deactivating LifecycleState = "deactivating"
	Inactive     LifecycleState = "inactive"
)

// StakeAccount is the jsonParsed rendering of a stake account, used
// for display only. Operational reads decode the binary layout instead.
type StakeAccount struct {
	Parsed  Parsed `json:"parsed"`
	Program string `json:"program"`
	Space   int    `json:"space"`
}

func (stake *StakeAccount) GetState(currentEpoch uint64) LifecycleState {
	return DelegationState(
		ParseUint(stake.Parsed.Info.Stake.Delegation.ActivationEpoch),
		ParseUint(stake.Parsed.Info.Stake.Delegation.DeactivationEpoch),
		currentEpoch,
	)
}

// DelegationState classifies a delegation by its activation and
// deactivation epochs relative to the current epoch.
func DelegationState(activationEpoch, deactivationEpoch, currentEpoch uint64) LifecycleState {
	if activationEpoch == deactivationEpoch {
		// accounts may be deactivated instantly if in the same epoch as activation
		return Inactive
	}

	if deactivationEpoch == currentEpoch {
		return Deactivating
	} else if deactivationEpoch < currentEpoch {
		return Inactive
	} else if activationEpoch < currentEpoch {
		return Active
	} else {
		return Activating
	}
}

type Parsed struct {
	Info Info   `json:"info"`
	Type string `json:"type"`
}

type Info struct {
	Meta  Meta   `json:"meta"`
	Stake *Stake `json:"stake"`
}

type Meta struct {
	Authorized        Authorized `json:"authorized"`
	Lockup            Lockup     `json:"lockup"`
	RentExemptReserve string     `json:"rentExemptReserve"`
}

type Authorized struct {
	Staker     string `json:"staker"`
	Withdrawer string `json:"withdrawer"`
}

type Lockup struct {
	Custodian     string `json:"custodian"`
	Epoch         int    `json:"epoch"`
	UnixTimestamp int    `json:"unixTimestamp"`
}

type Stake struct {
	CreditsObserved int        `json:"creditsObserved"`
	Delegation      Delegation `json:"delegation"`
}

type Delegation struct {
	ActivationEpoch    string  `json:"activationEpoch"`
	DeactivationEpoch  string  `json:"deactivationEpoch"`
	Stake              string  `json:"stake"`
	Voter              string  `json:"voter"`
	WarmupCooldownRate float64 `json:"warmupCooldownRate"`
}

// ParseUint parses the stringified integers the jsonParsed encoding
// uses, tolerating garbage as zero.
func ParseUint(value string) uint64 {
	parsed, _ := strconv.ParseUint(value, 10, 64)
	return parsed
}
