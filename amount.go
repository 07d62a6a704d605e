package solstake

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/solsuite/solstake/errors"
)

// LamportsPerSol is the number of atomic units in one SOL.
const LamportsPerSol uint64 = 1_000_000_000

const solDecimals = 9

var maxLamports = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

// SolAmount is a positive SOL quantity as a human entered it.
// The zero value represents an absent amount.
type SolAmount struct {
	value decimal.Decimal
}

// ParseSolAmount parses a display-unit amount entered by the user.
// Empty input, non-numeric input, non-positive values and values whose
// lamport equivalent does not fit in a uint64 are rejected.
func ParseSolAmount(input string) (SolAmount, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return SolAmount{}, errors.Errorf(errors.InvalidAmount, "amount is empty")
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return SolAmount{}, errors.Errorf(errors.InvalidAmount, "%q is not a number", trimmed)
	}
	if value.Sign() <= 0 {
		return SolAmount{}, errors.Errorf(errors.InvalidAmount, "amount must be greater than zero, got %s", value.String())
	}
	if value.Shift(solDecimals).Cmp(maxLamports) >= 0 {
		return SolAmount{}, errors.Errorf(errors.InvalidAmount, "amount %s SOL is too large", value.String())
	}
	return SolAmount{value: value}, nil
}

// ParseOptionalSolAmount is ParseSolAmount except that empty input is
// treated as an absent amount rather than an error.
func ParseOptionalSolAmount(input string) (SolAmount, bool, error) {
	if strings.TrimSpace(input) == "" {
		return SolAmount{}, false, nil
	}
	amount, err := ParseSolAmount(input)
	if err != nil {
		return SolAmount{}, false, err
	}
	return amount, true, nil
}

// Lamports converts the amount to atomic units, truncating anything
// below one lamport.
func (amount SolAmount) Lamports() uint64 {
	return amount.value.Shift(solDecimals).BigInt().Uint64()
}

func (amount SolAmount) Decimal() decimal.Decimal {
	return amount.value
}

func (amount SolAmount) String() string {
	return amount.value.String()
}

// LamportsToSol converts atomic units to display units.
func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -solDecimals)
}

// FormatLamports renders lamports as a fixed six-decimal SOL string.
func FormatLamports(lamports uint64) string {
	return LamportsToSol(lamports).StringFixed(6) + " SOL"
}
