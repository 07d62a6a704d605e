package solstake_test

import (
	"github.com/shopspring/decimal"
	. "github.com/solsuite/solstake"
	"github.com/solsuite/solstake/errors"
)

func (s *SolstakeTestSuite) TestParseSolAmount() {
	require := s.Require()

	amount, err := ParseSolAmount("1.5")
	require.NoError(err)
	require.EqualValues(1_500_000_000, amount.Lamports())
	require.Equal("1.5", amount.String())

	amount, err = ParseSolAmount("0.000000001")
	require.NoError(err)
	require.EqualValues(1, amount.Lamports())

	amount, err = ParseSolAmount("2")
	require.NoError(err)
	require.EqualValues(2_000_000_000, amount.Lamports())

	// whitespace is tolerated
	amount, err = ParseSolAmount("  0.25 ")
	require.NoError(err)
	require.EqualValues(250_000_000, amount.Lamports())
}

func (s *SolstakeTestSuite) TestParseSolAmountRejects() {
	require := s.Require()

	for _, input := range []string{"", "   ", "abc", "1.2.3", "NaN", "Inf", "0", "-1", "-0.5"} {
		_, err := ParseSolAmount(input)
		require.Error(err, "input %q", input)
		require.Equal(errors.InvalidAmount, errors.StatusOf(err), "input %q", input)
	}

	// 2^64 lamports and anything above does not fit
	_, err := ParseSolAmount("18446744073.709551616")
	require.Error(err)
	require.Equal(errors.InvalidAmount, errors.StatusOf(err))
	_, err = ParseSolAmount("20000000000")
	require.Error(err)

	// largest representable amount is fine
	amount, err := ParseSolAmount("18446744073.709551614")
	require.NoError(err)
	require.EqualValues(uint64(18446744073709551614), amount.Lamports())
}

func (s *SolstakeTestSuite) TestSolAmountTruncates() {
	require := s.Require()

	// sub-lamport digits are dropped, never rounded up
	amount, err := ParseSolAmount("1.0000000015")
	require.NoError(err)
	require.EqualValues(1_000_000_001, amount.Lamports())

	amount, err = ParseSolAmount("0.0000000009")
	require.NoError(err)
	require.EqualValues(0, amount.Lamports())
}

func (s *SolstakeTestSuite) TestSolAmountRoundTrip() {
	require := s.Require()

	// exact for nine decimals
	amount, err := ParseSolAmount("1.234567891")
	require.NoError(err)
	require.Equal("1.234567891", LamportsToSol(amount.Lamports()).String())

	// loses at most one lamport otherwise
	amount, err = ParseSolAmount("1.2345678915")
	require.NoError(err)
	lamports := amount.Lamports()
	require.EqualValues(1_234_567_891, lamports)
	diff := amount.Decimal().Sub(LamportsToSol(lamports))
	require.True(diff.Shift(9).LessThan(decimal.NewFromInt(1)))
}

func (s *SolstakeTestSuite) TestParseOptionalSolAmount() {
	require := s.Require()

	_, ok, err := ParseOptionalSolAmount("")
	require.NoError(err)
	require.False(ok)

	_, ok, err = ParseOptionalSolAmount("   ")
	require.NoError(err)
	require.False(ok)

	amount, ok, err := ParseOptionalSolAmount("0.5")
	require.NoError(err)
	require.True(ok)
	require.EqualValues(500_000_000, amount.Lamports())

	_, _, err = ParseOptionalSolAmount("bogus")
	require.Error(err)
	require.Equal(errors.InvalidAmount, errors.StatusOf(err))
}

func (s *SolstakeTestSuite) TestFormatLamports() {
	require := s.Require()
	require.Equal("2.500000 SOL", FormatLamports(2_500_000_000))
	require.Equal("0.000000 SOL", FormatLamports(0))
	require.Equal("1.000000 SOL", FormatLamports(LamportsPerSol))
}
