package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/utils/accounting"
)

func debitLine(n int, amount string) domain.JournalLine {
	return domain.JournalLine{LineNumber: n, AccountID: "acc-debit", DebitAmount: decimal.RequireFromString(amount)}
}

func creditLine(n int, amount string) domain.JournalLine {
	return domain.JournalLine{LineNumber: n, AccountID: "acc-credit", CreditAmount: decimal.RequireFromString(amount)}
}

func TestValidateLinesShape_Valid(t *testing.T) {
	lines := []domain.JournalLine{debitLine(1, "100"), creditLine(2, "100")}
	assert.NoError(t, accounting.ValidateLinesShape(lines))
}

func TestValidateLinesShape_TooFewLines(t *testing.T) {
	err := accounting.ValidateLinesShape([]domain.JournalLine{debitLine(1, "100")})
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrInvalidShape)
}

func TestValidateLinesShape_NegativeAmount(t *testing.T) {
	lines := []domain.JournalLine{
		{LineNumber: 1, DebitAmount: decimal.NewFromInt(-5)},
		creditLine(2, "100"),
	}
	err := accounting.ValidateLinesShape(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrInvalidShape)
}

func TestValidateLinesShape_BothSidesSet(t *testing.T) {
	lines := []domain.JournalLine{
		{LineNumber: 1, DebitAmount: decimal.NewFromInt(50), CreditAmount: decimal.NewFromInt(50)},
		creditLine(2, "50"),
	}
	err := accounting.ValidateLinesShape(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrInvalidShape)
}

func TestValidateLinesShape_NeitherSideSet(t *testing.T) {
	lines := []domain.JournalLine{
		{LineNumber: 1},
		creditLine(2, "50"),
	}
	err := accounting.ValidateLinesShape(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrInvalidShape)
}

func TestValidateBalanced_Balanced(t *testing.T) {
	lines := []domain.JournalLine{debitLine(1, "250.50"), creditLine(2, "200"), creditLine(3, "50.50")}
	assert.NoError(t, accounting.ValidateBalanced(lines))
}

func TestValidateBalanced_RoundingAbsorbsFloatNoise(t *testing.T) {
	// 0.1 + 0.2 on the debit side must balance against 0.3 after rounding.
	lines := []domain.JournalLine{
		debitLine(1, "0.1"),
		debitLine(2, "0.2"),
		creditLine(3, "0.3"),
	}
	assert.NoError(t, accounting.ValidateBalanced(lines))
}

func TestValidateBalanced_SubCentDifferenceBalances(t *testing.T) {
	// A difference below the rounding unit is not a mismatch.
	lines := []domain.JournalLine{
		debitLine(1, "100.001"),
		creditLine(2, "100.004"),
	}
	assert.NoError(t, accounting.ValidateBalanced(lines))
}

func TestValidateBalanced_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{debitLine(1, "100"), creditLine(2, "99.98")}
	err := accounting.ValidateBalanced(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrUnbalanced)
}

func TestValidateBalanced_ZeroTotal(t *testing.T) {
	lines := []domain.JournalLine{
		{LineNumber: 1, DebitAmount: decimal.Zero},
		{LineNumber: 2, CreditAmount: decimal.Zero},
	}
	err := accounting.ValidateBalanced(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrZeroTotal)
}

func TestTotalAmount_SumsDebitSide(t *testing.T) {
	lines := []domain.JournalLine{debitLine(1, "70"), debitLine(2, "30"), creditLine(3, "100")}
	assert.True(t, accounting.TotalAmount(lines).Equal(decimal.NewFromInt(100)))
}

func TestSignedAmount(t *testing.T) {
	assert.True(t, accounting.SignedAmount(debitLine(1, "40")).Equal(decimal.NewFromInt(40)))
	assert.True(t, accounting.SignedAmount(creditLine(1, "40")).Equal(decimal.NewFromInt(-40)))
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.13", accounting.Round2(decimal.RequireFromString("0.125")).String())
	assert.Equal(t, "-0.13", accounting.Round2(decimal.RequireFromString("-0.125")).String())
}
