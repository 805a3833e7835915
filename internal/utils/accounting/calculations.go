package accounting

import (
	"errors"
	"fmt"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidShape is returned when a line set breaks the structural rules
	// (<2 lines, a negative amount, or a line without the debit XOR credit property).
	ErrInvalidShape = errors.New("journal lines have an invalid shape")
	// ErrUnbalanced is returned when the rounded debit and credit sums differ.
	ErrUnbalanced = errors.New("journal lines do not balance")
	// ErrZeroTotal is returned when a balanced line set moves no money.
	ErrZeroTotal = errors.New("journal total must be greater than zero")
)

// Round2 rounds to 2 decimal places, half away from zero. All balance
// comparisons run on rounded sums so float-fed inputs like 0.1+0.2 compare
// exactly.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ValidateLinesShape enforces the structural invariants on a line set:
// at least two lines, no negative amounts, and exactly one positive side
// per line.
func ValidateLinesShape(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal must have at least two lines, got %d", ErrInvalidShape, len(lines))
	}
	for _, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", ErrInvalidShape, line.LineNumber)
		}
		hasDebit := line.DebitAmount.IsPositive()
		hasCredit := line.CreditAmount.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("%w: line %d must carry exactly one of debit or credit", ErrInvalidShape, line.LineNumber)
		}
	}
	return nil
}

// ValidateBalanced enforces the balance invariants: rounded debit and credit
// sums equal, and the total strictly positive.
func ValidateBalanced(lines []domain.JournalLine) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}
	debits = Round2(debits)
	credits = Round2(credits)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", ErrUnbalanced, debits.String(), credits.String())
	}
	if !debits.IsPositive() {
		return ErrZeroTotal
	}
	return nil
}

// TotalAmount computes the economic value of a balanced line set: the sum
// of the debit side.
func TotalAmount(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.DebitAmount)
	}
	return Round2(total)
}

// SignedAmount is the debit-minus-credit view of a line, the quantity ledger
// running balances accumulate.
func SignedAmount(line domain.JournalLine) decimal.Decimal {
	return line.DebitAmount.Sub(line.CreditAmount)
}
