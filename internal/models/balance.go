package models

import "github.com/shopspring/decimal"

// BalanceDirection tags a balance mutation as a credit or a debit, so the
// sign of the delta is explicit at the call site.
type BalanceDirection string

const (
	Credit BalanceDirection = "credit"
	Debit  BalanceDirection = "debit"
)

// BalanceChange is a tagged balance mutation. Amount is always non-negative;
// the direction carries the sign.
type BalanceChange struct {
	Direction BalanceDirection
	Amount    decimal.Decimal
}

// NewBalanceChange converts a signed amount into a tagged change.
func NewBalanceChange(amount decimal.Decimal) BalanceChange {
	if amount.IsNegative() {
		return BalanceChange{Direction: Debit, Amount: amount.Neg()}
	}
	return BalanceChange{Direction: Credit, Amount: amount}
}

// Delta returns the signed delta to apply to a stored balance.
func (c BalanceChange) Delta() decimal.Decimal {
	if c.Direction == Debit {
		return c.Amount.Neg()
	}
	return c.Amount
}
