package ledger

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Balances maps a user ID to its balance. It is written as bare JSON numbers.
type Balances map[string]decimal.Decimal

// MarshalJSON implements the json.Marshaler interface.
func (b Balances) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.Number, len(b))
	for id, amount := range b {
		out[id] = json.Number(amount.String())
	}
	return json.Marshal(out)
}

func (b Balances) get(userID string) decimal.Decimal {
	return b[userID] // Zero value for unknown users.
}

func (b Balances) credit(userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	balance := b.get(userID).Add(amount)
	b[userID] = balance
	return balance, nil
}

func (b Balances) debit(userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	current := b.get(userID)
	if current.LessThan(amount) {
		return decimal.Zero, ErrInsufficientBalance
	}

	balance := current.Sub(amount)
	b[userID] = balance
	return balance, nil
}
