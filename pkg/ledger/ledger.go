// Package ledger keeps the virtual currency balances of every user.
//
// Balances live in a single document that is loaded once and rewritten in full on every change.
// All mutations go through the document's mutex, so a transfer's debit and credit are applied
// together or not at all. Nothing coordinates separate processes writing the same document.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/shopspring/decimal"
)

// DocumentName is the name of the balances document.
const DocumentName = "user_balances.json"

var (
	// ErrInvalidAmount is returned when a non-positive amount is given to a mutation.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientBalance is returned when a debit exceeds the available funds.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Transfer is the outcome of a successful transfer.
type Transfer struct {
	// FromBalance is the sender's balance after the transfer.
	FromBalance decimal.Decimal

	// ToBalance is the receiver's balance after the transfer.
	ToBalance decimal.Decimal
}

// PurchaseResult is the outcome of a purchase. Failures are reported here rather than as an error.
type PurchaseResult struct {
	// Success is whether the funds moved.
	Success bool

	// Err is the reason the purchase failed.
	Err error

	// Amount is the price that was charged.
	Amount decimal.Decimal

	// BuyerBalance is the buyer's balance after the purchase, or the unchanged balance on failure.
	BuyerBalance decimal.Decimal

	// SellerBalance is the seller's balance after the purchase.
	SellerBalance decimal.Decimal
}

// Ledger is the balance store.
type Ledger struct {
	doc *dataaccess.Document[Balances]
}

// NewLedger opens the balances document on the backend.
func NewLedger(ctx context.Context, l *slog.Logger, backend dataaccess.Backend) *Ledger {
	return &Ledger{
		doc: dataaccess.OpenDocument(ctx, l, backend, DocumentName, func() Balances {
			return make(Balances)
		}),
	}
}

// GetBalance returns the balance of the user. Unknown users have a balance of zero.
func (l *Ledger) GetBalance(userID string) decimal.Decimal {
	var balance decimal.Decimal
	l.doc.Read(func(b Balances) {
		balance = b.get(userID)
	})
	return balance
}

// HasSufficientBalance reports whether the user can afford the amount.
func (l *Ledger) HasSufficientBalance(userID string, amount decimal.Decimal) bool {
	return l.GetBalance(userID).GreaterThanOrEqual(amount)
}

// Credit adds the amount to the user's balance and returns the new balance.
func (l *Ledger) Credit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.doc.Mutate(ctx, func(b Balances) error {
		var err error
		balance, err = b.credit(userID, amount)
		return err
	})
	observe("credit", err)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error crediting %s: %w", userID, err)
	}
	return balance, nil
}

// Debit removes the amount from the user's balance and returns the new balance.
func (l *Ledger) Debit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.doc.Mutate(ctx, func(b Balances) error {
		var err error
		balance, err = b.debit(userID, amount)
		return err
	})
	observe("debit", err)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error debiting %s: %w", userID, err)
	}
	return balance, nil
}

// Transfer moves the amount from one user to another.
func (l *Ledger) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*Transfer, error) {
	t := new(Transfer)
	err := l.doc.Mutate(ctx, func(b Balances) error {
		// Both checks run before either balance changes.
		if !amount.IsPositive() {
			return ErrInvalidAmount
		} else if b.get(fromID).LessThan(amount) {
			return ErrInsufficientBalance
		}

		var err error
		if t.FromBalance, err = b.debit(fromID, amount); err != nil {
			return err
		}
		if t.ToBalance, err = b.credit(toID, amount); err != nil {
			return err
		}
		return nil
	})
	observe("transfer", err)
	if err != nil {
		return nil, fmt.Errorf("error transferring from %s to %s: %w", fromID, toID, err)
	}
	return t, nil
}

// Purchase transfers the price from the buyer to the seller. It never returns an error: a failed
// purchase carries the cause and the buyer's current balance instead.
func (l *Ledger) Purchase(ctx context.Context, buyerID, sellerID string, amount decimal.Decimal) *PurchaseResult {
	t, err := l.Transfer(ctx, buyerID, sellerID, amount)
	if err != nil {
		return &PurchaseResult{
			Success:      false,
			Err:          err,
			Amount:       amount,
			BuyerBalance: l.GetBalance(buyerID),
		}
	}

	return &PurchaseResult{
		Success:       true,
		Amount:        amount,
		BuyerBalance:  t.FromBalance,
		SellerBalance: t.ToBalance,
	}
}
