package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, *dataaccess.MemoryBackend) {
	t.Helper()
	backend := dataaccess.NewMemoryBackend()
	l := NewLedger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), backend)
	return l, backend
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger_GetBalanceUnknownUser(t *testing.T) {
	l, _ := newTestLedger(t)
	require.True(t, l.GetBalance("nobody").IsZero())
}

func TestLedger_Credit(t *testing.T) {
	ctx := context.Background()
	l, backend := newTestLedger(t)

	got, err := l.Credit(ctx, "1", d("10.5"))
	require.NoError(t, err)
	require.True(t, d("10.5").Equal(got))

	got, err = l.Credit(ctx, "1", d("0.25"))
	require.NoError(t, err)
	require.True(t, d("10.75").Equal(got))
	require.True(t, d("10.75").Equal(l.GetBalance("1")))

	raw, ok := backend.Raw(DocumentName)
	require.True(t, ok)
	require.JSONEq(t, `{"1": 10.75}`, string(raw))
}

func TestLedger_NonPositiveAmounts(t *testing.T) {
	ctx := context.Background()

	for _, amount := range []string{"0", "-1", "-0.01"} {
		t.Run(amount, func(t *testing.T) {
			l, _ := newTestLedger(t)
			_, err := l.Credit(ctx, "a", d("5"))
			require.NoError(t, err)

			_, err = l.Credit(ctx, "a", d(amount))
			require.ErrorIs(t, err, ErrInvalidAmount)

			_, err = l.Debit(ctx, "a", d(amount))
			require.ErrorIs(t, err, ErrInvalidAmount)

			_, err = l.Transfer(ctx, "a", "b", d(amount))
			require.ErrorIs(t, err, ErrInvalidAmount)

			require.True(t, d("5").Equal(l.GetBalance("a")))
			require.True(t, l.GetBalance("b").IsZero())
		})
	}
}

func TestLedger_DebitInsufficient(t *testing.T) {
	ctx := context.Background()
	l, backend := newTestLedger(t)

	_, err := l.Credit(ctx, "a", d("3"))
	require.NoError(t, err)
	saves := backend.SaveCount(DocumentName)

	_, err = l.Debit(ctx, "a", d("3.01"))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.True(t, d("3").Equal(l.GetBalance("a")))
	require.Equal(t, saves, backend.SaveCount(DocumentName))

	got, err := l.Debit(ctx, "a", d("3"))
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestLedger_TransferConservesSum(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	_, err := l.Credit(ctx, "a", d("100"))
	require.NoError(t, err)
	_, err = l.Credit(ctx, "b", d("7"))
	require.NoError(t, err)

	tr, err := l.Transfer(ctx, "a", "b", d("42.5"))
	require.NoError(t, err)
	require.True(t, d("57.5").Equal(tr.FromBalance))
	require.True(t, d("49.5").Equal(tr.ToBalance))

	sum := l.GetBalance("a").Add(l.GetBalance("b"))
	require.True(t, d("107").Equal(sum))
}

func TestLedger_TransferInsufficientLeavesBothUnchanged(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	_, err := l.Credit(ctx, "a", d("1"))
	require.NoError(t, err)

	_, err = l.Transfer(ctx, "a", "b", d("2"))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.True(t, d("1").Equal(l.GetBalance("a")))
	require.True(t, l.GetBalance("b").IsZero())
}

func TestLedger_Purchase(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		l, _ := newTestLedger(t)
		_, err := l.Credit(ctx, "buyer", d("20"))
		require.NoError(t, err)

		res := l.Purchase(ctx, "buyer", "seller", d("19.99"))
		require.True(t, res.Success)
		require.NoError(t, res.Err)
		require.True(t, d("0.01").Equal(res.BuyerBalance))
		require.True(t, d("19.99").Equal(res.SellerBalance))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		l, _ := newTestLedger(t)
		_, err := l.Credit(ctx, "buyer", d("5"))
		require.NoError(t, err)

		res := l.Purchase(ctx, "buyer", "seller", d("19.99"))
		require.False(t, res.Success)
		require.True(t, errors.Is(res.Err, ErrInsufficientBalance))
		require.True(t, d("5").Equal(res.BuyerBalance))
		require.True(t, l.GetBalance("seller").IsZero())
	})
}

func TestLedger_ReloadFromBackend(t *testing.T) {
	ctx := context.Background()
	backend := dataaccess.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, DocumentName, []byte(`{"1": 12.5, "2": "3"}`)))

	l := NewLedger(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), backend)
	require.True(t, d("12.5").Equal(l.GetBalance("1")))
	require.True(t, d("3").Equal(l.GetBalance("2")))
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "1,234.50", FormatAmount(d("1234.5")))
	require.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
