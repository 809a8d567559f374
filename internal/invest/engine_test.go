package invest

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/ledger/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTransaction(t *testing.T, store *inmemory.Store, userID, roundUp string, date time.Time) {
	t.Helper()
	_, err := store.CreateTransaction(context.Background(), domain.Transaction{
		UserID:        userID,
		AccountID:     "acct-1",
		Merchant:      "Test Merchant",
		Amount:        "10.00",
		RoundUpAmount: roundUp,
		Category:      "Misc",
		Date:          date,
	})
	require.NoError(t, err)
}

func TestMonthlyRoundupsDecimalExactSum(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)

	// 0.13 + 0.59 + 0.37 + 0.17 drifts under binary floats
	// (it lands on 1.2600000000000002); decimals must give exactly 1.26.
	dec := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	for i, roundUp := range []string{"0.13", "0.59", "0.37", "0.17"} {
		seedTransaction(t, store, "user-1", roundUp, dec.AddDate(0, 0, -i))
	}

	sum, err := engine.MonthlyRoundups(ctx, "user-1", 2024, time.December)
	require.NoError(t, err)
	assert.Equal(t, "1.26", sum.StringFixed(2))
}

func TestMonthlyRoundupsEmptyMonth(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)

	sum, err := engine.MonthlyRoundups(ctx, "user-1", 2024, time.December)
	require.NoError(t, err)
	assert.Equal(t, "0.00", sum.StringFixed(2))
}

func TestMonthlyRoundupsFiltersByOccurrenceMonth(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)

	seedTransaction(t, store, "user-1", "0.50", time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC))
	seedTransaction(t, store, "user-1", "0.25", time.Date(2025, time.January, 1, 1, 0, 0, 0, time.UTC))
	seedTransaction(t, store, "user-1", "0.75", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	// another user's December activity stays out
	seedTransaction(t, store, "user-2", "0.99", time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC))

	sum, err := engine.MonthlyRoundups(ctx, "user-1", 2024, time.December)
	require.NoError(t, err)
	assert.Equal(t, "1.25", sum.StringFixed(2))

	jan, err := engine.MonthlyRoundups(ctx, "user-1", 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, "0.25", jan.StringFixed(2))
}

func TestMonthlyRoundupsSeesBeyondDefaultListLimit(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)

	// More transactions than the default listing limit of 50; the accrual
	// must still count every one.
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		seedTransaction(t, store, "user-1", "0.01", date)
	}

	sum, err := engine.MonthlyRoundups(ctx, "user-1", 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "0.60", sum.StringFixed(2))
}

func newFundedPortfolio(t *testing.T, store *inmemory.Store, userID, totalValue, availableCash string) *domain.Portfolio {
	t.Helper()
	portfolio, err := store.CreatePortfolio(context.Background(), domain.Portfolio{
		UserID:        userID,
		TotalValue:    totalValue,
		AvailableCash: availableCash,
	})
	require.NoError(t, err)
	return portfolio
}

func TestInvestCashPartialAmount(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)
	newFundedPortfolio(t, store, "user-1", "2847.92", "43.21")

	result, err := engine.InvestCash(ctx, "user-1", "20.00")
	require.NoError(t, err)
	assert.Equal(t, "20.00", result.InvestedAmount)
	assert.Equal(t, "2867.92", result.NewTotalValue)

	portfolio, err := store.GetPortfolioByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "2867.92", portfolio.TotalValue)
	assert.Equal(t, "23.21", portfolio.AvailableCash)
}

func TestInvestCashFullAmountWhenUnspecified(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)
	newFundedPortfolio(t, store, "user-1", "100.00", "43.21")

	result, err := engine.InvestCash(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "43.21", result.InvestedAmount)
	assert.Equal(t, "143.21", result.NewTotalValue)

	portfolio, err := store.GetPortfolioByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "0.00", portfolio.AvailableCash)
}

func TestInvestCashUnparseableAmountInvestsAll(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)
	newFundedPortfolio(t, store, "user-1", "0.00", "10.50")

	result, err := engine.InvestCash(ctx, "user-1", "everything")
	require.NoError(t, err)
	assert.Equal(t, "10.50", result.InvestedAmount)
	assert.Equal(t, "10.50", result.NewTotalValue)
}

func TestInvestCashInsufficientLeavesPortfolioUntouched(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)
	created := newFundedPortfolio(t, store, "user-1", "100.00", "43.21")

	_, err := engine.InvestCash(ctx, "user-1", "43.22")
	assert.ErrorIs(t, err, ErrInsufficientCash)

	portfolio, err := store.GetPortfolioByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "100.00", portfolio.TotalValue)
	assert.Equal(t, "43.21", portfolio.AvailableCash)
	assert.Equal(t, created.UpdatedAt, portfolio.UpdatedAt)
}

func TestInvestCashExactBalanceAllowed(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	engine := NewEngine(store)
	newFundedPortfolio(t, store, "user-1", "0.00", "43.21")

	result, err := engine.InvestCash(ctx, "user-1", "43.21")
	require.NoError(t, err)
	assert.Equal(t, "43.21", result.InvestedAmount)

	portfolio, err := store.GetPortfolioByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "0.00", portfolio.AvailableCash)
}

func TestInvestCashNoPortfolio(t *testing.T) {
	store := inmemory.NewStore()
	engine := NewEngine(store)

	_, err := engine.InvestCash(context.Background(), "user-1", "10.00")
	assert.ErrorIs(t, err, ErrNoPortfolio)
}
