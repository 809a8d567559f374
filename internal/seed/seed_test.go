package seed

import (
	"bytes"
	"context"
	"testing"

	"github.com/dvloznov/pennywise/internal/ledger/inmemory"
	"github.com/dvloznov/pennywise/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRoundUp(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"4.87", "0.13"},
		{"32.41", "0.59"},
		{"12.63", "0.37"},
		{"47.83", "0.17"},
		{"10.00", "0.00"},
		{"0.01", "0.99"},
	}

	for _, tt := range tests {
		got, err := RoundUp(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "round-up of %s", tt.amount)
	}
}

func TestRoundUpInvalidAmount(t *testing.T) {
	_, err := RoundUp("not-money")
	assert.Error(t, err)
}

func TestDemoFixture(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()
	log := logger.NewWithWriter(&bytes.Buffer{})

	require.NoError(t, Demo(ctx, store, log))

	user, err := store.GetUserByEmail(ctx, DemoEmail)
	require.NoError(t, err)
	assert.Equal(t, "Alex", user.FirstName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DemoPassword)))

	accounts, err := store.ListAccountsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	portfolio, err := store.GetPortfolioByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "2847.92", portfolio.TotalValue)
	assert.Equal(t, "43.21", portfolio.AvailableCash)
	assert.Len(t, portfolio.Allocation, 4)

	transactions, err := store.ListTransactionsByUser(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, transactions, 4)
	// newest first: yesterday's Starbucks purchase with its derived round-up
	assert.Equal(t, "Starbucks", transactions[0].Merchant)
	assert.Equal(t, "0.13", transactions[0].RoundUpAmount)

	goals, err := store.ListGoalsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, goals, 3)

	history, err := store.ListPortfolioHistory(ctx, portfolio.ID, 30)
	require.NoError(t, err)
	require.Len(t, history, 8)
	assert.Equal(t, "2650.00", history[0].TotalValue)
	assert.Equal(t, "2847.92", history[len(history)-1].TotalValue)

	investments, err := store.ListInvestmentsByPortfolio(ctx, portfolio.ID)
	require.NoError(t, err)
	assert.Len(t, investments, 4)
}
