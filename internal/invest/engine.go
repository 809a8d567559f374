// Package invest implements the round-up accrual and cash-investment logic
// layered on the ledger store. All arithmetic uses shopspring decimals so
// cent sums never drift through binary floats.
package invest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/shopspring/decimal"
)

// ErrNoPortfolio is returned when the user has no portfolio to invest from.
var ErrNoPortfolio = errors.New("portfolio not found")

// ErrInsufficientCash is returned when the requested amount exceeds the
// portfolio's available cash. The portfolio is left untouched.
var ErrInsufficientCash = errors.New("insufficient cash available")

// Result reports a completed cash-investment transition. Both fields are
// two-decimal strings.
type Result struct {
	InvestedAmount string `json:"investedAmount"`
	NewTotalValue  string `json:"newTotalValue"`
}

// Engine computes round-up accruals and performs the cash-investment
// transition against a ledger store.
type Engine struct {
	store ledger.Store
}

// NewEngine creates an engine backed by the given store.
func NewEngine(store ledger.Store) *Engine {
	return &Engine{store: store}
}

const allTransactions = 1 << 30

// MonthlyRoundups returns the decimal-exact sum of roundUpAmount across the
// user's transactions whose occurrence date falls in the given calendar year
// and month. An empty month sums to zero. The occurrence date is used for
// bucketing, never the creation timestamp.
func (e *Engine) MonthlyRoundups(ctx context.Context, userID string, year int, month time.Month) (decimal.Decimal, error) {
	// No limit cap here: the accrual must see every transaction, so ask for
	// more than the store could plausibly hold for one user.
	transactions, err := e.store.ListTransactionsByUser(ctx, userID, allTransactions)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}

	sum := decimal.Zero
	for _, tx := range transactions {
		if tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		roundUp, err := decimal.NewFromString(tx.RoundUpAmount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse round-up amount %q for transaction %s: %w", tx.RoundUpAmount, tx.ID, err)
		}
		sum = sum.Add(roundUp)
	}
	return sum, nil
}

// InvestCash moves amount from the user's available cash into total invested
// value. An empty or unparseable amount invests the entire available cash.
// Both portfolio fields are persisted through a single update call; on
// ErrInsufficientCash no write happens at all.
func (e *Engine) InvestCash(ctx context.Context, userID string, amount string) (*Result, error) {
	portfolio, err := e.store.GetPortfolioByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrNoPortfolio
		}
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	availableCash, err := decimal.NewFromString(portfolio.AvailableCash)
	if err != nil {
		return nil, fmt.Errorf("parse available cash %q: %w", portfolio.AvailableCash, err)
	}
	totalValue, err := decimal.NewFromString(portfolio.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("parse total value %q: %w", portfolio.TotalValue, err)
	}

	investAmount := availableCash
	if parsed, err := decimal.NewFromString(amount); err == nil {
		investAmount = parsed
	}

	if investAmount.GreaterThan(availableCash) {
		return nil, ErrInsufficientCash
	}

	newTotalValue := totalValue.Add(investAmount).StringFixed(2)
	newAvailableCash := availableCash.Sub(investAmount).StringFixed(2)

	if _, err := e.store.UpdatePortfolio(ctx, portfolio.ID, ledger.PortfolioUpdate{
		TotalValue:    &newTotalValue,
		AvailableCash: &newAvailableCash,
	}); err != nil {
		return nil, fmt.Errorf("update portfolio: %w", err)
	}

	return &Result{
		InvestedAmount: investAmount.StringFixed(2),
		NewTotalValue:  newTotalValue,
	}, nil
}
