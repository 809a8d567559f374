// Package seed loads the demo fixture: one user with linked accounts,
// round-up transactions, a funded portfolio with holdings and history, and
// savings goals. The round-up arithmetic lives here, not in the store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DemoEmail and DemoPassword are the demo login credentials.
const (
	DemoEmail    = "demo@pennywise.com"
	DemoPassword = "password123"
)

// RoundUp returns the difference between a purchase amount and the next
// whole currency unit, formatted to two decimals. Whole amounts round up to
// "0.00".
func RoundUp(amount string) (string, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return value.Ceil().Sub(value).StringFixed(2), nil
}

// Demo populates the store with the demo user and their data. It is meant
// for an empty store at process start.
func Demo(ctx context.Context, store ledger.Store, log zerolog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	user, err := store.CreateUser(ctx, domain.User{
		Username:  "demo",
		Email:     DemoEmail,
		Password:  string(hash),
		FirstName: "Alex",
		LastName:  "Johnson",
	})
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	checking, err := store.CreateAccount(ctx, domain.Account{
		UserID:        user.ID,
		BankName:      "Chase",
		AccountType:   "Checking",
		AccountNumber: "••••1234",
		Balance:       "5432.10",
		IsConnected:   true,
	})
	if err != nil {
		return fmt.Errorf("create checking account: %w", err)
	}

	if _, err := store.CreateAccount(ctx, domain.Account{
		UserID:        user.ID,
		BankName:      "Bank of America",
		AccountType:   "Credit Card",
		AccountNumber: "••••5678",
		Balance:       "0.00",
		IsConnected:   true,
	}); err != nil {
		return fmt.Errorf("create credit account: %w", err)
	}

	portfolio, err := store.CreatePortfolio(ctx, domain.Portfolio{
		UserID:        user.ID,
		TotalValue:    "2847.92",
		AvailableCash: "43.21",
		Allocation: map[string]float64{
			"US Stocks":     50,
			"International": 30,
			"Bonds":         10,
			"REITs":         10,
		},
	})
	if err != nil {
		return fmt.Errorf("create portfolio: %w", err)
	}

	now := time.Now()

	purchases := []struct {
		merchant string
		amount   string
		category string
		daysAgo  int
	}{
		{"Starbucks", "4.87", "Food & Drink", 1},
		{"Shell Gas Station", "32.41", "Gas", 2},
		{"Chipotle", "12.63", "Food & Drink", 3},
		{"Amazon", "47.83", "Shopping", 4},
	}
	for _, p := range purchases {
		roundUp, err := RoundUp(p.amount)
		if err != nil {
			return err
		}
		if _, err := store.CreateTransaction(ctx, domain.Transaction{
			UserID:        user.ID,
			AccountID:     checking.ID,
			Merchant:      p.merchant,
			Amount:        p.amount,
			RoundUpAmount: roundUp,
			Category:      p.category,
			Date:          now.AddDate(0, 0, -p.daysAgo),
		}); err != nil {
			return fmt.Errorf("create transaction for %s: %w", p.merchant, err)
		}
	}

	goals := []domain.Goal{
		{UserID: user.ID, Name: "Emergency Fund", TargetAmount: "2000.00", CurrentAmount: "1340.00", TargetDate: now.AddDate(0, 3, 0), Icon: "fas fa-home", Color: "purple"},
		{UserID: user.ID, Name: "New Car", TargetAmount: "15000.00", CurrentAmount: "1200.00", TargetDate: now.AddDate(1, 0, 0), Icon: "fas fa-car", Color: "blue"},
		{UserID: user.ID, Name: "Vacation", TargetAmount: "3000.00", CurrentAmount: "450.00", TargetDate: now.AddDate(0, 6, 0), Icon: "fas fa-plane", Color: "green"},
	}
	for _, g := range goals {
		if _, err := store.CreateGoal(ctx, g); err != nil {
			return fmt.Errorf("create goal %s: %w", g.Name, err)
		}
	}

	// Eight days of portfolio value history ending at today's total.
	values := []string{"2650.00", "2680.00", "2720.00", "2695.00", "2750.00", "2780.00", "2820.00", "2847.92"}
	for i, value := range values {
		if _, err := store.CreatePortfolioHistory(ctx, domain.PortfolioHistory{
			UserID:      user.ID,
			PortfolioID: portfolio.ID,
			TotalValue:  value,
			Date:        now.AddDate(0, 0, i-len(values)+1),
		}); err != nil {
			return fmt.Errorf("create history entry: %w", err)
		}
	}

	holdings := []domain.Investment{
		{UserID: user.ID, PortfolioID: portfolio.ID, AssetType: "US Stocks", AssetName: "VTSAX", Shares: "12.5", CurrentPrice: "113.89", TotalValue: "1423.56"},
		{UserID: user.ID, PortfolioID: portfolio.ID, AssetType: "International", AssetName: "VTIAX", Shares: "25.3", CurrentPrice: "33.72", TotalValue: "853.48"},
		{UserID: user.ID, PortfolioID: portfolio.ID, AssetType: "Bonds", AssetName: "VBTLX", Shares: "28.1", CurrentPrice: "10.12", TotalValue: "284.49"},
		{UserID: user.ID, PortfolioID: portfolio.ID, AssetType: "REITs", AssetName: "VGSLX", Shares: "2.8", CurrentPrice: "101.57", TotalValue: "284.39"},
	}
	for _, inv := range holdings {
		if _, err := store.CreateInvestment(ctx, inv); err != nil {
			return fmt.Errorf("create investment %s: %w", inv.AssetName, err)
		}
	}

	log.Info().Str("user_id", user.ID).Str("email", DemoEmail).Msg("Demo data seeded")
	return nil
}
