package domain

import (
	"time"
)

// All monetary fields are two-decimal strings, never floats. The store keeps
// them opaque; arithmetic happens in the invest package with decimals.

// User is a registered account holder. Password holds a bcrypt hash and is
// excluded from every JSON response.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Account is a linked bank or card account. AccountNumber is stored masked
// (e.g. "••••1234"); the real number never enters the system.
type Account struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	BankName      string    `json:"bankName"`
	AccountType   string    `json:"accountType"` // Checking, Savings, Credit Card
	AccountNumber string    `json:"accountNumber"`
	Balance       string    `json:"balance"`
	IsConnected   bool      `json:"isConnected"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Transaction records a merchant purchase and its round-up accrual.
// Date is the purchase occurrence, distinct from CreatedAt. RoundUpAmount is
// caller-supplied; the store never derives it. Immutable once created.
type Transaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AccountID     string    `json:"accountId"`
	Merchant      string    `json:"merchant"`
	Amount        string    `json:"amount"`
	RoundUpAmount string    `json:"roundUpAmount"`
	Category      string    `json:"category"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Portfolio holds a user's invested value and uninvested cash. Allocation maps
// asset-class name to a target percentage; it is informational and not
// required to sum to 100. Exactly one portfolio exists per user.
type Portfolio struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	TotalValue    string             `json:"totalValue"`
	AvailableCash string             `json:"availableCash"`
	Allocation    map[string]float64 `json:"allocation"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Investment is a named holding inside a portfolio. TotalValue is caller-set;
// nothing recomputes it from Shares x CurrentPrice.
type Investment struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	PortfolioID  string    `json:"portfolioId"`
	AssetType    string    `json:"assetType"`
	AssetName    string    `json:"assetName"`
	Shares       string    `json:"shares"`
	CurrentPrice string    `json:"currentPrice"`
	TotalValue   string    `json:"totalValue"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Goal is a named savings target. Progress is computed by consumers as
// CurrentAmount / TargetAmount, never stored.
type Goal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	TargetAmount  string    `json:"targetAmount"`
	CurrentAmount string    `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PortfolioHistory is an append-only snapshot of a portfolio's total value,
// used to reconstruct the value time series for charts.
type PortfolioHistory struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PortfolioID string    `json:"portfolioId"`
	TotalValue  string    `json:"totalValue"`
	Date        time.Time `json:"date"`
}
