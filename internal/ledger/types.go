package ledger

import (
	"context"
	"errors"

	"github.com/dvloznov/pennywise/internal/domain"
)

// ErrNotFound is returned when a record id (or unique key) does not exist.
// The HTTP layer translates it to a 404.
var ErrNotFound = errors.New("record not found")

// ErrPortfolioExists is returned when a second portfolio is created for a
// user that already has one. The one-portfolio-per-user rule is enforced
// here at the repository boundary rather than left as a convention.
var ErrPortfolioExists = errors.New("portfolio already exists for user")

// DefaultTransactionLimit is applied when ListTransactionsByUser receives a
// non-positive limit.
const DefaultTransactionLimit = 50

// AccountUpdate carries a partial account update. Nil fields are left
// unchanged; the merge is shallow.
type AccountUpdate struct {
	BankName      *string
	AccountType   *string
	AccountNumber *string
	Balance       *string
	IsConnected   *bool
}

// PortfolioUpdate carries a partial portfolio update. A non-nil Allocation
// replaces the whole map; keys are never deep-merged.
type PortfolioUpdate struct {
	TotalValue    *string
	AvailableCash *string
	Allocation    map[string]float64
}

// InvestmentUpdate carries a partial investment update. TotalValue is
// caller-supplied; the store never recomputes it from shares and price.
type InvestmentUpdate struct {
	AssetType    *string
	AssetName    *string
	Shares       *string
	CurrentPrice *string
	TotalValue   *string
}

// GoalUpdate carries a partial goal update.
type GoalUpdate struct {
	Name          *string
	TargetAmount  *string
	CurrentAmount *string
	Icon          *string
	Color         *string
}

// Store is the ledger repository: per-entity keyed storage with filtered
// queries. One in-memory adapter exists today; the interface leaves room for
// a persistent backend.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Accounts
	CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, id string, updates AccountUpdate) (*domain.Account, error)

	// Transactions
	CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)

	// Portfolios
	CreatePortfolio(ctx context.Context, portfolio domain.Portfolio) (*domain.Portfolio, error)
	GetPortfolioByUser(ctx context.Context, userID string) (*domain.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id string, updates PortfolioUpdate) (*domain.Portfolio, error)

	// Investments
	CreateInvestment(ctx context.Context, investment domain.Investment) (*domain.Investment, error)
	ListInvestmentsByPortfolio(ctx context.Context, portfolioID string) ([]*domain.Investment, error)
	UpdateInvestment(ctx context.Context, id string, updates InvestmentUpdate) (*domain.Investment, error)

	// Goals
	CreateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	ListGoalsByUser(ctx context.Context, userID string) ([]*domain.Goal, error)
	UpdateGoal(ctx context.Context, id string, updates GoalUpdate) (*domain.Goal, error)

	// Portfolio history
	CreatePortfolioHistory(ctx context.Context, history domain.PortfolioHistory) (*domain.PortfolioHistory, error)
	ListPortfolioHistory(ctx context.Context, portfolioID string, days int) ([]*domain.PortfolioHistory, error)
}
