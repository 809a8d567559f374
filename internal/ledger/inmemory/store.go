package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/google/uuid"
)

// Store is an in-memory implementation of ledger.Store.
// It keeps one map per entity type and is safe for concurrent use.
// Data is lost on service restart - for persistence, use a database-backed store.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*domain.User
	accounts     map[string]*domain.Account
	transactions map[string]*domain.Transaction
	portfolios   map[string]*domain.Portfolio
	investments  map[string]*domain.Investment
	goals        map[string]*domain.Goal
	history      map[string]*domain.PortfolioHistory
}

// NewStore creates a new empty in-memory ledger store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*domain.User),
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string]*domain.Transaction),
		portfolios:   make(map[string]*domain.Portfolio),
		investments:  make(map[string]*domain.Investment),
		goals:        make(map[string]*domain.Goal),
		history:      make(map[string]*domain.PortfolioHistory),
	}
}

// CreateUser implements ledger.Store. It assigns a fresh id and creation
// timestamp. Email uniqueness is checked by the caller via GetUserByEmail.
func (s *Store) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()

	s.users[user.ID] = &user

	userCopy := user
	return &userCopy, nil
}

// GetUser implements ledger.Store.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ledger.ErrNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

// GetUserByEmail implements ledger.Store. Linear scan equality match, used
// for login and for the registration uniqueness check.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, ledger.ErrNotFound
}

// CreateAccount implements ledger.Store. Omitted balance defaults to "0.00".
// IsConnected is a plain bool, so callers that want a disconnected account
// set it explicitly through UpdateAccount; creates default it to true.
func (s *Store) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = uuid.New().String()
	account.CreatedAt = time.Now()
	if account.Balance == "" {
		account.Balance = "0.00"
	}

	s.accounts[account.ID] = &account

	accountCopy := account
	return &accountCopy, nil
}

// GetAccount implements ledger.Store.
func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[id]
	if !exists {
		return nil, ledger.ErrNotFound
	}

	accountCopy := *account
	return &accountCopy, nil
}

// ListAccountsByUser implements ledger.Store.
func (s *Store) ListAccountsByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*domain.Account{}
	for _, account := range s.accounts {
		if account.UserID != userID {
			continue
		}
		accountCopy := *account
		result = append(result, &accountCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateAccount implements ledger.Store. Nil fields are left unchanged.
func (s *Store) UpdateAccount(ctx context.Context, id string, updates ledger.AccountUpdate) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[id]
	if !exists {
		return nil, ledger.ErrNotFound
	}

	if updates.BankName != nil {
		account.BankName = *updates.BankName
	}
	if updates.AccountType != nil {
		account.AccountType = *updates.AccountType
	}
	if updates.AccountNumber != nil {
		account.AccountNumber = *updates.AccountNumber
	}
	if updates.Balance != nil {
		account.Balance = *updates.Balance
	}
	if updates.IsConnected != nil {
		account.IsConnected = *updates.IsConnected
	}

	accountCopy := *account
	return &accountCopy, nil
}

// CreateTransaction implements ledger.Store. Transactions are immutable once
// created; no update method exists.
func (s *Store) CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = uuid.New().String()
	tx.CreatedAt = time.Now()

	s.transactions[tx.ID] = &tx

	txCopy := tx
	return &txCopy, nil
}

// ListTransactionsByUser implements ledger.Store. Results are sorted by
// occurrence date descending before the limit is applied. A non-positive
// limit falls back to DefaultTransactionLimit.
func (s *Store) ListTransactionsByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = ledger.DefaultTransactionLimit
	}

	result := []*domain.Transaction{}
	for _, tx := range s.transactions {
		if tx.UserID != userID {
			continue
		}
		txCopy := *tx
		result = append(result, &txCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})

	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// CreatePortfolio implements ledger.Store. Omitted monetary fields default to
// "0.00" and a nil allocation becomes an empty map. A second portfolio for
// the same user is rejected with ledger.ErrPortfolioExists.
func (s *Store) CreatePortfolio(ctx context.Context, portfolio domain.Portfolio) (*domain.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.portfolios {
		if existing.UserID == portfolio.UserID {
			return nil, ledger.ErrPortfolioExists
		}
	}

	now := time.Now()
	portfolio.ID = uuid.New().String()
	portfolio.CreatedAt = now
	portfolio.UpdatedAt = now
	if portfolio.TotalValue == "" {
		portfolio.TotalValue = "0.00"
	}
	if portfolio.AvailableCash == "" {
		portfolio.AvailableCash = "0.00"
	}
	if portfolio.Allocation == nil {
		portfolio.Allocation = map[string]float64{}
	}

	s.portfolios[portfolio.ID] = &portfolio

	portfolioCopy := portfolio
	portfolioCopy.Allocation = copyAllocation(portfolio.Allocation)
	return &portfolioCopy, nil
}

// GetPortfolioByUser implements ledger.Store. Linear scan over the user
// foreign key; at most one match exists by the creation-time rule.
func (s *Store) GetPortfolioByUser(ctx context.Context, userID string) (*domain.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, portfolio := range s.portfolios {
		if portfolio.UserID == userID {
			portfolioCopy := *portfolio
			portfolioCopy.Allocation = copyAllocation(portfolio.Allocation)
			return &portfolioCopy, nil
		}
	}
	return nil, ledger.ErrNotFound
}

// UpdatePortfolio implements ledger.Store. The merge is shallow: a supplied
// allocation replaces the whole map. UpdatedAt is refreshed on every call.
func (s *Store) UpdatePortfolio(ctx context.Context, id string, updates ledger.PortfolioUpdate) (*domain.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, exists := s.portfolios[id]
	if !exists {
		return nil, ledger.ErrNotFound
	}

	if updates.TotalValue != nil {
		portfolio.TotalValue = *updates.TotalValue
	}
	if updates.AvailableCash != nil {
		portfolio.AvailableCash = *updates.AvailableCash
	}
	if updates.Allocation != nil {
		portfolio.Allocation = copyAllocation(updates.Allocation)
	}
	portfolio.UpdatedAt = time.Now()

	portfolioCopy := *portfolio
	portfolioCopy.Allocation = copyAllocation(portfolio.Allocation)
	return &portfolioCopy, nil
}

// CreateInvestment implements ledger.Store.
func (s *Store) CreateInvestment(ctx context.Context, investment domain.Investment) (*domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	investment.ID = uuid.New().String()
	investment.CreatedAt = now
	investment.UpdatedAt = now

	s.investments[investment.ID] = &investment

	investmentCopy := investment
	return &investmentCopy, nil
}

// ListInvestmentsByPortfolio implements ledger.Store.
func (s *Store) ListInvestmentsByPortfolio(ctx context.Context, portfolioID string) ([]*domain.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*domain.Investment{}
	for _, investment := range s.investments {
		if investment.PortfolioID != portfolioID {
			continue
		}
		investmentCopy := *investment
		result = append(result, &investmentCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateInvestment implements ledger.Store. TotalValue is whatever the caller
// supplies; it is never recomputed from shares and price.
func (s *Store) UpdateInvestment(ctx context.Context, id string, updates ledger.InvestmentUpdate) (*domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	investment, exists := s.investments[id]
	if !exists {
		return nil, ledger.ErrNotFound
	}

	if updates.AssetType != nil {
		investment.AssetType = *updates.AssetType
	}
	if updates.AssetName != nil {
		investment.AssetName = *updates.AssetName
	}
	if updates.Shares != nil {
		investment.Shares = *updates.Shares
	}
	if updates.CurrentPrice != nil {
		investment.CurrentPrice = *updates.CurrentPrice
	}
	if updates.TotalValue != nil {
		investment.TotalValue = *updates.TotalValue
	}
	investment.UpdatedAt = time.Now()

	investmentCopy := *investment
	return &investmentCopy, nil
}

// CreateGoal implements ledger.Store. Omitted currentAmount defaults to "0.00".
func (s *Store) CreateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal.ID = uuid.New().String()
	goal.CreatedAt = time.Now()
	if goal.CurrentAmount == "" {
		goal.CurrentAmount = "0.00"
	}

	s.goals[goal.ID] = &goal

	goalCopy := goal
	return &goalCopy, nil
}

// ListGoalsByUser implements ledger.Store.
func (s *Store) ListGoalsByUser(ctx context.Context, userID string) ([]*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*domain.Goal{}
	for _, goal := range s.goals {
		if goal.UserID != userID {
			continue
		}
		goalCopy := *goal
		result = append(result, &goalCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateGoal implements ledger.Store.
func (s *Store) UpdateGoal(ctx context.Context, id string, updates ledger.GoalUpdate) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, exists := s.goals[id]
	if !exists {
		return nil, ledger.ErrNotFound
	}

	if updates.Name != nil {
		goal.Name = *updates.Name
	}
	if updates.TargetAmount != nil {
		goal.TargetAmount = *updates.TargetAmount
	}
	if updates.CurrentAmount != nil {
		goal.CurrentAmount = *updates.CurrentAmount
	}
	if updates.Icon != nil {
		goal.Icon = *updates.Icon
	}
	if updates.Color != nil {
		goal.Color = *updates.Color
	}

	goalCopy := *goal
	return &goalCopy, nil
}

// CreatePortfolioHistory implements ledger.Store. Snapshots are append-only.
func (s *Store) CreatePortfolioHistory(ctx context.Context, history domain.PortfolioHistory) (*domain.PortfolioHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history.ID = uuid.New().String()

	s.history[history.ID] = &history

	historyCopy := history
	return &historyCopy, nil
}

// ListPortfolioHistory implements ledger.Store. Entries older than now-days
// are excluded; results are sorted ascending by snapshot date, no limit.
func (s *Store) ListPortfolioHistory(ctx context.Context, portfolioID string, days int) ([]*domain.PortfolioHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().AddDate(0, 0, -days)

	result := []*domain.PortfolioHistory{}
	for _, entry := range s.history {
		if entry.PortfolioID != portfolioID {
			continue
		}
		if entry.Date.Before(cutoff) {
			continue
		}
		entryCopy := *entry
		result = append(result, &entryCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func copyAllocation(allocation map[string]float64) map[string]float64 {
	cp := make(map[string]float64, len(allocation))
	for k, v := range allocation {
		cp[k] = v
	}
	return cp
}

// Ensure Store implements the ledger.Store interface.
var _ ledger.Store = (*Store)(nil)
