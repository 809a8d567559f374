package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dvloznov/pennywise/internal/api/middleware"
	"github.com/dvloznov/pennywise/internal/invest"
	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/rs/zerolog"
)

// dashboardTransactionLimit caps the recent-activity list on the dashboard.
const dashboardTransactionLimit = 10

// DashboardHandler aggregates everything the dashboard view renders into a
// single response.
type DashboardHandler struct {
	store  ledger.Store
	engine *invest.Engine
	log    zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store ledger.Store, engine *invest.Engine, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:  store,
		engine: engine,
		log:    log,
	}
}

// Dashboard handles GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	portfolio, err := h.store.GetPortfolioByUser(ctx, userID)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load portfolio")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	accounts, err := h.store.ListAccountsByUser(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list accounts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	transactions, err := h.store.ListTransactionsByUser(ctx, userID, dashboardTransactionLimit)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	goals, err := h.store.ListGoalsByUser(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list goals")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	now := time.Now()
	monthlyRoundups, err := h.engine.MonthlyRoundups(ctx, userID, now.Year(), now.Month())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute monthly round-ups")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"portfolio":       portfolio, // null when the user has no portfolio
		"accounts":        accounts,
		"transactions":    transactions,
		"goals":           goals,
		"monthlyRoundups": monthlyRoundups.StringFixed(2),
	})
}
