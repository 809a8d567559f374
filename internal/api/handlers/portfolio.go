package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dvloznov/pennywise/internal/api/middleware"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/invest"
	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/rs/zerolog"
)

// defaultHistoryDays is used when the history path parameter is missing or
// unparseable.
const defaultHistoryDays = 7

// PortfolioHandler handles portfolio, history and invest-cash endpoints.
type PortfolioHandler struct {
	store  ledger.Store
	engine *invest.Engine
	log    zerolog.Logger
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(store ledger.Store, engine *invest.Engine, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		store:  store,
		engine: engine,
		log:    log,
	}
}

// portfolioResponse embeds the portfolio fields at the top level with the
// holdings list alongside, matching the UI contract.
type portfolioResponse struct {
	domain.Portfolio
	Investments []*domain.Investment `json:"investments"`
}

// GetPortfolio handles GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	portfolio, err := h.store.GetPortfolioByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Portfolio not found")
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load portfolio")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load portfolio")
		return
	}

	investments, err := h.store.ListInvestmentsByPortfolio(ctx, portfolio.ID)
	if err != nil {
		h.log.Error().Err(err).Str("portfolio_id", portfolio.ID).Msg("Failed to list investments")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load portfolio")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, portfolioResponse{
		Portfolio:   *portfolio,
		Investments: investments,
	})
}

// History handles GET /api/portfolio/history/{days}
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request, daysParam string) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	days, err := strconv.Atoi(daysParam)
	if err != nil || days <= 0 {
		days = defaultHistoryDays
	}

	portfolio, err := h.store.GetPortfolioByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Portfolio not found")
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load portfolio")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load portfolio history")
		return
	}

	history, err := h.store.ListPortfolioHistory(ctx, portfolio.ID, days)
	if err != nil {
		h.log.Error().Err(err).Str("portfolio_id", portfolio.ID).Msg("Failed to list portfolio history")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load portfolio history")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, history)
}

// InvestCash handles POST /api/invest-cash
func (h *PortfolioHandler) InvestCash(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	// amount may arrive as a JSON number or a string, or be omitted entirely
	// to invest the full available cash.
	var req struct {
		Amount interface{} `json:"amount"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.engine.InvestCash(ctx, userID, amountString(req.Amount))
	if err != nil {
		switch {
		case errors.Is(err, invest.ErrNoPortfolio):
			middleware.WriteError(w, http.StatusNotFound, "Portfolio not found")
		case errors.Is(err, invest.ErrInsufficientCash):
			middleware.WriteError(w, http.StatusBadRequest, "Insufficient cash available")
		default:
			h.log.Error().Err(err).Str("user_id", userID).Msg("Investment failed")
			middleware.WriteError(w, http.StatusInternalServerError, "Investment failed")
		}
		return
	}

	h.log.Info().
		Str("user_id", userID).
		Str("invested_amount", result.InvestedAmount).
		Str("new_total_value", result.NewTotalValue).
		Msg("Cash invested")

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"message":        "Investment successful",
		"investedAmount": result.InvestedAmount,
		"newTotalValue":  result.NewTotalValue,
	})
}

func amountString(amount interface{}) string {
	switch v := amount.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
