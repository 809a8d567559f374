package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dvloznov/pennywise/internal/api/middleware"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/rs/zerolog"
)

// GoalsHandler handles savings-goal endpoints.
type GoalsHandler struct {
	store ledger.Store
	log   zerolog.Logger
}

// NewGoalsHandler creates a new goals handler.
func NewGoalsHandler(store ledger.Store, log zerolog.Logger) *GoalsHandler {
	return &GoalsHandler{
		store: store,
		log:   log,
	}
}

// ListGoals handles GET /api/goals
func (h *GoalsHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	goals, err := h.store.ListGoalsByUser(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list goals")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, goals)
}

// CreateGoal handles POST /api/goals
// The owning user always comes from the session.
func (h *GoalsHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	var req struct {
		Name          string    `json:"name"`
		TargetAmount  string    `json:"targetAmount"`
		CurrentAmount string    `json:"currentAmount"`
		TargetDate    time.Time `json:"targetDate"`
		Icon          string    `json:"icon"`
		Color         string    `json:"color"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid goal data")
		return
	}

	if req.Name == "" || req.TargetAmount == "" || req.TargetDate.IsZero() || req.Icon == "" || req.Color == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid goal data")
		return
	}

	goal, err := h.store.CreateGoal(ctx, domain.Goal{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    req.TargetDate,
		Icon:          req.Icon,
		Color:         req.Color,
	})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	h.log.Info().Str("user_id", userID).Str("goal_id", goal.ID).Str("name", goal.Name).Msg("Goal created")

	middleware.WriteJSON(w, http.StatusOK, goal)
}
