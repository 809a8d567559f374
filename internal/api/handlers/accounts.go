package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dvloznov/pennywise/internal/api/middleware"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/rs/zerolog"
)

// AccountsHandler handles linked-account endpoints.
type AccountsHandler struct {
	store ledger.Store
	log   zerolog.Logger
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(store ledger.Store, log zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{
		store: store,
		log:   log,
	}
}

// ListAccounts handles GET /api/accounts
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	accounts, err := h.store.ListAccountsByUser(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list accounts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, accounts)
}

// CreateAccount handles POST /api/accounts
// The owning user always comes from the session; a client-supplied userId is
// ignored.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	var req struct {
		BankName      string `json:"bankName"`
		AccountType   string `json:"accountType"`
		AccountNumber string `json:"accountNumber"`
		Balance       string `json:"balance"`
		IsConnected   *bool  `json:"isConnected"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid account data")
		return
	}

	if req.BankName == "" || req.AccountType == "" || req.AccountNumber == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid account data")
		return
	}

	isConnected := true
	if req.IsConnected != nil {
		isConnected = *req.IsConnected
	}

	account, err := h.store.CreateAccount(ctx, domain.Account{
		UserID:        userID,
		BankName:      req.BankName,
		AccountType:   req.AccountType,
		AccountNumber: req.AccountNumber,
		Balance:       req.Balance,
		IsConnected:   isConnected,
	})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	h.log.Info().Str("user_id", userID).Str("account_id", account.ID).Str("bank", account.BankName).Msg("Account connected")

	middleware.WriteJSON(w, http.StatusOK, account)
}
