package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dvloznov/pennywise/internal/api/middleware"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/ledger"
	"github.com/dvloznov/pennywise/internal/session"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// userResponse is the sanitized user shape returned by auth endpoints.
// The password hash never leaves the server.
type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func sanitizeUser(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// AuthHandler handles registration, login, logout and the current-user
// endpoint.
type AuthHandler struct {
	store      ledger.Store
	sessions   *session.Store
	cookieName string
	log        zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(store ledger.Store, sessions *session.Store, cookieName string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		store:      store,
		sessions:   sessions,
		cookieName: cookieName,
		log:        log,
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user data")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user data")
		return
	}

	ctx := r.Context()

	if _, err := h.store.GetUserByEmail(ctx, req.Email); err == nil {
		middleware.WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		middleware.WriteError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := h.store.CreateUser(ctx, domain.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create user")
		middleware.WriteError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	// Every user starts with an empty portfolio.
	if _, err := h.store.CreatePortfolio(ctx, domain.Portfolio{UserID: user.ID}); err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create portfolio")
		middleware.WriteError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.setSessionCookie(w, user.ID)

	h.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	middleware.WriteJSON(w, http.StatusOK, sanitizeUser(user))
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid login data")
		return
	}

	if !strings.Contains(req.Email, "@") || req.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid login data")
		return
	}

	// Unknown email and wrong password produce the same 401 so the endpoint
	// does not leak which accounts exist.
	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.setSessionCookie(w, user.ID)

	h.log.Info().Str("user_id", user.ID).Msg("User logged in")

	middleware.WriteJSON(w, http.StatusOK, sanitizeUser(user))
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me handles GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, sanitizeUser(user))
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, userID string) {
	token := h.sessions.Create(userID)
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
