package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dvloznov/pennywise/internal/api/handlers"
	"github.com/dvloznov/pennywise/internal/api/middleware"
	"github.com/dvloznov/pennywise/internal/invest"
	"github.com/dvloznov/pennywise/internal/ledger/inmemory"
	"github.com/dvloznov/pennywise/internal/logger"
	"github.com/dvloznov/pennywise/internal/seed"
	"github.com/dvloznov/pennywise/internal/session"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	var (
		port       = flag.String("port", getenvDefault("PORT", "8080"), "HTTP server port")
		cookieName = flag.String("cookie-name", getenvDefault("COOKIE_NAME", "pennywise_session"), "session cookie name")
		seedDemo   = flag.Bool("seed-demo", getenvDefault("SEED_DEMO_DATA", "true") == "true", "seed demo user and data at startup")
	)
	flag.Parse()

	log := logger.New()

	sessionTTL := session.DefaultTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Err(err).Str("value", raw).Msg("Invalid SESSION_TTL")
		}
		sessionTTL = ttl
	}

	ctx := context.Background()

	// The ledger store is constructed once here and handed to everything
	// that needs it; there is no ambient singleton.
	store := inmemory.NewStore()
	sessions := session.NewStore(sessionTTL)
	engine := invest.NewEngine(store)

	if *seedDemo {
		if err := seed.Demo(ctx, store, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	authHandler := handlers.NewAuthHandler(store, sessions, *cookieName, log)
	dashboardHandler := handlers.NewDashboardHandler(store, engine, log)
	portfolioHandler := handlers.NewPortfolioHandler(store, engine, log)
	accountsHandler := handlers.NewAccountsHandler(store, log)
	transactionsHandler := handlers.NewTransactionsHandler(store, log)
	goalsHandler := handlers.NewGoalsHandler(store, log)

	requireSession := middleware.RequireSession(sessions, *cookieName)

	mux := http.NewServeMux()

	// Auth endpoints
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Register(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Login(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Logout(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.Handle("/api/me", requireSession(methodHandler(http.MethodGet, authHandler.Me)))

	// Dashboard endpoint
	mux.Handle("/api/dashboard", requireSession(methodHandler(http.MethodGet, dashboardHandler.Dashboard)))

	// Portfolio endpoints
	mux.Handle("/api/portfolio", requireSession(methodHandler(http.MethodGet, portfolioHandler.GetPortfolio)))

	mux.Handle("/api/portfolio/history/", requireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		days := strings.TrimPrefix(r.URL.Path, "/api/portfolio/history/")
		portfolioHandler.History(w, r, days)
	})))

	mux.Handle("/api/invest-cash", requireSession(methodHandler(http.MethodPost, portfolioHandler.InvestCash)))

	// Account endpoints
	mux.Handle("/api/accounts", requireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			accountsHandler.ListAccounts(w, r)
		case http.MethodPost:
			accountsHandler.CreateAccount(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})))

	// Transaction endpoints
	mux.Handle("/api/transactions", requireSession(methodHandler(http.MethodGet, transactionsHandler.ListTransactions)))

	// Goal endpoints
	mux.Handle("/api/goals", requireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			goalsHandler.ListGoals(w, r)
		case http.MethodPost:
			goalsHandler.CreateGoal(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})))

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// methodHandler wraps a handler func so only one method is accepted.
func methodHandler(method string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		fn(w, r)
	})
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
