package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/printgenie/internal/config"
	"github.com/Simplici0/printgenie/internal/db"
	"github.com/Simplici0/printgenie/internal/logger"
	"github.com/Simplici0/printgenie/internal/metrics"
	"github.com/Simplici0/printgenie/internal/migrations"
	"github.com/Simplici0/printgenie/internal/publish"
	"github.com/Simplici0/printgenie/internal/seed"
	"github.com/Simplici0/printgenie/internal/share"
	"github.com/Simplici0/printgenie/internal/store"
)

const (
	shutdownTimeout = 10 * time.Second
	// quoteIDAttempts bounds how often a colliding quote id is redrawn.
	quoteIDAttempts = 3
)

type server struct {
	auth      *authService
	db        *sql.DB
	store     *store.Store
	log       *zap.Logger
	metrics   *metrics.Metrics
	publisher *publish.Client
	now       func() time.Time
	quoteID   func(time.Time) string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "printgenie: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Service:     "printgenie",
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	for _, warning := range cfg.Warnings() {
		log.Warn("incomplete configuration", zap.String("detail", warning))
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database, log); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	log.Info("seed complete", zap.Int("inserts", stats.Inserts))

	srv := newServer(database, cfg, log, metrics.New())
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", httpServer.Addr), zap.String("environment", cfg.Environment))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newServer(database *sql.DB, cfg config.Config, log *zap.Logger, m *metrics.Metrics) *server {
	st := store.New(database)
	s := &server{
		auth:    newAuthService(st.Users, cfg.SessionSecret, !cfg.IsDev()),
		db:      database,
		store:   st,
		log:     log,
		metrics: m,
		now:     time.Now,
		quoteID: share.NewQuoteID,
	}
	if cfg.GitHub.Enabled() {
		s.publisher = publish.NewClient(publish.Config{
			Token:   cfg.GitHub.Token,
			Owner:   cfg.GitHub.Owner,
			Repo:    cfg.GitHub.Repo,
			Path:    cfg.GitHub.Path,
			Branch:  cfg.GitHub.Branch,
			Timeout: cfg.PublishTimeout,
		}, log)
	}
	return s
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.Middleware(s.log))
	r.Use(s.metrics.Middleware)
	r.Use(s.authMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Post("/quotes/calc", s.handleQuoteCalc)
		r.Post("/quotes", s.handleQuoteCreate)
		r.Get("/quotes", s.handleQuotesList)
		r.Get("/quotes/{id}", s.handleQuoteDetail)
		r.Get("/quotes/{id}/text", s.handleQuoteText)
		r.Get("/quotes/{id}/share", s.handleQuoteShare)
		r.Get("/quotes/{id}/csv", s.handleQuoteCSV)
		r.Get("/price-table", s.handlePriceTable)

		r.Get("/sku/preview", s.handleSKUPreview)
		r.Get("/sku/{sku}", s.handleSKUDecode)

		r.Get("/products", s.handleProductsList)
		r.Post("/products", s.handleProductCreate)
		r.Delete("/products/{sku}", s.handleProductDelete)
		r.Get("/products.csv", s.handleProductsCSV)
		r.Get("/catalog/stats", s.handleCatalogStats)
		r.Post("/catalog/publish", s.handleCatalogPublish)

		r.Get("/config", s.handleConfigGet)
		r.Put("/config", s.handleConfigUpdate)
		r.Post("/config/reset", s.handleConfigReset)
		r.Get("/categories", s.handleCategoriesList)
		r.Post("/categories", s.handleCategoryCreate)
		r.Get("/company", s.handleCompanyGet)
		r.Put("/company", s.handleCompanyUpdate)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.serverError(w, r, "database unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(r.Context(), email, password)
	if err != nil {
		s.serverError(w, r, "authentication error", err)
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.auth.setSessionCookie(w, email)
	writeJSON(w, http.StatusOK, map[string]string{"email": normalizeEmail(email)})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login", "/logout", "/healthz", "/metrics":
			next.ServeHTTP(w, r)
			return
		}

		email, ok := isAuthenticated(r, s.auth)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		log := logger.FromContext(r.Context()).With(zap.String("user", email))
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), log)))
	})
}

func isAuthenticated(r *http.Request, auth *authService) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}

	return auth.verifySessionValue(cookie.Value)
}
