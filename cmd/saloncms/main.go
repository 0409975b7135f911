// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/caraiagency/salon-cms/internal/assistant"
	"github.com/caraiagency/salon-cms/internal/auth"
	"github.com/caraiagency/salon-cms/internal/cms"
	"github.com/caraiagency/salon-cms/internal/config"
	"github.com/caraiagency/salon-cms/internal/handler"
	"github.com/caraiagency/salon-cms/internal/logging"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/scheduler"
	"github.com/caraiagency/salon-cms/internal/service"
	"github.com/caraiagency/salon-cms/internal/session"
	"github.com/caraiagency/salon-cms/internal/store"
	"github.com/caraiagency/salon-cms/internal/supabase"
	"github.com/caraiagency/salon-cms/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "saloncms - Perry D Beauty Studio site server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_SUPABASE_URL         Supabase project URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_SUPABASE_ANON_KEY    Supabase anonymous key (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_DB_PATH              SQLite database path (default: ./data/salon.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_OPENAI_API_KEY       OpenAI key for the assistant (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SALON_GEMINI_API_KEY       Gemini key for the assistant (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("saloncms %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize local database (sessions and event log)
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the Event Log database
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Supabase backend (content rows and identity)
	supabaseClient, err := supabase.New(supabase.Config{
		URL:     cfg.SupabaseURL,
		AnonKey: cfg.SupabaseAnonKey,
	})
	if err != nil {
		return fmt.Errorf("initializing supabase client: %w", err)
	}
	contentStore := cms.New(supabaseClient)
	slog.Info("supabase client initialized", "url", cfg.SupabaseURL)

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	eventService := service.NewEventService(db)
	roleResolver := auth.NewResolver(contentStore, logger)

	// AI assistant providers, tried in configured order
	var providers []assistant.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, assistant.NewOpenAIProvider(cfg.OpenAIAPIKey))
	}
	if cfg.GeminiAPIKey != "" {
		providers = append(providers, assistant.NewGeminiProvider(cfg.GeminiAPIKey))
	}
	assistantService := assistant.NewService(logger, providers...)
	slog.Info("assistant initialized", "enabled", assistantService.Enabled(), "providers", len(providers))

	// Nightly event log purge
	sched := scheduler.New(eventService, logger, time.Duration(cfg.EventRetentionDays)*24*time.Hour)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30*time.Second, "/api/assistant"))
	r.Use(middleware.StripTrailingSlash)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadIdentity(sessionManager))

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Public rate limiter: 10 requests per second with burst of 20 per IP
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	// Initialize handlers
	contentHandler := handler.NewContentHandler(contentStore, eventService, logger)
	servicesHandler := handler.NewServicesHandler(contentStore, eventService, logger)
	galleryHandler := handler.NewGalleryHandler(contentStore, eventService, logger)
	faqHandler := handler.NewFAQHandler(contentStore, eventService, logger)
	testimonialsHandler := handler.NewTestimonialsHandler(contentStore, eventService, logger)
	blogHandler := handler.NewBlogHandler(contentStore, eventService, logger)
	authHandler := handler.NewAuthHandler(supabaseClient, roleResolver, sessionManager, loginProtection, eventService, logger)
	assistantHandler := handler.NewAssistantHandler(assistantService, eventService, logger)
	healthHandler := handler.NewHealthHandler(supabaseClient, versionInfo)

	// Health check routes (public)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/supabase", healthHandler.Supabase)

	// Public read API
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.Get("/api/content", contentHandler.List)
		r.Get("/api/content/{key}", contentHandler.Get)
		r.Get("/api/services", servicesHandler.ListCategories)
		r.Get("/api/gallery", galleryHandler.List)
		r.Get("/api/faqs", faqHandler.List)
		r.Get("/api/testimonials", testimonialsHandler.List)
		r.Get("/api/blog", blogHandler.List)
		r.Get("/api/blog/{slug}", blogHandler.Get)
	})

	// Auth routes (public, CSRF-protected)
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.Use(csrfMiddleware)
		r.With(loginProtection.Middleware()).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// CMS routes (CSRF-protected). Edits need the editor role; deletes
	// are destructive and need admin on top.
	r.Route("/api/cms", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireRoleWithEventLog(model.RoleEditor, eventService))
		admin := middleware.RequireAdmin()

		r.Post("/content", contentHandler.Upsert)

		r.Get("/services", servicesHandler.List)
		r.Post("/services", servicesHandler.Create)
		r.Patch("/services/{id}", servicesHandler.Update)
		r.With(admin).Delete("/services/{id}", servicesHandler.Delete)

		r.Post("/gallery", galleryHandler.Create)
		r.Patch("/gallery/{id}", galleryHandler.Update)
		r.With(admin).Delete("/gallery/{id}", galleryHandler.Delete)

		r.Post("/faqs", faqHandler.Create)
		r.Patch("/faqs/{id}", faqHandler.Update)
		r.With(admin).Delete("/faqs/{id}", faqHandler.Delete)

		r.Post("/testimonials", testimonialsHandler.Create)
		r.Patch("/testimonials/{id}", testimonialsHandler.Update)
		r.With(admin).Delete("/testimonials/{id}", testimonialsHandler.Delete)

		r.Get("/blog", blogHandler.ListAll)
		r.Post("/blog", blogHandler.Create)
		r.Patch("/blog/{id}", blogHandler.Update)
		r.With(admin).Delete("/blog/{id}", blogHandler.Delete)
	})

	// Assistant endpoint (editor and above, CSRF-protected)
	r.With(csrfMiddleware, middleware.RequireEditor()).Post("/api/assistant", assistantHandler.Generate)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
