// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
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

	"github.com/blackstoneeg/website/internal/config"
	"github.com/blackstoneeg/website/internal/handler"
	"github.com/blackstoneeg/website/internal/mail"
	"github.com/blackstoneeg/website/internal/middleware"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/service"
	"github.com/blackstoneeg/website/internal/session"
	"github.com/blackstoneeg/website/internal/store"
	"github.com/blackstoneeg/website/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// registerCRUD registers the standard admin CRUD routes for a resource.
func registerCRUD(r chi.Router, base string, list, newForm, create, editForm, update, del http.HandlerFunc) {
	r.Get(base, list)
	r.Get(base+handler.RouteSuffixNew, newForm)
	r.Post(base+handler.RouteSuffixNew, create)
	r.Get(base+handler.RouteParamID, editForm)
	r.Post(base+handler.RouteParamID, update)
	r.Post(base+handler.RouteParamID+"/delete", del)
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Blackstone EG & Partners website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BSEG_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BSEG_DB_PATH           SQLite database path (default: ./data/website.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BSEG_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BSEG_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BSEG_UPLOADS_DIR       Uploaded media directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BSEG_SMTP_HOST         SMTP server for contact notifications\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BSEG_DO_SEED           Seed sample content on first start (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("website %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
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

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Initialize services
	settingsService := service.NewSettingsService(db)
	uploadService := service.NewUploadService(cfg.UploadsDir)

	var sender mail.Sender
	if cfg.MailEnabled {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			UseTLS:   cfg.SMTPUseTLS,
			From:     cfg.MailFrom,
		})
		slog.Info("mail sender initialized", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		slog.Warn("mail delivery disabled, contact notifications will not be sent")
	}

	contactService := service.NewContactService(db, sender, settingsService)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized",
		"hsts", !cfg.IsDevelopment(),
		"x_frame_options", "SAMEORIGIN",
	)

	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized")

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	// Initialize handlers
	frontendHandler := handler.NewFrontendHandler(db, renderer, settingsService)
	contactHandler := handler.NewContactHandler(renderer, settingsService, contactService)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(db, renderer)
	contactsHandler := handler.NewContactsHandler(db, renderer)
	postsHandler := handler.NewPostsHandler(db, renderer, uploadService)
	portfolioHandler := handler.NewPortfolioHandler(db, renderer, uploadService)
	usersHandler := handler.NewUsersHandler(db, renderer)
	settingsHandler := handler.NewSettingsHandler(renderer, settingsService, uploadService)
	apiHandler := handler.NewAPIHandler(db)

	// Public pages
	r.Get(handler.RouteRoot, frontendHandler.Home)
	r.Get(handler.RouteServices, frontendHandler.Services)
	r.Get(handler.RouteTeam, frontendHandler.Team)
	r.Get(handler.RouteAbout, frontendHandler.About)
	r.Get(handler.RouteBlog, frontendHandler.BlogList)
	r.Get(handler.RouteBlog+handler.RouteParamSlug, frontendHandler.BlogPost)
	r.Get(handler.RoutePortfolio, frontendHandler.PortfolioList)
	r.Get(handler.RoutePortfolio+handler.RouteParamID, frontendHandler.PortfolioItem)

	// Contact form (CSRF protected)
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get(handler.RouteContact, contactHandler.Show)
		r.Post(handler.RouteContact, contactHandler.Submit)
	})

	// Auth routes (rate limited, CSRF protected)
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.HTMLMiddleware())
		r.Use(csrfMiddleware)
		r.Get(handler.RouteAdminLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteAdminLogin, authHandler.Login)
		r.Post(handler.RouteAdminLogout, authHandler.Logout)
	})

	// Admin routes
	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))
		r.Use(middleware.RequireAdmin())

		r.Get(handler.RouteRoot, adminHandler.Dashboard)

		// Contact submission triage
		r.Get("/contacts", contactsHandler.List)
		r.Get("/contacts"+handler.RouteParamID, contactsHandler.Show)
		r.Post("/contacts"+handler.RouteParamID, contactsHandler.Update)
		r.Post("/contacts"+handler.RouteParamID+"/delete", contactsHandler.Delete)

		registerCRUD(r, "/posts",
			postsHandler.List, postsHandler.NewForm, postsHandler.Create,
			postsHandler.EditForm, postsHandler.Update, postsHandler.Delete)

		registerCRUD(r, "/portfolio",
			portfolioHandler.List, portfolioHandler.NewForm, portfolioHandler.Create,
			portfolioHandler.EditForm, portfolioHandler.Update, portfolioHandler.Delete)

		// User management
		r.Get("/users", usersHandler.List)
		r.Get("/users"+handler.RouteSuffixNew, usersHandler.NewForm)
		r.Post("/users"+handler.RouteSuffixNew, usersHandler.Create)
		r.Get("/users"+handler.RouteParamID, usersHandler.EditForm)
		r.Post("/users"+handler.RouteParamID, usersHandler.Update)
		r.Post("/users"+handler.RouteParamID+"/delete", usersHandler.Delete)

		// Site settings
		r.Get("/settings", settingsHandler.Show)
		r.Post("/settings", settingsHandler.Update)
	})

	// Analytics API (session authenticated, admin only; the handler rejects
	// everyone else with a JSON 403)
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadUser(sessionManager, db))
		r.Get("/api/analytics/contact-stats", apiHandler.ContactStats)
	})

	// Static assets from the embedded filesystem, cached for 1 year
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	// Uploaded media, cached for 1 week
	uploadsHandler := middleware.StaticCache(604800)(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Handle("/uploads/*", uploadsHandler)

	// Branded 404 for everything else
	r.NotFound(frontendHandler.NotFound)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
