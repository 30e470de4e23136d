package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/adminpanel/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/adminpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/adminpanel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/adminpanel/internal/application"
	"github.com/ericfisherdev/adminpanel/internal/config"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"token_ttl", cfg.TokenTTL,
		"loading_delay", cfg.LoadingDelay,
		"revalidate_interval", cfg.RevalidateInterval,
	)
	if cfg.EphemeralSecret {
		slog.Warn("ADMINPANEL_SECRET_KEY not set, using a random key: sessions and stored tokens will not survive a restart")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", db.Path())

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	userStore := sqliteadapter.NewUserRepo(db)
	credentialStore, err := sqliteadapter.NewCredentialRepo(db, sqliteadapter.DeriveCredentialKey(cfg.SecretKey))
	if err != nil {
		return err
	}

	// 6. GitHub profile source: the env token now, a stored token below.
	newSource := func(token string) driven.ProfileSource { return githubadapter.NewClient(token) }
	provider := application.NewProfileSourceProvider(newSource(cfg.GitHubToken), cfg.HasGitHubToken())

	// 7. Application services.
	logger := slog.Default()
	guard := application.NewSessionGuard(logger, cfg.LoadingDelay, cfg.RevalidateInterval)
	authSvc := application.NewAuthService(userStore, []byte(cfg.SecretKey), cfg.TokenTTL, logger)
	profileSvc := application.NewProfileService(userStore, credentialStore, provider, newSource, logger)
	dashboardSvc := application.NewDashboardService(userStore)

	if err := profileSvc.RestoreGitHubToken(ctx); err != nil {
		slog.Warn("stored github token unavailable, using anonymous access", "error", err)
	}
	slog.Info("github profile import ready", "authenticated", profileSvc.GitHubAuthenticated())

	// 7.5. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(guard, db, cfg.SecureCookies, logger)
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// 7.6. Create web handler and register GUI routes.
	webHandler := webhandler.NewHandler(guard, authSvc, profileSvc, dashboardSvc, cfg.SecureCookies, logger)
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		// Session streams end with the signal context instead of holding
		// Shutdown open.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("adminpanel started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
