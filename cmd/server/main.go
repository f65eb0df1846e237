package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wetee-dao/guildgate/internal/account"
	"github.com/wetee-dao/guildgate/internal/chain"
	"github.com/wetee-dao/guildgate/internal/config"
	"github.com/wetee-dao/guildgate/internal/database"
	"github.com/wetee-dao/guildgate/internal/governance"
	"github.com/wetee-dao/guildgate/internal/handler"
	"github.com/wetee-dao/guildgate/internal/jobs"
	"github.com/wetee-dao/guildgate/internal/middleware"
	"github.com/wetee-dao/guildgate/internal/repository"
	"github.com/wetee-dao/guildgate/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Server.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Database holds the sealed keystore and the submission ledger
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	keyRepo := repository.NewKeystoreRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	keystore, err := account.NewKeystore(account.KeystoreConfig{
		Repo:       keyRepo,
		Passphrase: cfg.Keystore.Passphrase,
		SS58Prefix: cfg.Chain.SS58Prefix,
		DevURIs:    cfg.Keystore.DevAccounts,
	})
	if err != nil {
		slog.Error("failed to initialize keystore", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Chain pool, one slot per endpoint
	dialCtx, dialCancel := context.WithTimeout(ctx, 30*time.Second)
	pool, err := chain.DialPool(dialCtx, cfg.Chain.Endpoints)
	dialCancel()
	if err != nil {
		slog.Error("failed to connect to chain", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("connected to chain",
		slog.Int("nodes", pool.Len()),
		slog.Int("client_index", cfg.Chain.ClientIndex),
	)

	guildService := service.NewGuildService(service.GuildServiceConfig{
		Pool:          pool,
		Keys:          keystore,
		Router:        governance.NewRouter(),
		Submissions:   submissionRepo,
		ClientIndex:   cfg.Chain.ClientIndex,
		SS58Prefix:    cfg.Chain.SS58Prefix,
		SubmitTimeout: cfg.Chain.SubmitTimeout,
	})

	// Background jobs
	healthJob := jobs.NewPoolHealthJob(pool, cfg.Chain.HealthInterval)
	healthJob.Start()
	defer healthJob.Stop()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		PerMinute: cfg.RateLimit.PerMinute,
		Burst:     cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{})
	defer idempotencyStore.Stop()

	// Handlers
	guildHandler := handler.NewGuildHandler(guildService, cfg.Chain.SS58Prefix)
	submissionHandler := handler.NewSubmissionHandler(guildService)
	healthHandler := handler.NewHealthHandler(pool, db)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler.Check)

	// Guild endpoints
	mux.HandleFunc("GET /v1/daos/{daoId}/guilds", guildHandler.List)
	mux.HandleFunc("POST /v1/daos/{daoId}/guilds", guildHandler.Create)
	mux.HandleFunc("GET /v1/daos/{daoId}/guilds/{index}", guildHandler.Get)
	mux.HandleFunc("GET /v1/daos/{daoId}/guilds/{guildId}/members", guildHandler.Members)
	mux.HandleFunc("POST /v1/daos/{daoId}/guilds/{guildId}/join", guildHandler.Join)

	// Submission ledger
	mux.HandleFunc("GET /v1/submissions/{id}", submissionHandler.Get)
	mux.HandleFunc("GET /v1/accounts/{address}/submissions", submissionHandler.ListByAccount)

	// Secrets never cross the wire in production; import with guildctl instead
	if !cfg.IsProduction() {
		accountHandler := handler.NewAccountHandler(keystore)
		mux.HandleFunc("POST /v1/accounts", accountHandler.Import)
	}

	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// In-flight writes may be waiting on block inclusion
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Chain.SubmitTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
