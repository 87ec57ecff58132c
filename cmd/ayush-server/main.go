package main

import (
	"context"
	crypto_rand "crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vimalrajaj/ayusconnect/internal/config"
	"github.com/vimalrajaj/ayusconnect/internal/domain/apidocs"
	"github.com/vimalrajaj/ayusconnect/internal/domain/audit"
	"github.com/vimalrajaj/ayusconnect/internal/domain/mapping"
	"github.com/vimalrajaj/ayusconnect/internal/domain/session"
	"github.com/vimalrajaj/ayusconnect/internal/domain/terminology"
	"github.com/vimalrajaj/ayusconnect/internal/platform/auth"
	"github.com/vimalrajaj/ayusconnect/internal/platform/db"
	"github.com/vimalrajaj/ayusconnect/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ayush-server",
		Short: "AyushConnect terminology bridge server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the terminology API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (default from MIGRATIONS_DIR)")
	cmd.AddCommand(upCmd)

	return cmd
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the terminology catalog",
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the reference NAMASTE catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for seeding")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := terminology.SeedCatalog(ctx, pool, terminology.ReferenceCatalog())
			if err != nil {
				return fmt.Errorf("seed failed after %d record(s): %w", count, err)
			}
			fmt.Printf("Seeded %d catalog record(s).\n", count)
			return nil
		},
	}
	cmd.AddCommand(seedCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Database is optional: without it the server runs on the embedded
	// reference catalog and in-memory stores.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
	} else {
		logger.Warn().Msg("DATABASE_URL not set; using embedded reference catalog and in-memory stores")
	}

	// Terminology
	var catalogRepo terminology.CatalogRepository
	if pool != nil {
		catalogRepo = terminology.NewCatalogRepoPG(pool)
	} else {
		catalogRepo = terminology.NewMemRepo(terminology.ReferenceCatalog())
	}
	termSvc, err := terminology.NewService(ctx, catalogRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load terminology catalog")
	}
	logger.Info().Int("records", termSvc.CatalogSize()).Msg("terminology catalog loaded")

	// Audit trail: recorder flushes to the configured sink in batches.
	var auditRepo audit.Repository
	if pool != nil {
		auditRepo = audit.NewRepoPG(pool)
	} else {
		auditRepo = audit.NewMemRepo()
	}
	var sink audit.Sink
	switch {
	case cfg.AuditSinkURL != "":
		sink = audit.NewHTTPSink(cfg.AuditSinkURL)
	case pool != nil:
		sink = audit.NewPGSink(auditRepo)
	default:
		sink = audit.NewLogSink(logger)
	}
	recorder := audit.NewRecorder(sink, logger,
		audit.WithCapacity(cfg.AuditQueueSize),
		audit.WithBatchSize(cfg.AuditBatchSize),
		audit.WithFlushInterval(time.Duration(cfg.AuditFlushSeconds)*time.Second),
	)
	recorder.Start()
	defer recorder.Close()

	// Credential verification: ABHA directory and OAuth tokens behind one
	// method router. Demo fixtures back both in development.
	verifier := auth.NewMethodVerifier(map[auth.Method]auth.Verifier{
		auth.MethodABHA:  auth.NewABHAVerifier(auth.DemoABHADirectory()),
		auth.MethodOAuth: auth.NewOAuthVerifier(auth.DemoOAuthTokens()),
	})

	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := crypto_rand.Read(secret); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate token secret")
		}
		logger.Warn().Msg("TOKEN_SECRET not set; using ephemeral signing key, sessions will not survive restart")
	}
	issuer := auth.NewTokenIssuer(secret, "ayusconnect")

	// Session store
	var store session.Store
	switch cfg.SessionStore {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		store = session.NewRedisStore(client, "ayusconnect")
		logger.Info().Msg("session store: redis")
	case "memory":
		store = session.NewMemStore()
		logger.Info().Msg("session store: memory")
	default:
		store = session.NewFileStore(cfg.SessionDir)
		logger.Info().Str("dir", cfg.SessionDir).Msg("session store: file")
	}

	mgr := session.NewManager(store, verifier, issuer, recorder,
		session.WithTimeout(time.Duration(cfg.SessionTimeoutMinutes)*time.Minute),
		session.WithWarningThreshold(time.Duration(cfg.SessionWarningMinutes)*time.Minute),
		session.WithCheckInterval(time.Duration(cfg.SessionCheckSeconds)*time.Second),
		session.WithWarningFunc(func(s *session.Session, remaining time.Duration) {
			logger.Warn().Str("session_id", s.ID).Dur("remaining", remaining).Msg("session expiring soon")
		}),
		session.WithExpiryFunc(func(s *session.Session) {
			logger.Info().Str("session_id", s.ID).Msg("session expired")
		}),
	)
	if _, err := mgr.Resume(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to resume stored session")
	}
	mgr.Start()
	defer mgr.Close()

	currentSessionID := func() string {
		if s := mgr.Current(); s != nil {
			return s.ID
		}
		return audit.AnonymousSession
	}

	// Mapping
	var mappingRepo mapping.Repository
	if pool != nil {
		mappingRepo = mapping.NewRepoPG(pool)
	} else {
		mappingRepo = mapping.NewMemRepo()
	}
	mappingSvc := mapping.NewService(mappingRepo, termSvc, recorder)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.AccessAudit(logger, recorder, currentSessionID))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Optional peer terminology service; the handler falls back to the
	// local catalog when it is unreachable.
	var remote *terminology.RemoteClient
	if cfg.RemoteSearchURL != "" {
		remote = terminology.NewRemoteClient(cfg.RemoteSearchURL)
		logger.Info().Str("url", cfg.RemoteSearchURL).Msg("remote terminology search enabled")
	}

	// API routes
	api := e.Group("/api")
	terminology.NewHandler(termSvc, remote, logger).RegisterRoutes(api)
	mapping.NewHandler(mappingSvc, currentSessionID).RegisterRoutes(api, middleware.RequireToken(issuer))
	session.NewHandler(mgr).RegisterRoutes(api)
	audit.NewHandler(auditRepo).RegisterRoutes(api)
	apidocs.NewHandler(version).RegisterRoutes(api)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	return nil
}
