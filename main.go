package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"health-dashboard-be/internal/ai"
	"health-dashboard-be/internal/archive"
	"health-dashboard-be/internal/cache"
	"health-dashboard-be/internal/config"
	"health-dashboard-be/internal/controllers"
	"health-dashboard-be/internal/database"
	"health-dashboard-be/internal/jwt"
	"health-dashboard-be/internal/logger"
	"health-dashboard-be/internal/middleware"
	"health-dashboard-be/internal/realtime"
	"health-dashboard-be/internal/report"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/server"
	"health-dashboard-be/internal/service"
	"health-dashboard-be/internal/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "health-dashboard",
		Short:        "Personal health dashboard API server",
		SilenceUsage: true,
		RunE:         runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server (default)",
		RunE:  runServe,
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations (postgres) or create indexes (mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			store, err := openStorage(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer store.close()
			log.Info().Str("driver", cfg.StorageDriver).Msg("Schema is up to date")
			return nil
		},
	}
}

func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return nil, log, err
	}
	gin.SetMode(cfg.GinMode)
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.close()

	// Redis is optional: without it the AI cache is off and report cleanup
	// runs on in-process timers.
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis. Continuing without cache.")
			cacheClient = nil
		} else {
			defer cacheClient.Close()
			log.Info().Msg("Connected to Redis cache")
		}
	}

	var primary ai.Backend
	if cfg.AIBackend == config.AIBackendHTTP {
		primary = ai.NewHTTPBackend(cfg.AIBaseURL, cfg.AIAPIKey)
	}
	aiClient, err := ai.NewClient(primary, ai.NewMockBackend(cfg.AIMockLatency), log)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}
	aiClient.Init(ctx)

	var scheduler report.Scheduler = report.NewTimerScheduler(cfg.ReportTempDir, log)
	if cacheClient != nil {
		taskScheduler, stopWorker, err := startWorker(cfg, log)
		if err != nil {
			log.Warn().Err(err).Msg("Report worker unavailable, using in-process cleanup")
		} else {
			defer taskScheduler.Close()
			defer stopWorker()
			scheduler = taskScheduler
		}
	}

	var archiver report.Archiver
	if cfg.ReportArchiveBucket != "" {
		s3Archiver, err := archive.NewS3Archiver(ctx, cfg.AWSRegion, cfg.ReportArchiveBucket)
		if err != nil {
			log.Warn().Err(err).Msg("Report archive disabled")
		} else {
			archiver = s3Archiver
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour)
	hub := realtime.NewHub(log)

	authService := service.NewAuthService(store.users, jwtService)
	healthService := service.NewHealthService(store.metrics, hub, log)
	chatService := service.NewChatService(aiClient, store.metrics, store.insights, log)
	riskService := service.NewRiskService(aiClient, store.metrics, store.insights, cacheClient, cfg.AICacheTTL, log)
	reportService := report.NewService(store.metrics, store.insights, aiClient, scheduler, archiver, report.Options{
		Dir:          cfg.ReportTempDir,
		CleanupDelay: cfg.ReportCleanupDelay,
		FrontendURL:  cfg.FrontendURL,
	}, log)

	deps := server.Dependencies{
		Config:   cfg,
		Logger:   log,
		Identity: middleware.NewIdentity(jwtService, cfg.AllowUserIDHeader),
		Auth:     controllers.NewAuthController(authService, log),
		Health:   controllers.NewHealthController(healthService, log),
		Chat:     controllers.NewChatController(chatService, log),
		Risk:     controllers.NewRiskController(riskService, log),
		Report:   controllers.NewReportController(reportService, log),
		Realtime: controllers.NewRealtimeController(hub, cfg.CORSOrigins, log),
		Store:    store.ping,
	}
	if cacheClient != nil {
		deps.Cache = cacheClient
	}

	router, stopLimiters := server.SetupRouter(deps)
	defer stopLimiters()

	log.Info().
		Str("storage", cfg.StorageDriver).
		Str("ai_backend", aiClient.BackendName()).
		Msg("Health dashboard starting")
	return server.Run(ctx, ":"+cfg.Port, router, log)
}

func startWorker(cfg *config.Config, log zerolog.Logger) (*worker.TaskScheduler, func(), error) {
	taskScheduler, err := worker.NewTaskScheduler(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	stopWorker, err := worker.Start(cfg.RedisURL, cfg.ReportTempDir, log)
	if err != nil {
		taskScheduler.Close()
		return nil, nil, err
	}
	return taskScheduler, stopWorker, nil
}

type storage struct {
	users    repository.UserRepository
	metrics  repository.HealthMetricRepository
	insights repository.AIInsightRepository
	ping     server.HealthChecker
	close    func()
}

// openStorage connects the configured driver and brings its schema up to date.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	policy := database.RetryPolicy{Attempts: cfg.DBConnectRetries, Delay: cfg.DBConnectRetryDelay}

	switch cfg.StorageDriver {
	case config.StorageDriverMongo:
		client, db, err := database.NewMongoConnection(ctx, cfg.MongoURI, cfg.MongoDatabase, policy, log)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &storage{
			users:    repository.NewMongoUserRepository(db),
			metrics:  repository.NewMongoHealthMetricRepository(db),
			insights: repository.NewMongoAIInsightRepository(db),
			ping: server.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}),
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL, policy, log)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(ctx, db, log); err != nil {
			db.Close()
			return nil, err
		}
		return postgresStorage(db), nil
	}
}

func postgresStorage(db *sql.DB) *storage {
	return &storage{
		users:    repository.NewUserRepository(db),
		metrics:  repository.NewHealthMetricRepository(db),
		insights: repository.NewAIInsightRepository(db),
		ping:     server.PingFunc(db.PingContext),
		close:    func() { db.Close() },
	}
}
