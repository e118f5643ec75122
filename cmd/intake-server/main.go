// cmd/intake-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"acord-intake/internal/acord"
	"acord-intake/internal/api"
	"acord-intake/internal/cache"
	"acord-intake/internal/catalog"
	"acord-intake/internal/common/config"
	"acord-intake/internal/common/database"
	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/observability"
	"acord-intake/internal/export"
	"acord-intake/internal/notify"
	"acord-intake/internal/renderer"
	"acord-intake/internal/repository"
	"acord-intake/internal/search"
	"acord-intake/pkg/acordspec"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console", "")

	zapLog.Info("Starting intake server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level, format and output.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()
	if cfg.Tracing.Enabled {
		if err := obs.EnableTracing(cfg.App.Name, cfg.Tracing.JaegerEndpoint, cfg.Tracing.SampleRatio); err != nil {
			zapLog.Warn("tracing setup failed, continuing without traces", zap.Error(err))
		}
	}

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) ---
	// Submission search degrades gracefully, so an unreachable cluster
	// must not keep the intake API from starting.
	var esClient *database.ElasticsearchClient
	if len(cfg.Database.Elasticsearch.Addresses) > 0 || cfg.Database.Elasticsearch.URL != "" {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Warn("elasticsearch unavailable, search disabled", zap.Error(err))
			esClient = nil
		} else {
			zapLog.Info("Elasticsearch connected successfully",
				zap.String("url", cfg.Database.Elasticsearch.GetURL()))
		}
	} else {
		zapLog.Info("Elasticsearch not configured, search disabled")
	}

	// --- Build the form generation engine ---
	coverageCatalog := catalog.New()
	formCatalog := acord.NewFormCatalog()

	if cfg.Acord.FormSpecPath != "" {
		if _, statErr := os.Stat(cfg.Acord.FormSpecPath); os.IsNotExist(statErr) {
			zapLog.Warn("form spec file not found, using built-in field specs",
				zap.String("path", cfg.Acord.FormSpecPath))
		} else {
			specFile, err := acordspec.Load(cfg.Acord.FormSpecPath)
			if err != nil {
				zapLog.Fatal("form spec load failed", zap.Error(err))
			}
			if err := specFile.Validate(); err != nil {
				zapLog.Fatal("form spec invalid", zap.Error(err))
			}
			applied := specFile.Apply(formCatalog)
			zapLog.Info("form spec overrides applied",
				zap.String("path", cfg.Acord.FormSpecPath),
				zap.String("version", specFile.Version),
				zap.Int("forms", applied))
		}
	}

	engine := acord.NewEngine(coverageCatalog, formCatalog, log)

	if issues := coverageCatalog.SelfCheck(); len(issues) > 0 {
		for _, issue := range issues {
			zapLog.Warn("coverage catalog issue", zap.String("issue", issue))
		}
	}

	// --- Repositories ---
	submissionRepo := repository.NewSubmissionRepository(pg.DB, log)
	formRepo := repository.NewFormRepository(pg.DB, log)
	documentRepo := repository.NewDocumentRepository(pg.DB, log)
	agencyRepo := repository.NewAgencyRepository(pg.DB, log)
	userRepo := repository.NewUserRepository(pg.DB, log)
	notificationRepo := repository.NewNotificationRepository(pg.DB, log)

	// --- Supporting services ---
	formCache := cache.NewFormCache(rdb.Client, config.GetDuration(cfg.Acord.FormCacheTTL), log)

	var searcher *search.Searcher
	if esClient != nil {
		searcher = search.NewSearcher(esClient.Client, cfg.Acord.SearchIndex, log)
	}

	var notifier *notify.Notifier
	notifier, err = notify.NewNotifier(ctx, &cfg.Notifications, notificationRepo, log)
	if err != nil {
		zapLog.Warn("notifier setup failed, notifications disabled", zap.Error(err))
		notifier = nil
	}

	var renderClient *renderer.Client
	if cfg.Integrations.Renderer.BaseURL != "" {
		renderClient = renderer.NewClient(
			cfg.Integrations.Renderer.BaseURL,
			cfg.Integrations.Renderer.APIKey,
			config.GetDuration(cfg.Integrations.Renderer.Timeout),
			log,
		)
	}

	exportDir := cfg.Acord.ExportDir
	if exportDir == "" {
		exportDir = os.TempDir()
	}
	exporter := export.NewExporter(exportDir, log)

	// --- HTTP handlers ---
	errHandler := errors.NewErrorHandler(log)

	handlers := api.Handlers{
		Submissions: api.NewSubmissionHandler(api.SubmissionHandlerDeps{
			Submissions: submissionRepo,
			Forms:       formRepo,
			Documents:   documentRepo,
			Users:       userRepo,
			Engine:      engine,
			Cache:       formCache,
			Searcher:    searcher,
			Notifier:    notifier,
			Renderer:    renderClient,
			Exporter:    exporter,
		}, errHandler, log),
		CoverageTypes: api.NewCoverageTypeHandler(coverageCatalog, errHandler, log),
		Agencies:      api.NewAgencyHandler(agencyRepo, errHandler, log),
		Users:         api.NewUserHandler(userRepo, errHandler, log),
		Notifications: api.NewNotificationHandler(notificationRepo, errHandler, log),
		Admin:         api.NewAdminHandler(engine, cfg.Acord.FormSpecPath, errHandler, log),
	}

	server := api.NewServer(cfg, log, obs, handlers, pg.DB, rdb.Client)

	go func() {
		if err := server.Run(); err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Intake server stopped gracefully")
}
