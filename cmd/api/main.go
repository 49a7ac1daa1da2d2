package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labportal_backend/internal/adapters"
	"labportal_backend/internal/adapters/storage"
	"labportal_backend/internal/auth"
	"labportal_backend/internal/catalog"
	"labportal_backend/internal/clients"
	"labportal_backend/internal/email"
	apphttp "labportal_backend/internal/http"
	"labportal_backend/internal/http/router"
	"labportal_backend/internal/notifications"
	"labportal_backend/internal/pdf"
	"labportal_backend/internal/quotes"
	"labportal_backend/internal/quotes/cartstore"
	"labportal_backend/internal/scheduler"
	"labportal_backend/internal/suppliers"
	"labportal_backend/migrations"
	"labportal_backend/platform/config"
	"labportal_backend/platform/db"
	"labportal_backend/platform/events"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Cart store: Redis-backed when configured, in-memory otherwise
	carts, closeCarts := initCartStore(cfg, log)
	if closeCarts != nil {
		defer closeCarts()
	}

	// Task queue client for background email delivery
	enqueuer, closeEnqueuer := initEmailEnqueuer(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notifications module subscribes to domain events (not HTTP-facing)
	notificationsModule := notifications.NewModule(enqueuer, sender, log)
	notificationsModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	catalogModule := catalog.NewModule(pool, eventBus, val, log)
	clientsModule := clients.NewModule(pool, val, log)

	productChecker := adapters.NewSuppliersProductChecker(catalogModule.Repository())
	suppliersModule := suppliers.NewModule(pool, productChecker, val, log)

	catalogReader := adapters.NewQuotesCatalogReader(catalogModule.Repository())
	clientReader := adapters.NewQuotesClientReader(clientsModule.Repository())
	quotesModule := quotes.NewModule(pool, carts, catalogReader, clientReader, eventBus, val, log)

	// Object storage for product images (MinIO)
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure product images bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, cfg.GetBucketProductImages())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetBucketProductImages())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		catalogModule.SetStorage(storageSvc, cfg.GetBucketProductImages())
		log.Info("storage service initialized", "bucket", cfg.GetBucketProductImages())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; product image uploads disabled")
	}

	// Quotation PDF rendering
	quotesModule.SetPDFGenerator(pdf.NewGenerator(cfg.GetCompanyName(), cfg.GetAppBaseURL()))

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			suppliersModule,
			clientsModule,
			quotesModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initCartStore(cfg *config.Config, log *logger.Logger) (cartstore.Store, func()) {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; carts are kept in process memory")
		return cartstore.NewMemoryStore(), nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL, falling back to in-memory carts", "error", err)
		return cartstore.NewMemoryStore(), nil
	}

	client := redis.NewClient(opt)
	log.Info("redis cart store initialized", "ttl", cfg.GetCartTTL())
	return cartstore.NewRedisStore(client, cfg.GetCartTTL()), func() {
		_ = client.Close()
	}
}

func initEmailEnqueuer(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.EmailEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; notification emails are sent inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize task queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
