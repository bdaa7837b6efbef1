// Package main provides the entry point for the showreel site backend
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artemmak/showreel/app/handlers"
	"github.com/artemmak/showreel/app/middleware"
	"github.com/artemmak/showreel/app/router"
	"github.com/artemmak/showreel/app/services"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/artemmak/showreel/config"
	"github.com/artemmak/showreel/logging"
	"github.com/artemmak/showreel/migrations"
	"github.com/artemmak/showreel/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	requests  businessflow.ProjectRequestFlow
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		AddSource:  cfg.Logging.EnableCaller,
	})
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	slog.Info("Starting showreel application",
		"environment", cfg.Deployment.Environment,
		"version", cfg.Deployment.Version,
		"commit", cfg.Deployment.CommitHash,
	)

	app, err := initializeApplication(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listenCfg := fiber.ListenConfig{DisableStartupMessage: true}
		if cfg.Security.TLSEnabled {
			listenCfg.CertFile = cfg.Security.TLSCertFile
			listenCfg.CertKeyFile = cfg.Security.TLSKeyFile
		}
		slog.Info("Server starting", "address", address, "tls", cfg.Security.TLSEnabled)

		if err := app.server.Listen(address, listenCfg); err != nil {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	slog.Info("Shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	// Let queued Telegram relays finish before the process exits
	app.requests.Wait()

	for _, fn := range app.stopFuncs {
		fn()
	}

	slog.Info("Server stopped")
}

// initializeDatabase opens the gorm connection with pooling and slow query logging
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.SlowQueryLog {
		gormCfg.Logger = gormlogger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             cfg.SlowQueryTime,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := migrations.Up(ctx, sqlDB); err != nil {
			return nil, err
		}
		slog.Info("Database migrations applied")
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return db, nil
}

// initializeCache connects to Redis when caching is enabled; nil disables the site content cache
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Redis connection established", "db", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor pings Redis periodically. The returned func stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					slog.Warn("Redis healthcheck failed", "error", err)
				}
				c()
			}
		}
	}()
	return cancel
}

func closeFunc(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Warn("Failed to close resource", "resource", name, "error", err)
		}
	}
}

// initializeApplication wires repositories, flows, handlers and the router
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	stopFuncs = append(stopFuncs, closeFunc("database", sqlDB))

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		stopFuncs = append(stopFuncs,
			startCacheHealthMonitor(context.Background(), rc, cfg.Cache.HealthCheckInterval),
			closeFunc("redis", rc),
		)
	}

	pricingSettingsRepo := repository.NewPricingSettingsRepository(db)
	projectRequestRepo := repository.NewProjectRequestRepository(db)
	siteContentRepo := repository.NewSiteContentRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	heroStatRepo := repository.NewHeroStatRepository(db)
	socialLinkRepo := repository.NewSocialLinkRepository(db)
	aiToolRepo := repository.NewAIToolRepository(db)

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	slog.Info("Token service initialized", "issuer", cfg.JWT.Issuer, "audience", cfg.JWT.Audience)

	if !cfg.Telegram.Enabled() {
		slog.Warn("Telegram notifications disabled: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is empty")
	}
	notifier := services.NewTelegramNotifier(cfg.Telegram)

	pricingFlow := businessflow.NewPricingFlow(pricingSettingsRepo)
	projectRequestFlow := businessflow.NewProjectRequestFlow(
		projectRequestRepo,
		pricingSettingsRepo,
		notifier,
		cfg.Telegram.Timeout,
	)
	siteContentFlow := businessflow.NewSiteContentFlow(
		siteContentRepo,
		rc,
		cfg.Cache.RedisPrefix,
		cfg.Cache.DefaultTTL,
	)
	portfolioFlow := businessflow.NewPortfolioFlow(projectRepo, rc, cfg.Cache.RedisPrefix, cfg.Cache.DefaultTTL)
	showcaseFlow := businessflow.NewShowcaseFlow(
		heroStatRepo,
		socialLinkRepo,
		aiToolRepo,
		rc,
		cfg.Cache.RedisPrefix,
		cfg.Cache.DefaultTTL,
	)

	appRouter := router.NewFiberRouter(cfg, router.Handlers{
		Pricing:             handlers.NewPricingHandler(pricingFlow),
		PricingAdmin:        handlers.NewPricingAdminHandler(pricingFlow),
		ProjectRequest:      handlers.NewProjectRequestHandler(projectRequestFlow),
		ProjectRequestAdmin: handlers.NewProjectRequestAdminHandler(projectRequestFlow),
		SiteContent:         handlers.NewSiteContentHandler(siteContentFlow),
		SiteContentAdmin:    handlers.NewSiteContentAdminHandler(siteContentFlow),
		Portfolio:           handlers.NewPortfolioHandler(portfolioFlow),
		PortfolioAdmin:      handlers.NewPortfolioAdminHandler(portfolioFlow),
		Showcase:            handlers.NewShowcaseHandler(showcaseFlow),
		ShowcaseAdmin:       handlers.NewShowcaseAdminHandler(showcaseFlow),
		AdminAuth:           handlers.NewAdminAuthHandler(tokenService),
	}, middleware.NewAuthMiddleware(tokenService))

	return &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		requests:  projectRequestFlow,
		stopFuncs: stopFuncs,
	}, nil
}
