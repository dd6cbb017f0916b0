package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/orgcat/internal/config"
	"github.com/MrSnakeDoc/orgcat/internal/github"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/index"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
	"github.com/MrSnakeDoc/orgcat/internal/redis"
	"github.com/MrSnakeDoc/orgcat/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/orgcat/internal/store/redis"
	"github.com/MrSnakeDoc/orgcat/internal/translate"
	"github.com/MrSnakeDoc/orgcat/internal/uilabels"
	"github.com/MrSnakeDoc/orgcat/internal/version"
	"github.com/MrSnakeDoc/orgcat/internal/view"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	catalogIdx  *index.CatalogIndex
	translator  *translate.Service
	reloader    *scheduler.CatalogReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional: without it the translation cache lives in
	// memory only and starts cold after every restart.
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
	} else {
		loggerClient.Info("redis not configured, translation cache is memory only")
	}

	catalogIdx := index.NewCatalogIndex()

	// UI chrome labels (file overrides merge over built-ins)
	labels, err := uilabels.NewLoader(cfg.LabelsFile).Load()
	if err != nil {
		loggerClient.Warn("failed to load labels file, using built-ins",
			logger.String("file", cfg.LabelsFile),
			logger.Error(err))
		labels = uilabels.Defaults()
	}

	// Translation service: backend client and persistence are both
	// optional, degradation is per-feature.
	var translateClient *translate.Client
	if cfg.TranslateBaseURL != "" {
		translateClient = translate.NewClient(cfg.TranslateBaseURL)
	} else {
		loggerClient.Info("translate backend not configured, serving built-in translations only")
	}

	var persister translate.Persister
	if redisClient != nil {
		persister = redisstore.NewStore(redisClient)
	}

	translator := translate.NewService(translateClient, persister, cfg.DefaultLang, loggerClient)
	for lang, entries := range labels.Builtin {
		translator.Seed(lang, entries)
	}
	translator.WarmAll(context.Background(), cfg.SupportedLangs)

	controller := view.NewController(catalogIdx, translator, labels, loggerClient)

	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewCatalogReloader(
		cfg.CatalogSource,
		catalogIdx,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		OrgName:        cfg.OrgName,
		AuthBaseURL:    cfg.AuthBaseURL,
		DefaultLang:    cfg.DefaultLang,
		SupportedLangs: cfg.SupportedLangs,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		RedisClient:    redisClient,
		CatalogIndex:   catalogIdx,
		Controller:     controller,
		Translator:     translator,
		NewAuthBridge: func(token string) deps.AuthBridge {
			return github.NewBridge(token)
		},
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		catalogIdx:  catalogIdx,
		translator:  translator,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting orgcat v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("orgcat %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (initial load and periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ orgcat stopped cleanly")
	return nil
}
