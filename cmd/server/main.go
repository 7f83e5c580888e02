package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	industryapp "github.com/erp/orderdesk/internal/application/industry"
	ledgerapp "github.com/erp/orderdesk/internal/application/ledger"
	settlementapp "github.com/erp/orderdesk/internal/application/settlement"
	"github.com/erp/orderdesk/internal/domain/industry"
	"github.com/erp/orderdesk/internal/domain/ledger"
	"github.com/erp/orderdesk/internal/infrastructure/backend"
	"github.com/erp/orderdesk/internal/infrastructure/config"
	"github.com/erp/orderdesk/internal/infrastructure/logger"
	"github.com/erp/orderdesk/internal/infrastructure/profiles"
	"github.com/erp/orderdesk/internal/infrastructure/telemetry"
	"github.com/erp/orderdesk/internal/interfaces/http/handler"
	"github.com/erp/orderdesk/internal/interfaces/http/middleware"
	"github.com/erp/orderdesk/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

//	@title			Order Desk API
//	@version		1.0
//	@description	Industry profiles, purchase request ledger and payment settlement for the order desk UI
//	@BasePath		/api/v1

func main() {
	// A missing .env is fine; real deployments use the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.ConfigForEnvironment(cfg.App.Env)
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting order desk",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry
	providers, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsEnabled:    cfg.Telemetry.MetricsEnabled,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		ExportInterval:    cfg.Telemetry.ExportInterval,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	level, _ := logger.ParseLevel(cfg.Log.Level)
	log = logger.Tee(log, providers.Logs.ZapCore(level))

	metrics, err := telemetry.NewServiceMetrics(providers.Meter.Meter(cfg.Telemetry.ServiceName))
	if err != nil {
		log.Fatal("Failed to create service metrics", zap.Error(err))
	}

	// Industry profiles
	registry := industry.NewRegistry()
	applied, err := profiles.Apply(registry, cfg.Industry.ProfilesFile, log)
	if err != nil {
		log.Fatal("Failed to load industry profiles", zap.Error(err))
	}
	if applied > 0 {
		log.Info("Industry profiles loaded",
			zap.String("file", cfg.Industry.ProfilesFile),
			zap.Int("profiles", applied),
		)
	}

	// Purchase request ledger
	sessions := ledger.NewSessions(ledger.SessionsConfig{
		IdleTTL:           cfg.Ledger.SessionIdleTTL,
		MaxSessions:       cfg.Ledger.MaxSessions,
		StrictTransitions: cfg.Ledger.StrictTransitions,
	})

	// Payment history backend, optional outside production
	var (
		history settlementapp.HistorySource
		checks  []handler.HealthCheck
	)
	if cfg.Backend.BaseURL != "" {
		client, err := backend.NewClient(backend.Config{
			BaseURL:    cfg.Backend.BaseURL,
			APIVersion: cfg.Backend.APIVersion,
			Token:      cfg.Backend.Token,
			Timeout:    cfg.Backend.Timeout,
			UserAgent:  cfg.App.Name + "/" + cfg.App.Version,
		}, &backend.RetryConfig{
			MaxRetries: cfg.Backend.MaxRetries,
			RetryDelay: cfg.Backend.RetryDelay,
			MaxDelay:   cfg.Backend.MaxRetryDelay,
		})
		if err != nil {
			log.Fatal("Failed to create backend client", zap.Error(err))
		}
		history = backend.NewHistorySource(client)
		checks = append(checks, handler.HealthCheck{
			Name: "backend",
			Check: func(ctx context.Context) error {
				resp, err := client.Get(ctx, "/health", nil)
				if err != nil {
					return err
				}
				return resp.Err()
			},
		})
		log.Info("Backend configured", zap.String("base_url", client.BaseURL()))
	} else {
		log.Warn("No backend configured, payment history endpoints are unavailable")
	}

	// Services
	industryService := industryapp.NewIndustryService(registry, cfg.Industry.Default, metrics, log)
	requestService := ledgerapp.NewPurchaseRequestService(sessions, metrics, log)
	settlementService := settlementapp.NewSettlementService(history, requestService, metrics, log)

	// Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Session())
	if cfg.Telemetry.Enabled {
		tracingCfg := middleware.DefaultTracingConfig()
		tracingCfg.ServiceName = cfg.Telemetry.ServiceName
		engine.Use(middleware.TracingWithConfig(tracingCfg), middleware.TracingAttributes())
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled {
		engine.Use(middleware.HTTPMetrics(providers.Meter.Meter("http.server")))
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		defer limiter.Close()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	routes := router.Mount(engine, router.Handlers{
		Industry:        handler.NewIndustryHandler(industryService),
		PurchaseRequest: handler.NewPurchaseRequestHandler(requestService),
		Settlement:      handler.NewSettlementHandler(settlementService),
		System: handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, cfg.App.Env,
			func() map[string]int {
				return map[string]int{
					"sessions":   sessions.Len(),
					"industries": registry.Count(),
				}
			},
			checks...,
		),
	})
	for _, route := range routes {
		log.Debug("Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.Int("routes", len(routes)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
