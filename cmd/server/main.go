// Command server runs the dormitory backend API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appclimate "github.com/dormlife/backend/internal/application/climate"
	appfacility "github.com/dormlife/backend/internal/application/facility"
	appidentity "github.com/dormlife/backend/internal/application/identity"
	appschool "github.com/dormlife/backend/internal/application/school"
	"github.com/dormlife/backend/internal/infrastructure/auth"
	"github.com/dormlife/backend/internal/infrastructure/cache"
	"github.com/dormlife/backend/internal/infrastructure/config"
	"github.com/dormlife/backend/internal/infrastructure/logger"
	"github.com/dormlife/backend/internal/infrastructure/persistence"
	"github.com/dormlife/backend/internal/infrastructure/storage"
	"github.com/dormlife/backend/internal/infrastructure/telemetry"
	"github.com/dormlife/backend/internal/interfaces/http/handler"
	"github.com/dormlife/backend/internal/interfaces/http/middleware"
	"github.com/dormlife/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// Telemetry: tracer, meter, log bridge, profiler. All no-ops unless
	// enabled in config.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(tracerProvider.Shutdown, log, "tracer provider")

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(meterProvider.Shutdown, log, "meter provider")

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(loggerProvider.Shutdown, log, "logger provider")

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, loggerProvider, zapcore.InfoLevel)
		log = telemetry.NewBridgedLogger(log.Core(), otelCore)
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilerEnabled,
		ServerAddress:   cfg.Telemetry.ProfilerEndpoint,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		return err
	}
	defer profiler.Stop() //nolint:errcheck

	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("failed to enable span profiles", zap.Error(err))
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, gormlogger.Warn)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("failed to enable database tracing", zap.Error(err))
		}
	}

	// Caches: redis when configured, in-memory otherwise
	cacheFactory := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	statsCache, voteGuard, err := cacheFactory.CreateCaches()
	if err != nil {
		return err
	}
	defer statsCache.Close() //nolint:errcheck
	defer voteGuard.Close()  //nolint:errcheck

	// Object storage for request photos
	objectStorage, err := storage.New(&cfg.Storage, log)
	if err != nil {
		return err
	}

	jwtService, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	schoolRepo := persistence.NewGormSchoolRepository(db.DB)
	zoneRepo := persistence.NewGormZoneRepository(db.DB)
	voteRepo := persistence.NewGormVoteRepository(db.DB)
	readingRepo := persistence.NewGormReadingRepository(db.DB)
	requestRepo := persistence.NewGormRequestRepository(db.DB)
	announcementRepo := persistence.NewGormAnnouncementRepository(db.DB)

	// Application services
	authService := appidentity.NewAuthService(userRepo, schoolRepo, jwtService, cfg.Auth, log)
	userService := appidentity.NewUserService(userRepo, log)
	schoolService := appschool.NewSchoolService(schoolRepo, statsCache, log)
	climateService := appclimate.NewClimateService(zoneRepo, voteRepo, readingRepo, voteGuard, log)
	requestService := appfacility.NewRequestService(requestRepo, objectStorage, log)
	announcementService := appfacility.NewAnnouncementService(announcementRepo, log)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return err
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			Enabled:       cfg.Telemetry.Enabled,
		}),
	)
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	authn := middleware.NewAuthenticator(jwtService, userRepo, log)

	var authLimiter gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter = middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow))
	}

	handlers := router.Handlers{
		Health:       handler.NewHealthHandler(db, version),
		Auth:         handler.NewAuthHandler(authService, log),
		User:         handler.NewUserHandler(userService, log),
		School:       handler.NewSchoolHandler(schoolService, log),
		Temperature:  handler.NewTemperatureHandler(climateService, log),
		Request:      handler.NewRequestHandler(requestService, log),
		Announcement: handler.NewAnnouncementHandler(announcementService, log),
	}
	router.Setup(engine, handlers, authn, authLimiter)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("version", version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

func shutdownWithTimeout(fn func(context.Context) error, log *zap.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn("shutdown failed", zap.String("component", name), zap.Error(err))
	}
}
