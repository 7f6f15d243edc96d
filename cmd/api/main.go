package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/bizmanager-api/internal/config"
	accountHandler "github.com/jwalitptl/bizmanager-api/internal/handler/account"
	authHandler "github.com/jwalitptl/bizmanager-api/internal/handler/auth"
	catalogHandler "github.com/jwalitptl/bizmanager-api/internal/handler/catalog"
	clientHandler "github.com/jwalitptl/bizmanager-api/internal/handler/client"
	"github.com/jwalitptl/bizmanager-api/internal/handler/health"
	promHandler "github.com/jwalitptl/bizmanager-api/internal/handler/prometheus"
	productHandler "github.com/jwalitptl/bizmanager-api/internal/handler/product"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/internal/repository/postgres"
	"github.com/jwalitptl/bizmanager-api/internal/router"
	accountService "github.com/jwalitptl/bizmanager-api/internal/service/account"
	authService "github.com/jwalitptl/bizmanager-api/internal/service/auth"
	catalogService "github.com/jwalitptl/bizmanager-api/internal/service/catalog"
	clientService "github.com/jwalitptl/bizmanager-api/internal/service/client"
	productService "github.com/jwalitptl/bizmanager-api/internal/service/product"
	"github.com/jwalitptl/bizmanager-api/pkg/auth"
	"github.com/jwalitptl/bizmanager-api/pkg/logger"
	"github.com/jwalitptl/bizmanager-api/pkg/metrics"
	"github.com/jwalitptl/bizmanager-api/pkg/security"
	"github.com/jwalitptl/bizmanager-api/pkg/session"
	"github.com/jwalitptl/bizmanager-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	appLogger.SetGlobal()
	if !cfg.Log.Pretty {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.EnsureSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.Database.Name),
	)
	m := metrics.NewMetrics(cfg.Monitoring.Prefix, reg)

	checks := map[string]health.Check{
		"database": db.PingContext,
	}

	var sessions session.Store
	switch cfg.Session.Store {
	case "redis":
		redisStore, err := session.NewRedisStore(ctx, session.RedisConfig{
			URL:      cfg.Redis.URL,
			PoolSize: cfg.Redis.PoolSize,
			TTL:      cfg.Session.TTL,
		}, appLogger.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		sessions = redisStore
		checks["redis"] = redisStore.Ping
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	// Repositories
	base := postgres.NewBaseRepository(db, m)
	userRepo := postgres.NewUserRepository(base)
	accountRepo := postgres.NewAccountRepository(base)
	clientRepo := postgres.NewClientRepository(base)
	productRepo := postgres.NewProductRepository(base)
	serviceRepo := postgres.NewServiceRepository(base)

	// Services
	v := validator.New()
	authSvc := authService.NewService(
		userRepo,
		accountRepo,
		sessions,
		auth.NewJWTService(cfg.Session.Secret),
		security.NewBcryptHasher(bcrypt.DefaultCost),
		v,
		m,
	)
	accountSvc := accountService.NewService(accountRepo, v)
	clientSvc := clientService.NewService(clientRepo, v)
	productSvc := productService.NewService(productRepo, v)
	catalogSvc := catalogService.NewService(serviceRepo, v)

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc, cfg.Session.CookieName),
		authHandler.NewHandler(authSvc, authHandler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		}),
		health.NewHandler(checks),
		promHandler.New(reg),
		m,
		router.RouterConfig{
			RateLimit:      cfg.RateLimit.Enabled,
			RPS:            cfg.RateLimit.RPS,
			Burst:          cfg.RateLimit.Burst,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
			MetricsPath:    cfg.Monitoring.MetricsPath,
		},
		accountHandler.NewHandler(accountSvc),
		clientHandler.NewHandler(clientSvc),
		productHandler.NewHandler(productSvc),
		catalogHandler.NewHandler(catalogSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("session_store", cfg.Session.Store).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
