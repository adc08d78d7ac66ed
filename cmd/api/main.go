package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/casamais/casamais-backend/api/routes"
	"github.com/casamais/casamais-backend/internal/auth"
	"github.com/casamais/casamais-backend/internal/medications"
	product "github.com/casamais/casamais-backend/internal/products"
	"github.com/casamais/casamais-backend/internal/recipes"
	"github.com/casamais/casamais-backend/internal/sales"
	"github.com/casamais/casamais-backend/internal/units"
	"github.com/casamais/casamais-backend/internal/users"
	"github.com/casamais/casamais-backend/pkg/auth/session"
	"github.com/casamais/casamais-backend/pkg/config"
	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/logger"
	"github.com/casamais/casamais-backend/pkg/metrics"
	"github.com/casamais/casamais-backend/pkg/migrate"
	"github.com/casamais/casamais-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	deps := routes.Deps{
		Config: cfg,
		Logger: logg,
		DB:     dbClient,
	}

	var sessionManager *session.Manager
	if cfg.Redis.Enabled() {
		var redisClient *redis.Client
		if redisClient, err = redis.New(ctx, cfg.Redis, logg); err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()

		if sessionManager, err = session.NewManager(redisClient, cfg.JWT); err != nil {
			return err
		}
		deps.Redis = redisClient
		deps.Sessions = sessionManager
	} else {
		logg.Warn(ctx, "redis not configured; sessions cannot be revoked and login is not throttled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.HTTPMetrics = metrics.NewHTTPMetrics(reg)
	deps.Gatherer = reg

	authParams := auth.ServiceParams{
		UserRepo:  users.NewRepository(dbClient.DB()),
		JWTConfig: cfg.JWT,
	}
	if sessionManager != nil {
		authParams.SessionManager = sessionManager
	}
	if deps.Auth, err = auth.NewService(authParams); err != nil {
		return err
	}
	if deps.Sales, err = sales.NewService(sales.NewRepository(dbClient.DB()), dbClient, metrics.NewSalesMetrics(reg)); err != nil {
		return err
	}
	if deps.Products, err = product.NewService(product.NewRepository(dbClient.DB()), dbClient); err != nil {
		return err
	}
	if deps.Recipes, err = recipes.NewService(recipes.NewRepository(dbClient.DB())); err != nil {
		return err
	}
	unitRepo := units.NewRepository(dbClient.DB())
	if deps.Units, err = units.NewService(unitRepo); err != nil {
		return err
	}
	if deps.Medications, err = medications.NewService(medications.NewRepository(dbClient.DB()), unitRepo); err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-runCtx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
