package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/mfs/internal/pkg/config"
	"github.com/piresc/mfs/internal/pkg/database"
	"github.com/piresc/mfs/internal/pkg/health"
	"github.com/piresc/mfs/internal/pkg/logger"
	"github.com/piresc/mfs/internal/pkg/middleware"
	"github.com/piresc/mfs/internal/pkg/models"
	nrpkg "github.com/piresc/mfs/internal/pkg/newrelic"
	"github.com/piresc/mfs/internal/pkg/password"
	"github.com/piresc/mfs/internal/pkg/retry"
	"github.com/piresc/mfs/internal/pkg/server"
	"github.com/piresc/mfs/services/users"
	"github.com/piresc/mfs/services/users/handler"
	httpHandler "github.com/piresc/mfs/services/users/handler/http"
	"github.com/piresc/mfs/services/users/repository"
	"github.com/piresc/mfs/services/users/usecase"
	"go.uber.org/zap"
)

var errUnsupportedDriver = errors.New("unsupported DB_DRIVER")

func main() {
	configs := config.InitConfig(config.GetEnv("CONFIG_PATH", ".env"))

	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", configs.App.Name),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("db_driver", configs.Database.Driver),
	)

	if configs.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	components := server.NewShutdownManager(zapLogger)

	storeCtx, stopStore := context.WithCancel(context.Background())
	components.Register(func(context.Context) error {
		stopStore()
		return nil
	})

	userRepo := repository.NewDeferredUserRepo()
	connect := func(ctx context.Context) error {
		repo, closeStore, err := newUserRepo(ctx, configs)
		if err != nil {
			return err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = closeStore()
			return fmt.Errorf("failed to prepare user store: %w", err)
		}
		components.Register(func(context.Context) error { return closeStore() })
		userRepo.Attach(repo)
		return nil
	}

	err = startUserStore(storeCtx,
		retry.New(storeRetryConfig(configs.Database.ConnectRetries), zapLogger),
		retry.New(storeRetryConfig(math.MaxInt32), zapLogger),
		connect,
	)
	if err != nil {
		logger.Fatal("Failed to configure user store", logger.ErrorField(err))
	}

	// Initialize UseCase
	userUC := usecase.NewUserUC(userRepo, password.NewBcryptHasher(configs.Auth.BcryptCost), configs)

	// Handlers for HTTP
	userHandler := httpHandler.NewUserHandler(userUC)
	authHandler := httpHandler.NewAuthHandler(userUC)
	Handler := handler.NewHandler(userHandler, authHandler, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.CORSMiddleware(configs.CORS))

	healthService := health.NewHealthService()
	healthService.AddChecker("users_store", health.CheckerFunc(userRepo.Ping))
	health.RegisterHealthEndpoints(e, configs.App.Name, configs.App.Version, healthService)

	Handler.RegisterRoutes(e)

	if nrApp != nil {
		components.Register(func(ctx context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := server.NewGracefulServer(e, zapLogger, configs.Server, components).Start(context.Background()); err != nil {
		logger.Fatal("Server stopped with error",
			logger.String("app", configs.App.Name),
			logger.ErrorField(err),
		)
	}
}

func storeRetryConfig(maxRetries int) retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = maxRetries
	cfg.Retryable = func(err error) bool {
		return !errors.Is(err, errUnsupportedDriver)
	}
	return cfg
}

// startUserStore connects the user store. When the store stays unreachable the
// failure is logged and reconnect keeps trying in the background until ctx is
// done, so the listener still starts. Only configuration errors are returned.
func startUserStore(ctx context.Context, retrier, reconnect *retry.Retrier, connect retry.RetryableFunc) error {
	err := retrier.Execute(ctx, "connect user store", connect)
	if err == nil || errors.Is(err, errUnsupportedDriver) {
		return err
	}

	logger.WithError(err).Error("User store unavailable, serving without it until it reconnects")
	go func() {
		if err := reconnect.Execute(ctx, "reconnect user store", connect); err != nil {
			logger.WithError(err).Warn("Stopped reconnecting user store")
			return
		}
		logger.Info("User store connected")
	}()
	return nil
}

// newUserRepo connects the backend selected by DB_DRIVER and returns its closer
func newUserRepo(ctx context.Context, configs *models.Config) (users.UserRepo, func() error, error) {
	switch configs.Database.Driver {
	case "mongo", "mongodb":
		client, err := database.NewMongoClient(ctx, configs.Database)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoUserRepo(client, configs.Database.Collection), client.Close, nil

	case "postgres", "postgresql":
		client, err := database.NewPostgresClient(ctx, configs.Database)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresUserRepo(client), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnsupportedDriver, configs.Database.Driver)
	}
}
