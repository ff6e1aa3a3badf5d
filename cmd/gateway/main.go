package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/gateway/adapters/rest"
	"finledger/internal/gateway/adapters/storage/file"
	"finledger/internal/gateway/adapters/storage/memory"
	"finledger/internal/gateway/adapters/storage/redisstore"
	httpServer "finledger/internal/gateway/app/http"
	"finledger/internal/gateway/app/services"
	"finledger/internal/gateway/config"
	"finledger/internal/gateway/ports/storage"
	"finledger/pkg/logger"
	"finledger/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "GATEWAY_LOGGER_MODE"
	EnvLoggerLevel = "GATEWAY_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateTokenStore     = "failed to create token store"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "gateway service started"
	LogServiceShutdownDone = "gateway service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitTokenStore      = "initializing token store"
	LogInitClients         = "initializing API clients"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitTokenStore, zap.String("store", cfg.Session.Store))

		var tokenStore storage.TokenStore
		var redisStore *redisstore.Store

		switch cfg.Session.Store {
		case config.SessionStoreRedis:
			redisStore, err = redisstore.NewStore(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateTokenStore, zap.Error(err))
				exitCode = 1
				return
			}
			tokenStore = redisStore
		case config.SessionStoreMemory:
			tokenStore = memory.NewStore()
		default:
			tokenStore = file.NewStore(cfg.Session.FilePath)
		}

		log.Info(ctx, LogInitClients)
		restClient := rest.NewClient(&cfg.API, tokenStore)
		authClient := rest.NewAuthClient(restClient)
		financeClient := rest.NewFinanceClient(restClient)
		investClient := rest.NewInvestClient(restClient)

		log.Info(ctx, LogInitServices)
		sessionService := services.NewSessionService(authClient, tokenStore)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, sessionService, financeClient, investClient)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				if redisStore != nil {
					log.Info(ctx, "Closing Redis connection")
					return redisStore.Close()
				}
				return nil
			},
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.Shutdown()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
