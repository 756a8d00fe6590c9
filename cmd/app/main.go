package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/stroy1click/confirmation-service/internal/api/http"
	"github.com/stroy1click/confirmation-service/internal/cache"
	authclient "github.com/stroy1click/confirmation-service/internal/client/auth"
	emailclient "github.com/stroy1click/confirmation-service/internal/client/email"
	userclient "github.com/stroy1click/confirmation-service/internal/client/user"
	"github.com/stroy1click/confirmation-service/internal/config"
	"github.com/stroy1click/confirmation-service/internal/db"
	"github.com/stroy1click/confirmation-service/internal/queue/asynqserver"
	"github.com/stroy1click/confirmation-service/internal/repository"
	"github.com/stroy1click/confirmation-service/internal/server"
	"github.com/stroy1click/confirmation-service/internal/service"
	"github.com/stroy1click/confirmation-service/internal/worker"
	"github.com/stroy1click/confirmation-service/pkg/auth"
	"github.com/stroy1click/confirmation-service/pkg/codegen"
	"github.com/stroy1click/confirmation-service/pkg/i18nx"
	"github.com/stroy1click/confirmation-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	logger.SetupLogger(cfg.Env)

	logger.Info("starting confirmation code service", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		return
	}

	translator, err := i18nx.NewTranslator()
	if err != nil {
		logger.Error("translator creation err", zap.Error(err))
		return
	}

	// Downstream clients, each behind its own circuit breaker
	userClient := userclient.NewClient(cfg.Services.UserServiceURL, cfg.Services.ClientTimeout, cfg.Breaker)
	emailClient := emailclient.NewClient(cfg.Services.EmailServiceURL, cfg.Services.ClientTimeout, cfg.Breaker)
	authClient := authclient.NewClient(cfg.Services.AuthServiceURL, cfg.Services.ClientTimeout, cfg.Breaker)

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Repos:         repos,
		TokenManager:  tokenManager,
		CodeGenerator: codegen.NewRandomGenerator(),
		Users:         userClient,
		Notifier:      emailClient,
		Sessions:      authClient,
	})
	handlers := apiHttp.NewHandlers(services, translator, cfg, dbMySQL, redisClient)

	// Background queue: expired code purging
	workers := worker.NewWorkers(worker.Deps{Repos: repos})
	queueServer, queueMux := asynqserver.New(cfg.Cache, workers)
	if err := queueServer.Start(queueMux); err != nil {
		logger.Error("queue server start failed", zap.Error(err))
		os.Exit(1)
	}

	scheduler, err := asynqserver.NewScheduler(cfg.Cache, cfg.Purge.Schedule)
	if err != nil {
		logger.Error("scheduler creation err", zap.Error(err))
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		logger.Error("scheduler start failed", zap.Error(err))
		os.Exit(1)
	}

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	scheduler.Shutdown()
	queueServer.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
