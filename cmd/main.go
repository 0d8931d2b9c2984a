package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sidz1235/TaskRabbit/config"
	"github.com/sidz1235/TaskRabbit/jsonstore"
	"github.com/sidz1235/TaskRabbit/server"
	"github.com/sidz1235/TaskRabbit/services/accounts"
	"github.com/sidz1235/TaskRabbit/services/profiles"
	"github.com/sidz1235/TaskRabbit/services/tasklist"
)

func main() {
	cfg := config.New()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	storage, err := jsonstore.New(cfg)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	accountService := accounts.New(storage)
	taskService := tasklist.New(storage)
	profileService := profiles.New(storage)

	srv := server.New(cfg, accountService, taskService, profileService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("server stopped")
			} else {
				logger.Fatal("server", zap.Error(err))
			}
		}
	}()

	logger.Info("service started",
		zap.String("addr", cfg.Port),
		zap.String("store", cfg.StoreFile),
		zap.String("profile_dir", cfg.ProfileDir),
	)

	<-quit

	if err := srv.Stop(context.Background()); err != nil {
		logger.Fatal("shutdown", zap.Error(err))
	}

	logger.Info("service stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
