package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shopfolders/backend/internal/config"
	"shopfolders/backend/internal/httpserver"
	"shopfolders/backend/internal/infrastructure/postgres"
	"shopfolders/backend/internal/infrastructure/token"
	"shopfolders/backend/internal/logger"
	authusecase "shopfolders/backend/internal/usecase/auth"
	collectionusecase "shopfolders/backend/internal/usecase/collection"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		zl.Fatal("failed to run database migrations", zap.Error(err))
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	authService := authusecase.NewService(postgres.NewUserRepository(db.Pool), tokenManager)

	syncer := collectionusecase.NewSynchronizer(db, zl)
	reader := collectionusecase.NewReader(
		postgres.NewCollectionRepository(db.Pool),
		postgres.NewProductRepository(db.Pool),
	)

	server := httpserver.NewServer(cfg, zl, authService, syncer, reader)
	zl.Info("HTTP server listening", zap.String("addr", server.Addr()))

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				zl.Info("HTTP server closed")
				return
			}
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	} else {
		zl.Info("graceful shutdown completed")
	}
}
