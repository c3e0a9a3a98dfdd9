package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"techblog/cmd/app"
	"techblog/internal/config"
	handlers "techblog/internal/handler"
	"techblog/internal/logger"
	"techblog/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// setting up config
	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Не удалось создать логгер: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, cleanup, err := app.App(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("ошибка инициализации приложения", zap.Error(err))
	}
	defer cleanup()

	handler := handlers.NewHandlers(services, cfg, zlog.Named("http"))

	handlerChain := middleware.Standard(handler.Router(), zlog)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("сервер запущен",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.StorageDriver),
			zap.Bool("minio", cfg.MinIO.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("ошибка запуска сервера", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("ошибка при остановке сервера", zap.Error(err))
	}
}
