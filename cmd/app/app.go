package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"techblog/internal/config"
	"techblog/internal/database"
	"techblog/internal/github"
	"techblog/internal/repository"
	"techblog/internal/service"
	"techblog/internal/storage"
)

// App builds the storage, clients and services. The returned cleanup closes the DB pool.
func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (*service.Service, func(), error) {
	var (
		repo    *repository.Repository
		pinger  service.Pinger
		cleanup = func() {}
		seed    = cfg.SeedDemoData
	)

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		// connection DB
		db, err := database.ConnectDB(cfg, log.Named("database"))
		if err != nil {
			return nil, nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
		}
		repo = repository.NewRepository(db.DB)
		pinger = db
		cleanup = func() {
			if err := db.CloseDB(); err != nil {
				log.Warn("ошибка при закрытии БД", zap.Error(err))
			}
		}
	case config.StorageDriverMemory:
		repo = repository.NewMemoryRepository()
		seed = true
	default:
		return nil, nil, fmt.Errorf("неизвестный STORAGE_DRIVER: %q", cfg.StorageDriver)
	}

	// connection MinIO; a nil interface disables cover uploads
	var covers storage.Storage
	if cfg.MinIO.Enabled {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
		}
		covers = minioClient
	}

	gh := github.NewClient(cfg.GitHub)
	if !gh.HasToken() {
		log.Warn("GITHUB_ACCESS_TOKEN не задан, синхронизация репозиториев недоступна")
	}

	services := service.NewService(repo, cfg, covers, gh, pinger, log)

	if seed {
		if err := service.SeedDemoData(ctx, services, log); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	return services, cleanup, nil
}
