package service

import (
	"context"
	"fmt"

	"techblog/internal/repository"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type Health struct {
	Status   string `json:"status"`
	Storage  string `json:"storage"`
	Database string `json:"database"`
	Tables   int    `json:"tables"`
}

type TablesService interface {
	Health(ctx context.Context) (*Health, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
	pinger     Pinger
	driver     string
}

func NewTablesService(tablesRepo repository.TablesRepository, pinger Pinger, driver string) TablesService {
	return &tablesService{tablesRepo: tablesRepo, pinger: pinger, driver: driver}
}

func (s *tablesService) Health(ctx context.Context) (*Health, error) {
	health := &Health{Status: "ok", Storage: s.driver, Database: "n/a"}

	if s.pinger != nil {
		if err := s.pinger.HealthCheck(ctx); err != nil {
			return nil, fmt.Errorf("БД недоступна: %w", err)
		}
		health.Database = "up"
	}

	count, err := s.tablesRepo.CountTables(ctx)
	if err != nil {
		return nil, err
	}
	health.Tables = count

	return health, nil
}
