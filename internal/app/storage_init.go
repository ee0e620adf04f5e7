package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/health"
	"github.com/vladislavdragonenkov/furniture/internal/storage/file"
	"github.com/vladislavdragonenkov/furniture/internal/storage/postgres"
)

// orderStorage — выбранное хранилище снимка и его проверка здоровья.
type orderStorage struct {
	store   domain.OrderSnapshotStore
	checker health.Checker
	close   func() error
}

func initOrderStorage(ctx context.Context, cfg Config, logger *log.Entry) (*orderStorage, error) {
	switch cfg.StorageDriver {
	case StorageDriverFile, "":
		path := cfg.OrdersPath
		return &orderStorage{
			store: file.NewOrderStore(path),
			checker: health.NewSimpleChecker("order-store", func(context.Context) error {
				dir := filepath.Dir(path)
				info, err := os.Stat(dir)
				if err != nil {
					return err
				}
				if !info.IsDir() {
					return fmt.Errorf("%s is not a directory", dir)
				}
				return nil
			}),
			close: func() error { return nil },
		}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("postgres_dsn is required for postgres storage")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
			logger.Info("postgres schema is up to date")
		}

		return &orderStorage{
			store:   postgres.NewOrderSnapshotRepository(store),
			checker: health.NewSimpleChecker("order-store", store.Ping),
			close:   store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
