package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/furniture/internal/health"
	"github.com/vladislavdragonenkov/furniture/internal/storage/file"
)

func TestInitOrderStorage_File(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OrdersPath = filepath.Join(t.TempDir(), "orders.txt")

	storage, err := initOrderStorage(context.Background(), cfg, log.WithField("test", t.Name()))
	require.NoError(t, err)
	require.IsType(t, &file.OrderStore{}, storage.store)
	require.Equal(t, health.StatusHealthy, storage.checker.Check(context.Background()).Status)
	require.NoError(t, storage.close())
}

func TestInitOrderStorage_FileMissingDirIsUnhealthy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OrdersPath = filepath.Join(t.TempDir(), "missing", "orders.txt")

	storage, err := initOrderStorage(context.Background(), cfg, log.WithField("test", t.Name()))
	require.NoError(t, err)
	require.Equal(t, health.StatusUnhealthy, storage.checker.Check(context.Background()).Status)
}

func TestInitOrderStorage_Errors(t *testing.T) {
	logger := log.WithField("test", t.Name())

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	_, err := initOrderStorage(context.Background(), cfg, logger)
	require.ErrorContains(t, err, "postgres_dsn")

	cfg = DefaultConfig()
	cfg.StorageDriver = "sqlite"
	_, err = initOrderStorage(context.Background(), cfg, logger)
	require.ErrorContains(t, err, "unsupported storage driver")
}

func TestInitOrderStorage_PostgresAutoMigrate(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("FURNITURE_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("FURNITURE_POSTGRES_TEST_DSN is not set")
	}

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = dsn
	cfg.PostgresAutoMigrate = true

	storage, err := initOrderStorage(context.Background(), cfg, log.WithField("test", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, storage.close()) })

	// схема создана: чтение пустого журнала проходит без ошибок
	_, _, err = storage.store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, health.StatusHealthy, storage.checker.Check(context.Background()).Status)
}
