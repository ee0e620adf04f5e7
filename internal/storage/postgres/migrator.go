package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const migrationsDir = "sql/migrations"

//go:embed sql/migrations/*.sql
var migrationsFS embed.FS

// MigrateUp применяет up-миграции.
// steps=0 означает "применить все доступные".
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	if steps < 0 {
		return fmt.Errorf("migrate up: negative steps %d", steps)
	}
	return s.withMigrate(ctx, func(m *migrate.Migrate) error {
		if steps == 0 {
			return m.Up()
		}
		return m.Steps(steps)
	})
}

// MigrateDown откатывает миграции.
// steps<=0 интерпретируется как 1 шаг.
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	return s.withMigrate(ctx, func(m *migrate.Migrate) error {
		if _, _, err := m.Version(); errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return m.Steps(-steps)
	})
}

// MigrationStatus возвращает текущую версию схемы и признак dirty.
// Пустая схема даёт версию 0.
func (s *Store) MigrationStatus(ctx context.Context) (int64, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := s.withMigrate(ctx, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			version, dirty = 0, false
			return nil
		}
		return err
	})
	if err != nil {
		return 0, false, err
	}
	return int64(version), dirty, nil
}

// withMigrate открывает отдельное подключение: migrate.Close закрывает и его.
func (s *Store) withMigrate(ctx context.Context, fn func(m *migrate.Migrate) error) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	m, err := newMigrate(ctx, s.dsn)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	if err := fn(m); err != nil && !isNoopMigrationError(err) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return ctx.Err()
}

func newMigrate(ctx context.Context, dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	db, err := openDB(ctx, dsn)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		_ = src.Close()
		_ = db.Close()
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// isNoopMigrationError отличает «нечего применять» от настоящих ошибок.
func isNoopMigrationError(err error) bool {
	if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, os.ErrNotExist) {
		return true
	}
	var short migrate.ErrShortLimit
	return errors.As(err, &short)
}
