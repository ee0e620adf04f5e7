package postgres

import (
	"context"
	"testing"
	"time"
)

func TestMigrator_PostgresLifecycle(t *testing.T) {
	store := openLedgerStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// Сначала откатываем всё.
	if err := store.MigrateDown(ctx, 100); err != nil {
		t.Fatalf("migrate down reset: %v", err)
	}

	version, dirty, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status after reset: %v", err)
	}
	if version != 0 || dirty {
		t.Fatalf("unexpected status after reset: version=%d dirty=%v", version, dirty)
	}

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up all: %v", err)
	}
	version, _, err = store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status after up all: %v", err)
	}
	if version != 2 {
		t.Fatalf("unexpected version after up all: %d", version)
	}

	// Повторный up ничего не меняет.
	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("idempotent migrate up: %v", err)
	}

	if err := store.MigrateDown(ctx, 1); err != nil {
		t.Fatalf("migrate down 1: %v", err)
	}
	version, _, err = store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status after down 1: %v", err)
	}
	if version != 1 {
		t.Fatalf("unexpected version after down 1: %d", version)
	}

	if err := store.MigrateUp(ctx, 1); err != nil {
		t.Fatalf("migrate up 1: %v", err)
	}
	version, _, err = store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status after up 1: %v", err)
	}
	if version != 2 {
		t.Fatalf("unexpected version after up 1: %d", version)
	}
}
