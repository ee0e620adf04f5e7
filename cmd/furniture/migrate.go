package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/furniture/internal/storage/postgres"
)

const migrateTimeout = 30 * time.Second

func (c *cli) newMigrateCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate up|down|status",
		Short:     "Apply or roll back the PostgreSQL order store schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := strings.TrimSpace(c.cfg.PostgresDSN)
			if dsn == "" {
				return errors.New("postgres_dsn (or FURNITURE_POSTGRES_DSN) is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			store, err := postgres.Open(ctx, dsn)
			if err != nil {
				return fmt.Errorf("open postgres store: %w", err)
			}
			defer store.Close()

			return runMigrate(ctx, store, strings.ToLower(strings.TrimSpace(args[0])), steps, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	return cmd
}

func runMigrate(ctx context.Context, store *postgres.Store, direction string, steps int, out io.Writer) error {
	switch direction {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
	case "status":
	default:
		return fmt.Errorf("unsupported direction: %s (use up|down|status)", direction)
	}

	version, dirty, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	if direction == "status" {
		fmt.Fprintf(out, "migration status: version=%d dirty=%t\n", version, dirty)
	} else {
		fmt.Fprintf(out, "migrate %s ok: version=%d dirty=%t\n", direction, version, dirty)
	}
	return nil
}
