package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/furniture/internal/app"
	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/report"
	"github.com/vladislavdragonenkov/furniture/internal/seed"
	"github.com/vladislavdragonenkov/furniture/internal/session"
	"github.com/vladislavdragonenkov/furniture/internal/textformat"
	"github.com/vladislavdragonenkov/furniture/internal/version"
)

func (c *cli) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive catalog menu",
		Args:  cobra.NoArgs,
		RunE:  c.runSession,
	}
}

func (c *cli) runSession(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"catalog":        c.cfg.CatalogPath,
		"storage_driver": c.cfg.StorageDriver,
		"metrics_addr":   c.cfg.MetricsAddr,
	}).Debug("запускаем сеанс")

	return app.Run(ctx, c.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}

// withDependencies поднимает зависимости на время fn.
func (c *cli) withDependencies(ctx context.Context, fn func(deps *app.Dependencies) error) error {
	deps, err := app.NewDependencies(ctx, c.cfg, log.WithField("component", "cli"))
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.WithError(err).Warn("failed to release dependencies")
		}
	}()
	return fn(deps)
}

func (c *cli) newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the furniture catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDependencies(cmd.Context(), func(deps *app.Dependencies) error {
				session.RenderCatalog(cmd.OutOrStdout(), deps.Catalog.List())
				return nil
			})
		},
	}
}

func (c *cli) newOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Print saved active orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDependencies(cmd.Context(), func(deps *app.Dependencies) error {
				session.RenderOrders(cmd.OutOrStdout(), deps.Service.ActiveOrders())
				return nil
			})
		},
	}
}

func (c *cli) newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog and saved orders to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDependencies(cmd.Context(), func(deps *app.Dependencies) error {
				if err := report.SaveXLSX(out, deps.Report()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "furniture_report.xlsx", "output XLSX path")
	return cmd
}

func (c *cli) newSeedCmd() *cobra.Command {
	var (
		count       int
		maxLines    int
		seedValue   uint64
		catalogOut  string
		categories  int
		perCategory int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Append generated demo orders to the order store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("count must be >= 0, got %d", count)
			}
			seeder := seed.New(seedValue)

			if catalogOut != "" {
				if err := writeCatalog(catalogOut, seeder.Catalog(categories, perCategory)); err != nil {
					return err
				}
				c.cfg.CatalogPath = catalogOut
			}

			return c.withDependencies(cmd.Context(), func(deps *app.Dependencies) error {
				placed, err := seeder.Orders(cmd.Context(), deps.Service, count, maxLines)
				if err != nil {
					return err
				}
				if err := deps.Service.Persist(cmd.Context(), deps.Store); err != nil {
					return err
				}

				stats := deps.Service.Stats()
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d orders (%d lines), active lines: %d\n",
					count, placed, stats.ActiveLines)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "number of orders to generate")
	cmd.Flags().IntVar(&maxLines, "lines", 3, "maximum lines per order")
	cmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed (0 = random)")
	cmd.Flags().StringVar(&catalogOut, "catalog-out", "", "write a generated catalog to this path and use it")
	cmd.Flags().IntVar(&categories, "categories", 4, "categories in the generated catalog")
	cmd.Flags().IntVar(&perCategory, "per-category", 3, "products per category in the generated catalog")
	return cmd
}

func writeCatalog(path string, products []domain.Product) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return textformat.EncodeCatalog(f, products)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Banner())
		},
	}
}
