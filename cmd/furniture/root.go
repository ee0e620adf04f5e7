package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/furniture/internal/app"
)

// cli хранит общие флаги и конфигурацию, загруженную перед подкомандой.
type cli struct {
	configPath string
	lookup     func(string) (string, bool)
	cfg        app.Config
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithLookup(os.LookupEnv)
}

// newRootCmdWithLookup собирает дерево команд; lookup читает переменные окружения.
func newRootCmdWithLookup(lookup func(string) (string, bool)) *cobra.Command {
	c := &cli{lookup: lookup}

	root := &cobra.Command{
		Use:   "furniture",
		Short: "Furniture catalog and order ledger",
		Long: `furniture ведёт каталог мебели и журнал заказов с возвратами.

Без подкоманды запускается интерактивное меню (то же, что "furniture run").
Настройки читаются из YAML-файла (--config) и переменных окружения FURNITURE_*.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
		RunE:              c.runSession,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to YAML config file")

	root.AddCommand(
		c.newRunCmd(),
		c.newCatalogCmd(),
		c.newOrdersCmd(),
		c.newExportCmd(),
		c.newSeedCmd(),
		c.newMigrateCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, warnings, err := app.LoadConfig(c.configPath, c.lookup)
	for _, warning := range warnings {
		log.Warn(warning)
	}
	if err != nil {
		return err
	}

	setupLogger(cfg.LogLevel)
	c.cfg = cfg
	return nil
}
