package app

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/furniture/internal/session"
	"github.com/vladislavdragonenkov/furniture/internal/version"
)

// Run поднимает зависимости и ops-сервер и запускает интерактивный сеанс на
// in/out. Заказы сохраняются при выходе из меню или по концу ввода.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	logger := log.WithField("component", "app")
	logger.WithFields(version.Fields()).Info("furniture starting")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to release dependencies")
		}
	}()

	opsCtx, stopOps := context.WithCancel(ctx)
	defer stopOps()
	srv := startOpsServer(opsCtx, cfg.MetricsAddr, logger, deps.Health)
	defer shutdownHTTP(srv, logger)

	sess := session.New(deps.Service, deps.Store, in, out, log.WithField("component", "session"))
	return sess.Run(ctx)
}
