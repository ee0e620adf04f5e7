package app

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/health"
	"github.com/vladislavdragonenkov/furniture/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/furniture/internal/metrics"
	"github.com/vladislavdragonenkov/furniture/internal/report"
	"github.com/vladislavdragonenkov/furniture/internal/service/ordering"
	"github.com/vladislavdragonenkov/furniture/internal/storage/file"
	"github.com/vladislavdragonenkov/furniture/internal/storage/memory"
	"github.com/vladislavdragonenkov/furniture/internal/version"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Catalog domain.CatalogRepository
	Ledger  domain.LedgerRepository
	Store   domain.OrderSnapshotStore
	Service *ordering.Service
	Metrics *metrics.LedgerMetrics
	Health  *health.Handler
	Logger  *log.Entry

	producer     *kafka.Producer
	closeStorage func() error
}

// NewDependencies загружает каталог, подключает хранилище заказов и Kafka и
// восстанавливает журнал. Недоступный файл каталога или заказов не фатален:
// работа продолжается с пустыми данными.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	storage, err := initOrderStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	catalog := loadCatalog(ctx, cfg.CatalogPath, logger)
	ledger := memory.NewLedgerRepository()
	ledgerMetrics := metrics.NewLedgerMetrics()

	publisher, producer, _ := initKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)

	svc := ordering.NewService(
		catalog,
		ledger,
		ordering.NewNumberGenerator(nil),
		publisher,
		ledgerMetrics,
		logger.WithField("component", "ordering"),
	)

	if _, err := svc.Restore(ctx, storage.store); err != nil {
		if !errors.Is(err, domain.ErrSourceUnavailable) {
			_ = closeKafka(producer, logger)
			_ = storage.close()
			return nil, err
		}
		logger.WithError(err).Warn("saved orders are unavailable, starting with an empty ledger")
	}

	healthHandler := health.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("catalog", health.NewCatalogChecker(catalog))
	healthHandler.RegisterChecker("ledger", health.NewLedgerChecker(ledger.Stats))
	healthHandler.RegisterChecker("order-store", storage.checker)

	return &Dependencies{
		Catalog:      catalog,
		Ledger:       ledger,
		Store:        storage.store,
		Service:      svc,
		Metrics:      ledgerMetrics,
		Health:       healthHandler,
		Logger:       logger,
		producer:     producer,
		closeStorage: storage.close,
	}, nil
}

// loadCatalog читает каталог; ошибки чтения логируются, каталог остаётся пустым.
func loadCatalog(ctx context.Context, path string, logger *log.Entry) domain.CatalogRepository {
	products, warnings, err := file.NewCatalogSource(path).Load(ctx)
	if err != nil {
		logger.WithError(err).Errorf("Error opening file: %s", path)
		return memory.NewCatalogRepository(nil)
	}
	for _, warning := range warnings {
		logger.WithError(warning).Warn("skipped catalog record")
	}
	logger.WithFields(log.Fields{
		"path":     path,
		"products": len(products),
	}).Info("catalog loaded")
	return memory.NewCatalogRepository(products)
}

// Report собирает данные для выгрузки в XLSX.
func (d *Dependencies) Report() report.Report {
	return report.Report{
		Catalog:    d.Catalog.List(),
		Categories: d.Catalog.Categories(),
		Active:     d.Service.ActiveOrders(),
		Returned:   d.Service.ReturnedOrders(),
	}
}

// Close освобождает Kafka producer и подключение к хранилищу.
func (d *Dependencies) Close() error {
	if d == nil {
		return nil
	}
	var errs []error
	if err := closeKafka(d.producer, d.Logger); err != nil {
		errs = append(errs, err)
	}
	if d.closeStorage != nil {
		if err := d.closeStorage(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
