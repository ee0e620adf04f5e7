package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

// LedgerMetrics содержит метрики журнала заказов.
type LedgerMetrics struct {
	// Счётчики операций
	ordersPlaced       prometheus.Counter
	linesPlaced        prometheus.Counter
	linesMerged        prometheus.Counter
	returnsProcessed   prometheus.Counter
	returnMisses       prometheus.Counter
	validationFailures *prometheus.CounterVec

	// Размеры разделов журнала
	ledgerLines *prometheus.GaugeVec

	// Время загрузки и сохранения
	persistenceDuration *prometheus.HistogramVec
}

// NewLedgerMetrics создаёт метрики в глобальном реестре Prometheus.
func NewLedgerMetrics() *LedgerMetrics {
	return NewLedgerMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewLedgerMetricsWithRegisterer создаёт метрики в указанном реестре.
func NewLedgerMetricsWithRegisterer(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &LedgerMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "furniture_orders_placed_total",
			Help: "Total number of order transactions completed with at least one line",
		}),
		linesPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "furniture_order_lines_placed_total",
			Help: "Total number of order lines appended to the active ledger",
		}),
		linesMerged: registerCounter(registerer, prometheus.CounterOpts{
			Name: "furniture_order_lines_merged_total",
			Help: "Total number of order lines merged into an existing line",
		}),
		returnsProcessed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "furniture_returns_processed_total",
			Help: "Total number of orders moved to the returned partition",
		}),
		returnMisses: registerCounter(registerer, prometheus.CounterOpts{
			Name: "furniture_return_misses_total",
			Help: "Total number of returns requested for unknown order numbers",
		}),
		validationFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "furniture_validation_failures_total",
			Help: "Total number of rejected order inputs by reason",
		}, []string{"reason"}),
		ledgerLines: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "furniture_ledger_lines",
			Help: "Number of order lines per ledger partition",
		}, []string{"partition"}),
		persistenceDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "furniture_persistence_duration_seconds",
			Help:    "Duration of order store load and save operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		}, []string{"op"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderPlaced увеличивает счётчик завершённых транзакций оформления.
func (m *LedgerMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordLinePlaced учитывает добавленную или слитую строку.
func (m *LedgerMetrics) RecordLinePlaced(merged bool) {
	if merged {
		m.linesMerged.Inc()
		return
	}
	m.linesPlaced.Inc()
}

// RecordReturn учитывает оформленный возврат.
func (m *LedgerMetrics) RecordReturn() {
	m.returnsProcessed.Inc()
}

// RecordReturnMiss учитывает возврат по неизвестному номеру заказа.
func (m *LedgerMetrics) RecordReturnMiss() {
	m.returnMisses.Inc()
}

// RecordValidationFailure учитывает отклонённый ввод с указанной причиной.
func (m *LedgerMetrics) RecordValidationFailure(reason string) {
	m.validationFailures.WithLabelValues(reason).Inc()
}

// ObserveLedger выставляет размеры разделов журнала.
func (m *LedgerMetrics) ObserveLedger(stats domain.LedgerStats) {
	m.ledgerLines.WithLabelValues(string(domain.PartitionActive)).Set(float64(stats.ActiveLines))
	m.ledgerLines.WithLabelValues(string(domain.PartitionReturned)).Set(float64(stats.ReturnedLines))
}

// RecordPersistence записывает длительность операции хранилища ("load" или "save").
func (m *LedgerMetrics) RecordPersistence(op string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(op).Observe(duration.Seconds())
}
