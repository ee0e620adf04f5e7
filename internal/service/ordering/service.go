package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/metrics"
	"github.com/vladislavdragonenkov/furniture/internal/textformat"
)

// MaxNameLength — максимальная длина имени клиента в символах.
const MaxNameLength = 49

// ErrTransactionClosed возвращается при добавлении строк в завершённую транзакцию.
var ErrTransactionClosed = errors.New("order transaction already committed")

// Service проверяет ввод и управляет журналом заказов поверх каталога.
type Service struct {
	catalog   domain.CatalogRepository
	ledger    domain.LedgerRepository
	numbers   *NumberGenerator
	publisher domain.EventPublisher
	metrics   *metrics.LedgerMetrics
	logger    *log.Entry
}

// NewService создаёт сервис оформления заказов. numbers, publisher и metrics
// необязательны: по умолчанию используются случайный генератор, NoopPublisher и
// отключённые метрики.
func NewService(
	catalog domain.CatalogRepository,
	ledger domain.LedgerRepository,
	numbers *NumberGenerator,
	publisher domain.EventPublisher,
	ledgerMetrics *metrics.LedgerMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "ordering")
	}
	if numbers == nil {
		numbers = NewNumberGenerator(nil)
	}
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Service{
		catalog:   catalog,
		ledger:    ledger,
		numbers:   numbers,
		publisher: publisher,
		metrics:   ledgerMetrics,
		logger:    logger,
	}
}

// Catalog возвращает каталог, по которому проверяются заказы.
func (s *Service) Catalog() domain.CatalogRepository {
	return s.catalog
}

// BeginOrder начинает оформление: проверяет имя и выделяет один номер на весь заказ.
func (s *Service) BeginOrder(customerName string) (*Transaction, error) {
	name := strings.TrimRight(customerName, "\r\n")
	if strings.TrimSpace(name) == "" {
		s.recordValidationFailure("customer_required")
		return nil, domain.ErrCustomerRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		s.recordValidationFailure("customer_name_too_long")
		return nil, fmt.Errorf("%w: %d characters", domain.ErrCustomerNameTooLong, utf8.RuneCountInString(name))
	}
	if err := textformat.ValidateCustomerName(name); err != nil {
		s.recordValidationFailure("customer_name_invalid")
		return nil, fmt.Errorf("%w: %w", domain.ErrCustomerNameInvalid, err)
	}

	number, err := s.numbers.Next(s.ledger.HasOrderNumber)
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"customer":     name,
		"order_number": number,
	}).Debug("order transaction started")

	return &Transaction{
		service:      s,
		customerName: name,
		orderNumber:  number,
		positions:    make(map[int]int),
	}, nil
}

// ProcessReturn переносит все строки заказа в раздел returned.
func (s *Service) ProcessReturn(ctx context.Context, orderNumber string) (int, error) {
	number := strings.TrimSpace(orderNumber)
	if number == "" {
		s.recordValidationFailure("order_number_required")
		return 0, domain.ErrOrderNumberRequired
	}

	var lines []domain.OrderLine
	for _, line := range s.ledger.ListActive() {
		if line.OrderNumber == number {
			lines = append(lines, line)
		}
	}

	moved, err := s.ledger.Return(number)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) && s.metrics != nil {
			s.metrics.RecordReturnMiss()
		}
		s.logger.WithError(err).WithField("order_number", number).Info("return rejected")
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RecordReturn()
	}
	s.observeLedger()

	event := domain.LedgerEvent{
		Type:        domain.EventTypeOrderReturned,
		OrderNumber: number,
		Lines:       lines,
	}
	if len(lines) > 0 {
		event.CustomerName = lines[0].CustomerName
	}
	s.publish(ctx, event)

	s.logger.WithFields(log.Fields{
		"order_number": number,
		"lines":        moved,
	}).Info("return processed")

	return moved, nil
}

// ActiveOrders группирует активные строки по клиенту и номеру заказа.
func (s *Service) ActiveOrders() []domain.Order {
	return domain.GroupOrders(s.ledger.ListActive())
}

// ReturnedOrders группирует возвращённые строки по клиенту и номеру заказа.
func (s *Service) ReturnedOrders() []domain.Order {
	return domain.GroupOrders(s.ledger.ListReturned())
}

// ReturnedLines возвращает возвращённые строки в порядке переноса.
func (s *Service) ReturnedLines() []domain.OrderLine {
	return s.ledger.ListReturned()
}

// Stats возвращает размеры разделов журнала.
func (s *Service) Stats() domain.LedgerStats {
	return s.ledger.Stats()
}

// Restore загружает сохранённые активные строки в журнал. Пропущенные записи
// логируются как предупреждения.
func (s *Service) Restore(ctx context.Context, store domain.OrderSnapshotStore) (int, error) {
	start := time.Now()
	lines, warnings, err := store.Load(ctx)
	s.recordPersistence("load", start)
	if err != nil {
		return 0, err
	}

	for _, warning := range warnings {
		s.logger.WithError(warning).Warn("skipped order record")
	}

	if err := s.ledger.Replace(lines); err != nil {
		return 0, fmt.Errorf("restore ledger: %w", err)
	}

	for _, line := range lines {
		s.logger.Infof("Loaded customer: %s, order number: %s", line.CustomerName, line.OrderNumber)
	}
	s.observeLedger()

	return len(lines), nil
}

// Persist сохраняет раздел active целиком. Раздел returned не сохраняется.
func (s *Service) Persist(ctx context.Context, store domain.OrderSnapshotStore) error {
	lines := s.ledger.ListActive()

	start := time.Now()
	err := store.Save(ctx, lines)
	s.recordPersistence("save", start)
	if err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}

	s.logger.WithField("lines", len(lines)).Info("orders saved")
	return nil
}

func (s *Service) publish(ctx context.Context, event domain.LedgerEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event_type":   event.Type,
			"order_number": event.OrderNumber,
		}).Warn("failed to publish ledger event")
	}
}

func (s *Service) recordValidationFailure(reason string) {
	if s.metrics != nil {
		s.metrics.RecordValidationFailure(reason)
	}
}

func (s *Service) recordPersistence(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordPersistence(op, time.Since(start))
	}
}

func (s *Service) observeLedger() {
	if s.metrics != nil {
		s.metrics.ObserveLedger(s.ledger.Stats())
	}
}

// Transaction — оформление одного заказа: один клиент, один номер.
type Transaction struct {
	service      *Service
	customerName string
	orderNumber  string
	lines        []domain.OrderLine
	// positions — индекс строки транзакции по номеру товара.
	positions map[int]int
	committed bool
}

// CustomerName возвращает имя клиента заказа.
func (t *Transaction) CustomerName() string {
	return t.customerName
}

// OrderNumber возвращает номер заказа.
func (t *Transaction) OrderNumber() string {
	return t.orderNumber
}

// Lines возвращает копию строк, добавленных в рамках транзакции.
func (t *Transaction) Lines() []domain.OrderLine {
	result := make([]domain.OrderLine, len(t.lines))
	copy(result, t.lines)
	return result
}

// Add проверяет товар и количество и размещает строку в журнале.
// merged=true, если количество добавлено к уже существующей строке.
func (t *Transaction) Add(productNumber, quantity int) (bool, error) {
	if t.committed {
		return false, ErrTransactionClosed
	}

	s := t.service
	if !s.catalog.Exists(productNumber) {
		s.recordValidationFailure("unknown_product")
		return false, fmt.Errorf("product %d: %w", productNumber, domain.ErrProductNotFound)
	}
	if quantity < 0 {
		s.recordValidationFailure("invalid_quantity")
		return false, fmt.Errorf("quantity %d: %w", quantity, domain.ErrQuantityInvalid)
	}

	line, err := domain.NewOrderLine(t.customerName, t.orderNumber, productNumber, quantity)
	if err != nil {
		return false, err
	}

	merged, err := s.ledger.Place(line)
	if err != nil {
		return false, fmt.Errorf("place order line: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordLinePlaced(merged)
	}

	if pos, ok := t.positions[productNumber]; ok {
		t.lines[pos].Quantity += quantity
	} else {
		t.positions[productNumber] = len(t.lines)
		t.lines = append(t.lines, line)
	}

	return merged, nil
}

// Commit завершает оформление и публикует order.placed. Пустой заказ ничего
// не публикует. Возвращает false, если в заказе нет строк.
func (t *Transaction) Commit(ctx context.Context) bool {
	if t.committed {
		return len(t.lines) > 0
	}
	t.committed = true

	if len(t.lines) == 0 {
		return false
	}

	s := t.service
	if s.metrics != nil {
		s.metrics.RecordOrderPlaced()
	}
	s.observeLedger()

	s.publish(ctx, domain.LedgerEvent{
		Type:         domain.EventTypeOrderPlaced,
		CustomerName: t.customerName,
		OrderNumber:  t.orderNumber,
		Lines:        t.Lines(),
	})

	s.logger.WithFields(log.Fields{
		"customer":     t.customerName,
		"order_number": t.orderNumber,
		"lines":        len(t.lines),
	}).Info("order placed")

	return true
}
