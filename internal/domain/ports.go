package domain

import "context"

// CatalogSource загружает товары из внешнего источника (файл каталога).
type CatalogSource interface {
	// Load возвращает товары, предупреждения о пропущенных строках и ошибку чтения.
	Load(ctx context.Context) ([]Product, []error, error)
}

// OrderSnapshotStore сохраняет и восстанавливает раздел active целиком.
type OrderSnapshotStore interface {
	// Load читает сохранённые строки и предупреждения о пропущенных записях.
	Load(ctx context.Context) ([]OrderLine, []error, error)
	// Save перезаписывает сохранённое состояние переданными строками.
	Save(ctx context.Context, lines []OrderLine) error
}

// EventType задаёт тип события журнала.
type EventType string

const (
	EventTypeOrderPlaced   EventType = "order.placed"
	EventTypeOrderReturned EventType = "order.returned"
)

// LedgerEvent — событие об изменении журнала для внешних подписчиков.
type LedgerEvent struct {
	Type         EventType
	CustomerName string
	OrderNumber  string
	Lines        []OrderLine
}

// EventPublisher публикует события журнала наружу. Отсутствие брокера ошибкой не считается.
type EventPublisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}
