package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

// TopicOrderEvents — topic по умолчанию для событий журнала заказов.
const TopicOrderEvents = "furniture.order.events"

// OrderLinePayload — строка заказа внутри события.
type OrderLinePayload struct {
	ProductNumber int `json:"product_number"`
	Quantity      int `json:"quantity"`
}

// OrderEvent представляет событие журнала заказов в Kafka.
type OrderEvent struct {
	ID           string             `json:"id"`
	EventType    domain.EventType   `json:"event_type"`
	OrderNumber  string             `json:"order_number"`
	CustomerName string             `json:"customer_name"`
	Lines        []OrderLinePayload `json:"lines"`
	Timestamp    time.Time          `json:"timestamp"`
}

// NewOrderEvent создаёт событие Kafka из события журнала.
func NewOrderEvent(event domain.LedgerEvent) *OrderEvent {
	lines := make([]OrderLinePayload, 0, len(event.Lines))
	for _, line := range event.Lines {
		lines = append(lines, OrderLinePayload{
			ProductNumber: line.ProductNumber,
			Quantity:      line.Quantity,
		})
	}

	return &OrderEvent{
		ID:           uuid.NewString(),
		EventType:    event.Type,
		OrderNumber:  event.OrderNumber,
		CustomerName: event.CustomerName,
		Lines:        lines,
		Timestamp:    time.Now().UTC(),
	}
}
