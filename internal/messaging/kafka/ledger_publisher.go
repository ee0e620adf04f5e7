package kafka

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

// eventSender отделяет паблишер от конкретного producer (для тестов).
type eventSender interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// LedgerPublisher публикует события журнала в заданный topic, ключом служит номер заказа.
type LedgerPublisher struct {
	sender eventSender
	topic  string
}

// NewLedgerPublisher создаёт Kafka-паблишер событий журнала.
func NewLedgerPublisher(producer *Producer, topic string) *LedgerPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &LedgerPublisher{
		sender: producer,
		topic:  topic,
	}
}

// Publish отправляет событие; ошибки оборачиваются в ErrEventPublish.
func (p *LedgerPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	if p == nil || p.sender == nil {
		return fmt.Errorf("kafka ledger publisher is not initialized: %w", domain.ErrEventPublish)
	}

	if err := p.sender.PublishEvent(ctx, p.topic, event.OrderNumber, NewOrderEvent(event)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEventPublish, err)
	}
	return nil
}

var _ domain.EventPublisher = (*LedgerPublisher)(nil)
