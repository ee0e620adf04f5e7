package ordering

import (
	"context"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
)

// NoopPublisher используется, когда брокер не настроен.
type NoopPublisher struct{}

// Publish ничего не делает.
func (NoopPublisher) Publish(context.Context, domain.LedgerEvent) error {
	return nil
}

var _ domain.EventPublisher = NoopPublisher{}
