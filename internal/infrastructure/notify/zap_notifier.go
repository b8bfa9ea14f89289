package notify

import (
	"context"

	appledger "github.com/duebook/backend/internal/application/ledger"
	"github.com/duebook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ZapNotifier logs committed domain events. It stands in for an event
// bus; downstream consumers read the structured log stream.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a new ZapNotifier
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger.Named("events")}
}

var _ appledger.Notifier = (*ZapNotifier)(nil)

// Notify logs each event at info level
func (n *ZapNotifier) Notify(ctx context.Context, events []shared.DomainEvent) {
	for _, e := range events {
		n.logger.Info("domain event",
			zap.String("event_id", e.EventID().String()),
			zap.String("event_type", e.EventType()),
			zap.String("aggregate_type", e.AggregateType()),
			zap.String("aggregate_id", e.AggregateID().String()),
			zap.Time("occurred_at", e.OccurredAt()),
		)
	}
}
