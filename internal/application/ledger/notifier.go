package ledger

import (
	"context"

	"github.com/duebook/backend/internal/domain/shared"
)

// Notifier receives domain events after a successful commit. Delivery
// is best effort; a notifier failure never affects the transaction
// outcome.
type Notifier interface {
	Notify(ctx context.Context, events []shared.DomainEvent)
}

// NopNotifier discards all events
type NopNotifier struct{}

// Notify implements Notifier
func (NopNotifier) Notify(ctx context.Context, events []shared.DomainEvent) {}
