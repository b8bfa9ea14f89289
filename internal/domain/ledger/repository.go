package ledger

import (
	"context"

	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueLedgerRepository defines the interface for due ledger persistence
type DueLedgerRepository interface {
	// FindByID finds a ledger by its ID, logs included
	FindByID(ctx context.Context, id uuid.UUID) (*DueLedger, error)

	// FindByMobile finds a ledger by the customer's mobile number
	FindByMobile(ctx context.Context, mobile string) (*DueLedger, error)

	// FindAll finds all ledgers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]DueLedger, error)

	// Count returns the number of ledgers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// TotalOutstanding sums the balance of all ledgers
	TotalOutstanding(ctx context.Context) (decimal.Decimal, error)

	// Save persists a ledger (create or update), logs included
	Save(ctx context.Context, l *DueLedger) error

	// Delete removes a ledger and all of its logs
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists checks if a ledger exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
