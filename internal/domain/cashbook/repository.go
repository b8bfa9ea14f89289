package cashbook

import (
	"context"

	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CashEntryRepository defines the interface for cash book persistence
type CashEntryRepository interface {
	// FindByID finds a cash entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CashEntry, error)

	// FindByLogReference finds the entry paired with a ledger log
	FindByLogReference(ctx context.Context, logID uuid.UUID) (*CashEntry, error)

	// FindByLedgerReference finds all entries paired with a ledger
	FindByLedgerReference(ctx context.Context, ledgerID uuid.UUID) ([]CashEntry, error)

	// FindAll finds all cash entries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CashEntry, error)

	// Save persists a cash entry (create or update)
	Save(ctx context.Context, e *CashEntry) error

	// DeleteByLogReference removes the entry paired with a ledger log.
	// Returns shared.ErrReferenceNotFound when no entry carries the tag.
	DeleteByLogReference(ctx context.Context, logID uuid.UUID) error

	// DeleteByLedgerReference removes every entry paired with a ledger
	// and returns how many were removed
	DeleteByLedgerReference(ctx context.Context, ledgerID uuid.UUID) (int64, error)
}
