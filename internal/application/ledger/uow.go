package ledger

import (
	"context"

	"github.com/duebook/backend/internal/domain/cashbook"
	"github.com/duebook/backend/internal/domain/ledger"
)

// Repos bundles the repositories participating in one unit of work.
// Inside Execute both are bound to the same database transaction, so a
// ledger write and its paired cash book write commit or roll back
// together.
type Repos struct {
	Ledgers     ledger.DueLedgerRepository
	CashEntries cashbook.CashEntryRepository
}

// UnitOfWork runs a function against transaction-bound repositories.
// Any error returned from fn rolls the whole transaction back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(r Repos) error) error
}
