package persistence

import (
	"context"

	appledger "github.com/duebook/backend/internal/application/ledger"
	"gorm.io/gorm"
)

// GormUnitOfWork implements the application UnitOfWork on a GORM
// transaction. Repositories handed to the function are bound to the
// transaction, so every write inside commits or rolls back together.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

var _ appledger.UnitOfWork = (*GormUnitOfWork)(nil)

// Execute runs fn inside a database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(r appledger.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(appledger.Repos{
			Ledgers:     NewGormDueLedgerRepository(tx),
			CashEntries: NewGormCashEntryRepository(tx),
		})
	})
}
