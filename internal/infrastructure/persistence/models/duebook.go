package models

import (
	"time"

	"github.com/duebook/backend/internal/domain/cashbook"
	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueLedgerModel is the persistence model for the DueLedger aggregate.
type DueLedgerModel struct {
	AggregateModel
	CustomerName string                `gorm:"type:varchar(200);not null"`
	Mobile       string                `gorm:"type:varchar(20);not null;default:''"`
	Portrait     string                `gorm:"type:text"`
	Amount       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Paid         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Logs         []TransactionLogModel `gorm:"foreignKey:LedgerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (DueLedgerModel) TableName() string {
	return "due_ledgers"
}

// TransactionLogModel is the persistence model for one ledger transaction.
type TransactionLogModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	LedgerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date       time.Time       `gorm:"not null;index"`
	RecordedAt time.Time       `gorm:"not null"`
	Type       string          `gorm:"type:varchar(10);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (TransactionLogModel) TableName() string {
	return "transaction_logs"
}

// ToDomain converts the persistence model to a domain DueLedger aggregate.
func (m *DueLedgerModel) ToDomain() *ledger.DueLedger {
	logs := make([]ledger.TransactionLog, 0, len(m.Logs))
	for _, lm := range m.Logs {
		logs = append(logs, ledger.TransactionLog{
			ID:         lm.ID,
			Date:       lm.Date,
			RecordedAt: lm.RecordedAt,
			Type:       ledger.TransactionType(lm.Type),
			Amount:     lm.Amount,
		})
	}
	return &ledger.DueLedger{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CustomerName: m.CustomerName,
		Mobile:       m.Mobile,
		Portrait:     m.Portrait,
		Amount:       m.Amount,
		Paid:         m.Paid,
		Logs:         logs,
	}
}

// FromDomain populates the persistence model from a domain DueLedger aggregate.
func (m *DueLedgerModel) FromDomain(l *ledger.DueLedger) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.CustomerName = l.CustomerName
	m.Mobile = l.Mobile
	m.Portrait = l.Portrait
	m.Amount = l.Amount
	m.Paid = l.Paid
	m.Logs = make([]TransactionLogModel, 0, len(l.Logs))
	for _, log := range l.Logs {
		m.Logs = append(m.Logs, TransactionLogModel{
			ID:         log.ID,
			LedgerID:   l.ID,
			Date:       log.Date,
			RecordedAt: log.RecordedAt,
			Type:       log.Type.String(),
			Amount:     log.Amount,
		})
	}
}

// DueLedgerModelFromDomain creates a new persistence model from a domain DueLedger.
func DueLedgerModelFromDomain(l *ledger.DueLedger) *DueLedgerModel {
	m := &DueLedgerModel{}
	m.FromDomain(l)
	return m
}

// CashEntryModel is the persistence model for the CashEntry aggregate.
type CashEntryModel struct {
	AggregateModel
	Date      time.Time       `gorm:"not null;index"`
	Direction string          `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CashEntryModel) TableName() string {
	return "cash_entries"
}

// ToDomain converts the persistence model to a domain CashEntry aggregate.
func (m *CashEntryModel) ToDomain() *cashbook.CashEntry {
	return &cashbook.CashEntry{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Date:      m.Date,
		Direction: cashbook.EntryDirection(m.Direction),
		Amount:    m.Amount,
		Note:      m.Note,
	}
}

// FromDomain populates the persistence model from a domain CashEntry aggregate.
func (m *CashEntryModel) FromDomain(e *cashbook.CashEntry) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Date = e.Date
	m.Direction = e.Direction.String()
	m.Amount = e.Amount
	m.Note = e.Note
}

// CashEntryModelFromDomain creates a new persistence model from a domain CashEntry.
func CashEntryModelFromDomain(e *cashbook.CashEntry) *CashEntryModel {
	m := &CashEntryModel{}
	m.FromDomain(e)
	return m
}
