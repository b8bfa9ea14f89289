package ledger

import (
	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeDueLedger is the aggregate type for due ledger events
const AggregateTypeDueLedger = "DueLedger"

// Event type constants
const (
	EventTypeDueLedgerOpened     = "dueledger.opened"
	EventTypeDueLedgerClosed     = "dueledger.closed"
	EventTypeTransactionRecorded = "dueledger.transaction_recorded"
	EventTypeTransactionRemoved  = "dueledger.transaction_removed"
)

// DueLedgerOpenedEvent is published when a new customer ledger is opened
type DueLedgerOpenedEvent struct {
	shared.BaseDomainEvent
	CustomerName string          `json:"customer_name"`
	OpeningDue   decimal.Decimal `json:"opening_due"`
}

// NewDueLedgerOpenedEvent creates a new DueLedgerOpenedEvent
func NewDueLedgerOpenedEvent(ledgerID uuid.UUID, customerName string, openingDue decimal.Decimal) *DueLedgerOpenedEvent {
	return &DueLedgerOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDueLedgerOpened, AggregateTypeDueLedger, ledgerID),
		CustomerName:    customerName,
		OpeningDue:      openingDue,
	}
}

// DueLedgerClosedEvent is published when a customer ledger is deleted
type DueLedgerClosedEvent struct {
	shared.BaseDomainEvent
	CustomerName string          `json:"customer_name"`
	FinalBalance decimal.Decimal `json:"final_balance"`
}

// NewDueLedgerClosedEvent creates a new DueLedgerClosedEvent
func NewDueLedgerClosedEvent(ledgerID uuid.UUID, customerName string, finalBalance decimal.Decimal) *DueLedgerClosedEvent {
	return &DueLedgerClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDueLedgerClosed, AggregateTypeDueLedger, ledgerID),
		CustomerName:    customerName,
		FinalBalance:    finalBalance,
	}
}

// TransactionRecordedEvent is published when a log entry is appended
type TransactionRecordedEvent struct {
	shared.BaseDomainEvent
	LogID  uuid.UUID       `json:"log_id"`
	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// NewTransactionRecordedEvent creates a new TransactionRecordedEvent
func NewTransactionRecordedEvent(ledgerID uuid.UUID, log TransactionLog) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionRecorded, AggregateTypeDueLedger, ledgerID),
		LogID:           log.ID,
		Type:            log.Type,
		Amount:          log.Amount,
	}
}

// TransactionRemovedEvent is published when a log entry is deleted
type TransactionRemovedEvent struct {
	shared.BaseDomainEvent
	LogID  uuid.UUID       `json:"log_id"`
	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// NewTransactionRemovedEvent creates a new TransactionRemovedEvent
func NewTransactionRemovedEvent(ledgerID uuid.UUID, log TransactionLog) *TransactionRemovedEvent {
	return &TransactionRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionRemoved, AggregateTypeDueLedger, ledgerID),
		LogID:           log.ID,
		Type:            log.Type,
		Amount:          log.Amount,
	}
}
