package ledger

import (
	"strings"
	"time"

	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueLedger is the aggregate root for one customer's due book: the
// customer identity plus the full transaction history and the cached
// amount/paid totals derived from it.
type DueLedger struct {
	shared.BaseAggregateRoot
	CustomerName string
	Mobile       string
	Portrait     string
	Amount       decimal.Decimal // cached sum of DUE entries
	Paid         decimal.Decimal // cached sum of ADD entries
	Logs         []TransactionLog
}

// NewDueLedger registers a new customer with an opening due. Every
// customer starts with at least one DUE entry, the initial debt that
// prompted opening the ledger.
func NewDueLedger(customerName, mobile string, openingDate time.Time, openingDue decimal.Decimal) (*DueLedger, error) {
	if err := validateCustomerName(customerName); err != nil {
		return nil, err
	}
	if err := validateMobile(mobile); err != nil {
		return nil, err
	}

	openingLog, err := NewTransactionLog(openingDate, TransactionTypeDue, openingDue)
	if err != nil {
		return nil, err
	}

	ledger := &DueLedger{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      strings.TrimSpace(customerName),
		Mobile:            strings.TrimSpace(mobile),
		Logs:              []TransactionLog{openingLog},
	}
	ledger.Amount, ledger.Paid = RecomputeTotals(ledger.Logs)

	ledger.AddDomainEvent(NewDueLedgerOpenedEvent(ledger.ID, ledger.CustomerName, openingDue))
	ledger.AddDomainEvent(NewTransactionRecordedEvent(ledger.ID, openingLog))

	return ledger, nil
}

// AppendLog records a new transaction and refreshes the cached totals.
// The returned log carries the generated id the caller needs to tag the
// paired cash entry.
func (d *DueLedger) AppendLog(date time.Time, txType TransactionType, amount decimal.Decimal) (TransactionLog, error) {
	log, err := NewTransactionLog(date, txType, amount)
	if err != nil {
		return TransactionLog{}, err
	}

	d.Logs = append(d.Logs, log)
	d.Amount, d.Paid = RecomputeTotals(d.Logs)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewTransactionRecordedEvent(d.ID, log))
	return log, nil
}

// RemoveLog deletes a transaction by id and refreshes the cached
// totals. Removing the last remaining log is allowed; the ledger then
// reads as fully settled.
func (d *DueLedger) RemoveLog(logID uuid.UUID) (TransactionLog, error) {
	for i, log := range d.Logs {
		if log.ID == logID {
			d.Logs = append(d.Logs[:i], d.Logs[i+1:]...)
			d.Amount, d.Paid = RecomputeTotals(d.Logs)
			d.UpdatedAt = time.Now()
			d.IncrementVersion()

			d.AddDomainEvent(NewTransactionRemovedEvent(d.ID, log))
			return log, nil
		}
	}
	return TransactionLog{}, shared.ErrNotFound
}

// UpdatePortrait replaces the customer's portrait, stored as a
// base64 data URI captured client-side.
func (d *DueLedger) UpdatePortrait(portrait string) error {
	if err := validatePortrait(portrait); err != nil {
		return err
	}
	d.Portrait = portrait
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// Balance returns the outstanding due: cached amount minus cached paid.
// Negative means the customer has overpaid and holds credit.
func (d *DueLedger) Balance() decimal.Decimal {
	return d.Amount.Sub(d.Paid)
}

// IsSettled returns true when the customer owes nothing.
func (d *DueLedger) IsSettled() bool {
	return d.Balance().LessThanOrEqual(decimal.Zero)
}

// Statement replays the full history and returns per-log running
// balances, newest first.
func (d *DueLedger) Statement() []LogBalance {
	return DisplayOrder(Replay(d.Logs))
}

// FindLog returns the log with the given id, if present.
func (d *DueLedger) FindLog(logID uuid.UUID) (TransactionLog, bool) {
	for _, log := range d.Logs {
		if log.ID == logID {
			return log, true
		}
	}
	return TransactionLog{}, false
}

func validateCustomerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

// Mobile is optional; many walk-in customers are known by name only.
func validateMobile(mobile string) error {
	if len(strings.TrimSpace(mobile)) > 20 {
		return shared.NewDomainError("INVALID_MOBILE", "Mobile number cannot exceed 20 characters")
	}
	return nil
}

// maxPortraitLen fits the data URI of a 2 MiB image after base64
// expansion (4/3 plus the URI header).
const maxPortraitLen = 3 * 1024 * 1024

func validatePortrait(portrait string) error {
	if len(portrait) > maxPortraitLen {
		return shared.NewDomainError("INVALID_PORTRAIT", "Portrait image exceeds the 2 MiB limit")
	}
	return nil
}
