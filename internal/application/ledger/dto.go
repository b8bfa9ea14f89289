package ledger

import (
	"time"

	"github.com/duebook/backend/internal/domain/cashbook"
	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Due ledger DTOs
// =============================================================================

// RegisterCustomerRequest represents a request to open a new customer ledger
type RegisterCustomerRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Mobile     string          `json:"mobile" binding:"omitempty,max=20"`
	Portrait   string          `json:"portrait"`
	Date       time.Time       `json:"date" binding:"required"`
	OpeningDue decimal.Decimal `json:"opening_due" binding:"required"`
}

// RecordTransactionRequest represents a request to append a transaction
type RecordTransactionRequest struct {
	Date   time.Time       `json:"date" binding:"required"`
	Type   string          `json:"type" binding:"required,oneof=DUE ADD"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// UpdatePortraitRequest represents a request to replace the customer
// portrait. The value is a base64 data URI; size is enforced by the
// domain, not a binding tag.
type UpdatePortraitRequest struct {
	Portrait string `json:"portrait"`
}

// LedgerListFilter represents filter options for the ledger list
type LedgerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LogResponse represents one transaction in API responses
type LogResponse struct {
	ID         uuid.UUID       `json:"id"`
	Date       time.Time       `json:"date"`
	RecordedAt time.Time       `json:"recorded_at"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
}

// StatementLineResponse pairs a transaction with its running balance
type StatementLineResponse struct {
	LogResponse
	Balance decimal.Decimal `json:"balance"`
}

// LedgerResponse represents a full customer ledger in API responses
type LedgerResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Mobile    string          `json:"mobile"`
	Portrait  string          `json:"portrait"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
	Settled   bool            `json:"settled"`
	Logs      []LogResponse   `json:"logs"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// LedgerListResponse represents a ledger list item
type LedgerListResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Mobile    string          `json:"mobile"`
	Portrait  string          `json:"portrait"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// RecordTransactionResponse returns the ledger after a transaction plus
// the new log's id
type RecordTransactionResponse struct {
	Ledger LedgerResponse `json:"ledger"`
	LogID  uuid.UUID      `json:"log_id"`
}

// DeleteLogResponse reports the outcome of removing a transaction
type DeleteLogResponse struct {
	Ledger           LedgerResponse `json:"ledger"`
	CashEntryRemoved bool           `json:"cash_entry_removed"`
}

// DeleteCustomerResponse reports the outcome of closing a ledger
type DeleteCustomerResponse struct {
	CashEntriesRemoved int64 `json:"cash_entries_removed"`
}

// =============================================================================
// Cash book DTOs
// =============================================================================

// CashEntryResponse represents a cash book entry in API responses
type CashEntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	Date      time.Time       `json:"date"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	Paired    bool            `json:"paired"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashEntryListFilter represents filter options for the cash entry list
type CashEntryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =============================================================================
// Reconciliation DTOs
// =============================================================================

// DriftResponse represents one reconciliation finding
type DriftResponse struct {
	Kind     string          `json:"kind"`
	LogID    uuid.UUID       `json:"log_id,omitempty"`
	EntryID  uuid.UUID       `json:"entry_id,omitempty"`
	Expected decimal.Decimal `json:"expected"`
	Actual   decimal.Decimal `json:"actual"`
}

// DriftReportResponse represents a per-ledger drift report
type DriftReportResponse struct {
	LedgerID     uuid.UUID       `json:"ledger_id"`
	CustomerName string          `json:"customer_name"`
	Clean        bool            `json:"clean"`
	Drifts       []DriftResponse `json:"drifts"`
}

// AuditResponse represents a whole-book reconciliation run
type AuditResponse struct {
	CheckedAt time.Time             `json:"checked_at"`
	Ledgers   int                   `json:"ledgers"`
	Reports   []DriftReportResponse `json:"reports"`
}

// RepairResponse reports what a repair run fixed
type RepairResponse struct {
	RecreatedEntries int `json:"recreated_entries"`
	RemovedOrphans   int `json:"removed_orphans"`
	FixedTotals      int `json:"fixed_totals"`
}

// =============================================================================
// Mappers
// =============================================================================

// ToLogResponse converts a transaction log to its API representation
func ToLogResponse(log ledger.TransactionLog) LogResponse {
	return LogResponse{
		ID:         log.ID,
		Date:       log.Date,
		RecordedAt: log.RecordedAt,
		Type:       log.Type.String(),
		Amount:     log.Amount,
	}
}

// ToLedgerResponse converts a due ledger to its API representation
func ToLedgerResponse(l *ledger.DueLedger) LedgerResponse {
	logs := make([]LogResponse, 0, len(l.Logs))
	for _, lb := range l.Statement() {
		logs = append(logs, ToLogResponse(lb.Log))
	}
	return LedgerResponse{
		ID:        l.ID,
		Name:      l.CustomerName,
		Mobile:    l.Mobile,
		Portrait:  l.Portrait,
		Amount:    l.Amount,
		Paid:      l.Paid,
		Balance:   l.Balance(),
		Settled:   l.IsSettled(),
		Logs:      logs,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Version:   l.Version,
	}
}

// ToLedgerListResponse converts a due ledger to its list representation
func ToLedgerListResponse(l *ledger.DueLedger) LedgerListResponse {
	return LedgerListResponse{
		ID:        l.ID,
		Name:      l.CustomerName,
		Mobile:    l.Mobile,
		Portrait:  l.Portrait,
		Amount:    l.Amount,
		Paid:      l.Paid,
		Balance:   l.Balance(),
		CreatedAt: l.CreatedAt,
	}
}

// ToStatementResponse converts a replayed statement to its API representation
func ToStatementResponse(statement []ledger.LogBalance) []StatementLineResponse {
	lines := make([]StatementLineResponse, 0, len(statement))
	for _, lb := range statement {
		lines = append(lines, StatementLineResponse{
			LogResponse: ToLogResponse(lb.Log),
			Balance:     lb.Balance,
		})
	}
	return lines
}

// ToCashEntryResponse converts a cash entry to its API representation
func ToCashEntryResponse(e *cashbook.CashEntry) CashEntryResponse {
	return CashEntryResponse{
		ID:        e.ID,
		Date:      e.Date,
		Direction: e.Direction.String(),
		Amount:    e.Amount,
		Note:      e.Note,
		Paired:    e.IsPaired(),
		CreatedAt: e.CreatedAt,
	}
}

// ToDriftReportResponse converts a domain drift report to its API representation
func ToDriftReportResponse(report cashbook.DriftReport, customerName string) DriftReportResponse {
	drifts := make([]DriftResponse, 0, len(report.Drifts))
	for _, d := range report.Drifts {
		drifts = append(drifts, DriftResponse{
			Kind:     string(d.Kind),
			LogID:    d.LogID,
			EntryID:  d.EntryID,
			Expected: d.Expected,
			Actual:   d.Actual,
		})
	}
	return DriftReportResponse{
		LedgerID:     report.LedgerID,
		CustomerName: customerName,
		Clean:        report.Clean(),
		Drifts:       drifts,
	}
}
