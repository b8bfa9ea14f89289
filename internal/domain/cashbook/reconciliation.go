package cashbook

import (
	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationService is a domain service that compares a due ledger
// against the cash book entries paired with it. The two books are kept
// in step by the transaction service; this service detects and reports
// the cases where they have drifted apart, typically after a partial
// failure or a hand edit of the cash book.
type ReconciliationService struct{}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService() *ReconciliationService {
	return &ReconciliationService{}
}

// DriftKind classifies one reconciliation finding
type DriftKind string

const (
	// DriftMissingEntry means a ledger log has no paired cash entry
	DriftMissingEntry DriftKind = "MISSING_ENTRY"
	// DriftOrphanEntry means a cash entry references a log the ledger no longer holds
	DriftOrphanEntry DriftKind = "ORPHAN_ENTRY"
	// DriftAmountMismatch means the pair exists but amounts differ
	DriftAmountMismatch DriftKind = "AMOUNT_MISMATCH"
	// DriftDirectionMismatch means the pair exists but the cash direction is wrong
	DriftDirectionMismatch DriftKind = "DIRECTION_MISMATCH"
	// DriftCachedTotals means the ledger's cached totals disagree with its logs
	DriftCachedTotals DriftKind = "CACHED_TOTALS"
)

// Drift is one finding in a drift report
type Drift struct {
	Kind     DriftKind
	LogID    uuid.UUID
	EntryID  uuid.UUID
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

// DriftReport lists everything out of step between one ledger and its
// paired cash entries
type DriftReport struct {
	LedgerID uuid.UUID
	Drifts   []Drift
}

// Clean reports whether the ledger and cash book agree
func (r DriftReport) Clean() bool {
	return len(r.Drifts) == 0
}

// Compare builds a drift report for one ledger given every cash entry
// that carries its reference tag. Entries without a parseable tag are
// ignored; the repository query should not return them anyway.
func (s *ReconciliationService) Compare(l *ledger.DueLedger, entries []CashEntry) DriftReport {
	report := DriftReport{LedgerID: l.ID}

	byLog := make(map[uuid.UUID]*CashEntry, len(entries))
	for i := range entries {
		ref, ok := entries[i].Reference()
		if !ok || ref.LedgerID != l.ID {
			continue
		}
		byLog[ref.LogID] = &entries[i]
	}

	for _, log := range l.Logs {
		entry, ok := byLog[log.ID]
		if !ok {
			report.Drifts = append(report.Drifts, Drift{
				Kind:     DriftMissingEntry,
				LogID:    log.ID,
				Expected: log.Amount,
			})
			continue
		}
		delete(byLog, log.ID)

		if !entry.Amount.Equal(log.Amount) {
			report.Drifts = append(report.Drifts, Drift{
				Kind:     DriftAmountMismatch,
				LogID:    log.ID,
				EntryID:  entry.ID,
				Expected: log.Amount,
				Actual:   entry.Amount,
			})
		}
		if entry.Direction != DirectionFor(log.Type) {
			report.Drifts = append(report.Drifts, Drift{
				Kind:    DriftDirectionMismatch,
				LogID:   log.ID,
				EntryID: entry.ID,
			})
		}
	}

	for logID, entry := range byLog {
		report.Drifts = append(report.Drifts, Drift{
			Kind:    DriftOrphanEntry,
			LogID:   logID,
			EntryID: entry.ID,
			Actual:  entry.Amount,
		})
	}

	amount, paid := ledger.RecomputeTotals(l.Logs)
	if !l.Amount.Equal(amount) || !l.Paid.Equal(paid) {
		report.Drifts = append(report.Drifts, Drift{
			Kind:     DriftCachedTotals,
			Expected: amount.Sub(paid),
			Actual:   l.Balance(),
		})
	}

	return report
}
