package cashbook

import (
	"testing"
	"time"

	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairedFixture(t *testing.T) (*ledger.DueLedger, []CashEntry) {
	t.Helper()
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	l, err := ledger.NewDueLedger("Salma Begum", "01911112222", day, decimal.RequireFromString("400"))
	require.NoError(t, err)
	_, err = l.AppendLog(day.AddDate(0, 0, 3), ledger.TransactionTypeAdd, decimal.RequireFromString("150"))
	require.NoError(t, err)

	entries := make([]CashEntry, 0, len(l.Logs))
	for _, log := range l.Logs {
		e, err := NewPairedEntry(log, NewReference(l.ID, log.ID), l.CustomerName)
		require.NoError(t, err)
		entries = append(entries, *e)
	}
	return l, entries
}

func TestReconciliationCompare(t *testing.T) {
	svc := NewReconciliationService()

	t.Run("matched books are clean", func(t *testing.T) {
		l, entries := pairedFixture(t)

		report := svc.Compare(l, entries)

		assert.True(t, report.Clean())
		assert.Equal(t, l.ID, report.LedgerID)
	})

	t.Run("missing cash entry is reported", func(t *testing.T) {
		l, entries := pairedFixture(t)

		report := svc.Compare(l, entries[:1])

		require.Len(t, report.Drifts, 1)
		assert.Equal(t, DriftMissingEntry, report.Drifts[0].Kind)
		assert.Equal(t, l.Logs[1].ID, report.Drifts[0].LogID)
	})

	t.Run("orphan cash entry is reported", func(t *testing.T) {
		l, entries := pairedFixture(t)
		strayLog, err := ledger.NewTransactionLog(time.Now(), ledger.TransactionTypeDue, decimal.RequireFromString("25"))
		require.NoError(t, err)
		stray, err := NewPairedEntry(strayLog, NewReference(l.ID, strayLog.ID), l.CustomerName)
		require.NoError(t, err)

		report := svc.Compare(l, append(entries, *stray))

		require.Len(t, report.Drifts, 1)
		assert.Equal(t, DriftOrphanEntry, report.Drifts[0].Kind)
		assert.Equal(t, strayLog.ID, report.Drifts[0].LogID)
	})

	t.Run("amount mismatch is reported", func(t *testing.T) {
		l, entries := pairedFixture(t)
		entries[0].Amount = decimal.RequireFromString("9999")

		report := svc.Compare(l, entries)

		require.Len(t, report.Drifts, 1)
		assert.Equal(t, DriftAmountMismatch, report.Drifts[0].Kind)
		assert.True(t, report.Drifts[0].Expected.Equal(l.Logs[0].Amount))
	})

	t.Run("direction mismatch is reported", func(t *testing.T) {
		l, entries := pairedFixture(t)
		entries[1].Direction = DirectionWithdraw

		report := svc.Compare(l, entries)

		require.Len(t, report.Drifts, 1)
		assert.Equal(t, DriftDirectionMismatch, report.Drifts[0].Kind)
	})

	t.Run("stale cached totals are reported", func(t *testing.T) {
		l, entries := pairedFixture(t)
		l.Paid = decimal.Zero // simulate a half-applied delete

		report := svc.Compare(l, entries)

		require.Len(t, report.Drifts, 1)
		assert.Equal(t, DriftCachedTotals, report.Drifts[0].Kind)
	})

	t.Run("entries for another ledger are ignored", func(t *testing.T) {
		l, entries := pairedFixture(t)
		otherLog, err := ledger.NewTransactionLog(time.Now(), ledger.TransactionTypeDue, decimal.RequireFromString("10"))
		require.NoError(t, err)
		foreign, err := NewPairedEntry(otherLog, NewReference(uuid.New(), otherLog.ID), "Someone Else")
		require.NoError(t, err)

		report := svc.Compare(l, append(entries, *foreign))

		assert.True(t, report.Clean())
	})
}
