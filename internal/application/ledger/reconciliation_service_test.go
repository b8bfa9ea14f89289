package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/duebook/backend/internal/domain/cashbook"
	domledger "github.com/duebook/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReconService(t *testing.T) (*ReconciliationAppService, *MockDueLedgerRepository, *MockCashEntryRepository) {
	t.Helper()
	ledgerRepo := new(MockDueLedgerRepository)
	cashRepo := new(MockCashEntryRepository)
	uow := &fakeUnitOfWork{repos: Repos{Ledgers: ledgerRepo, CashEntries: cashRepo}}
	svc := NewReconciliationAppService(uow, ledgerRepo, cashRepo, zap.NewNop())
	return svc, ledgerRepo, cashRepo
}

func pairedEntries(t *testing.T, l *domledger.DueLedger) []cashbook.CashEntry {
	t.Helper()
	entries := make([]cashbook.CashEntry, 0, len(l.Logs))
	for _, log := range l.Logs {
		e, err := cashbook.NewPairedEntry(log, cashbook.NewReference(l.ID, log.ID), l.CustomerName)
		require.NoError(t, err)
		entries = append(entries, *e)
	}
	return entries
}

func TestReconciliationAudit(t *testing.T) {
	t.Run("clean books produce no reports", func(t *testing.T) {
		svc, ledgerRepo, cashRepo := newReconService(t)
		l := openLedger(t)
		ledgerRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domledger.DueLedger{*l}, nil)
		cashRepo.On("FindByLedgerReference", mock.Anything, l.ID).Return(pairedEntries(t, l), nil)

		resp, err := svc.Audit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Ledgers)
		assert.Empty(t, resp.Reports)
	})

	t.Run("missing cash entry is reported", func(t *testing.T) {
		svc, ledgerRepo, cashRepo := newReconService(t)
		l := openLedger(t)
		ledgerRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domledger.DueLedger{*l}, nil)
		cashRepo.On("FindByLedgerReference", mock.Anything, l.ID).Return([]cashbook.CashEntry{}, nil)

		resp, err := svc.Audit(context.Background())

		require.NoError(t, err)
		require.Len(t, resp.Reports, 1)
		assert.False(t, resp.Reports[0].Clean)
		require.Len(t, resp.Reports[0].Drifts, 1)
		assert.Equal(t, string(cashbook.DriftMissingEntry), resp.Reports[0].Drifts[0].Kind)
	})
}

func TestReconciliationRepair(t *testing.T) {
	t.Run("recreates missing cash entries from logs", func(t *testing.T) {
		svc, ledgerRepo, cashRepo := newReconService(t)
		l := openLedger(t)
		ledgerRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domledger.DueLedger{*l}, nil)
		cashRepo.On("FindByLedgerReference", mock.Anything, mock.Anything).Return([]cashbook.CashEntry{}, nil)
		cashRepo.On("Save", mock.Anything, mock.MatchedBy(func(e *cashbook.CashEntry) bool {
			ref, ok := e.Reference()
			return ok && ref.LogID == l.Logs[0].ID && e.Direction == cashbook.DirectionWithdraw
		})).Return(nil)

		resp, err := svc.Repair(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, resp.RecreatedEntries)
		cashRepo.AssertExpectations(t)
	})

	t.Run("removes orphan entries", func(t *testing.T) {
		svc, ledgerRepo, cashRepo := newReconService(t)
		l := openLedger(t)
		strayLog, err := domledger.NewTransactionLog(time.Now(), domledger.TransactionTypeAdd, decimal.RequireFromString("30"))
		require.NoError(t, err)
		stray, err := cashbook.NewPairedEntry(strayLog, cashbook.NewReference(l.ID, strayLog.ID), l.CustomerName)
		require.NoError(t, err)

		entries := append(pairedEntries(t, l), *stray)
		ledgerRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domledger.DueLedger{*l}, nil)
		cashRepo.On("FindByLedgerReference", mock.Anything, mock.Anything).Return(entries, nil)
		cashRepo.On("DeleteByLogReference", mock.Anything, strayLog.ID).Return(nil)

		resp, err := svc.Repair(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, resp.RemovedOrphans)
	})

	t.Run("rewrites stale cached totals", func(t *testing.T) {
		svc, ledgerRepo, cashRepo := newReconService(t)
		l := openLedger(t)
		l.Paid = decimal.RequireFromString("999")
		ledgerRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domledger.DueLedger{*l}, nil)
		cashRepo.On("FindByLedgerReference", mock.Anything, mock.Anything).Return(pairedEntries(t, l), nil)
		ledgerRepo.On("Save", mock.Anything, mock.MatchedBy(func(saved *domledger.DueLedger) bool {
			return saved.Paid.IsZero()
		})).Return(nil)

		resp, err := svc.Repair(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, resp.FixedTotals)
		ledgerRepo.AssertExpectations(t)
	})
}
