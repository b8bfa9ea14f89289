package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/duebook/backend/internal/domain/cashbook"
	domledger "github.com/duebook/backend/internal/domain/ledger"
	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockDueLedgerRepository is a mock implementation of ledger.DueLedgerRepository
type MockDueLedgerRepository struct {
	mock.Mock
}

func (m *MockDueLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domledger.DueLedger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domledger.DueLedger), args.Error(1)
}

func (m *MockDueLedgerRepository) FindByMobile(ctx context.Context, mobile string) (*domledger.DueLedger, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domledger.DueLedger), args.Error(1)
}

func (m *MockDueLedgerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domledger.DueLedger, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domledger.DueLedger), args.Error(1)
}

func (m *MockDueLedgerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDueLedgerRepository) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDueLedgerRepository) Save(ctx context.Context, l *domledger.DueLedger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockDueLedgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDueLedgerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCashEntryRepository is a mock implementation of cashbook.CashEntryRepository
type MockCashEntryRepository struct {
	mock.Mock
}

func (m *MockCashEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashbook.CashEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashbook.CashEntry), args.Error(1)
}

func (m *MockCashEntryRepository) FindByLogReference(ctx context.Context, logID uuid.UUID) (*cashbook.CashEntry, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashbook.CashEntry), args.Error(1)
}

func (m *MockCashEntryRepository) FindByLedgerReference(ctx context.Context, ledgerID uuid.UUID) ([]cashbook.CashEntry, error) {
	args := m.Called(ctx, ledgerID)
	return args.Get(0).([]cashbook.CashEntry), args.Error(1)
}

func (m *MockCashEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cashbook.CashEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]cashbook.CashEntry), args.Error(1)
}

func (m *MockCashEntryRepository) Save(ctx context.Context, e *cashbook.CashEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCashEntryRepository) DeleteByLogReference(ctx context.Context, logID uuid.UUID) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}

func (m *MockCashEntryRepository) DeleteByLedgerReference(ctx context.Context, ledgerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ledgerID)
	return args.Get(0).(int64), args.Error(1)
}

// fakeUnitOfWork runs the function against the given repos without a
// real transaction, recording whether it was invoked.
type fakeUnitOfWork struct {
	repos    Repos
	executed bool
	failWith error
}

func (f *fakeUnitOfWork) Execute(ctx context.Context, fn func(r Repos) error) error {
	f.executed = true
	if f.failWith != nil {
		return f.failWith
	}
	return fn(f.repos)
}

// =============================================================================
// Fixtures
// =============================================================================

func newService(t *testing.T) (*TransactionService, *MockDueLedgerRepository, *MockCashEntryRepository, *fakeUnitOfWork) {
	t.Helper()
	ledgerRepo := new(MockDueLedgerRepository)
	cashRepo := new(MockCashEntryRepository)
	uow := &fakeUnitOfWork{repos: Repos{Ledgers: ledgerRepo, CashEntries: cashRepo}}
	svc := NewTransactionService(uow, ledgerRepo, cashRepo, nil)
	return svc, ledgerRepo, cashRepo, uow
}

func openLedger(t *testing.T) *domledger.DueLedger {
	t.Helper()
	l, err := domledger.NewDueLedger("Rahim Uddin", "01712345678",
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("500"))
	require.NoError(t, err)
	l.ClearDomainEvents()
	return l
}

// =============================================================================
// RegisterCustomer
// =============================================================================

func TestTransactionServiceRegisterCustomer(t *testing.T) {
	req := RegisterCustomerRequest{
		Name:       "Rahim Uddin",
		Mobile:     "01712345678",
		Date:       time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		OpeningDue: decimal.RequireFromString("500"),
	}

	t.Run("writes ledger and paired withdrawal in one unit", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, uow := newService(t)
		ledgerRepo.On("FindByMobile", mock.Anything, req.Mobile).Return(nil, shared.ErrNotFound)
		ledgerRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.DueLedger")).Return(nil)
		cashRepo.On("Save", mock.Anything, mock.MatchedBy(func(e *cashbook.CashEntry) bool {
			return e.Direction == cashbook.DirectionWithdraw &&
				e.Amount.Equal(decimal.RequireFromString("500")) &&
				e.IsPaired()
		})).Return(nil)

		resp, err := svc.RegisterCustomer(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, uow.executed)
		assert.Equal(t, "Rahim Uddin", resp.Name)
		assert.True(t, resp.Balance.Equal(decimal.RequireFromString("500")))
		require.Len(t, resp.Logs, 1)
		ledgerRepo.AssertExpectations(t)
		cashRepo.AssertExpectations(t)
	})

	t.Run("registers without a mobile and skips the duplicate check", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, uow := newService(t)
		ledgerRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.DueLedger")).Return(nil)
		cashRepo.On("Save", mock.Anything, mock.AnythingOfType("*cashbook.CashEntry")).Return(nil)

		noMobile := req
		noMobile.Mobile = ""
		resp, err := svc.RegisterCustomer(context.Background(), noMobile)

		require.NoError(t, err)
		assert.True(t, uow.executed)
		assert.Empty(t, resp.Mobile)
		ledgerRepo.AssertNotCalled(t, "FindByMobile", mock.Anything, mock.Anything)
	})

	t.Run("oversized portrait never reaches persistence", func(t *testing.T) {
		svc, ledgerRepo, _, uow := newService(t)
		ledgerRepo.On("FindByMobile", mock.Anything, req.Mobile).Return(nil, shared.ErrNotFound)

		bad := req
		bad.Portrait = strings.Repeat("A", 3*1024*1024+1)
		_, err := svc.RegisterCustomer(context.Background(), bad)

		assert.Error(t, err)
		assert.False(t, uow.executed)
	})

	t.Run("duplicate mobile is rejected before any write", func(t *testing.T) {
		svc, ledgerRepo, _, uow := newService(t)
		ledgerRepo.On("FindByMobile", mock.Anything, req.Mobile).Return(openLedger(t), nil)

		_, err := svc.RegisterCustomer(context.Background(), req)

		assert.Error(t, err)
		assert.False(t, uow.executed)
	})

	t.Run("invalid opening due never reaches persistence", func(t *testing.T) {
		svc, ledgerRepo, _, uow := newService(t)
		ledgerRepo.On("FindByMobile", mock.Anything, req.Mobile).Return(nil, shared.ErrNotFound)

		bad := req
		bad.OpeningDue = decimal.Zero
		_, err := svc.RegisterCustomer(context.Background(), bad)

		assert.Error(t, err)
		assert.False(t, uow.executed)
	})
}

// =============================================================================
// RecordTransaction
// =============================================================================

func TestTransactionServiceRecordTransaction(t *testing.T) {
	t.Run("payment writes a paired deposit", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, _ := newService(t)
		l := openLedger(t)
		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		ledgerRepo.On("Save", mock.Anything, l).Return(nil)
		cashRepo.On("Save", mock.Anything, mock.MatchedBy(func(e *cashbook.CashEntry) bool {
			ref, ok := e.Reference()
			return ok && ref.LedgerID == l.ID &&
				e.Direction == cashbook.DirectionDeposit &&
				e.Amount.Equal(decimal.RequireFromString("200"))
		})).Return(nil)

		resp, err := svc.RecordTransaction(context.Background(), l.ID, RecordTransactionRequest{
			Date:   time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
			Type:   "ADD",
			Amount: decimal.RequireFromString("200"),
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.LogID)
		assert.True(t, resp.Ledger.Balance.Equal(decimal.RequireFromString("300")))
		cashRepo.AssertExpectations(t)
	})

	t.Run("further due writes a paired withdrawal", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, _ := newService(t)
		l := openLedger(t)
		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		ledgerRepo.On("Save", mock.Anything, l).Return(nil)
		cashRepo.On("Save", mock.Anything, mock.MatchedBy(func(e *cashbook.CashEntry) bool {
			return e.Direction == cashbook.DirectionWithdraw
		})).Return(nil)

		resp, err := svc.RecordTransaction(context.Background(), l.ID, RecordTransactionRequest{
			Date:   time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
			Type:   "DUE",
			Amount: decimal.RequireFromString("100"),
		})

		require.NoError(t, err)
		assert.True(t, resp.Ledger.Balance.Equal(decimal.RequireFromString("600")))
	})

	t.Run("cash write failure fails the whole operation", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, _ := newService(t)
		l := openLedger(t)
		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		ledgerRepo.On("Save", mock.Anything, l).Return(nil)
		cashRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := svc.RecordTransaction(context.Background(), l.ID, RecordTransactionRequest{
			Date:   time.Now(),
			Type:   "ADD",
			Amount: decimal.RequireFromString("10"),
		})

		assert.Error(t, err)
	})

	t.Run("unknown ledger returns not found", func(t *testing.T) {
		svc, ledgerRepo, _, _ := newService(t)
		id := uuid.New()
		ledgerRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.RecordTransaction(context.Background(), id, RecordTransactionRequest{
			Date:   time.Now(),
			Type:   "ADD",
			Amount: decimal.RequireFromString("10"),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invalid amount never reaches persistence", func(t *testing.T) {
		svc, ledgerRepo, _, uow := newService(t)
		l := openLedger(t)
		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)

		_, err := svc.RecordTransaction(context.Background(), l.ID, RecordTransactionRequest{
			Date:   time.Now(),
			Type:   "ADD",
			Amount: decimal.RequireFromString("-5"),
		})

		assert.Error(t, err)
		assert.False(t, uow.executed)
	})
}

// =============================================================================
// DeleteLog
// =============================================================================

func TestTransactionServiceDeleteLog(t *testing.T) {
	t.Run("removes log and paired entry", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, _ := newService(t)
		l := openLedger(t)
		log, err := l.AppendLog(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
			domledger.TransactionTypeAdd, decimal.RequireFromString("150"))
		require.NoError(t, err)
		l.ClearDomainEvents()

		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		ledgerRepo.On("Save", mock.Anything, l).Return(nil)
		cashRepo.On("DeleteByLogReference", mock.Anything, log.ID).Return(nil)

		resp, err := svc.DeleteLog(context.Background(), l.ID, log.ID)

		require.NoError(t, err)
		assert.True(t, resp.CashEntryRemoved)
		assert.True(t, resp.Ledger.Balance.Equal(decimal.RequireFromString("500")))
		cashRepo.AssertExpectations(t)
	})

	t.Run("missing paired entry is tolerated", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, _ := newService(t)
		l := openLedger(t)
		log, err := l.AppendLog(time.Now(), domledger.TransactionTypeAdd, decimal.RequireFromString("50"))
		require.NoError(t, err)

		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		ledgerRepo.On("Save", mock.Anything, l).Return(nil)
		cashRepo.On("DeleteByLogReference", mock.Anything, log.ID).Return(shared.ErrReferenceNotFound)

		resp, err := svc.DeleteLog(context.Background(), l.ID, log.ID)

		require.NoError(t, err)
		assert.False(t, resp.CashEntryRemoved)
	})

	t.Run("unknown log id returns not found", func(t *testing.T) {
		svc, ledgerRepo, _, uow := newService(t)
		l := openLedger(t)
		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)

		_, err := svc.DeleteLog(context.Background(), l.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.False(t, uow.executed)
	})
}

// =============================================================================
// DeleteCustomer
// =============================================================================

func TestTransactionServiceDeleteCustomer(t *testing.T) {
	t.Run("removes ledger and all paired entries", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, _ := newService(t)
		l := openLedger(t)
		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		cashRepo.On("DeleteByLedgerReference", mock.Anything, l.ID).Return(int64(3), nil)
		ledgerRepo.On("Delete", mock.Anything, l.ID).Return(nil)

		resp, err := svc.DeleteCustomer(context.Background(), l.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.CashEntriesRemoved)
		ledgerRepo.AssertExpectations(t)
		cashRepo.AssertExpectations(t)
	})

	t.Run("ledger delete failure aborts the unit", func(t *testing.T) {
		svc, ledgerRepo, cashRepo, _ := newService(t)
		l := openLedger(t)
		ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		cashRepo.On("DeleteByLedgerReference", mock.Anything, l.ID).Return(int64(1), nil)
		ledgerRepo.On("Delete", mock.Anything, l.ID).Return(errors.New("constraint violation"))

		_, err := svc.DeleteCustomer(context.Background(), l.ID)
		assert.Error(t, err)
	})
}

// =============================================================================
// Queries
// =============================================================================

func TestTransactionServiceStatement(t *testing.T) {
	svc, ledgerRepo, _, _ := newService(t)
	l := openLedger(t)
	_, err := l.AppendLog(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		domledger.TransactionTypeAdd, decimal.RequireFromString("200"))
	require.NoError(t, err)
	ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)

	lines, err := svc.Statement(context.Background(), l.ID)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "ADD", lines[0].Type)
	assert.True(t, lines[0].Balance.Equal(decimal.RequireFromString("300")))
}

func TestTransactionServiceListLedgers(t *testing.T) {
	svc, ledgerRepo, _, _ := newService(t)
	l := openLedger(t)
	ledgerRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]domledger.DueLedger{*l}, nil)
	ledgerRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	items, total, err := svc.ListLedgers(context.Background(), LedgerListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Rahim Uddin", items[0].Name)
}

func TestTransactionServiceOutstandingTotal(t *testing.T) {
	svc, ledgerRepo, _, _ := newService(t)
	ledgerRepo.On("TotalOutstanding", mock.Anything).Return(decimal.RequireFromString("1234.50"), nil)

	total, err := svc.OutstandingTotal(context.Background())

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("1234.50")))
}

func TestTransactionServiceUpdatePortrait(t *testing.T) {
	svc, ledgerRepo, _, _ := newService(t)
	l := openLedger(t)
	ledgerRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
	ledgerRepo.On("Save", mock.Anything, l).Return(nil)

	resp, err := svc.UpdatePortrait(context.Background(), l.ID, UpdatePortraitRequest{Portrait: "portraits/rahim.jpg"})

	require.NoError(t, err)
	assert.Equal(t, "portraits/rahim.jpg", resp.Portrait)
}
