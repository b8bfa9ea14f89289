package ledger

import (
	"context"
	"errors"

	"github.com/duebook/backend/internal/domain/cashbook"
	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles due-book operations. Every mutation that
// touches both books runs inside a single unit of work: the ledger
// write and the paired cash book write commit together or not at all.
type TransactionService struct {
	uow        UnitOfWork
	ledgerRepo ledger.DueLedgerRepository
	cashRepo   cashbook.CashEntryRepository
	notifier   Notifier
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	uow UnitOfWork,
	ledgerRepo ledger.DueLedgerRepository,
	cashRepo cashbook.CashEntryRepository,
	notifier Notifier,
) *TransactionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &TransactionService{
		uow:        uow,
		ledgerRepo: ledgerRepo,
		cashRepo:   cashRepo,
		notifier:   notifier,
	}
}

// RegisterCustomer opens a ledger for a new customer with an opening
// due, writing the matching cash withdrawal in the same transaction.
func (s *TransactionService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*LedgerResponse, error) {
	// Mobile is optional; uniqueness only applies when one is given.
	if req.Mobile != "" {
		existing, err := s.ledgerRepo.FindByMobile(ctx, req.Mobile)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this mobile already exists")
		}
	}

	l, err := ledger.NewDueLedger(req.Name, req.Mobile, req.Date, req.OpeningDue)
	if err != nil {
		return nil, err
	}
	if req.Portrait != "" {
		if err := l.UpdatePortrait(req.Portrait); err != nil {
			return nil, err
		}
	}

	openingLog := l.Logs[0]
	entry, err := cashbook.NewPairedEntry(openingLog, cashbook.NewReference(l.ID, openingLog.ID), l.CustomerName)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(r Repos) error {
		if err := r.Ledgers.Save(ctx, l); err != nil {
			return err
		}
		return r.CashEntries.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, l.GetDomainEvents())
	l.ClearDomainEvents()

	response := ToLedgerResponse(l)
	return &response, nil
}

// RecordTransaction appends a DUE or ADD entry to a customer's ledger
// and writes the paired cash entry atomically. The new log's id is
// returned so clients can keep their selection stable.
func (s *TransactionService) RecordTransaction(ctx context.Context, ledgerID uuid.UUID, req RecordTransactionRequest) (*RecordTransactionResponse, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	log, err := l.AppendLog(req.Date, ledger.TransactionType(req.Type), req.Amount)
	if err != nil {
		return nil, err
	}

	entry, err := cashbook.NewPairedEntry(log, cashbook.NewReference(l.ID, log.ID), l.CustomerName)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(r Repos) error {
		if err := r.Ledgers.Save(ctx, l); err != nil {
			return err
		}
		return r.CashEntries.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, l.GetDomainEvents())
	l.ClearDomainEvents()

	return &RecordTransactionResponse{
		Ledger: ToLedgerResponse(l),
		LogID:  log.ID,
	}, nil
}

// DeleteLog removes a transaction and its paired cash entry. A missing
// cash entry is tolerated: the ledger side still commits and the
// response reports that no entry was removed.
func (s *TransactionService) DeleteLog(ctx context.Context, ledgerID, logID uuid.UUID) (*DeleteLogResponse, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	if _, err := l.RemoveLog(logID); err != nil {
		return nil, err
	}

	entryRemoved := true
	err = s.uow.Execute(ctx, func(r Repos) error {
		if err := r.Ledgers.Save(ctx, l); err != nil {
			return err
		}
		if err := r.CashEntries.DeleteByLogReference(ctx, logID); err != nil {
			if errors.Is(err, shared.ErrReferenceNotFound) {
				entryRemoved = false
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, l.GetDomainEvents())
	l.ClearDomainEvents()

	return &DeleteLogResponse{
		Ledger:           ToLedgerResponse(l),
		CashEntryRemoved: entryRemoved,
	}, nil
}

// DeleteCustomer closes a ledger, removing the full transaction history
// and every paired cash entry in one transaction.
func (s *TransactionService) DeleteCustomer(ctx context.Context, ledgerID uuid.UUID) (*DeleteCustomerResponse, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	l.AddDomainEvent(ledger.NewDueLedgerClosedEvent(l.ID, l.CustomerName, l.Balance()))

	var removed int64
	err = s.uow.Execute(ctx, func(r Repos) error {
		n, err := r.CashEntries.DeleteByLedgerReference(ctx, ledgerID)
		if err != nil {
			return err
		}
		removed = n
		return r.Ledgers.Delete(ctx, ledgerID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, l.GetDomainEvents())

	return &DeleteCustomerResponse{CashEntriesRemoved: removed}, nil
}

// GetLedger retrieves a full customer ledger
func (s *TransactionService) GetLedger(ctx context.Context, ledgerID uuid.UUID) (*LedgerResponse, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	response := ToLedgerResponse(l)
	return &response, nil
}

// ListLedgers retrieves customer ledgers with filtering and pagination
func (s *TransactionService) ListLedgers(ctx context.Context, filter LedgerListFilter) ([]LedgerListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	ledgers, err := s.ledgerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledgerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LedgerListResponse, 0, len(ledgers))
	for i := range ledgers {
		responses = append(responses, ToLedgerListResponse(&ledgers[i]))
	}
	return responses, total, nil
}

// Statement returns a customer's full history with running balances,
// newest first.
func (s *TransactionService) Statement(ctx context.Context, ledgerID uuid.UUID) ([]StatementLineResponse, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return ToStatementResponse(l.Statement()), nil
}

// OutstandingTotal sums the open balance across all customers
func (s *TransactionService) OutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	return s.ledgerRepo.TotalOutstanding(ctx)
}

// UpdatePortrait replaces a customer's portrait image reference
func (s *TransactionService) UpdatePortrait(ctx context.Context, ledgerID uuid.UUID, req UpdatePortraitRequest) (*LedgerResponse, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	if err := l.UpdatePortrait(req.Portrait); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Save(ctx, l); err != nil {
		return nil, err
	}

	response := ToLedgerResponse(l)
	return &response, nil
}

// ListCashEntries retrieves cash book entries with filtering and pagination
func (s *TransactionService) ListCashEntries(ctx context.Context, filter CashEntryListFilter) ([]CashEntryResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, err := s.cashRepo.FindAll(ctx, shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "date",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}

	responses := make([]CashEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToCashEntryResponse(&entries[i]))
	}
	return responses, nil
}
