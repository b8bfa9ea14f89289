package ledger

import (
	"context"
	"time"

	"github.com/duebook/backend/internal/domain/cashbook"
	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/duebook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReconciliationAppService walks every ledger, compares it against the
// paired cash entries and reports drift. Repair recreates missing cash
// entries, prunes orphans and rewrites stale cached totals; it is the
// recovery path for partial failures, not part of normal operation.
type ReconciliationAppService struct {
	uow        UnitOfWork
	ledgerRepo ledger.DueLedgerRepository
	cashRepo   cashbook.CashEntryRepository
	checker    *cashbook.ReconciliationService
	logger     *zap.Logger
}

// NewReconciliationAppService creates a new ReconciliationAppService
func NewReconciliationAppService(
	uow UnitOfWork,
	ledgerRepo ledger.DueLedgerRepository,
	cashRepo cashbook.CashEntryRepository,
	logger *zap.Logger,
) *ReconciliationAppService {
	return &ReconciliationAppService{
		uow:        uow,
		ledgerRepo: ledgerRepo,
		cashRepo:   cashRepo,
		checker:    cashbook.NewReconciliationService(),
		logger:     logger,
	}
}

// Audit compares every ledger against the cash book and returns the
// reports that found drift. A clean book yields an empty report list.
func (s *ReconciliationAppService) Audit(ctx context.Context) (*AuditResponse, error) {
	ledgers, err := s.allLedgers(ctx)
	if err != nil {
		return nil, err
	}

	result := &AuditResponse{
		CheckedAt: time.Now(),
		Ledgers:   len(ledgers),
		Reports:   []DriftReportResponse{},
	}

	for i := range ledgers {
		l := &ledgers[i]
		entries, err := s.cashRepo.FindByLedgerReference(ctx, l.ID)
		if err != nil {
			return nil, err
		}

		report := s.checker.Compare(l, entries)
		if report.Clean() {
			continue
		}

		s.logger.Warn("due ledger out of step with cash book",
			zap.String("ledger_id", l.ID.String()),
			zap.String("customer", l.CustomerName),
			zap.Int("drifts", len(report.Drifts)))
		result.Reports = append(result.Reports, ToDriftReportResponse(report, l.CustomerName))
	}

	return result, nil
}

// Repair audits and fixes drift ledger by ledger. The ledger is the
// book of record: missing cash entries are recreated from logs, orphan
// entries are removed, stale cached totals are recomputed from logs.
func (s *ReconciliationAppService) Repair(ctx context.Context) (*RepairResponse, error) {
	ledgers, err := s.allLedgers(ctx)
	if err != nil {
		return nil, err
	}

	result := &RepairResponse{}
	for i := range ledgers {
		l := &ledgers[i]
		entries, err := s.cashRepo.FindByLedgerReference(ctx, l.ID)
		if err != nil {
			return nil, err
		}

		report := s.checker.Compare(l, entries)
		if report.Clean() {
			continue
		}

		if err := s.repairLedger(ctx, l, report, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *ReconciliationAppService) repairLedger(ctx context.Context, l *ledger.DueLedger, report cashbook.DriftReport, result *RepairResponse) error {
	return s.uow.Execute(ctx, func(r Repos) error {
		totalsFixed := false
		for _, drift := range report.Drifts {
			switch drift.Kind {
			case cashbook.DriftMissingEntry:
				log, ok := l.FindLog(drift.LogID)
				if !ok {
					continue
				}
				entry, err := cashbook.NewPairedEntry(log, cashbook.NewReference(l.ID, log.ID), l.CustomerName)
				if err != nil {
					return err
				}
				if err := r.CashEntries.Save(ctx, entry); err != nil {
					return err
				}
				result.RecreatedEntries++

			case cashbook.DriftOrphanEntry:
				if err := r.CashEntries.DeleteByLogReference(ctx, drift.LogID); err != nil {
					return err
				}
				result.RemovedOrphans++

			case cashbook.DriftAmountMismatch, cashbook.DriftDirectionMismatch:
				// rewrite the pair from the log
				log, ok := l.FindLog(drift.LogID)
				if !ok {
					continue
				}
				if err := r.CashEntries.DeleteByLogReference(ctx, drift.LogID); err != nil {
					return err
				}
				entry, err := cashbook.NewPairedEntry(log, cashbook.NewReference(l.ID, log.ID), l.CustomerName)
				if err != nil {
					return err
				}
				if err := r.CashEntries.Save(ctx, entry); err != nil {
					return err
				}
				result.RecreatedEntries++

			case cashbook.DriftCachedTotals:
				l.Amount, l.Paid = ledger.RecomputeTotals(l.Logs)
				if err := r.Ledgers.Save(ctx, l); err != nil {
					return err
				}
				totalsFixed = true
			}
		}
		if totalsFixed {
			result.FixedTotals++
		}
		return nil
	})
}

func (s *ReconciliationAppService) allLedgers(ctx context.Context) ([]ledger.DueLedger, error) {
	const pageSize = 200
	var all []ledger.DueLedger
	for page := 1; ; page++ {
		batch, err := s.ledgerRepo.FindAll(ctx, shared.Filter{
			Page:     page,
			PageSize: pageSize,
			OrderBy:  "created_at",
			OrderDir: "asc",
		})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}
