package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/duebook/backend/internal/domain/shared"
	"github.com/duebook/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDueLedgerRepository implements DueLedgerRepository using GORM
type GormDueLedgerRepository struct {
	db *gorm.DB
}

// NewGormDueLedgerRepository creates a new GormDueLedgerRepository
func NewGormDueLedgerRepository(db *gorm.DB) *GormDueLedgerRepository {
	return &GormDueLedgerRepository{db: db}
}

var _ ledger.DueLedgerRepository = (*GormDueLedgerRepository)(nil)

// FindByID finds a ledger by its ID, logs included
func (r *GormDueLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.DueLedger, error) {
	var model models.DueLedgerModel
	if err := r.db.WithContext(ctx).Preload("Logs").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMobile finds a ledger by the customer's mobile number
func (r *GormDueLedgerRepository) FindByMobile(ctx context.Context, mobile string) (*ledger.DueLedger, error) {
	if mobile == "" {
		return nil, shared.NewDomainError("INVALID_MOBILE", "Mobile cannot be empty")
	}
	var model models.DueLedgerModel
	if err := r.db.WithContext(ctx).Preload("Logs").
		Where("mobile = ?", mobile).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all ledgers matching the filter
func (r *GormDueLedgerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.DueLedger, error) {
	var ledgerModels []models.DueLedgerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DueLedgerModel{}).Preload("Logs"), filter)

	if err := query.Find(&ledgerModels).Error; err != nil {
		return nil, err
	}

	ledgers := make([]ledger.DueLedger, len(ledgerModels))
	for i, model := range ledgerModels {
		ledgers[i] = *model.ToDomain()
	}
	return ledgers, nil
}

// Count counts ledgers matching the filter
func (r *GormDueLedgerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DueLedgerModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalOutstanding sums amount minus paid across all ledgers
func (r *GormDueLedgerRepository) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.DueLedgerModel{}).
		Select("COALESCE(SUM(amount - paid), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Save persists a ledger and its logs. Logs are replaced wholesale so
// deleted entries disappear from the table.
func (r *GormDueLedgerRepository) Save(ctx context.Context, l *ledger.DueLedger) error {
	model := models.DueLedgerModelFromDomain(l)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Logs").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("ledger_id = ?", l.ID).Delete(&models.TransactionLogModel{}).Error; err != nil {
			return err
		}
		if len(model.Logs) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model.Logs).Error
	})
}

// Delete removes a ledger; logs cascade at the database level
func (r *GormDueLedgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DueLedgerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists checks if a ledger exists
func (r *GormDueLedgerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DueLedgerModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormDueLedgerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("customer_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDueLedgerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("customer_name ILIKE ? OR mobile ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "settled":
			if value == true {
				query = query.Where("amount - paid <= 0")
			} else {
				query = query.Where("amount - paid > 0")
			}
		case "mobile":
			query = query.Where("mobile = ?", value)
		}
	}

	return query
}
