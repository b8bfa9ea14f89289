package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/duebook/backend/internal/domain/cashbook"
	"github.com/duebook/backend/internal/domain/shared"
	"github.com/duebook/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCashEntryRepository implements CashEntryRepository using GORM.
// Paired entries are matched through the reference tags in the note
// column; there is no foreign key between the two books.
type GormCashEntryRepository struct {
	db *gorm.DB
}

// NewGormCashEntryRepository creates a new GormCashEntryRepository
func NewGormCashEntryRepository(db *gorm.DB) *GormCashEntryRepository {
	return &GormCashEntryRepository{db: db}
}

var _ cashbook.CashEntryRepository = (*GormCashEntryRepository)(nil)

// FindByID finds a cash entry by its ID
func (r *GormCashEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashbook.CashEntry, error) {
	var model models.CashEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLogReference finds the entry whose note carries the log tag
func (r *GormCashEntryRepository) FindByLogReference(ctx context.Context, logID uuid.UUID) (*cashbook.CashEntry, error) {
	var model models.CashEntryModel
	if err := r.db.WithContext(ctx).
		Where("note LIKE ?", "%"+cashbook.LogTag(logID)+"%").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrReferenceNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLedgerReference finds all entries whose note carries the ledger tag
func (r *GormCashEntryRepository) FindByLedgerReference(ctx context.Context, ledgerID uuid.UUID) ([]cashbook.CashEntry, error) {
	var entryModels []models.CashEntryModel
	if err := r.db.WithContext(ctx).
		Where("note LIKE ?", "%"+cashbook.LedgerTag(ledgerID)+"%").
		Order("date ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]cashbook.CashEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// FindAll finds all cash entries matching the filter
func (r *GormCashEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cashbook.CashEntry, error) {
	var entryModels []models.CashEntryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CashEntryModel{}), filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]cashbook.CashEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Save persists a cash entry
func (r *GormCashEntryRepository) Save(ctx context.Context, e *cashbook.CashEntry) error {
	model := models.CashEntryModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteByLogReference removes the entry paired with a ledger log
func (r *GormCashEntryRepository) DeleteByLogReference(ctx context.Context, logID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("note LIKE ?", "%"+cashbook.LogTag(logID)+"%").
		Delete(&models.CashEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrReferenceNotFound
	}
	return nil
}

// DeleteByLedgerReference removes every entry paired with a ledger
func (r *GormCashEntryRepository) DeleteByLedgerReference(ctx context.Context, ledgerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("note LIKE ?", "%"+cashbook.LedgerTag(ledgerID)+"%").
		Delete(&models.CashEntryModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter options to the query
func (r *GormCashEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("note ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "direction":
			query = query.Where("direction = ?", value)
		}
	}

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
		query = query.Order("date DESC")
	}

	return query
}
