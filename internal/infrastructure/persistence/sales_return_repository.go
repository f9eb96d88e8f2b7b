package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesReturnRepository implements SalesReturnRepository using GORM
type GormSalesReturnRepository struct {
	db *gorm.DB
}

// NewGormSalesReturnRepository creates a new GormSalesReturnRepository
func NewGormSalesReturnRepository(db *gorm.DB) *GormSalesReturnRepository {
	return &GormSalesReturnRepository{db: db}
}

// FindByID finds a sales return by its ID
func (r *GormSalesReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesReturn, error) {
	var model models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAgency finds a sales return by ID within an agency
func (r *GormSalesReturnRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*sales.SalesReturn, error) {
	var model models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds all returns raised against an invoice
func (r *GormSalesReturnRepository) FindByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]*sales.SalesReturn, error) {
	var rows []models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("agency_id = ? AND invoice_id = ?", agencyID, invoiceID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	returns := make([]*sales.SalesReturn, len(rows))
	for i := range rows {
		returns[i] = rows[i].ToDomain()
	}
	return returns, nil
}

// FindAll finds all sales returns with filtering
func (r *GormSalesReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesReturn, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SalesReturnModel{}), filter)
	return r.findReturns(query)
}

// FindAllForAgency finds all sales returns for an agency with filtering
func (r *GormSalesReturnRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]sales.SalesReturn, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SalesReturnModel{}).Where("agency_id = ?", agencyID),
		filter,
	)
	return r.findReturns(query)
}

func (r *GormSalesReturnRepository) findReturns(query *gorm.DB) ([]sales.SalesReturn, error) {
	var rows []models.SalesReturnModel
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}
	returns := make([]sales.SalesReturn, len(rows))
	for i := range rows {
		returns[i] = *rows[i].ToDomain()
	}
	return returns, nil
}

// Save creates or updates a sales return with its items
func (r *GormSalesReturnRepository) Save(ctx context.Context, ret *sales.SalesReturn) error {
	model := models.SalesReturnModelFromDomain(ret)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		for i := range model.Items {
			model.Items[i].ReturnID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a sales return with its items
func (r *GormSalesReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("return_id = ?", id).Delete(&models.SalesReturnItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.SalesReturnModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales returns matching the filter
func (r *GormSalesReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.SalesReturnModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextReturnNumber generates the next return number for an agency.
// Format: RT-YYYY-NNNNN (e.g., RT-2026-00001)
func (r *GormSalesReturnRepository) NextReturnNumber(ctx context.Context, agencyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("RT-%d-", year)

	var last models.SalesReturnModel
	err := r.db.WithContext(ctx).
		Model(&models.SalesReturnModel{}).
		Where("agency_id = ? AND return_number LIKE ?", agencyID, prefix+"%").
		Order("return_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.ReturnNumber != "" {
		parts := strings.Split(last.ReturnNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormSalesReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyPagination(applySort(r.applySearch(query, filter), filter, SalesReturnSortFields), filter)
}

func (r *GormSalesReturnRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "invoice_id":
			query = query.Where("invoice_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

var _ sales.SalesReturnRepository = (*GormSalesReturnRepository)(nil)
