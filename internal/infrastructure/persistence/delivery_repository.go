package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery by its ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Delivery, error) {
	var model models.DeliveryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAgency finds a delivery by ID within an agency
func (r *GormDeliveryRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*sales.Delivery, error) {
	var model models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds all deliveries for an invoice
func (r *GormDeliveryRepository) FindByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]*sales.Delivery, error) {
	var rows []models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND invoice_id = ?", agencyID, invoiceID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	deliveries := make([]*sales.Delivery, len(rows))
	for i := range rows {
		deliveries[i] = rows[i].ToDomain()
	}
	return deliveries, nil
}

// FindByAgent returns a page of deliveries assigned to an agent
func (r *GormDeliveryRepository) FindByAgent(ctx context.Context, agencyID, agentID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.Delivery], error) {
	base := r.db.WithContext(ctx).Model(&models.DeliveryModel{}).
		Where("agency_id = ? AND agent_id = ?", agencyID, agentID)

	filtered := r.applySearch(base, filter)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	query := applyPagination(applySort(filtered, filter, DeliverySortFields), filter)
	deliveries, err := r.findDeliveries(query)
	if err != nil {
		return nil, err
	}

	pageNum := filter.Page
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	page := shared.NewPaginated(deliveries, total, pageNum, pageSize)
	return &page, nil
}

// FindAll finds all deliveries with filtering
func (r *GormDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Delivery, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DeliveryModel{}), filter)
	return r.findDeliveries(query)
}

// FindAllForAgency finds all deliveries for an agency with filtering
func (r *GormDeliveryRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]sales.Delivery, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DeliveryModel{}).Where("agency_id = ?", agencyID),
		filter,
	)
	return r.findDeliveries(query)
}

func (r *GormDeliveryRepository) findDeliveries(query *gorm.DB) ([]sales.Delivery, error) {
	var rows []models.DeliveryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	deliveries := make([]sales.Delivery, len(rows))
	for i := range rows {
		deliveries[i] = *rows[i].ToDomain()
	}
	return deliveries, nil
}

// Save creates or updates a delivery
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *sales.Delivery) error {
	model := models.DeliveryModelFromDomain(delivery)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDeliveryRepository) SaveWithLock(ctx context.Context, delivery *sales.Delivery) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current struct{ Version int }
		if err := tx.Model(&models.DeliveryModel{}).
			Where("id = ?", delivery.ID).
			Select("version").
			Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if current.Version != delivery.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The delivery has been modified by another user")
		}

		delivery.Version++
		delivery.UpdatedAt = time.Now()

		model := models.DeliveryModelFromDomain(delivery)
		result := tx.Model(&models.DeliveryModel{}).
			Where("id = ? AND version = ?", delivery.ID, current.Version).
			Updates(map[string]interface{}{
				"status":             model.Status,
				"location_latitude":  model.LocationLatitude,
				"location_longitude": model.LocationLongitude,
				"signature":          model.Signature,
				"receiver_name":      model.ReceiverName,
				"receiver_phone":     model.ReceiverPhone,
				"dispatched_at":      model.DispatchedAt,
				"delivered_at":       model.DeliveredAt,
				"failed_at":          model.FailedAt,
				"failure_reason":     model.FailureReason,
				"cancelled_at":       model.CancelledAt,
				"version":            delivery.Version,
				"updated_at":         delivery.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The delivery has been modified by another user")
		}
		return nil
	})
}

// Delete deletes a delivery
func (r *GormDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeliveryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts deliveries matching the filter
func (r *GormDeliveryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.DeliveryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDeliveryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyPagination(applySort(r.applySearch(query, filter), filter, DeliverySortFields), filter)
}

func (r *GormDeliveryRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("receiver_name ILIKE ? OR receiver_phone ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "invoice_id":
			query = query.Where("invoice_id = ?", value)
		case "agent_id":
			query = query.Where("agent_id = ?", value)
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

var _ sales.DeliveryRepository = (*GormDeliveryRepository)(nil)
