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

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by its ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesOrder, error) {
	var model models.SalesOrderModel
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

// FindByIDForAgency finds a sales order by ID within an agency
func (r *GormSalesOrderRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*sales.SalesOrder, error) {
	var model models.SalesOrderModel
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

// FindByOrderNumber finds a sales order by order number within an agency
func (r *GormSalesOrderRepository) FindByOrderNumber(ctx context.Context, agencyID uuid.UUID, orderNumber string) (*sales.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("agency_id = ? AND order_number = ?", agencyID, orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all sales orders with filtering
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesOrder, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SalesOrderModel{}), filter)
	return r.findOrders(query)
}

// FindAllForAgency finds all sales orders for an agency with filtering
func (r *GormSalesOrderRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]sales.SalesOrder, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).Where("agency_id = ?", agencyID),
		filter,
	)
	return r.findOrders(query)
}

// FindByStatus returns a page of an agency's orders in the given status
func (r *GormSalesOrderRepository) FindByStatus(ctx context.Context, agencyID uuid.UUID, status sales.OrderStatus, filter shared.Filter) (*shared.Paginated[sales.SalesOrder], error) {
	base := r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).
		Where("agency_id = ? AND status = ?", agencyID, status)
	return r.paginate(base, filter)
}

// FindPendingApproval returns the agency's approval queue: orders waiting
// for a superuser decision, oldest first.
func (r *GormSalesOrderRepository) FindPendingApproval(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.SalesOrder], error) {
	base := r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).
		Where("agency_id = ? AND status = ? AND requires_approval = ?", agencyID, sales.OrderStatusPending, true)

	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "asc"
	}
	return r.paginate(base, filter)
}

func (r *GormSalesOrderRepository) paginate(base *gorm.DB, filter shared.Filter) (*shared.Paginated[sales.SalesOrder], error) {
	filtered := r.applySearch(base, filter)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	query := applyPagination(applySort(filtered, filter, SalesOrderSortFields), filter)
	orders, err := r.findOrders(query)
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
	page := shared.NewPaginated(orders, total, pageNum, pageSize)
	return &page, nil
}

func (r *GormSalesOrderRepository) findOrders(query *gorm.DB) ([]sales.SalesOrder, error) {
	var rows []models.SalesOrderModel
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]sales.SalesOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Save creates or updates a sales order with its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *sales.SalesOrder) error {
	model := models.SalesOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		return r.syncItems(tx, model)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *sales.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current struct{ Version int }
		if err := tx.Model(&models.SalesOrderModel{}).
			Where("id = ?", order.ID).
			Select("version").
			Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if current.Version != order.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}

		order.Version++
		order.UpdatedAt = time.Now()

		result := tx.Model(&models.SalesOrderModel{}).
			Where("id = ? AND version = ?", order.ID, current.Version).
			Updates(map[string]interface{}{
				"customer_id":       order.CustomerID,
				"customer_name":     order.CustomerName,
				"subtotal":          order.Subtotal,
				"discount_percent":  order.DiscountPercent,
				"discount_amount":   order.DiscountAmount,
				"total":             order.Total,
				"total_invoiced":    order.TotalInvoiced,
				"status":            order.Status,
				"requires_approval": order.RequiresApproval,
				"approved_by":       order.ApprovedBy,
				"approved_at":       order.ApprovedAt,
				"rejected_by":       order.RejectedBy,
				"rejected_at":       order.RejectedAt,
				"reject_reason":     order.RejectReason,
				"closed_at":         order.ClosedAt,
				"cancelled_at":      order.CancelledAt,
				"remark":            order.Remark,
				"version":           order.Version,
				"updated_at":        order.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}

		return r.syncItems(tx, models.SalesOrderModelFromDomain(order))
	})
}

// syncItems reconciles stored line items with the aggregate's current set
func (r *GormSalesOrderRepository) syncItems(tx *gorm.DB, model *models.SalesOrderModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.SalesOrderItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", model.ID).
			Delete(&models.SalesOrderItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].OrderID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete deletes a sales order with its items
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.SalesOrderItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.SalesOrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales orders matching the filter
func (r *GormSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.SalesOrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextOrderNumber generates the next order number for an agency.
// Format: SO-YYYY-NNNNN (e.g., SO-2026-00001)
func (r *GormSalesOrderRepository) NextOrderNumber(ctx context.Context, agencyID uuid.UUID) (string, error) {
	return r.nextNumber(ctx, agencyID, "SO")
}

func (r *GormSalesOrderRepository) nextNumber(ctx context.Context, agencyID uuid.UUID, docPrefix string) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("%s-%d-", docPrefix, year)

	var last models.SalesOrderModel
	err := r.db.WithContext(ctx).
		Model(&models.SalesOrderModel{}).
		Where("agency_id = ? AND order_number LIKE ?", agencyID, prefix+"%").
		Order("order_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.OrderNumber != "" {
		parts := strings.Split(last.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// applyFilter applies search, sort and pagination
func (r *GormSalesOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyPagination(applySort(r.applySearch(query, filter), filter, SalesOrderSortFields), filter)
}

// applySearch applies free-text search and field filters
func (r *GormSalesOrderRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "requires_approval":
			query = query.Where("requires_approval = ?", value)
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

var _ sales.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
