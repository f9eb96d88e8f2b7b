package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAgency finds an inventory item by ID within an agency
func (r *GormInventoryItemRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
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

// FindByProduct finds an agency's inventory item for a product
func (r *GormInventoryItemRepository) FindByProduct(ctx context.Context, agencyID, productID uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND product_id = ?", agencyID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all inventory items with filtering
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryItemModel{}), filter)
	return r.findItems(query)
}

// FindAllForAgency finds all inventory items for an agency with filtering
func (r *GormInventoryItemRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]inventory.InventoryItem, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).Where("agency_id = ?", agencyID),
		filter,
	)
	return r.findItems(query)
}

func (r *GormInventoryItemRepository) findItems(query *gorm.DB) ([]inventory.InventoryItem, error) {
	var rows []models.InventoryItemModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.InventoryItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// Save creates or updates an inventory item
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	model := models.InventoryItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormInventoryItemRepository) SaveWithLock(ctx context.Context, item *inventory.InventoryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current struct{ Version int }
		if err := tx.Model(&models.InventoryItemModel{}).
			Where("id = ?", item.ID).
			Select("version").
			Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if current.Version != item.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The inventory item has been modified by another user")
		}

		item.Version++
		item.UpdatedAt = time.Now()

		result := tx.Model(&models.InventoryItemModel{}).
			Where("id = ? AND version = ?", item.ID, current.Version).
			Updates(map[string]interface{}{
				"product_name": item.ProductName,
				"on_hand":      item.OnHand,
				"version":      item.Version,
				"updated_at":   item.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The inventory item has been modified by another user")
		}
		return nil
	})
}

// Delete deletes an inventory item
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InventoryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts inventory items matching the filter
func (r *GormInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.InventoryItemModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyPagination(applySort(r.applySearch(query, filter), filter, InventorySortFields), filter)
}

func (r *GormInventoryItemRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("product_name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	return query
}

// GormStockTransactionRepository implements StockTransactionRepository using GORM
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// Save appends a stock transaction to the ledger
func (r *GormStockTransactionRepository) Save(ctx context.Context, tx *inventory.StockTransaction) error {
	model := models.StockTransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindBySource finds all transactions caused by a source document
func (r *GormStockTransactionRepository) FindBySource(ctx context.Context, agencyID uuid.UUID, sourceType inventory.SourceType, sourceID uuid.UUID) ([]*inventory.StockTransaction, error) {
	var rows []models.StockTransactionModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND source_type = ? AND source_id = ?", agencyID, sourceType, sourceID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	txs := make([]*inventory.StockTransaction, len(rows))
	for i := range rows {
		txs[i] = rows[i].ToDomain()
	}
	return txs, nil
}

// FindByItem returns a page of an inventory item's movement history
func (r *GormStockTransactionRepository) FindByItem(ctx context.Context, agencyID, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.StockTransaction], error) {
	base := r.db.WithContext(ctx).Model(&models.StockTransactionModel{}).
		Where("agency_id = ? AND item_id = ?", agencyID, itemID)

	for key, value := range filter.Filters {
		switch key {
		case "direction":
			base = base.Where("direction = ?", value)
		case "source_type":
			base = base.Where("source_type = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				base = base.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				base = base.Where("created_at <= ?", t)
			}
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	query := applyPagination(applySort(base, filter, StockTransactionSortFields), filter)

	var rows []models.StockTransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	txs := make([]inventory.StockTransaction, len(rows))
	for i := range rows {
		txs[i] = *rows[i].ToDomain()
	}

	pageNum := filter.Page
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	page := shared.NewPaginated(txs, total, pageNum, pageSize)
	return &page, nil
}

var (
	_ inventory.InventoryItemRepository    = (*GormInventoryItemRepository)(nil)
	_ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
)
