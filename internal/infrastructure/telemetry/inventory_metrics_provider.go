package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryMetricsProvider implements InventoryMetricsProvider using GORM.
// It queries the inventory_items table directly for aggregated metrics.
type GormInventoryMetricsProvider struct {
	db *gorm.DB
}

// NewGormInventoryMetricsProvider creates a new GormInventoryMetricsProvider.
func NewGormInventoryMetricsProvider(db *gorm.DB) *GormInventoryMetricsProvider {
	return &GormInventoryMetricsProvider{db: db}
}

// GetZeroStockCount returns the number of an agency's products with no stock on hand.
func (p *GormInventoryMetricsProvider) GetZeroStockCount(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("inventory_items").
		Where("agency_id = ? AND on_hand <= 0", agencyID).
		Count(&count).Error

	return count, err
}

// GetOnHandTotal returns the agency's total on-hand quantity across all products.
func (p *GormInventoryMetricsProvider) GetOnHandTotal(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).
		Table("inventory_items").
		Select("COALESCE(SUM(on_hand), 0)").
		Where("agency_id = ?", agencyID).
		Scan(&total).Error

	return total, err
}

// GormAgencyProvider implements AgencyProvider using GORM.
type GormAgencyProvider struct {
	db *gorm.DB
}

// NewGormAgencyProvider creates a new GormAgencyProvider.
func NewGormAgencyProvider(db *gorm.DB) *GormAgencyProvider {
	return &GormAgencyProvider{db: db}
}

// GetActiveAgencyIDs returns all active agency IDs.
func (p *GormAgencyProvider) GetActiveAgencyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("agencies").
		Select("id").
		Where("active = ?", true).
		Find(&ids).Error

	return ids, err
}
