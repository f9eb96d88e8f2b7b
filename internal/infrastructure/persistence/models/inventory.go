package models

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
type InventoryItemModel struct {
	AgencyAggregateModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_agency_product,priority:2"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	OnHand      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		AgencyAggregateRoot: m.ToDomainAgencyAggregateRoot(),
		ProductID:           m.ProductID,
		ProductName:         m.ProductName,
		OnHand:              m.OnHand,
	}
}

// FromDomain populates the persistence model from a domain InventoryItem.
func (m *InventoryItemModel) FromDomain(item *inventory.InventoryItem) {
	m.FromDomainAgencyAggregateRoot(item.AgencyAggregateRoot)
	m.ProductID = item.ProductID
	m.ProductName = item.ProductName
	m.OnHand = item.OnHand
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem.
func InventoryItemModelFromDomain(item *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(item)
	return m
}

// StockTransactionModel is the persistence model for the StockTransaction entity.
type StockTransactionModel struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key"`
	AgencyID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Direction     inventory.Direction  `gorm:"type:varchar(20);not null"`
	Quantity      decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	BalanceBefore decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	SourceType    inventory.SourceType `gorm:"type:varchar(20);not null;index:idx_stock_tx_source,priority:1"`
	SourceID      uuid.UUID            `gorm:"type:uuid;index:idx_stock_tx_source,priority:2"`
	CreatedAt     time.Time            `gorm:"not null;index"`
	UpdatedAt     time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockTransactionModel) TableName() string {
	return "stock_transactions"
}

// ToDomain converts the persistence model to a domain StockTransaction.
func (m *StockTransactionModel) ToDomain() *inventory.StockTransaction {
	tx := &inventory.StockTransaction{
		AgencyID:      m.AgencyID,
		ItemID:        m.ItemID,
		ProductID:     m.ProductID,
		Direction:     m.Direction,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		SourceType:    m.SourceType,
		SourceID:      m.SourceID,
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	tx.UpdatedAt = m.UpdatedAt
	return tx
}

// StockTransactionModelFromDomain creates a persistence model from a domain StockTransaction.
func StockTransactionModelFromDomain(tx *inventory.StockTransaction) *StockTransactionModel {
	return &StockTransactionModel{
		ID:            tx.ID,
		AgencyID:      tx.AgencyID,
		ItemID:        tx.ItemID,
		ProductID:     tx.ProductID,
		Direction:     tx.Direction,
		Quantity:      tx.Quantity,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		SourceType:    tx.SourceType,
		SourceID:      tx.SourceID,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}
