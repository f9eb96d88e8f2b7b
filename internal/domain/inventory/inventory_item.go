package inventory

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem tracks the on-hand quantity of a product within an agency's
// inventory pool.
type InventoryItem struct {
	shared.AgencyAggregateRoot
	ProductID   uuid.UUID
	ProductName string
	OnHand      decimal.Decimal
}

// NewInventoryItem creates a new inventory item with an initial quantity
func NewInventoryItem(agencyID, productID uuid.UUID, productName string, initial decimal.Decimal) (*InventoryItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if initial.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}

	return &InventoryItem{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ProductID:           productID,
		ProductName:         productName,
		OnHand:              initial,
	}, nil
}

// Apply records a stock movement against the item and returns the resulting
// transaction. Outbound movements that would drive the balance negative fail
// with ErrInsufficientStock.
func (i *InventoryItem) Apply(direction Direction, quantity decimal.Decimal, sourceType SourceType, sourceID uuid.UUID) (*StockTransaction, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Transaction quantity must be positive")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Unknown stock direction")
	}

	before := i.OnHand
	var after decimal.Decimal
	if direction.IsIncrease() {
		after = before.Add(quantity)
	} else {
		after = before.Sub(quantity)
		if after.IsNegative() {
			return nil, shared.ErrInsufficientStock
		}
	}

	i.OnHand = after
	i.UpdatedAt = time.Now()

	tx := NewStockTransaction(i.AgencyID, i.ID, i.ProductID, direction, quantity, before, after, sourceType, sourceID)
	return tx, nil
}

// ApplyAdjustment records a signed manual correction. A negative delta that
// would drive the balance negative fails with ErrInsufficientStock.
func (i *InventoryItem) ApplyAdjustment(delta decimal.Decimal, sourceID uuid.UUID) (*StockTransaction, error) {
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}

	before := i.OnHand
	after := before.Add(delta)
	if after.IsNegative() {
		return nil, shared.ErrInsufficientStock
	}

	i.OnHand = after
	i.UpdatedAt = time.Now()

	tx := NewStockTransaction(i.AgencyID, i.ID, i.ProductID, DirectionAdjustment, delta.Abs(), before, after, SourceTypeManual, sourceID)
	return tx, nil
}
