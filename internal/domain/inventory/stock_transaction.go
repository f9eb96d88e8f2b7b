package inventory

import (
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction classifies a stock movement
type Direction string

const (
	DirectionSaleOut    Direction = "SALE_OUT"
	DirectionReturnIn   Direction = "RETURN_IN"
	DirectionAdjustment Direction = "ADJUSTMENT"
)

func (d Direction) IsValid() bool {
	switch d {
	case DirectionSaleOut, DirectionReturnIn, DirectionAdjustment:
		return true
	}
	return false
}

// IsIncrease reports whether the direction adds stock back to the pool.
func (d Direction) IsIncrease() bool {
	return d == DirectionReturnIn || d == DirectionAdjustment
}

func (d Direction) String() string {
	return string(d)
}

// SourceType identifies the document that caused a stock movement
type SourceType string

const (
	SourceTypeInvoice SourceType = "INVOICE"
	SourceTypeReturn  SourceType = "RETURN"
	SourceTypeManual  SourceType = "MANUAL"
)

func (s SourceType) String() string {
	return string(s)
}

// StockTransaction is an immutable ledger entry for one stock movement.
// Balance snapshots are captured at write time so the ledger can be audited
// without replaying history.
type StockTransaction struct {
	shared.BaseEntity
	AgencyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction     Direction
	Quantity      decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	SourceType    SourceType
	SourceID      uuid.UUID `gorm:"type:uuid"`
}

// NewStockTransaction builds a ledger entry; callers are expected to have
// validated the movement via InventoryItem.Apply.
func NewStockTransaction(agencyID, itemID, productID uuid.UUID, direction Direction, quantity, before, after decimal.Decimal, sourceType SourceType, sourceID uuid.UUID) *StockTransaction {
	return &StockTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		AgencyID:      agencyID,
		ItemID:        itemID,
		ProductID:     productID,
		Direction:     direction,
		Quantity:      quantity,
		BalanceBefore: before,
		BalanceAfter:  after,
		SourceType:    sourceType,
		SourceID:      sourceID,
	}
}
