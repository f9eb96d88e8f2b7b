package inventory

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterItemRequest creates an inventory item for a product
type RegisterItemRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	ProductName     string          `json:"product_name" binding:"required,min=1,max=200"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
}

// AdjustStockRequest applies a manual stock adjustment
type AdjustStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// ItemResponse represents an inventory item in responses
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	AgencyID    uuid.UUID       `json:"agency_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	OnHand      decimal.Decimal `json:"on_hand"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToItemResponse converts a domain InventoryItem to a response DTO
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		AgencyID:    item.AgencyID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		OnHand:      item.OnHand,
		UpdatedAt:   item.UpdatedAt,
		Version:     item.Version,
	}
}

// TransactionResponse represents a ledger entry in responses
type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	ItemID        uuid.UUID       `json:"item_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Direction     string          `json:"direction"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	SourceType    string          `json:"source_type"`
	SourceID      uuid.UUID       `json:"source_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToTransactionResponse converts a domain StockTransaction to a response DTO
func ToTransactionResponse(tx *inventory.StockTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		ItemID:        tx.ItemID,
		ProductID:     tx.ProductID,
		Direction:     tx.Direction.String(),
		Quantity:      tx.Quantity,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		SourceType:    tx.SourceType.String(),
		SourceID:      tx.SourceID,
		CreatedAt:     tx.CreatedAt,
	}
}
