package inventory

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryItemRepository persists inventory items
type InventoryItemRepository interface {
	shared.AgencyRepository[InventoryItem]
	FindByProduct(ctx context.Context, agencyID, productID uuid.UUID) (*InventoryItem, error)
	SaveWithLock(ctx context.Context, item *InventoryItem) error
}

// StockTransactionRepository persists the stock movement ledger
type StockTransactionRepository interface {
	Save(ctx context.Context, tx *StockTransaction) error
	FindBySource(ctx context.Context, agencyID uuid.UUID, sourceType SourceType, sourceID uuid.UUID) ([]*StockTransaction, error)
	FindByItem(ctx context.Context, agencyID, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockTransaction], error)
}
