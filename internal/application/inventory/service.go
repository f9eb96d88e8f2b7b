package inventory

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service maintains the agency inventory pool and its movement ledger. It
// implements the stock adjustment boundary used by invoicing and returns.
type Service struct {
	itemRepo inventory.InventoryItemRepository
	txRepo   inventory.StockTransactionRepository
}

// NewService creates a new inventory Service
func NewService(itemRepo inventory.InventoryItemRepository, txRepo inventory.StockTransactionRepository) *Service {
	return &Service{
		itemRepo: itemRepo,
		txRepo:   txRepo,
	}
}

// Decrement removes stock for a sale. The movement and the ledger entry are
// written under optimistic locking on the item.
func (s *Service) Decrement(ctx context.Context, agencyID, productID uuid.UUID, quantity decimal.Decimal, sourceType inventory.SourceType, sourceID uuid.UUID) error {
	return s.apply(ctx, agencyID, productID, inventory.DirectionSaleOut, quantity, sourceType, sourceID)
}

// Increment restores stock for a return
func (s *Service) Increment(ctx context.Context, agencyID, productID uuid.UUID, quantity decimal.Decimal, sourceType inventory.SourceType, sourceID uuid.UUID) error {
	return s.apply(ctx, agencyID, productID, inventory.DirectionReturnIn, quantity, sourceType, sourceID)
}

// Adjust applies a signed manual correction to the on-hand balance and
// returns the updated item. The sign of the delta is recoverable from the
// ledger entry's before/after balances.
func (s *Service) Adjust(ctx context.Context, agencyID, productID uuid.UUID, delta decimal.Decimal, actorID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByProduct(ctx, agencyID, productID)
	if err != nil {
		return nil, err
	}

	tx, err := item.ApplyAdjustment(delta, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Register creates an inventory item for a product with an initial quantity
func (s *Service) Register(ctx context.Context, agencyID, productID uuid.UUID, productName string, initial decimal.Decimal) (*ItemResponse, error) {
	if existing, err := s.itemRepo.FindByProduct(ctx, agencyID, productID); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	item, err := inventory.NewInventoryItem(agencyID, productID, productName, initial)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByProduct retrieves the inventory item for a product
func (s *Service) GetByProduct(ctx context.Context, agencyID, productID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByProduct(ctx, agencyID, productID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves inventory items with pagination
func (s *Service) List(ctx context.Context, agencyID uuid.UUID, page, pageSize int) (*shared.Paginated[ItemResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	items, err := s.itemRepo.FindAllForAgency(ctx, agencyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListTransactions retrieves the movement ledger for an item
func (s *Service) ListTransactions(ctx context.Context, agencyID, itemID uuid.UUID, page, pageSize int) (*shared.Paginated[TransactionResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	result, err := s.txRepo.FindByItem(ctx, agencyID, itemID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToTransactionResponse(&result.Items[i])
	}
	mapped := shared.NewPaginated(responses, result.Total, result.Page, result.PageSize)
	return &mapped, nil
}

func (s *Service) apply(ctx context.Context, agencyID, productID uuid.UUID, direction inventory.Direction, quantity decimal.Decimal, sourceType inventory.SourceType, sourceID uuid.UUID) error {
	item, err := s.itemRepo.FindByProduct(ctx, agencyID, productID)
	if err != nil {
		return err
	}

	tx, err := item.Apply(direction, quantity, sourceType, sourceID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return err
	}
	return s.txRepo.Save(ctx, tx)
}
