package persistence

import (
	"context"
	"testing"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.InventoryItemModel{}, &models.StockTransactionModel{})
	require.NoError(t, err)

	return db
}

func TestGormInventoryItemRepository(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormInventoryItemRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by product", func(t *testing.T) {
		agencyID := uuid.New()
		productID := uuid.New()
		item, err := inventory.NewInventoryItem(agencyID, productID, "Summer Tee", decimal.NewFromInt(100))
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByProduct(ctx, agencyID, productID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)
		assert.True(t, found.OnHand.Equal(decimal.NewFromInt(100)))
	})

	t.Run("returns not found for unknown product", func(t *testing.T) {
		_, err := repo.FindByProduct(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save with lock detects concurrent modification", func(t *testing.T) {
		agencyID := uuid.New()
		item, err := inventory.NewInventoryItem(agencyID, uuid.New(), "Winter Coat", decimal.NewFromInt(50))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, item))

		stale := *item

		_, err = item.Apply(inventory.DirectionSaleOut, decimal.NewFromInt(10), inventory.SourceTypeInvoice, uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, item))
		assert.Equal(t, 2, item.Version)

		_, err = stale.Apply(inventory.DirectionSaleOut, decimal.NewFromInt(5), inventory.SourceTypeInvoice, uuid.New())
		require.NoError(t, err)
		err = repo.SaveWithLock(ctx, &stale)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, found.OnHand.Equal(decimal.NewFromInt(40)))
	})

	t.Run("save with lock reports missing item as not found", func(t *testing.T) {
		item, err := inventory.NewInventoryItem(uuid.New(), uuid.New(), "Ghost Item", decimal.NewFromInt(1))
		require.NoError(t, err)

		err = repo.SaveWithLock(ctx, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockTransactionRepository(t *testing.T) {
	db := setupInventoryTestDB(t)
	itemRepo := NewGormInventoryItemRepository(db)
	txRepo := NewGormStockTransactionRepository(db)
	ctx := context.Background()

	agencyID := uuid.New()
	item, err := inventory.NewInventoryItem(agencyID, uuid.New(), "Summer Tee", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, itemRepo.Save(ctx, item))

	invoiceID := uuid.New()

	t.Run("records and finds by source", func(t *testing.T) {
		tx, err := item.Apply(inventory.DirectionSaleOut, decimal.NewFromInt(20), inventory.SourceTypeInvoice, invoiceID)
		require.NoError(t, err)
		require.NoError(t, txRepo.Save(ctx, tx))

		found, err := txRepo.FindBySource(ctx, agencyID, inventory.SourceTypeInvoice, invoiceID)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, inventory.DirectionSaleOut, found[0].Direction)
		assert.True(t, found[0].BalanceBefore.Equal(decimal.NewFromInt(100)))
		assert.True(t, found[0].BalanceAfter.Equal(decimal.NewFromInt(80)))
	})

	t.Run("pages an item's movement history", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			tx, err := item.Apply(inventory.DirectionReturnIn, decimal.NewFromInt(1), inventory.SourceTypeReturn, uuid.New())
			require.NoError(t, err)
			require.NoError(t, txRepo.Save(ctx, tx))
		}

		page, err := txRepo.FindByItem(ctx, agencyID, item.ID, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Total)
		assert.Len(t, page.Items, 2)
	})

	t.Run("filters history by direction", func(t *testing.T) {
		page, err := txRepo.FindByItem(ctx, agencyID, item.ID, shared.Filter{
			Filters: map[string]interface{}{"direction": inventory.DirectionReturnIn},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})
}
