package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSalesOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.SalesOrderModel{}, &models.SalesOrderItemModel{})
	require.NoError(t, err)

	return db
}

func newTestOrder(t *testing.T, agencyID uuid.UUID, orderNumber string) *sales.SalesOrder {
	order, err := sales.NewSalesOrder(agencyID, orderNumber, uuid.New(), "Corner Store")
	require.NoError(t, err)

	_, err = order.AddItem(uuid.New(), "Summer Tee", "Blue", "M", decimal.NewFromInt(10), valueobject.NewMoneyUSDFromFloat(15.50))
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Summer Tee", "Red", "L", decimal.NewFromInt(5), valueobject.NewMoneyUSDFromFloat(15.50))
	require.NoError(t, err)

	return order
}

func TestGormSalesOrderRepository_SaveAndFind(t *testing.T) {
	db := setupSalesOrderTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	t.Run("saves new order with items", func(t *testing.T) {
		agencyID := uuid.New()
		order := newTestOrder(t, agencyID, "SO-2026-00001")

		err := repo.Save(ctx, order)
		require.NoError(t, err)

		found, err := repo.FindByIDForAgency(ctx, agencyID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
		assert.Equal(t, "SO-2026-00001", found.OrderNumber)
		assert.Equal(t, "Corner Store", found.CustomerName)
		assert.Len(t, found.Items, 2)
		assert.True(t, found.Subtotal.Equal(decimal.NewFromFloat(232.5)))
		assert.Equal(t, sales.OrderStatusPending, found.Status)
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("does not find order across agencies", func(t *testing.T) {
		agencyID := uuid.New()
		order := newTestOrder(t, agencyID, "SO-2026-00002")
		require.NoError(t, repo.Save(ctx, order))

		_, err := repo.FindByIDForAgency(ctx, uuid.New(), order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds order by number", func(t *testing.T) {
		agencyID := uuid.New()
		order := newTestOrder(t, agencyID, "SO-2026-00042")
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByOrderNumber(ctx, agencyID, "SO-2026-00042")
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})
}

func TestGormSalesOrderRepository_ItemSync(t *testing.T) {
	db := setupSalesOrderTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	agencyID := uuid.New()
	order := newTestOrder(t, agencyID, "SO-2026-00003")
	require.NoError(t, repo.Save(ctx, order))

	// drop the second line and save again
	order.Items = order.Items[:1]
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)
	assert.Equal(t, order.Items[0].ID, found.Items[0].ID)
}

func TestGormSalesOrderRepository_SaveWithLock(t *testing.T) {
	db := setupSalesOrderTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	t.Run("increments version on success", func(t *testing.T) {
		agencyID := uuid.New()
		order := newTestOrder(t, agencyID, "SO-2026-00004")
		require.NoError(t, repo.Save(ctx, order))

		require.NoError(t, order.Submit(false))
		err := repo.SaveWithLock(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, 2, order.Version)

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version)
		assert.Equal(t, sales.OrderStatusApproved, found.Status)
	})

	t.Run("rejects stale version", func(t *testing.T) {
		agencyID := uuid.New()
		order := newTestOrder(t, agencyID, "SO-2026-00005")
		require.NoError(t, repo.Save(ctx, order))

		stale := *order
		require.NoError(t, order.Submit(false))
		require.NoError(t, repo.SaveWithLock(ctx, order))

		err := repo.SaveWithLock(ctx, &stale)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		order := newTestOrder(t, uuid.New(), "SO-2026-00006")

		err := repo.SaveWithLock(ctx, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSalesOrderRepository_FindPendingApproval(t *testing.T) {
	db := setupSalesOrderTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	agencyID := uuid.New()

	waiting := newTestOrder(t, agencyID, "SO-2026-00010")
	require.NoError(t, waiting.Submit(true))
	require.NoError(t, repo.Save(ctx, waiting))

	approved := newTestOrder(t, agencyID, "SO-2026-00011")
	require.NoError(t, approved.Submit(false))
	require.NoError(t, repo.Save(ctx, approved))

	page, err := repo.FindPendingApproval(ctx, agencyID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, waiting.ID, page.Items[0].ID)
	assert.True(t, page.Items[0].RequiresApproval)
}

func TestGormSalesOrderRepository_FindByStatus(t *testing.T) {
	db := setupSalesOrderTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	agencyID := uuid.New()
	for i := 0; i < 3; i++ {
		order := newTestOrder(t, agencyID, fmt.Sprintf("SO-2026-0002%d", i))
		require.NoError(t, order.Submit(false))
		require.NoError(t, repo.Save(ctx, order))
	}
	pending := newTestOrder(t, agencyID, "SO-2026-00029")
	require.NoError(t, repo.Save(ctx, pending))

	page, err := repo.FindByStatus(ctx, agencyID, sales.OrderStatusApproved, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalPages)
}

func TestGormSalesOrderRepository_NextOrderNumber(t *testing.T) {
	db := setupSalesOrderTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	agencyID := uuid.New()
	year := time.Now().Year()

	t.Run("starts at one for a fresh agency", func(t *testing.T) {
		number, err := repo.NextOrderNumber(ctx, agencyID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SO-%d-00001", year), number)
	})

	t.Run("continues from the highest existing number", func(t *testing.T) {
		order := newTestOrder(t, agencyID, fmt.Sprintf("SO-%d-00007", year))
		require.NoError(t, repo.Save(ctx, order))

		number, err := repo.NextOrderNumber(ctx, agencyID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SO-%d-00008", year), number)
	})

	t.Run("sequences are per agency", func(t *testing.T) {
		number, err := repo.NextOrderNumber(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SO-%d-00001", year), number)
	})
}

func TestGormSalesOrderRepository_Delete(t *testing.T) {
	db := setupSalesOrderTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	t.Run("deletes order with items", func(t *testing.T) {
		agencyID := uuid.New()
		order := newTestOrder(t, agencyID, "SO-2026-00030")
		require.NoError(t, repo.Save(ctx, order))

		require.NoError(t, repo.Delete(ctx, order.ID))

		_, err := repo.FindByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var itemCount int64
		require.NoError(t, db.Model(&models.SalesOrderItemModel{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
		assert.Equal(t, int64(0), itemCount)
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
