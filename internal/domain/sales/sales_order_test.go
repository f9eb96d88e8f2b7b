package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
)

func newTestOrder(t *testing.T) *SalesOrder {
	t.Helper()
	order, err := NewSalesOrder(uuid.New(), "SO-2026-00001", uuid.New(), "Acme Retail")
	require.NoError(t, err)
	return order
}

// addItemTotal adds a single line worth the given amount (quantity 1).
func addItemTotal(t *testing.T, order *SalesOrder, amount int64) {
	t.Helper()
	_, err := order.AddItem(uuid.New(), "Denim Jacket", "Blue", "M", decimal.NewFromInt(1), valueobject.NewMoneyUSD(decimal.NewFromInt(amount)))
	require.NoError(t, err)
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("valid order starts pending with zero totals", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.Subtotal.IsZero())
		assert.True(t, order.Total.IsZero())
		assert.True(t, order.TotalInvoiced.IsZero())
		assert.False(t, order.RequiresApproval)
		assert.Empty(t, order.Items)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name         string
			orderNumber  string
			customerID   uuid.UUID
			customerName string
		}{
			{"empty order number", "", uuid.New(), "Acme"},
			{"empty customer id", "SO-2026-00001", uuid.Nil, "Acme"},
			{"empty customer name", "SO-2026-00001", uuid.New(), ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewSalesOrder(uuid.New(), tt.orderNumber, tt.customerID, tt.customerName)
				assert.Error(t, err)
			})
		}
	})
}

func TestSalesOrder_AddItem(t *testing.T) {
	t.Run("adds item and recalculates totals", func(t *testing.T) {
		order := newTestOrder(t)
		item, err := order.AddItem(uuid.New(), "Denim Jacket", "Blue", "M", decimal.NewFromInt(4), valueobject.NewMoneyUSD(decimal.NewFromInt(250)))
		require.NoError(t, err)
		assert.True(t, item.Amount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(1000)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.Nil, "Denim Jacket", "", "", decimal.NewFromInt(1), valueobject.ZeroUSD())
		assert.Error(t, err)
		_, err = order.AddItem(uuid.New(), "Denim Jacket", "", "", decimal.Zero, valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects items after submit", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(false))
		_, err := order.AddItem(uuid.New(), "Denim Jacket", "", "", decimal.NewFromInt(1), valueobject.ZeroUSD())
		assert.Error(t, err)
	})
}

func TestSalesOrder_Discounts(t *testing.T) {
	t.Run("percent discount recomputes amounts", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 1000)
		require.NoError(t, order.ApplyPercentDiscount(decimal.NewFromInt(25)))
		assert.True(t, order.DiscountAmount.Equal(decimal.NewFromInt(250)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(750)))
	})

	t.Run("fixed discount normalizes to percent", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 1000)
		require.NoError(t, order.ApplyFixedDiscount(valueobject.NewMoneyUSD(decimal.NewFromInt(250))))
		assert.True(t, order.DiscountPercent.Equal(decimal.NewFromInt(25)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(750)))
	})

	t.Run("fixed discount beyond subtotal fails", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		err := order.ApplyFixedDiscount(valueobject.NewMoneyUSD(decimal.NewFromInt(200)))
		assert.Error(t, err)
	})

	t.Run("percent out of range fails", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		assert.Error(t, order.ApplyPercentDiscount(decimal.NewFromInt(101)))
		assert.Error(t, order.ApplyPercentDiscount(decimal.NewFromInt(-1)))
	})
}

func TestSalesOrder_Submit(t *testing.T) {
	t.Run("within limit goes straight to approved", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(false))
		assert.Equal(t, OrderStatusApproved, order.Status)
		assert.False(t, order.RequiresApproval)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*SalesOrderCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, order.ID, created.OrderID)
		assert.False(t, created.RequiresApproval)
	})

	t.Run("over limit stays pending", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(true))
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.RequiresApproval)
	})

	t.Run("no items fails", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.Submit(false))
	})
}

func TestSalesOrder_ApproveReject(t *testing.T) {
	t.Run("approve stamps actor and timestamp", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 1000)
		require.NoError(t, order.ApplyPercentDiscount(decimal.NewFromInt(25)))
		require.NoError(t, order.Submit(true))

		actor := uuid.New()
		require.NoError(t, order.Approve(actor))
		assert.Equal(t, OrderStatusApproved, order.Status)
		require.NotNil(t, order.ApprovedBy)
		assert.Equal(t, actor, *order.ApprovedBy)
		assert.NotNil(t, order.ApprovedAt)
	})

	t.Run("reject cancels the order", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 1000)
		require.NoError(t, order.Submit(true))

		actor := uuid.New()
		require.NoError(t, order.Reject(actor, "discount too aggressive"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		require.NotNil(t, order.RejectedBy)
		assert.Equal(t, actor, *order.RejectedBy)
		assert.Equal(t, "discount too aggressive", order.RejectReason)
	})

	t.Run("approve from non-pending fails", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(false))
		assert.Error(t, order.Approve(uuid.New()))
	})

	t.Run("nil actor fails", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(true))
		assert.Error(t, order.Approve(uuid.Nil))
	})
}

func TestSalesOrder_RecordInvoiced(t *testing.T) {
	approvedOrder := func(t *testing.T, total int64) *SalesOrder {
		t.Helper()
		order := newTestOrder(t)
		addItemTotal(t, order, total)
		require.NoError(t, order.Submit(false))
		order.ClearDomainEvents()
		return order
	}

	t.Run("partial then full invoicing progresses status", func(t *testing.T) {
		order := approvedOrder(t, 750)

		require.NoError(t, order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(500))))
		assert.Equal(t, OrderStatusPartiallyInvoiced, order.Status)
		assert.True(t, order.TotalInvoiced.Equal(decimal.NewFromInt(500)))
		assert.True(t, order.RemainingAmount().Equal(decimal.NewFromInt(250)))

		require.NoError(t, order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(250))))
		assert.Equal(t, OrderStatusInvoiced, order.Status)
		assert.True(t, order.TotalInvoiced.Equal(order.Total))
		assert.False(t, order.IsInvoiceable())
	})

	t.Run("exact total in one step goes straight to invoiced", func(t *testing.T) {
		order := approvedOrder(t, 750)
		require.NoError(t, order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(750))))
		assert.Equal(t, OrderStatusInvoiced, order.Status)
	})

	t.Run("invoiced total can never exceed order total", func(t *testing.T) {
		order := approvedOrder(t, 750)
		require.NoError(t, order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(500))))
		err := order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(300)))
		assert.Error(t, err)
		assert.True(t, order.TotalInvoiced.Equal(decimal.NewFromInt(500)), "failed call must not move the total")
		assert.Equal(t, OrderStatusPartiallyInvoiced, order.Status)
	})

	t.Run("pending order cannot be invoiced", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(true))
		assert.Error(t, order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(50))))
	})

	t.Run("zero amount fails", func(t *testing.T) {
		order := approvedOrder(t, 100)
		assert.Error(t, order.RecordInvoiced(valueobject.ZeroUSD()))
	})
}

func TestSalesOrder_CloseAndCancel(t *testing.T) {
	t.Run("close from partially invoiced", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(false))
		require.NoError(t, order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(40))))
		require.NoError(t, order.Close())
		assert.Equal(t, OrderStatusClosed, order.Status)
		assert.NotNil(t, order.ClosedAt)
	})

	t.Run("close from invoiced fails", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(false))
		require.NoError(t, order.RecordInvoiced(valueobject.NewMoneyUSD(decimal.NewFromInt(100))))
		assert.Error(t, order.Close())
	})

	t.Run("cancel only from pending", func(t *testing.T) {
		order := newTestOrder(t)
		addItemTotal(t, order, 100)
		require.NoError(t, order.Submit(true))
		require.NoError(t, order.Cancel("customer backed out"))
		assert.Equal(t, OrderStatusCancelled, order.Status)

		approved := newTestOrder(t)
		addItemTotal(t, approved, 100)
		require.NoError(t, approved.Submit(false))
		assert.Error(t, approved.Cancel("too late"))
	})
}

// Full lifecycle: subtotal 1000, discount 25% over the limit, pending,
// superuser approval, then totals 750.
func TestSalesOrder_ApprovalLifecycle(t *testing.T) {
	order := newTestOrder(t)
	_, err := order.AddItem(uuid.New(), "Denim Jacket", "Blue", "M", decimal.NewFromInt(10), valueobject.NewMoneyUSD(decimal.NewFromInt(100)))
	require.NoError(t, err)
	require.NoError(t, order.ApplyPercentDiscount(decimal.NewFromInt(25)))
	require.NoError(t, order.Submit(true))

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.True(t, order.RequiresApproval)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, order.DiscountAmount.Equal(decimal.NewFromInt(250)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(750)))

	superuser := uuid.New()
	require.NoError(t, order.Approve(superuser))
	assert.Equal(t, OrderStatusApproved, order.Status)
	assert.True(t, order.IsInvoiceable())
}

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusApproved, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusClosed, true},
		{OrderStatusPending, OrderStatusInvoiced, false},
		{OrderStatusApproved, OrderStatusPartiallyInvoiced, true},
		{OrderStatusApproved, OrderStatusInvoiced, true},
		{OrderStatusApproved, OrderStatusClosed, true},
		{OrderStatusApproved, OrderStatusPending, false},
		{OrderStatusPartiallyInvoiced, OrderStatusInvoiced, true},
		{OrderStatusPartiallyInvoiced, OrderStatusClosed, true},
		{OrderStatusPartiallyInvoiced, OrderStatusApproved, false},
		{OrderStatusInvoiced, OrderStatusClosed, false},
		{OrderStatusClosed, OrderStatusApproved, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, OrderStatusInvoiced.IsTerminal())
	assert.True(t, OrderStatusClosed.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusApproved.IsTerminal())
	assert.False(t, OrderStatus("BOGUS").IsValid())
}
