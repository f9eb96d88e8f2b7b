package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
)

func testInvoiceItems(amounts ...int64) []InvoiceItemSpec {
	specs := make([]InvoiceItemSpec, 0, len(amounts))
	for _, a := range amounts {
		specs = append(specs, InvoiceItemSpec{
			ProductID:   uuid.New(),
			ProductName: "Denim Jacket",
			Color:       "Blue",
			Size:        "M",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   valueobject.NewMoneyUSD(decimal.NewFromInt(a)),
		})
	}
	return specs
}

func TestNewInvoice(t *testing.T) {
	agencyID := uuid.New()
	customerID := uuid.New()
	sig := valueobject.NewSignature("data:image/png;base64,iVBOR")
	loc, err := valueobject.NewGeoPointFromFloat(40.7128, -74.0060)
	require.NoError(t, err)

	t.Run("direct invoice", func(t *testing.T) {
		inv, err := NewInvoice(agencyID, "INV-2026-00001", nil, customerID, "Acme Retail",
			testInvoiceItems(300, 200), decimal.NewFromInt(10), sig, loc)
		require.NoError(t, err)
		assert.True(t, inv.IsDirect())
		assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(500)))
		assert.True(t, inv.DiscountAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(450)))
		assert.True(t, inv.Location.IsAvailable())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		issued, ok := events[0].(*InvoiceIssuedEvent)
		require.True(t, ok)
		assert.Equal(t, inv.ID, issued.InvoiceID)
		assert.Len(t, issued.Items, 2)
	})

	t.Run("order-linked invoice", func(t *testing.T) {
		orderID := uuid.New()
		inv, err := NewInvoice(agencyID, "INV-2026-00002", &orderID, customerID, "Acme Retail",
			testInvoiceItems(100), decimal.Zero, sig, loc)
		require.NoError(t, err)
		assert.False(t, inv.IsDirect())
		require.NotNil(t, inv.OrderID)
		assert.Equal(t, orderID, *inv.OrderID)
	})

	t.Run("empty signature is rejected before creation", func(t *testing.T) {
		_, err := NewInvoice(agencyID, "INV-2026-00003", nil, customerID, "Acme Retail",
			testInvoiceItems(100), decimal.Zero, valueobject.EmptySignature(), loc)
		assert.Error(t, err)
	})

	t.Run("whitespace signature is rejected", func(t *testing.T) {
		_, err := NewInvoice(agencyID, "INV-2026-00003", nil, customerID, "Acme Retail",
			testInvoiceItems(100), decimal.Zero, valueobject.NewSignature("   "), loc)
		assert.Error(t, err)
	})

	t.Run("empty items are rejected", func(t *testing.T) {
		_, err := NewInvoice(agencyID, "INV-2026-00004", nil, customerID, "Acme Retail",
			nil, decimal.Zero, sig, loc)
		assert.Error(t, err)
	})

	t.Run("unavailable location is accepted as-is", func(t *testing.T) {
		inv, err := NewInvoice(agencyID, "INV-2026-00005", nil, customerID, "Acme Retail",
			testInvoiceItems(100), decimal.Zero, sig, valueobject.UnavailableGeoPoint())
		require.NoError(t, err)
		assert.False(t, inv.Location.IsAvailable())
	})

	t.Run("line item totals sum to subtotal", func(t *testing.T) {
		inv, err := NewInvoice(agencyID, "INV-2026-00006", nil, customerID, "Acme Retail",
			testInvoiceItems(120, 80, 55), decimal.Zero, sig, loc)
		require.NoError(t, err)
		sum := decimal.Zero
		for _, item := range inv.Items {
			sum = sum.Add(item.Amount)
		}
		assert.True(t, sum.Equal(inv.Subtotal))
	})
}

func TestInvoice_InvoicedQuantityFor(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	sig := valueobject.NewSignature("sig")

	items := []InvoiceItemSpec{
		{ProductID: productA, ProductName: "Jacket", Quantity: decimal.NewFromInt(3), UnitPrice: valueobject.NewMoneyUSD(decimal.NewFromInt(10))},
		{ProductID: productB, ProductName: "Jeans", Quantity: decimal.NewFromInt(5), UnitPrice: valueobject.NewMoneyUSD(decimal.NewFromInt(20))},
	}
	inv, err := NewInvoice(uuid.New(), "INV-2026-00007", nil, uuid.New(), "Acme Retail",
		items, decimal.Zero, sig, valueobject.UnavailableGeoPoint())
	require.NoError(t, err)

	assert.True(t, inv.InvoicedQuantityFor(productA).Equal(decimal.NewFromInt(3)))
	assert.True(t, inv.InvoicedQuantityFor(productB).Equal(decimal.NewFromInt(5)))
	assert.True(t, inv.InvoicedQuantityFor(uuid.New()).IsZero())
}
