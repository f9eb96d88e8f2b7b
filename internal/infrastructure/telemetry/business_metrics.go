package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the field-sales system.
// It tracks order activity, approval decisions, invoicing and stock health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	orderCreatedTotal      *Counter
	orderApprovalTotal     *Counter
	invoiceIssuedTotal     *Counter
	invoiceAmountTotal     *Counter
	returnProcessedTotal   *Counter
	deliveryCompletedTotal *Counter

	inventoryZeroStockCount *Gauge
	inventoryOnHandTotal    *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	inventoryProvider InventoryMetricsProvider
}

// InventoryMetricsProvider provides inventory data for periodic metrics
// collection without depending on the inventory domain directly.
type InventoryMetricsProvider interface {
	// GetZeroStockCount returns the number of an agency's products with no stock on hand
	GetZeroStockCount(ctx context.Context, agencyID uuid.UUID) (int64, error)

	// GetOnHandTotal returns the agency's total on-hand quantity across all products
	GetOnHandTotal(ctx context.Context, agencyID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	InventoryProvider InventoryMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		inventoryProvider: cfg.InventoryProvider,
	}

	var err error

	bm.orderCreatedTotal, err = NewCounter(
		cfg.Meter,
		"fieldsales_order_created_total",
		"Total number of sales orders created",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderApprovalTotal, err = NewCounter(
		cfg.Meter,
		"fieldsales_order_approval_total",
		"Total number of superuser approval decisions",
		"{decisions}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceIssuedTotal, err = NewCounter(
		cfg.Meter,
		"fieldsales_invoice_issued_total",
		"Total number of invoices issued",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceAmountTotal, err = NewCounter(
		cfg.Meter,
		"fieldsales_invoice_amount_total",
		"Total invoiced amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.returnProcessedTotal, err = NewCounter(
		cfg.Meter,
		"fieldsales_return_processed_total",
		"Total number of sales returns processed",
		"{returns}",
	)
	if err != nil {
		return nil, err
	}

	bm.deliveryCompletedTotal, err = NewCounter(
		cfg.Meter,
		"fieldsales_delivery_completed_total",
		"Total number of deliveries in a terminal state",
		"{deliveries}",
	)
	if err != nil {
		return nil, err
	}

	bm.inventoryZeroStockCount, err = NewGauge(
		cfg.Meter,
		"fieldsales_inventory_zero_stock_count",
		"Number of products with no stock on hand",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.inventoryOnHandTotal, err = NewGauge(
		cfg.Meter,
		"fieldsales_inventory_on_hand_total",
		"Total on-hand quantity across all products",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// ApprovalAction represents the outcome of an approval decision for labeling.
type ApprovalAction string

const (
	ApprovalActionApproved ApprovalAction = "approved"
	ApprovalActionRejected ApprovalAction = "rejected"
)

// InvoiceKind distinguishes order-backed invoices from direct sales.
type InvoiceKind string

const (
	InvoiceKindOrder  InvoiceKind = "order"
	InvoiceKindDirect InvoiceKind = "direct"
)

// RecordOrderCreated records a sales order creation event.
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, agencyID uuid.UUID, requiresApproval bool) {
	status := "approved"
	if requiresApproval {
		status = "pending_approval"
	}
	bm.orderCreatedTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
		AttrOrderStatus.String(status),
	)
}

// RecordApprovalDecision records a superuser approval or rejection.
func (bm *BusinessMetrics) RecordApprovalDecision(ctx context.Context, agencyID uuid.UUID, action ApprovalAction) {
	bm.orderApprovalTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
		AttrApprovalAction.String(string(action)),
	)
}

// RecordInvoiceIssued records an issued invoice and its amount.
// Amount is converted to cents for the counter.
func (bm *BusinessMetrics) RecordInvoiceIssued(ctx context.Context, agencyID uuid.UUID, kind InvoiceKind, amount decimal.Decimal) {
	bm.invoiceIssuedTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
		AttrInvoiceKind.String(string(kind)),
	)
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.invoiceAmountTotal.Add(ctx, cents,
		AttrAgencyID.String(agencyID.String()),
		AttrInvoiceKind.String(string(kind)),
	)
}

// RecordReturnProcessed records a processed sales return.
func (bm *BusinessMetrics) RecordReturnProcessed(ctx context.Context, agencyID uuid.UUID) {
	bm.returnProcessedTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
	)
}

// RecordDeliveryCompleted records a delivery reaching a terminal state.
func (bm *BusinessMetrics) RecordDeliveryCompleted(ctx context.Context, agencyID uuid.UUID, status string) {
	bm.deliveryCompletedTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
		AttrDeliveryStatus.String(status),
	)
}

// RecordZeroStockCount records the number of products with no stock.
func (bm *BusinessMetrics) RecordZeroStockCount(ctx context.Context, agencyID uuid.UUID, count int64) {
	bm.inventoryZeroStockCount.Record(ctx, count,
		AttrAgencyID.String(agencyID.String()),
	)
}

// RecordOnHandTotal records the agency's total on-hand quantity.
func (bm *BusinessMetrics) RecordOnHandTotal(ctx context.Context, agencyID uuid.UUID, total int64) {
	bm.inventoryOnHandTotal.Record(ctx, total,
		AttrAgencyID.String(agencyID.String()),
	)
}

// AgencyProvider provides agency IDs for periodic metrics collection.
type AgencyProvider interface {
	GetActiveAgencyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// Non-blocking; use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, agencyProvider AgencyProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, agencyProvider, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, agencyProvider AgencyProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectInventoryMetrics(ctx, agencyProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectInventoryMetrics(ctx, agencyProvider)
		}
	}
}

func (bm *BusinessMetrics) collectInventoryMetrics(ctx context.Context, agencyProvider AgencyProvider) {
	if bm.inventoryProvider == nil {
		bm.logger.Debug("No inventory provider configured, skipping inventory metrics collection")
		return
	}

	agencyIDs, err := agencyProvider.GetActiveAgencyIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get agency IDs for metrics collection", zap.Error(err))
		return
	}

	for _, agencyID := range agencyIDs {
		bm.collectAgencyInventoryMetrics(ctx, agencyID)
	}
}

func (bm *BusinessMetrics) collectAgencyInventoryMetrics(ctx context.Context, agencyID uuid.UUID) {
	zeroCount, err := bm.inventoryProvider.GetZeroStockCount(ctx, agencyID)
	if err != nil {
		bm.logger.Warn("Failed to get zero stock count for agency",
			zap.String("agency_id", agencyID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordZeroStockCount(ctx, agencyID, zeroCount)
	}

	onHand, err := bm.inventoryProvider.GetOnHandTotal(ctx, agencyID)
	if err != nil {
		bm.logger.Warn("Failed to get on-hand total for agency",
			zap.String("agency_id", agencyID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordOnHandTotal(ctx, agencyID, onHand)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
