package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/graminroute/hub/pkg/activities"
)

type PoolDispatchInput struct {
	PoolID       string   `json:"pool_id"`
	DiscountTier string   `json:"discount_tier"`
	OrderIDs     []string `json:"order_ids"`
	RetailerIDs  []string `json:"retailer_ids"`
}

type PoolDispatchResult struct {
	PoolID     string   `json:"pool_id"`
	Status     string   `json:"status"`
	Dispatched int      `json:"dispatched"`
	Failed     []string `json:"failed,omitempty"`
}

// PoolDispatchWorkflow moves a pool from awaiting_approval to
// in_transit by marking every member order in_transit. The writes are
// independent, so they run in parallel with per-order retries; an order
// whose write still fails after retries is reported in the result and
// left for the caller, never rolled back. An empty pool is a no-op.
func PoolDispatchWorkflow(ctx workflow.Context, input PoolDispatchInput) (*PoolDispatchResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("dispatching pool", "pool_id", input.PoolID, "orders", len(input.OrderIDs))

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	result := &PoolDispatchResult{PoolID: input.PoolID, Status: "in_transit"}

	futures := make([]workflow.Future, len(input.OrderIDs))
	for i, orderID := range input.OrderIDs {
		futures[i] = workflow.ExecuteActivity(ctx, "UpdateOrderStatus", activities.UpdateOrderStatusInput{
			OrderID: orderID,
			Status:  "in_transit",
		})
	}

	for i, future := range futures {
		var writeResult activities.UpdateOrderStatusResult
		if err := future.Get(ctx, &writeResult); err != nil {
			logger.Warn("order status write failed",
				"pool_id", input.PoolID, "order_id", input.OrderIDs[i], "error", err)
			result.Failed = append(result.Failed, input.OrderIDs[i])
			continue
		}
		result.Dispatched++
	}

	if len(input.OrderIDs) > 0 {
		_ = workflow.ExecuteActivity(ctx, "SendDispatchNotice", activities.DispatchNoticeInput{
			PoolID:     input.PoolID,
			Retailers:  input.RetailerIDs,
			OrderCount: result.Dispatched,
			Message:    "Your pooled shipment has been dispatched and is on the way.",
		}).Get(ctx, nil)
	}

	_ = workflow.ExecuteActivity(ctx, "RecordPoolMetrics", activities.RecordPoolMetricsInput{
		PoolID:       input.PoolID,
		DiscountTier: input.DiscountTier,
		OrderCount:   len(input.OrderIDs),
		FailedWrites: len(result.Failed),
	}).Get(ctx, nil)

	logger.Info("pool dispatch complete",
		"pool_id", input.PoolID, "dispatched", result.Dispatched, "failed", len(result.Failed))
	return result, nil
}
