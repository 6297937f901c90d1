package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/labstack/echo/v4"
	"go.temporal.io/sdk/client"
	"gorm.io/gorm"

	"github.com/graminroute/hub/internal/models"
	"github.com/graminroute/hub/internal/pooling"
	"github.com/graminroute/hub/internal/telemetry"
	"github.com/graminroute/hub/internal/workflows"
)

// PoolHandler owns the active pool registry. Pools are ephemeral: each
// build replaces the whole registry with the latest clustering run, and
// dispatch removes a pool once its workflow has been started.
type PoolHandler struct {
	db             *gorm.DB
	temporalClient client.Client
	taskQueue      string

	mu    sync.Mutex
	pools map[string]pooling.Pool
}

func NewPoolHandler(db *gorm.DB, temporalClient client.Client, taskQueue string) *PoolHandler {
	return &PoolHandler{
		db:             db,
		temporalClient: temporalClient,
		taskQueue:      taskQueue,
		pools:          make(map[string]pooling.Pool),
	}
}

// Build clusters the current snapshot of pending orders into pools.
// Orders arriving after the snapshot is read simply wait for the next
// run; orders whose retailer is missing are skipped and counted.
func (h *PoolHandler) Build(c echo.Context) error {
	ctx := c.Request().Context()

	var orders []models.Order
	if err := h.db.WithContext(ctx).
		Where("status = ?", models.OrderStatusPending).
		Order("created_at").
		Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch pending orders")
	}

	var retailers []models.Retailer
	if err := h.db.WithContext(ctx).Find(&retailers).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch retailers")
	}

	result := pooling.BuildPools(orders, retailers)

	telemetry.RecordOrdersSkipped(ctx, result.SkippedOrders)
	for _, pool := range result.Pools {
		telemetry.RecordPoolBuilt(ctx, string(pool.DiscountTier), len(pool.Orders), pool.RadiusKm)
	}

	h.mu.Lock()
	h.pools = make(map[string]pooling.Pool, len(result.Pools))
	for _, pool := range result.Pools {
		h.pools[pool.PoolID] = pool
	}
	h.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pools":          result.Pools,
		"skipped_orders": result.SkippedOrders,
	})
}

func (h *PoolHandler) List(c echo.Context) error {
	h.mu.Lock()
	pools := make([]pooling.Pool, 0, len(h.pools))
	for _, pool := range h.pools {
		pools = append(pools, pool)
	}
	h.mu.Unlock()

	sort.Slice(pools, func(i, j int) bool { return pools[i].PoolID < pools[j].PoolID })

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pools": pools,
	})
}

func (h *PoolHandler) Get(c echo.Context) error {
	h.mu.Lock()
	pool, ok := h.pools[c.Param("id")]
	h.mu.Unlock()

	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "pool not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"pool": pool,
	})
}

// Dispatch starts the pool's dispatch workflow and drops the pool from
// the registry. Once the workflow is started the pool counts as
// processed; individual order writes retry inside the workflow and any
// stragglers are reported there, never rolled back.
func (h *PoolHandler) Dispatch(c echo.Context) error {
	poolID := c.Param("id")

	h.mu.Lock()
	pool, ok := h.pools[poolID]
	h.mu.Unlock()

	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "pool not found")
	}

	orderIDs := make([]string, 0, len(pool.Orders))
	for _, o := range pool.Orders {
		orderIDs = append(orderIDs, o.ID.String())
	}
	retailerIDs := make([]string, 0, len(pool.Retailers))
	for _, r := range pool.Retailers {
		retailerIDs = append(retailerIDs, r.ID)
	}

	workflowID := fmt.Sprintf("dispatch-%s-empty", poolID)
	if len(pool.Orders) > 0 {
		workflowID = fmt.Sprintf("dispatch-%s-%s", poolID, pool.Orders[0].ID.String()[:8])
	}

	run, err := h.temporalClient.ExecuteWorkflow(c.Request().Context(),
		client.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: h.taskQueue,
		},
		workflows.PoolDispatchWorkflow,
		workflows.PoolDispatchInput{
			PoolID:       poolID,
			DiscountTier: string(pool.DiscountTier),
			OrderIDs:     orderIDs,
			RetailerIDs:  retailerIDs,
		})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start dispatch: "+err.Error())
	}

	h.mu.Lock()
	delete(h.pools, poolID)
	h.mu.Unlock()

	pool.Status = pooling.PoolStatusInTransit

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"pool":        pool,
		"workflow_id": run.GetID(),
	})
}
