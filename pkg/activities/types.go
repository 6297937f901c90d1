// Package activities defines the wire types shared between the dispatch
// workflow and the workers that execute its activities.
package activities

type UpdateOrderStatusInput struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type UpdateOrderStatusResult struct {
	OrderID string `json:"order_id"`
	Updated bool   `json:"updated"`
}

type DispatchNoticeInput struct {
	PoolID     string   `json:"pool_id"`
	Retailers  []string `json:"retailers"`
	OrderCount int      `json:"order_count"`
	Message    string   `json:"message"`
}

type RecordPoolMetricsInput struct {
	PoolID       string `json:"pool_id"`
	DiscountTier string `json:"discount_tier"`
	OrderCount   int    `json:"order_count"`
	FailedWrites int    `json:"failed_writes"`
}
