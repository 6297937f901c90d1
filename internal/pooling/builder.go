// Package pooling groups pending replenishment orders from nearby shops
// into shared delivery pools and prices the bulk discount.
package pooling

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/graminroute/hub/internal/geo"
	"github.com/graminroute/hub/internal/models"
)

const (
	// ClusterRadiusKm is the clumping radius: an order joins a pool when
	// its shop is within this distance of the pool's anchor shop.
	ClusterRadiusKm = 3.0

	// WholesaleQtyThreshold is the combined quantity above which a pool
	// qualifies for the wholesale discount.
	WholesaleQtyThreshold = 50

	// WholesaleDiscountRate is applied to a wholesale pool's total.
	WholesaleDiscountRate = 0.15
)

type DiscountTier string

const (
	TierStandard  DiscountTier = "STANDARD"
	TierWholesale DiscountTier = "WHOLESALE"
)

type PoolStatus string

const (
	PoolStatusAwaitingApproval PoolStatus = "awaiting_approval"
	PoolStatusInTransit        PoolStatus = "in_transit"
)

// Pool is one consolidated delivery run. Pools are rebuilt from scratch
// on every clustering pass and discarded on dispatch; they are never
// persisted or merged across runs.
type Pool struct {
	PoolID         string            `json:"pool_id"`
	Orders         []models.Order    `json:"orders"`
	Retailers      []models.Retailer `json:"retailers"`
	TotalQty       int               `json:"total_qty"`
	TotalAmount    float64           `json:"total_amount"`
	CenterLat      float64           `json:"center_lat"`
	CenterLon      float64           `json:"center_lon"`
	RadiusKm       float64           `json:"radius_km"`
	DiscountTier   DiscountTier      `json:"discount_tier"`
	DiscountAmount float64           `json:"discount_amount"`
	FinalAmount    float64           `json:"final_amount"`
	Status         PoolStatus        `json:"status"`
}

// Result is the output of one clustering run. SkippedOrders counts
// orders dropped because their retailer was missing from the directory;
// they are not an error, but callers should surface the count.
type Result struct {
	Pools         []Pool `json:"pools"`
	SkippedOrders int    `json:"skipped_orders"`
}

// BuildPools runs a single-pass greedy clustering over the given
// pending orders. The first unprocessed order anchors a pool at its
// shop's coordinates; every other unprocessed order within
// ClusterRadiusKm of that anchor joins. Membership is decided against
// the anchor only, never between members, so the pass stays O(n²) with
// no re-clustering. Deterministic for a fixed input ordering.
func BuildPools(orders []models.Order, retailers []models.Retailer) Result {
	byID := make(map[string]models.Retailer, len(retailers))
	for _, r := range retailers {
		byID[r.ID] = r
	}

	var result Result
	processed := make(map[uuid.UUID]bool, len(orders))
	counter := 1

	for _, order := range orders {
		if processed[order.ID] {
			continue
		}

		anchor, ok := byID[order.RetailerID]
		if !ok {
			processed[order.ID] = true
			result.SkippedOrders++
			continue
		}

		pool := Pool{
			PoolID:    fmt.Sprintf("POOL-%03d", counter),
			Orders:    []models.Order{order},
			Retailers: []models.Retailer{anchor},
			CenterLat: anchor.Lat,
			CenterLon: anchor.Lon,
			Status:    PoolStatusAwaitingApproval,
		}
		processed[order.ID] = true

		for _, neighbor := range orders {
			if processed[neighbor.ID] {
				continue
			}
			nr, ok := byID[neighbor.RetailerID]
			if !ok {
				continue
			}

			dist := geo.Distance(anchor.Lat, anchor.Lon, nr.Lat, nr.Lon)
			if dist >= ClusterRadiusKm {
				continue
			}

			pool.Orders = append(pool.Orders, neighbor)
			if !containsRetailer(pool.Retailers, nr.ID) {
				pool.Retailers = append(pool.Retailers, nr)
			}
			pool.RadiusKm = math.Max(pool.RadiusKm, dist)
			processed[neighbor.ID] = true
		}

		for _, o := range pool.Orders {
			pool.TotalQty += o.Quantity
			pool.TotalAmount += o.TotalAmount
		}

		if pool.TotalQty > WholesaleQtyThreshold {
			pool.DiscountTier = TierWholesale
			pool.DiscountAmount = math.Round(pool.TotalAmount * WholesaleDiscountRate)
		} else {
			pool.DiscountTier = TierStandard
			pool.DiscountAmount = 0
		}
		pool.FinalAmount = pool.TotalAmount - pool.DiscountAmount

		result.Pools = append(result.Pools, pool)
		counter++
	}

	return result
}

func containsRetailer(rs []models.Retailer, id string) bool {
	for _, r := range rs {
		if r.ID == id {
			return true
		}
	}
	return false
}
