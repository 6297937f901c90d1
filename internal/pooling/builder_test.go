package pooling

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/graminroute/hub/internal/models"
)

func newOrder(retailerID string, qty int, price float64) models.Order {
	return models.Order{
		ID:          uuid.New(),
		RetailerID:  retailerID,
		ProductID:   "P001",
		Quantity:    qty,
		UnitPrice:   price,
		TotalAmount: float64(qty) * price,
		Status:      models.OrderStatusPending,
	}
}

func TestBuildPools_Empty(t *testing.T) {
	result := BuildPools(nil, nil)
	require.Empty(t, result.Pools)
	require.Zero(t, result.SkippedOrders)
}

func TestBuildPools_NearbyOrdersShareAPool(t *testing.T) {
	retailers := []models.Retailer{
		{ID: "R001", Lat: 17.7200, Lon: 79.1600},
		{ID: "R002", Lat: 17.7205, Lon: 79.1603},
		{ID: "R003", Lat: 18.5, Lon: 80.0},
	}
	orders := []models.Order{
		newOrder("R001", 30, 100),
		newOrder("R002", 25, 100),
		newOrder("R003", 10, 100),
	}

	result := BuildPools(orders, retailers)
	require.Len(t, result.Pools, 2)
	require.Zero(t, result.SkippedOrders)

	wholesale := result.Pools[0]
	require.Equal(t, "POOL-001", wholesale.PoolID)
	require.Len(t, wholesale.Orders, 2)
	require.Len(t, wholesale.Retailers, 2)
	require.Equal(t, 55, wholesale.TotalQty)
	require.Equal(t, 5500.0, wholesale.TotalAmount)
	require.Equal(t, TierWholesale, wholesale.DiscountTier)
	require.Equal(t, 825.0, wholesale.DiscountAmount)
	require.Equal(t, 4675.0, wholesale.FinalAmount)
	require.Equal(t, 17.7200, wholesale.CenterLat)
	require.Equal(t, 79.1600, wholesale.CenterLon)
	require.Greater(t, wholesale.RadiusKm, 0.0)
	require.Less(t, wholesale.RadiusKm, 0.1)
	require.Equal(t, PoolStatusAwaitingApproval, wholesale.Status)

	standard := result.Pools[1]
	require.Equal(t, "POOL-002", standard.PoolID)
	require.Len(t, standard.Orders, 1)
	require.Equal(t, 10, standard.TotalQty)
	require.Equal(t, TierStandard, standard.DiscountTier)
	require.Zero(t, standard.DiscountAmount)
	require.Equal(t, 1000.0, standard.FinalAmount)
	require.Zero(t, standard.RadiusKm)
}

func TestBuildPools_EveryOrderInExactlyOnePool(t *testing.T) {
	retailers := []models.Retailer{
		{ID: "R001", Lat: 17.7200, Lon: 79.1600},
		{ID: "R002", Lat: 17.7300, Lon: 79.1650},
		{ID: "R003", Lat: 17.9000, Lon: 79.4000},
		{ID: "R004", Lat: 17.9010, Lon: 79.4010},
	}
	orders := []models.Order{
		newOrder("R001", 5, 200),
		newOrder("R002", 7, 150),
		newOrder("R003", 9, 120),
		newOrder("R004", 11, 80),
	}

	result := BuildPools(orders, retailers)

	seen := make(map[uuid.UUID]int)
	totalQty := 0
	for _, pool := range result.Pools {
		qty := 0
		for _, o := range pool.Orders {
			seen[o.ID]++
			qty += o.Quantity
		}
		require.Equal(t, pool.TotalQty, qty)
		totalQty += qty
	}
	for _, o := range orders {
		require.Equal(t, 1, seen[o.ID])
	}
	require.Equal(t, 32, totalQty)
}

func TestBuildPools_UnresolvableRetailerSkipped(t *testing.T) {
	retailers := []models.Retailer{
		{ID: "R001", Lat: 17.7200, Lon: 79.1600},
	}
	orders := []models.Order{
		newOrder("R999", 40, 100), // no such shop
		newOrder("R001", 20, 100),
	}

	result := BuildPools(orders, retailers)
	require.Len(t, result.Pools, 1)
	require.Equal(t, 1, result.SkippedOrders)
	require.Equal(t, "POOL-001", result.Pools[0].PoolID)
	require.Equal(t, 20, result.Pools[0].TotalQty)
}

func TestBuildPools_AnchorBasedNotTransitive(t *testing.T) {
	// R002 is within 3km of the anchor R001; R003 is within 3km of R002
	// but beyond 3km of the anchor. Membership is anchor-only, so R003
	// lands in its own pool even though it neighbors R002.
	retailers := []models.Retailer{
		{ID: "R001", Lat: 17.7200, Lon: 79.1600},
		{ID: "R002", Lat: 17.7420, Lon: 79.1600}, // ~2.4 km north of R001
		{ID: "R003", Lat: 17.7640, Lon: 79.1600}, // ~2.4 km north of R002, ~4.9 km from R001
	}
	orders := []models.Order{
		newOrder("R001", 10, 100),
		newOrder("R002", 10, 100),
		newOrder("R003", 10, 100),
	}

	result := BuildPools(orders, retailers)
	require.Len(t, result.Pools, 2)
	require.Len(t, result.Pools[0].Orders, 2)
	require.Len(t, result.Pools[1].Orders, 1)
	require.Equal(t, "R003", result.Pools[1].Orders[0].RetailerID)
}

func TestBuildPools_Deterministic(t *testing.T) {
	retailers := []models.Retailer{
		{ID: "R001", Lat: 17.7200, Lon: 79.1600},
		{ID: "R002", Lat: 17.7205, Lon: 79.1603},
		{ID: "R003", Lat: 18.5, Lon: 80.0},
	}
	orders := []models.Order{
		newOrder("R002", 25, 100),
		newOrder("R001", 30, 100),
		newOrder("R003", 10, 100),
	}

	first := BuildPools(orders, retailers)
	second := BuildPools(orders, retailers)
	require.Equal(t, first, second)
}

func TestBuildPools_DeduplicatesRetailers(t *testing.T) {
	retailers := []models.Retailer{
		{ID: "R001", Lat: 17.7200, Lon: 79.1600},
	}
	orders := []models.Order{
		newOrder("R001", 10, 100),
		newOrder("R001", 15, 100),
	}

	result := BuildPools(orders, retailers)
	require.Len(t, result.Pools, 1)
	require.Len(t, result.Pools[0].Orders, 2)
	require.Len(t, result.Pools[0].Retailers, 1)
	require.Equal(t, 25, result.Pools[0].TotalQty)
}
