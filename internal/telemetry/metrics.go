package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter       metric.Meter
	metricsOnce sync.Once

	poolsBuilt       metric.Int64Counter
	ordersPooled     metric.Int64Counter
	ordersSkipped    metric.Int64Counter
	poolsDispatched  metric.Int64Counter
	dispatchFailures metric.Int64Counter
	simulationRuns   metric.Int64Counter

	poolSize     metric.Int64Histogram
	poolRadiusKm metric.Float64Histogram
)

func initMetrics() {
	meter = otel.Meter("pooling-engine")

	var err error

	poolsBuilt, err = meter.Int64Counter("pools.built",
		metric.WithDescription("Number of delivery pools produced by clustering runs"),
		metric.WithUnit("{pool}"),
	)
	if err != nil {
		panic(err)
	}

	ordersPooled, err = meter.Int64Counter("pools.orders_pooled",
		metric.WithDescription("Number of pending orders placed into a pool"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		panic(err)
	}

	ordersSkipped, err = meter.Int64Counter("pools.orders_skipped",
		metric.WithDescription("Orders dropped from clustering because their retailer could not be resolved"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		panic(err)
	}

	poolsDispatched, err = meter.Int64Counter("pools.dispatched",
		metric.WithDescription("Number of pools sent out for delivery"),
		metric.WithUnit("{pool}"),
	)
	if err != nil {
		panic(err)
	}

	dispatchFailures, err = meter.Int64Counter("pools.dispatch_failures",
		metric.WithDescription("Per-order status writes that failed during dispatch"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		panic(err)
	}

	simulationRuns, err = meter.Int64Counter("simulation.runs",
		metric.WithDescription("Economics simulation runs served"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		panic(err)
	}

	poolSize, err = meter.Int64Histogram("pools.size",
		metric.WithDescription("Distribution of orders per pool"),
		metric.WithUnit("{order}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 8, 13, 21),
	)
	if err != nil {
		panic(err)
	}

	poolRadiusKm, err = meter.Float64Histogram("pools.radius",
		metric.WithDescription("Distribution of pool radii"),
		metric.WithUnit("km"),
		metric.WithExplicitBucketBoundaries(0.25, 0.5, 1, 1.5, 2, 2.5, 3),
	)
	if err != nil {
		panic(err)
	}
}

func ensureMetrics() {
	metricsOnce.Do(initMetrics)
}

func RecordPoolBuilt(ctx context.Context, tier string, orders int, radiusKm float64) {
	ensureMetrics()
	poolsBuilt.Add(ctx, 1, metric.WithAttributes(
		attribute.String("discount_tier", tier),
	))
	ordersPooled.Add(ctx, int64(orders))
	poolSize.Record(ctx, int64(orders))
	poolRadiusKm.Record(ctx, radiusKm)
}

func RecordOrdersSkipped(ctx context.Context, count int) {
	ensureMetrics()
	if count > 0 {
		ordersSkipped.Add(ctx, int64(count))
	}
}

func RecordPoolDispatched(ctx context.Context, tier string) {
	ensureMetrics()
	poolsDispatched.Add(ctx, 1, metric.WithAttributes(
		attribute.String("discount_tier", tier),
	))
}

func RecordDispatchFailures(ctx context.Context, count int) {
	ensureMetrics()
	if count > 0 {
		dispatchFailures.Add(ctx, int64(count))
	}
}

func RecordSimulationRun(ctx context.Context, days int) {
	ensureMetrics()
	simulationRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("days", days),
	))
}
