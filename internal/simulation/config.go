// Package simulation runs the discrete-day economics comparison between
// a reactive restocker and the predictive-pooled restocker.
package simulation

import (
	"os"
	"strconv"
)

// Config names every tunable of the simulation. Defaults reproduce the
// published 60-day comparison; each field can be overridden through a
// SIM_* environment variable for demos.
type Config struct {
	Days        int
	InitialCash float64

	BaseUnitCost   float64 // reactive purchase price per unit
	PooledUnitCost float64 // discounted price once a pool forms
	DeliveryFee    float64
	// PoolSplitFactor divides the delivery fee across pool participants.
	PoolSplitFactor float64
	MarginPerUnit   float64

	ShelfLifeDays int
	StartingStock int

	// Reactive policy.
	LowWaterMark     int
	ReactiveBatchQty int

	// Predictive-pooled policy.
	BaselineTarget    int
	FestivalTarget    int
	RestockCap        int // anti-overstock ceiling outside the festival window
	PoolChance        float64
	BulkPoolThreshold int // needed >= this pools automatically

	// Demand.
	DemandMin     int
	DemandMax     int
	FestivalSpike int
	FestivalStart int // 1-based day, inclusive
	FestivalEnd   int

	// Seed fixes the demand and pooling draws; nil seeds from the clock.
	Seed *int64
}

func DefaultConfig() Config {
	return Config{
		Days:              60,
		InitialCash:       50000,
		BaseUnitCost:      80,
		PooledUnitCost:    75,
		DeliveryFee:       100,
		PoolSplitFactor:   4,
		MarginPerUnit:     20,
		ShelfLifeDays:     10,
		StartingStock:     50,
		LowWaterMark:      20,
		ReactiveBatchQty:  40,
		BaselineTarget:    15,
		FestivalTarget:    50,
		RestockCap:        10,
		PoolChance:        0.7,
		BulkPoolThreshold: 50,
		DemandMin:         2,
		DemandMax:         8,
		FestivalSpike:     10,
		FestivalStart:     20,
		FestivalEnd:       25,
	}
}

// LoadConfig returns the defaults with any SIM_* overrides applied.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.Days = getEnvInt("SIM_DAYS", cfg.Days)
	cfg.InitialCash = getEnvFloat("SIM_INITIAL_CASH", cfg.InitialCash)
	cfg.BaseUnitCost = getEnvFloat("SIM_BASE_UNIT_COST", cfg.BaseUnitCost)
	cfg.PooledUnitCost = getEnvFloat("SIM_POOLED_UNIT_COST", cfg.PooledUnitCost)
	cfg.DeliveryFee = getEnvFloat("SIM_DELIVERY_FEE", cfg.DeliveryFee)
	cfg.MarginPerUnit = getEnvFloat("SIM_MARGIN_PER_UNIT", cfg.MarginPerUnit)
	cfg.ShelfLifeDays = getEnvInt("SIM_SHELF_LIFE_DAYS", cfg.ShelfLifeDays)
	cfg.LowWaterMark = getEnvInt("SIM_LOW_WATER_MARK", cfg.LowWaterMark)
	cfg.PoolChance = getEnvFloat("SIM_POOL_CHANCE", cfg.PoolChance)
	return cfg
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
