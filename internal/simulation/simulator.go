package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Batch is one delivery of stock. Oldest batches sell first; a batch
// whose shelf life runs out is a total loss.
type Batch struct {
	Qty       int `json:"qty"`
	ShelfLife int `json:"shelf_life"`
}

// strategyState is one retailer strategy's running position.
type strategyState struct {
	Cash    float64
	Batches []Batch
}

func (s *strategyState) stock() int {
	total := 0
	for _, b := range s.Batches {
		total += b.Qty
	}
	return total
}

func (s *strategyState) netWealth(unitCost float64) int {
	return int(math.Round(s.Cash + float64(s.stock())*unitCost))
}

// receive books a purchase: cash out, fresh batch in.
func (s *strategyState) receive(qty int, unitCost, deliveryFee float64, shelfLife int) {
	s.Cash -= float64(qty)*unitCost + deliveryFee
	s.Batches = append(s.Batches, Batch{Qty: qty, ShelfLife: shelfLife})
}

// sell depletes batches oldest-first up to the available stock and
// returns the quantity actually sold.
func (s *strategyState) sell(demand int) int {
	sold := 0
	remaining := demand
	for i := range s.Batches {
		if remaining == 0 {
			break
		}
		take := min(s.Batches[i].Qty, remaining)
		s.Batches[i].Qty -= take
		remaining -= take
		sold += take
	}
	return sold
}

// age decrements every batch's shelf life and drops batches that are
// empty or expired. Spoiled quantity is sunk cost; no write-back.
func (s *strategyState) age() {
	kept := s.Batches[:0]
	for _, b := range s.Batches {
		b.ShelfLife--
		if b.Qty > 0 && b.ShelfLife > 0 {
			kept = append(kept, b)
		}
	}
	s.Batches = kept
}

// DayRecord is one day's net-wealth snapshot for both strategies.
type DayRecord struct {
	Label               string `json:"day_label"`
	ReactiveNetWealth   int    `json:"reactive_net_wealth"`
	PredictiveNetWealth int    `json:"predictive_net_wealth"`
	Festival            bool   `json:"is_festival"`
}

type Summary struct {
	FinalReactive   int `json:"final_reactive"`
	FinalPredictive int `json:"final_predictive"`
	ProfitIncrease  int `json:"profit_increase"`
}

type Result struct {
	Days    []DayRecord `json:"daily_series"`
	Summary Summary     `json:"summary"`
}

// Run simulates cfg.Days days of the reactive and predictive-pooled
// strategies against a shared demand stream and returns the wealth
// trajectory plus the final comparison.
func Run(cfg Config) (*Result, error) {
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("simulation days must be positive, got %d", cfg.Days)
	}
	if cfg.DemandMax < cfg.DemandMin {
		return nil, fmt.Errorf("demand range [%d, %d] is inverted", cfg.DemandMin, cfg.DemandMax)
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	demand := NewDemandModel(cfg, rng)

	reactive := &strategyState{
		Cash:    cfg.InitialCash,
		Batches: []Batch{{Qty: cfg.StartingStock, ShelfLife: cfg.ShelfLifeDays}},
	}
	predictive := &strategyState{
		Cash:    cfg.InitialCash,
		Batches: []Batch{{Qty: cfg.StartingStock, ShelfLife: cfg.ShelfLifeDays}},
	}

	result := &Result{Days: make([]DayRecord, 0, cfg.Days)}

	for day := 1; day <= cfg.Days; day++ {
		festival := demand.Festival(day)
		dailyDemand := demand.Daily(day)

		reactiveRestock(reactive, cfg)
		predictiveRestock(predictive, festival, rng, cfg)

		salePrice := cfg.BaseUnitCost + cfg.MarginPerUnit
		reactive.Cash += float64(reactive.sell(dailyDemand)) * salePrice
		predictive.Cash += float64(predictive.sell(dailyDemand)) * salePrice

		reactive.age()
		predictive.age()

		result.Days = append(result.Days, DayRecord{
			Label:               fmt.Sprintf("Day %d", day),
			ReactiveNetWealth:   reactive.netWealth(cfg.BaseUnitCost),
			PredictiveNetWealth: predictive.netWealth(cfg.BaseUnitCost),
			Festival:            festival,
		})
	}

	last := result.Days[len(result.Days)-1]
	result.Summary = Summary{
		FinalReactive:   last.ReactiveNetWealth,
		FinalPredictive: last.PredictiveNetWealth,
		ProfitIncrease:  last.PredictiveNetWealth - last.ReactiveNetWealth,
	}
	return result, nil
}

// reactiveRestock reorders a fixed batch at full price once stock dips
// below the low-water mark.
func reactiveRestock(s *strategyState, cfg Config) {
	if s.stock() >= cfg.LowWaterMark {
		return
	}
	s.receive(cfg.ReactiveBatchQty, cfg.BaseUnitCost, cfg.DeliveryFee, cfg.ShelfLifeDays)
}

// predictiveRestock tops stock up toward the forecast target. Outside
// the festival window the order is capped to avoid overstocking
// perishables; pooling (stochastic neighbor participation, or automatic
// at bulk size) buys the discounted unit price and a split delivery fee.
func predictiveRestock(s *strategyState, festival bool, rng *rand.Rand, cfg Config) {
	target := cfg.BaselineTarget
	if festival {
		target = cfg.FestivalTarget
	}

	stock := s.stock()
	if stock >= target {
		return
	}

	needed := target - stock
	if !festival {
		needed = min(needed, cfg.RestockCap)
	}

	pooled := rng.Float64() < cfg.PoolChance || needed >= cfg.BulkPoolThreshold

	unitCost := cfg.BaseUnitCost
	delivery := cfg.DeliveryFee
	if pooled {
		unitCost = cfg.PooledUnitCost
		delivery = cfg.DeliveryFee / cfg.PoolSplitFactor
	}

	s.receive(needed, unitCost, delivery, cfg.ShelfLifeDays)
}
