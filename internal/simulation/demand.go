package simulation

import "math/rand"

// DemandModel draws one integer demand per simulated day: uniform in
// [DemandMin, DemandMax], plus a fixed spike inside the festival window.
// Both strategies consume the same draw, so comparisons stay paired.
type DemandModel struct {
	cfg Config
	rng *rand.Rand
}

func NewDemandModel(cfg Config, rng *rand.Rand) *DemandModel {
	return &DemandModel{cfg: cfg, rng: rng}
}

// Festival reports whether the 1-based day falls in the festival window.
func (m *DemandModel) Festival(day int) bool {
	return day >= m.cfg.FestivalStart && day <= m.cfg.FestivalEnd
}

// Daily draws the demand for the given 1-based day.
func (m *DemandModel) Daily(day int) int {
	demand := m.cfg.DemandMin + m.rng.Intn(m.cfg.DemandMax-m.cfg.DemandMin+1)
	if m.Festival(day) {
		demand += m.cfg.FestivalSpike
	}
	return demand
}
