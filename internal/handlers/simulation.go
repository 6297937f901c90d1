package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/graminroute/hub/internal/simulation"
	"github.com/graminroute/hub/internal/telemetry"
)

type SimulationHandler struct {
	cfg simulation.Config
}

func NewSimulationHandler(cfg simulation.Config) *SimulationHandler {
	return &SimulationHandler{cfg: cfg}
}

// Run executes the reactive vs. predictive-pooled comparison. Optional
// query params: days (horizon) and seed (reproducible draws).
func (h *SimulationHandler) Run(c echo.Context) error {
	cfg := h.cfg

	if days := c.QueryParam("days"); days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid days parameter")
		}
		cfg.Days = parsed
	}

	if seed := c.QueryParam("seed"); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid seed parameter")
		}
		cfg.Seed = &parsed
	}

	result, err := simulation.Run(cfg)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	telemetry.RecordSimulationRun(c.Request().Context(), cfg.Days)

	return c.JSON(http.StatusOK, result)
}
