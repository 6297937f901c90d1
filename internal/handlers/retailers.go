package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/graminroute/hub/internal/models"
	"github.com/graminroute/hub/internal/recommender"
)

type RetailerHandler struct {
	db     *gorm.DB
	oracle *recommender.Client
}

func NewRetailerHandler(db *gorm.DB, oracle *recommender.Client) *RetailerHandler {
	return &RetailerHandler{db: db, oracle: oracle}
}

func (h *RetailerHandler) List(c echo.Context) error {
	var retailers []models.Retailer
	if err := h.db.WithContext(c.Request().Context()).Order("id").Find(&retailers).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch retailers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"retailers": retailers,
	})
}

func (h *RetailerHandler) Get(c echo.Context) error {
	var retailer models.Retailer
	if err := h.db.WithContext(c.Request().Context()).Where("id = ?", c.Param("id")).First(&retailer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "retailer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch retailer")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"retailer": retailer,
	})
}

// Recommendation proxies the external distributor oracle. When the
// oracle is down the response carries a null recommendation rather than
// an error, so dashboards degrade instead of breaking.
func (h *RetailerHandler) Recommendation(c echo.Context) error {
	ctx := c.Request().Context()

	var retailer models.Retailer
	if err := h.db.WithContext(ctx).Where("id = ?", c.Param("id")).First(&retailer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "retailer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch retailer")
	}

	rec, err := h.oracle.Recommend(ctx, recommender.Request{
		ShopID:       retailer.ID,
		Lat:          retailer.Lat,
		Lon:          retailer.Lon,
		CurrentStock: retailer.CurrentStock,
		IsFestival:   c.QueryParam("festival") == "true",
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"retailer_id":    retailer.ID,
		"recommendation": rec,
	})
}
