package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/graminroute/hub/internal/models"
)

type OrderHandler struct {
	db *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type CreateOrderRequest struct {
	RetailerID string `json:"retailer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

// Create records a pending replenishment order. Prices and coordinates
// are resolved server-side so the clustering snapshot is self-contained.
func (h *OrderHandler) Create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.RetailerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "retailer_id is required")
	}
	if req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be greater than zero")
	}

	ctx := c.Request().Context()

	var retailer models.Retailer
	if err := h.db.WithContext(ctx).Where("id = ?", req.RetailerID).First(&retailer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown retailer")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve retailer")
	}

	var product models.Product
	if err := h.db.WithContext(ctx).Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown product")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve product")
	}

	order := models.Order{
		RetailerID:  retailer.ID,
		RetailerLat: retailer.Lat,
		RetailerLon: retailer.Lon,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   product.UnitPrice,
		TotalAmount: float64(req.Quantity) * product.UnitPrice,
		Status:      models.OrderStatusPending,
	}

	if err := h.db.WithContext(ctx).Create(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create order")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"order": order,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	query := h.db.WithContext(c.Request().Context())
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at").Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch orders")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

func (h *OrderHandler) Get(c echo.Context) error {
	parsedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var order models.Order
	if err := h.db.WithContext(c.Request().Context()).Where("id = ?", parsedID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch order")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"order": order,
	})
}
