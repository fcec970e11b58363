package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketpos/internal/middleware"
	"marketpos/internal/model"
	"marketpos/internal/service"
	"marketpos/pkg/response"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/stock", middleware.RequirePermission(model.PermStock), h.StockReport)
	router.GET("/api/stock/low", middleware.RequirePermission(model.PermStock), h.LowStockReport)
}

// StockReport returns the projected on-hand quantity per product
// @Summary      Stock report
// @Description  Folds delivered invoices minus sales into a per-product quantity; negative values surface oversold codes
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.StockRow}
// @Router       /api/stock [get]
func (h *StockHandler) StockReport(c *gin.Context) {
	rows, err := h.stockService.StockReport(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// LowStockReport returns products at or below their reorder threshold
// @Summary      Low stock report
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.SupplierLowStock}
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStockReport(c *gin.Context) {
	groups, err := h.stockService.LowStockReport(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, groups))
}
