package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketpos/internal/middleware"
	"marketpos/internal/model"
	"marketpos/internal/service"
	"marketpos/pkg/pagination"
	"marketpos/pkg/response"
)

type POSHandler struct {
	posService service.POSService
}

func NewPOSHandler(posService service.POSService) *POSHandler {
	return &POSHandler{posService: posService}
}

func (h *POSHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/sales", middleware.RequirePermission(model.PermPOS), h.Checkout)
	router.GET("/api/sales", middleware.RequirePermission(model.PermSales), h.ListSales)
}

// Checkout records a register sale
// @Summary      Checkout
// @Description  Prices every line server-side, computes change from the tendered amount and appends an immutable receipt
// @Tags         pos
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CheckoutRequest  true  "Scanned lines and amount received"
// @Success      201      {object}  response.Response{data=model.Sale}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/sales [post]
func (h *POSHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.posService.Checkout(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

// ListSales returns the sales ledger, newest first
// @Summary      List sales
// @Tags         pos
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/sales [get]
func (h *POSHandler) ListSales(c *gin.Context) {
	p := pagination.Parse(c)
	sales, total, err := h.posService.ListSales(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, "sales", sales, total, p.Page, p.Limit))
}
