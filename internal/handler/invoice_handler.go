package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketpos/internal/export"
	"marketpos/internal/middleware"
	"marketpos/internal/model"
	"marketpos/internal/service"
	"marketpos/pkg/pagination"
	"marketpos/pkg/response"
)

type InvoiceHandler struct {
	purchaseService service.PurchaseService
}

func NewInvoiceHandler(purchaseService service.PurchaseService) *InvoiceHandler {
	return &InvoiceHandler{purchaseService: purchaseService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.POST("", middleware.RequirePermission(model.PermInvoices), h.CreateInvoice)
		invoices.GET("", middleware.RequirePermission(model.PermOrders), h.ListInvoices)
		invoices.GET("/:id", middleware.RequirePermission(model.PermOrders), h.GetInvoice)
		invoices.POST("/:id/payments", middleware.RequirePermission(model.PermOrders), h.ApplyPayment)
		invoices.PATCH("/:id/status", middleware.RequirePermission(model.PermOrders), h.SetDeliveryStatus)
		invoices.GET("/:id/export", middleware.RequirePermission(model.PermOrders), h.ExportInvoice)
	}
}

func invoiceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid invoice id"))
		return 0, false
	}
	return id, true
}

// CreateInvoice finalizes a purchase order into an immutable invoice
// @Summary      Create purchase invoice
// @Description  Assigns the next sequential invoice id, prices each line at the supplier's list price and snapshots the company name
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceRequest  true  "Supplier and item lines"
// @Success      201      {object}  response.Response{data=model.PurchaseInvoice}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.purchaseService.CreateInvoice(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// ListInvoices returns invoices filtered by status and search text
// @Summary      List invoices
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "delivered or not-delivered"
// @Param        search  query     string  false  "Company name or invoice number"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      400     {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	p := pagination.Parse(c)
	invoices, total, err := h.purchaseService.ListInvoices(c.Request.Context(), service.InvoiceListRequest{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, "invoices", invoices, total, p.Page, p.Limit))
}

// GetInvoice returns one invoice with items and payment history
// @Summary      Get invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=model.PurchaseInvoice}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	invoice, err := h.purchaseService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// ApplyPayment records an installment against an invoice
// @Summary      Apply payment
// @Description  Appends one payment; remaining debt is clamped at zero and the response flags any overpayment
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Invoice ID"
// @Param        payload  body      service.ApplyPaymentRequest  true  "Payment amount"
// @Success      200      {object}  response.Response{data=service.SettlementResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoices/{id}/payments [post]
func (h *InvoiceHandler) ApplyPayment(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var req service.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.purchaseService.ApplyPayment(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// SetDeliveryStatus flips an invoice between delivered and not-delivered
// @Summary      Set delivery status
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Invoice ID"
// @Param        payload  body      service.SetStatusRequest  true  "New status"
// @Success      200      {object}  response.Response{data=model.PurchaseInvoice}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) SetDeliveryStatus(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var req service.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.purchaseService.SetDeliveryStatus(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// ExportInvoice streams the invoice as an Excel workbook
// @Summary      Export invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  int  true  "Invoice ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/export [get]
func (h *InvoiceHandler) ExportInvoice(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	invoice, err := h.purchaseService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		abortWith(c, err)
		return
	}

	workbook, err := export.InvoiceWorkbook(invoice)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.xlsx"`, invoice.ID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
