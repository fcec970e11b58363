package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketpos/internal/export"
	"marketpos/internal/middleware"
	"marketpos/internal/model"
	"marketpos/internal/service"
	"marketpos/pkg/pagination"
	"marketpos/pkg/response"
)

type CatalogHandler struct {
	catalogService  service.CatalogService
	settingsService service.SettingsService
}

func NewCatalogHandler(catalogService service.CatalogService, settingsService service.SettingsService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, settingsService: settingsService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	suppliers := router.Group("/api/suppliers")
	{
		suppliers.POST("", middleware.RequirePermission(model.PermPriceLists), h.CreateSupplier)
		suppliers.GET("", middleware.RequireAuth(), h.ListSuppliers)
		suppliers.GET("/:id", middleware.RequireAuth(), h.GetSupplier)
		suppliers.PUT("/:id/products", middleware.RequirePermission(model.PermPriceLists), h.ReplacePriceList)
		suppliers.DELETE("/:id", middleware.RequirePermission(model.PermPriceLists), h.DeleteSupplier)
		suppliers.GET("/:id/export", middleware.RequirePermission(model.PermPriceLists), h.ExportPriceList)
		suppliers.GET("/:id/labels", middleware.RequirePermission(model.PermPriceLists), h.ShelfLabels)
	}

	router.GET("/api/scan/:code", middleware.RequirePermission(model.PermPOS), h.Scan)
}

// CreateSupplier registers a supplier with its initial price list
// @Summary      Create supplier
// @Description  Registers a supplier, assigns the next sequential code and saves its price list
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSupplierRequest  true  "Supplier and price list"
// @Success      201      {object}  response.Response{data=model.Supplier}
// @Failure      400      {object}  response.Response
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supplier, err := h.catalogService.CreateSupplier(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, supplier))
}

// ListSuppliers returns a paginated supplier list
// @Summary      List suppliers
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Filter by name"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	p := pagination.Parse(c)
	suppliers, total, err := h.catalogService.ListSuppliers(c.Request.Context(), p.Page, p.Limit, c.Query("search"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, "suppliers", suppliers, total, p.Page, p.Limit))
}

// GetSupplier returns one supplier with its full price list
// @Summary      Get supplier
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  response.Response{data=model.Supplier}
// @Failure      404  {object}  response.Response
// @Router       /api/suppliers/{id} [get]
func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplier))
}

// ReplacePriceList replaces a supplier's whole product list
// @Summary      Replace price list
// @Description  Saves the supplier's price list by replacing the entire product collection
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Supplier ID"
// @Param        payload  body      service.ReplacePriceListRequest  true  "Full product list"
// @Success      200      {object}  response.Response{data=model.Supplier}
// @Failure      404      {object}  response.Response
// @Router       /api/suppliers/{id}/products [put]
func (h *CatalogHandler) ReplacePriceList(c *gin.Context) {
	var req service.ReplacePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supplier, err := h.catalogService.ReplacePriceList(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplier))
}

// DeleteSupplier removes a supplier and its products
// @Summary      Delete supplier
// @Description  Deletes the supplier as a whole; historical invoices keep the company name snapshot
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/suppliers/{id} [delete]
func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	if err := h.catalogService.DeleteSupplier(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// Scan resolves a product code to its checkout price
// @Summary      Scan product
// @Description  Looks the code up across every price list and returns the resolved sale price
// @Tags         pos
// @Security     BearerAuth
// @Produce      json
// @Param        code  path      string  true  "Product code or barcode"
// @Success      200   {object}  response.Response{data=service.ScanResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/scan/{code} [get]
func (h *CatalogHandler) Scan(c *gin.Context) {
	result, err := h.catalogService.Scan(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ExportPriceList streams the supplier's price list as an Excel workbook
// @Summary      Export price list
// @Tags         catalog
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "Supplier ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /api/suppliers/{id}/export [get]
func (h *CatalogHandler) ExportPriceList(c *gin.Context) {
	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}

	workbook, err := export.PriceListWorkbook(supplier)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pricelist-%d.xlsx"`, supplier.Code))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// ShelfLabels renders printable shelf labels for a supplier's price list
// @Summary      Shelf labels
// @Description  Returns a static HTML page of price tags at current checkout prices
// @Tags         catalog
// @Security     BearerAuth
// @Produce      html
// @Param        id  path  string  true  "Supplier ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /api/suppliers/{id}/labels [get]
func (h *CatalogHandler) ShelfLabels(c *gin.Context) {
	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}

	page, err := export.ShelfLabelsHTML(supplier, settings.ProfitMargin, settings.ProgramName)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
