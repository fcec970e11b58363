package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketpos/internal/middleware"
	"marketpos/internal/model"
	"marketpos/internal/repository"
	"marketpos/pkg/pagination"
	"marketpos/pkg/response"
)

type AuditHandler struct {
	auditRepo repository.AuditRepository
}

func NewAuditHandler(auditRepo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/audit-logs", middleware.RequireRole(model.RoleManager), h.List)
}

// List returns the audit trail, newest first
// @Summary      List audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        action  query     string  false  "Filter by action code"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	logs, total, err := h.auditRepo.List(c.Request.Context(), p.Page, p.Limit, c.Query("action"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, "logs", logs, total, p.Page, p.Limit))
}
