package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketpos/internal/middleware"
	"marketpos/internal/model"
	"marketpos/internal/service"
	"marketpos/pkg/response"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/statistics/daily", middleware.RequirePermission(model.PermSales), h.Daily)
}

// Daily returns the day's sales count, revenue and outstanding debt
// @Summary      Daily summary
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Day in YYYY-MM-DD format (default today)"
// @Success      200   {object}  response.Response{data=service.DailySummary}
// @Failure      400   {object}  response.Response
// @Router       /api/statistics/daily [get]
func (h *StatisticsHandler) Daily(c *gin.Context) {
	summary, err := h.statisticsService.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
