package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/qrdine/backend/internal/application/report"
)

// ReportHandler serves the analytics reports. Every endpoint accepts
// start_date and end_date (YYYY-MM-DD, inclusive, restaurant timezone).
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// serveReport binds the shared query and writes the report
func serveReport[T any](h *ReportHandler, c *gin.Context, fn func(context.Context, uuid.UUID, reportapp.ReportQuery) (T, error)) {
	var q reportapp.ReportQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := fn(c.Request.Context(), getRestaurantID(c), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Summary godoc
// @Summary      Sales summary
// @Tags         reports
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        start_date query string false "First day"
// @Param        end_date query string false "Last day"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	serveReport(h, c, h.reportService.Summary)
}

// DailyTrend godoc
// @Summary      Orders and revenue per day
// @Tags         reports
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {object} dto.Response
// @Router       /reports/daily-trend [get]
func (h *ReportHandler) DailyTrend(c *gin.Context) {
	serveReport(h, c, h.reportService.DailyTrend)
}

// Hourly godoc
// @Summary      Orders per hour of day
// @Tags         reports
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {object} dto.Response
// @Router       /reports/hourly [get]
func (h *ReportHandler) Hourly(c *gin.Context) {
	serveReport(h, c, h.reportService.Hourly)
}

// TopItems godoc
// @Summary      Best selling items
// @Tags         reports
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        top_n query int false "Number of items" default(10)
// @Success      200 {object} dto.Response
// @Router       /reports/top-items [get]
func (h *ReportHandler) TopItems(c *gin.Context) {
	serveReport(h, c, h.reportService.TopItems)
}

// Categories godoc
// @Summary      Sales per category
// @Tags         reports
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {object} dto.Response
// @Router       /reports/categories [get]
func (h *ReportHandler) Categories(c *gin.Context) {
	serveReport(h, c, h.reportService.Categories)
}

// Tables godoc
// @Summary      Sales per table
// @Tags         reports
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {object} dto.Response
// @Router       /reports/tables [get]
func (h *ReportHandler) Tables(c *gin.Context) {
	serveReport(h, c, h.reportService.Tables)
}

// StatusBreakdown godoc
// @Summary      Orders per status
// @Tags         reports
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {object} dto.Response
// @Router       /reports/status-breakdown [get]
func (h *ReportHandler) StatusBreakdown(c *gin.Context) {
	serveReport(h, c, h.reportService.StatusBreakdown)
}
