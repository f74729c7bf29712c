package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/middleware"
	"health-dashboard-be/internal/report"
	"health-dashboard-be/internal/service"
)

// ReportGenerator produces downloadable report files
type ReportGenerator interface {
	PDF(ctx context.Context, userID string, days int) (*report.File, error)
	CSV(ctx context.Context, userID string, days int) (*report.File, error)
	Release(ctx context.Context, f *report.File)
}

type ReportController struct {
	reports ReportGenerator
	logger  zerolog.Logger
}

func NewReportController(reports ReportGenerator, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reports: reports,
		logger:  logger,
	}
}

// PDF handles GET /api/report/pdf
func (rc *ReportController) PDF(c *gin.Context) {
	rc.serve(c, rc.reports.PDF)
}

// CSV handles GET /api/report/csv
func (rc *ReportController) CSV(c *gin.Context) {
	rc.serve(c, rc.reports.CSV)
}

func (rc *ReportController) serve(c *gin.Context, generate func(context.Context, string, int) (*report.File, error)) {
	days, err := queryInt(c, "days", service.DefaultWindowDays)
	if err != nil {
		badRequest(c, err)
		return
	}
	days = service.ClampLimit(days, service.DefaultWindowDays, service.MaxMetricLimit)

	file, err := generate(c.Request.Context(), middleware.UserID(c), days)
	if errors.Is(err, report.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No health data available"})
		return
	}
	if err != nil {
		internalError(c, rc.logger, err)
		return
	}

	c.Header("Content-Type", file.ContentType)
	c.FileAttachment(file.Path, file.Name)
	// The request context ends with the response.
	rc.reports.Release(context.WithoutCancel(c.Request.Context()), file)
}
