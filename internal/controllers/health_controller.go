package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/middleware"
	"health-dashboard-be/internal/models"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/service"
)

type HealthController struct {
	healthService service.HealthService
	logger        zerolog.Logger
}

func NewHealthController(healthService service.HealthService, logger zerolog.Logger) *HealthController {
	return &HealthController{
		healthService: healthService,
		logger:        logger,
	}
}

// List handles GET /api/health
func (hc *HealthController) List(c *gin.Context) {
	var q repository.MetricQuery
	var err error
	if q.From, err = queryDate(c, "startDate"); err != nil {
		badRequest(c, err)
		return
	}
	if q.To, err = queryDate(c, "endDate"); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit, err = queryInt(c, "limit", service.DefaultMetricLimit); err != nil {
		badRequest(c, err)
		return
	}

	metrics, err := hc.healthService.List(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		internalError(c, hc.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.MetricsResponse{
		Success: true,
		Count:   len(metrics),
		Metrics: metrics,
	})
}

// Save handles POST /api/health
func (hc *HealthController) Save(c *gin.Context) {
	var req models.HealthMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := hc.healthService.Save(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		internalError(c, hc.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Dummy handles GET /api/health/dummy
func (hc *HealthController) Dummy(c *gin.Context) {
	days, err := queryInt(c, "days", service.DefaultWindowDays)
	if err != nil {
		badRequest(c, err)
		return
	}

	metrics, err := hc.healthService.GenerateDummy(c.Request.Context(), middleware.UserID(c), days)
	if err != nil {
		internalError(c, hc.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.MetricsResponse{
		Success: true,
		Message: fmt.Sprintf("Generated %d days of dummy data", len(metrics)),
		Count:   len(metrics),
		Metrics: metrics,
	})
}

// Stats handles GET /api/health/stats
func (hc *HealthController) Stats(c *gin.Context) {
	days, err := queryInt(c, "days", service.DefaultWindowDays)
	if err != nil {
		badRequest(c, err)
		return
	}
	days = service.ClampLimit(days, service.DefaultWindowDays, service.MaxMetricLimit)

	stats, err := hc.healthService.Stats(c.Request.Context(), middleware.UserID(c), days)
	if err != nil {
		internalError(c, hc.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.StatsResponse{Success: true, Days: days, Stats: *stats})
}

// queryDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", key)
}
