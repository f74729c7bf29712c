package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/middleware"
	"health-dashboard-be/internal/service"
)

type RiskController struct {
	riskService service.RiskService
	logger      zerolog.Logger
}

func NewRiskController(riskService service.RiskService, logger zerolog.Logger) *RiskController {
	return &RiskController{
		riskService: riskService,
		logger:      logger,
	}
}

// Current handles GET /api/risk
func (rc *RiskController) Current(c *gin.Context) {
	response, err := rc.riskService.Current(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		internalError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Analyze handles POST /api/risk/analyze
func (rc *RiskController) Analyze(c *gin.Context) {
	response, err := rc.riskService.Analyze(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, service.ErrNoHealthData) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No health data available"})
		return
	}
	if err != nil {
		internalError(c, rc.logger, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
