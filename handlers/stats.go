package handlers

import (
	"net/http"

	"github.com/Project-Ma-y/Ma-y-sub000/services/stats"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsHandler serves the funnel statistics endpoints.
type StatsHandler struct {
	Stats stats.Service
}

// NewStatsHandler wires a StatsHandler.
func NewStatsHandler(statsSvc stats.Service) *StatsHandler {
	return &StatsHandler{Stats: statsSvc}
}

func (h *StatsHandler) rateResponse(c *gin.Context, name string, compute func() (float64, error)) {
	rate, err := compute()
	if err != nil {
		utils.GetLogger().Error("stats computation failed",
			zap.String("stat", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats computation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}

// SignupConversionHandler handles GET /api/stats/signup-conversion.
func (h *StatsHandler) SignupConversionHandler(c *gin.Context) {
	h.rateResponse(c, "signup-conversion", h.Stats.SignupConversion)
}

// ApplicationReachHandler handles GET /api/stats/application-reach.
func (h *StatsHandler) ApplicationReachHandler(c *gin.Context) {
	h.rateResponse(c, "application-reach", h.Stats.ApplicationReach)
}

// ApplicationConversionHandler handles GET /api/stats/application-conversion.
func (h *StatsHandler) ApplicationConversionHandler(c *gin.Context) {
	h.rateResponse(c, "application-conversion", h.Stats.ApplicationConversion)
}

// FunnelSummaryHandler handles GET /api/stats/funnel.
func (h *StatsHandler) FunnelSummaryHandler(c *gin.Context) {
	summary, err := h.Stats.FunnelSummary()
	if err != nil {
		utils.GetLogger().Error("funnel summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats computation failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
