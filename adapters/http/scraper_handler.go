package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/howlerhq/howler-api/internal/application/usecase/scraper"
	"github.com/howlerhq/howler-api/internal/domain/source"
)

type ScraperHandler struct {
	scheduler *scraper.Scheduler
	registry  *source.Registry
}

func NewScraperHandler(scheduler *scraper.Scheduler, registry *source.Registry) *ScraperHandler {
	return &ScraperHandler{scheduler: scheduler, registry: registry}
}

func (h *ScraperHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  ToScraperConfigDTO(h.registry.List(), h.scheduler.Config()),
	})
}

func (h *ScraperHandler) UpdateConfig(c *gin.Context) {
	var req UpdateScraperConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if _, err := h.scheduler.Configure(req.Enabled, req.IntervalHours); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  ToScraperConfigDTO(h.registry.List(), h.scheduler.Config()),
	})
}

func (h *ScraperHandler) Run(c *gin.Context) {
	report, err := h.scheduler.RunNow(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
