package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	accountUC "github.com/howlerhq/howler-api/internal/application/usecase/account"
	"github.com/howlerhq/howler-api/internal/application/usecase/scraper"
	"github.com/howlerhq/howler-api/internal/domain/source"
)

type AccountHandler struct {
	addAccountUseCase    *accountUC.AddAccountUseCase
	removeAccountUseCase *accountUC.RemoveAccountUseCase
	registry             *source.Registry
	scheduler            *scraper.Scheduler
}

func NewAccountHandler(
	addUC *accountUC.AddAccountUseCase,
	removeUC *accountUC.RemoveAccountUseCase,
	registry *source.Registry,
	scheduler *scraper.Scheduler,
) *AccountHandler {
	return &AccountHandler{
		addAccountUseCase:    addUC,
		removeAccountUseCase: removeUC,
		registry:             registry,
		scheduler:            scheduler,
	}
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts := h.registry.List()
	if accounts == nil {
		accounts = []source.Source{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "accounts": accounts})
}

func (h *AccountHandler) Add(c *gin.Context) {
	var req AddAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username required"})
		return
	}

	output, err := h.addAccountUseCase.Execute(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Added @%s (%d posts)", output.Source.Username, output.NewPosts),
		"config":  ToScraperConfigDTO(h.registry.List(), h.scheduler.Config()),
	})
}

func (h *AccountHandler) Remove(c *gin.Context) {
	removeMedia := c.Query("removeMedia") == "true"

	if err := h.removeAccountUseCase.Execute(c.Request.Context(), c.Param("username"), removeMedia); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  ToScraperConfigDTO(h.registry.List(), h.scheduler.Config()),
	})
}
