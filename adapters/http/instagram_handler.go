package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountUC "github.com/howlerhq/howler-api/internal/application/usecase/account"
)

type InstagramHandler struct {
	lookupProfileUseCase *accountUC.LookupProfileUseCase
}

func NewInstagramHandler(lookupUC *accountUC.LookupProfileUseCase) *InstagramHandler {
	return &InstagramHandler{lookupProfileUseCase: lookupUC}
}

// Lookup is the one-off profile fetch; it never registers the account.
func (h *InstagramHandler) Lookup(c *gin.Context) {
	output, err := h.lookupProfileUseCase.Execute(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileLookupDTO{
		Success: true,
		Profile: output.Profile,
		Posts:   output.Posts,
		Notice:  output.Notice,
	})
}
