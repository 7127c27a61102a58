package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	libraryUC "github.com/howlerhq/howler-api/internal/application/usecase/library"
)

type LibraryHandler struct {
	listItemsUseCase  *libraryUC.ListItemsUseCase
	statsUseCase      *libraryUC.StatsUseCase
	markUsedUseCase   *libraryUC.MarkUsedUseCase
	deleteItemUseCase *libraryUC.DeleteItemUseCase
}

func NewLibraryHandler(
	listUC *libraryUC.ListItemsUseCase,
	statsUC *libraryUC.StatsUseCase,
	markUsedUC *libraryUC.MarkUsedUseCase,
	deleteUC *libraryUC.DeleteItemUseCase,
) *LibraryHandler {
	return &LibraryHandler{
		listItemsUseCase:  listUC,
		statsUseCase:      statsUC,
		markUsedUseCase:   markUsedUC,
		deleteItemUseCase: deleteUC,
	}
}

func (h *LibraryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	input := libraryUC.ListItemsInput{
		Account:   c.Query("account"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "date"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		Limit:     limit,
	}
	if usedParam, ok := c.GetQuery("used"); ok {
		used := usedParam == "true"
		input.Used = &used
	}

	output, err := h.listItemsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       output.Items,
		"pagination": output.Pagination,
	})
}

func (h *LibraryHandler) Stats(c *gin.Context) {
	output, err := h.statsUseCase.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": output})
}

func (h *LibraryHandler) MarkUsed(c *gin.Context) {
	var req MarkUsedRequest
	// An absent body means "mark used", matching the original clients.
	_ = c.ShouldBindJSON(&req)
	used := req.Used == nil || *req.Used

	item, err := h.markUsedUseCase.Execute(c.Request.Context(), c.Param("id"), used)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

func (h *LibraryHandler) Delete(c *gin.Context) {
	if err := h.deleteItemUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
