package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/pkg/apperror"
)

// respondError maps domain errors onto HTTP statuses and the API's
// {success:false, error:...} envelope. Resolution failures additionally
// expose which strategies were attempted and why each failed.
func respondError(c *gin.Context, err error) {
	status := apperror.ToHTTPStatus(err)
	body := gin.H{"success": false, "error": "internal server error"}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		body["error"] = appErr.Message
		if appErr.Details != "" {
			body["details"] = appErr.Details
		}
	}

	var resErr *service.ResolutionError
	if errors.As(err, &resErr) {
		body["error"] = "Could not fetch Instagram data. Instagram may be blocking requests."
		body["attempts"] = resErr.Attempts
	}

	c.JSON(status, body)
}
