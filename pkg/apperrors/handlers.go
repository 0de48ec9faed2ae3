package apperrors

import (
	"aula_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every failed request is rendered as.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError renders err as a JSON error response. Unknown error types are
// wrapped as internal errors so the caller never sees raw error strings.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.Error("server error", "error", appErr.Error(), "path", c.Request.URL.Path)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
