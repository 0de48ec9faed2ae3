package handlers

import (
	"aula_backend/internal/logger"
	"aula_backend/internal/validator"
	"aula_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries the pieces every handler needs. Concrete handlers
// embed it.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the request body into obj and runs validation.
// On failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.Warn("failed to bind JSON body", "error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.Warn("validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.Error("internal validator error", "error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError maps a service error onto the HTTP response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.Warn("service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.Error("internal server error", "error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// GetAndAuthorizeUserID pulls the authenticated user id set by the auth
// middleware. On failure it writes a 401 and returns false.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		logger.Warn("unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid user ID in context"))
		return "", false
	}
	return userID, true
}

// RequireParam fetches a path parameter, writing a 400 when it is absent.
func (h *BaseHandler) RequireParam(c *gin.Context, key string) (string, bool) {
	value := c.Param(key)
	if value == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required path parameter: "+key))
		return "", false
	}
	return value, true
}
