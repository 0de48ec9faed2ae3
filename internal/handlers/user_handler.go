package handlers

import (
	"net/http"

	"aula_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Get returns any user's public profile by id.
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetByEmail looks a user up by email address.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email, ok := h.RequireParam(c, "email")
	if !ok {
		return
	}

	user, err := h.userService.GetByEmail(email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
