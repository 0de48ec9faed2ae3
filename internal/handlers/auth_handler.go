package handlers

import (
	"net/http"

	"aula_backend/internal/models"
	"aula_backend/internal/services"
	"aula_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterTeacher starts a teacher registration. The account is created
// only after Confirm succeeds with the emailed code.
func (h *AuthHandler) RegisterTeacher(c *gin.Context) {
	h.register(c, models.UserRoleTeacher)
}

// RegisterStudent starts a student registration.
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	h.register(c, models.UserRoleStudent)
}

func (h *AuthHandler) register(c *gin.Context, role models.UserRole) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(&req, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Confirm(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
