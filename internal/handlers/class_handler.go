package handlers

import (
	"net/http"

	"aula_backend/internal/services"
	"aula_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	*BaseHandler
	classService services.ClassService
}

func NewClassHandler(base *BaseHandler, classService services.ClassService) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  base,
		classService: classService,
	}
}

// Create makes a new class owned by the authenticated teacher, who is also
// enrolled as its first member.
func (h *ClassHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	classID, err := h.classService.Create(&req, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateClassResponse{Status: "success", ClassID: classID})
}

// List returns every class the authenticated user belongs to.
func (h *ClassHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	classes, err := h.classService.ListForUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *ClassHandler) Get(c *gin.Context) {
	classID, ok := h.RequireParam(c, "classId")
	if !ok {
		return
	}

	class, err := h.classService.Get(classID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Delete(c *gin.Context) {
	classID, ok := h.RequireParam(c, "classId")
	if !ok {
		return
	}

	if err := h.classService.Delete(classID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Join enrolls the authenticated user into the class named in the body.
func (h *ClassHandler) Join(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ClassMembershipRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.classService.Join(userID, req.ClassID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ClassHandler) Leave(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ClassMembershipRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.classService.Leave(userID, req.ClassID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Members returns the class roster.
func (h *ClassHandler) Members(c *gin.Context) {
	classID, ok := h.RequireParam(c, "classId")
	if !ok {
		return
	}

	members, err := h.classService.Members(classID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
