package handlers

import (
	"net/http"

	"aula_backend/internal/models"
	"aula_backend/internal/services"
	"aula_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

// Create stores a notification without assigning it to anyone.
func (h *NotificationHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateNotificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	id, err := h.notificationService.Create(&req, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateNotificationResponse{Status: "success", ID: id})
}

// Assign targets an existing notification at one user.
func (h *NotificationHandler) Assign(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.AssignRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	assignmentID, err := h.notificationService.Assign(req.NotificationID, req.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AssignResponse{Status: "success", AssignmentID: assignmentID})
}

// Dispatch creates a notification and fans it out to every listed user.
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DispatchRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.notificationService.CreateAndAssign(&req, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns the authenticated user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	rows, err := h.notificationService.ListForUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": rows})
}

// MarkSeen flags an assignment as seen. Marking an already-seen or removed
// assignment succeeds without effect.
func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	assignmentID, ok := h.RequireParam(c, "assignmentId")
	if !ok {
		return
	}

	if err := h.notificationService.MarkSeen(assignmentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Respond accepts or rejects an invitation. Either way the assignment is
// consumed and disappears from the user's list.
func (h *NotificationHandler) Respond(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	assignmentID, ok := h.RequireParam(c, "assignmentId")
	if !ok {
		return
	}

	var req dto.RespondRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.notificationService.Respond(assignmentID, models.ResponseAction(req.Action)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Delete removes an assignment without responding to it.
func (h *NotificationHandler) Delete(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	assignmentID, ok := h.RequireParam(c, "assignmentId")
	if !ok {
		return
	}

	if err := h.notificationService.DeleteAssignment(assignmentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
