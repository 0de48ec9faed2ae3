package handlers

import (
	"fmt"
	"io"
	"net/http"

	"aula_backend/internal/logger"
	"aula_backend/internal/models"
	"aula_backend/internal/services"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	*BaseHandler
	taskService   services.TaskService
	uploadService services.UploadService
	maxUploadSize int64
}

func NewTaskHandler(base *BaseHandler, taskService services.TaskService, uploadService services.UploadService, maxUploadSize int64) *TaskHandler {
	return &TaskHandler{
		BaseHandler:   base,
		taskService:   taskService,
		uploadService: uploadService,
		maxUploadSize: maxUploadSize,
	}
}

// Create adds a task to a class.
func (h *TaskHandler) Create(c *gin.Context) {
	classID, ok := h.RequireParam(c, "classId")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	taskID, err := h.taskService.Create(classID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateTaskResponse{Status: "success", TaskID: taskID})
}

// Board returns the class's tasks grouped by the authenticated student's
// progress.
func (h *TaskHandler) Board(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	classID, ok := h.RequireParam(c, "classId")
	if !ok {
		return
	}

	board, err := h.taskService.BoardForStudent(classID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// SetStatus moves a task between the authenticated student's board columns.
func (h *TaskHandler) SetStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	taskID, ok := h.RequireParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.SetTaskStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.taskService.SetStatus(taskID, userID, models.TaskStatus(req.Status)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// UploadFiles stores one or more multipart files against a task. Partial
// failure is reported per file rather than failing the whole request.
func (h *TaskHandler) UploadFiles(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	taskID, ok := h.RequireParam(c, "taskId")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No files provided"))
		return
	}

	resp := dto.UploadFilesResponse{Status: "success"}
	for _, header := range files {
		src, err := header.Open()
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		saved, err := h.uploadService.SaveTaskFile(c.Request.Context(), taskID, header.Filename, src)
		src.Close()
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		resp.Uploaded = append(resp.Uploaded, *saved)
	}

	if len(resp.Uploaded) == 0 {
		resp.Status = "error"
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListFiles returns a task's attachments.
func (h *TaskHandler) ListFiles(c *gin.Context) {
	taskID, ok := h.RequireParam(c, "taskId")
	if !ok {
		return
	}

	files, err := h.uploadService.ListTaskFiles(taskID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// Download streams a stored file back under its original name.
func (h *TaskHandler) Download(c *gin.Context) {
	fileID, ok := h.RequireParam(c, "fileId")
	if !ok {
		return
	}

	file, reader, err := h.uploadService.OpenFile(c.Request.Context(), fileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	name := file.OriginalName
	if name == "" {
		name = file.Filename
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already written; nothing more to do than log.
		logger.Warn("file download aborted", "file_id", fileID, "error", err)
	}
}

// DeleteFile removes an attachment from the task and from disk.
func (h *TaskHandler) DeleteFile(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	fileID, ok := h.RequireParam(c, "fileId")
	if !ok {
		return
	}

	if err := h.uploadService.DeleteFile(c.Request.Context(), fileID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
