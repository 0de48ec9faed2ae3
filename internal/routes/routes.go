package routes

import (
	"net/http"

	"aula_backend/internal/handlers"
	"aula_backend/internal/middleware"
	"aula_backend/internal/models"
	"aula_backend/ws"

	"github.com/gin-gonic/gin"
)

// Setup registers every route on the engine.
func Setup(r *gin.Engine, h *handlers.Registry, wsHandler *ws.Handler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws", wsHandler.ServeWS)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register/teacher", h.Auth.RegisterTeacher)
		auth.POST("/register/student", h.Auth.RegisterStudent)
		auth.POST("/register/confirm", h.Auth.Confirm)
		auth.POST("/login", h.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		users := protected.Group("/users")
		{
			users.GET("/me", h.User.Me)
			users.GET("/email/:email", h.User.GetByEmail)
			users.GET("/:userId", h.User.Get)
		}

		classes := protected.Group("/classes")
		{
			classes.POST("", middleware.RoleMiddleware(models.UserRoleTeacher), h.Class.Create)
			classes.GET("", h.Class.List)
			classes.POST("/join", h.Class.Join)
			classes.POST("/leave", h.Class.Leave)
			classes.GET("/:classId", h.Class.Get)
			classes.DELETE("/:classId", middleware.RoleMiddleware(models.UserRoleTeacher), h.Class.Delete)
			classes.GET("/:classId/members", h.Class.Members)

			classes.POST("/:classId/tasks", middleware.RoleMiddleware(models.UserRoleTeacher), h.Task.Create)
			classes.GET("/:classId/tasks", h.Task.Board)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.POST("", h.Notification.Create)
			notifications.GET("", h.Notification.List)
			notifications.POST("/assign", h.Notification.Assign)
			notifications.POST("/dispatch", h.Notification.Dispatch)
			notifications.PUT("/assignments/:assignmentId/seen", h.Notification.MarkSeen)
			notifications.POST("/assignments/:assignmentId/respond", h.Notification.Respond)
			notifications.DELETE("/assignments/:assignmentId", h.Notification.Delete)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.PUT("/:taskId/status", h.Task.SetStatus)
			tasks.POST("/:taskId/files", h.Task.UploadFiles)
			tasks.GET("/:taskId/files", h.Task.ListFiles)
		}

		files := protected.Group("/files")
		{
			files.GET("/:fileId/download", h.Task.Download)
			files.DELETE("/:fileId", h.Task.DeleteFile)
		}
	}
}
