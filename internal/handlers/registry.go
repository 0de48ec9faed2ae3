package handlers

import (
	"aula_backend/internal/config"
	"aula_backend/internal/services"
	"aula_backend/internal/validator"
)

// Registry holds every HTTP handler, constructed once at startup.
type Registry struct {
	Auth         *AuthHandler
	User         *UserHandler
	Class        *ClassHandler
	Notification *NotificationHandler
	Task         *TaskHandler
}

func NewRegistry(cfg *config.Config, v *validator.Validator, svc *services.ServiceContainer) *Registry {
	base := NewBaseHandler(v)
	return &Registry{
		Auth:         NewAuthHandler(base, svc.AuthService),
		User:         NewUserHandler(base, svc.UserService),
		Class:        NewClassHandler(base, svc.ClassService),
		Notification: NewNotificationHandler(base, svc.NotificationService),
		Task:         NewTaskHandler(base, svc.TaskService, svc.UploadService, cfg.Upload.MaxSize),
	}
}
