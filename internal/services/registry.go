package services

// ServiceContainer bundles every service for wiring and tests.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ClassService        ClassService
	NotificationService NotificationService
	TaskService         TaskService
	UploadService       UploadService
}
