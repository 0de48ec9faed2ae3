package app

import (
	"fmt"

	"gorm.io/gorm"

	"aula_backend/internal/config"
	"aula_backend/internal/database"
	"aula_backend/internal/email"
	"aula_backend/internal/handlers"
	"aula_backend/internal/logger"
	"aula_backend/internal/repositories"
	"aula_backend/internal/routes"
	"aula_backend/internal/services"
	"aula_backend/internal/storage"
	"aula_backend/internal/validator"
	"aula_backend/ws"

	"github.com/gin-gonic/gin"
)

// BuildServices wires repositories and services over an open database.
// Split out so integration tests can assemble the stack against their own
// database handle.
func BuildServices(cfg *config.Config, db *gorm.DB) (*services.ServiceContainer, error) {
	ids := repositories.NewIDAllocator(db)
	userRepo := repositories.NewUserRepository(db, ids)
	classRepo := repositories.NewClassRepository(db, ids)
	notificationRepo := repositories.NewNotificationRepository(db, ids)
	taskRepo := repositories.NewTaskRepository(db, ids)

	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	classService := services.NewClassService(classRepo)
	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, email.NewProvider(cfg)),
		UserService:         services.NewUserService(userRepo),
		ClassService:        classService,
		NotificationService: services.NewNotificationService(notificationRepo, classService),
		TaskService:         services.NewTaskService(taskRepo),
		UploadService:       services.NewUploadService(taskRepo, store),
	}, nil
}

// SetupRouter builds the gin engine with every route registered.
func SetupRouter(cfg *config.Config, svc *services.ServiceContainer, relay *ws.Manager) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	registry := handlers.NewRegistry(cfg, validator.New(), svc)
	routes.Setup(r, registry, ws.NewHandler(relay))
	return r
}

// Run starts the application: config, logging, database, services, routes.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	svc, err := BuildServices(cfg, db)
	if err != nil {
		return err
	}

	r := SetupRouter(cfg, svc, ws.NewManager())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return r.Run(addr)
}
