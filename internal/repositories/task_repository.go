package repositories

import (
	"errors"
	"time"

	"aula_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskFileNotFound = errors.New("task file not found")
)

// StudentTaskRow is a task joined with one student's progress. Status is
// empty when the student has no progress row yet.
type StudentTaskRow struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"-"`
}

type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id string) (*models.Task, error)
	ListForStudent(classID, studentID string) ([]StudentTaskRow, error)
	UpsertProgress(taskID, studentID string, status models.TaskStatus) error

	CreateFile(file *models.TaskFile) error
	FindFileByID(id string) (*models.TaskFile, error)
	ListFilesByTask(taskID string) ([]models.TaskFile, error)
	DeleteFile(id string) error
}

type TaskRepositoryImpl struct {
	db  *gorm.DB
	ids *IDAllocator
}

func NewTaskRepository(db *gorm.DB, ids *IDAllocator) TaskRepository {
	return &TaskRepositoryImpl{db: db, ids: ids}
}

func (r *TaskRepositoryImpl) Create(task *models.Task) error {
	if task.ID == "" {
		id, err := r.ids.Allocate("tasks")
		if err != nil {
			return err
		}
		task.ID = id
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	return r.db.Create(task).Error
}

func (r *TaskRepositoryImpl) FindByID(id string) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListForStudent(classID, studentID string) ([]StudentTaskRow, error) {
	var rows []StudentTaskRow
	err := r.db.Table("tasks t").
		Select("t.id, t.title, t.description, p.status").
		Joins("LEFT JOIN task_progresses p ON t.id = p.task_id AND p.student_id = ?", studentID).
		Where("t.class_id = ?", classID).
		Order("t.title").
		Scan(&rows).Error
	return rows, err
}

func (r *TaskRepositoryImpl) UpsertProgress(taskID, studentID string, status models.TaskStatus) error {
	var progress models.TaskProgress
	err := r.db.First(&progress, "task_id = ? AND student_id = ?", taskID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		id, allocErr := r.ids.Allocate("task_progresses")
		if allocErr != nil {
			return allocErr
		}
		progress = models.TaskProgress{
			ID:        id,
			TaskID:    taskID,
			StudentID: studentID,
			Status:    status,
			UpdatedAt: time.Now(),
		}
		return r.db.Create(&progress).Error
	}
	if err != nil {
		return err
	}

	return r.db.Model(&progress).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

func (r *TaskRepositoryImpl) CreateFile(file *models.TaskFile) error {
	if file.ID == "" {
		id, err := r.ids.Allocate("task_files")
		if err != nil {
			return err
		}
		file.ID = id
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	return r.db.Create(file).Error
}

func (r *TaskRepositoryImpl) FindFileByID(id string) (*models.TaskFile, error) {
	var file models.TaskFile
	err := r.db.First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *TaskRepositoryImpl) ListFilesByTask(taskID string) ([]models.TaskFile, error) {
	var files []models.TaskFile
	err := r.db.Where("task_id = ?", taskID).Order("uploaded_at").Find(&files).Error
	return files, err
}

func (r *TaskRepositoryImpl) DeleteFile(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.TaskFile{}).Error
}
