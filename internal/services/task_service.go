package services

import (
	"aula_backend/internal/models"
	"aula_backend/internal/repositories"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"
)

type TaskService interface {
	Create(classID string, req *dto.CreateTaskRequest) (string, error)
	BoardForStudent(classID, studentID string) (*dto.TaskBoard, error)
	SetStatus(taskID, studentID string, status models.TaskStatus) error
}

type taskService struct {
	taskRepo repositories.TaskRepository
}

func NewTaskService(taskRepo repositories.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

func (s *taskService) Create(classID string, req *dto.CreateTaskRequest) (string, error) {
	task := &models.Task{
		ClassID:     classID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return "", apperrors.StoreError("task", err)
	}
	return task.ID, nil
}

// BoardForStudent groups the class's tasks by the student's progress.
// Tasks with no progress row land in todo.
func (s *taskService) BoardForStudent(classID, studentID string) (*dto.TaskBoard, error) {
	rows, err := s.taskRepo.ListForStudent(classID, studentID)
	if err != nil {
		return nil, apperrors.StoreError("task", err)
	}

	board := &dto.TaskBoard{
		Todo:       []dto.TaskEntry{},
		InProgress: []dto.TaskEntry{},
		Done:       []dto.TaskEntry{},
	}
	for _, row := range rows {
		entry := dto.TaskEntry{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
		}
		switch row.Status {
		case models.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, entry)
		case models.TaskStatusDone:
			board.Done = append(board.Done, entry)
		default:
			board.Todo = append(board.Todo, entry)
		}
	}
	return board, nil
}

func (s *taskService) SetStatus(taskID, studentID string, status models.TaskStatus) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return apperrors.NotFoundError("task", "Task not found")
		}
		return apperrors.StoreError("task", err)
	}

	if err := s.taskRepo.UpsertProgress(taskID, studentID, status); err != nil {
		return apperrors.StoreError("task", err)
	}
	return nil
}
