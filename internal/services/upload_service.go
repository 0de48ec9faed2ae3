package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"aula_backend/internal/logger"
	"aula_backend/internal/models"
	"aula_backend/internal/repositories"
	"aula_backend/internal/services/dto"
	"aula_backend/internal/storage"
	"aula_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UploadService interface {
	SaveTaskFile(ctx context.Context, taskID, originalName string, reader io.Reader) (*dto.TaskFileResponse, error)
	ListTaskFiles(taskID string) ([]dto.TaskFileResponse, error)
	OpenFile(ctx context.Context, fileID string) (*models.TaskFile, io.ReadCloser, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type uploadService struct {
	taskRepo repositories.TaskRepository
	store    storage.Storage
}

func NewUploadService(taskRepo repositories.TaskRepository, store storage.Storage) UploadService {
	return &uploadService{taskRepo: taskRepo, store: store}
}

// SaveTaskFile writes the file to disk under a collision-free name and
// records it against the task.
func (s *uploadService) SaveTaskFile(ctx context.Context, taskID, originalName string, reader io.Reader) (*dto.TaskFileResponse, error) {
	safeName := filepath.Base(originalName)
	storedName := fmt.Sprintf("%s_%s", uuid.New().String(), safeName)
	storedPath := path.Join("tasks", taskID, storedName)

	if err := s.store.Save(ctx, storedPath, reader); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "upload",
			"Failed to store file", 500)
	}

	file := &models.TaskFile{
		TaskID:       taskID,
		Filename:     storedName,
		OriginalName: safeName,
		Path:         storedPath,
	}
	if err := s.taskRepo.CreateFile(file); err != nil {
		// The row is the source of truth; drop the orphaned disk file.
		if delErr := s.store.Delete(ctx, storedPath); delErr != nil {
			logger.Warn("failed to clean up orphaned upload", "path", storedPath, "error", delErr)
		}
		return nil, apperrors.StoreError("upload", err)
	}

	return &dto.TaskFileResponse{
		ID:           file.ID,
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
		URL:          downloadURL(file.ID),
	}, nil
}

func (s *uploadService) ListTaskFiles(taskID string) ([]dto.TaskFileResponse, error) {
	files, err := s.taskRepo.ListFilesByTask(taskID)
	if err != nil {
		return nil, apperrors.StoreError("upload", err)
	}

	out := make([]dto.TaskFileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, dto.TaskFileResponse{
			ID:           f.ID,
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			URL:          downloadURL(f.ID),
		})
	}
	return out, nil
}

func (s *uploadService) OpenFile(ctx context.Context, fileID string) (*models.TaskFile, io.ReadCloser, error) {
	file, err := s.taskRepo.FindFileByID(fileID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskFileNotFound) {
			return nil, nil, apperrors.NotFoundError("upload", "File not found")
		}
		return nil, nil, apperrors.StoreError("upload", err)
	}

	reader, err := s.store.Open(ctx, file.Path)
	if err != nil {
		return nil, nil, apperrors.NotFoundError("upload", "File not found")
	}
	return file, reader, nil
}

func (s *uploadService) DeleteFile(ctx context.Context, fileID string) error {
	file, err := s.taskRepo.FindFileByID(fileID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskFileNotFound) {
			return apperrors.NotFoundError("upload", "File not found")
		}
		return apperrors.StoreError("upload", err)
	}

	if err := s.taskRepo.DeleteFile(file.ID); err != nil {
		return apperrors.StoreError("upload", err)
	}
	if err := s.store.Delete(ctx, file.Path); err != nil {
		logger.Warn("failed to delete file from disk", "path", file.Path, "error", err)
	}
	return nil
}

func downloadURL(fileID string) string {
	return "/api/files/" + fileID + "/download"
}
