package services

import (
	"aula_backend/internal/repositories"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"
)

type UserService interface {
	Get(userID string) (*dto.UserResponse, error)
	GetByEmail(email string) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NotFoundError("user", "User not found")
		}
		return nil, apperrors.StoreError("user", err)
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *userService) GetByEmail(email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NotFoundError("user", "User not found")
		}
		return nil, apperrors.StoreError("user", err)
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
