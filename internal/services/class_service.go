package services

import (
	"errors"
	"net/http"

	"aula_backend/internal/models"
	"aula_backend/internal/repositories"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"
)

// ErrAlreadyMember is returned by Join when the user already belongs to the
// class. Callers decide whether it is an error; the notification accept path
// swallows it.
var ErrAlreadyMember = errors.New("user is already a member of the class")

// Placeholder avatar served for every roster entry; the backend stores no
// profile photos.
const defaultMemberPhoto = "https://static.vecteezy.com/system/resources/previews/036/594/092/non_2x/man-empty-avatar-photo-placeholder-for-social-networks-resumes-forums-and-dating-sites-male-and-female-no-photo-images-for-unfilled-user-profile-free-vector.jpg"

type ClassService interface {
	Create(req *dto.CreateClassRequest, teacherID string) (string, error)
	Get(classID string) (*models.Class, error)
	Delete(classID string) error
	Join(userID, classID string) error
	Leave(userID, classID string) error
	ListForUser(userID string) ([]repositories.ClassWithTeacher, error)
	Members(classID string) ([]dto.ClassMemberResponse, error)
}

type classService struct {
	classRepo repositories.ClassRepository
}

func NewClassService(classRepo repositories.ClassRepository) ClassService {
	return &classService{classRepo: classRepo}
}

// Create persists the class and joins the creating teacher to it.
func (s *classService) Create(req *dto.CreateClassRequest, teacherID string) (string, error) {
	class := &models.Class{
		Name:        req.Name,
		Description: req.Description,
		TeacherID:   teacherID,
	}

	if err := s.classRepo.Create(class); err != nil {
		return "", apperrors.StoreError("class", err)
	}

	if err := s.Join(teacherID, class.ID); err != nil {
		return "", err
	}
	return class.ID, nil
}

func (s *classService) Get(classID string) (*models.Class, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrClassNotFound) {
			return nil, apperrors.NotFoundError("class", "Class not found")
		}
		return nil, apperrors.StoreError("class", err)
	}
	return class, nil
}

// Delete removes the memberships first, then the class itself.
// Notifications referencing the class are left in place.
func (s *classService) Delete(classID string) error {
	if err := s.classRepo.DeleteMembershipsByClass(classID); err != nil {
		return apperrors.StoreError("class", err)
	}
	if err := s.classRepo.Delete(classID); err != nil {
		return apperrors.StoreError("class", err)
	}
	return nil
}

// Join adds the user to the class. Returns ErrAlreadyMember when the
// membership row already exists.
func (s *classService) Join(userID, classID string) error {
	member, err := s.classRepo.IsMember(userID, classID)
	if err != nil {
		return apperrors.StoreError("class", err)
	}
	if member {
		return apperrors.Wrap(ErrAlreadyMember, apperrors.CodeAlreadyExists, "class",
			"User is already a member of the class", http.StatusConflict)
	}

	if err := s.classRepo.CreateMembership(userID, classID); err != nil {
		return apperrors.StoreError("class", err)
	}
	return nil
}

func (s *classService) Leave(userID, classID string) error {
	if err := s.classRepo.DeleteMembership(userID, classID); err != nil {
		return apperrors.StoreError("class", err)
	}
	return nil
}

func (s *classService) ListForUser(userID string) ([]repositories.ClassWithTeacher, error) {
	classes, err := s.classRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.StoreError("class", err)
	}
	return classes, nil
}

func (s *classService) Members(classID string) ([]dto.ClassMemberResponse, error) {
	members, err := s.classRepo.Members(classID)
	if err != nil {
		return nil, apperrors.StoreError("class", err)
	}

	roster := make([]dto.ClassMemberResponse, 0, len(members))
	for _, m := range members {
		roster = append(roster, dto.ClassMemberResponse{
			ID:     m.ID,
			Name:   m.Name,
			Status: "offline",
			Photo:  defaultMemberPhoto,
		})
	}
	return roster, nil
}
