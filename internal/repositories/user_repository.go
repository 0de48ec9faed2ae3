package repositories

import (
	"errors"
	"time"

	"aula_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPendingNotFound = errors.New("pending registration not found")
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)

	CreatePending(pending *models.PendingRegistration) error
	FindPendingByToken(token string) (*models.PendingRegistration, error)
	DeletePending(token string) error
}

type UserRepositoryImpl struct {
	db  *gorm.DB
	ids *IDAllocator
}

func NewUserRepository(db *gorm.DB, ids *IDAllocator) UserRepository {
	return &UserRepositoryImpl{db: db, ids: ids}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if user.ID == "" {
		id, err := r.ids.Allocate("users")
		if err != nil {
			return err
		}
		user.ID = id
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) CreatePending(pending *models.PendingRegistration) error {
	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = time.Now()
	}
	return r.db.Create(pending).Error
}

func (r *UserRepositoryImpl) FindPendingByToken(token string) (*models.PendingRegistration, error) {
	var pending models.PendingRegistration
	err := r.db.First(&pending, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingNotFound
		}
		return nil, err
	}
	return &pending, nil
}

func (r *UserRepositoryImpl) DeletePending(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.PendingRegistration{}).Error
}
