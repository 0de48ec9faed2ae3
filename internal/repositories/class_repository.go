package repositories

import (
	"errors"
	"time"

	"aula_backend/internal/models"

	"gorm.io/gorm"
)

var ErrClassNotFound = errors.New("class not found")

// ClassWithTeacher is a class row joined with its teacher's display name.
type ClassWithTeacher struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeacherID   string    `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	TeacherName string    `json:"teacher_name"`
}

// ClassMember is a roster entry.
type ClassMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ClassRepository interface {
	Create(class *models.Class) error
	FindByID(id string) (*models.Class, error)
	Delete(id string) error

	CreateMembership(userID, classID string) error
	DeleteMembership(userID, classID string) error
	DeleteMembershipsByClass(classID string) error
	IsMember(userID, classID string) (bool, error)
	ListByUser(userID string) ([]ClassWithTeacher, error)
	Members(classID string) ([]ClassMember, error)
}

type ClassRepositoryImpl struct {
	db  *gorm.DB
	ids *IDAllocator
}

func NewClassRepository(db *gorm.DB, ids *IDAllocator) ClassRepository {
	return &ClassRepositoryImpl{db: db, ids: ids}
}

func (r *ClassRepositoryImpl) Create(class *models.Class) error {
	if class.ID == "" {
		id, err := r.ids.Allocate("classes")
		if err != nil {
			return err
		}
		class.ID = id
	}
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now()
	}
	return r.db.Create(class).Error
}

func (r *ClassRepositoryImpl) FindByID(id string) (*models.Class, error) {
	var class models.Class
	err := r.db.First(&class, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepositoryImpl) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Class{}).Error
}

func (r *ClassRepositoryImpl) CreateMembership(userID, classID string) error {
	id, err := r.ids.Allocate("class_memberships")
	if err != nil {
		return err
	}

	membership := &models.ClassMembership{
		ID:       id,
		UserID:   userID,
		ClassID:  classID,
		JoinedAt: time.Now(),
	}
	return r.db.Create(membership).Error
}

func (r *ClassRepositoryImpl) DeleteMembership(userID, classID string) error {
	return r.db.Where("user_id = ? AND class_id = ?", userID, classID).
		Delete(&models.ClassMembership{}).Error
}

func (r *ClassRepositoryImpl) DeleteMembershipsByClass(classID string) error {
	return r.db.Where("class_id = ?", classID).Delete(&models.ClassMembership{}).Error
}

func (r *ClassRepositoryImpl) IsMember(userID, classID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ClassMembership{}).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassRepositoryImpl) ListByUser(userID string) ([]ClassWithTeacher, error) {
	var classes []ClassWithTeacher
	err := r.db.Table("classes c").
		Select("c.id, c.name, c.description, c.teacher_id, c.created_at, u.name AS teacher_name").
		Joins("JOIN class_memberships m ON c.id = m.class_id").
		Joins("JOIN users u ON c.teacher_id = u.id").
		Where("m.user_id = ?", userID).
		Scan(&classes).Error
	return classes, err
}

func (r *ClassRepositoryImpl) Members(classID string) ([]ClassMember, error) {
	var members []ClassMember
	err := r.db.Table("users u").
		Select("u.id, u.name").
		Joins("JOIN class_memberships m ON m.user_id = u.id").
		Where("m.class_id = ?", classID).
		Scan(&members).Error
	return members, err
}
