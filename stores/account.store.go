package stores

import (
	"errors"

	"gorm.io/gorm"

	"certportal/models"
)

// ErrDuplicateEmail is returned by Insert when the email unique index
// rejects the write.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountStore is the user-account persistence interface. The issuance
// pipeline only needs FindByEmail and Insert; the remaining methods back
// the admin user-management surface.
type AccountStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindByResetToken(token string) (*models.User, error)
	Insert(user *models.User) error
	Save(user *models.User) error
	ListStudents() ([]models.User, error)
	Delete(id uint) error
}

type gormAccountStore struct {
	db *gorm.DB
}

// NewAccountStore returns an AccountStore backed by GORM.
func NewAccountStore(db *gorm.DB) AccountStore {
	return &gormAccountStore{db: db}
}

// FindByEmail returns the account with this email, or (nil, nil) when no
// account exists. Callers pass emails already trimmed and lowercased.
func (s *gormAccountStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormAccountStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormAccountStore) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	err := s.db.Where("reset_token = ? AND is_deleted = ?", token, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormAccountStore) Insert(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *gormAccountStore) Save(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *gormAccountStore) ListStudents() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("role = ? AND is_deleted = ?", "student", false).
		Order("created_at desc").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Delete soft-deletes the account, matching the portal's convention of
// never hard-deleting user rows.
func (s *gormAccountStore) Delete(id uint) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("is_deleted", true).Error
}
