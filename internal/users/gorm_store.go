package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/skillsenselab/taskhive/internal/errors"
)

// GormStore implements Store on top of GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GORM-backed user store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return &user, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return &user, nil
}

func (s *GormStore) Create(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.DuplicateEmail().WithCause(err)
		}
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]User, error) {
	var list []User
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&list).Error; err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return list, nil
}
