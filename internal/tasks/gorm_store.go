package tasks

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

// NewGormStore creates a GORM-backed task store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, task *Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, task *Task) error {
	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Task{}, id)
	if res.Error != nil {
		return apperrors.StoreUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*Task, error) {
	var task Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return &task, nil
}

func (s *GormStore) ListPage(ctx context.Context, ownerID uint, page, limit int) ([]Task, int64, error) {
	offset := (page - 1) * limit

	var items []Task
	err := s.db.WithContext(ctx).
		Where("author_id = ?", ownerID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, apperrors.StoreUnavailable(err)
	}

	var total int64
	err = s.db.WithContext(ctx).
		Model(&Task{}).
		Where("author_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, apperrors.StoreUnavailable(err)
	}

	return items, total, nil
}
