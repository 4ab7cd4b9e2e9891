package tasks

import (
	"context"
	"errors"
	"math"
	"time"

	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/logger"
)

// CreateInput holds the fields for a new task.
type CreateInput struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	TermDate    *time.Time
}

// UpdateInput holds a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	TermDate    *time.Time
}

// Page is one page of an owner's tasks with pagination metadata.
type Page struct {
	Items []Task `json:"items"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int64  `json:"total"`
	Pages int    `json:"pages"`
}

// Service implements task operations with ownership checks and pagination.
type Service struct {
	store Store
	log   *logger.Logger
}

// NewService creates a task service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log.WithComponent("tasks")}
}

// Create adds a new task owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uint, in CreateInput) (*Task, error) {
	task := &Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		TermDate:    in.TermDate,
		AuthorID:    ownerID,
	}
	if task.Status == "" {
		task.Status = StatusNew
	}
	if task.Priority == "" {
		task.Priority = PriorityNormal
	}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, err
	}
	s.log.Debug("task created", logger.Fields("task_id", task.ID, logger.FieldUserID, ownerID))
	return task, nil
}

// Update applies a partial update to a task the owner must own.
func (s *Service) Update(ctx context.Context, ownerID, taskID uint, in UpdateInput) (*Task, error) {
	task, err := s.owned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.TermDate != nil {
		task.TermDate = in.TermDate
	}

	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task the owner must own.
func (s *Service) Delete(ctx context.Context, ownerID, taskID uint) error {
	if _, err := s.owned(ctx, ownerID, taskID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NotFound("task")
		}
		return err
	}
	return nil
}

// ListPage returns one page of the owner's tasks. A page beyond the available
// range (other than the first) is a not-found condition.
func (s *Service) ListPage(ctx context.Context, ownerID uint, page, limit int) (*Page, error) {
	items, total, err := s.store.ListPage(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}

	pages := 1
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	if page > 1 && len(items) == 0 {
		return nil, apperrors.NotFound("page")
	}

	if items == nil {
		items = []Task{}
	}
	return &Page{Items: items, Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// owned loads a task and verifies ownership.
func (s *Service) owned(ctx context.Context, ownerID, taskID uint) (*Task, error) {
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("task")
		}
		return nil, err
	}
	if task.AuthorID != ownerID {
		return nil, apperrors.Forbidden("Not your task.")
	}
	return task, nil
}
