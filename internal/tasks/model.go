// Package tasks implements the to-do item CRUD surrounding the auth core:
// models, the store contract, and the ownership/pagination service.
package tasks

import "time"

// Status is the task lifecycle state.
type Status string

const (
	StatusNew       Status = "new"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Task is a personal to-do item owned by a single identity.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description"`
	Status      Status     `gorm:"not null;default:new;index" json:"status"`
	Priority    Priority   `gorm:"not null;default:normal;index" json:"priority"`
	TermDate    *time.Time `json:"term_date,omitempty"`
	AuthorID    uint       `gorm:"not null;index" json:"-"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// TableName sets the GORM table name.
func (Task) TableName() string { return "tasks" }
