package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"

	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// Task is a study task. Priority and Status are free-form strings; only
// their defaults are fixed.
type Task struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_user_order,priority:1"`
	TaskName      string    `gorm:"not null"`
	Subject       string
	EstimatedTime float64 `gorm:"not null;default:0"`
	Priority      string  `gorm:"size:32;default:'Medium'"`
	Status        string  `gorm:"size:32;default:'pending'"`
	Order         int     `gorm:"column:sort_order;not null;default:0;index:idx_tasks_user_order,priority:2"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Task) TableName() string {
	return "tasks"
}

// IsCompleted compares case-insensitively, like every client-side check.
func (t *Task) IsCompleted() bool {
	return strings.EqualFold(t.Status, TaskStatusCompleted)
}

// IsPending ตรวจสอบว่ายังไม่เสร็จ
func (t *Task) IsPending() bool {
	return strings.EqualFold(t.Status, TaskStatusPending)
}

// ApplyDefaults fills Priority and Status when they were not supplied.
func (t *Task) ApplyDefaults() {
	if strings.TrimSpace(t.Priority) == "" {
		t.Priority = TaskPriorityMedium
	}
	if strings.TrimSpace(t.Status) == "" {
		t.Status = TaskStatusPending
	}
}
