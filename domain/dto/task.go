package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	TaskName      string  `json:"taskName" validate:"required,max=200"`
	Subject       string  `json:"subject" validate:"required,max=100"`
	EstimatedTime float64 `json:"estimatedTime" validate:"gte=0"`
	Priority      string  `json:"priority" validate:"omitempty,max=32"`
	Status        string  `json:"status" validate:"omitempty,max=32"`
}

var CreateTaskValidationMessages = map[string]string{
	"required":          "Please fill all fields",
	"EstimatedTime.gte": "Estimated time cannot be negative",
	"max":               "Field is too long",
}

// UpdateTaskRequest is a partial patch: nil fields keep their stored value
type UpdateTaskRequest struct {
	TaskName      *string  `json:"taskName" validate:"omitempty,max=200"`
	Subject       *string  `json:"subject" validate:"omitempty,max=100"`
	EstimatedTime *float64 `json:"estimatedTime" validate:"omitempty,gte=0"`
	Priority      *string  `json:"priority" validate:"omitempty,max=32"`
	Status        *string  `json:"status" validate:"omitempty,max=32"`
	Order         *int     `json:"order"`
}

var UpdateTaskValidationMessages = map[string]string{
	"EstimatedTime.gte": "Estimated time cannot be negative",
	"max":               "Field is too long",
}

// IsEmpty reports whether the patch carries no field at all
func (r *UpdateTaskRequest) IsEmpty() bool {
	return r.TaskName == nil && r.Subject == nil && r.EstimatedTime == nil &&
		r.Priority == nil && r.Status == nil && r.Order == nil
}

type TaskResponse struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"ownerId"`
	TaskName      string    `json:"taskName"`
	Subject       string    `json:"subject"`
	EstimatedTime float64   `json:"estimatedTime"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DeleteTaskResponse struct {
	Msg  string       `json:"msg"`
	Task TaskResponse `json:"task"`
}

// TaskViewQuery ใช้กับ GET /api/tasks/view
type TaskViewQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Priority string `query:"priority"`
	SortBy   string `query:"sortBy"`
}
