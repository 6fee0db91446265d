package repositories

import (
	"context"

	"github.com/google/uuid"
	"study-tracker/domain/models"
)

// TaskRepository is the Task Store. Every method is scoped by owner; a task
// owned by someone else behaves exactly like a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error)
	// ListByUserID returns tasks sorted by order asc, createdAt desc
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	// Update writes every column of task, including zero values
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	// MaxOrderByUserID returns found=false when the owner has no tasks
	MaxOrderByUserID(ctx context.Context, userID uuid.UUID) (maxOrder int, found bool, err error)
}
