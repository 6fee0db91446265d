package services

import (
	"context"

	"github.com/google/uuid"

	"study-tracker/domain/dto"
	"study-tracker/domain/models"
	"study-tracker/pkg/stats"
	"study-tracker/pkg/taskview"
)

// TaskService scopes every call by owner; foreign tasks answer NotFound
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	GetUserTasks(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	GetTaskView(ctx context.Context, userID uuid.UUID, q taskview.Query) ([]*models.Task, error)
	GetDashboard(ctx context.Context, userID uuid.UUID) (*stats.Summary, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
}
