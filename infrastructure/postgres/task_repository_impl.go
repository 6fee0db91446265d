package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-tracker/domain/models"
	"study-tracker/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return translateError(r.db.WithContext(ctx).Create(task).Error)
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, translateError(err)
}

// Update writes every column (zero values too) of an owned task
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	result := r.db.WithContext(ctx).
		Model(task).
		Where("user_id = ?", task.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(task)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", userID).Count(&count).Error
	return count, translateError(err)
}

func (r *TaskRepositoryImpl) MaxOrderByUserID(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	var result struct {
		MaxOrder *int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("MAX(sort_order) AS max_order").
		Where("user_id = ?", userID).
		Scan(&result).Error
	if err != nil {
		return 0, false, translateError(err)
	}
	if result.MaxOrder == nil {
		return 0, false, nil
	}
	return *result.MaxOrder, true, nil
}
