package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"study-tracker/domain/models"
	"study-tracker/domain/repositories"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]models.Task
	now   func() time.Time
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[uuid.UUID]models.Task),
		now:   time.Now,
	}
}

var _ repositories.TaskRepository = (*TaskRepository)(nil)

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if _, exists := r.tasks[task.ID]; exists {
		return repositories.ErrDuplicateKey
	}
	now := r.now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return nil, repositories.ErrRecordNotFound
	}
	return &task, nil
}

func (r *TaskRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			task := t
			out = append(out, &task)
		}
	}

	// same ordering as the SQL store: sort_order ASC, created_at DESC
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return repositories.ErrRecordNotFound
	}
	updated := *task
	updated.CreatedAt = stored.CreatedAt
	r.tasks[task.ID] = updated
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return repositories.ErrRecordNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, t := range r.tasks {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *TaskRepository) MaxOrderByUserID(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	maxOrder, found := 0, false
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		if !found || t.Order > maxOrder {
			maxOrder = t.Order
			found = true
		}
	}
	return maxOrder, found, nil
}
