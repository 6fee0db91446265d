package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"study-tracker/domain/apperror"
	"study-tracker/domain/dto"
	"study-tracker/domain/models"
	"study-tracker/domain/ports"
	"study-tracker/domain/repositories"
	"study-tracker/domain/services"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/metrics"
	"study-tracker/pkg/stats"
	"study-tracker/pkg/taskview"
	"study-tracker/pkg/utils"
)

const msgTaskNotFound = "Task not found"

type TaskServiceImpl struct {
	taskRepo    repositories.TaskRepository
	orderPolicy OrderPolicy
	statsCache  ports.StatsCache // nil = ไม่ cache
	events      ports.EventPublisher
	metrics     metrics.Recorder
	now         func() time.Time

	// statsGen นับการแก้ไขต่อ user; GetDashboard เขียน cache เฉพาะเมื่อไม่มีการแก้ไขระหว่างอ่าน
	statsMu  sync.Mutex
	statsGen map[uuid.UUID]uint64
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	orderPolicy OrderPolicy,
	statsCache ports.StatsCache,
	events ports.EventPublisher,
	recorder metrics.Recorder,
) services.TaskService {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &TaskServiceImpl{
		taskRepo:    taskRepo,
		orderPolicy: orderPolicy,
		statsCache:  statsCache,
		events:      events,
		metrics:     recorder,
		now:         time.Now,
		statsGen:    make(map[uuid.UUID]uint64),
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	req.TaskName = strings.TrimSpace(req.TaskName)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperror.Validation(utils.ValidationMessage(err, dto.CreateTaskValidationMessages, msgFillAllFields))
	}

	order, err := s.orderPolicy.NextOrder(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute task order", "user_id", userID, "error", err)
		return nil, apperror.Storage(msgServerError, err)
	}

	now := s.now()
	task := dto.CreateTaskRequestToTask(req)
	task.ID = uuid.New()
	task.UserID = userID
	task.Order = order
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", userID, "error", err)
		return nil, apperror.Storage(msgServerError, err)
	}

	logger.InfoContext(ctx, "Task created successfully", "task_id", task.ID, "user_id", userID, "order", task.Order)
	s.afterMutation(ctx, task, ports.TaskEventCreated)
	return task, nil
}

func (s *TaskServiceImpl) GetUserTasks(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get user tasks", "user_id", userID, "error", err)
		return nil, apperror.Storage(msgServerError, err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTaskView(ctx context.Context, userID uuid.UUID, q taskview.Query) ([]*models.Task, error) {
	tasks, err := s.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return taskview.Apply(tasks, q), nil
}

// GetDashboard อ่านจาก cache ก่อน; cache error ไม่ทำให้ request fail
func (s *TaskServiceImpl) GetDashboard(ctx context.Context, userID uuid.UUID) (*stats.Summary, error) {
	if s.statsCache != nil {
		cached, found, err := s.statsCache.Get(ctx, userID)
		if err != nil {
			logger.WarnContext(ctx, "Stats cache read failed", "user_id", userID, "error", err)
		} else if found {
			return cached, nil
		}
	}

	gen := s.statsGeneration(userID)
	tasks, err := s.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(tasks)

	if s.statsCache != nil {
		s.cacheSummary(ctx, userID, gen, &summary)
	}
	return &summary, nil
}

func (s *TaskServiceImpl) statsGeneration(userID uuid.UUID) uint64 {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.statsGen[userID]
}

// cacheSummary skips the write when a mutation happened after gen was read.
// The check and the write share statsMu with bumpStats, so a later
// Invalidate always lands after the write.
func (s *TaskServiceImpl) cacheSummary(ctx context.Context, userID uuid.UUID, gen uint64, summary *stats.Summary) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	if s.statsGen[userID] != gen {
		logger.DebugContext(ctx, "Skipping stale dashboard cache write", "user_id", userID)
		return
	}
	if err := s.statsCache.Set(ctx, userID, summary); err != nil {
		logger.WarnContext(ctx, "Stats cache write failed", "user_id", userID, "error", err)
	}
}

func (s *TaskServiceImpl) bumpStats(userID uuid.UUID) {
	s.statsMu.Lock()
	s.statsGen[userID]++
	s.statsMu.Unlock()
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if err := validatePatch(req); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, s.lookupError(ctx, "update", taskID, err)
	}

	dto.ApplyTaskPatch(task, req)
	task.ApplyDefaults()
	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, s.lookupError(ctx, "update", taskID, err)
	}

	logger.InfoContext(ctx, "Task updated successfully", "task_id", taskID, "user_id", userID)
	s.afterMutation(ctx, task, ports.TaskEventUpdated)
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, s.lookupError(ctx, "deletion", taskID, err)
	}

	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		return nil, s.lookupError(ctx, "deletion", taskID, err)
	}

	logger.InfoContext(ctx, "Task deleted successfully", "task_id", taskID, "user_id", userID)
	s.afterMutation(ctx, task, ports.TaskEventDeleted)
	return task, nil
}

func validatePatch(req *dto.UpdateTaskRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperror.Validation(utils.ValidationMessage(err, dto.UpdateTaskValidationMessages, "Invalid task data"))
	}
	// omitempty ข้าม string ว่าง จึงต้องเช็คเอง
	if req.TaskName != nil && strings.TrimSpace(*req.TaskName) == "" {
		return apperror.Validation("Task name cannot be empty")
	}
	if req.Subject != nil && strings.TrimSpace(*req.Subject) == "" {
		return apperror.Validation("Subject cannot be empty")
	}
	if req.EstimatedTime != nil && *req.EstimatedTime < 0 {
		return apperror.Validation("Estimated time cannot be negative")
	}
	return nil
}

func (s *TaskServiceImpl) lookupError(ctx context.Context, op string, taskID uuid.UUID, err error) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		logger.WarnContext(ctx, "Task not found for "+op, "task_id", taskID)
		return apperror.NotFound(msgTaskNotFound)
	}
	logger.ErrorContext(ctx, "Task "+op+" failed", "task_id", taskID, "error", err)
	return apperror.Storage(msgServerError, err)
}

// afterMutation: cache invalidation, event, metric. ไม่มีขั้นไหนทำให้ request fail
func (s *TaskServiceImpl) afterMutation(ctx context.Context, task *models.Task, eventType string) {
	s.bumpStats(task.UserID)
	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, task.UserID); err != nil {
			logger.WarnContext(ctx, "Stats cache invalidation failed", "user_id", task.UserID, "error", err)
		}
	}

	if s.events != nil {
		event := ports.TaskEvent{
			Type:       eventType,
			TaskID:     task.ID,
			OwnerID:    task.UserID,
			OccurredAt: s.now().UTC(),
		}
		if err := s.events.PublishTaskEvent(ctx, event); err != nil {
			logger.WarnContext(ctx, "Failed to publish task event", "type", eventType, "task_id", task.ID, "error", err)
		}
	}

	s.metrics.RecordTaskMutation(strings.TrimPrefix(eventType, "task."))
}
