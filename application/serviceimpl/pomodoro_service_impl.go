package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"study-tracker/domain/apperror"
	"study-tracker/domain/dto"
	"study-tracker/domain/ports"
	"study-tracker/domain/repositories"
	"study-tracker/domain/services"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/metrics"
	"study-tracker/pkg/pomodoro"
)

// PomodoroServiceImpl เก็บ session ละหนึ่งอันต่อ user (เหมือน userConnections)
type PomodoroServiceImpl struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*pomodoroSession

	taskRepo repositories.TaskRepository
	events   ports.EventPublisher
	metrics  metrics.Recorder
	clock    clockwork.Clock
}

func NewPomodoroService(
	taskRepo repositories.TaskRepository,
	events ports.EventPublisher,
	recorder metrics.Recorder,
	clock clockwork.Clock,
) *PomodoroServiceImpl {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PomodoroServiceImpl{
		sessions: make(map[uuid.UUID]*pomodoroSession),
		taskRepo: taskRepo,
		events:   events,
		metrics:  recorder,
		clock:    clock,
	}
}

var _ services.PomodoroService = (*PomodoroServiceImpl)(nil)

// Open starts a fresh work-mode session. An older session of the same user
// is closed first so its ticker is gone before the new one can start.
func (s *PomodoroServiceImpl) Open(ctx context.Context, userID uuid.UUID, sink services.PomodoroSink) (services.PomodoroSession, error) {
	sess := &pomodoroSession{svc: s, userID: userID, sink: sink}
	sess.runner = pomodoro.NewRunner(s.clock, pomodoro.Hooks{
		OnChange:   sess.onChange,
		OnComplete: sess.onComplete,
	})

	s.mu.Lock()
	old := s.sessions[userID]
	if old != nil {
		// ticker เก่าต้องหยุดก่อน session ใหม่จะมองเห็นได้
		old.runner.Close()
	}
	s.sessions[userID] = sess
	active := len(s.sessions)
	s.mu.Unlock()

	if old != nil {
		logger.InfoContext(ctx, "Replacing existing pomodoro session", "user_id", userID)
		old.supersede()
	}
	s.metrics.SetActivePomodoroSessions(active)

	if err := sink.SendState(sess.runner.State()); err != nil {
		sess.Close()
		return nil, err
	}
	logger.InfoContext(ctx, "Pomodoro session opened", "user_id", userID)
	return sess, nil
}

func (s *PomodoroServiceImpl) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CloseAll ใช้ตอน shutdown
func (s *PomodoroServiceImpl) CloseAll() {
	s.mu.Lock()
	sessions := make([]*pomodoroSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.supersede()
		sess.Close()
	}
}

func (s *PomodoroServiceImpl) remove(sess *pomodoroSession) {
	s.mu.Lock()
	if s.sessions[sess.userID] == sess {
		delete(s.sessions, sess.userID)
	}
	active := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetActivePomodoroSessions(active)
}

type pomodoroSession struct {
	svc    *PomodoroServiceImpl
	userID uuid.UUID
	sink   services.PomodoroSink
	runner *pomodoro.Runner

	closeOnce     sync.Once
	supersedeOnce sync.Once
}

func (p *pomodoroSession) State() pomodoro.State {
	return p.runner.State()
}

func (p *pomodoroSession) Handle(ctx context.Context, cmd dto.PomodoroCommand) error {
	var err error
	switch cmd.Action {
	case dto.PomodoroActionSelectMode:
		mode, parseErr := pomodoro.ParseMode(cmd.Mode)
		if parseErr != nil {
			return apperror.Validation("Unknown pomodoro mode")
		}
		err = p.runner.SelectMode(mode)
	case dto.PomodoroActionToggle:
		err = p.runner.Toggle()
	case dto.PomodoroActionReset:
		err = p.runner.Reset()
	case dto.PomodoroActionAssociate:
		err = p.associate(ctx, cmd.TaskID)
	default:
		return apperror.Validation("Unknown action")
	}

	if errors.Is(err, pomodoro.ErrRunnerClosed) {
		return apperror.Validation("Session closed")
	}
	return err
}

// associate only links tasks the user owns; "" clears the link
func (p *pomodoroSession) associate(ctx context.Context, rawID string) error {
	if rawID == "" {
		return p.runner.Associate("")
	}
	taskID, err := uuid.Parse(rawID)
	if err != nil {
		return apperror.Validation("Invalid task ID")
	}
	if _, err := p.svc.taskRepo.GetByID(ctx, p.userID, taskID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperror.NotFound(msgTaskNotFound)
		}
		return apperror.Storage(msgServerError, err)
	}
	return p.runner.Associate(taskID.String())
}

func (p *pomodoroSession) Close() {
	p.closeOnce.Do(func() {
		p.runner.Close()
		p.svc.remove(p)
		logger.Info("Pomodoro session closed", "user_id", p.userID)
	})
}

// supersede stops the ticker and closes the client connection
func (p *pomodoroSession) supersede() {
	p.supersedeOnce.Do(func() {
		p.runner.Close()
		if err := p.sink.Close(); err != nil {
			logger.Debug("Closing superseded pomodoro sink failed", "user_id", p.userID, "error", err)
		}
	})
}

func (p *pomodoroSession) onChange(state pomodoro.State) {
	if err := p.sink.SendState(state); err != nil {
		logger.Debug("Failed to push pomodoro state", "user_id", p.userID, "error", err)
	}
}

func (p *pomodoroSession) onComplete(c pomodoro.Completion) {
	if err := p.sink.SendComplete(c); err != nil {
		logger.Debug("Failed to push pomodoro completion", "user_id", p.userID, "error", err)
	}
	p.svc.metrics.RecordPomodoroCompletion(string(c.Mode))

	if p.svc.events == nil {
		return
	}
	event := ports.PomodoroEvent{
		OwnerID:    p.userID,
		Mode:       string(c.Mode),
		TaskID:     p.runner.State().TaskID,
		OccurredAt: time.Now().UTC(),
	}
	if err := p.svc.events.PublishPomodoroCompleted(context.Background(), event); err != nil {
		logger.Warn("Failed to publish pomodoro completion", "user_id", p.userID, "error", err)
	}
}
