package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Event Publisher Port - task / pomodoro events (NATS JetStream หรือ noop)
// ═══════════════════════════════════════════════════════════════════════════════

const (
	TaskEventCreated = "task.created"
	TaskEventUpdated = "task.updated"
	TaskEventDeleted = "task.deleted"
)

type TaskEvent struct {
	Type       string    `json:"type"`
	TaskID     uuid.UUID `json:"taskId"`
	OwnerID    uuid.UUID `json:"ownerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type PomodoroEvent struct {
	OwnerID    uuid.UUID `json:"ownerId"`
	Mode       string    `json:"mode"`
	TaskID     string    `json:"taskId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher ส่ง event ออกไปแบบ fire-and-forget; error ไม่กระทบ request
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, event TaskEvent) error
	PublishPomodoroCompleted(ctx context.Context, event PomodoroEvent) error
	IsEnabled() bool
}
