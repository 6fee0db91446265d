package messaging

import (
	"context"

	"study-tracker/domain/ports"
)

// NoopEventPublisher ใช้เมื่อไม่ได้ตั้ง NATS_URL
type NoopEventPublisher struct{}

func NewNoopEventPublisher() ports.EventPublisher {
	return NoopEventPublisher{}
}

func (NoopEventPublisher) PublishTaskEvent(context.Context, ports.TaskEvent) error { return nil }

func (NoopEventPublisher) PublishPomodoroCompleted(context.Context, ports.PomodoroEvent) error {
	return nil
}

func (NoopEventPublisher) IsEnabled() bool { return false }
