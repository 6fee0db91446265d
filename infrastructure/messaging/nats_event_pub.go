package messaging

import (
	"context"
	"fmt"

	"study-tracker/domain/ports"
	natspkg "study-tracker/infrastructure/nats"
)

type jsonPublisher interface {
	PublishJSON(ctx context.Context, subject string, v any) error
}

// NATSEventPublisher implements EventPublisher on JetStream
type NATSEventPublisher struct {
	pub jsonPublisher
}

// NewNATSEventPublisher สร้าง EventPublisher adapter สำหรับ NATS
func NewNATSEventPublisher(pub jsonPublisher) ports.EventPublisher {
	return &NATSEventPublisher{pub: pub}
}

func (p *NATSEventPublisher) PublishTaskEvent(ctx context.Context, event ports.TaskEvent) error {
	switch event.Type {
	case ports.TaskEventCreated, ports.TaskEventUpdated, ports.TaskEventDeleted:
	default:
		return fmt.Errorf("unknown task event type %q", event.Type)
	}
	return p.pub.PublishJSON(ctx, natspkg.TaskSubject(event.Type), event)
}

func (p *NATSEventPublisher) PublishPomodoroCompleted(ctx context.Context, event ports.PomodoroEvent) error {
	return p.pub.PublishJSON(ctx, natspkg.SubjectPomodoroCompleted, event)
}

func (p *NATSEventPublisher) IsEnabled() bool {
	return true
}
