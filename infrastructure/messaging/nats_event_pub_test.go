package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"study-tracker/domain/ports"
)

type published struct {
	subject string
	payload any
}

type recordingPublisher struct {
	sent []published
}

func (r *recordingPublisher) PublishJSON(_ context.Context, subject string, v any) error {
	r.sent = append(r.sent, published{subject: subject, payload: v})
	return nil
}

func TestPublishTaskEventSubjects(t *testing.T) {
	tests := []struct {
		eventType string
		subject   string
	}{
		{ports.TaskEventCreated, "studytracker.tasks.created"},
		{ports.TaskEventUpdated, "studytracker.tasks.updated"},
		{ports.TaskEventDeleted, "studytracker.tasks.deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			rec := &recordingPublisher{}
			pub := NewNATSEventPublisher(rec)
			event := ports.TaskEvent{Type: tt.eventType, TaskID: uuid.New(), OwnerID: uuid.New(), OccurredAt: time.Now()}

			if err := pub.PublishTaskEvent(context.Background(), event); err != nil {
				t.Fatal(err)
			}
			if len(rec.sent) != 1 || rec.sent[0].subject != tt.subject {
				t.Errorf("sent = %+v, want subject %s", rec.sent, tt.subject)
			}
		})
	}
}

func TestPublishTaskEventRejectsUnknownType(t *testing.T) {
	rec := &recordingPublisher{}
	pub := NewNATSEventPublisher(rec)

	if err := pub.PublishTaskEvent(context.Background(), ports.TaskEvent{Type: "task.archived"}); err == nil {
		t.Error("expected error for unknown event type")
	}
	if len(rec.sent) != 0 {
		t.Error("nothing should be published for an unknown type")
	}
}

func TestPublishPomodoroCompleted(t *testing.T) {
	rec := &recordingPublisher{}
	pub := NewNATSEventPublisher(rec)

	_ = pub.PublishPomodoroCompleted(context.Background(), ports.PomodoroEvent{OwnerID: uuid.New(), Mode: "work"})
	if len(rec.sent) != 1 || rec.sent[0].subject != "studytracker.pomodoro.completed" {
		t.Errorf("sent = %+v", rec.sent)
	}
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopEventPublisher()
	if pub.IsEnabled() {
		t.Error("noop publisher must report disabled")
	}
	if err := pub.PublishTaskEvent(context.Background(), ports.TaskEvent{}); err != nil {
		t.Error(err)
	}
}
