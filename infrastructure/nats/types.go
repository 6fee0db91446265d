package nats

import (
	"strings"
	"time"
)

// Stream and subjects
const (
	StreamName    = "STUDYTRACKER_EVENTS"
	SubjectPrefix = "studytracker"
	SubjectAll    = SubjectPrefix + ".>"

	SubjectPomodoroCompleted = SubjectPrefix + ".pomodoro.completed"

	StreamMaxAge = 7 * 24 * time.Hour
)

// TaskSubject maps an event type such as "task.created" to
// "studytracker.tasks.created"
func TaskSubject(eventType string) string {
	suffix := strings.TrimPrefix(eventType, "task.")
	return SubjectPrefix + ".tasks." + suffix
}
