package dto

import "study-tracker/pkg/pomodoro"

const (
	PomodoroActionSelectMode = "selectMode"
	PomodoroActionToggle     = "toggle"
	PomodoroActionReset      = "reset"
	PomodoroActionAssociate  = "associate"
)

// PomodoroCommand is one client message on /ws/pomodoro
type PomodoroCommand struct {
	Action string `json:"action"`
	Mode   string `json:"mode,omitempty"`
	TaskID string `json:"taskId,omitempty"`
}

type PomodoroStateMessage struct {
	Type  string         `json:"type"` // "state"
	State pomodoro.State `json:"state"`
}

type PomodoroCompleteMessage struct {
	Type    string `json:"type"` // "complete"
	Mode    string `json:"mode"`
	Message string `json:"message"`
}

type PomodoroErrorMessage struct {
	Type string `json:"type"` // "error"
	Msg  string `json:"msg"`
}

func NewPomodoroStateMessage(s pomodoro.State) PomodoroStateMessage {
	return PomodoroStateMessage{Type: "state", State: s}
}

func NewPomodoroCompleteMessage(c pomodoro.Completion) PomodoroCompleteMessage {
	return PomodoroCompleteMessage{Type: "complete", Mode: string(c.Mode), Message: c.Message}
}

func NewPomodoroErrorMessage(msg string) PomodoroErrorMessage {
	return PomodoroErrorMessage{Type: "error", Msg: msg}
}
