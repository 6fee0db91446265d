// Package pomodoro implements the focus timer: a pure State machine and a
// Runner that drives it with exactly one cancellable ticker.
package pomodoro

import (
	"fmt"
)

type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Durations in seconds
const (
	WorkSeconds       = 25 * 60
	ShortBreakSeconds = 5 * 60
	LongBreakSeconds  = 15 * 60
)

// Duration returns the full length of mode in seconds, or 0 for an unknown mode
func (m Mode) Duration() int {
	switch m {
	case ModeWork:
		return WorkSeconds
	case ModeShortBreak:
		return ShortBreakSeconds
	case ModeLongBreak:
		return LongBreakSeconds
	default:
		return 0
	}
}

func (m Mode) Valid() bool {
	return m.Duration() > 0
}

// ParseMode accepts the wire names used by the dashboard
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown pomodoro mode %q", s)
	}
	return m, nil
}

// State is one Pomodoro session. Values are immutable; every transition
// returns a new State.
type State struct {
	Mode             Mode    `json:"mode"`
	RemainingSeconds int     `json:"remainingSeconds"`
	Running          bool    `json:"running"`
	ProgressPercent  float64 `json:"progressPercent"`
	TaskID           string  `json:"associatedTaskId,omitempty"`
}

// Completion is emitted once when a running countdown reaches zero
type Completion struct {
	Mode    Mode   `json:"mode"`
	Message string `json:"message"`
}

// NewState opens a fresh session in work mode
func NewState() State {
	s, _ := State{}.SelectMode(ModeWork)
	return s
}

// SelectMode restores the full duration of m and stops the countdown.
// The associated task survives a mode change.
func (s State) SelectMode(m Mode) (State, error) {
	if !m.Valid() {
		return s, fmt.Errorf("unknown pomodoro mode %q", m)
	}
	return State{
		Mode:             m,
		RemainingSeconds: m.Duration(),
		Running:          false,
		ProgressPercent:  0,
		TaskID:           s.TaskID,
	}, nil
}

// Toggle starts or pauses. A finished countdown cannot be started again
// until the mode is selected or reset.
func (s State) Toggle() State {
	if s.RemainingSeconds <= 0 {
		s.Running = false
		return s
	}
	s.Running = !s.Running
	return s
}

// Tick advances one second. It is a no-op unless running.
func (s State) Tick() (State, *Completion) {
	if !s.Running || s.RemainingSeconds <= 0 {
		return s, nil
	}

	s.RemainingSeconds--
	total := s.Mode.Duration()
	s.ProgressPercent = float64(total-s.RemainingSeconds) / float64(total) * 100

	if s.RemainingSeconds == 0 {
		s.Running = false
		s.ProgressPercent = 0
		return s, &Completion{Mode: s.Mode, Message: CompletionMessage(s.Mode)}
	}
	return s, nil
}

// Reset re-selects the current mode
func (s State) Reset() State {
	mode := s.Mode
	if !mode.Valid() {
		mode = ModeWork
	}
	next, _ := s.SelectMode(mode)
	return next
}

// Associate links the session to a task for display; "" clears the link
func (s State) Associate(taskID string) State {
	s.TaskID = taskID
	return s
}

func CompletionMessage(m Mode) string {
	if m == ModeWork {
		return "Work session completed!"
	}
	return "Break session completed!"
}

// FormatRemaining renders seconds as MM:SS
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
