package pomodoro

import (
	"testing"
)

func TestNewStateStartsInWorkMode(t *testing.T) {
	s := NewState()
	if s.Mode != ModeWork || s.RemainingSeconds != 1500 || s.Running || s.ProgressPercent != 0 {
		t.Errorf("unexpected initial state: %+v", s)
	}
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		mode      Mode
		remaining int
	}{
		{ModeWork, 1500},
		{ModeShortBreak, 300},
		{ModeLongBreak, 900},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			running := NewState().Toggle()
			running, _ = running.Tick()

			s, err := running.SelectMode(tt.mode)
			if err != nil {
				t.Fatalf("SelectMode: %v", err)
			}
			if s.RemainingSeconds != tt.remaining {
				t.Errorf("remaining = %d, want %d", s.RemainingSeconds, tt.remaining)
			}
			if s.Running {
				t.Error("SelectMode must stop the countdown")
			}
			if s.ProgressPercent != 0 {
				t.Errorf("progress = %v, want 0", s.ProgressPercent)
			}
		})
	}
}

func TestSelectModeRejectsUnknownMode(t *testing.T) {
	s := NewState()
	if _, err := s.SelectMode("nap"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := ParseMode("nap"); err == nil {
		t.Error("expected ParseMode error for unknown mode")
	}
}

func TestTickOnlyWhileRunning(t *testing.T) {
	s := NewState()
	next, completion := s.Tick()
	if next != s || completion != nil {
		t.Errorf("idle tick changed state: %+v", next)
	}

	s = s.Toggle()
	s, _ = s.Tick()
	if s.RemainingSeconds != 1499 {
		t.Errorf("remaining = %d, want 1499", s.RemainingSeconds)
	}
	want := float64(1) / float64(1500) * 100
	if s.ProgressPercent != want {
		t.Errorf("progress = %v, want %v", s.ProgressPercent, want)
	}

	paused := s.Toggle()
	after, _ := paused.Tick()
	if after.RemainingSeconds != 1499 {
		t.Error("paused session must not count down")
	}
}

func TestWorkSessionRunsToCompletion(t *testing.T) {
	s := NewState().Toggle()
	completions := 0
	var last *Completion

	for i := 0; i < 1500; i++ {
		var c *Completion
		s, c = s.Tick()
		if c != nil {
			completions++
			last = c
		}
	}

	if s.RemainingSeconds != 0 || s.Running || s.ProgressPercent != 0 {
		t.Errorf("unexpected final state: %+v", s)
	}
	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}
	if last.Mode != ModeWork || last.Message != "Work session completed!" {
		t.Errorf("unexpected completion: %+v", last)
	}

	// extra ticks after completion do nothing
	s2, c := s.Tick()
	if c != nil || s2 != s {
		t.Error("tick after completion must be a no-op")
	}
	// a finished countdown cannot be restarted without reset
	if s.Toggle().Running {
		t.Error("toggle at zero must stay paused")
	}
}

func TestBreakCompletionMessage(t *testing.T) {
	s, _ := NewState().SelectMode(ModeShortBreak)
	s = s.Toggle()
	var c *Completion
	for i := 0; i < ShortBreakSeconds; i++ {
		s, c = s.Tick()
	}
	if c == nil || c.Message != "Break session completed!" {
		t.Errorf("completion = %+v", c)
	}
}

func TestResetRestoresCurrentMode(t *testing.T) {
	s, _ := NewState().SelectMode(ModeLongBreak)
	s = s.Associate("task-1").Toggle()
	for i := 0; i < 10; i++ {
		s, _ = s.Tick()
	}

	s = s.Reset()
	if s.Mode != ModeLongBreak || s.RemainingSeconds != 900 || s.Running || s.ProgressPercent != 0 {
		t.Errorf("unexpected reset state: %+v", s)
	}
	if s.TaskID != "task-1" {
		t.Error("reset must keep the associated task")
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := map[int]string{1500: "25:00", 61: "01:01", 0: "00:00", -3: "00:00"}
	for in, want := range tests {
		if got := FormatRemaining(in); got != want {
			t.Errorf("FormatRemaining(%d) = %q, want %q", in, got, want)
		}
	}
}
