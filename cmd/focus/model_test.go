package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"study-tracker/domain/dto"
	"study-tracker/domain/models"
	"study-tracker/pkg/pomodoro"
	"study-tracker/pkg/taskview"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestToggleStartsOneTicker(t *testing.T) {
	m, err := newModel(pomodoro.ModeWork, "", "")
	if err != nil {
		t.Fatal(err)
	}

	m, cmd := update(t, m, key(" "))
	if !m.state.Running || cmd == nil {
		t.Fatal("space must start the countdown and schedule a tick")
	}
	started := m.gen

	m, _ = update(t, m, tickMsg{gen: started})
	if m.state.RemainingSeconds != pomodoro.WorkSeconds-1 {
		t.Errorf("remaining = %d", m.state.RemainingSeconds)
	}

	// pausing bumps the generation so the pending tick is ignored
	m, _ = update(t, m, key(" "))
	m, cmd = update(t, m, tickMsg{gen: started})
	if cmd != nil || m.state.RemainingSeconds != pomodoro.WorkSeconds-1 {
		t.Error("tick from a stopped ticker must be dropped")
	}
}

func TestModeKeysAndReset(t *testing.T) {
	m, _ := newModel(pomodoro.ModeWork, "", "")

	m, _ = update(t, m, key("2"))
	if m.state.Mode != pomodoro.ModeShortBreak || m.state.RemainingSeconds != pomodoro.ShortBreakSeconds {
		t.Errorf("unexpected state after '2': %+v", m.state)
	}

	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, tickMsg{gen: m.gen})
	m, _ = update(t, m, key("r"))
	if m.state.Running || m.state.RemainingSeconds != pomodoro.ShortBreakSeconds {
		t.Errorf("reset must restore the mode duration: %+v", m.state)
	}
}

func TestCompletionShowsNotice(t *testing.T) {
	m, _ := newModel(pomodoro.ModeShortBreak, "", "")
	m, _ = update(t, m, key(" "))

	var cmd tea.Cmd
	for i := 0; i < pomodoro.ShortBreakSeconds; i++ {
		m, cmd = update(t, m, tickMsg{gen: m.gen})
	}
	if cmd != nil {
		t.Error("no tick may be scheduled after completion")
	}
	if m.notice != "Break session completed!" {
		t.Errorf("notice = %q", m.notice)
	}
	if !strings.Contains(m.View(), "00:00") {
		t.Error("view must show 00:00 after completion")
	}
}

func TestFindTask(t *testing.T) {
	id := uuid.New()
	tasks := []dto.TaskResponse{{ID: id, TaskName: "Read Ch.3"}}

	if _, ok := findTask(tasks, "read ch.3"); !ok {
		t.Error("name match must ignore case")
	}
	if _, ok := findTask(tasks, id.String()); !ok {
		t.Error("id match failed")
	}
	if _, ok := findTask(tasks, "essay"); ok {
		t.Error("unexpected match")
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50, 10); got != "[#####-----]  50%" {
		t.Errorf("progressBar(50) = %q", got)
	}
	if got := progressBar(150, 4); got != "[####] 100%" {
		t.Errorf("progressBar(150) = %q", got)
	}
}

func pickerModel(t *testing.T) (model, []*models.Task) {
	t.Helper()
	tasks := []*models.Task{
		{ID: uuid.New(), TaskName: "Essay", Subject: "English", Priority: "Low", EstimatedTime: 1},
		{ID: uuid.New(), TaskName: "Cells", Subject: "Biology", Priority: "High", EstimatedTime: 3},
		{ID: uuid.New(), TaskName: "Genes", Subject: "biology", Priority: "Medium", EstimatedTime: 2},
	}
	m, err := newModel(pomodoro.ModeWork, "", "")
	if err != nil {
		t.Fatal(err)
	}
	return m.withTasks(tasks), tasks
}

func TestPickerSearchAndSelect(t *testing.T) {
	m, tasks := pickerModel(t)
	if !m.picking() {
		t.Fatal("picker must open when tasks are loaded")
	}

	for _, r := range "bio" {
		m, _ = update(t, m, key(string(r)))
	}
	if got := len(m.visible()); got != 2 {
		t.Fatalf("visible = %d, want 2", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.picking() || m.view.Modal() != taskview.ModalPomodoro {
		t.Fatal("enter must open the timer")
	}
	if m.state.TaskID != tasks[2].ID.String() || m.view.SelectedID() != tasks[2].ID.String() {
		t.Errorf("linked %q, want %s", m.state.TaskID, tasks[2].ID)
	}
	if m.taskName != "Genes" {
		t.Errorf("taskName = %q", m.taskName)
	}
}

func TestPickerSortCycleAndCursorClamp(t *testing.T) {
	m, _ := pickerModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view.Query().SortBy != taskview.SortPriority {
		t.Fatalf("sort = %s", m.view.Query().SortBy)
	}
	if first := m.visible()[0]; first.TaskName != "Cells" {
		t.Errorf("first by priority = %s", first.TaskName)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view.Query().SortBy != taskview.SortTime || m.visible()[0].TaskName != "Essay" {
		t.Errorf("time sort: %s first", m.visible()[0].TaskName)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	for _, r := range "essay" {
		m, _ = update(t, m, key(string(r)))
	}
	if m.cursor != 0 {
		t.Errorf("cursor not clamped after search: %d", m.cursor)
	}
}

func TestPickerEscapeAndReopen(t *testing.T) {
	m, _ := pickerModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.picking() || m.state.TaskID != "" {
		t.Fatal("esc must open the timer without a task")
	}
	// keys go to the timer again
	m, _ = update(t, m, key(" "))
	if !m.state.Running {
		t.Error("space must start the timer after leaving the picker")
	}

	m, _ = update(t, m, key("t"))
	if !m.picking() {
		t.Error("t must reopen the picker")
	}
	if !strings.Contains(m.View(), "pick a task") {
		t.Error("picker view not rendered")
	}
}

func TestNoPickerWithoutTasks(t *testing.T) {
	m, _ := newModel(pomodoro.ModeWork, "", "")
	m = m.withTasks(nil)
	if m.picking() {
		t.Error("picker must stay closed with no tasks")
	}
	m, _ = update(t, m, key("t"))
	if m.picking() {
		t.Error("t must do nothing without tasks")
	}
}

func TestTaskResponsesToTasks(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	got := dto.TaskResponsesToTasks([]dto.TaskResponse{{ID: id, OwnerID: owner, TaskName: "Read", Status: "completed"}})
	if len(got) != 1 || got[0].ID != id || got[0].UserID != owner || !got[0].IsCompleted() {
		t.Errorf("mapped = %+v", got)
	}
}
