package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"study-tracker/domain/models"
	"study-tracker/pkg/taskview"
)

const pickerRows = 10

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

var sortCycle = []string{taskview.SortNone, taskview.SortPriority, taskview.SortTime}

// picking is true while the task list is on screen instead of the timer
func (m model) picking() bool {
	return len(m.tasks) > 0 && m.view.Modal() != taskview.ModalPomodoro
}

func (m model) visible() []*models.Task {
	return m.view.Visible(m.tasks)
}

func (m model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		// เข้า timer โดยไม่ผูก task
		m.view = m.view.SelectTask("").OpenModal(taskview.ModalPomodoro)
		m.state = m.state.Associate("")
		m.taskName = ""
		return m, nil
	case tea.KeyEnter:
		visible := m.visible()
		if len(visible) == 0 {
			return m, nil
		}
		chosen := visible[m.cursor]
		m.view = m.view.SelectTask(chosen.ID.String()).OpenModal(taskview.ModalPomodoro)
		m.state = m.state.Associate(chosen.ID.String())
		m.taskName = chosen.TaskName
		return m, nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < shownRows(len(m.visible()))-1 {
			m.cursor++
		}
	case tea.KeyTab:
		m.view = m.view.WithSortBy(nextSort(m.view.Query().SortBy))
	case tea.KeyBackspace:
		search := []rune(m.view.Query().Search)
		if len(search) > 0 {
			m.view = m.view.WithSearch(string(search[:len(search)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.view = m.view.WithSearch(m.view.Query().Search + string(msg.Runes))
	}
	m.cursor = clampCursor(m.cursor, shownRows(len(m.visible())))
	return m, nil
}

func nextSort(current string) string {
	for i, s := range sortCycle {
		if s == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

func shownRows(n int) int {
	return min(n, pickerRows)
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func (m model) pickerView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Study Tracker: pick a task"))
	b.WriteString("\n\n")
	q := m.view.Query()
	b.WriteString(fmt.Sprintf("Search: %s_   Sort: %s\n\n", q.Search, q.SortBy))

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("no tasks match") + "\n")
	}
	for i, t := range visible {
		if i >= pickerRows {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more", len(visible)-pickerRows)) + "\n")
			break
		}
		line := fmt.Sprintf("%s (%s, %s, %gh)", t.TaskName, t.Subject, t.Priority, t.EstimatedTime)
		if t.IsCompleted() {
			line = mutedStyle.Render(line + " ✓")
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type to search • ↑/↓ move • tab sort • enter focus • esc no task • ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}
