package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"study-tracker/domain/models"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/pomodoro"
	"study-tracker/pkg/taskview"
)

const barWidth = 40

// tickMsg carries the generation of the ticker that produced it. A tick
// whose generation is not current belongs to a stopped ticker and is dropped.
type tickMsg struct {
	gen int
}

type model struct {
	state    pomodoro.State
	gen      int
	taskName string
	notice   string
	interval time.Duration

	// picker: tasks มีเฉพาะตอน login แล้วไม่ได้ระบุ --task
	view   taskview.State
	tasks  []*models.Task
	cursor int
}

var modeKeys = map[string]pomodoro.Mode{
	"1": pomodoro.ModeWork,
	"2": pomodoro.ModeShortBreak,
	"3": pomodoro.ModeLongBreak,
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	inactiveStyle = lipgloss.NewStyle().Faint(true)
	clockStyle    = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

func newModel(mode pomodoro.Mode, taskID, taskName string) (model, error) {
	state, err := pomodoro.NewState().SelectMode(mode)
	if err != nil {
		return model{}, err
	}
	return model{
		state:    state.Associate(taskID),
		taskName: taskName,
		interval: time.Second,
		view:     taskview.NewState().SelectTask(taskID).OpenModal(taskview.ModalPomodoro),
	}, nil
}

// withTasks opens the task picker over the timer
func (m model) withTasks(tasks []*models.Task) model {
	m.tasks = tasks
	if len(tasks) > 0 {
		m.view = m.view.CloseModal()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking() {
			return m.handlePickerKey(msg)
		}
		return m.handleKey(msg.String())
	case tickMsg:
		if msg.gen != m.gen || !m.state.Running {
			return m, nil
		}
		next, completion := m.state.Tick()
		m.state = next
		if completion != nil {
			logger.Info("Pomodoro completed", "mode", completion.Mode, "task_id", m.state.TaskID)
			m.notice = completion.Message
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "enter":
		m.state = m.state.Toggle()
		m.gen++
		m.notice = ""
		if m.state.Running {
			return m, m.tick()
		}
	case "t":
		if len(m.tasks) > 0 {
			m.view = m.view.CloseModal()
		}
	case "r":
		m.state = m.state.Reset()
		m.gen++
		m.notice = ""
	default:
		if mode, ok := modeKeys[key]; ok {
			next, err := m.state.SelectMode(mode)
			if err == nil {
				m.state = next
				m.gen++
				m.notice = ""
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.picking() {
		return m.pickerView()
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("Study Tracker: Focus"))
	b.WriteString("\n\n")

	tabs := make([]string, 0, 3)
	for _, key := range []string{"1", "2", "3"} {
		mode := modeKeys[key]
		label := fmt.Sprintf("[%s] %s", key, modeLabel(mode))
		if mode == m.state.Mode {
			tabs = append(tabs, activeStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n")

	b.WriteString(clockStyle.Render(pomodoro.FormatRemaining(m.state.RemainingSeconds)))
	b.WriteString("\n")
	b.WriteString(progressBar(m.state.ProgressPercent, barWidth))
	b.WriteString("\n\n")

	if m.taskName != "" {
		b.WriteString("Task: " + m.taskName + "\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}

	action := "start"
	if m.state.Running {
		action = "pause"
	}
	b.WriteString("\n")
	help := "space " + action + " • r reset • 1/2/3 mode"
	if len(m.tasks) > 0 {
		help += " • t task"
	}
	b.WriteString(helpStyle.Render(help + " • q quit"))
	b.WriteString("\n")
	return b.String()
}

func modeLabel(m pomodoro.Mode) string {
	switch m {
	case pomodoro.ModeShortBreak:
		return "Short Break"
	case pomodoro.ModeLongBreak:
		return "Long Break"
	default:
		return "Work"
	}
}

func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]" +
		fmt.Sprintf(" %3.0f%%", percent)
}
