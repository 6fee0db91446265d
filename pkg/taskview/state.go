package taskview

import (
	"study-tracker/domain/models"
)

type Modal int

const (
	ModalNone Modal = iota
	ModalAdd
	ModalEdit
	ModalPomodoro
)

func (m Modal) String() string {
	switch m {
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	case ModalPomodoro:
		return "pomodoro"
	default:
		return "none"
	}
}

// State is what a dashboard client shows: the controls, which modal is open
// and which task it targets. A single Modal field means two dialogs can
// never be open together.
type State struct {
	query    Query
	modal    Modal
	selected string
}

func NewState() State {
	return State{query: Query{Status: FilterAll, Priority: FilterAll, SortBy: SortNone}}
}

func (s State) Query() Query       { return s.query }
func (s State) Modal() Modal       { return s.modal }
func (s State) SelectedID() string { return s.selected }

func (s State) WithSearch(q string) State {
	s.query.Search = q
	return s
}

func (s State) WithStatus(status string) State {
	s.query.Status = status
	return s
}

func (s State) WithPriority(priority string) State {
	s.query.Priority = priority
	return s
}

func (s State) WithSortBy(sortBy string) State {
	s.query.SortBy = normalizeSort(sortBy)
	return s
}

// OpenModal replaces whatever modal was open. Edit and pomodoro dialogs
// keep the selected task; add clears it.
func (s State) OpenModal(m Modal) State {
	s.modal = m
	if m == ModalAdd || m == ModalNone {
		s.selected = ""
	}
	return s
}

func (s State) CloseModal() State {
	s.modal = ModalNone
	return s
}

func (s State) SelectTask(id string) State {
	s.selected = id
	return s
}

// Visible applies the current controls to tasks
func (s State) Visible(tasks []*models.Task) []*models.Task {
	return Apply(tasks, s.query)
}
