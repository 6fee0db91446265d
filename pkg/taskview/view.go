// Package taskview projects a task list through the dashboard's search,
// filter and sort controls. Nothing here mutates its input.
package taskview

import (
	"sort"
	"strings"

	"study-tracker/domain/models"
)

const (
	FilterAll = "All"

	SortNone     = "None"
	SortPriority = "Priority"
	SortTime     = "Time"
)

type Query struct {
	Search   string
	Status   string
	Priority string
	SortBy   string
}

// Apply returns the tasks that pass every filter, sorted by q.SortBy.
// The result is a new slice; tasks is left untouched.
func Apply(tasks []*models.Task, q Query) []*models.Task {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if !matchesSearch(t, search) {
			continue
		}
		if !matchesFilter(t.Status, q.Status) || !matchesFilter(t.Priority, q.Priority) {
			continue
		}
		out = append(out, t)
	}

	switch normalizeSort(q.SortBy) {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return PriorityRank(out[i].Priority) < PriorityRank(out[j].Priority)
		})
	case SortTime:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EstimatedTime < out[j].EstimatedTime
		})
	}
	return out
}

func matchesSearch(t *models.Task, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.TaskName), lowered) ||
		strings.Contains(strings.ToLower(t.Subject), lowered)
}

// matchesFilter: empty or "All" passes everything, otherwise case-insensitive equality
func matchesFilter(value, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, FilterAll) {
		return true
	}
	return strings.EqualFold(value, filter)
}

// PriorityRank orders High < Medium < Low < anything else
func PriorityRank(p string) int {
	switch {
	case strings.EqualFold(p, models.TaskPriorityHigh):
		return 0
	case strings.EqualFold(p, models.TaskPriorityMedium):
		return 1
	case strings.EqualFold(p, models.TaskPriorityLow):
		return 2
	default:
		return 3
	}
}

// unknown sort keys fall back to None
func normalizeSort(s string) string {
	switch {
	case strings.EqualFold(s, SortPriority):
		return SortPriority
	case strings.EqualFold(s, SortTime):
		return SortTime
	default:
		return SortNone
	}
}
