// Package stats computes the dashboard summary of a task list
package stats

import (
	"math"

	"github.com/gosimple/slug"

	"study-tracker/domain/models"
)

type SubjectHours struct {
	Subject string  `json:"subject"`
	Slug    string  `json:"slug"`
	Hours   float64 `json:"hours"`
}

type Summary struct {
	CompletedCount     int            `json:"completedCount"`
	PendingCount       int            `json:"pendingCount"`
	TotalCount         int            `json:"totalCount"`
	CompletedHours     float64        `json:"completedHours"`
	ProgressPercentage int            `json:"progressPercentage"`
	PerSubjectHours    []SubjectHours `json:"perSubjectHours"`
}

// Summarize is pure. Statuses other than pending/completed count towards
// the total only. Subjects keep the order they first appear in.
func Summarize(tasks []*models.Task) Summary {
	s := Summary{PerSubjectHours: []SubjectHours{}}
	index := make(map[string]int)

	for _, t := range tasks {
		if t == nil {
			continue
		}
		s.TotalCount++

		switch {
		case t.IsCompleted():
			s.CompletedCount++
			s.CompletedHours += t.EstimatedTime
		case t.IsPending():
			s.PendingCount++
		}

		i, ok := index[t.Subject]
		if !ok {
			i = len(s.PerSubjectHours)
			index[t.Subject] = i
			s.PerSubjectHours = append(s.PerSubjectHours, SubjectHours{
				Subject: t.Subject,
				Slug:    slug.Make(t.Subject),
			})
		}
		s.PerSubjectHours[i].Hours += t.EstimatedTime
	}

	if s.TotalCount > 0 {
		s.ProgressPercentage = int(math.Round(float64(s.CompletedCount) / float64(s.TotalCount) * 100))
	}
	return s
}
