package serviceimpl

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"study-tracker/domain/ports"
	"study-tracker/pkg/stats"
)

type recordedEvents struct {
	mu       sync.Mutex
	tasks    []ports.TaskEvent
	pomodoro []ports.PomodoroEvent
}

func (r *recordedEvents) PublishTaskEvent(_ context.Context, e ports.TaskEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, e)
	return nil
}

func (r *recordedEvents) PublishPomodoroCompleted(_ context.Context, e ports.PomodoroEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pomodoro = append(r.pomodoro, e)
	return nil
}

func (r *recordedEvents) IsEnabled() bool { return true }

func (r *recordedEvents) taskTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.tasks))
	for i, e := range r.tasks {
		out[i] = e.Type
	}
	return out
}

func (r *recordedEvents) pomodoroEvents() []ports.PomodoroEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.PomodoroEvent(nil), r.pomodoro...)
}

type mapStatsCache struct {
	data          map[uuid.UUID]stats.Summary
	gets, sets    int
	invalidations int
}

func newMapStatsCache() *mapStatsCache {
	return &mapStatsCache{data: map[uuid.UUID]stats.Summary{}}
}

func (c *mapStatsCache) Get(_ context.Context, userID uuid.UUID) (*stats.Summary, bool, error) {
	c.gets++
	s, ok := c.data[userID]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *mapStatsCache) Set(_ context.Context, userID uuid.UUID, s *stats.Summary) error {
	c.sets++
	c.data[userID] = *s
	return nil
}

func (c *mapStatsCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidations++
	delete(c.data, userID)
	return nil
}

// steppingClock hands out strictly increasing timestamps
type steppingClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *steppingClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}
