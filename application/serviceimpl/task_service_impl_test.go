package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"study-tracker/domain/apperror"
	"study-tracker/domain/dto"
	"study-tracker/domain/models"
	"study-tracker/infrastructure/memory"
	"study-tracker/pkg/config"
	"study-tracker/pkg/taskview"
)

type taskFixture struct {
	svc    *TaskServiceImpl
	repo   *memory.TaskRepository
	events *recordedEvents
	cache  *mapStatsCache
}

func newTaskFixture(t *testing.T, policy string) *taskFixture {
	t.Helper()
	repo := memory.NewTaskRepository()
	order, err := NewOrderPolicy(policy, repo)
	if err != nil {
		t.Fatal(err)
	}
	events := &recordedEvents{}
	cache := newMapStatsCache()
	svc := NewTaskService(repo, order, cache, events, nil).(*TaskServiceImpl)
	clock := &steppingClock{cur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc.now = clock.now
	return &taskFixture{svc: svc, repo: repo, events: events, cache: cache}
}

func (f *taskFixture) create(t *testing.T, owner uuid.UUID, name string) uuid.UUID {
	t.Helper()
	task, err := f.svc.CreateTask(context.Background(), owner, &dto.CreateTaskRequest{TaskName: name, Subject: "General", EstimatedTime: 1})
	if err != nil {
		t.Fatalf("CreateTask(%s): %v", name, err)
	}
	return task.ID
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestCreateTaskDefaultsAndRoundTrip(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.svc.CreateTask(ctx, owner, &dto.CreateTaskRequest{
		TaskName: "Read Ch.3", Subject: "Biology", EstimatedTime: 2, Priority: "High",
	})
	if err != nil {
		t.Fatal(err)
	}

	tasks, _ := f.svc.GetUserTasks(ctx, owner)
	if len(tasks) != 1 {
		t.Fatalf("len = %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || got.Status != "pending" || got.Priority != "High" || got.EstimatedTime != 2 {
		t.Errorf("round trip = %+v", got)
	}
	if got.UserID != owner {
		t.Errorf("owner = %s, want %s", got.UserID, owner)
	}

	defaults, _ := f.svc.CreateTask(ctx, owner, &dto.CreateTaskRequest{TaskName: "x", Subject: "y"})
	if defaults.Priority != "Medium" || defaults.Status != "pending" {
		t.Errorf("defaults = %s/%s", defaults.Priority, defaults.Status)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	tests := []struct {
		name string
		req  dto.CreateTaskRequest
		msg  string
	}{
		{"missing name", dto.CreateTaskRequest{Subject: "Math"}, "Please fill all fields"},
		{"blank subject", dto.CreateTaskRequest{TaskName: "x", Subject: "  "}, "Please fill all fields"},
		{"negative time", dto.CreateTaskRequest{TaskName: "x", Subject: "y", EstimatedTime: -1}, "Estimated time cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.CreateTask(context.Background(), uuid.New(), &req)
			if !errors.Is(err, apperror.ErrValidation) || messageOf(err) != tt.msg {
				t.Errorf("err = %v, want %q", err, tt.msg)
			}
		})
	}
}

func TestCountOrderPolicy(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner := uuid.New()

	a := f.create(t, owner, "a")
	f.create(t, owner, "b")
	f.create(t, owner, "c")
	if _, err := f.svc.DeleteTask(ctx, owner, a); err != nil {
		t.Fatal(err)
	}

	// two tasks left, so the next one gets order 2 again
	d, _ := f.svc.CreateTask(ctx, owner, &dto.CreateTaskRequest{TaskName: "d", Subject: "s"})
	if d.Order != 2 {
		t.Errorf("order = %d, want 2", d.Order)
	}

	tasks, _ := f.svc.GetUserTasks(ctx, owner)
	want := []string{"b", "d", "c"}
	for i, name := range want {
		if tasks[i].TaskName != name {
			t.Errorf("tasks[%d] = %s, want %s", i, tasks[i].TaskName, name)
		}
	}
}

func TestMonotonicOrderPolicy(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyMonotonic)
	ctx := context.Background()
	owner := uuid.New()

	a := f.create(t, owner, "a")
	f.create(t, owner, "b")
	f.create(t, owner, "c")
	_, _ = f.svc.DeleteTask(ctx, owner, a)

	d, _ := f.svc.CreateTask(ctx, owner, &dto.CreateTaskRequest{TaskName: "d", Subject: "s"})
	if d.Order != 3 {
		t.Errorf("order = %d, want 3", d.Order)
	}

	first, _ := f.svc.CreateTask(ctx, uuid.New(), &dto.CreateTaskRequest{TaskName: "first", Subject: "s"})
	if first.Order != 0 {
		t.Errorf("first order = %d, want 0", first.Order)
	}
}

func TestUpdateTaskPatch(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner := uuid.New()
	id := f.create(t, owner, "original")

	before, _ := f.repo.GetByID(ctx, owner, id)

	updated, err := f.svc.UpdateTask(ctx, owner, id, &dto.UpdateTaskRequest{Status: strPtr("completed"), Order: intPtr(7)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != "completed" || updated.Order != 7 {
		t.Errorf("patched fields = %s/%d", updated.Status, updated.Order)
	}
	if updated.TaskName != "original" || updated.Subject != "General" || updated.EstimatedTime != 1 {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Error("updatedAt must move forward")
	}

	empty, err := f.svc.UpdateTask(ctx, owner, id, &dto.UpdateTaskRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if empty.Status != "completed" || !empty.UpdatedAt.After(updated.UpdatedAt) {
		t.Errorf("empty patch = %+v", empty)
	}
}

func TestUpdateTaskRejectsBadPatch(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	owner := uuid.New()
	id := f.create(t, owner, "x")

	for _, req := range []dto.UpdateTaskRequest{
		{TaskName: strPtr("")},
		{Subject: strPtr("  ")},
		{EstimatedTime: floatPtr(-3)},
	} {
		req := req
		if _, err := f.svc.UpdateTask(context.Background(), owner, id, &req); !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("patch %+v: err = %v, want validation", req, err)
		}
	}
}

func TestForeignAndMissingTasksAreNotFound(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()
	id := f.create(t, owner, "private")

	checks := map[string]error{}
	_, checks["foreign update"] = f.svc.UpdateTask(ctx, stranger, id, &dto.UpdateTaskRequest{TaskName: strPtr("hacked")})
	_, checks["foreign delete"] = f.svc.DeleteTask(ctx, stranger, id)
	_, checks["missing update"] = f.svc.UpdateTask(ctx, owner, uuid.New(), &dto.UpdateTaskRequest{})
	_, checks["missing delete"] = f.svc.DeleteTask(ctx, owner, uuid.New())

	for name, err := range checks {
		if !errors.Is(err, apperror.ErrNotFound) || messageOf(err) != "Task not found" {
			t.Errorf("%s: err = %v", name, err)
		}
	}

	strangerTasks, _ := f.svc.GetUserTasks(ctx, stranger)
	if len(strangerTasks) != 0 {
		t.Error("stranger sees someone else's tasks")
	}
	still, _ := f.repo.GetByID(ctx, owner, id)
	if still.TaskName != "private" {
		t.Error("foreign update changed the task")
	}
}

func TestDeleteReturnsRemovedTask(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner := uuid.New()
	id := f.create(t, owner, "gone")

	deleted, err := f.svc.DeleteTask(ctx, owner, id)
	if err != nil || deleted.ID != id || deleted.TaskName != "gone" {
		t.Fatalf("DeleteTask = %+v, %v", deleted, err)
	}
	tasks, _ := f.svc.GetUserTasks(ctx, owner)
	if len(tasks) != 0 {
		t.Error("task still listed after delete")
	}
}

func TestMutationsPublishEventsAndInvalidateCache(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner := uuid.New()

	id := f.create(t, owner, "a")
	if _, err := f.svc.GetDashboard(ctx, owner); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := f.cache.Get(ctx, owner); !found {
		t.Fatal("dashboard was not cached")
	}

	_, _ = f.svc.UpdateTask(ctx, owner, id, &dto.UpdateTaskRequest{Status: strPtr("completed")})
	if _, found, _ := f.cache.Get(ctx, owner); found {
		t.Error("update must invalidate the cached dashboard")
	}
	_, _ = f.svc.DeleteTask(ctx, owner, id)

	want := []string{"task.created", "task.updated", "task.deleted"}
	got := f.events.taskTypes()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGetDashboard(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner := uuid.New()

	done := f.create(t, owner, "done")
	f.create(t, owner, "todo")
	_, _ = f.svc.UpdateTask(ctx, owner, done, &dto.UpdateTaskRequest{Status: strPtr("completed")})

	summary, err := f.svc.GetDashboard(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if summary.CompletedCount != 1 || summary.PendingCount != 1 || summary.ProgressPercentage != 50 {
		t.Errorf("summary = %+v", summary)
	}

	// second read is served from cache
	sets := f.cache.sets
	_, _ = f.svc.GetDashboard(ctx, owner)
	if f.cache.sets != sets {
		t.Error("cached dashboard was recomputed")
	}
}

// listHookRepo runs afterList once the owner's tasks have been read
type listHookRepo struct {
	*memory.TaskRepository
	afterList func()
}

func (r *listHookRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	tasks, err := r.TaskRepository.ListByUserID(ctx, userID)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return tasks, err
}

func TestDashboardNotCachedWhenMutatedDuringRead(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	repo := &listHookRepo{TaskRepository: f.repo}
	f.svc.taskRepo = repo
	ctx := context.Background()
	owner := uuid.New()

	id := f.create(t, owner, "a")
	repo.afterList = func() {
		if _, err := f.svc.UpdateTask(ctx, owner, id, &dto.UpdateTaskRequest{Status: strPtr("completed")}); err != nil {
			t.Errorf("UpdateTask: %v", err)
		}
	}

	stale, err := f.svc.GetDashboard(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if stale.CompletedCount != 0 {
		t.Fatalf("read should predate the update, got %+v", stale)
	}
	if _, found, _ := f.cache.Get(ctx, owner); found {
		t.Fatal("summary read before the update was cached")
	}

	fresh, _ := f.svc.GetDashboard(ctx, owner)
	if fresh.CompletedCount != 1 {
		t.Errorf("completed = %d, want 1", fresh.CompletedCount)
	}
	if _, found, _ := f.cache.Get(ctx, owner); !found {
		t.Error("fresh summary was not cached")
	}
}

func TestGetTaskView(t *testing.T) {
	f := newTaskFixture(t, config.OrderPolicyCount)
	ctx := context.Background()
	owner := uuid.New()

	_, _ = f.svc.CreateTask(ctx, owner, &dto.CreateTaskRequest{TaskName: "Cells", Subject: "Biology", EstimatedTime: 3})
	_, _ = f.svc.CreateTask(ctx, owner, &dto.CreateTaskRequest{TaskName: "Essay", Subject: "English", EstimatedTime: 1})
	_, _ = f.svc.CreateTask(ctx, owner, &dto.CreateTaskRequest{TaskName: "Genes", Subject: "biology", EstimatedTime: 2})

	view, err := f.svc.GetTaskView(ctx, owner, taskview.Query{Search: "bio", SortBy: "Time"})
	if err != nil {
		t.Fatal(err)
	}
	if len(view) != 2 || view[0].TaskName != "Genes" || view[1].TaskName != "Cells" {
		t.Errorf("view = %v", view)
	}

	all, _ := f.svc.GetUserTasks(ctx, owner)
	if len(all) != 3 {
		t.Error("view must not change the stored list")
	}
}
