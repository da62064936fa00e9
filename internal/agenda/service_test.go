package agenda

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/storage"
	"go.uber.org/zap"
)

type recorder struct {
	NopObserver
	events []string
}

func (r *recorder) NameChanged(task model.Task)          { r.events = append(r.events, "name:"+task.Name()) }
func (r *recorder) CompletedChanged(task model.Task)     { r.events = append(r.events, "completed:"+task.Name()) }
func (r *recorder) TimeChanged(task *model.MainTask)     { r.events = append(r.events, "time:"+task.Name()) }
func (r *recorder) ExpandedChanged(task *model.MainTask) { r.events = append(r.events, "expanded:"+task.Name()) }
func (r *recorder) EditModeChanged(task *model.MainTask) { r.events = append(r.events, "edit:"+task.Name()) }
func (r *recorder) SubTasksChanged(task *model.MainTask) { r.events = append(r.events, "subtasks:"+task.Name()) }
func (r *recorder) TaskDeleted(task model.Task)          { r.events = append(r.events, "deleted:"+task.Name()) }

func setupService(t *testing.T) (*Service, *storage.Gateway, *recorder) {
	t.Helper()
	g, err := storage.Open(filepath.Join(t.TempDir(), "agenda.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })
	if err := storage.MigrateUp(testContext(t), g); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	rec := &recorder{}
	return NewService(g, rec, zap.NewNop()), g, rec
}

func reload(t *testing.T, svc *Service, raw string) *model.PlanDate {
	t.Helper()
	pd, err := svc.LoadDate(testContext(t), model.MustParseDate(raw))
	if err != nil {
		t.Fatalf("load %s: %v", raw, err)
	}
	return pd
}

func TestCreateMainTaskWritesThrough(t *testing.T) {
	svc, _, rec := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))

	task, err := svc.CreateMainTask(testContext(t), pd, "Dentist", "0930")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID() <= 0 || pd.Len() != 1 {
		t.Fatalf("expected saved task on plan date, id=%d len=%d", task.ID(), pd.Len())
	}

	loaded := reload(t, svc, "2024-06-13")
	if loaded.Len() != 1 {
		t.Fatalf("expected one stored task, got %d", loaded.Len())
	}
	c, ok := loaded.Tasks()[0].Time()
	if !ok || c.String() != "09:30" {
		t.Fatalf("expected 09:30, got %s", c)
	}
	if len(rec.events) != 1 || rec.events[0] != "name:Dentist" {
		t.Fatalf("unexpected events: %v", rec.events)
	}
}

func TestCreateMainTaskRejectsEmptyName(t *testing.T) {
	svc, _, _ := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	if _, err := svc.CreateMainTask(testContext(t), pd, "   ", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if pd.Len() != 0 {
		t.Fatal("expected nothing added")
	}
}

func TestCreateSubTaskSavesUnsavedParent(t *testing.T) {
	svc, _, rec := setupService(t)
	parent := model.NewMainTask(model.MustParseDate("2024-06-13"))
	parent.SetName("Trip")

	sub, err := svc.CreateSubTask(testContext(t), parent, "Pack")
	if err != nil {
		t.Fatalf("create subtask: %v", err)
	}
	if parent.ID() <= 0 || sub.MainTaskID() != parent.ID() {
		t.Fatalf("expected parent saved and linked, parent=%d handle=%d", parent.ID(), sub.MainTaskID())
	}

	loaded := reload(t, svc, "2024-06-13")
	if loaded.Len() != 1 || len(loaded.Tasks()[0].SubTasks()) != 1 {
		t.Fatal("expected parent with one subtask in storage")
	}
	if rec.events[len(rec.events)-1] != "subtasks:Trip" {
		t.Fatalf("unexpected events: %v", rec.events)
	}
}

func TestToggleCompletedAndRename(t *testing.T) {
	svc, _, rec := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	task, err := svc.CreateMainTask(testContext(t), pd, "Gym", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.ToggleCompleted(testContext(t), task); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := svc.Rename(testContext(t), task, "Gym session"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	got := reload(t, svc, "2024-06-13").Tasks()[0]
	if !got.Completed() || got.Name() != "Gym session" {
		t.Fatalf("expected completed renamed task, got %q completed=%v", got.Name(), got.Completed())
	}
	want := []string{"name:Gym", "completed:Gym", "name:Gym session"}
	for i, ev := range want {
		if rec.events[i] != ev {
			t.Fatalf("event %d: expected %q, got %q", i, ev, rec.events[i])
		}
	}
}

func TestRetimeWithGarbageClearsTime(t *testing.T) {
	svc, _, _ := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	task, err := svc.CreateMainTask(testContext(t), pd, "Call", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Retime(testContext(t), task, "later"); err != nil {
		t.Fatalf("retime should not fail on bad input: %v", err)
	}
	if _, ok := reload(t, svc, "2024-06-13").Tasks()[0].Time(); ok {
		t.Fatal("expected stored time to be null")
	}
}

func TestMoveBetweenDates(t *testing.T) {
	svc, _, _ := setupService(t)
	from := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	to := model.NewPlanDate(model.MustParseDate("2024-06-14"))
	task, err := svc.CreateMainTask(testContext(t), from, "Report", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Move(testContext(t), task, from, to, to.Date()); err != nil {
		t.Fatalf("move: %v", err)
	}
	if from.Len() != 0 || to.Len() != 1 {
		t.Fatalf("expected task moved in memory, from=%d to=%d", from.Len(), to.Len())
	}
	if reload(t, svc, "2024-06-13").Len() != 0 || reload(t, svc, "2024-06-14").Len() != 1 {
		t.Fatal("expected task under exactly one date in storage")
	}
}

func TestDeleteMainTaskCascades(t *testing.T) {
	svc, _, rec := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	task, err := svc.CreateMainTask(testContext(t), pd, "Trip", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, name := range []string{"Pack", "Book"} {
		if _, err := svc.CreateSubTask(testContext(t), task, name); err != nil {
			t.Fatalf("create subtask: %v", err)
		}
	}
	if err := svc.DeleteMainTask(testContext(t), pd, task); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if pd.Len() != 0 {
		t.Fatal("expected task detached from plan date")
	}
	if reload(t, svc, "2024-06-13").Len() != 0 {
		t.Fatal("expected no tasks after delete")
	}
	if rec.events[len(rec.events)-1] != "deleted:Trip" {
		t.Fatalf("unexpected events: %v", rec.events)
	}
}

func TestDeleteSubTask(t *testing.T) {
	svc, _, _ := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	task, err := svc.CreateMainTask(testContext(t), pd, "Trip", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	pack, err := svc.CreateSubTask(testContext(t), task, "Pack")
	if err != nil {
		t.Fatalf("create subtask: %v", err)
	}
	if _, err := svc.CreateSubTask(testContext(t), task, "Book"); err != nil {
		t.Fatalf("create subtask: %v", err)
	}
	if err := svc.DeleteSubTask(testContext(t), task, pack); err != nil {
		t.Fatalf("delete subtask: %v", err)
	}
	subs := reload(t, svc, "2024-06-13").Tasks()[0].SubTasks()
	if len(subs) != 1 || subs[0].Name() != "Book" {
		t.Fatalf("expected only Book left, got %d", len(subs))
	}
}

func TestApplyEdit(t *testing.T) {
	svc, _, _ := setupService(t)
	from := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	to := model.NewPlanDate(model.MustParseDate("2024-06-15"))
	task, err := svc.CreateMainTask(testContext(t), from, "Draft", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateSubTask(testContext(t), task, "Outline"); err != nil {
		t.Fatalf("create subtask: %v", err)
	}
	if err := svc.SetEditMode(testContext(t), task, true); err != nil {
		t.Fatalf("edit mode: %v", err)
	}

	err = svc.ApplyEdit(testContext(t), task, from, to, Edit{Name: "Final draft", TimeText: "16:45", Date: to.Date()})
	if err != nil {
		t.Fatalf("apply edit: %v", err)
	}

	got := reload(t, svc, "2024-06-15").Tasks()
	if len(got) != 1 {
		t.Fatalf("expected task on new date, got %d", len(got))
	}
	stored := got[0]
	c, ok := stored.Time()
	if stored.Name() != "Final draft" || !ok || c.String() != "16:45" {
		t.Fatalf("unexpected stored task %q %s", stored.Name(), c)
	}
	if stored.EditMode() || !stored.Expanded() {
		t.Fatalf("expected edit mode off and expanded, got edit=%v expanded=%v", stored.EditMode(), stored.Expanded())
	}
}

func TestLoadWindowReturnsEveryDay(t *testing.T) {
	svc, _, _ := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-12"))
	if _, err := svc.CreateMainTask(testContext(t), pd, "Midweek", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	days, err := svc.LoadWindow(testContext(t), calendar.WindowFor(calendar.ViewWeek, model.MustParseDate("2024-06-13")))
	if err != nil {
		t.Fatalf("load window: %v", err)
	}
	if len(days) != 7 || days[0].Date().String() != "2024-06-10" {
		t.Fatalf("unexpected window days: %d", len(days))
	}
	if days[2].Len() != 1 {
		t.Fatalf("expected wednesday task, got %d", days[2].Len())
	}
}

func TestStorageFailureIsDistinguishable(t *testing.T) {
	svc, g, rec := setupService(t)
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	task, err := svc.CreateMainTask(testContext(t), pd, "Offline", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rec.events = nil
	_ = g.Close()

	err = svc.Rename(testContext(t), task, "Renamed offline")
	var opErr *storage.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected storage.OpError, got %v", err)
	}
	if task.Name() != "Renamed offline" {
		t.Fatal("expected in-memory state kept after failed write")
	}
	if len(rec.events) != 0 {
		t.Fatalf("expected no notification on failure, got %v", rec.events)
	}
}
