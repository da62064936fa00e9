// Package agenda turns user intents into entity mutations that are written
// through to storage before the observer is told about them.
package agenda

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrEmptyName = errors.New("agenda: task name is empty")
	ErrNilTask   = errors.New("agenda: task is nil")
)

type Service struct {
	store storage.Executor
	obs   Observer
	log   *zap.Logger
}

func NewService(store storage.Executor, obs Observer, log *zap.Logger) *Service {
	if obs == nil {
		obs = NopObserver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, obs: obs, log: log.With(zap.String("component", "agenda"))}
}

// SetObserver swaps the callback sink, e.g. once the UI model exists.
func (s *Service) SetObserver(obs Observer) {
	if obs == nil {
		obs = NopObserver{}
	}
	s.obs = obs
}

func (s *Service) LoadDate(ctx context.Context, d model.Date) (*model.PlanDate, error) {
	pd := model.NewPlanDate(d)
	if err := pd.LoadTasks(ctx, s.store); err != nil {
		s.log.Error("load tasks failed", zap.String("date", d.String()), zap.Error(err))
		return pd, err
	}
	return pd, nil
}

// LoadWindow loads one PlanDate per visible day. Days that fail to load are
// returned empty and their errors joined.
func (s *Service) LoadWindow(ctx context.Context, w calendar.Window) ([]*model.PlanDate, error) {
	out := make([]*model.PlanDate, 0, w.Days)
	var errs []error
	for _, d := range w.Dates() {
		pd, err := s.LoadDate(ctx, d)
		if err != nil {
			errs = append(errs, err)
		}
		out = append(out, pd)
	}
	return out, errors.Join(errs...)
}

// CreateMainTask saves a new task on pd. Unparseable time text leaves the task
// untimed.
func (s *Service) CreateMainTask(ctx context.Context, pd *model.PlanDate, name, timeText string) (*model.MainTask, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	task := model.NewMainTask(pd.Date())
	task.SetName(name)
	if strings.TrimSpace(timeText) != "" {
		task.SetTimeText(timeText)
	}
	if err := s.save(ctx, "create main task", task); err != nil {
		return nil, err
	}
	pd.Add(task)
	s.obs.NameChanged(task)
	return task, nil
}

// CreateSubTask adds a subtask under parent, saving the parent first when it
// has never been written.
func (s *Service) CreateSubTask(ctx context.Context, parent *model.MainTask, name string) (*model.SubTask, error) {
	if parent == nil {
		return nil, ErrNilTask
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if parent.ID() == 0 {
		if err := s.save(ctx, "save parent", parent); err != nil {
			return nil, err
		}
	}
	sub := model.NewSubTask(parent)
	sub.SetName(name)
	if err := s.save(ctx, "create subtask", sub); err != nil {
		parent.RemoveSubTask(sub)
		return nil, err
	}
	s.obs.SubTasksChanged(parent)
	return sub, nil
}

func (s *Service) Rename(ctx context.Context, task model.Task, name string) error {
	if task == nil {
		return ErrNilTask
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	task.SetName(name)
	if err := s.save(ctx, "rename", task); err != nil {
		return err
	}
	s.obs.NameChanged(task)
	return nil
}

func (s *Service) SetCompleted(ctx context.Context, task model.Task, completed bool) error {
	if task == nil {
		return ErrNilTask
	}
	task.SetCompleted(completed)
	if err := s.save(ctx, "set completed", task); err != nil {
		return err
	}
	s.obs.CompletedChanged(task)
	return nil
}

func (s *Service) ToggleCompleted(ctx context.Context, task model.Task) error {
	if task == nil {
		return ErrNilTask
	}
	return s.SetCompleted(ctx, task, !task.Completed())
}

// Retime sets the time from user text; empty or unparseable text clears it.
func (s *Service) Retime(ctx context.Context, task *model.MainTask, timeText string) error {
	if task == nil {
		return ErrNilTask
	}
	task.SetTimeText(timeText)
	if err := s.save(ctx, "retime", task); err != nil {
		return err
	}
	s.obs.TimeChanged(task)
	return nil
}

func (s *Service) SetExpanded(ctx context.Context, task *model.MainTask, expanded bool) error {
	if task == nil {
		return ErrNilTask
	}
	task.SetExpanded(expanded)
	if err := s.save(ctx, "set expanded", task); err != nil {
		return err
	}
	s.obs.ExpandedChanged(task)
	return nil
}

func (s *Service) SetEditMode(ctx context.Context, task *model.MainTask, editMode bool) error {
	if task == nil {
		return ErrNilTask
	}
	task.SetEditMode(editMode)
	if err := s.save(ctx, "set edit mode", task); err != nil {
		return err
	}
	s.obs.EditModeChanged(task)
	return nil
}

// Move persists task under date and moves it between the in-memory lists.
// from and to may be nil when the day is not loaded.
func (s *Service) Move(ctx context.Context, task *model.MainTask, from, to *model.PlanDate, date model.Date) error {
	if task == nil {
		return ErrNilTask
	}
	task.SetDate(date)
	if err := s.save(ctx, "move", task); err != nil {
		return err
	}
	if from != nil && !from.Date().Equal(date) {
		from.Remove(task)
	}
	if to != nil && to.Date().Equal(date) {
		to.Add(task)
	}
	return nil
}

func (s *Service) DeleteMainTask(ctx context.Context, pd *model.PlanDate, task *model.MainTask) error {
	if task == nil {
		return ErrNilTask
	}
	if err := task.Delete(ctx, s.store); err != nil {
		s.fail("delete main task", task, err)
		return err
	}
	if pd != nil {
		pd.Remove(task)
	}
	s.obs.TaskDeleted(task)
	return nil
}

func (s *Service) DeleteSubTask(ctx context.Context, parent *model.MainTask, sub *model.SubTask) error {
	if sub == nil {
		return ErrNilTask
	}
	if err := sub.Delete(ctx, s.store); err != nil {
		s.fail("delete subtask", sub, err)
		return err
	}
	s.obs.TaskDeleted(sub)
	if parent != nil && parent.RemoveSubTask(sub) {
		s.obs.SubTasksChanged(parent)
	}
	return nil
}

// Edit is the set of fields confirmed from the edit form.
type Edit struct {
	Name     string
	TimeText string
	Date     model.Date
}

// ApplyEdit confirms an edit: it leaves edit mode, applies the name and time,
// moves the task when the date changed and expands it when it has subtasks.
// Each step is its own write.
func (s *Service) ApplyEdit(ctx context.Context, task *model.MainTask, from, to *model.PlanDate, edit Edit) error {
	if task == nil {
		return ErrNilTask
	}
	if err := s.SetEditMode(ctx, task, false); err != nil {
		return err
	}
	if strings.TrimSpace(edit.Name) != "" && edit.Name != task.Name() {
		if err := s.Rename(ctx, task, edit.Name); err != nil {
			return err
		}
	}
	if err := s.Retime(ctx, task, edit.TimeText); err != nil {
		return err
	}
	if !edit.Date.IsZero() && !edit.Date.Equal(task.Date()) {
		if err := s.Move(ctx, task, from, to, edit.Date); err != nil {
			return err
		}
	}
	if len(task.SubTasks()) > 0 && !task.Expanded() {
		return s.SetExpanded(ctx, task, true)
	}
	return nil
}

func (s *Service) save(ctx context.Context, op string, task model.Task) error {
	if err := task.Save(ctx, s.store); err != nil {
		s.fail(op, task, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) fail(op string, task model.Task, err error) {
	s.log.Error("write-through failed",
		zap.String("op", op),
		zap.String("kind", string(task.Kind())),
		zap.Int64("task_id", task.ID()),
		zap.Error(err),
	)
}
