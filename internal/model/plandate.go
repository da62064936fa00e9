package model

import (
	"context"
	"slices"

	"github.com/sandeepkv93/planday/internal/storage"
)

// PlanDate holds the main tasks planned for one calendar day. Two PlanDates
// for the same day are equal but share nothing.
type PlanDate struct {
	date  Date
	tasks []*MainTask
}

func NewPlanDate(d Date) *PlanDate {
	return &PlanDate{date: d}
}

func (p *PlanDate) Date() Date { return p.date }

func (p *PlanDate) Equal(o *PlanDate) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.date.Equal(o.date)
}

// Tasks returns the tasks in load/insertion order.
func (p *PlanDate) Tasks() []*MainTask {
	return slices.Clone(p.tasks)
}

// Sorted returns the tasks in display order.
func (p *PlanDate) Sorted() []*MainTask {
	out := slices.Clone(p.tasks)
	SortMainTasks(out)
	return out
}

func (p *PlanDate) Len() int { return len(p.tasks) }

func (p *PlanDate) Contains(t *MainTask) bool {
	return slices.Contains(p.tasks, t)
}

// Add appends t and stamps it with this date. Adding a task twice is a no-op.
func (p *PlanDate) Add(t *MainTask) {
	if t == nil || p.Contains(t) {
		return
	}
	t.SetDate(p.date)
	p.tasks = append(p.tasks, t)
}

func (p *PlanDate) Remove(t *MainTask) bool {
	i := slices.Index(p.tasks, t)
	if i < 0 {
		return false
	}
	p.tasks = slices.Delete(p.tasks, i, i+1)
	return true
}

// LoadTasks replaces the in-memory list with the stored main tasks for this
// date and their subtasks. Main rows are read in full before the subtask
// queries run so only one cursor is open at a time.
func (p *PlanDate) LoadTasks(ctx context.Context, ex storage.Executor) error {
	p.tasks = nil

	var rows []MainTaskRow
	err := ex.Query(ctx, selectMainTaskSQL, func(r storage.Rows) error {
		for r.Next() {
			row, err := scanMainTask(r, p.date)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	}, p.date.String())
	if err != nil {
		return err
	}

	tasks := make([]*MainTask, 0, len(rows))
	for _, row := range rows {
		t := RestoreMainTask(row)
		if err := loadSubTasks(ctx, ex, t); err != nil {
			return err
		}
		tasks = append(tasks, t)
	}
	p.tasks = tasks
	return nil
}
