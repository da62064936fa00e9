package model

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/sandeepkv93/planday/internal/storage"
)

const (
	insertMainTaskSQL = `INSERT INTO tasks (Name, Date, Time, Completed, Expanded, Editmode) VALUES (?, ?, ?, ?, ?, ?)`
	updateMainTaskSQL = `UPDATE tasks SET Name = ?, Date = ?, Time = ?, Completed = ?, Expanded = ?, Editmode = ? WHERE ID = ?`
	deleteMainTaskSQL = `DELETE FROM tasks WHERE ID = ?`
	deleteSubTasksSQL = `DELETE FROM subtasks WHERE MainTaskID = ?`
	selectMainTaskSQL = `SELECT ID, Name, Time, Completed, Expanded, Editmode FROM tasks WHERE Date = ? ORDER BY ID`
)

type MainTask struct {
	record
	date     Date
	time     Clock
	timed    bool
	expanded bool
	editMode bool
	subTasks []*SubTask
}

var _ Task = (*MainTask)(nil)

// NewMainTask returns an unsaved task planned on date.
func NewMainTask(date Date) *MainTask {
	return &MainTask{date: date}
}

// MainTaskRow is the decoded form of one tasks row.
type MainTaskRow struct {
	ID        int64
	Name      string
	Date      Date
	Time      *Clock
	Completed bool
	Expanded  bool
	EditMode  bool
}

func RestoreMainTask(row MainTaskRow) *MainTask {
	t := &MainTask{
		record:   record{id: row.ID, name: row.Name, completed: row.Completed},
		date:     row.Date,
		expanded: row.Expanded,
		editMode: row.EditMode,
	}
	if row.Time != nil {
		t.SetTime(*row.Time)
	}
	return t
}

func (t *MainTask) Kind() Kind     { return KindMain }
func (t *MainTask) Date() Date     { return t.date }
func (t *MainTask) Expanded() bool { return t.expanded }
func (t *MainTask) EditMode() bool { return t.editMode }

func (t *MainTask) Time() (Clock, bool) {
	return t.time, t.timed
}

func (t *MainTask) SetTime(c Clock) {
	t.time = c
	t.timed = true
}

func (t *MainTask) ClearTime() {
	t.time = Clock{}
	t.timed = false
}

// SetTimeText parses user input; text that is not a valid time clears the time.
func (t *MainTask) SetTimeText(raw string) {
	c, err := ParseClock(raw)
	if err != nil {
		t.ClearTime()
		return
	}
	t.SetTime(c)
}

func (t *MainTask) SetExpanded(expanded bool) { t.expanded = expanded }
func (t *MainTask) SetEditMode(editMode bool) { t.editMode = editMode }

// SetDate moves the task. Moving it between PlanDate lists is up to the caller.
func (t *MainTask) SetDate(d Date) { t.date = d }

func (t *MainTask) SubTasks() []*SubTask {
	return slices.Clone(t.subTasks)
}

func (t *MainTask) AddSubTask(s *SubTask) {
	if s == nil {
		return
	}
	s.mainTaskID = t.id
	t.subTasks = append(t.subTasks, s)
}

func (t *MainTask) RemoveSubTask(s *SubTask) bool {
	i := slices.Index(t.subTasks, s)
	if i < 0 {
		return false
	}
	t.subTasks = slices.Delete(t.subTasks, i, i+1)
	return true
}

// Compare orders timed tasks before untimed ones, then by time, then by name.
func (t *MainTask) Compare(o *MainTask) int {
	switch {
	case t.timed && !o.timed:
		return -1
	case !t.timed && o.timed:
		return 1
	case t.timed && o.timed:
		if c := t.time.Compare(o.time); c != 0 {
			return c
		}
	}
	return cmp.Compare(t.name, o.name)
}

func SortMainTasks(tasks []*MainTask) {
	slices.SortStableFunc(tasks, (*MainTask).Compare)
}

func (t *MainTask) timeValue() any {
	if !t.timed {
		return nil
	}
	return t.time.String()
}

// Save inserts the task when it has no id yet and updates it otherwise. After
// an insert the new id is handed to the owned subtasks.
func (t *MainTask) Save(ctx context.Context, ex storage.Executor) error {
	values := []any{
		t.name,
		t.date.String(),
		t.timeValue(),
		formatFlag(t.completed),
		formatFlag(t.expanded),
		formatFlag(t.editMode),
	}
	if t.id != 0 {
		return ex.Update(ctx, updateMainTaskSQL, append(values, t.id)...)
	}
	id, err := ex.Insert(ctx, insertMainTaskSQL, values...)
	if err != nil {
		return err
	}
	if err := t.assignID(id); err != nil {
		return err
	}
	for _, s := range t.subTasks {
		s.mainTaskID = id
	}
	return nil
}

// Delete removes the subtask rows and the task row in one transaction. A task
// that was never saved has nothing to delete.
func (t *MainTask) Delete(ctx context.Context, ex storage.Executor) error {
	if t.id == 0 {
		return nil
	}
	return ex.Atomic(ctx, func(tx storage.Executor) error {
		if err := tx.Delete(ctx, deleteSubTasksSQL, t.id); err != nil {
			return err
		}
		return tx.Delete(ctx, deleteMainTaskSQL, t.id)
	})
}

func scanMainTask(rows storage.Rows, date Date) (MainTaskRow, error) {
	var (
		row                           MainTaskRow
		timeText                      sql.NullString
		completed, expanded, editMode string
	)
	if err := rows.Scan(&row.ID, &row.Name, &timeText, &completed, &expanded, &editMode); err != nil {
		return MainTaskRow{}, fmt.Errorf("scan main task: %w", err)
	}
	row.Date = date
	row.Completed = parseFlag(completed)
	row.Expanded = parseFlag(expanded)
	row.EditMode = parseFlag(editMode)
	if timeText.Valid && timeText.String != "" {
		if c, err := ParseClock(timeText.String); err == nil {
			row.Time = &c
		}
	}
	return row, nil
}
