package model

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/sandeepkv93/planday/internal/storage"
)

const (
	insertSubTaskSQL = `INSERT INTO subtasks (Name, MainTaskID, Completed) VALUES (?, ?, ?)`
	updateSubTaskSQL = `UPDATE subtasks SET Name = ?, MainTaskID = ?, Completed = ? WHERE ID = ?`
	deleteSubTaskSQL = `DELETE FROM subtasks WHERE ID = ?`
	selectSubTaskSQL = `SELECT ID, Name, Completed FROM subtasks WHERE MainTaskID = ? ORDER BY ID`
)

// SubTask is a checklist item under a main task. It refers to its owner only
// by id; the owner holds the subtask in its list.
type SubTask struct {
	record
	mainTaskID int64
}

var _ Task = (*SubTask)(nil)

// NewSubTask returns an unsaved subtask and appends it to parent.
func NewSubTask(parent *MainTask) *SubTask {
	s := &SubTask{}
	if parent != nil {
		parent.AddSubTask(s)
	}
	return s
}

func RestoreSubTask(id, mainTaskID int64, name string, completed bool) *SubTask {
	return &SubTask{
		record:     record{id: id, name: name, completed: completed},
		mainTaskID: mainTaskID,
	}
}

func (s *SubTask) Kind() Kind        { return KindSub }
func (s *SubTask) MainTaskID() int64 { return s.mainTaskID }

func (s *SubTask) Compare(o *SubTask) int {
	return cmp.Compare(s.name, o.name)
}

func SortSubTasks(subs []*SubTask) {
	slices.SortStableFunc(subs, (*SubTask).Compare)
}

func (s *SubTask) Save(ctx context.Context, ex storage.Executor) error {
	if s.mainTaskID == 0 {
		return ErrParentNotSaved
	}
	values := []any{s.name, s.mainTaskID, formatFlag(s.completed)}
	if s.id != 0 {
		return ex.Update(ctx, updateSubTaskSQL, append(values, s.id)...)
	}
	id, err := ex.Insert(ctx, insertSubTaskSQL, values...)
	if err != nil {
		return err
	}
	return s.assignID(id)
}

func (s *SubTask) Delete(ctx context.Context, ex storage.Executor) error {
	if s.id == 0 {
		return nil
	}
	return ex.Delete(ctx, deleteSubTaskSQL, s.id)
}

func loadSubTasks(ctx context.Context, ex storage.Executor, parent *MainTask) error {
	return ex.Query(ctx, selectSubTaskSQL, func(rows storage.Rows) error {
		for rows.Next() {
			var (
				id        int64
				name      string
				completed string
			)
			if err := rows.Scan(&id, &name, &completed); err != nil {
				return fmt.Errorf("scan subtask: %w", err)
			}
			parent.subTasks = append(parent.subTasks, RestoreSubTask(id, parent.id, name, parseFlag(completed)))
		}
		return nil
	}, parent.id)
}
