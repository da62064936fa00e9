package update

import (
	"fmt"

	"github.com/sandeepkv93/planday/internal/model"
)

// statusObserver turns agenda callbacks into the text of the status line.
type statusObserver struct {
	last string
}

func (o *statusObserver) take() string {
	s := o.last
	o.last = ""
	return s
}

func (o *statusObserver) NameChanged(task model.Task) {
	o.last = fmt.Sprintf("saved %q", task.Name())
}

func (o *statusObserver) CompletedChanged(task model.Task) {
	if task.Completed() {
		o.last = fmt.Sprintf("done: %s", task.Name())
		return
	}
	o.last = fmt.Sprintf("reopened: %s", task.Name())
}

func (o *statusObserver) TimeChanged(task *model.MainTask) {
	if c, ok := task.Time(); ok {
		o.last = fmt.Sprintf("%s at %s", task.Name(), c)
		return
	}
	o.last = fmt.Sprintf("%s has no time", task.Name())
}

func (o *statusObserver) ExpandedChanged(task *model.MainTask) {
	if task.Expanded() {
		o.last = fmt.Sprintf("expanded %s", task.Name())
		return
	}
	o.last = fmt.Sprintf("collapsed %s", task.Name())
}

func (o *statusObserver) EditModeChanged(task *model.MainTask) {
	if task.EditMode() {
		o.last = fmt.Sprintf("editing %s", task.Name())
	}
}

func (o *statusObserver) SubTasksChanged(task *model.MainTask) {
	o.last = fmt.Sprintf("%s has %d subtask(s)", task.Name(), len(task.SubTasks()))
}

func (o *statusObserver) TaskDeleted(task model.Task) {
	o.last = fmt.Sprintf("deleted %s", task.Name())
}
