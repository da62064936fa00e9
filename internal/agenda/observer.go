package agenda

import "github.com/sandeepkv93/planday/internal/model"

// Observer receives a callback after each successful write. Implementations
// run on the caller's goroutine and must not call back into the Service.
type Observer interface {
	NameChanged(task model.Task)
	CompletedChanged(task model.Task)
	TimeChanged(task *model.MainTask)
	ExpandedChanged(task *model.MainTask)
	EditModeChanged(task *model.MainTask)
	SubTasksChanged(task *model.MainTask)
	TaskDeleted(task model.Task)
}

type NopObserver struct{}

func (NopObserver) NameChanged(model.Task)          {}
func (NopObserver) CompletedChanged(model.Task)     {}
func (NopObserver) TimeChanged(*model.MainTask)     {}
func (NopObserver) ExpandedChanged(*model.MainTask) {}
func (NopObserver) EditModeChanged(*model.MainTask) {}
func (NopObserver) SubTasksChanged(*model.MainTask) {}
func (NopObserver) TaskDeleted(model.Task)          {}
