package model

import (
	"context"
	"errors"
	"strings"

	"github.com/sandeepkv93/planday/internal/storage"
)

var (
	ErrParentNotSaved = errors.New("model: main task must be saved before its subtasks")
	ErrIDAssigned     = errors.New("model: task id already assigned")
)

type Kind string

const (
	KindMain Kind = "main"
	KindSub  Kind = "sub"
)

// Task is implemented by *MainTask and *SubTask. Setters only change memory;
// Save and Delete are the explicit persistence calls.
type Task interface {
	ID() int64
	Name() string
	Completed() bool
	Kind() Kind
	SetName(name string)
	SetCompleted(completed bool)
	Save(ctx context.Context, ex storage.Executor) error
	Delete(ctx context.Context, ex storage.Executor) error
}

// record is the id/name/completion triple each variant owns.
type record struct {
	id        int64
	name      string
	completed bool
}

func (r *record) ID() int64                   { return r.id }
func (r *record) Name() string                { return r.name }
func (r *record) Completed() bool             { return r.completed }
func (r *record) SetName(name string)         { r.name = strings.TrimSpace(name) }
func (r *record) SetCompleted(completed bool) { r.completed = completed }

func (r *record) assignID(id int64) error {
	if r.id != 0 {
		return ErrIDAssigned
	}
	r.id = id
	return nil
}

func formatFlag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// parseFlag reads the "true"/"false" encoding and tolerates 1/0.
func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true
	default:
		return false
	}
}
