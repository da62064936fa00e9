package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Sub    func(NameArgs) (Result, error)
	Rename func(NameArgs) (Result, error)
	Time   func(TimeArgs) (Result, error)
	Move   func(DateArg) (Result, error)
	Goto   func(DateArg) (Result, error)
	Day    func() (Result, error)
	Week   func() (Result, error)
	Today  func() (Result, error)
	Done   func() (Result, error)
	Delete func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeSub:
		if handlers.Sub == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Sub(*cmd.Name)
	case TypeRename:
		if handlers.Rename == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Rename(*cmd.Name)
	case TypeTime:
		if handlers.Time == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Time(*cmd.Time)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Move(*cmd.Target)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Target)
	case TypeDay:
		return call(cmd.Type, handlers.Day)
	case TypeWeek:
		return call(cmd.Type, handlers.Week)
	case TypeToday:
		return call(cmd.Type, handlers.Today)
	case TypeDone:
		return call(cmd.Type, handlers.Done)
	case TypeDelete:
		return call(cmd.Type, handlers.Delete)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call(typ Type, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(typ)
	}
	return fn()
}

func missing(typ Type) *CommandError {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", typ)}
}
