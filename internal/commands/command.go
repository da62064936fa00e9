package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/planday/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeSub    Type = "sub"
	TypeRename Type = "rename"
	TypeTime   Type = "time"
	TypeMove   Type = "move"
	TypeGoto   Type = "goto"
	TypeDay    Type = "day"
	TypeWeek   Type = "week"
	TypeToday  Type = "today"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
)

var aliases = map[string]Type{
	"a":   TypeAdd,
	"s":   TypeSub,
	"mv":  TypeMove,
	"go":  TypeGoto,
	"rm":  TypeDelete,
	"del": TypeDelete,
	"x":   TypeDone,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs creates a main task. A trailing "@HH:mm" word sets the time.
type AddArgs struct {
	Name string
	Time string
}

type NameArgs struct {
	Name string
}

// TimeArgs retimes the selected task; an empty Text clears the time.
type TimeArgs struct {
	Text string
}

// DateArg is either an absolute date or a day offset from a base date.
type DateArg struct {
	Date     model.Date
	Offset   int
	Relative bool
}

func (a DateArg) Resolve(base model.Date) model.Date {
	if a.Relative {
		return base.AddDays(a.Offset)
	}
	return a.Date
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Name   *NameArgs
	Time   *TimeArgs
	Target *DateArg
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSub, TypeRename:
		return parseName(input, typ, args)
	case TypeTime:
		return Command{Type: TypeTime, Raw: input, Time: &TimeArgs{Text: strings.Join(args, " ")}}, nil
	case TypeMove, TypeGoto:
		return parseTarget(input, typ, args)
	case TypeDay, TypeWeek, TypeToday, TypeDone, TypeDelete:
		if len(args) != 0 {
			return Command{}, invalid("%s takes no arguments", typ)
		}
		return Command{Type: typ, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	var timeText string
	if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "@") {
		timeText = strings.TrimPrefix(args[n-1], "@")
		args = args[:n-1]
		if _, err := model.ParseClock(timeText); err != nil {
			return Command{}, invalid("add: bad time %q", timeText)
		}
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, invalid("add requires a name")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name, Time: timeText}}, nil
}

func parseName(raw string, typ Type, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, invalid("%s requires a name", typ)
	}
	return Command{Type: typ, Raw: raw, Name: &NameArgs{Name: name}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires one date", typ)
	}
	target, err := ParseDateArg(args[0])
	if err != nil {
		return Command{}, invalid("%s: %v", typ, err)
	}
	return Command{Type: typ, Raw: raw, Target: &target}, nil
}

// ParseDateArg accepts yyyy-MM-dd, "today", "tomorrow", "yesterday" and
// signed day offsets such as +3 or -1.
func ParseDateArg(raw string) (DateArg, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "today":
		return DateArg{Relative: true}, nil
	case "tomorrow":
		return DateArg{Relative: true, Offset: 1}, nil
	case "yesterday":
		return DateArg{Relative: true, Offset: -1}, nil
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return DateArg{}, fmt.Errorf("bad day offset %q", raw)
		}
		return DateArg{Relative: true, Offset: n}, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return DateArg{}, err
	}
	return DateArg{Date: d}, nil
}
