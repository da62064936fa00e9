package calendar

import (
	"strings"
	"time"

	"github.com/sandeepkv93/planday/internal/model"
)

// State is the navigation state of the agenda: the selected date and the view
// mode. Methods return a new State; the zero value is not usable, use NewState.
type State struct {
	selected model.Date
	mode     ViewMode
	now      func() time.Time
}

func NewState(mode ViewMode, now func() time.Time) State {
	if now == nil {
		now = time.Now
	}
	if mode != ViewWeek {
		mode = ViewDay
	}
	return State{selected: model.DateOf(now()), mode: mode, now: now}
}

func (s State) Selected() model.Date { return s.selected }
func (s State) Mode() ViewMode       { return s.mode }
func (s State) Window() Window       { return WindowFor(s.mode, s.selected) }

// TodayDate is the current local calendar date.
func (s State) TodayDate() model.Date { return model.DateOf(s.now()) }

// Next moves the selected date forward by one window and recomputes the
// window from the new date.
func (s State) Next() State {
	s.selected = s.selected.AddDays(s.mode.Span())
	return s
}

func (s State) Previous() State {
	s.selected = s.selected.AddDays(-s.mode.Span())
	return s
}

// Today jumps to the current date and keeps the view mode.
func (s State) Today() State {
	s.selected = s.TodayDate()
	return s
}

func (s State) SelectDay(d model.Date) State {
	s.selected = d
	s.mode = ViewDay
	return s
}

func (s State) SelectWeek(d model.Date) State {
	s.selected = d
	s.mode = ViewWeek
	return s
}

func (s State) SetMode(mode ViewMode) State {
	if mode == ViewDay || mode == ViewWeek {
		s.mode = mode
	}
	return s
}

// ClockLabel returns the date and time halves of the header clock, e.g.
// "THU 13-06-2024" and "15:04:05".
func ClockLabel(t time.Time) (string, string) {
	return strings.ToUpper(t.Format("Mon 02-01-2006")), t.Format("15:04:05")
}
