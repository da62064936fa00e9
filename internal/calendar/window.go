// Package calendar computes which dates are visible in the day and week views
// and builds the month grid used by the date picker.
package calendar

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/planday/internal/model"
)

type ViewMode string

const (
	ViewDay  ViewMode = "day"
	ViewWeek ViewMode = "week"
)

func ParseViewMode(raw string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewDay:
		return ViewDay, nil
	case ViewWeek:
		return ViewWeek, nil
	default:
		return "", fmt.Errorf("calendar: unknown view mode %q", raw)
	}
}

// Span is the number of days a window of this mode covers.
func (m ViewMode) Span() int {
	if m == ViewWeek {
		return 7
	}
	return 1
}

// Window is a contiguous run of visible dates.
type Window struct {
	Mode  ViewMode
	Start model.Date
	Days  int
}

// WindowFor returns the single selected day in day view, and the Monday to
// Sunday week containing selected in week view.
func WindowFor(mode ViewMode, selected model.Date) Window {
	if mode == ViewWeek {
		return Window{Mode: ViewWeek, Start: selected.MondayOnOrBefore(), Days: 7}
	}
	return Window{Mode: ViewDay, Start: selected, Days: 1}
}

func (w Window) End() model.Date {
	return w.Start.AddDays(w.Days - 1)
}

func (w Window) Dates() []model.Date {
	out := make([]model.Date, w.Days)
	for i := range out {
		out[i] = w.Start.AddDays(i)
	}
	return out
}

func (w Window) Contains(d model.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End())
}

// WeekNumber is the ISO-8601 week of d.
func WeekNumber(d model.Date) int {
	_, week := d.ISOWeek()
	return week
}

// Title is the heading shown above the window, e.g. "THURSDAY 13-06-2024" or
// "WEEK 24, JUNE 2024".
func (w Window) Title() string {
	if w.Mode == ViewWeek {
		return fmt.Sprintf("WEEK %d, %s %d", WeekNumber(w.Start), strings.ToUpper(w.Start.Month().String()), w.Start.Year())
	}
	return strings.ToUpper(w.Start.Weekday().String()) + " " + w.Start.Format("02-01-2006")
}
