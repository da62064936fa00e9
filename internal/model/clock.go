package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const ClockLayout = "15:04"

var ErrInvalidClock = errors.New("model: invalid clock time")

// Clock is a time of day with minute granularity, 00:00 through 23:59.
type Clock struct {
	hour   int
	minute int
}

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return Clock{hour: hour, minute: minute}, nil
}

func MustClock(hour, minute int) Clock {
	c, err := NewClock(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClock accepts "HH:mm" and the four digit "HHmm" form.
func ParseClock(raw string) (Clock, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range []string{ClockLayout, "1504"} {
		if tm, err := time.Parse(layout, s); err == nil {
			return Clock{hour: tm.Hour(), minute: tm.Minute()}, nil
		}
	}
	return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
}

func (c Clock) Hour() int   { return c.hour }
func (c Clock) Minute() int { return c.minute }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

func (c Clock) minutes() int {
	return c.hour*60 + c.minute
}

func (c Clock) Compare(o Clock) int {
	switch {
	case c.minutes() < o.minutes():
		return -1
	case c.minutes() > o.minutes():
		return 1
	default:
		return 0
	}
}
