package model

import (
	"errors"
	"testing"
)

func TestParseClockAcceptsBothForms(t *testing.T) {
	for raw, want := range map[string]string{
		"09:30": "09:30",
		"0930":  "09:30",
		"23:59": "23:59",
		" 7:05": "07:05",
		"00:00": "00:00",
	} {
		c, err := ParseClock(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if c.String() != want {
			t.Fatalf("parse %q: expected %s, got %s", raw, want, c)
		}
	}
}

func TestParseClockRejectsOutOfRange(t *testing.T) {
	for _, raw := range []string{"24:00", "12:60", "noon", "", "9.30"} {
		if _, err := ParseClock(raw); !errors.Is(err, ErrInvalidClock) {
			t.Fatalf("expected ErrInvalidClock for %q, got %v", raw, err)
		}
	}
}

func TestNewClockValidatesRange(t *testing.T) {
	if _, err := NewClock(-1, 0); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
	c, err := NewClock(14, 5)
	if err != nil {
		t.Fatalf("new clock: %v", err)
	}
	if c.Compare(MustClock(9, 0)) <= 0 {
		t.Fatal("expected 14:05 after 09:00")
	}
	if c.Compare(MustClock(14, 5)) != 0 {
		t.Fatal("expected equal clocks to compare 0")
	}
}
