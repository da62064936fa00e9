package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate(" 2024-06-13 ")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.String() != "2024-06-13" {
		t.Fatalf("unexpected serialized date: %q", d.String())
	}
	if d.Weekday() != time.Thursday {
		t.Fatalf("expected thursday, got %s", d.Weekday())
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "13-06-2024", "2024-02-30", "tomorrow"} {
		if _, err := ParseDate(raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}
}

func TestDateOfDropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	got := DateOf(time.Date(2024, 6, 13, 23, 59, 0, 0, loc))
	if !got.Equal(MustParseDate("2024-06-13")) {
		t.Fatalf("expected 2024-06-13, got %s", got)
	}
}

func TestMondayOnOrBefore(t *testing.T) {
	cases := map[string]string{
		"2024-06-10": "2024-06-10",
		"2024-06-13": "2024-06-10",
		"2024-06-16": "2024-06-10",
		"2024-06-01": "2024-05-27",
	}
	for in, want := range cases {
		if got := MustParseDate(in).MondayOnOrBefore().String(); got != want {
			t.Fatalf("monday for %s: expected %s, got %s", in, want, got)
		}
	}
}

func TestAddMonthsDoesNotOverflow(t *testing.T) {
	got := MustParseDate("2024-01-31").AddMonths(1)
	if got.String() != "2024-02-01" {
		t.Fatalf("expected first of february, got %s", got)
	}
	if back := got.AddMonths(-2); back.String() != "2023-12-01" {
		t.Fatalf("expected 2023-12-01, got %s", back)
	}
}

func TestDaysUntilIsSigned(t *testing.T) {
	a := MustParseDate("2024-03-01")
	b := MustParseDate("2024-04-01")
	if n := a.DaysUntil(b); n != 31 {
		t.Fatalf("expected 31 days, got %d", n)
	}
	if n := b.DaysUntil(a); n != -31 {
		t.Fatalf("expected -31 days, got %d", n)
	}
}

func TestZeroDateStringIsEmpty(t *testing.T) {
	var d Date
	if !d.IsZero() || d.String() != "" {
		t.Fatalf("expected zero date to render empty, got %q", d.String())
	}
}
