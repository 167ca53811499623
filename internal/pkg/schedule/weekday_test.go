package schedule

import (
	"testing"
	"time"
)

func TestNormalizeWeekdayAllConventions(t *testing.T) {
	want := map[time.Weekday][]string{
		time.Sunday:    {"Sun", "sunday", "Sunday"},
		time.Monday:    {"Mon", "monday", "Monday"},
		time.Tuesday:   {"Tue", "tuesday", "Tuesday"},
		time.Wednesday: {"Wed", "wednesday", "Wednesday"},
		time.Thursday:  {"Thu", "thursday", "Thursday"},
		time.Friday:    {"Fri", "friday", "Friday"},
		time.Saturday:  {"Sat", "saturday", "Saturday"},
	}

	for day, names := range want {
		for _, name := range names {
			got, err := NormalizeWeekday(name)
			if err != nil {
				t.Fatalf("NormalizeWeekday(%q) failed: %v", name, err)
			}
			if got != day {
				t.Fatalf("NormalizeWeekday(%q) = %v, want %v", name, got, day)
			}
		}
	}
}

func TestNormalizeWeekdayConsistency(t *testing.T) {
	a, _ := NormalizeWeekday("Mon")
	b, _ := NormalizeWeekday("monday")
	c, _ := NormalizeWeekday("Monday")
	if a != b || b != c {
		t.Fatalf("expected all spellings of Monday to agree, got %v %v %v", a, b, c)
	}
}

func TestNormalizeWeekdayRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "MONDAY", "mon", "Mond", "Funday", " monday"} {
		if _, err := NormalizeWeekday(name); err == nil {
			t.Fatalf("expected error for %q", name)
		}
	}
}

func TestNormalizeWeekdaysFailsOnFirstBadName(t *testing.T) {
	if _, err := NormalizeWeekdays([]string{"monday", "nope", "friday"}); err == nil {
		t.Fatal("expected error for unrecognized name in list")
	}

	days, err := NormalizeWeekdays([]string{"monday", "Wed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !days[time.Monday] || !days[time.Wednesday] || len(days) != 2 {
		t.Fatalf("unexpected day set: %v", days)
	}
}
