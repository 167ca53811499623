package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Bookable day window: 06:00 to 22:00
	dayStartMinute = 6 * 60
	dayEndMinute   = 22 * 60

	minutesPerDay = 24 * 60
)

// Slot is a time-of-day interval in minutes since midnight,
// serialized as "startMinute-endMinute" (e.g. "1080-1140").
type Slot struct {
	Start int
	End   int
}

// ParseSlot parses a "startMinute-endMinute" string
func ParseSlot(s string) (Slot, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return Slot{}, fmt.Errorf("malformed time slot %q", s)
	}
	startMin, err := strconv.Atoi(start)
	if err != nil {
		return Slot{}, fmt.Errorf("malformed time slot %q: %w", s, err)
	}
	endMin, err := strconv.Atoi(end)
	if err != nil {
		return Slot{}, fmt.Errorf("malformed time slot %q: %w", s, err)
	}
	if startMin < 0 || endMin > minutesPerDay || startMin >= endMin {
		return Slot{}, fmt.Errorf("time slot %q out of range", s)
	}
	return Slot{Start: startMin, End: endMin}, nil
}

// String returns the wire format "startMinute-endMinute"
func (s Slot) String() string {
	return strconv.Itoa(s.Start) + "-" + strconv.Itoa(s.End)
}

// Duration returns the slot length in minutes
func (s Slot) Duration() int {
	return s.End - s.Start
}

// Label renders the slot on a 12-hour clock, e.g. "6:00 PM - 7:00 PM".
// Noon and midnight render as 12.
func (s Slot) Label() string {
	return formatMinutes(s.Start) + " - " + formatMinutes(s.End)
}

func formatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	displayHours := hours % 12
	if displayHours == 0 {
		displayHours = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHours, mins, period)
}

// GenerateSlots tiles the bookable day window with consecutive
// non-overlapping slots of the given duration. A final partial slot
// that would run past 22:00 is dropped.
func GenerateSlots(durationMin int) []Slot {
	if durationMin <= 0 {
		return nil
	}
	var slots []Slot
	for start := dayStartMinute; start+durationMin <= dayEndMinute; start += durationMin {
		slots = append(slots, Slot{Start: start, End: start + durationMin})
	}
	return slots
}
