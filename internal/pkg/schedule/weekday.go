package schedule

import (
	"fmt"
	"time"
)

// weekdayNames maps every accepted spelling to its canonical weekday.
// Three conventions are accepted: three-letter abbreviation, full
// lowercase, and full capitalized. Anything else is an error, never a
// silent default.
var weekdayNames = map[string]time.Weekday{
	"Sun": time.Sunday, "sunday": time.Sunday, "Sunday": time.Sunday,
	"Mon": time.Monday, "monday": time.Monday, "Monday": time.Monday,
	"Tue": time.Tuesday, "tuesday": time.Tuesday, "Tuesday": time.Tuesday,
	"Wed": time.Wednesday, "wednesday": time.Wednesday, "Wednesday": time.Wednesday,
	"Thu": time.Thursday, "thursday": time.Thursday, "Thursday": time.Thursday,
	"Fri": time.Friday, "friday": time.Friday, "Friday": time.Friday,
	"Sat": time.Saturday, "saturday": time.Saturday, "Saturday": time.Saturday,
}

// NormalizeWeekday maps a weekday name to its canonical time.Weekday
func NormalizeWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[name]
	if !ok {
		return 0, fmt.Errorf("unrecognized weekday name: %q", name)
	}
	return day, nil
}

// NormalizeWeekdays maps a list of weekday names to a weekday set.
// Fails on the first unrecognized name.
func NormalizeWeekdays(names []string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool, len(names))
	for _, name := range names {
		day, err := NormalizeWeekday(name)
		if err != nil {
			return nil, err
		}
		days[day] = true
	}
	return days, nil
}
