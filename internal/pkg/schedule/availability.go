package schedule

import (
	"time"
)

// DefaultHorizonDays is the rolling window within which dates may be booked
const DefaultHorizonDays = 30

// BookedSlot is one already-reserved (date, time slot) pair of an offering
type BookedSlot struct {
	Date     time.Time
	TimeSlot string
}

// DateKey truncates a timestamp to UTC midnight of its calendar day.
// Session dates are stored and compared at this granularity.
func DateKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AvailableDates computes, per time slot, the bookable dates of an
// offering within [today, today+horizonDays]: the date's weekday is in
// the offering's available days and the (date, slot) pair is not in the
// booked set. Dates are UTC midnights in ascending order.
func AvailableDates(dayNames []string, slots []string, booked []BookedSlot, now time.Time, horizonDays int) (map[string][]time.Time, error) {
	days, err := NormalizeWeekdays(dayNames)
	if err != nil {
		return nil, err
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	taken := make(map[string]map[time.Time]bool, len(slots))
	for _, b := range booked {
		key := DateKey(b.Date)
		if taken[b.TimeSlot] == nil {
			taken[b.TimeSlot] = make(map[time.Time]bool)
		}
		taken[b.TimeSlot][key] = true
	}

	today := DateKey(now)
	result := make(map[string][]time.Time, len(slots))
	for _, slot := range slots {
		if _, err := ParseSlot(slot); err != nil {
			return nil, err
		}
		var dates []time.Time
		for i := 0; i <= horizonDays; i++ {
			date := today.AddDate(0, 0, i)
			if !days[date.Weekday()] {
				continue
			}
			if taken[slot][date] {
				continue
			}
			dates = append(dates, date)
		}
		result[slot] = dates
	}
	return result, nil
}

// IsBookable reports whether a single (date, slot) pair falls inside the
// horizon and on an available weekday. Booked-set membership is checked
// separately at commit time against fresh storage state.
func IsBookable(date time.Time, days map[time.Weekday]bool, now time.Time, horizonDays int) bool {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today := DateKey(now)
	key := DateKey(date)
	if key.Before(today) || key.After(today.AddDate(0, 0, horizonDays)) {
		return false
	}
	return days[key.Weekday()]
}
