package availability

import (
	"fmt"
	"time"
)

// Date is a calendar day with no time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// At returns the instant at hour:minute wall clock on d in loc.
func (d Date) At(hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

// Clock is a local time of day as stored on business hours ("09:00").
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(raw string) (Clock, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock %q: want HH:MM", raw)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Candidates returns every slot start on day whose hour lies in [openHour, closeHour),
// one per step within each hour, ascending. Slots are built from wall-clock fields;
// wall times that do not exist on day are omitted. step must divide an hour evenly.
func Candidates(day Date, loc *time.Location, openHour, closeHour int, step time.Duration) []time.Time {
	if step <= 0 || step > time.Hour || time.Hour%step != 0 {
		return nil
	}
	if openHour < 0 {
		openHour = 0
	}
	if closeHour > 24 {
		closeHour = 24
	}
	if closeHour <= openHour {
		return nil
	}

	stepMins := int(step / time.Minute)
	slots := make([]time.Time, 0, (closeHour-openHour)*(60/stepMins))
	for h := openHour; h < closeHour; h++ {
		for m := 0; m < 60; m += stepMins {
			t := day.At(h, m, loc)
			// Wall times skipped by a DST jump normalise forward; drop them.
			if t.Hour() != h || t.Minute() != m {
				continue
			}
			slots = append(slots, t)
		}
	}
	return slots
}

// Filter keeps the candidates for which taken reports false, preserving order.
func Filter(candidates []time.Time, taken func(time.Time) bool) []time.Time {
	out := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if !taken(c) {
			out = append(out, c)
		}
	}
	return out
}
