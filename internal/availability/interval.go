package availability

import "time"

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether i and o share any instant. Intervals that only
// touch at an endpoint do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Days lists every calendar date the interval touches, in order.
func (i Interval) Days() []CalendarDate {
	if !i.Valid() {
		return nil
	}
	first := DateOf(i.Start)
	last := DateOf(i.End.Add(-time.Millisecond))
	var days []CalendarDate
	for d := first; !d.After(last); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
