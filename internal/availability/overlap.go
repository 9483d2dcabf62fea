package availability

import "time"

const halfDay = 12 * time.Hour

// adjacency tolerance applied to the end of existing bookings
const boundaryEpsilon = time.Millisecond

// Booking is an existing reservation as seen by the resolver.
type Booking struct {
	Start     time.Time
	End       time.Time
	Duration  Duration
	Cancelled bool
}

func (b Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// Half identifies the AM [00:00,12:00) or PM [12:00,24:00) part of a day.
type Half int

const (
	HalfAM Half = iota
	HalfPM
)

func (h Half) String() string {
	if h == HalfPM {
		return "pm"
	}
	return "am"
}

func HalfInterval(day CalendarDate, h Half) Interval {
	start := day.Midnight().Add(time.Duration(h) * halfDay)
	return Interval{Start: start, End: start.Add(halfDay)}
}

func halfFloor(t time.Time) time.Time {
	midnight := DateOf(t).Midnight()
	if t.Sub(midnight) >= halfDay {
		return midnight.Add(halfDay)
	}
	return midnight
}

// alignToHalves widens an interval to the half-day boundaries it spans.
func alignToHalves(i Interval) Interval {
	return Interval{
		Start: halfFloor(i.Start),
		End:   halfFloor(i.End.Add(-boundaryEpsilon)).Add(halfDay),
	}
}

// covers reports whether b occupies any part of the contiguous half-day run h.
func (b Booking) covers(h Interval) bool {
	return b.Start.Before(h.End) && !b.End.Add(-boundaryEpsilon).Before(h.Start)
}

// HasConflict decides whether proposed collides with any live booking on the
// spot. Day-only spots compare plain half-open intervals; long-stay spots
// compare at half-day granularity so stays can hand over at noon.
// An empty or inverted proposal is never bookable and counts as a conflict.
func HasConflict(s Spot, proposed Interval, existing []Booking) bool {
	if !proposed.Valid() {
		return true
	}
	if IsDayOnly(s) {
		for _, b := range existing {
			if b.Cancelled {
				continue
			}
			if proposed.Overlaps(b.Interval()) {
				return true
			}
		}
		return false
	}

	halves := alignToHalves(proposed)
	for _, b := range existing {
		if b.Cancelled || !b.Interval().Valid() {
			continue
		}
		if b.covers(halves) {
			return true
		}
	}
	return false
}

// HalfBooked reports whether a live booking covers the given half of day.
func HalfBooked(day CalendarDate, h Half, existing []Booking) bool {
	hi := HalfInterval(day, h)
	for _, b := range existing {
		if b.Cancelled || !b.Interval().Valid() {
			continue
		}
		if b.covers(hi) {
			return true
		}
	}
	return false
}
