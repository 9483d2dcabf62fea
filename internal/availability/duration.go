package availability

import (
	"fmt"
	"time"
)

// Duration is a reservation length code as it travels on the wire.
type Duration string

const (
	DurationDay Duration = "day"
	Duration24h Duration = "24h"
	Duration48h Duration = "48h"
	Duration72h Duration = "72h"
	Duration96h Duration = "96h"
)

// durationOrder is also the fallback preference order: shorter stays first.
var durationOrder = []Duration{DurationDay, Duration24h, Duration48h, Duration72h, Duration96h}

type offsets struct {
	start time.Duration
	end   time.Duration
}

var durationOffsets = map[Duration]offsets{
	DurationDay: {start: 6 * time.Hour, end: 22 * time.Hour},
	Duration24h: {start: 12 * time.Hour, end: (12 + 22) * time.Hour},
	Duration48h: {start: 12 * time.Hour, end: (12 + 46) * time.Hour},
	Duration72h: {start: 12 * time.Hour, end: (12 + 70) * time.Hour},
	Duration96h: {start: 12 * time.Hour, end: (12 + 94) * time.Hour},
}

func ParseDuration(s string) (Duration, error) {
	d := Duration(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown duration code %q", ErrInvalidInput, s)
	}
	return d, nil
}

func (d Duration) Valid() bool {
	_, ok := durationOffsets[d]
	return ok
}

func (d Duration) IsLongStay() bool {
	return d.Valid() && d != DurationDay
}

// Durations returns all codes in preference order.
func Durations() []Duration {
	out := make([]Duration, len(durationOrder))
	copy(out, durationOrder)
	return out
}

// ComputeInterval converts a picked calendar day and duration code into the
// concrete reservation instants. Offsets are added to UTC midnight of day.
func ComputeInterval(day CalendarDate, d Duration) (Interval, error) {
	off, ok := durationOffsets[d]
	if !ok {
		return Interval{}, fmt.Errorf("%w: unknown duration code %q", ErrInvalidInput, string(d))
	}
	midnight := day.Midnight()
	return Interval{Start: midnight.Add(off.start), End: midnight.Add(off.end)}, nil
}
