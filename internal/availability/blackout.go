package availability

import (
	"slices"
	"time"
)

const (
	defaultCompetitionLength = 24 * time.Hour
	visibilityGrace          = 48 * time.Hour
)

// Competition is the part of a competition relevant to blackouts. An empty
// BlockedSpots set blocks every spot.
type Competition struct {
	ID           uint
	Active       bool
	Date         time.Time
	EndDate      *time.Time
	BlockedSpots []int
}

func EffectiveEnd(c Competition) time.Time {
	if c.EndDate != nil {
		return *c.EndDate
	}
	return c.Date.Add(defaultCompetitionLength)
}

// BlockedDays returns the inclusive date range a competition blacks out.
// Events spanning at most 24h block only their start date, even when they run
// past midnight.
func BlockedDays(c Competition) (first, last CalendarDate) {
	first = DateOf(c.Date)
	end := EffectiveEnd(c)
	if end.Sub(c.Date) <= defaultCompetitionLength {
		return first, first
	}
	last = DateOf(end)
	if last.Before(first) {
		last = first
	}
	return first, last
}

func (c Competition) blocksSpot(number int) bool {
	return len(c.BlockedSpots) == 0 || slices.Contains(c.BlockedSpots, number)
}

func IsBlockedByCompetition(s Spot, day CalendarDate, comps []Competition) bool {
	for _, c := range comps {
		if !c.Active || !c.blocksSpot(s.Number) {
			continue
		}
		first, last := BlockedDays(c)
		if !day.Before(first) && !day.After(last) {
			return true
		}
	}
	return false
}

// IsVisible reports whether an admin "active" listing still shows c at now.
func IsVisible(c Competition, now time.Time) bool {
	return now.Before(EffectiveEnd(c).Add(visibilityGrace))
}

func IsCompleted(c Competition, now time.Time) bool {
	return !now.Before(EffectiveEnd(c))
}
