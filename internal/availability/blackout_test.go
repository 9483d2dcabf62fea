package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestBlackout_SingleDayAllSpots(t *testing.T) {
	day5 := day0.AddDays(5)
	comps := []Competition{{ID: 1, Active: true, Date: at(day5, 0)}}

	for _, n := range []int{1, 3, 10, 99} {
		spot := Spot{Number: n}
		assert.True(t, IsBlockedByCompetition(spot, day5, comps), n)
		assert.False(t, IsBlockedByCompetition(spot, day5.AddDays(1), comps), n)
		assert.False(t, IsBlockedByCompetition(spot, day5.AddDays(-1), comps), n)
	}
}

func TestBlackout_SingleDayCrossingMidnight(t *testing.T) {
	day5 := day0.AddDays(5)
	// 08:00 + 24h ends at 08:00 next day but still counts as one day
	comps := []Competition{{ID: 1, Active: true, Date: at(day5, 8)}}

	assert.True(t, IsBlockedByCompetition(Spot{Number: 1}, day5, comps))
	assert.False(t, IsBlockedByCompetition(Spot{Number: 1}, day5.AddDays(1), comps))
}

func TestBlackout_MultiDaySelectedSpots(t *testing.T) {
	day5 := day0.AddDays(5)
	comps := []Competition{{
		ID:           2,
		Active:       true,
		Date:         at(day5, 10),
		EndDate:      ptr(at(day5.AddDays(2), 15)),
		BlockedSpots: []int{2},
	}}

	for i := 0; i <= 2; i++ {
		assert.True(t, IsBlockedByCompetition(Spot{Number: 2}, day5.AddDays(i), comps), i)
	}
	assert.False(t, IsBlockedByCompetition(Spot{Number: 2}, day5.AddDays(3), comps))
	assert.False(t, IsBlockedByCompetition(Spot{Number: 2}, day5.AddDays(-1), comps))

	for i := -1; i <= 3; i++ {
		assert.False(t, IsBlockedByCompetition(Spot{Number: 3}, day5.AddDays(i), comps), i)
	}
}

func TestBlackout_TwentyFiveHoursIsTwoDays(t *testing.T) {
	comps := []Competition{{Active: true, Date: at(day0, 10), EndDate: ptr(at(day0, 10).Add(25 * time.Hour))}}

	first, last := BlockedDays(comps[0])
	assert.Equal(t, day0, first)
	assert.Equal(t, day0.AddDays(1), last)
	assert.True(t, IsBlockedByCompetition(Spot{Number: 1}, day0.AddDays(1), comps))
}

func TestBlackout_InactiveIgnored(t *testing.T) {
	comps := []Competition{{Active: false, Date: at(day0, 0)}}
	assert.False(t, IsBlockedByCompetition(Spot{Number: 1}, day0, comps))
}

func TestCompetitionVisibility(t *testing.T) {
	c := Competition{Active: true, Date: at(day0, 8), EndDate: ptr(at(day0, 18))}

	assert.False(t, IsCompleted(c, at(day0, 17)))
	assert.True(t, IsCompleted(c, at(day0, 18)))
	assert.True(t, IsVisible(c, at(day0, 18).Add(47*time.Hour)))
	assert.False(t, IsVisible(c, at(day0, 18).Add(48*time.Hour)))

	noEnd := Competition{Active: true, Date: at(day0, 8)}
	assert.True(t, IsVisible(noEnd, at(day0, 8).Add(71*time.Hour)))
	assert.False(t, IsVisible(noEnd, at(day0, 8).Add(72*time.Hour)))
}
