package models

import (
	"testing"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/stretchr/testify/assert"
)

func TestFishingSpot_Capability(t *testing.T) {
	assert.Equal(t, availability.CapabilityLongStay, (&FishingSpot{Number: 4}).Capability())
	assert.Equal(t, availability.CapabilityDayOnly, (&FishingSpot{Number: 9}).Capability())
	assert.Equal(t, availability.CapabilityVIP, (&FishingSpot{Number: 99, Name: "VIP"}).Capability())
}

func TestBookings_CancelledFlag(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	rs := []Reservation{
		{StartDate: start, EndDate: start.Add(16 * time.Hour), Duration: availability.DurationDay, Status: StatusConfirmed},
		{StartDate: start, EndDate: start.Add(16 * time.Hour), Duration: availability.DurationDay, Status: StatusCancelled},
	}

	bs := Bookings(rs)
	assert.Len(t, bs, 2)
	assert.False(t, bs[0].Cancelled)
	assert.True(t, bs[1].Cancelled)
	assert.Equal(t, start, bs[0].Start)
}

func TestCompetition_Rules(t *testing.T) {
	c := Competition{ID: 3, Active: true, Date: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC), BlockedSpots: []int{1, 2}}
	r := c.Rules()
	assert.Equal(t, uint(3), r.ID)
	assert.Equal(t, []int{1, 2}, r.BlockedSpots)
	assert.Nil(t, r.EndDate)
}
