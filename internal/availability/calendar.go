package availability

type DayState string

const (
	DayAvailable   DayState = "available"
	DayOccupied    DayState = "occupied"
	DayCompetition DayState = "competition"
	DayPast        DayState = "past"
	DaySplit       DayState = "split"
)

// Selectable reports whether a day in this state may be clicked at all.
func (s DayState) Selectable() bool {
	return s == DayAvailable || s == DaySplit
}

type DayClass struct {
	Date   CalendarDate `json:"date"`
	State  DayState     `json:"state"`
	FreeAM bool         `json:"free_am"`
	FreePM bool         `json:"free_pm"`
}

// ClassifyDay projects one calendar day for a spot. Priority when several
// states apply: past, competition, occupied, split, available.
func ClassifyDay(s Spot, day, today CalendarDate, existing []Booking, comps []Competition) DayClass {
	class := DayClass{Date: day}

	switch {
	case day.Before(today):
		class.State = DayPast
		return class
	case IsBlockedByCompetition(s, day, comps):
		class.State = DayCompetition
		return class
	}

	if IsDayOnly(s) {
		iv, _ := ComputeInterval(day, DurationDay)
		if HasConflict(s, iv, existing) {
			class.State = DayOccupied
			return class
		}
		class.State = DayAvailable
		class.FreeAM, class.FreePM = true, true
		return class
	}

	class.FreeAM = !HalfBooked(day, HalfAM, existing)
	class.FreePM = !HalfBooked(day, HalfPM, existing)
	switch {
	case !class.FreeAM && !class.FreePM:
		class.State = DayOccupied
	case class.FreeAM != class.FreePM:
		class.State = DaySplit
	default:
		class.State = DayAvailable
	}
	return class
}

// ProjectRange classifies every day in [from, to] inclusive.
func ProjectRange(s Spot, from, to, today CalendarDate, existing []Booking, comps []Competition) []DayClass {
	if to.Before(from) {
		return nil
	}
	var out []DayClass
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, ClassifyDay(s, d, today, existing, comps))
	}
	return out
}

// Feasible reports whether a booking of d starting on day could be placed:
// the spot permits d, no day of the span is past or blacked out, and the
// resolver finds no conflict.
func Feasible(s Spot, day CalendarDate, d Duration, today CalendarDate, existing []Booking, comps []Competition) bool {
	if !Allows(s, d) {
		return false
	}
	iv, err := ComputeInterval(day, d)
	if err != nil {
		return false
	}
	for _, spanDay := range iv.Days() {
		if spanDay.Before(today) || IsBlockedByCompetition(s, spanDay, comps) {
			return false
		}
	}
	return !HasConflict(s, iv, existing)
}

// FeasibleDurations lists every permitted duration that fits on day.
func FeasibleDurations(s Spot, day, today CalendarDate, existing []Booking, comps []Competition) []Duration {
	var out []Duration
	for _, d := range AllowedDurations(s) {
		if Feasible(s, day, d, today, existing, comps) {
			out = append(out, d)
		}
	}
	return out
}

type Selection struct {
	Day       CalendarDate `json:"day"`
	Duration  Duration     `json:"duration"`
	Interval  Interval     `json:"interval"`
	FellBack  bool         `json:"fell_back"`
	Available []Duration   `json:"available"`
}

// SelectDay resolves a click on day with the currently chosen duration. If
// preferred no longer fits, the shortest feasible permitted duration is used
// instead. The boolean is false when nothing fits.
func SelectDay(s Spot, day CalendarDate, preferred Duration, today CalendarDate, existing []Booking, comps []Competition) (Selection, bool) {
	feasible := FeasibleDurations(s, day, today, existing, comps)
	if len(feasible) == 0 {
		return Selection{Day: day}, false
	}

	chosen := feasible[0]
	fellBack := true
	for _, d := range feasible {
		if d == preferred {
			chosen, fellBack = d, false
			break
		}
	}

	iv, _ := ComputeInterval(day, chosen)
	return Selection{
		Day:       day,
		Duration:  chosen,
		Interval:  iv,
		FellBack:  fellBack,
		Available: feasible,
	}, true
}
