package availability

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// CalendarDate is a date without time or zone. All instants derived from it
// are computed on UTC midnight, so the process time zone never leaks in.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) CalendarDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in UTC.
func DateOf(t time.Time) CalendarDate {
	t = t.UTC()
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: malformed date %q", ErrInvalidInput, s)
	}
	return DateOf(t), nil
}

func (d CalendarDate) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Midnight().AddDate(0, 0, n))
}

func (d CalendarDate) Compare(o CalendarDate) int {
	return d.Midnight().Compare(o.Midnight())
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d.Compare(o) == 0 }

func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

func (d CalendarDate) String() string {
	return d.Midnight().Format(DateLayout)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
