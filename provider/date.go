package provider

import (
	"fmt"
	"time"
)

// DateLayout is the DD.MM.YYYY form accepted for the requested date
const DateLayout = "02.01.2006"

// Date is an optional calendar date. The zero value means the current day's sheet
type Date struct {
	t   time.Time
	set bool
}

// ParseDate parses s strictly in DD.MM.YYYY form. An empty string yields the zero Date
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q: %v", ErrDateFormat, s, err)
	}

	return Date{t: t, set: true}, nil
}

// DateOf returns a set Date for the calendar day of t
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), set: true}
}

// Time returns the date and whether it was set
func (d Date) Time() (time.Time, bool) {
	return d.t, d.set
}

// OrToday returns d, or the current day when d is the zero Date
func (d Date) OrToday() Date {
	if d.set {
		return d
	}

	return DateOf(time.Now())
}

func (d Date) IsZero() bool {
	return !d.set
}

// Format formats the date with layout, the current day is used for the zero Date
func (d Date) Format(layout string) string {
	if !d.set {
		return time.Now().Format(layout)
	}

	return d.t.Format(layout)
}

func (d Date) String() string {
	if !d.set {
		return "today"
	}

	return d.t.Format(DateLayout)
}
