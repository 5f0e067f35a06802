package calendar

import (
	"fmt"
	"strings"
	"time"

	"lashstudio/pkg/model"
)

// ShiftPolicy selects how month navigation moves the cursor.
type ShiftPolicy string

const (
	// ShiftCalendarMonth moves by whole calendar months, clamping the day
	// to the length of the target month.
	ShiftCalendarMonth ShiftPolicy = "calendar"
	// ShiftThirtyDays moves the cursor by 30 days per step. Kept for
	// compatibility with the legacy site, which drifts across long months.
	ShiftThirtyDays ShiftPolicy = "thirty_days"
)

// MaxShift bounds a single navigation request, in months.
const MaxShift = 120

func ParseShiftPolicy(s string) (ShiftPolicy, error) {
	switch ShiftPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case ShiftCalendarMonth, "":
		return ShiftCalendarMonth, nil
	case ShiftThirtyDays:
		return ShiftThirtyDays, nil
	default:
		return "", fmt.Errorf("unknown month shift policy %q", s)
	}
}

type Engine struct {
	now      func() time.Time
	location *time.Location
	policy   ShiftPolicy
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

func WithShiftPolicy(p ShiftPolicy) Option {
	return func(e *Engine) {
		if p != "" {
			e.policy = p
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:      time.Now,
		location: time.UTC,
		policy:   ShiftCalendarMonth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today is the studio's current calendar day. This is the only place the
// engine reads the clock.
func (e *Engine) Today() model.Date {
	return model.DateOf(e.now().In(e.location))
}

func (e *Engine) Location() *time.Location {
	return e.location
}

func (e *Engine) Policy() ShiftPolicy {
	return e.policy
}

func (e *Engine) ShiftMonth(cursor model.Date, delta int) model.Date {
	return ShiftMonth(cursor, delta, e.policy)
}

// MonthGrid lists every day of the month containing cursor.
func MonthGrid(cursor model.Date) model.CalendarMonth {
	cursor = cursor.Normalize()
	first := cursor.FirstOfMonth()
	n := first.DaysInMonth()

	days := make([]model.Date, n)
	for i := range days {
		days[i] = model.Date{Year: first.Year, Month: first.Month, Day: i + 1}
	}

	return model.CalendarMonth{
		Cursor:          cursor,
		First:           first,
		Last:            days[n-1],
		Days:            days,
		StartingWeekday: int(first.Weekday()),
	}
}

// IsSelectable reports whether d may be booked. Only days strictly before
// today are rejected.
func IsSelectable(d, today model.Date) bool {
	return !d.Before(today)
}

func IsToday(d, today model.Date) bool {
	return d.Equal(today)
}

func ShiftMonth(cursor model.Date, delta int, policy ShiftPolicy) model.Date {
	cursor = cursor.Normalize()
	if delta == 0 {
		return cursor
	}
	if policy == ShiftThirtyDays {
		return cursor.AddDays(30 * delta)
	}

	// Month arithmetic on the first of the month avoids time.Date overflow,
	// then the original day is clamped into the target month.
	target := model.NewDate(cursor.Year, cursor.Month+time.Month(delta), 1)
	day := min(cursor.Day, target.DaysInMonth())
	return model.Date{Year: target.Year, Month: target.Month, Day: day}
}

// Label renders the month heading, e.g. "JUNE 2025".
func Label(cursor model.Date) string {
	cursor = cursor.Normalize()
	return fmt.Sprintf("%s %d", strings.ToUpper(cursor.Month.String()), cursor.Year)
}
