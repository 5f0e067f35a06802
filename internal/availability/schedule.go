package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lashstudio/pkg/model"
)

const (
	DefaultStartOfDay = "09:00"
	DefaultEndOfDay   = "17:00"
	DefaultInterval   = time.Hour

	slotLabelLayout = "3:04 PM"
)

var allWeekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

type ScheduleConfig struct {
	StartOfDay  string
	EndOfDay    string
	Interval    time.Duration
	WorkingDays []time.Weekday
}

// DailySchedule offers the same fixed slots on every working day, from the
// start of day up to and including the end of day.
type DailySchedule struct {
	slots       []model.TimeSlot
	workingDays map[time.Weekday]bool
}

// NewDailySchedule creates a schedule offering the same slots on every working day.
func NewDailySchedule(cfg ScheduleConfig) (*DailySchedule, error) {
	if cfg.StartOfDay == "" {
		cfg.StartOfDay = DefaultStartOfDay
	}
	if cfg.EndOfDay == "" {
		cfg.EndOfDay = DefaultEndOfDay
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if len(cfg.WorkingDays) == 0 {
		cfg.WorkingDays = allWeekdays
	}

	start, err := parseClock(cfg.StartOfDay)
	if err != nil {
		return nil, fmt.Errorf("start of day: %w", err)
	}
	end, err := parseClock(cfg.EndOfDay)
	if err != nil {
		return nil, fmt.Errorf("end of day: %w", err)
	}
	if end < start {
		return nil, fmt.Errorf("end of day %s is before start of day %s", cfg.EndOfDay, cfg.StartOfDay)
	}
	if cfg.Interval < time.Minute {
		return nil, fmt.Errorf("slot interval must be at least one minute, got %s", cfg.Interval)
	}

	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	var slots []model.TimeSlot
	for offset := start; offset <= end; offset += cfg.Interval {
		slots = append(slots, model.TimeSlot(base.Add(offset).Format(slotLabelLayout)))
	}

	days := make(map[time.Weekday]bool, len(cfg.WorkingDays))
	for _, d := range cfg.WorkingDays {
		days[d] = true
	}

	return &DailySchedule{slots: slots, workingDays: days}, nil
}

// DefaultSchedule is hourly from 9:00 AM to 5:00 PM, seven days a week.
func DefaultSchedule() *DailySchedule {
	s, err := NewDailySchedule(ScheduleConfig{})
	if err != nil {
		panic(err)
	}
	return s
}

// SlotsFor returns the day's slots, or an empty list on a non-working day.
func (s *DailySchedule) SlotsFor(ctx context.Context, date model.Date) ([]model.TimeSlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.workingDays[date.Weekday()] {
		return []model.TimeSlot{}, nil
	}
	out := make([]model.TimeSlot, len(s.slots))
	copy(out, s.slots)
	return out, nil
}

// ParseWeekdays accepts full or three letter English day names,
// case-insensitively.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(names))
	seen := make(map[time.Weekday]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		found := false
		for _, d := range allWeekdays {
			full := strings.ToLower(d.String())
			if name == full || name == full[:3] {
				if !seen[d] {
					out = append(out, d)
					seen[d] = true
				}
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday %q", raw)
		}
	}
	return out, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%q must be in HH:MM format", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
