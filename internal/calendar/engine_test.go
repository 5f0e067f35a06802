package calendar

import (
	"testing"
	"time"

	"lashstudio/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name            string
		cursor          model.Date
		expectedDays    int
		startingWeekday int
	}{
		{"june 2025 starts on sunday", model.NewDate(2025, time.June, 15), 30, 0},
		{"march 2025 starts on saturday", model.NewDate(2025, time.March, 31), 31, 6},
		{"september 2025 starts on monday", model.NewDate(2025, time.September, 1), 30, 1},
		{"leap february", model.NewDate(2024, time.February, 10), 29, 4},
		{"january 2025", model.NewDate(2025, time.January, 1), 31, 3},
		{"century non leap", model.NewDate(2100, time.February, 1), 28, int(time.Date(2100, 2, 1, 0, 0, 0, 0, time.UTC).Weekday())},
		{"quad century leap", model.NewDate(2000, time.February, 1), 29, int(time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC).Weekday())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := MonthGrid(tt.cursor)

			require.Len(t, grid.Days, tt.expectedDays)
			assert.Equal(t, tt.startingWeekday, grid.StartingWeekday)
			assert.Equal(t, 1, grid.First.Day)
			assert.Equal(t, tt.expectedDays, grid.Last.Day)
			for i, d := range grid.Days {
				assert.Equal(t, i+1, d.Day)
				assert.Equal(t, grid.First.Month, d.Month)
			}
		})
	}
}

func TestMonthGrid_MalformedCursor(t *testing.T) {
	grid := MonthGrid(model.Date{Year: 2025, Month: time.February, Day: 31})

	assert.Equal(t, time.March, grid.First.Month)
	assert.Len(t, grid.Days, 31)
}

func TestIsSelectable(t *testing.T) {
	today := model.NewDate(2025, time.June, 10)

	assert.False(t, IsSelectable(today.AddDays(-1), today), "yesterday")
	assert.True(t, IsSelectable(today, today), "today")
	assert.True(t, IsSelectable(today.AddDays(1), today), "tomorrow")
	assert.False(t, IsSelectable(model.NewDate(2024, time.June, 10), today), "last year")
	assert.True(t, IsSelectable(model.NewDate(2026, time.January, 1), today), "next year")
}

func TestIsToday(t *testing.T) {
	today := model.NewDate(2025, time.June, 10)

	assert.True(t, IsToday(model.NewDate(2025, time.June, 10), today))
	assert.False(t, IsToday(model.NewDate(2025, time.June, 11), today))
	assert.True(t, IsToday(model.Date{Year: 2025, Month: time.May, Day: 41}, today))
}

func TestShiftMonth_CalendarPolicy(t *testing.T) {
	tests := []struct {
		name     string
		cursor   model.Date
		delta    int
		expected model.Date
	}{
		{"forward", model.NewDate(2025, time.June, 10), 1, model.NewDate(2025, time.July, 10)},
		{"backward", model.NewDate(2025, time.June, 10), -1, model.NewDate(2025, time.May, 10)},
		{"clamp to short month", model.NewDate(2025, time.January, 31), 1, model.NewDate(2025, time.February, 28)},
		{"clamp to leap february", model.NewDate(2024, time.January, 31), 1, model.NewDate(2024, time.February, 29)},
		{"year rollover", model.NewDate(2025, time.December, 15), 1, model.NewDate(2026, time.January, 15)},
		{"year rollback", model.NewDate(2025, time.January, 15), -1, model.NewDate(2024, time.December, 15)},
		{"multiple months", model.NewDate(2025, time.March, 31), -13, model.NewDate(2024, time.February, 29)},
		{"zero delta", model.NewDate(2025, time.June, 10), 0, model.NewDate(2025, time.June, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShiftMonth(tt.cursor, tt.delta, ShiftCalendarMonth))
		})
	}
}

func TestShiftMonth_ClampIsPerCall(t *testing.T) {
	cursor := model.NewDate(2025, time.January, 31)

	cursor = ShiftMonth(cursor, 1, ShiftCalendarMonth)
	assert.Equal(t, model.NewDate(2025, time.February, 28), cursor)

	cursor = ShiftMonth(cursor, 1, ShiftCalendarMonth)
	assert.Equal(t, model.NewDate(2025, time.March, 28), cursor)
}

func TestShiftMonth_ThirtyDaysPolicy(t *testing.T) {
	cursor := model.NewDate(2025, time.January, 31)

	cursor = ShiftMonth(cursor, 1, ShiftThirtyDays)
	assert.Equal(t, model.NewDate(2025, time.March, 2), cursor, "january 31 skips february entirely")

	cursor = ShiftMonth(cursor, 1, ShiftThirtyDays)
	assert.Equal(t, model.NewDate(2025, time.April, 1), cursor)

	assert.Equal(t, model.NewDate(2025, time.March, 2), ShiftMonth(model.NewDate(2025, time.April, 1), -1, ShiftThirtyDays))
}

func TestParseShiftPolicy(t *testing.T) {
	p, err := ParseShiftPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ShiftCalendarMonth, p)

	p, err = ParseShiftPolicy("THIRTY_DAYS")
	require.NoError(t, err)
	assert.Equal(t, ShiftThirtyDays, p)

	_, err = ParseShiftPolicy("weekly")
	assert.Error(t, err)
}

func TestEngine_TodayUsesStudioLocation(t *testing.T) {
	london := time.FixedZone("BST", 60*60)

	// 23:30 UTC on June 9th is already June 10th in London (BST).
	now := time.Date(2025, time.June, 9, 23, 30, 0, 0, time.UTC)

	e := NewEngine(WithClock(fixedClock(now)), WithLocation(london))
	assert.Equal(t, model.NewDate(2025, time.June, 10), e.Today())

	utc := NewEngine(WithClock(fixedClock(now)))
	assert.Equal(t, model.NewDate(2025, time.June, 9), utc.Today())
}

func TestEngine_ShiftMonthUsesPolicy(t *testing.T) {
	cursor := model.NewDate(2025, time.January, 31)

	assert.Equal(t, model.NewDate(2025, time.February, 28), NewEngine().ShiftMonth(cursor, 1))
	assert.Equal(t, model.NewDate(2025, time.March, 2), NewEngine(WithShiftPolicy(ShiftThirtyDays)).ShiftMonth(cursor, 1))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "JUNE 2025", Label(model.NewDate(2025, time.June, 10)))
	assert.Equal(t, "FEBRUARY 2024", Label(model.NewDate(2024, time.February, 29)))
}
