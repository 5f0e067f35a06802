package model

// CalendarMonth is the grid data for the month containing Cursor.
// StartingWeekday is the number of leading blank cells in a Sunday-first
// seven column grid.
type CalendarMonth struct {
	Cursor          Date   `json:"cursor"`
	First           Date   `json:"first"`
	Last            Date   `json:"last"`
	Days            []Date `json:"days"`
	StartingWeekday int    `json:"starting_weekday"`
}
