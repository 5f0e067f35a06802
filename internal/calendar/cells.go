package calendar

import "lashstudio/pkg/model"

// Cell is one square of the rendered month. Blank cells pad the first
// week so that day 1 lands under its weekday column.
type Cell struct {
	Date       *model.Date `json:"date,omitempty"`
	Day        int         `json:"day,omitempty"`
	Blank      bool        `json:"blank,omitempty"`
	Selectable bool        `json:"selectable"`
	Today      bool        `json:"today"`
	Selected   bool        `json:"selected"`
}

// Cells lays out the month around cursor. The today highlight is dropped
// on the selected cell, which carries its own styling.
func Cells(cursor, today model.Date, selected *model.Date) []Cell {
	grid := MonthGrid(cursor)

	cells := make([]Cell, 0, grid.StartingWeekday+len(grid.Days))
	for range grid.StartingWeekday {
		cells = append(cells, Cell{Blank: true})
	}
	for _, d := range grid.Days {
		isSelected := selected != nil && d.Equal(*selected)
		cells = append(cells, Cell{
			Date:       &d,
			Day:        d.Day,
			Selectable: IsSelectable(d, today),
			Today:      IsToday(d, today) && !isSelected,
			Selected:   isSelected,
		})
	}
	return cells
}
