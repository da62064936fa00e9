package calendar

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/planday/internal/model"
)

const (
	GridRows  = 6
	GridCols  = 7
	GridCells = GridRows * GridCols
)

type Cell struct {
	Date    model.Date
	InMonth bool
	IsToday bool
}

// MonthGrid is the 6x7 picker for one month. It always starts on the Monday on
// or before the 1st, so neighbouring months fill the leading and trailing
// cells.
type MonthGrid struct {
	Month model.Date
	Cells [GridCells]Cell
	Weeks [GridRows]int
}

func NewMonthGrid(anyDay, today model.Date) MonthGrid {
	first := anyDay.FirstOfMonth()
	start := first.MondayOnOrBefore()
	g := MonthGrid{Month: first}
	for i := range g.Cells {
		d := start.AddDays(i)
		g.Cells[i] = Cell{
			Date:    d,
			InMonth: d.Month() == first.Month() && d.Year() == first.Year(),
			IsToday: d.Equal(today),
		}
	}
	for row := range g.Weeks {
		g.Weeks[row] = WeekNumber(g.Cells[row*GridCols].Date)
	}
	return g
}

func (g MonthGrid) Start() model.Date { return g.Cells[0].Date }

func (g MonthGrid) Row(row int) []Cell {
	if row < 0 || row >= GridRows {
		return nil
	}
	return g.Cells[row*GridCols : (row+1)*GridCols]
}

// At returns the cell at row and col. Out-of-range positions are clamped.
func (g MonthGrid) At(row, col int) Cell {
	row = min(max(row, 0), GridRows-1)
	col = min(max(col, 0), GridCols-1)
	return g.Cells[row*GridCols+col]
}

// Position is the row and column of d, or false when d is not on the grid.
func (g MonthGrid) Position(d model.Date) (int, int, bool) {
	offset := g.Start().DaysUntil(d)
	if offset < 0 || offset >= GridCells {
		return 0, 0, false
	}
	return offset / GridCols, offset % GridCols, true
}

func (g MonthGrid) NextMonth(today model.Date) MonthGrid {
	return NewMonthGrid(g.Month.AddMonths(1), today)
}

func (g MonthGrid) PreviousMonth(today model.Date) MonthGrid {
	return NewMonthGrid(g.Month.AddMonths(-1), today)
}

// Title is the picker heading, e.g. "JUNE 2024".
func (g MonthGrid) Title() string {
	return fmt.Sprintf("%s %d", strings.ToUpper(g.Month.Month().String()), g.Month.Year())
}
