package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/views"
)

// openPicker shows the month containing the selected date with the cursor on it.
func (m *Model) openPicker() {
	selected := m.Nav.Selected()
	grid := calendar.NewMonthGrid(selected, m.Nav.TodayDate())
	row, col, _ := grid.Position(selected)
	m.Picker = PickerState{Grid: grid, Row: row, Col: col}
	m.Mode = ModePicker
	m.Status = StatusBar{Text: grid.Title()}
}

func (m Model) handlePickerKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Cancel, "esc", m.Keys.Picker:
		m.Mode = ModeBrowse
		m.Status = StatusBar{Text: "month picker closed"}
	case m.Keys.Previous, "left":
		m.movePickerCursor(0, -1)
	case m.Keys.Next, "right":
		m.movePickerCursor(0, 1)
	case m.Keys.Up, "up":
		m.movePickerCursor(-1, 0)
	case m.Keys.Down, "down":
		m.movePickerCursor(1, 0)
	case "[", "pgup":
		m.shiftPickerMonth(-1)
	case "]", "pgdown":
		m.shiftPickerMonth(1)
	case m.Keys.Confirm, "enter":
		m.Mode = ModeBrowse
		m.navigate(m.Nav.SelectDay(m.pickerDate()))
	case m.Keys.ToggleView:
		m.Mode = ModeBrowse
		m.navigate(m.Nav.SelectWeek(m.pickerDate()))
	}
	return m
}

func (m Model) pickerDate() model.Date {
	return m.Picker.Grid.At(m.Picker.Row, m.Picker.Col).Date
}

// movePickerCursor moves within the grid; stepping off an edge turns the
// month and keeps the cursor on the adjacent date.
func (m *Model) movePickerCursor(dRow, dCol int) {
	row, col := m.Picker.Row+dRow, m.Picker.Col+dCol
	if row >= 0 && row < calendar.GridRows && col >= 0 && col < calendar.GridCols {
		m.Picker.Row, m.Picker.Col = row, col
		return
	}
	target := m.pickerDate().AddDays(dRow*calendar.GridCols + dCol)
	grid := calendar.NewMonthGrid(target, m.Nav.TodayDate())
	m.Picker.Grid = grid
	m.Picker.Row, m.Picker.Col, _ = grid.Position(target)
	m.Status = StatusBar{Text: grid.Title()}
}

// shiftPickerMonth turns the month and keeps the cursor in the same grid cell.
func (m *Model) shiftPickerMonth(delta int) {
	today := m.Nav.TodayDate()
	if delta < 0 {
		m.Picker.Grid = m.Picker.Grid.PreviousMonth(today)
	} else {
		m.Picker.Grid = m.Picker.Grid.NextMonth(today)
	}
	m.Status = StatusBar{Text: m.Picker.Grid.Title()}
}

func (m Model) pickerData(today model.Date) views.PickerData {
	g := m.Picker.Grid
	data := views.PickerData{Title: g.Title(), Weeks: g.Weeks[:]}
	for r := 0; r < calendar.GridRows; r++ {
		cells := make([]views.CellData, 0, calendar.GridCols)
		for c, cell := range g.Row(r) {
			cells = append(cells, views.CellData{
				Day:     cell.Date.Day(),
				InMonth: cell.InMonth,
				Today:   cell.Date.Equal(today),
				Cursor:  r == m.Picker.Row && c == m.Picker.Col,
			})
		}
		data.Cells = append(data.Cells, cells)
	}
	return data
}
