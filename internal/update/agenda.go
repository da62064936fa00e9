package update

import (
	"strings"

	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/views"
)

type rowKey struct {
	day  int
	kind model.Kind
	id   int64
}

func (m *Model) rebuildRows() {
	rows := make([]Row, 0, len(m.Days)*4)
	for i, pd := range m.Days {
		rows = append(rows, Row{Day: i})
		for _, task := range pd.Sorted() {
			rows = append(rows, Row{Day: i, Main: task})
			if !task.Expanded() {
				continue
			}
			subs := task.SubTasks()
			model.SortSubTasks(subs)
			for _, sub := range subs {
				rows = append(rows, Row{Day: i, Main: task, Sub: sub})
			}
		}
	}
	m.Rows = rows
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Rows) {
		m.Cursor = len(m.Rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selected() (Row, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return Row{}, false
	}
	return m.Rows[m.Cursor], true
}

// selectedMain is the main task under the cursor, or the owner of the
// selected subtask.
func (m Model) selectedMain() *model.MainTask {
	row, ok := m.selected()
	if !ok {
		return nil
	}
	return row.Main
}

func (m Model) selectedDay() *model.PlanDate {
	row, ok := m.selected()
	if !ok || row.Day >= len(m.Days) {
		if len(m.Days) > 0 {
			return m.Days[0]
		}
		return nil
	}
	return m.Days[row.Day]
}

func (m Model) dayFor(d model.Date) *model.PlanDate {
	for _, pd := range m.Days {
		if pd.Date().Equal(d) {
			return pd
		}
	}
	return nil
}

func (m Model) selectedKey() rowKey {
	row, ok := m.selected()
	if !ok {
		return rowKey{}
	}
	key := rowKey{day: row.Day}
	if task := row.Task(); task != nil {
		key.kind = task.Kind()
		key.id = task.ID()
	}
	return key
}

func (m *Model) restoreSelection(key rowKey) {
	if key.id != 0 {
		for i, row := range m.Rows {
			if task := row.Task(); task != nil && task.Kind() == key.kind && task.ID() == key.id {
				m.Cursor = i
				return
			}
		}
	}
	m.focusDay(key.day)
}

func (m *Model) selectTask(task model.Task) {
	for i, row := range m.Rows {
		if row.Task() == task {
			m.Cursor = i
			return
		}
	}
}

func (m *Model) focusDay(day int) {
	for i, row := range m.Rows {
		if row.Day == day && row.Main == nil {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func dayLabel(d model.Date) string {
	return strings.ToUpper(d.Format("Monday 02-01-2006"))
}

// AgendaData converts loaded days into the view model of the agenda panel.
// cursor is the row index to highlight, -1 for none.
func AgendaData(w calendar.Window, days []*model.PlanDate, today model.Date, rows []Row, cursor int) views.AgendaData {
	data := views.AgendaData{Title: w.Title(), DayCursor: -1}
	if cursor >= 0 && cursor < len(rows) && rows[cursor].Main == nil {
		data.DayCursor = rows[cursor].Day
	}
	for i, pd := range days {
		day := views.DayData{Label: dayLabel(pd.Date()), Today: pd.Date().Equal(today)}
		for r, row := range rows {
			if row.Day != i || row.Main == nil {
				continue
			}
			day.Rows = append(day.Rows, rowData(row, r == cursor))
		}
		data.Days = append(data.Days, day)
	}
	return data
}

func rowData(row Row, cursor bool) views.RowData {
	if row.Sub != nil {
		return views.RowData{Name: row.Sub.Name(), Done: row.Sub.Completed(), Sub: true, Cursor: cursor}
	}
	out := views.RowData{
		Name:     row.Main.Name(),
		Done:     row.Main.Completed(),
		HasSubs:  len(row.Main.SubTasks()) > 0,
		Expanded: row.Main.Expanded(),
		Editing:  row.Main.EditMode(),
		Cursor:   cursor,
	}
	if c, ok := row.Main.Time(); ok {
		out.Time = c.String()
	}
	return out
}

// PlainRows lays out days with every subtask shown, for non-interactive output.
func PlainRows(days []*model.PlanDate) []Row {
	var rows []Row
	for i, pd := range days {
		for _, task := range pd.Sorted() {
			rows = append(rows, Row{Day: i, Main: task})
			subs := task.SubTasks()
			model.SortSubTasks(subs)
			for _, sub := range subs {
				rows = append(rows, Row{Day: i, Main: task, Sub: sub})
			}
		}
	}
	return rows
}
