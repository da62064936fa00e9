package views

import (
	"fmt"
	"strings"
)

type RowData struct {
	Name     string
	Time     string
	Done     bool
	Sub      bool
	HasSubs  bool
	Expanded bool
	Editing  bool
	Cursor   bool
}

type DayData struct {
	Label string
	Today bool
	Rows  []RowData
}

type AgendaData struct {
	Title string
	Days  []DayData
	// DayCursor marks the day whose header row holds the cursor, -1 for none.
	DayCursor int
}

type CellData struct {
	Day     int
	InMonth bool
	Today   bool
	Cursor  bool
}

type PickerData struct {
	Title string
	Weeks []int
	Cells [][]CellData
}

type EditFormData struct {
	NameView string
	TimeView string
	DateView string
	Focus    int
}

type HelpPanelData struct {
	Markdown string
	HelpView string
}

func RenderAgenda(data AgendaData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Title))
	b.WriteString("\n")
	for i, day := range data.Days {
		label := dayStyle.Render(day.Label)
		if day.Today {
			label = todayStyle.Render(day.Label + " (today)")
		}
		if data.DayCursor == i {
			label = cursorStyle.Render(day.Label)
		}
		b.WriteString("\n" + label + "\n")
		if len(day.Rows) == 0 {
			b.WriteString(dimStyle.Render("  (no tasks)") + "\n")
			continue
		}
		for _, row := range day.Rows {
			b.WriteString(renderRow(row) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRow(row RowData) string {
	check := "[ ]"
	if row.Done {
		check = "[x]"
	}
	var line string
	if row.Sub {
		line = fmt.Sprintf("      %s %s", check, row.Name)
	} else {
		marker := " "
		if row.HasSubs {
			marker = "+"
			if row.Expanded {
				marker = "-"
			}
		}
		clock := row.Time
		if clock == "" {
			clock = "     "
		}
		line = fmt.Sprintf("  %s %s %s %s", marker, clock, check, row.Name)
	}
	switch {
	case row.Cursor:
		return cursorStyle.Render(line)
	case row.Editing:
		return editingStyle.Render(line + " (editing)")
	case row.Done:
		return doneStyle.Render(line)
	default:
		return line
	}
}

// RenderPlainAgenda prints the agenda without styling, one task per line.
func RenderPlainAgenda(data AgendaData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	for _, day := range data.Days {
		b.WriteString("\n" + day.Label + "\n")
		if len(day.Rows) == 0 {
			b.WriteString("  (no tasks)\n")
			continue
		}
		for _, row := range day.Rows {
			check := "[ ]"
			if row.Done {
				check = "[x]"
			}
			if row.Sub {
				fmt.Fprintf(&b, "        %s %s\n", check, row.Name)
				continue
			}
			clock := row.Time
			if clock == "" {
				clock = "--:--"
			}
			fmt.Fprintf(&b, "  %s %s %s\n", clock, check, row.Name)
		}
	}
	return b.String()
}

func RenderMonthPicker(data PickerData) string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(data.Title) + "\n")
	b.WriteString(weekNumStyle.Render("wk"))
	for _, name := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		b.WriteString(cellStyle.Render(name))
	}
	b.WriteString("\n")
	for r, row := range data.Cells {
		week := ""
		if r < len(data.Weeks) {
			week = fmt.Sprintf("%d", data.Weeks[r])
		}
		b.WriteString(weekNumStyle.Render(week))
		for _, cell := range row {
			style := cellStyle
			switch {
			case cell.Cursor:
				style = style.Reverse(true)
			case cell.Today:
				style = style.Bold(true).Foreground(todayStyle.GetForeground())
			case !cell.InMonth:
				style = style.Foreground(dimStyle.GetForeground())
			}
			b.WriteString(style.Render(fmt.Sprintf("%d", cell.Day)))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter day | w week | [ ] month | esc close"))
	return b.String()
}

func RenderEditForm(data EditFormData) string {
	fields := []struct {
		label string
		view  string
	}{
		{"name", data.NameView},
		{"time", data.TimeView},
		{"date", data.DateView},
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("edit task") + "\n")
	for i, f := range fields {
		label := formLabelStyle.Render(f.label)
		if i == data.Focus {
			label = formActiveStyle.Render(f.label)
		}
		b.WriteString(label + " " + f.view + "\n")
	}
	b.WriteString(dimStyle.Render("tab field | enter save | esc cancel"))
	return b.String()
}

func RenderHelpPanel(data HelpPanelData) string {
	parts := []string{}
	if md := RenderMarkdown(data.Markdown); md != "" {
		parts = append(parts, md)
	}
	if data.HelpView != "" {
		parts = append(parts, data.HelpView)
	}
	return strings.Join(parts, "\n\n")
}
