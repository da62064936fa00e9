package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/planday/internal/agenda"
	"github.com/sandeepkv93/planday/internal/model"
)

const (
	editFocusName = iota
	editFocusTime
	editFocusDate
	editFields
)

// openEdit puts the selected main task in edit mode and fills the form from it.
func (m Model) openEdit() (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok || row.Main == nil || row.Sub != nil {
		m.Status = StatusBar{Text: "select a task to edit", IsError: true}
		return m, nil
	}
	task := row.Main
	m.apply(m.svc.SetEditMode(m.ctx, task, true))
	if m.LastError != nil {
		return m, nil
	}

	m.Edit.Task = task
	m.Edit.Name.SetValue(task.Name())
	m.Edit.Time.SetValue("")
	if c, ok := task.Time(); ok {
		m.Edit.Time.SetValue(c.String())
	}
	m.Edit.Date.SetValue(task.Date().String())
	m.Mode = ModeEdit
	cmd := m.focusEditField(editFocusName)
	return m, cmd
}

func (m *Model) focusEditField(field int) tea.Cmd {
	m.Edit.Focus = field
	m.Edit.Name.Blur()
	m.Edit.Time.Blur()
	m.Edit.Date.Blur()
	switch field {
	case editFocusTime:
		return m.Edit.Time.Focus()
	case editFocusDate:
		return m.Edit.Date.Focus()
	default:
		return m.Edit.Name.Focus()
	}
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Cancel, "esc":
		if task := m.Edit.Task; task != nil {
			m.apply(m.svc.SetEditMode(m.ctx, task, false))
		}
		m.closeEdit()
		return m, nil
	case m.Keys.Expand, "tab":
		cmd := m.focusEditField((m.Edit.Focus + 1) % editFields)
		return m, cmd
	case "shift+tab":
		cmd := m.focusEditField((m.Edit.Focus + editFields - 1) % editFields)
		return m, cmd
	case m.Keys.Confirm, "enter":
		m.confirmEdit()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.Edit.Focus {
	case editFocusTime:
		m.Edit.Time, cmd = m.Edit.Time.Update(msg)
	case editFocusDate:
		m.Edit.Date, cmd = m.Edit.Date.Update(msg)
	default:
		m.Edit.Name, cmd = m.Edit.Name.Update(msg)
	}
	return m, cmd
}

// confirmEdit applies the form. An invalid date keeps the form open.
func (m *Model) confirmEdit() {
	task := m.Edit.Task
	if task == nil {
		m.closeEdit()
		return
	}
	date := task.Date()
	if raw := strings.TrimSpace(m.Edit.Date.Value()); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			m.fail(err)
			return
		}
		date = parsed
	}

	from := m.dayFor(task.Date())
	err := m.svc.ApplyEdit(m.ctx, task, from, m.dayFor(date), agenda.Edit{
		Name:     m.Edit.Name.Value(),
		TimeText: m.Edit.Time.Value(),
		Date:     date,
	})
	m.apply(err)
	m.closeEdit()
	m.rebuildRows()
	m.selectTask(task)
}

func (m *Model) closeEdit() {
	m.Mode = ModeBrowse
	m.Edit.Task = nil
	m.Edit.Name.Blur()
	m.Edit.Time.Blur()
	m.Edit.Date.Blur()
}
