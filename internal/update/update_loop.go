package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/views"
	"go.uber.org/zap"
)

const clockInterval = 500 * time.Millisecond

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return ClockTickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.ShowClock {
		cmds = append(cmds, clockTick())
	}
	if m.alarms != nil {
		cmds = append(cmds, waitForAlarmCmd(m.alarms.C()))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeAdd, ModeAddSub:
			return m.handleInputKey(typed)
		case ModePalette:
			return m.handlePaletteKey(typed)
		case ModeEdit:
			return m.handleEditKey(typed)
		case ModePicker:
			return m.handlePickerKey(typed), nil
		}
		return m.handleBrowseKey(typed)
	case ClockTickMsg:
		m.Clock = time.Time(typed)
		return m, clockTick()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.fail(typed.Err)
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	case AlarmMsg:
		m.handleAlarm(typed.Alarm)
		if m.alarms == nil {
			return m, nil
		}
		return m, waitForAlarmCmd(m.alarms.C())
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case m.Keys.Up, "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case m.Keys.Down, "down":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case m.Keys.Next, "right":
		m.navigate(m.Nav.Next())
	case m.Keys.Previous, "left":
		m.navigate(m.Nav.Previous())
	case m.Keys.Today:
		m.navigate(m.Nav.Today())
	case m.Keys.ToggleView:
		next := calendar.ViewWeek
		if m.Nav.Mode() == calendar.ViewWeek {
			next = calendar.ViewDay
		}
		m.navigate(m.Nav.SetMode(next))
	case m.Keys.Picker:
		m.openPicker()
	case m.Keys.Add:
		return m.openInput(ModeAdd, "name @HH:mm")
	case m.Keys.AddSub:
		if m.selectedMain() == nil {
			m.Status = StatusBar{Text: "select a task to add a subtask", IsError: true}
			return m, nil
		}
		return m.openInput(ModeAddSub, "subtask name")
	case m.Keys.Palette:
		return m.openInput(ModePalette, "command")
	case m.Keys.Toggle:
		m.toggleSelected()
	case m.Keys.Expand:
		m.toggleExpanded()
	case m.Keys.Edit:
		return m.openEdit()
	case m.Keys.Delete:
		m.deleteSelected()
	}
	return m, nil
}

// navigate switches to next and puts the cursor on the selected day.
func (m *Model) navigate(next calendar.State) {
	m.Nav = next
	m.reload()
	m.focusDay(m.Nav.Window().Start.DaysUntil(m.Nav.Selected()))
	m.Status = StatusBar{Text: m.Nav.Window().Title()}
}

func (m *Model) toggleSelected() {
	row, ok := m.selected()
	if !ok || row.Task() == nil {
		return
	}
	m.apply(m.svc.ToggleCompleted(m.ctx, row.Task()))
}

func (m *Model) toggleExpanded() {
	main := m.selectedMain()
	if main == nil {
		return
	}
	m.apply(m.svc.SetExpanded(m.ctx, main, !main.Expanded()))
	m.rebuildRows()
	m.selectTask(main)
}

func (m *Model) deleteSelected() {
	row, ok := m.selected()
	if !ok || row.Task() == nil {
		return
	}
	if row.Sub != nil {
		m.apply(m.svc.DeleteSubTask(m.ctx, row.Main, row.Sub))
	} else {
		m.apply(m.svc.DeleteMainTask(m.ctx, m.Days[row.Day], row.Main))
	}
	m.rebuildRows()
}

// apply reports the outcome of one agenda call on the status line.
func (m *Model) apply(err error) {
	if err != nil {
		m.fail(err)
		return
	}
	m.LastError = nil
	if text := m.events.take(); text != "" {
		m.Status = StatusBar{Text: text}
	}
	m.syncAlarms()
}

func (m *Model) fail(err error) {
	if err == nil {
		return
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.log.Warn("action failed", zap.Error(err))
}

func (m Model) View() string {
	today := model.DateOf(m.now())
	body := views.RenderAgenda(AgendaData(m.Nav.Window(), m.Days, today, m.Rows, m.Cursor))

	side := ""
	switch m.Mode {
	case ModePicker:
		side = views.RenderMonthPicker(m.pickerData(today))
	case ModeEdit:
		side = views.RenderEditForm(views.EditFormData{
			NameView: m.Edit.Name.View(),
			TimeView: m.Edit.Time.View(),
			DateView: m.Edit.Date.View(),
			Focus:    m.Edit.Focus,
		})
	case ModeAdd, ModeAddSub, ModePalette:
		side = fmt.Sprintf("%s> %s", m.Mode, m.input.View())
	}
	if m.HelpVisible {
		if side != "" {
			side += "\n\n"
		}
		side += m.renderHelpView()
	}

	clock := ""
	if m.ShowClock {
		day, hms := calendar.ClockLabel(m.Clock)
		clock = day + " " + hms
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("planday | %s view", m.Nav.Mode()),
		Clock:      clock,
		Body:       body,
		Side:       side,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     m.footer(),
	})
}

func (m Model) footer() string {
	k := m.Keys
	return fmt.Sprintf("keys: %s/%s move | %s/%s prev/next | %s today | %s day/week | %s month | %s add | %s sub | %s help | %s quit",
		k.Up, k.Down, k.Previous, k.Next, k.Today, k.ToggleView, k.Picker, k.Add, k.AddSub, k.Help, k.Quit)
}
