package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Cancel, "esc":
		m.closeInput()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case m.Keys.Confirm, "enter":
		raw := strings.TrimSpace(m.input.Value())
		m.closeInput()
		m.executePaletteCommand(raw)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) executePaletteCommand(raw string) {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.fail(err)
		return
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.addMainTask(a)
			return m.result()
		},
		Sub: func(a commands.NameArgs) (commands.Result, error) {
			if m.selectedMain() == nil {
				return commands.Result{}, noSelection("sub")
			}
			m.addSubTask(a.Name)
			return m.result()
		},
		Rename: func(a commands.NameArgs) (commands.Result, error) {
			row, ok := m.selected()
			if !ok || row.Task() == nil {
				return commands.Result{}, noSelection("rename")
			}
			m.apply(m.svc.Rename(m.ctx, row.Task(), a.Name))
			m.rebuildRows()
			return m.result()
		},
		Time: func(a commands.TimeArgs) (commands.Result, error) {
			main := m.selectedMain()
			if main == nil {
				return commands.Result{}, noSelection("time")
			}
			m.apply(m.svc.Retime(m.ctx, main, a.Text))
			m.rebuildRows()
			m.selectTask(main)
			return m.result()
		},
		Move: func(a commands.DateArg) (commands.Result, error) {
			row, ok := m.selected()
			if !ok || row.Main == nil {
				return commands.Result{}, noSelection("move")
			}
			target := a.Resolve(m.Nav.TodayDate())
			if err := m.svc.Move(m.ctx, row.Main, m.Days[row.Day], m.dayFor(target), target); err != nil {
				return commands.Result{}, err
			}
			m.rebuildRows()
			m.selectTask(row.Main)
			return commands.Result{Message: fmt.Sprintf("moved %s to %s", row.Main.Name(), target)}, nil
		},
		Goto: func(a commands.DateArg) (commands.Result, error) {
			m.navigate(m.Nav.SelectDay(a.Resolve(m.Nav.TodayDate())).SetMode(m.Nav.Mode()))
			return commands.Result{Message: m.Nav.Window().Title()}, nil
		},
		Day: func() (commands.Result, error) {
			m.navigate(m.Nav.SetMode(calendar.ViewDay))
			return commands.Result{Message: "day view"}, nil
		},
		Week: func() (commands.Result, error) {
			m.navigate(m.Nav.SetMode(calendar.ViewWeek))
			return commands.Result{Message: "week view"}, nil
		},
		Today: func() (commands.Result, error) {
			m.navigate(m.Nav.Today())
			return commands.Result{Message: m.Nav.Window().Title()}, nil
		},
		Done: func() (commands.Result, error) {
			row, ok := m.selected()
			if !ok || row.Task() == nil {
				return commands.Result{}, noSelection("done")
			}
			m.toggleSelected()
			return m.result()
		},
		Delete: func() (commands.Result, error) {
			row, ok := m.selected()
			if !ok || row.Task() == nil {
				return commands.Result{}, noSelection("delete")
			}
			m.deleteSelected()
			return m.result()
		},
	})
	if err != nil {
		m.fail(err)
		return
	}
	if res.Message != "" {
		m.Status = StatusBar{Text: res.Message}
	}
}

// result hands the outcome of the last agenda call back to Execute.
func (m *Model) result() (commands.Result, error) {
	if m.LastError != nil {
		return commands.Result{}, m.LastError
	}
	return commands.Result{Message: m.Status.Text}, nil
}

func noSelection(cmd string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: cmd + " needs a selected task"}
}
