package update

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/planday/internal/commands"
)

var errNoStore = errors.New("no agenda store configured")

func (m Model) openInput(mode Mode, placeholder string) (tea.Model, tea.Cmd) {
	m.Mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) closeInput() {
	m.Mode = ModeBrowse
	m.input.SetValue("")
	m.input.Blur()
}

// handleInputKey drives the single-line prompts for new tasks and subtasks.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Cancel, "esc":
		m.closeInput()
		return m, nil
	case m.Keys.Confirm, "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.Mode
		m.closeInput()
		if value == "" {
			return m, nil
		}
		if mode == ModeAddSub {
			m.addSubTask(value)
		} else {
			m.addFromText(value)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// addFromText accepts the same "name @HH:mm" form as the add command.
func (m *Model) addFromText(text string) {
	cmd, err := commands.Parse("add " + text)
	if err != nil {
		m.fail(err)
		return
	}
	m.addMainTask(*cmd.Add)
}

func (m *Model) addMainTask(args commands.AddArgs) {
	if m.svc == nil {
		m.fail(errNoStore)
		return
	}
	pd := m.selectedDay()
	if pd == nil {
		return
	}
	task, err := m.svc.CreateMainTask(m.ctx, pd, args.Name, args.Time)
	m.apply(err)
	if err != nil {
		return
	}
	m.rebuildRows()
	m.selectTask(task)
}

func (m *Model) addSubTask(name string) {
	if m.svc == nil {
		m.fail(errNoStore)
		return
	}
	parent := m.selectedMain()
	if parent == nil {
		return
	}
	sub, err := m.svc.CreateSubTask(m.ctx, parent, name)
	m.apply(err)
	if err != nil {
		return
	}
	if !parent.Expanded() {
		if err := m.svc.SetExpanded(m.ctx, parent, true); err != nil {
			m.fail(err)
		}
		m.events.take()
	}
	m.rebuildRows()
	m.selectTask(sub)
}
