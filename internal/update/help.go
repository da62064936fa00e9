package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/planday/internal/commands"
	"github.com/sandeepkv93/planday/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	var md strings.Builder
	md.WriteString("## Keys\n\n")
	for _, kb := range m.modeBindings() {
		fmt.Fprintf(&md, "- `%s` %s\n", displayKey(kb.Key), kb.Action)
	}
	if m.Mode == ModeBrowse || m.Mode == ModePalette {
		md.WriteString("\n## Commands\n\n")
		for _, line := range paletteHelp() {
			fmt.Fprintf(&md, "- `%s`\n", line)
		}
	}

	bindings := m.helpBindings()
	m.helpModel.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown: md.String(),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) browseBindings() []KeyBinding {
	k := m.Keys
	return []KeyBinding{
		{Key: k.Up + "/" + k.Down, Action: "move cursor"},
		{Key: k.Previous + "/" + k.Next, Action: "previous/next day or week"},
		{Key: k.Today, Action: "jump to today"},
		{Key: k.ToggleView, Action: "toggle day/week view"},
		{Key: k.Picker, Action: "open month picker"},
		{Key: k.Add, Action: "add task (name @HH:mm)"},
		{Key: k.AddSub, Action: "add subtask to selected task"},
		{Key: k.Toggle, Action: "toggle completed"},
		{Key: k.Expand, Action: "expand/collapse subtasks"},
		{Key: k.Edit, Action: "edit selected task"},
		{Key: k.Delete, Action: "delete selected task"},
		{Key: k.Palette, Action: "open command palette"},
		{Key: k.Help, Action: "toggle help"},
		{Key: k.Quit, Action: "quit"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	k := m.Keys
	switch m.Mode {
	case ModePicker:
		return []KeyBinding{
			{Key: k.Previous + "/" + k.Down + "/" + k.Up + "/" + k.Next, Action: "move day"},
			{Key: "[/]", Action: "previous/next month"},
			{Key: k.Confirm, Action: "show day"},
			{Key: k.ToggleView, Action: "show week"},
			{Key: k.Cancel, Action: "close"},
		}
	case ModeEdit:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: k.Confirm, Action: "save"},
			{Key: k.Cancel, Action: "discard"},
		}
	case ModeAdd, ModeAddSub, ModePalette:
		return []KeyBinding{
			{Key: k.Confirm, Action: "submit"},
			{Key: k.Cancel, Action: "cancel"},
		}
	default:
		return m.browseBindings()
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.modeBindings()))
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(displayKey(kb.Key), kb.Action)))
	}
	return out
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func paletteHelp() []string {
	return []string{
		string(commands.TypeAdd) + " <name> [@HH:mm]",
		string(commands.TypeSub) + " <name>",
		string(commands.TypeRename) + " <name>",
		string(commands.TypeTime) + " <HH:mm|none>",
		string(commands.TypeMove) + " <yyyy-mm-dd|+N|-N>",
		string(commands.TypeGoto) + " <yyyy-mm-dd|+N|-N>",
		string(commands.TypeDay) + " | " + string(commands.TypeWeek) + " | " + string(commands.TypeToday),
		string(commands.TypeDone) + " | " + string(commands.TypeDelete),
	}
}
