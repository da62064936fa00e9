package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Clock      string
	Body       string
	Side       string
	StatusLine string
	IsError    bool
	Footer     string
}

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	clockStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dayStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	todayStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	cursorStyle      = lipgloss.NewStyle().Reverse(true)
	doneStyle        = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	editingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	cellStyle        = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	weekNumStyle     = lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Foreground(lipgloss.Color("8"))
	pickerTitleStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Width(32)
	formLabelStyle   = lipgloss.NewStyle().Width(6).Foreground(lipgloss.Color("8"))
	formActiveStyle  = lipgloss.NewStyle().Width(6).Foreground(lipgloss.Color("13")).Bold(true)
)

func RenderApp(data AppData) string {
	header := headerStyle.Render(data.Header)
	if data.Clock != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", clockStyle.Render(data.Clock))
	}

	body := panelStyle.Width(64).Render(data.Body)
	if data.Side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Width(44).Render(data.Side))
	}

	lines := []string{header, body}
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
