package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/planday/internal/agenda"
	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/config"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/scheduler"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeBrowse  Mode = "browse"
	ModeAdd     Mode = "add"
	ModeAddSub  Mode = "add_sub"
	ModeEdit    Mode = "edit"
	ModePalette Mode = "palette"
	ModePicker  Mode = "picker"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Row is one selectable line of the agenda. Main is nil on a day header row
// and Sub is set on subtask rows.
type Row struct {
	Day  int
	Main *model.MainTask
	Sub  *model.SubTask
}

func (r Row) Task() model.Task {
	switch {
	case r.Sub != nil:
		return r.Sub
	case r.Main != nil:
		return r.Main
	default:
		return nil
	}
}

type PickerState struct {
	Grid calendar.MonthGrid
	Row  int
	Col  int
}

type EditState struct {
	Name  textinput.Model
	Time  textinput.Model
	Date  textinput.Model
	Focus int
	Task  *model.MainTask
}

type ClockTickMsg time.Time

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReloadMsg struct{}

// AlarmMsg reports that a timed task of today has come due.
type AlarmMsg struct {
	Alarm scheduler.Alarm
}

type Options struct {
	Service     *agenda.Service
	Alarms      *scheduler.Engine
	Logger      *zap.Logger
	Keys        config.Keymap
	DefaultView calendar.ViewMode
	ShowClock   bool
	Now         func() time.Time
	Context     context.Context
}

type Model struct {
	Nav         calendar.State
	Days        []*model.PlanDate
	Rows        []Row
	Cursor      int
	Mode        Mode
	Picker      PickerState
	Edit        EditState
	HelpVisible bool
	Status      StatusBar
	Keys        config.Keymap
	ShowClock   bool
	Quitting    bool
	LastError   error
	Clock       time.Time

	ctx       context.Context
	svc       *agenda.Service
	alarms    *scheduler.Engine
	log       *zap.Logger
	events    *statusObserver
	input     textinput.Model
	helpModel help.Model
	now       func() time.Time
}

func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Keys == (config.Keymap{}) {
		opts.Keys = config.Default().Keys
	}
	m := Model{
		Nav:       calendar.NewState(opts.DefaultView, opts.Now),
		Mode:      ModeBrowse,
		Keys:      opts.Keys,
		ShowClock: opts.ShowClock,
		Clock:     opts.Now(),
		ctx:       opts.Context,
		svc:       opts.Service,
		alarms:    opts.Alarms,
		log:       opts.Logger.With(zap.String("component", "tui")),
		events:    &statusObserver{},
		now:       opts.Now,
	}
	if m.svc != nil {
		m.svc.SetObserver(m.events)
	}
	m.initBubbleComponents()
	m.reload()
	m.syncAlarms()
	return m
}

func (m *Model) initBubbleComponents() {
	m.input = newInput("", 256, 48)
	m.Edit = EditState{
		Name: newInput("", 256, 40),
		Time: newInput("HH:mm", 5, 8),
		Date: newInput("yyyy-mm-dd", 10, 12),
	}
	m.helpModel = help.New()
}

func newInput(placeholder string, limit, width int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = width
	return in
}

// reload reads the visible window from storage and rebuilds the rows,
// keeping the cursor on the same task when it is still visible.
func (m *Model) reload() {
	if m.svc == nil {
		m.Days = nil
		for _, d := range m.Nav.Window().Dates() {
			m.Days = append(m.Days, model.NewPlanDate(d))
		}
		m.rebuildRows()
		return
	}
	keep := m.selectedKey()
	days, err := m.svc.LoadWindow(m.ctx, m.Nav.Window())
	m.Days = days
	if err != nil {
		m.fail(err)
	}
	m.rebuildRows()
	m.restoreSelection(keep)
}
