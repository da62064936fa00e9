package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/scheduler"
	"go.uber.org/zap"
)

func waitForAlarmCmd(ch <-chan scheduler.Alarm) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmMsg{Alarm: a}
	}
}

// syncAlarms re-arms the engine from today's stored tasks.
func (m *Model) syncAlarms() {
	if m.alarms == nil || m.svc == nil {
		return
	}
	now := m.now()
	pd, err := m.svc.LoadDate(m.ctx, model.DateOf(now))
	if err != nil {
		m.log.Warn("load alarms", zap.Error(err))
		return
	}
	if err := m.alarms.Replace(scheduler.AlarmsFor(pd, now)); err != nil {
		m.log.Warn("replace alarms", zap.Error(err))
	}
}

func (m *Model) handleAlarm(a scheduler.Alarm) {
	m.Status = StatusBar{Text: fmt.Sprintf("due now: %s (%s)", a.Name, a.At.Format(model.ClockLayout))}
	m.log.Info("alarm", zap.Int64("task_id", a.TaskID), zap.Time("at", a.At))
}
