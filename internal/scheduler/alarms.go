package scheduler

import (
	"time"

	"github.com/sandeepkv93/planday/internal/model"
)

// AlarmsFor lists the alarms still ahead of now for the open, timed tasks of
// pd. Times are taken in now's location.
func AlarmsFor(pd *model.PlanDate, now time.Time) []Alarm {
	if pd == nil {
		return nil
	}
	d := pd.Date()
	var out []Alarm
	for _, task := range pd.Tasks() {
		c, ok := task.Time()
		if !ok || task.Completed() {
			continue
		}
		at := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, now.Location())
		if at.After(now) {
			out = append(out, Alarm{TaskID: task.ID(), Name: task.Name(), At: at})
		}
	}
	return out
}
