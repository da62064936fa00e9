package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/planday/internal/model"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Alarm{TaskID: 2, Name: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alarm{TaskID: 1, Name: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlarm(t, engine.C(), time.Second)
	second := waitAlarm(t, engine.C(), time.Second)
	if first.Name != "sooner" || second.Name != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.Name, second.Name)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alarm{TaskID: int64(i), At: at}); err != nil {
			t.Fatalf("schedule alarm: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alarms > 0, got %d", engine.Dropped())
	}
}

func TestReplaceDropsPendingAlarms(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Alarm{TaskID: 1, Name: "stale", At: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	err := engine.Replace([]Alarm{
		{TaskID: 2, Name: "fresh", At: now.Add(40 * time.Millisecond)},
		{TaskID: 3, Name: "untimed"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending alarm, got %d", engine.Pending())
	}
	if got := waitAlarm(t, engine.C(), time.Second); got.Name != "fresh" {
		t.Fatalf("expected fresh alarm, got %s", got.Name)
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alarm{TaskID: 1}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestStoppedEngineRejectsAlarms(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
	if err := engine.Schedule(Alarm{TaskID: 1, At: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if err := engine.Replace(nil); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped from replace, got %v", err)
	}
}

func TestAlarmsForSkipsPastDoneAndUntimed(t *testing.T) {
	pd := model.NewPlanDate(model.MustParseDate("2024-06-13"))
	add := func(name string, clock string, done bool) {
		task := model.NewMainTask(pd.Date())
		task.SetName(name)
		if clock != "" {
			task.SetTimeText(clock)
		}
		task.SetCompleted(done)
		pd.Add(task)
	}
	add("early", "08:00", false)
	add("done", "11:00", true)
	add("untimed", "", false)
	add("lunch", "12:30", false)

	now := time.Date(2024, time.June, 13, 10, 0, 0, 0, time.Local)
	alarms := AlarmsFor(pd, now)
	if len(alarms) != 1 || alarms[0].Name != "lunch" {
		t.Fatalf("expected only lunch, got %+v", alarms)
	}
	if want := time.Date(2024, time.June, 13, 12, 30, 0, 0, time.Local); !alarms[0].At.Equal(want) {
		t.Fatalf("expected %s, got %s", want, alarms[0].At)
	}
	if AlarmsFor(nil, now) != nil {
		t.Fatal("expected nil for missing day")
	}
}

func waitAlarm(t *testing.T, ch <-chan Alarm, timeout time.Duration) Alarm {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alarm")
		return Alarm{}
	}
}
