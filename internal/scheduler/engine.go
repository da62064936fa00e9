// Package scheduler fires alarms for timed tasks when their time of day
// arrives. A single goroutine sleeps until the earliest pending alarm.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// Alarm is due at At for the main task TaskID.
type Alarm struct {
	TaskID int64
	Name   string
	At     time.Time
}

type alarmQueue []Alarm

func (q alarmQueue) Len() int { return len(q) }

func (q alarmQueue) Less(i, j int) bool {
	if q[i].At.Equal(q[j].At) {
		return q[i].TaskID < q[j].TaskID
	}
	return q[i].At.Before(q[j].At)
}

func (q alarmQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *alarmQueue) Push(x any) { *q = append(*q, x.(Alarm)) }

func (q *alarmQueue) Pop() any {
	old := *q
	n := len(old)
	a := old[n-1]
	*q = old[:n-1]
	return a
}

type Engine struct {
	mu      sync.Mutex
	queue   alarmQueue
	out     chan Alarm
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	now     func() time.Time
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		out:    make(chan Alarm, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

// C delivers due alarms. It is closed by Stop.
func (e *Engine) C() <-chan Alarm {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(a Alarm) error {
	if a.At.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	heap.Push(&e.queue, a)
	e.signalWakeup()
	return nil
}

// Replace drops every pending alarm and schedules alarms instead. Alarms with
// a zero time are skipped.
func (e *Engine) Replace(alarms []Alarm) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	q := make(alarmQueue, 0, len(alarms))
	for _, a := range alarms {
		if !a.At.IsZero() {
			q = append(q, a)
		}
	}
	heap.Init(&q)
	e.queue = q
	e.signalWakeup()
	return nil
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Dropped counts alarms that were due while the output buffer was full.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.At.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = rearm(timer, wait)

		select {
		case <-timer.C:
			for _, a := range e.popDue(e.now()) {
				select {
				case e.out <- a:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			timer.Stop()
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alarm, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Alarm{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []Alarm {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Alarm
	for len(e.queue) > 0 && !e.queue[0].At.After(now) {
		out = append(out, heap.Pop(&e.queue).(Alarm))
	}
	return out
}

// rearm reuses the loop's timer. Reset drops any undelivered tick.
func rearm(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	timer.Reset(d)
	return timer
}
