package gadget

import (
	"sort"
	"time"
)

// Clock provides time for the desktop's timers and render scheduling. The
// default implementation uses system time. Tests can inject a fake clock via
// Desktop.SetClock to control timing deterministically.
type Clock interface {
	Now() time.Time
}

// systemClock uses system time.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// scheduledTask is a pending deferred continuation owned by the desktop.
type scheduledTask struct {
	id  uint64
	due time.Time
	fn  func()
}

// TaskHandle allows cancelling a scheduled task. The zero value is inert:
// Cancel and Active are safe no-ops.
type TaskHandle struct {
	d  *Desktop
	id uint64
}

// After schedules fn to run once delay has elapsed on the desktop clock.
// Tasks fire from Desktop.Update, never concurrently.
func (d *Desktop) After(delay time.Duration, fn func()) TaskHandle {
	d.nextTaskID++
	id := d.nextTaskID
	d.tasks = append(d.tasks, scheduledTask{
		id:  id,
		due: d.clock.Now().Add(delay),
		fn:  fn,
	})
	return TaskHandle{d: d, id: id}
}

// Cancel removes the task if it has not fired yet.
func (h TaskHandle) Cancel() {
	if h.d == nil {
		return
	}
	tasks := h.d.tasks
	for i := range tasks {
		if tasks[i].id == h.id {
			copy(tasks[i:], tasks[i+1:])
			tasks[len(tasks)-1] = scheduledTask{}
			h.d.tasks = tasks[:len(tasks)-1]
			return
		}
	}
}

// Active reports whether the task is still pending.
func (h TaskHandle) Active() bool {
	if h.d == nil {
		return false
	}
	for i := range h.d.tasks {
		if h.d.tasks[i].id == h.id {
			return true
		}
	}
	return false
}

// runDueTasks fires every task whose due time has passed, in due order.
// Fired tasks are removed before their callback runs, so a callback may
// freely schedule or cancel further tasks.
func (d *Desktop) runDueTasks(now time.Time) {
	if len(d.tasks) == 0 {
		return
	}

	d.dueBuf = d.dueBuf[:0]
	remaining := d.tasks[:0]
	for _, t := range d.tasks {
		if !t.due.After(now) {
			d.dueBuf = append(d.dueBuf, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	// Zero the tail so fired tasks are not retained by the backing array.
	for i := len(remaining); i < len(d.tasks); i++ {
		d.tasks[i] = scheduledTask{}
	}
	d.tasks = remaining

	sort.SliceStable(d.dueBuf, func(i, j int) bool {
		if d.dueBuf[i].due.Equal(d.dueBuf[j].due) {
			return d.dueBuf[i].id < d.dueBuf[j].id
		}
		return d.dueBuf[i].due.Before(d.dueBuf[j].due)
	})
	for i := range d.dueBuf {
		d.dueBuf[i].fn()
		d.dueBuf[i].fn = nil
	}
}
