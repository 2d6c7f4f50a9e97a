package looper

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Looper is a serial task queue.
// Posting and cancelling are safe from any goroutine, while tasks themselves
// are executed by whoever drives the looper (Run or DispatchDue), one at a time.
// Only one driver must be active at a time.
type Looper struct {
	// clock provides the current time and wake-up timers.
	clock clock.Clock
	// queue holds pending tasks ordered by deadline.
	queue taskQueue
	// seq is the next sequence number handed to a posted task.
	seq uint64
	// wake notifies Run that the head of the queue may have changed.
	wake chan struct{}
	// mu protects queue and seq.
	mu sync.Mutex
}

var (
	// mainLooper is the process-wide looper on the real clock.
	//nolint:gochecknoglobals // Mirrors the single UI thread of the process.
	mainLooper *Looper
	// mainOnce guards lazy creation of mainLooper.
	//nolint:gochecknoglobals // See mainLooper.
	mainOnce sync.Once
)

// New creates a looper driven by the provided clock.
// A nil clock falls back to the real wall clock.
func New(c clock.Clock) *Looper {
	if c == nil {
		c = clock.New()
	}

	return &Looper{
		clock: c,
		wake:  make(chan struct{}, 1),
	}
}

// Main returns the process-wide looper running on the real clock.
// Nothing dispatches its tasks until somebody calls Run on it.
func Main() *Looper {
	mainOnce.Do(func() {
		mainLooper = New(clock.New())
	})

	return mainLooper
}

// Clock returns the clock that drives the looper.
//
//nolint:ireturn // Callers need the clock abstraction itself.
func (l *Looper) Clock() clock.Clock {
	return l.clock
}

// Post schedules fn to run as soon as possible.
func (l *Looper) Post(fn func()) *Task {
	return l.PostDelayed(0, fn)
}

// PostDelayed schedules fn to run after delay has elapsed.
// A negative delay is treated as zero.
func (l *Looper) PostDelayed(delay time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}

	l.mu.Lock()

	task := &Task{
		looper: l,
		fn:     fn,
		when:   l.clock.Now().Add(delay),
		seq:    l.seq,
		index:  notQueued,
	}

	l.seq++
	heap.Push(&l.queue, task)

	l.mu.Unlock()

	l.notify()

	return task
}

// Len returns the number of pending tasks.
func (l *Looper) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.queue.Len()
}

// DispatchDue runs every task whose deadline is not after the current clock
// time and returns how many tasks were executed.
// Tasks posted while dispatching run in the same call if they are already due.
func (l *Looper) DispatchDue() int {
	var (
		now      = l.clock.Now()
		executed int
	)

	for {
		task := l.popDue(now)
		if task == nil {
			return executed
		}

		if task.fn != nil {
			task.fn()
		}

		executed++
	}
}

// Run dispatches tasks until the context is canceled.
// It sleeps until the next deadline or until a new task is posted.
func (l *Looper) Run(ctx context.Context) error {
	for {
		l.DispatchDue()

		var (
			timer   *clock.Timer
			timeout <-chan time.Time
		)

		if wait, ok := l.nextWait(); ok {
			timer = l.clock.Timer(wait)
			timeout = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil
		case <-l.wake:
		case <-timeout:
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

// popDue removes and returns the head task if it is due at now.
func (l *Looper) popDue(now time.Time) *Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.queue.Len() == 0 || l.queue[0].when.After(now) {
		return nil
	}

	task, _ := heap.Pop(&l.queue).(*Task)

	return task
}

// nextWait returns the time left until the head task is due.
func (l *Looper) nextWait() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.queue.Len() == 0 {
		return 0, false
	}

	wait := l.queue[0].when.Sub(l.clock.Now())
	if wait < 0 {
		wait = 0
	}

	return wait, true
}

// notify wakes Run without blocking.
func (l *Looper) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// remove deletes a queued task from the heap. The caller holds the looper lock.
func (q *taskQueue) remove(t *Task) {
	heap.Remove(q, t.index)
}
