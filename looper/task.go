package looper

import (
	"time"
)

// notQueued marks a task that is not in the queue anymore.
const notQueued = -1

// Task is a unit of work scheduled on a Looper.
type Task struct {
	// looper owns the queue the task lives in.
	looper *Looper
	// fn is the work to execute.
	fn func()
	// when is the earliest time the task may run.
	when time.Time
	// seq keeps FIFO order among tasks with equal deadlines.
	seq uint64
	// index is the position in the heap, or notQueued.
	index int
}

// Cancel removes the task from the queue.
// It reports whether the task was still pending.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}

	t.looper.mu.Lock()
	defer t.looper.mu.Unlock()

	if t.index == notQueued {
		return false
	}

	t.looper.queue.remove(t)

	return true
}

// Pending reports whether the task is still waiting to be executed.
// A task stops being pending as soon as the looper picks it for execution.
func (t *Task) Pending() bool {
	if t == nil {
		return false
	}

	t.looper.mu.Lock()
	defer t.looper.mu.Unlock()

	return t.index != notQueued
}

// Deadline returns the time the task was scheduled for.
func (t *Task) Deadline() time.Time {
	return t.when
}

// taskQueue is a min-heap of tasks ordered by deadline and sequence.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].when.Equal(q[j].when) {
		return q[i].seq < q[j].seq
	}

	return q[i].when.Before(q[j].when)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	task, _ := x.(*Task)
	task.index = len(*q)
	*q = append(*q, task)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	task := old[n-1]
	old[n-1] = nil
	task.index = notQueued
	*q = old[:n-1]

	return task
}
