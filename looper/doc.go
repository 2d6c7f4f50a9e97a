// Package looper implements a serial task queue that plays the role of a UI
// event-dispatch thread.
//
// Tasks are posted immediately or with a delay and are executed one at a time,
// ordered by deadline and then by posting order. A Looper is driven either by
// Run (a dedicated goroutine on a real clock) or by DispatchDue (synchronous
// dispatch against a mock clock, used by tests and the simulator).
package looper
