// Package simulator replays the click script of a configuration on a mock
// clock and reports how many clicks each guarded element accepted.
package simulator
