// Package board wires named views to shared guards as described by the
// configuration and keeps per-element click statistics.
//
// A Board is not safe for concurrent use: like the guards it owns, it must be
// used from the goroutine that drives its looper.
package board
