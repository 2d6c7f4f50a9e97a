// Package console runs an interactive session over guarded elements.
//
// Commands are read line by line from an input stream and posted to a looper
// running on the real clock, so clicks and guard expiries are handled on a
// single dispatch goroutine.
package console
