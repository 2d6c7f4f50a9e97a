// Package activity contains the value types describing what happened to
// guarded elements: how often each was clicked and how many clicks got through.
package activity
