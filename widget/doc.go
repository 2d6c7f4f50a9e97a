// Package widget contains the minimal UI toolkit surface the click guard works with.
//
// It defines Element (anything that can carry a click listener), ClickListener
// and a reference View implementation that stores its listener in a lazily
// allocated ListenerInfo, the same way mobile toolkits keep per-view listeners.
package widget
