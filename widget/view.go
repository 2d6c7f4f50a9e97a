package widget

import (
	"github.com/google/uuid"
)

// ClickListener reacts to activations of an element.
type ClickListener interface {
	OnClick(e Element)
}

// ClickListenerFunc adapts a plain function to ClickListener.
type ClickListenerFunc func(e Element)

// OnClick calls f(e).
func (f ClickListenerFunc) OnClick(e Element) {
	f(e)
}

// Element is a clickable UI element.
type Element interface {
	// ID returns a stable identifier of the element.
	ID() string
	// SetOnClickListener replaces the registered click listener. Nil detaches it.
	SetOnClickListener(l ClickListener)
}

// ListenerInfo groups the listeners registered on a view.
type ListenerInfo struct {
	// OnClickListener is the currently registered click listener.
	OnClickListener ClickListener
}

// ListenerInfoHolder is implemented by elements that keep their listeners in a ListenerInfo.
// The returned value is nil until a listener has been registered.
type ListenerInfoHolder interface {
	ListenerInfo() *ListenerInfo
}

// View is the reference Element implementation.
type View struct {
	// id identifies the view.
	id string
	// name is a human-readable label.
	name string
	// listenerInfo is allocated on first listener registration.
	listenerInfo *ListenerInfo
}

// Ensure View satisfies the toolkit interfaces.
var (
	_ Element            = (*View)(nil)
	_ ListenerInfoHolder = (*View)(nil)
)

// ViewOption configures a View.
type ViewOption func(*View)

// WithID sets an explicit identifier instead of a generated one.
func WithID(id string) ViewOption {
	return func(v *View) {
		if id != "" {
			v.id = id
		}
	}
}

// NewView creates a view with the given name and a random UUID identifier.
func NewView(name string, opts ...ViewOption) *View {
	v := &View{
		id:   uuid.NewString(),
		name: name,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// ID returns the view identifier.
func (v *View) ID() string {
	return v.id
}

// Name returns the view label.
func (v *View) Name() string {
	return v.name
}

// SetOnClickListener registers l as the click listener of the view.
func (v *View) SetOnClickListener(l ClickListener) {
	if v.listenerInfo == nil {
		if l == nil {
			return
		}

		v.listenerInfo = new(ListenerInfo)
	}

	v.listenerInfo.OnClickListener = l
}

// ListenerInfo exposes the listener storage of the view.
func (v *View) ListenerInfo() *ListenerInfo {
	return v.listenerInfo
}

// PerformClick delivers a click to the registered listener.
// It reports whether a listener was called.
func (v *View) PerformClick() bool {
	if v.listenerInfo == nil || v.listenerInfo.OnClickListener == nil {
		return false
	}

	v.listenerInfo.OnClickListener.OnClick(v)

	return true
}

// String returns the view label together with its identifier.
func (v *View) String() string {
	if v.name == "" {
		return v.id
	}

	return v.name + " (" + v.id + ")"
}
