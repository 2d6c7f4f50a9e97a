package clickguard

import (
	"fmt"
	"reflect"
	"time"

	"github.com/oshokin/clickguard/widget"
)

// guarded is implemented by *GuardedListener and by any type embedding it.
type guarded interface {
	guardedListener() *GuardedListener
}

// GuardedListener is a click listener that ignores clicks while its guard is watching.
type GuardedListener struct {
	// guard decides whether a click is let through.
	guard *Guard
	// wrapped is the optional listener clicks are forwarded to.
	wrapped widget.ClickListener
	// onClicked reports whether an accepted click should start a watch period.
	onClicked func(e widget.Element) bool
	// onIgnored is notified about suppressed clicks.
	onIgnored func(e widget.Element)
}

// Ensure GuardedListener can be registered on elements.
var _ widget.ClickListener = (*GuardedListener)(nil)

// ListenerOption configures a GuardedListener.
type ListenerOption func(*GuardedListener)

// WithGuard binds the listener to g, possibly shared with other listeners.
func WithGuard(g *Guard) ListenerOption {
	return func(l *GuardedListener) {
		if g != nil {
			l.guard = g
		}
	}
}

// WithGuardPeriod binds the listener to a fresh guard with the given watch period.
func WithGuardPeriod(period time.Duration, opts ...Option) ListenerOption {
	return func(l *GuardedListener) {
		l.guard = NewWithPeriod(period, opts...)
	}
}

// WithIgnoredHook sets a function called for every suppressed click.
func WithIgnoredHook(fn func(e widget.Element)) ListenerOption {
	return func(l *GuardedListener) {
		l.onIgnored = fn
	}
}

// NewGuardedListener creates a listener calling onClicked for accepted clicks.
// When onClicked returns true the guard starts watching and upcoming clicks
// are ignored for the watch period. A nil onClicked always returns true.
// Without WithGuard or WithGuardPeriod the listener gets a fresh guard with
// DefaultWatchPeriod.
func NewGuardedListener(onClicked func(e widget.Element) bool, opts ...ListenerOption) *GuardedListener {
	l := &GuardedListener{
		onClicked: onClicked,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.guard == nil {
		l.guard = New()
	}

	return l
}

// newWrappingListener guards an existing listener. It always starts watching after a click.
func newWrappingListener(wrapped widget.ClickListener, g *Guard) *GuardedListener {
	return &GuardedListener{
		guard:   g,
		wrapped: wrapped,
	}
}

// OnClick forwards the click unless the guard is watching.
func (l *GuardedListener) OnClick(e widget.Element) {
	if l.guard.IsWatching() {
		l.guard.log.Debugw("Click ignored", "element", elementID(e))

		if l.onIgnored != nil {
			l.onIgnored(e)
		}

		return
	}

	if l.wrapped != nil {
		l.wrapped.OnClick(e)
	}

	if l.onClicked == nil || l.onClicked(e) {
		l.guard.Watch()
	}
}

// Guard returns the guard protecting this listener.
func (l *GuardedListener) Guard() *Guard {
	return l.guard
}

// Wrapped returns the listener clicks are forwarded to, if any.
//
//nolint:ireturn // The wrapped listener is an arbitrary implementation.
func (l *GuardedListener) Wrapped() widget.ClickListener {
	return l.wrapped
}

func (l *GuardedListener) guardedListener() *GuardedListener {
	return l
}

// Wrap turns listener into a GuardedListener protected by g.
func (g *Guard) Wrap(listener widget.ClickListener) (*GuardedListener, error) {
	if isNil(listener) {
		return nil, fmt.Errorf("%w: listener must not be nil", ErrInvalidArgument)
	}

	if _, ok := listener.(guarded); ok {
		return nil, fmt.Errorf("%w: cannot wrap a guarded listener", ErrInvalidArgument)
	}

	return newWrappingListener(listener, g), nil
}

// Wrap guards listener with a new guard using DefaultWatchPeriod.
func Wrap(listener widget.ClickListener, opts ...Option) (*GuardedListener, error) {
	return New(opts...).Wrap(listener)
}

// WrapWithPeriod guards listener with a new guard using the given watch period.
func WrapWithPeriod(period time.Duration, listener widget.ClickListener, opts ...Option) (*GuardedListener, error) {
	return NewWithPeriod(period, opts...).Wrap(listener)
}

// WrapWithGuard guards listener with an existing, possibly shared, guard.
func WrapWithGuard(g *Guard, listener widget.ClickListener) (*GuardedListener, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: guard must not be nil", ErrInvalidArgument)
	}

	return g.Wrap(listener)
}

// Unwrap strips every guarded layer from listener and returns the innermost
// plain listener. Each guard met on the way is forced to rest.
// A plain listener is returned as is.
//
//nolint:ireturn // The innermost listener is an arbitrary implementation.
func Unwrap(listener widget.ClickListener) (widget.ClickListener, error) {
	if isNil(listener) {
		return nil, fmt.Errorf("%w: listener must not be nil", ErrInvalidArgument)
	}

	for {
		layer, ok := listener.(guarded)
		if !ok {
			return listener, nil
		}

		gl := layer.guardedListener()
		if gl == nil {
			return nil, fmt.Errorf("%w: guarded listener is not initialized", ErrInvalidState)
		}

		gl.guard.Rest()

		if isNil(gl.wrapped) {
			return nil, fmt.Errorf("%w: guarded listener does not wrap another listener", ErrInvalidState)
		}

		listener = gl.wrapped
	}
}

// isNil reports whether v is nil or an interface holding a nil pointer-like value.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// elementID returns the identifier of e for logging.
func elementID(e widget.Element) string {
	if isNil(e) {
		return "<nil>"
	}

	return e.ID()
}
