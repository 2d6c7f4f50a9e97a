package clickguard

import (
	"fmt"
	"time"

	"github.com/oshokin/clickguard/widget"
)

// Attach guards e with g. The element must already have a click listener,
// which is replaced by a guarded wrapper around it.
// It returns g to allow attaching more elements.
func (g *Guard) Attach(e widget.Element) (*Guard, error) {
	if isNil(e) {
		return nil, fmt.Errorf("%w: element must not be nil", ErrInvalidArgument)
	}

	listener := retrieverFor(e).retrieve(e)
	if isNil(listener) {
		return nil, fmt.Errorf("%w: no click listener set on element %s", ErrInvalidState, e.ID())
	}

	guardedListener, err := g.Wrap(listener)
	if err != nil {
		return nil, fmt.Errorf("guard element %s: %w", e.ID(), err)
	}

	e.SetOnClickListener(guardedListener)

	g.log.Debugw("Element guarded", "element", e.ID(), "watch_period", g.watchPeriod)

	return g, nil
}

// AttachAll guards every element with g in order.
// The first failure stops the sequence; elements attached before it stay guarded.
func (g *Guard) AttachAll(e widget.Element, others ...widget.Element) (*Guard, error) {
	if _, err := g.Attach(e); err != nil {
		return nil, err
	}

	for _, other := range others {
		if _, err := g.Attach(other); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Protect guards the elements with a new guard using DefaultWatchPeriod.
func Protect(e widget.Element, others ...widget.Element) (*Guard, error) {
	return New().AttachAll(e, others...)
}

// ProtectWithPeriod guards the elements with a new guard using the given watch period.
func ProtectWithPeriod(period time.Duration, e widget.Element, others ...widget.Element) (*Guard, error) {
	return NewWithPeriod(period).AttachAll(e, others...)
}

// ProtectWith guards the elements with g.
func ProtectWith(g *Guard, e widget.Element, others ...widget.Element) (*Guard, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: guard must not be nil", ErrInvalidArgument)
	}

	return g.AttachAll(e, others...)
}

// Get returns the guard protecting e.
func Get(e widget.Element) (*Guard, error) {
	listener, err := RetrieveOnClickListener(e)
	if err != nil {
		return nil, err
	}

	if layer, ok := listener.(guarded); ok {
		if gl := layer.guardedListener(); gl != nil {
			return gl.guard, nil
		}
	}

	return nil, fmt.Errorf("%w: element %s is not guarded", ErrInvalidState, e.ID())
}

// RetrieveOnClickListener returns the click listener registered on e, or nil
// if there is none or it cannot be read.
//
//nolint:ireturn // Listeners are arbitrary implementations.
func RetrieveOnClickListener(e widget.Element) (widget.ClickListener, error) {
	if isNil(e) {
		return nil, fmt.Errorf("%w: element must not be nil", ErrInvalidArgument)
	}

	listener := retrieverFor(e).retrieve(e)
	if isNil(listener) {
		return nil, nil //nolint:nilnil // An element without a listener is a valid outcome.
	}

	return listener, nil
}
