package board

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/oshokin/clickguard"
	"github.com/oshokin/clickguard/internal/config"
	"github.com/oshokin/clickguard/internal/domain/activity"
	"github.com/oshokin/clickguard/internal/logger"
	"github.com/oshokin/clickguard/looper"
	"github.com/oshokin/clickguard/widget"
)

var (
	// ErrUnknownElement is returned when no element has the requested name.
	ErrUnknownElement = errors.New("unknown element")
	// ErrUnknownGroup is returned when no group has the requested name.
	ErrUnknownGroup = errors.New("unknown group")
)

// element is a view together with its statistics.
type element struct {
	// view receives the clicks.
	view *widget.View
	// stats counts delivered and accepted clicks.
	stats activity.Stats
}

// Board holds the guarded views of a configuration.
type Board struct {
	// guards maps group names to their shared guard.
	guards map[string]*clickguard.Guard
	// elements maps element names to their view and statistics.
	elements map[string]*element
	// groupOrder keeps group names in configuration order.
	groupOrder []string
	// elementOrder keeps element names in configuration order.
	elementOrder []string
}

// New creates one guard per configured group on l and attaches every
// element of the group to it. Guard traces go to log, filtered by
// cfg.GuardLogLevel when it names a known level.
func New(cfg *config.Config, l *looper.Looper, log *zap.SugaredLogger) (*Board, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	guardLog := log.Named("clickguard")
	if level, ok := logger.ParseLogLevel(cfg.GuardLogLevel); ok {
		guardLog = guardLog.WithOptions(logger.WithLevel(level))
	}

	b := &Board{
		guards:   make(map[string]*clickguard.Guard, len(cfg.Groups)),
		elements: make(map[string]*element),
	}

	for i := range cfg.Groups {
		group := &cfg.Groups[i]

		guard := clickguard.NewWithPeriod(
			cfg.PeriodOf(group),
			clickguard.WithLooper(l),
			clickguard.WithLogger(guardLog.With("group", group.Name)),
		)

		views := make([]widget.Element, 0, len(group.Elements))

		for _, name := range group.Elements {
			e := &element{
				view: widget.NewView(name),
				stats: activity.Stats{
					Element: name,
					Group:   group.Name,
				},
			}

			e.view.SetOnClickListener(widget.ClickListenerFunc(func(widget.Element) {
				e.stats.Accepted++
			}))

			b.elements[name] = e
			b.elementOrder = append(b.elementOrder, name)
			views = append(views, e.view)
		}

		if len(views) > 0 {
			if _, err := guard.AttachAll(views[0], views[1:]...); err != nil {
				return nil, fmt.Errorf("guard group %q: %w", group.Name, err)
			}
		}

		b.guards[group.Name] = guard
		b.groupOrder = append(b.groupOrder, group.Name)
	}

	return b, nil
}

// Click delivers one click to the named element.
// It reports whether the click got past the guard.
func (b *Board) Click(name string) (bool, error) {
	e, ok := b.elements[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownElement, name)
	}

	before := e.stats.Accepted

	e.stats.Clicks++
	e.view.PerformClick()

	return e.stats.Accepted > before, nil
}

// Rest forces the guard of the named group to rest.
func (b *Board) Rest(group string) error {
	guard, ok := b.guards[group]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	guard.Rest()

	return nil
}

// Guard returns the guard of the named group.
func (b *Board) Guard(group string) (*clickguard.Guard, bool) {
	guard, ok := b.guards[group]

	return guard, ok
}

// View returns the view of the named element.
func (b *Board) View(name string) (*widget.View, bool) {
	e, ok := b.elements[name]
	if !ok {
		return nil, false
	}

	return e.view, true
}

// Groups returns group names in configuration order.
func (b *Board) Groups() []string {
	return append([]string(nil), b.groupOrder...)
}

// Snapshot returns a copy of the statistics of every element in configuration order.
func (b *Board) Snapshot() []*activity.Stats {
	result := make([]*activity.Stats, 0, len(b.elementOrder))
	for _, name := range b.elementOrder {
		result = append(result, b.elements[name].stats.Clone())
	}

	return result
}
