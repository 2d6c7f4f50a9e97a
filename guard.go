package clickguard

import (
	"time"

	"go.uber.org/zap"

	"github.com/oshokin/clickguard/internal/logger"
	"github.com/oshokin/clickguard/looper"
)

// DefaultWatchPeriod is the watch period used when none is specified.
const DefaultWatchPeriod = 1000 * time.Millisecond

// State is the duty state of a Guard.
type State int

const (
	// Resting means clicks are let through.
	Resting State = iota
	// Watching means clicks are ignored until the watch period ends.
	Watching
)

// String returns a readable name of the state.
func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Watching:
		return "watching"
	default:
		return "unknown"
	}
}

// Guard suppresses clicks for a fixed period after an accepted one.
// A Guard may be shared by any number of listeners and elements, which then
// share a single watch window.
type Guard struct {
	// looper schedules the expiry of the watch period.
	looper *looper.Looper
	// log receives debug traces of state changes.
	log *zap.SugaredLogger
	// expiry is the scheduled end of the current watch period.
	expiry *looper.Task
	// watchPeriod is how long the guard watches after Watch.
	watchPeriod time.Duration
}

// Option configures a Guard.
type Option func(*Guard)

// WithLooper schedules the guard expiry on l instead of looper.Main.
func WithLooper(l *looper.Looper) Option {
	return func(g *Guard) {
		if l != nil {
			g.looper = l
		}
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a guard with DefaultWatchPeriod.
func New(opts ...Option) *Guard {
	return NewWithPeriod(DefaultWatchPeriod, opts...)
}

// NewWithPeriod creates a guard watching for period after each accepted click.
// Negative periods are treated as zero.
func NewWithPeriod(period time.Duration, opts ...Option) *Guard {
	if period < 0 {
		period = 0
	}

	g := &Guard{
		watchPeriod: period,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.looper == nil {
		g.looper = looper.Main()
	}

	if g.log == nil {
		g.log = logger.Logger().Named("clickguard")
	}

	return g
}

// WatchPeriod returns the fixed watch period of the guard.
func (g *Guard) WatchPeriod() time.Duration {
	return g.watchPeriod
}

// Watch starts a fresh watch period from now.
// Calling it while already watching drops the pending expiry and schedules a new one.
func (g *Guard) Watch() {
	if g.expiry.Cancel() {
		g.log.Debugw("Watch period restarted", "watch_period", g.watchPeriod)
	} else {
		g.log.Debugw("Guard started watching", "watch_period", g.watchPeriod)
	}

	g.expiry = g.looper.PostDelayed(g.watchPeriod, g.expire)
}

// Rest cancels the pending expiry and lets clicks through immediately.
func (g *Guard) Rest() {
	if g.expiry.Cancel() {
		g.log.Debug("Guard forced to rest")
	}

	g.expiry = nil
}

// IsWatching reports whether an expiry is pending.
func (g *Guard) IsWatching() bool {
	return g.expiry.Pending()
}

// State returns the current duty state.
func (g *Guard) State() State {
	if g.IsWatching() {
		return Watching
	}

	return Resting
}

// expire runs on the looper when the watch period is over.
func (g *Guard) expire() {
	g.log.Debug("Watch period elapsed")
}
