package simulator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/oshokin/clickguard/internal/board"
	"github.com/oshokin/clickguard/internal/config"
	"github.com/oshokin/clickguard/internal/domain/activity"
	"github.com/oshokin/clickguard/internal/logger"
	"github.com/oshokin/clickguard/looper"
)

// Options configures a simulation run.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// LogLevel overrides the log level from the configuration when specified.
	LogLevel string
}

// Result is the outcome of a simulation.
type Result struct {
	// Stats holds per-element counters in configuration order.
	Stats []*activity.Stats
	// Elapsed is the simulated time covered by the script.
	Elapsed time.Duration
}

// Run loads the configuration and replays its script.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger.ApplyLevel(ctx, cfg.LogLevel, opts.LogLevel)

	return Simulate(ctx, cfg)
}

// Simulate replays the script of cfg on a mock clock.
// Steps run in order of their offsets; before each step every expiry that
// became due is dispatched, so watch periods end exactly on time.
func Simulate(ctx context.Context, cfg *config.Config) (*Result, error) {
	ctx = logger.WithName(ctx, "simulator")

	var (
		mock  = clock.NewMock()
		start = mock.Now()
		l     = looper.New(mock)
	)

	b, err := board.New(cfg, l, logger.FromContext(ctx))
	if err != nil {
		return nil, err
	}

	steps := append([]config.Step(nil), cfg.Script...)
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].At < steps[j].At
	})

	logger.InfoKV(ctx, "Replaying click script", "steps", len(steps), "groups", len(cfg.Groups))

	var elapsed time.Duration

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mock.Set(start.Add(step.At))
		l.DispatchDue()

		elapsed = step.At

		repeat := max(step.Repeat, 1)
		for range repeat {
			accepted, err := b.Click(step.Click)
			if err != nil {
				return nil, err
			}

			logger.DebugKV(ctx, "Click delivered", "at", step.At, "element", step.Click, "accepted", accepted)
		}
	}

	return &Result{
		Stats:   b.Snapshot(),
		Elapsed: elapsed,
	}, nil
}

