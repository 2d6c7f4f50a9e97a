package board

import (
	"bytes"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/clickguard"
	"github.com/oshokin/clickguard/internal/config"
	"github.com/oshokin/clickguard/internal/logger"
	"github.com/oshokin/clickguard/looper"
)

// newTestBoard builds a board from two groups on a mock clock.
func newTestBoard(t *testing.T) (*Board, *clock.Mock, *looper.Looper) {
	t.Helper()

	cfg := &config.Config{
		WatchPeriod: time.Second,
		Groups: []config.Group{
			{Name: "checkout", Elements: []string{"pay", "confirm"}},
			{Name: "toolbar", WatchPeriod: 3 * time.Second, Elements: []string{"share"}},
			{Name: "empty"},
		},
	}
	require.NoError(t, config.Validate(cfg))

	mock := clock.NewMock()
	l := looper.New(mock)

	b, err := New(cfg, l, nil)
	require.NoError(t, err)

	return b, mock, l
}

// TestNew_WiresGroups verifies guards, periods and attached views.
func TestNew_WiresGroups(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBoard(t)
	require.Equal(t, []string{"checkout", "toolbar", "empty"}, b.Groups())

	checkout, ok := b.Guard("checkout")
	require.True(t, ok)
	require.Equal(t, time.Second, checkout.WatchPeriod())

	toolbar, ok := b.Guard("toolbar")
	require.True(t, ok)
	require.Equal(t, 3*time.Second, toolbar.WatchPeriod())

	for _, name := range []string{"pay", "confirm"} {
		view, ok := b.View(name)
		require.True(t, ok)

		guard, err := clickguard.Get(view)
		require.NoError(t, err)
		require.Same(t, checkout, guard)
	}

	_, ok = b.View("missing")
	require.False(t, ok)
}

// TestClick_SharedGuardAndStats checks that clicks are counted and suppressed per group.
func TestClick_SharedGuardAndStats(t *testing.T) {
	t.Parallel()

	b, mock, l := newTestBoard(t)

	accepted, err := b.Click("pay")
	require.NoError(t, err)
	require.True(t, accepted)

	accepted, err = b.Click("confirm")
	require.NoError(t, err)
	require.False(t, accepted)

	// Other groups are independent.
	accepted, err = b.Click("share")
	require.NoError(t, err)
	require.True(t, accepted)

	mock.Add(time.Second)
	l.DispatchDue()

	accepted, err = b.Click("confirm")
	require.NoError(t, err)
	require.True(t, accepted)

	accepted, err = b.Click("share")
	require.NoError(t, err)
	require.False(t, accepted)

	stats := b.Snapshot()
	require.Len(t, stats, 3)
	require.Equal(t, "pay", stats[0].Element)
	require.Equal(t, 1, stats[0].Accepted)
	require.Equal(t, "confirm", stats[1].Element)
	require.Equal(t, 2, stats[1].Clicks)
	require.Equal(t, 1, stats[1].Ignored())
	require.Equal(t, "toolbar", stats[2].Group)
	require.Equal(t, 1, stats[2].Ignored())

	_, err = b.Click("missing")
	require.ErrorIs(t, err, ErrUnknownElement)
}

// TestRest_ReleasesGroup ensures Rest lets the next click through immediately.
func TestRest_ReleasesGroup(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBoard(t)

	_, err := b.Click("pay")
	require.NoError(t, err)

	require.NoError(t, b.Rest("checkout"))

	accepted, err := b.Click("confirm")
	require.NoError(t, err)
	require.True(t, accepted)

	require.ErrorIs(t, b.Rest("missing"), ErrUnknownGroup)
}

// TestNew_GuardLogLevel verifies guard traces use their own level.
func TestNew_GuardLogLevel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		GuardLogLevel: "debug",
		Groups: []config.Group{
			{Name: "checkout", Elements: []string{"pay"}},
		},
	}
	require.NoError(t, config.Validate(cfg))

	var buf bytes.Buffer

	b, err := New(cfg, looper.New(clock.NewMock()), logger.New(zapcore.ErrorLevel, &buf))
	require.NoError(t, err)

	_, err = b.Click("pay")
	require.NoError(t, err)

	_, err = b.Click("pay")
	require.NoError(t, err)

	require.Contains(t, buf.String(), "Click ignored")
	require.Contains(t, buf.String(), "checkout")
}
