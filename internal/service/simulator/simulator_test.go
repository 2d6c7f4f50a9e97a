package simulator

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/clickguard/internal/config"
)

// TestSimulate_DefaultScript replays the default configuration.
func TestSimulate_DefaultScript(t *testing.T) {
	t.Parallel()

	result, err := Simulate(context.Background(), config.Default())
	require.NoError(t, err)
	require.Equal(t, config.DefaultWatchPeriod, result.Elapsed)
	require.Len(t, result.Stats, 2)

	// Five rapid clicks on pay: one accepted.
	pay := result.Stats[0]
	require.Equal(t, "pay", pay.Element)
	require.Equal(t, 5, pay.Clicks)
	require.Equal(t, 1, pay.Accepted)

	// confirm shares the guard: ignored at 500ms, accepted once the period is over.
	confirm := result.Stats[1]
	require.Equal(t, "confirm", confirm.Element)
	require.Equal(t, 2, confirm.Clicks)
	require.Equal(t, 1, confirm.Accepted)
}

// TestSimulate_OrdersSteps ensures steps are replayed by offset rather than by position.
func TestSimulate_OrdersSteps(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		WatchPeriod: time.Second,
		Groups: []config.Group{
			{Name: "a", Elements: []string{"pay"}},
			{Name: "b", WatchPeriod: 200 * time.Millisecond, Elements: []string{"share"}},
		},
		Script: []config.Step{
			{At: 2 * time.Second, Click: "pay"},
			{At: 0, Click: "pay", Repeat: 3},
			{At: 100 * time.Millisecond, Click: "share", Repeat: 2},
			{At: 300 * time.Millisecond, Click: "share"},
		},
	}
	require.NoError(t, config.Validate(cfg))

	result, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, result.Elapsed)

	require.Equal(t, 4, result.Stats[0].Clicks)
	require.Equal(t, 2, result.Stats[0].Accepted)
	require.Equal(t, 3, result.Stats[1].Clicks)
	require.Equal(t, 2, result.Stats[1].Accepted)
}

// TestSimulate_Canceled verifies that a canceled context stops the replay.
func TestSimulate_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Simulate(ctx, config.Default())
	require.ErrorIs(t, err, context.Canceled)
}

// TestRun_LoadsConfigAndRenders runs a simulation from a file and renders the table.
func TestRun_LoadsConfigAndRenders(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clickguard.yaml")
	require.NoError(t, config.Save(path, config.Default()))

	result, err := Run(context.Background(), &Options{ConfigPath: path})
	require.NoError(t, err)

	var buf bytes.Buffer

	Render(&buf, result)

	out := buf.String()
	require.Contains(t, out, "ELEMENT")
	require.Contains(t, out, "pay")
	require.Contains(t, out, "checkout")

	_, err = Run(context.Background(), &Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}
