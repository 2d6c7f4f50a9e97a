package clickguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/clickguard/widget"
)

// fieldButton stores its listener in an exported field instead of a ListenerInfo.
type fieldButton struct {
	// OnClickListener is read by the reflective retriever.
	OnClickListener widget.ClickListener
	// id identifies the button.
	id string
}

func (b *fieldButton) ID() string { return b.id }

func (b *fieldButton) SetOnClickListener(l widget.ClickListener) { b.OnClickListener = l }

func (b *fieldButton) click() {
	if b.OnClickListener != nil {
		b.OnClickListener.OnClick(b)
	}
}

// opaqueButton keeps its listener where nothing can read it.
type opaqueButton struct {
	// listener is unexported and unreachable by reflection.
	listener widget.ClickListener
}

func (b *opaqueButton) ID() string { return "opaque" }

func (b *opaqueButton) SetOnClickListener(l widget.ClickListener) { b.listener = l }

// newCountedView creates a view with a counting listener attached.
func newCountedView(name string) (*widget.View, *countListener) {
	view := widget.NewView(name)
	counter := new(countListener)
	view.SetOnClickListener(counter)

	return view, counter
}

// clickView clicks the view count times.
func clickView(v *widget.View, count int) {
	for range count {
		v.PerformClick()
	}
}

// TestAttach_Validation verifies nil elements and elements without listeners are refused.
func TestAttach_Validation(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGuard(t, time.Second)

	_, err := g.Attach(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = g.Attach((*widget.View)(nil))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = g.Attach(widget.NewView("empty"))
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = g.Attach(new(opaqueButton))
	require.ErrorIs(t, err, ErrInvalidState)

	// Guarding an already guarded element would nest wrappers.
	view, _ := newCountedView("pay")
	_, err = g.Attach(view)
	require.NoError(t, err)

	_, err = g.Attach(view)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestAttach_GuardsClicks ensures an attached view only reacts once per watch period.
func TestAttach_GuardsClicks(t *testing.T) {
	t.Parallel()

	g, mock, l := newTestGuard(t, 10*time.Second)
	view, counter := newCountedView("pay")

	got, err := g.Attach(view)
	require.NoError(t, err)
	require.Same(t, g, got)
	require.False(t, g.IsWatching())

	clickView(view, 1)
	require.Equal(t, 1, counter.clicked)
	require.True(t, g.IsWatching())

	clickView(view, 5)
	require.True(t, g.IsWatching())
	require.Equal(t, 1, counter.clicked)

	advance(mock, l, 10*time.Second)
	require.False(t, g.IsWatching())

	clickView(view, 1)
	require.True(t, g.IsWatching())
	require.Equal(t, 2, counter.clicked)

	g.Rest()
	require.False(t, g.IsWatching())

	clickView(view, 1)
	require.Equal(t, 3, counter.clicked)

	clickView(view, 5)
	require.Equal(t, 3, counter.clicked)
}

// TestAttach_FiveRapidClicks replays five immediate clicks followed by one after the watch period.
func TestAttach_FiveRapidClicks(t *testing.T) {
	t.Parallel()

	g, mock, l := newTestGuard(t, 1000*time.Millisecond)
	view, counter := newCountedView("pay")

	_, err := g.Attach(view)
	require.NoError(t, err)

	clickView(view, 5)
	require.Equal(t, 1, counter.clicked)

	advance(mock, l, 1000*time.Millisecond)

	clickView(view, 1)
	require.Equal(t, 2, counter.clicked)
}

// TestAttachAll_SharedSuppression checks that elements sharing a guard share the watch window.
func TestAttachAll_SharedSuppression(t *testing.T) {
	t.Parallel()

	g, mock, l := newTestGuard(t, time.Second)
	first, firstCounter := newCountedView("pay")
	second, secondCounter := newCountedView("confirm")

	_, err := g.AttachAll(first, second)
	require.NoError(t, err)

	clickView(first, 1)
	clickView(second, 1)
	require.Equal(t, 1, firstCounter.clicked)
	require.Zero(t, secondCounter.clicked)

	advance(mock, l, time.Second)

	clickView(second, 1)
	clickView(first, 1)
	require.Equal(t, 1, firstCounter.clicked)
	require.Equal(t, 1, secondCounter.clicked)
}

// TestAttachAll_FailsFast verifies the sequence stops at the first invalid element.
func TestAttachAll_FailsFast(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGuard(t, time.Second)
	first, _ := newCountedView("pay")
	last, _ := newCountedView("confirm")

	_, err := g.AttachAll(first, widget.NewView("empty"), last)
	require.ErrorIs(t, err, ErrInvalidState)

	guard, err := Get(first)
	require.NoError(t, err)
	require.Same(t, g, guard)

	_, err = Get(last)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = g.AttachAll(widget.NewView("empty"), last)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = Get(last)
	require.ErrorIs(t, err, ErrInvalidState)
}

// TestProtect_Helpers checks the package-level attach helpers.
func TestProtect_Helpers(t *testing.T) {
	t.Parallel()

	view, counter := newCountedView("pay")

	g, err := Protect(view)
	require.NoError(t, err)
	require.Equal(t, DefaultWatchPeriod, g.WatchPeriod())

	clickView(view, 3)
	require.Equal(t, 1, counter.clicked)

	g.Rest()
	clickView(view, 1)
	require.Equal(t, 2, counter.clicked)

	other, _ := newCountedView("share")

	g, err = ProtectWithPeriod(600*time.Millisecond, other)
	require.NoError(t, err)
	require.Equal(t, 600*time.Millisecond, g.WatchPeriod())

	shared, _, _ := newTestGuard(t, time.Second)
	third, _ := newCountedView("third")

	g, err = ProtectWith(shared, third)
	require.NoError(t, err)
	require.Same(t, shared, g)

	_, err = ProtectWith(nil, third)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestGet_Errors verifies Get validation.
func TestGet_Errors(t *testing.T) {
	t.Parallel()

	_, err := Get(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	view, _ := newCountedView("pay")
	_, err = Get(view)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = Get(widget.NewView("empty"))
	require.ErrorIs(t, err, ErrInvalidState)
}

// TestRetrieveOnClickListener_Layouts checks both listener storage layouts.
func TestRetrieveOnClickListener_Layouts(t *testing.T) {
	t.Parallel()

	view, counter := newCountedView("pay")

	got, err := RetrieveOnClickListener(view)
	require.NoError(t, err)
	require.Same(t, counter, got)

	got, err = RetrieveOnClickListener(widget.NewView("empty"))
	require.NoError(t, err)
	require.Nil(t, got)

	button := &fieldButton{id: "legacy"}
	got, err = RetrieveOnClickListener(button)
	require.NoError(t, err)
	require.Nil(t, got)

	buttonCounter := new(countListener)
	button.SetOnClickListener(buttonCounter)

	got, err = RetrieveOnClickListener(button)
	require.NoError(t, err)
	require.Same(t, buttonCounter, got)

	got, err = RetrieveOnClickListener(new(opaqueButton))
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = RetrieveOnClickListener(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestAttach_FieldLayout guards an element that keeps its listener in a struct field.
func TestAttach_FieldLayout(t *testing.T) {
	t.Parallel()

	g, mock, l := newTestGuard(t, time.Second)
	counter := new(countListener)
	button := &fieldButton{id: "legacy", OnClickListener: counter}

	_, err := g.Attach(button)
	require.NoError(t, err)

	guard, err := Get(button)
	require.NoError(t, err)
	require.Same(t, g, guard)

	button.click()
	button.click()
	require.Equal(t, 1, counter.clicked)

	advance(mock, l, time.Second)
	button.click()
	require.Equal(t, 2, counter.clicked)
}
