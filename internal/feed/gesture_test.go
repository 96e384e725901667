package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGestureTrackerLifecycle(t *testing.T) {
	g := NewGestureTracker(nil)

	require.True(t, g.Start(200))
	assert.True(t, g.Dragging())

	d, ok := g.Move(260)
	require.True(t, ok)
	assert.Equal(t, 60.0, d)

	d, ok = g.Move(150)
	require.True(t, ok)
	assert.Equal(t, -50.0, d)

	d, ok = g.End()
	require.True(t, ok)
	assert.Equal(t, -50.0, d)
	assert.False(t, g.Dragging())
	assert.Equal(t, GestureSample{}, g.Sample(), "sample is reset after end")
}

func TestGestureTrackerStartWhileDraggingIsNoop(t *testing.T) {
	g := NewGestureTracker(nil)

	require.True(t, g.Start(10))
	_, _ = g.Move(30)

	assert.False(t, g.Start(500))
	assert.Equal(t, 10.0, g.Sample().OriginX, "existing drag keeps the pointer")
	assert.Equal(t, 30.0, g.Sample().CurrentX)
}

func TestGestureTrackerIdleEventsAreNoops(t *testing.T) {
	g := NewGestureTracker(nil)

	_, ok := g.Move(10)
	assert.False(t, ok)

	_, ok = g.End()
	assert.False(t, ok)
	assert.Equal(t, GestureIdle, g.Sample().Phase)
}

func TestGestureTrackerStartGate(t *testing.T) {
	locked := true
	g := NewGestureTracker(func() bool { return !locked })

	assert.False(t, g.Start(0), "start rejected while the gate is closed")
	assert.False(t, g.Dragging())

	locked = false
	assert.True(t, g.Start(0))
}

func TestGestureTrackerReset(t *testing.T) {
	g := NewGestureTracker(nil)
	require.True(t, g.Start(0))

	g.Reset()

	assert.False(t, g.Dragging())
	_, ok := g.End()
	assert.False(t, ok)
}
