package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArbiterMutualExclusion(t *testing.T) {
	a := NewArbiter()
	require.True(t, a.Idle())

	require.True(t, a.BeginDrag(7))
	assert.True(t, a.OwnedBy(7))
	assert.False(t, a.OwnedBy(8))

	assert.False(t, a.BeginOrbit(0, 0), "orbit must wait for the drag to end")
	assert.False(t, a.BeginPan(0, 0))
	assert.False(t, a.BeginDrag(8), "a second object cannot steal the gesture")
	assert.Equal(t, ModeDraggingObject, a.Mode())
	assert.Equal(t, uint64(7), a.State().ObjectID)

	a.Release()
	assert.True(t, a.Idle())
	assert.True(t, a.BeginOrbit(1, 2))
	assert.True(t, a.State().Camera())
	assert.False(t, a.BeginDrag(7), "object cannot start while the camera orbits")
}

func TestArbiterTrack(t *testing.T) {
	a := NewArbiter()
	require.True(t, a.BeginPan(10, 20))

	dx, dy := a.Track(13, 18)
	assert.Equal(t, float32(3), dx)
	assert.Equal(t, float32(-2), dy)

	dx, dy = a.Track(13, 18)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestArbiterTransitionsObserved(t *testing.T) {
	var seen []Mode
	a := NewArbiter(WithOnTransition(func(_, to State) {
		seen = append(seen, to.Mode)
	}))

	a.Release() // no-op from idle
	a.BeginOrbit(0, 0)
	a.BeginDrag(1) // rejected, not observed
	a.Release()
	a.BeginDrag(1)
	a.Release()

	assert.Equal(t, []Mode{ModeOrbiting, ModeIdle, ModeDraggingObject, ModeIdle}, seen)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", ModeIdle.String())
	assert.Equal(t, "dragging_object", ModeDraggingObject.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
