package drag

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/Carmen-Shannon/oxy-habitat/engine/game_object"
	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// down returns a ray pointing straight down at (x, z).
func down(x, z float32) common.Ray {
	return common.NewRay(mgl32.Vec3{x, 20, z}, mgl32.Vec3{0, -1, 0})
}

func newFixture(options ...ControllerBuilderOption) (Controller, gesture.Arbiter, game_object.PlacedObject) {
	arb := gesture.NewArbiter()
	obj := game_object.NewPlacedObject(game_object.WithID(1), game_object.WithSize(2, 2, 2))
	opts := append([]ControllerBuilderOption{WithBounds(habitat.Bounds{HalfWidth: 5, HalfDepth: 5})}, options...)
	return NewController(obj, arb, opts...), arb, obj
}

func TestDragClampsToHabitatEdge(t *testing.T) {
	c, arb, obj := newFixture()

	require.Equal(t, ResultDragStarted, c.PointerDown(epoch, down(0, 0)))
	assert.True(t, arb.OwnedBy(1))
	assert.True(t, c.Dragging())

	assert.True(t, c.PointerMove(down(10, 0)))
	assert.Equal(t, float32(4), obj.Position()[0])
	assert.Equal(t, float32(0), obj.Position()[2])

	c.PointerMove(down(-30, -30))
	assert.Equal(t, mgl32.Vec3{-4, 0, -4}, obj.Position())

	c.PointerUp()
	assert.True(t, arb.Idle())
	assert.False(t, c.Dragging())
}

func TestDragKeepsGrabOffset(t *testing.T) {
	c, _, obj := newFixture()
	obj.SetPosition(1, 0, 1)

	require.Equal(t, ResultDragStarted, c.PointerDown(epoch, down(1.5, 0.5)))
	c.PointerMove(down(2.5, 0))
	assert.InDelta(t, 2, obj.Position()[0], 1e-6)
	assert.InDelta(t, 0.5, obj.Position()[2], 1e-6)
}

func TestDragContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	arb := gesture.NewArbiter()
	bounds := habitat.Bounds{HalfWidth: 6, HalfDepth: 3.5}

	for i := range 50 {
		w := 0.5 + rng.Float32()*4
		d := 0.5 + rng.Float32()*4
		obj := game_object.NewPlacedObject(game_object.WithID(uint64(i)), game_object.WithSize(w, 2, d))
		c := NewController(obj, arb, WithBounds(bounds))

		at := epoch.Add(time.Duration(i) * time.Second)
		require.Equal(t, ResultDragStarted, c.PointerDown(at, down(0, 0)))
		for range 100 {
			c.PointerMove(down(rng.Float32()*100-50, rng.Float32()*100-50))
			pos := obj.Position()
			require.True(t, bounds.Contains(pos[0], pos[2], w, d), "object %d escaped to %v", i, pos)
		}
		c.PointerUp()
	}
}

func TestDragWiderThanHabitatPinsToCenter(t *testing.T) {
	c, _, obj := newFixture()
	obj.SetSize(12, 2, 2)

	c.PointerDown(epoch, down(0, 0))
	c.PointerMove(down(3, 2))
	assert.Equal(t, float32(0), obj.Position()[0])
	assert.Equal(t, float32(2), obj.Position()[2])
}

func TestDragParallelRayIsNoOp(t *testing.T) {
	c, _, obj := newFixture()
	obj.SetPosition(1, 0.5, -1)
	before := obj.Position()

	c.PointerDown(epoch, down(1, -1))
	assert.False(t, c.PointerMove(common.NewRay(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 0, 0})))
	assert.False(t, c.PointerMove(common.NewRay(mgl32.Vec3{0, 4, 0}, mgl32.Vec3{0, 1, 0})), "plane behind the ray")
	assert.Equal(t, before, obj.Position())
}

func TestDragDownRayMissAnchorsOnFirstHit(t *testing.T) {
	c, _, obj := newFixture()

	require.Equal(t, ResultDragStarted, c.PointerDown(epoch, common.NewRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})))
	assert.False(t, c.PointerMove(down(2, 2)), "first hit only anchors")
	assert.Equal(t, mgl32.Vec3{}, obj.Position())

	assert.True(t, c.PointerMove(down(3, 2)))
	assert.InDelta(t, 1, obj.Position()[0], 1e-6)
}

func TestDragNoOpGestureIsIdempotent(t *testing.T) {
	c, arb, obj := newFixture()
	obj.SetPosition(1.25, 0, -2.75)
	before := obj.Position()

	ray := common.NewRay(mgl32.Vec3{3, 12, 9}, mgl32.Vec3{-1.75, -12, -11.75})
	require.Equal(t, ResultDragStarted, c.PointerDown(epoch, ray))
	assert.False(t, c.PointerMove(ray))
	c.PointerUp()

	assert.Equal(t, before, obj.Position())
	assert.True(t, arb.Idle())
}

func TestDragDoubleClick(t *testing.T) {
	tests := []struct {
		name       string
		gap        time.Duration
		wantResult Result
	}{
		{"within interval", 299 * time.Millisecond, ResultDoubleClick},
		{"at interval", 300 * time.Millisecond, ResultDoubleClick},
		{"after interval", 301 * time.Millisecond, ResultDragStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var clicked []uint64
			c, arb, obj := newFixture(WithOnDoubleClick(func(id uint64) { clicked = append(clicked, id) }))
			obj.SetPosition(2, 0, 2)

			require.Equal(t, ResultDragStarted, c.PointerDown(epoch, down(2, 2)))
			c.PointerUp()

			got := c.PointerDown(epoch.Add(tt.gap), down(2, 2))
			assert.Equal(t, tt.wantResult, got)
			assert.Equal(t, mgl32.Vec3{2, 0, 2}, obj.Position())

			if tt.wantResult == ResultDoubleClick {
				assert.Equal(t, []uint64{1}, clicked)
				assert.True(t, arb.Idle(), "a double-click never enters the drag state")
				// a third quick down starts a fresh drag rather than another double-click
				assert.Equal(t, ResultDragStarted, c.PointerDown(epoch.Add(tt.gap+50*time.Millisecond), down(2, 2)))
			} else {
				assert.Empty(t, clicked)
				assert.True(t, arb.OwnedBy(1))
			}
		})
	}
}

func TestDragConfigurableDoubleClickInterval(t *testing.T) {
	c, _, _ := newFixture(WithDoubleClickInterval(time.Second))
	c.PointerDown(epoch, down(0, 0))
	c.PointerUp()
	assert.Equal(t, ResultDoubleClick, c.PointerDown(epoch.Add(800*time.Millisecond), down(0, 0)))
}

func TestDragMutualExclusion(t *testing.T) {
	arb := gesture.NewArbiter()
	bounds := habitat.Bounds{HalfWidth: 10, HalfDepth: 10}
	a := game_object.NewPlacedObject(game_object.WithID(1))
	b := game_object.NewPlacedObject(game_object.WithID(2), game_object.WithPosition(3, 0, 3))
	ca := NewController(a, arb, WithBounds(bounds))
	cb := NewController(b, arb, WithBounds(bounds))

	require.Equal(t, ResultDragStarted, ca.PointerDown(epoch, down(0, 0)))
	assert.Equal(t, ResultIgnored, cb.PointerDown(epoch.Add(time.Second), down(3, 3)))
	assert.False(t, cb.PointerMove(down(6, 6)))
	cb.PointerUp()
	assert.True(t, arb.OwnedBy(1), "another controller's pointer-up must not release ownership")

	ca.PointerMove(down(1, 1))
	assert.Equal(t, mgl32.Vec3{3, 0, 3}, b.Position())
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, a.Position())

	ca.PointerUp()
	assert.Equal(t, ResultDragStarted, cb.PointerDown(epoch.Add(2*time.Second), down(3, 3)))
}

func TestDragIgnoredWhileCameraOwnsGesture(t *testing.T) {
	c, arb, _ := newFixture()
	require.True(t, arb.BeginOrbit(0, 0))
	assert.Equal(t, ResultIgnored, c.PointerDown(epoch, down(0, 0)))
	c.PointerUp()
	assert.Equal(t, gesture.ModeOrbiting, arb.Mode())
}

func TestDragPositionChangeCallback(t *testing.T) {
	var got []mgl32.Vec3
	c, _, _ := newFixture(WithOnPositionChange(func(id uint64, pos mgl32.Vec3) {
		assert.Equal(t, uint64(1), id)
		got = append(got, pos)
	}))

	c.PointerDown(epoch, down(0, 0))
	c.PointerMove(down(1, 0))
	c.PointerMove(down(1, 0))
	c.PointerMove(down(1, 2))
	assert.Equal(t, []mgl32.Vec3{{1, 0, 0}, {1, 0, 2}}, got)
}

func TestSetBounds(t *testing.T) {
	c, _, obj := newFixture()
	c.SetBounds(habitat.Bounds{HalfWidth: 2, HalfDepth: 2})
	assert.Equal(t, habitat.Bounds{HalfWidth: 2, HalfDepth: 2}, c.Bounds())

	c.PointerDown(epoch, down(0, 0))
	c.PointerMove(down(5, 5))
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, obj.Position())
}

func TestDragStartConfinesAfterBoundsShrink(t *testing.T) {
	var moved []mgl32.Vec3
	c, arb, obj := newFixture(WithOnPositionChange(func(_ uint64, pos mgl32.Vec3) { moved = append(moved, pos) }))
	obj.SetPosition(4, 0, 4)
	c.SetBounds(habitat.Bounds{HalfWidth: 2, HalfDepth: 2})
	assert.Equal(t, mgl32.Vec3{4, 0, 4}, obj.Position(), "SetBounds alone does not move the object")

	require.Equal(t, ResultDragStarted, c.PointerDown(epoch, down(4, 4)))
	c.PointerUp()
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, obj.Position())
	assert.Equal(t, []mgl32.Vec3{{1, 0, 1}}, moved)
	assert.True(t, arb.Idle())

	// the grab offset is measured from the confined position
	require.Equal(t, ResultDragStarted, c.PointerDown(epoch.Add(time.Second), down(4, 4)))
	c.PointerMove(down(3.5, 4))
	assert.Equal(t, mgl32.Vec3{0.5, 0, 1}, obj.Position())
}

func TestConfine(t *testing.T) {
	c, _, obj := newFixture()
	assert.False(t, c.Confine())

	obj.SetPosition(-9, 0.5, 3)
	assert.True(t, c.Confine())
	assert.Equal(t, mgl32.Vec3{-4, 0.5, 3}, obj.Position())
}

func TestDragEarlierTimestampIsNotDoubleClick(t *testing.T) {
	var clicked []uint64
	c, arb, _ := newFixture(WithOnDoubleClick(func(id uint64) { clicked = append(clicked, id) }))

	require.Equal(t, ResultDragStarted, c.PointerDown(epoch, down(0, 0)))
	c.PointerUp()
	assert.Equal(t, ResultDragStarted, c.PointerDown(epoch.Add(-5*time.Second), down(0, 0)))
	assert.Empty(t, clicked)
	assert.True(t, arb.OwnedBy(1))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "double_click", ResultDoubleClick.String())
	assert.Equal(t, "unknown", Result(9).String())
}
