package scene

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/Carmen-Shannon/oxy-habitat/engine/camera"
	"github.com/Carmen-Shannon/oxy-habitat/engine/game_object"
	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	centerX = 640
	centerY = 360
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type rigSnapshot struct {
	azimuth float32
	polar   float32
	pan     mgl32.Vec3
}

func snapshot(r camera.Rig) rigSnapshot {
	return rigSnapshot{azimuth: r.Azimuth(), polar: r.Polar(), pan: r.PanOffset()}
}

// newTestScene places object 1 at the origin, under the screen center, and object 2
// off to the side.
func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts := append([]SceneBuilderOption{
		WithClock(clock.now),
		WithViewport(1280, 720),
		WithComputeWorkers(2),
		WithHabitat(habitat.Config{Shape: habitat.ShapeCube, CrewSize: 2, DimX: 10, DimY: 3, DimZ: 10}),
		WithObjects(
			game_object.NewPlacedObject(game_object.WithID(1), game_object.WithKind("command"), game_object.WithSize(2, 2, 2)),
			game_object.NewPlacedObject(game_object.WithID(2), game_object.WithKind("airlock"), game_object.WithPosition(-4, 0, 3)),
		),
	}, options...)
	s := NewScene("test", opts...)
	t.Cleanup(s.Close)
	return s, clock
}

func TestPointerDownOnObjectStartsDragNotOrbit(t *testing.T) {
	s, _ := newTestScene(t)
	before := snapshot(s.Rig())

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	state := s.Arbiter().State()
	assert.Equal(t, gesture.ModeDraggingObject, state.Mode)
	assert.Equal(t, uint64(1), state.ObjectID)
	id, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)

	s.PointerMove(centerX+80, centerY+40)
	s.PointerUp()

	assert.True(t, s.Arbiter().Idle())
	assert.Equal(t, before, snapshot(s.Rig()), "a drag never moves the camera")
	assert.NotEqual(t, mgl32.Vec3{}, s.Get(1).Position())
	assert.Equal(t, float32(0), s.Get(1).Position()[1], "elevation is fixed")
}

func TestPointerDownOnEmptySpaceOrbits(t *testing.T) {
	s, _ := newTestScene(t)
	az := s.Rig().Azimuth()

	s.PointerDown(common.MouseButtonLeft, 0, 0)
	assert.Equal(t, gesture.ModeOrbiting, s.Arbiter().Mode())
	_, selected := s.Selected()
	assert.False(t, selected)

	s.PointerMove(50, 0)
	assert.NotEqual(t, az, s.Rig().Azimuth())
	s.PointerUp()
	assert.True(t, s.Arbiter().Idle())
}

func TestMiddleAndRightButtons(t *testing.T) {
	s, _ := newTestScene(t)

	s.PointerDown(common.MouseButtonMiddle, centerX, centerY)
	assert.Equal(t, gesture.ModePanning, s.Arbiter().Mode(), "middle pans even over an object")
	s.PointerUp()

	s.PointerDown(common.MouseButtonRight, centerX, centerY)
	assert.True(t, s.Arbiter().Idle())
	assert.Equal(t, mgl32.Vec3{}, s.Get(1).Position())
}

func TestMutualExclusionDuringObjectDrag(t *testing.T) {
	s, _ := newTestScene(t)
	before := snapshot(s.Rig())
	other := s.Get(2).Position()

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	require.True(t, s.Arbiter().OwnedBy(1))

	for i := range 20 {
		s.PointerMove(centerX+float32(i*13), centerY-float32(i*7))
		s.Wheel(0)
		require.Equal(t, before, snapshot(s.Rig()))
		require.Equal(t, other, s.Get(2).Position())
	}
	s.PointerUp()
}

func TestOrbitRejectedWhileAnotherObjectIsDragged(t *testing.T) {
	s, _ := newTestScene(t)
	before := snapshot(s.Rig())

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	require.True(t, s.Arbiter().OwnedBy(1))

	// a second press on empty space while object 1 is mid-drag
	s.PointerDown(common.MouseButtonLeft, 0, 0)
	s.PointerDown(common.MouseButtonMiddle, 0, 0)
	assert.True(t, s.Arbiter().OwnedBy(1))
	s.PointerMove(10, 10)
	assert.Equal(t, before, snapshot(s.Rig()))

	s.PointerUp()
	s.PointerDown(common.MouseButtonLeft, 0, 0)
	assert.Equal(t, gesture.ModeOrbiting, s.Arbiter().Mode(), "orbit is allowed again after pointer-up")
	s.PointerMove(30, 0)
	assert.NotEqual(t, before.azimuth, s.Rig().Azimuth())
}

func TestDragStaysInsideHabitat(t *testing.T) {
	s, _ := newTestScene(t)
	bounds := s.Habitat().Bounds()
	obj := s.Get(1)
	w, d := obj.Footprint()

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	for _, p := range [][2]float32{{1280, 360}, {0, 360}, {640, 700}, {1280, 700}, {0, 100}} {
		s.PointerMove(p[0], p[1])
		pos := obj.Position()
		require.True(t, bounds.Contains(pos[0], pos[2], w, d), "escaped to %v", pos)
	}
	s.PointerUp()
}

func TestNoOpGestureLeavesStateUnchanged(t *testing.T) {
	s, _ := newTestScene(t)
	s.Frame(1.0 / 60)
	rig := snapshot(s.Rig())
	pos := s.Get(1).Position()

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	s.PointerMove(centerX, centerY)
	s.PointerUp()
	assert.Equal(t, pos, s.Get(1).Position())

	s.PointerDown(common.MouseButtonLeft, 5, 5)
	s.PointerMove(5, 5)
	s.PointerUp()
	assert.Equal(t, rig, snapshot(s.Rig()))
}

func TestDoubleClickSignal(t *testing.T) {
	s, clock := newTestScene(t)
	var got []uint64
	s.OnDoubleClick(func(id uint64) { got = append(got, id) })
	pos := s.Get(1).Position()

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	s.PointerUp()
	clock.advance(200 * time.Millisecond)
	s.PointerDown(common.MouseButtonLeft, centerX, centerY)

	assert.Equal(t, []uint64{1}, got)
	assert.True(t, s.Arbiter().Idle())
	s.PointerUp()
	assert.Equal(t, pos, s.Get(1).Position())

	clock.advance(time.Second)
	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	s.PointerUp()
	clock.advance(400 * time.Millisecond)
	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	assert.True(t, s.Arbiter().OwnedBy(1), "downs more than 300ms apart start independent drags")
	assert.Len(t, got, 1)
	s.PointerUp()
}

func TestPointerLeaveAlwaysEndsIdle(t *testing.T) {
	s, _ := newTestScene(t)

	s.PointerDown(common.MouseButtonLeft, 0, 0)
	s.PointerLeave()
	assert.True(t, s.Arbiter().Idle())

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	s.PointerLeave()
	assert.True(t, s.Arbiter().Idle())

	s.PointerDown(common.MouseButtonMiddle, 0, 0)
	s.PointerLeave()
	assert.True(t, s.Arbiter().Idle())
}

func TestButtonUpReleasesOnlyStartingButton(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		x, y     float32
		mode     gesture.Mode
		ignored  []int
		releases int
	}{
		{"object drag", common.MouseButtonLeft, centerX, centerY, gesture.ModeDraggingObject, []int{common.MouseButtonRight, common.MouseButtonMiddle}, common.MouseButtonLeft},
		{"orbit", common.MouseButtonLeft, 0, 0, gesture.ModeOrbiting, []int{common.MouseButtonRight, common.MouseButtonMiddle}, common.MouseButtonLeft},
		{"pan", common.MouseButtonMiddle, 0, 0, gesture.ModePanning, []int{common.MouseButtonLeft, common.MouseButtonRight}, common.MouseButtonMiddle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestScene(t)
			s.PointerDown(tt.start, tt.x, tt.y)
			require.Equal(t, tt.mode, s.Arbiter().Mode())

			for _, b := range tt.ignored {
				s.PointerDown(b, tt.x, tt.y)
				s.ButtonUp(b)
				assert.Equal(t, tt.mode, s.Arbiter().Mode())
			}
			s.ButtonUp(tt.releases)
			assert.True(t, s.Arbiter().Idle())
		})
	}

	s, _ := newTestScene(t)
	s.ButtonUp(common.MouseButtonLeft)
	assert.True(t, s.Arbiter().Idle())
}

func TestHoverTracksPointerWhileIdle(t *testing.T) {
	s, _ := newTestScene(t)

	s.PointerMove(centerX, centerY)
	id, ok := s.Hovered()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)

	s.PointerMove(0, 0)
	_, ok = s.Hovered()
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	s, _ := newTestScene(t)
	requests := 0
	s.OnLibraryRequest(func() { requests++ })
	r := s.Rig().Radius()

	s.Key(common.KeyEqual)
	assert.Less(t, s.Rig().Radius(), r)
	r = s.Rig().Radius()
	s.Key(common.KeyKPSubtract)
	assert.Greater(t, s.Rig().Radius(), r)

	s.Key(common.KeyN)
	assert.Equal(t, 1, requests)

	s.Select(2)
	s.Key(common.KeyEsc)
	_, ok := s.Selected()
	assert.False(t, ok)

	s.Key(common.KeyR)
	assert.Equal(t, float32(15), s.Rig().Radius())
}

func TestSetHabitat(t *testing.T) {
	s, _ := newTestScene(t)

	err := s.SetHabitat(habitat.Config{Shape: habitat.ShapeCube, CrewSize: 1, DimX: 0, DimY: 1, DimZ: 1})
	assert.ErrorIs(t, err, habitat.ErrInvalidDimension)
	assert.Equal(t, float32(10), s.Habitat().DimX)

	require.NoError(t, s.SetHabitat(habitat.Config{Shape: habitat.ShapeCube, CrewSize: 1, DimX: 4, DimY: 3, DimZ: 4}))
	assert.Equal(t, mgl32.Vec3{-1.5, 0, 1.5}, s.Get(2).Position(), "objects outside the new footprint are pulled in")
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Get(1).Position())

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	s.PointerMove(1280, 700)
	s.PointerUp()
	pos := s.Get(1).Position()
	assert.LessOrEqual(t, pos[0], float32(1))
	assert.LessOrEqual(t, pos[2], float32(1))
	assert.GreaterOrEqual(t, pos[0], float32(-1))
	assert.GreaterOrEqual(t, pos[2], float32(-1))
}

func TestRegistry(t *testing.T) {
	s, _ := newTestScene(t)
	assert.Equal(t, 2, s.Count())

	id := s.Add(game_object.NewPlacedObject(game_object.WithPosition(3, 0, -3)))
	assert.Equal(t, uint64(3), id)
	sel, _ := s.Selected()
	assert.Equal(t, id, sel, "added objects become the selection")

	objs := s.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, uint64(1), objs[0].ID())
	assert.Equal(t, uint64(3), objs[2].ID())

	s.Remove(id)
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Nil(t, s.Get(id))

	s.PointerDown(common.MouseButtonLeft, centerX, centerY)
	s.Remove(1)
	assert.True(t, s.Arbiter().Idle(), "removing the dragged object releases the gesture")

	s.Clear()
	assert.Zero(t, s.Count())
}

func TestMetrics(t *testing.T) {
	s, _ := newTestScene(t)
	m := s.Metrics()
	assert.InDelta(t, 300, m.TotalVolume, 1e-6)
	assert.InDelta(t, 9, m.ModuleVolume, 1e-6)
	assert.InDelta(t, 150, m.VolumePerCrew, 1e-6)
	assert.True(t, m.Valid)
}

func TestFrame(t *testing.T) {
	s, _ := newTestScene(t)
	s.Add(game_object.NewPlacedObject(game_object.WithID(5), game_object.WithPosition(100, 0, 100)))
	s.Add(game_object.NewPlacedObject(game_object.WithID(6), game_object.WithEnabled(false)))
	s.Select(1)

	f := s.Frame(0.5)
	require.Len(t, f.Instances, 4)
	assert.Equal(t, float32(0.5), f.Elapsed)
	assert.Equal(t, gesture.ModeIdle, f.Gesture.Mode)

	byID := map[uint64]Instance{}
	for _, inst := range f.Instances {
		byID[inst.ID] = inst
	}

	sel := byID[1]
	assert.True(t, sel.Selected)
	assert.True(t, sel.Visible)
	assert.InDelta(t, 0.1*0.997495, sel.Render[1], 1e-4)
	assert.Equal(t, float32(0), sel.Position[1], "the bob never touches the committed position")
	assert.Equal(t, float32(0), s.Get(1).Position()[1])
	assert.Equal(t, sel.Render[1], sel.Model[13])
	assert.Equal(t, float32(2), sel.Model[0])

	assert.False(t, byID[2].Selected)
	assert.Equal(t, byID[2].Position, byID[2].Render)
	assert.False(t, byID[5].Visible, "behind the camera")
	assert.False(t, byID[6].Visible, "disabled")
	assert.Len(t, f.Visible(), 2)

	assert.Equal(t, s.Camera().ViewProjectionMatrix(), f.ViewProjection)
}

func TestFrameParallelMatchesSerial(t *testing.T) {
	objs := make([]game_object.PlacedObject, 0, 25)
	for i := range 25 {
		objs = append(objs, game_object.NewPlacedObject(
			game_object.WithID(uint64(i+1)),
			game_object.WithPosition(float32(i%5)-2, 0, float32(i/5)-2),
			game_object.WithSize(0.5, 1, 0.5),
		))
	}
	s := NewScene("parallel", WithComputeWorkers(4), WithObjects(objs...))
	defer s.Close()

	parallel := s.Frame(0)
	s.Close()
	serial := s.Frame(0)

	require.Len(t, parallel.Instances, 25)
	for i := range parallel.Instances {
		assert.Equal(t, uint64(i+1), parallel.Instances[i].ID)
		assert.Equal(t, serial.Instances[i].Model, parallel.Instances[i].Model)
		assert.Equal(t, serial.Instances[i].Visible, parallel.Instances[i].Visible)
	}
}

func TestFrameCullingDisabled(t *testing.T) {
	s, _ := newTestScene(t, WithCullingDisabled(true))
	s.Add(game_object.NewPlacedObject(game_object.WithID(9), game_object.WithPosition(100, 0, 100)))
	for _, inst := range s.Frame(0).Instances {
		assert.True(t, inst.Visible)
	}
}
