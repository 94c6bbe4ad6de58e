package scene

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/Carmen-Shannon/oxy-habitat/engine/camera"
	"github.com/Carmen-Shannon/oxy-habitat/engine/game_object"
	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance is the render state of one placed object for a single frame.
type Instance struct {
	ID       uint64
	Kind     string
	Position mgl32.Vec3 // committed position
	Render   mgl32.Vec3 // position including the selection bob
	Size     mgl32.Vec3
	Model    [16]float32 // unit cube -> world, column-major
	Visible  bool
	Selected bool
	Hovered  bool
	Dragging bool
}

// Frame is the viewport state produced once per tick. It holds copies only and may be
// read by a renderer while the scene keeps processing input.
type Frame struct {
	Pose           camera.Pose
	View           [16]float32
	Projection     [16]float32
	ViewProjection [16]float32
	Gesture        gesture.State
	Elapsed        float32
	Instances      []Instance
}

// Visible returns the instances that passed frustum culling.
func (f Frame) Visible() []Instance {
	out := make([]Instance, 0, len(f.Instances))
	for _, inst := range f.Instances {
		if inst.Visible {
			out = append(out, inst)
		}
	}
	return out
}

func (s *scene) Frame(dt float32) Frame {
	if dt > 0 {
		s.elapsed += dt
	}

	pose := s.rig.Tick()
	s.cam.Update(pose)

	f := Frame{
		Pose:           pose,
		View:           s.cam.ViewMatrix(),
		Projection:     s.cam.ProjectionMatrix(),
		ViewProjection: s.cam.ViewProjectionMatrix(),
		Gesture:        s.arbiter.State(),
		Elapsed:        s.elapsed,
	}

	objs := s.Objects()
	f.Instances = make([]Instance, len(objs))
	if len(objs) == 0 {
		return f
	}

	prep := instancePrep{
		frustum:  s.cam.Frustum(),
		culling:  !s.cullingDisabled,
		bob:      s.bobAmplitude * math32.Sin(s.elapsed*s.bobFrequency),
		gesture:  f.Gesture,
		selected: s.selected,
		hasSel:   s.hasSelected,
		hovered:  s.hovered,
		hasHover: s.hasHovered,
	}

	if s.closed || len(objs) < 2 {
		for i, obj := range objs {
			f.Instances[i] = prep.build(obj)
		}
		return f
	}

	// Objects are split into one contiguous batch per worker. Each batch writes a disjoint
	// range of f.Instances, and the WaitGroup is the per-frame barrier.
	batches := min(s.computeWorkers, len(objs))
	size := (len(objs) + batches - 1) / batches
	var wg sync.WaitGroup
	for b := range batches {
		lo := b * size
		hi := min(lo+size, len(objs))
		if lo >= hi {
			break
		}
		wg.Add(1)
		s.instancePool.SubmitTask(worker.Task{
			ID: b,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					f.Instances[i] = prep.build(objs[i])
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return f
}

type instancePrep struct {
	frustum  common.Frustum
	culling  bool
	bob      float32
	gesture  gesture.State
	selected uint64
	hasSel   bool
	hovered  uint64
	hasHover bool
}

func (p instancePrep) build(obj game_object.PlacedObject) Instance {
	id := obj.ID()
	inst := Instance{
		ID:       id,
		Kind:     obj.Kind(),
		Position: obj.Position(),
		Size:     obj.Size(),
		Selected: p.hasSel && p.selected == id,
		Hovered:  p.hasHover && p.hovered == id,
		Dragging: p.gesture.Mode == gesture.ModeDraggingObject && p.gesture.ObjectID == id,
	}

	inst.Render = inst.Position
	if inst.Selected {
		inst.Render[1] += p.bob
	}
	common.BuildModelMatrix(inst.Model[:], inst.Render, [3]float32{}, inst.Size)

	switch {
	case !obj.Enabled():
		inst.Visible = false
	case !p.culling:
		inst.Visible = true
	default:
		b := obj.Bounds()
		inst.Visible = p.frustum.ContainsSphere(b.Center(), b.Radius())
	}
	return inst
}
