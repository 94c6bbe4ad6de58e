// Package main runs the habitat layout viewport: it loads a layout file, opens
// a window and drives the camera rig and module drag controllers from input.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-habitat/config"
	"github.com/Carmen-Shannon/oxy-habitat/engine"
	"github.com/Carmen-Shannon/oxy-habitat/engine/camera"
	"github.com/Carmen-Shannon/oxy-habitat/engine/scene"
	"github.com/Carmen-Shannon/oxy-habitat/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

const layoutSceneKey = 0

func main() {
	var path string
	var verbose bool
	flag.StringVar(&path, "config", "", "path to a TOML layout file (default: built-in habitat)")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		"path", path,
		"habitat", cfg.Habitat.Name,
		"shape", cfg.Habitat.Shape,
		"modules", len(cfg.Modules),
	)

	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(cfg.Viewport.WindowOptions()...)

	// ── Camera ──────────────────────────────────────────────────────────
	rig := camera.NewRig(append(cfg.Viewport.RigOptions(), camera.WithLogger(logger))...)
	cam := camera.NewCamera(cfg.Viewport.CameraOptions()...)

	// ── Scene ───────────────────────────────────────────────────────────
	opts := append(cfg.Viewport.SceneOptions(),
		scene.WithActive(true),
		scene.WithRig(rig),
		scene.WithCamera(cam),
		scene.WithHabitat(cfg.Habitat),
		scene.WithObjects(cfg.Objects()...),
		scene.WithLogger(logger),
		scene.WithOnPositionChange(func(id uint64, pos mgl32.Vec3) {
			logger.Debug("module moved", "id", id, "x", pos[0], "y", pos[1], "z", pos[2])
		}),
	)
	sc := scene.NewScene(cfg.Habitat.Name, opts...)
	defer sc.Close()

	sc.OnDoubleClick(func(id uint64) {
		if obj := sc.Get(id); obj != nil {
			logger.Info("open module details", "id", id, "kind", obj.Kind())
		}
	})
	sc.OnLibraryRequest(func() {
		logger.Info("open module library")
	})

	m := sc.Metrics()
	logger.Info("habitat metrics",
		"volume_m3", m.TotalVolume,
		"per_crew_m3", m.VolumePerCrew,
		"used", m.UsedFraction,
		"valid", m.Valid,
	)

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(layoutSceneKey, sc),
		engine.WithProfiling(cfg.Viewport.Profiling),
		engine.WithRenderFrameLimit(cfg.Viewport.FrameLimit),
		engine.WithLogger(logger),
	)

	if win.SurfaceDescriptor() == nil {
		logger.Warn("no render surface available, running input only")
	}

	visible := -1
	eng.SetRenderCallback(func(key int, frame scene.Frame) {
		if n := len(frame.Visible()); n != visible {
			visible = n
			logger.Debug("visible modules changed", "scene", key, "visible", n, "gesture", frame.Gesture.Mode)
		}
	})

	eng.Run()
}
