package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one reporting window of frame and memory statistics.
type Stats struct {
	Frames       int
	FPS          float64
	MinFrame     time.Duration
	MaxFrame     time.Duration
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
	WindowLength time.Duration
}

// Profiler tracks frame rate, frame-time spread and memory statistics for performance
// monitoring. Outputs stats to a structured logger at a configurable interval.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	updateInterval time.Duration
	readMem        bool

	frameCount int
	lastTime   time.Time
	lastFrame  time.Time
	minFrame   time.Duration
	maxFrame   time.Duration

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Stats
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
		readMem:        true,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, min/max frame time, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	currentTime := p.now()
	frame := currentTime.Sub(p.lastFrame)
	p.lastFrame = currentTime
	if p.frameCount == 0 || frame < p.minFrame {
		p.minFrame = frame
	}
	if frame > p.maxFrame {
		p.maxFrame = frame
	}
	p.frameCount++

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	s := Stats{
		Frames:       p.frameCount,
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		MinFrame:     p.minFrame,
		MaxFrame:     p.maxFrame,
		WindowLength: elapsed,
	}
	if p.readMem {
		p.collectMemory(&s, elapsed)
	}

	p.logger.Info("profiler",
		slog.Float64("fps", s.FPS),
		slog.Duration("frame_min", s.MinFrame),
		slog.Duration("frame_max", s.MaxFrame),
		slog.Float64("heap_mb", s.HeapMB),
		slog.Float64("alloc_rate_mb_s", s.AllocRateMB),
		slog.Any("gc", s.GCCount),
		slog.Uint64("gc_last_pause_us", s.LastPauseUs),
		slog.Uint64("gc_max_pause_us", s.MaxPauseUs),
		slog.Float64("sys_mb", s.SysMB),
	)

	p.last = s
	p.frameCount = 0
	p.minFrame, p.maxFrame = 0, 0
	p.lastTime = currentTime
	return true
}

// Last returns the most recently reported statistics.
//
// Returns:
//   - Stats: the last reporting window, zero before the first report
func (p *Profiler) Last() Stats {
	return p.last
}

func (p *Profiler) collectMemory(s *Stats, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap, TotalAlloc: cumulative (tracks churn), Sys: process footprint
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	s.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
