package profiler

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Stats is one interval's worth of frame and process statistics.
type Stats struct {
	FPS float64
	// Draws is the average number of draw commands per frame over the interval.
	Draws float64
	// HeapMB is live Go heap memory.
	HeapMB float64
	// RSSMB is the resident set size of the whole process, including GPU driver allocations.
	RSSMB float64
	// CPUPercent is process CPU usage since the previous interval (may exceed 100 on multicore).
	CPUPercent float64
	GCCount    uint32
}

// String formats the stats the way they are logged.
func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.2f | Draws: %.1f | CPU: %.1f%% | Heap: %.2f MB | RSS: %.2f MB | GC: %d",
		s.FPS, s.Draws, s.CPUPercent, s.HeapMB, s.RSSMB, s.GCCount)
}

// Profiler tracks frame rate, draw count and process resource usage for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	drawCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	proc           *process.Process
	now            func() time.Time
	quiet          bool
	last           Stats
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(p *Profiler)

// WithInterval sets how often stats are sampled and logged.
//
// Parameters:
//   - interval: the sampling interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces the time source, mainly for tests.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
		p.lastTime = now()
	}
}

// WithQuiet disables logging; stats are still returned from Tick.
//
// Returns:
//   - ProfilerOption: option function to apply
func WithQuiet() ProfilerOption {
	return func(p *Profiler) {
		p.quiet = true
	}
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Printf("[Profiler] process stats unavailable: %v", err)
	} else {
		p.proc = proc
		// Prime the CPU counter so the first interval reports a real delta.
		_, _ = proc.Percent(0)
	}
	return p
}

// Tick should be called once per frame to track frame timing.
// Samples and logs statistics when the update interval has elapsed.
//
// Parameters:
//   - draws: number of draw commands issued this frame
//
// Returns:
//   - Stats: the sampled statistics (zero when no sample was taken)
//   - bool: true if stats were sampled this tick, false otherwise
func (p *Profiler) Tick(draws int) (Stats, bool) {
	p.frameCount++
	p.drawCount += draws
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		Draws:   float64(p.drawCount) / float64(p.frameCount),
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
	}
	if p.proc != nil {
		if cpu, err := p.proc.Percent(0); err == nil {
			stats.CPUPercent = cpu
		}
		if mem, err := p.proc.MemoryInfo(); err == nil && mem != nil {
			stats.RSSMB = float64(mem.RSS) / 1024 / 1024
		}
	}

	if !p.quiet {
		log.Printf("[Profiler] %s", stats)
	}

	p.frameCount = 0
	p.drawCount = 0
	p.lastTime = currentTime
	p.last = stats
	return stats, true
}

// Last returns the most recent sampled stats.
//
// Returns:
//   - Stats: the last sample, or zero stats before the first interval elapses
func (p *Profiler) Last() Stats {
	return p.last
}
