package profiler

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickSamplesAfterInterval(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	p := NewProfiler(WithClock(clk.now), WithInterval(time.Second), WithQuiet())

	for i := 0; i < 59; i++ {
		clk.t = clk.t.Add(time.Second / 60)
		if _, ok := p.Tick(6); ok {
			t.Fatalf("expected no sample at frame %d", i)
		}
	}
	clk.t = time.Unix(1001, 0)
	stats, ok := p.Tick(6)
	if !ok {
		t.Fatalf("expected a sample after one second")
	}
	if math.Abs(stats.FPS-60) > 1e-9 {
		t.Errorf("expected FPS 60, got %f", stats.FPS)
	}
	if math.Abs(stats.Draws-6) > 1e-9 {
		t.Errorf("expected 6 draws per frame, got %f", stats.Draws)
	}
	if stats.HeapMB <= 0 {
		t.Errorf("expected positive heap usage, got %f", stats.HeapMB)
	}
	if p.Last() != stats {
		t.Errorf("expected Last to return the latest sample")
	}
}

func TestTickResetsCounters(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clk.now), WithInterval(time.Second), WithQuiet())

	clk.t = clk.t.Add(time.Second)
	if _, ok := p.Tick(10); !ok {
		t.Fatalf("expected first sample")
	}
	clk.t = clk.t.Add(500 * time.Millisecond)
	p.Tick(2)
	clk.t = clk.t.Add(500 * time.Millisecond)
	stats, ok := p.Tick(4)
	if !ok {
		t.Fatalf("expected second sample")
	}
	if math.Abs(stats.FPS-2) > 1e-9 {
		t.Errorf("expected FPS 2, got %f", stats.FPS)
	}
	if math.Abs(stats.Draws-3) > 1e-9 {
		t.Errorf("expected 3 draws per frame, got %f", stats.Draws)
	}
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithQuiet())
	if p.updateInterval != time.Second {
		t.Errorf("expected default interval, got %v", p.updateInterval)
	}
}
