package renderer

import (
	"encoding/binary"
	"image"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
)

func TestDrawUniformsMarshal(t *testing.T) {
	var u DrawUniforms
	for i := range u.MVP {
		u.MVP[i] = float32(i) + 0.5
	}
	u.Opacity = 0.25

	buf := u.Marshal()
	if len(buf) != DrawUniformsSize {
		t.Fatalf("expected %d bytes, got %d", DrawUniformsSize, len(buf))
	}
	for i := range u.MVP {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != u.MVP[i] {
			t.Errorf("mvp[%d]: expected %f, got %f", i, u.MVP[i], got)
		}
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])); got != 0.25 {
		t.Errorf("expected opacity 0.25, got %f", got)
	}
	for i := 68; i < DrawUniformsSize; i++ {
		if buf[i] != 0 {
			t.Errorf("expected zero padding at byte %d, got %d", i, buf[i])
		}
	}
}

func TestDrawListKeepsSlotOrder(t *testing.T) {
	outline := make([]model.GPUVertex, 8)
	drawable := common.NewRenderImage("ok", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	empty := common.NewRenderImage("empty", image.NewRGBA(image.Rect(0, 0, 0, 0)))

	commands := []scene.DrawCommand{
		{Index: 0, Image: drawable, CameraDistance: 900, Mesh: model.PlaneMesh{Outline: outline}},
		{Index: 1, Image: empty, CameraDistance: 1500, Mesh: model.PlaneMesh{Outline: outline}},
		{Index: 2, Image: drawable, CameraDistance: 1200, Mesh: model.PlaneMesh{Outline: outline[:2]}},
		{Index: 3, Image: drawable, CameraDistance: 1500, Mesh: model.PlaneMesh{Outline: outline}},
		{Index: 4, Image: drawable, CameraDistance: 100, Mesh: model.PlaneMesh{Outline: outline}},
	}
	got := drawList(commands)
	want := []int{0, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Index != want[i] {
			t.Errorf("position %d: expected slot %d, got %d", i, want[i], got[i].Index)
		}
	}
	if len(drawList(nil)) != 0 {
		t.Errorf("expected no commands for an empty frame")
	}
}

func TestResidencyEvictsIdle(t *testing.T) {
	r := newResidency[string](2)
	r.put(1, 1, "a")
	r.put(2, 1, "b")

	if v, ok := r.get(1, 3); !ok || v != "a" {
		t.Errorf("expected resident a, got %q, %v", v, ok)
	}
	if evicted := r.evict(3); len(evicted) != 0 {
		t.Errorf("expected nothing evicted at tick 3, got %v", evicted)
	}
	evicted := r.evict(4)
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("expected b evicted at tick 4, got %v", evicted)
	}
	if _, ok := r.get(2, 4); ok {
		t.Errorf("expected b to be gone")
	}
	if r.len() != 1 {
		t.Errorf("expected 1 resident, got %d", r.len())
	}
}

func TestResidencyDrain(t *testing.T) {
	r := newResidency[int](10)
	r.put(7, 0, 70)
	r.put(8, 0, 80)
	got := r.drain()
	sort.Ints(got)
	if len(got) != 2 || got[0] != 70 || got[1] != 80 {
		t.Errorf("expected [70 80], got %v", got)
	}
	if r.len() != 0 {
		t.Errorf("expected empty residency after drain, got %d", r.len())
	}
}

func TestPlaneShaderSource(t *testing.T) {
	src := planeShaderSource()
	for _, want := range []string{"struct VertexInput", "fn " + vertexEntryPoint, "fn " + fragmentEntryPoint, "@group(1) @binding(1)"} {
		if !strings.Contains(src, want) {
			t.Errorf("expected shader source to contain %q", want)
		}
	}
	if strings.Index(src, "struct VertexInput") > strings.Index(src, "fn "+vertexEntryPoint) {
		t.Errorf("expected vertex input to be declared before the vertex entry point")
	}
}
