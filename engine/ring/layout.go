package ring

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/kinetic-ring/common"
)

// Layout defaults.
const (
	DefaultOrbitRadius = 420.0
	DefaultMaxSize     = 280.0
	DefaultRelaxFactor = 0.2
)

// snapshot is one immutable published node collection.
type snapshot struct {
	generation uint64
	nodes      []Node
}

type layoutImpl struct {
	orbitRadius float64
	maxSize     float64
	relaxFactor float64

	current atomic.Pointer[snapshot]
}

// Layout holds the ordered node collection of the ring and its fixed angular assignment.
// Rebuild may be called from any goroutine; readers always observe a complete collection.
type Layout interface {
	// Rebuild discards the current nodes and builds one node per image. Node i receives angle 2*pi*i/N,
	// the shared orbit radius, plane dimensions fitted to maxSize, and a display scale of 1.
	// Nil or zero-sized images keep their slot but are not drawable. The new collection is fully built
	// before it is published.
	//
	// Parameters:
	//   - images: ordered images, may be empty
	//
	// Returns:
	//   - uint64: the generation of the published collection
	Rebuild(images []*common.RenderImage) uint64

	// Snapshot returns the current node collection and its generation.
	// The returned slice must be treated as read-only.
	//
	// Returns:
	//   - []Node: the current nodes
	//   - uint64: the generation, incremented by every Rebuild
	Snapshot() ([]Node, uint64)

	// Advance relaxes every node's display scale one frame and publishes the result.
	// If a Rebuild was published concurrently the rebuilt collection wins and is returned untouched.
	//
	// Returns:
	//   - []Node: the nodes to draw this frame
	//   - uint64: their generation
	Advance() ([]Node, uint64)

	// Len returns the number of slots in the current collection.
	//
	// Returns:
	//   - int: the slot count
	Len() int

	// OrbitRadius returns the shared base orbit radius.
	//
	// Returns:
	//   - float64: the orbit radius
	OrbitRadius() float64
}

var _ Layout = &layoutImpl{}

// NewLayout creates an empty ring layout.
//
// Parameters:
//   - options: functional options to configure the layout
//
// Returns:
//   - Layout: the newly created layout
func NewLayout(options ...LayoutBuilderOption) Layout {
	l := &layoutImpl{
		orbitRadius: DefaultOrbitRadius,
		maxSize:     DefaultMaxSize,
		relaxFactor: DefaultRelaxFactor,
	}

	for _, option := range options {
		option(l)
	}

	l.current.Store(&snapshot{})
	return l
}

func (l *layoutImpl) Rebuild(images []*common.RenderImage) uint64 {
	count := len(images)
	nodes := make([]Node, count)
	for i, img := range images {
		w, h := img.Size()
		nw, nh := Dimensions(w, h, l.maxSize)
		nodes[i] = Node{
			Index:        i,
			Image:        img,
			Angle:        2 * math.Pi * float64(i) / float64(count),
			OrbitRadius:  l.orbitRadius,
			Width:        nw,
			Height:       nh,
			DisplayScale: 1,
		}
	}

	for {
		prev := l.current.Load()
		next := &snapshot{generation: prev.generation + 1, nodes: nodes}
		if l.current.CompareAndSwap(prev, next) {
			return next.generation
		}
	}
}

func (l *layoutImpl) Snapshot() ([]Node, uint64) {
	s := l.current.Load()
	return s.nodes, s.generation
}

func (l *layoutImpl) Advance() ([]Node, uint64) {
	prev := l.current.Load()
	next := &snapshot{generation: prev.generation, nodes: Relax(prev.nodes, l.relaxFactor)}
	if l.current.CompareAndSwap(prev, next) {
		return next.nodes, next.generation
	}
	s := l.current.Load()
	return s.nodes, s.generation
}

func (l *layoutImpl) Len() int {
	return len(l.current.Load().nodes)
}

func (l *layoutImpl) OrbitRadius() float64 {
	return l.orbitRadius
}
