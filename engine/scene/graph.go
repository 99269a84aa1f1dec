// Package scene is the drawable set shared between the simulation and the
// renderer. The simulation only ever holds Handles; the renderer walks the
// graph once per frame and draws whatever is present and visible.
package scene

import (
	"github.com/tzynski/gallery/engine/math3d"
)

// Handle identifies one drawable. Zero is never issued.
type Handle uint32

// Kind tells the renderer which model to use for a drawable
type Kind uint8

const (
	KindLetter Kind = iota + 1
	KindShip
	KindShard // tumbling tetrahedron left by a letter
	KindSpark // additive point left by a ship
)

func (k Kind) String() string {
	switch k {
	case KindLetter:
		return "letter"
	case KindShip:
		return "ship"
	case KindShard:
		return "shard"
	case KindSpark:
		return "spark"
	}
	return "unknown"
}

// Placement is the per-frame transform and tint of a drawable
type Placement struct {
	Pos   math3d.Vec3
	Rot   math3d.Vec3
	Scale float64
	Alpha float64
	Color math3d.Color3
}

// Drawables is the rendering collaborator as the core sees it. Allocate and
// Release manage the retained buffer behind a handle; AddDrawable and
// RemoveDrawable manage membership in the drawn set.
type Drawables interface {
	Allocate(kind Kind) Handle
	Release(h Handle)
	AddDrawable(h Handle)
	RemoveDrawable(h Handle)
	SetVisible(h Handle, visible bool)
	CurrentPosition(h Handle) math3d.Vec3
	Place(h Handle, p Placement)
}

type node struct {
	kind      Kind
	placement Placement
	glyph     rune
	allocated bool
	present   bool
	visible   bool
}

// Graph is the in-process Drawables implementation the renderer reads.
// Not safe for concurrent use; everything runs on the frame goroutine.
type Graph struct {
	nodes []node // index = handle; slot 0 unused
	free  []Handle
	count int // present nodes
}

func NewGraph() *Graph {
	return &Graph{nodes: make([]node, 1, 128)}
}

// Allocate reserves a handle. The drawable is not drawn until AddDrawable.
func (g *Graph) Allocate(kind Kind) Handle {
	n := node{
		kind:      kind,
		allocated: true,
		visible:   true,
		placement: Placement{Scale: 1, Alpha: 1, Color: math3d.Color3{R: 1, G: 1, B: 1}},
	}
	if l := len(g.free); l > 0 {
		h := g.free[l-1]
		g.free = g.free[:l-1]
		g.nodes[h] = n
		return h
	}
	g.nodes = append(g.nodes, n)
	return Handle(len(g.nodes) - 1)
}

// Release drops the handle and its buffer. Releasing twice is harmless.
func (g *Graph) Release(h Handle) {
	n := g.get(h)
	if n == nil {
		return
	}
	if n.present {
		g.count--
	}
	g.nodes[h] = node{}
	g.free = append(g.free, h)
}

func (g *Graph) AddDrawable(h Handle) {
	if n := g.get(h); n != nil && !n.present {
		n.present = true
		g.count++
	}
}

func (g *Graph) RemoveDrawable(h Handle) {
	if n := g.get(h); n != nil && n.present {
		n.present = false
		g.count--
	}
}

func (g *Graph) SetVisible(h Handle, visible bool) {
	if n := g.get(h); n != nil {
		n.visible = visible
	}
}

func (g *Graph) CurrentPosition(h Handle) math3d.Vec3 {
	if n := g.get(h); n != nil {
		return n.placement.Pos
	}
	return math3d.Vec3{}
}

func (g *Graph) Place(h Handle, p Placement) {
	if n := g.get(h); n != nil {
		n.placement = p
	}
}

// SetGlyph records which rune a letter drawable shows
func (g *Graph) SetGlyph(h Handle, r rune) {
	if n := g.get(h); n != nil {
		n.glyph = r
	}
}

// Placement returns the current transform of h
func (g *Graph) Placement(h Handle) (Placement, bool) {
	n := g.get(h)
	if n == nil {
		return Placement{}, false
	}
	return n.placement, true
}

// Contains reports whether h is in the drawn set
func (g *Graph) Contains(h Handle) bool {
	n := g.get(h)
	return n != nil && n.present
}

// Visible reports whether h would be drawn this frame
func (g *Graph) Visible(h Handle) bool {
	n := g.get(h)
	return n != nil && n.present && n.visible
}

// Len returns the number of drawables in the drawn set
func (g *Graph) Len() int { return g.count }

// Item is one drawable as handed to the renderer
type Item struct {
	Handle    Handle
	Kind      Kind
	Glyph     rune
	Placement Placement
}

// Each calls fn for every present and visible drawable of the given kind,
// in handle order.
func (g *Graph) Each(kind Kind, fn func(Item)) {
	for i := 1; i < len(g.nodes); i++ {
		n := &g.nodes[i]
		if !n.present || !n.visible || n.kind != kind {
			continue
		}
		fn(Item{Handle: Handle(i), Kind: n.kind, Glyph: n.glyph, Placement: n.placement})
	}
}

func (g *Graph) get(h Handle) *node {
	if h == 0 || int(h) >= len(g.nodes) {
		return nil
	}
	n := &g.nodes[h]
	if !n.allocated {
		return nil
	}
	return n
}
