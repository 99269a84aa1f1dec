package actor

import (
	"github.com/tzynski/gallery/engine/math3d"
)

// Pose is where a relocated actor starts and how it moves from there
type Pose struct {
	Pos      math3d.Vec3
	Velocity math3d.Vec3
}

// Relocator picks a fresh pose for a respawning actor
type Relocator interface {
	Relocate(r math3d.Rand) Pose
}

// RelocatorFunc adapts a function to Relocator
type RelocatorFunc func(r math3d.Rand) Pose

func (f RelocatorFunc) Relocate(r math3d.Rand) Pose { return f(r) }

// Edge is one side of the screen a ship can enter from
type Edge uint8

const (
	EdgeRight Edge = iota
	EdgeLeft
	EdgeTop
	EdgeBottom
)

// EdgeEntry brings the actor in from a random screen edge, moving inward
// with a little drift on y and z.
type EdgeEntry struct {
	Distance float64 // how far off-centre the edge is
	MinSpeed float64
	MaxSpeed float64
	Drift    float64 // max |drift| added to velocity y and z
	Spread   float64 // half-width of the entry band along the edge
	Depth    float64 // half-depth of the entry band along z
}

// DefaultEdgeEntry enters 30 units out at 0.1-0.2 units per tick
func DefaultEdgeEntry() EdgeEntry {
	return EdgeEntry{
		Distance: 30,
		MinSpeed: 0.1,
		MaxSpeed: 0.2,
		Drift:    0.01,
		Spread:   10,
		Depth:    5,
	}
}

func (e EdgeEntry) Relocate(r math3d.Rand) Pose {
	return e.RelocateFrom(Edge(r.Intn(4)), r)
}

// RelocateFrom enters through the given edge
func (e EdgeEntry) RelocateFrom(edge Edge, r math3d.Rand) Pose {
	speed := math3d.Uniform(r, e.MinSpeed, e.MaxSpeed)
	var p Pose
	switch edge {
	case EdgeRight:
		p.Pos = math3d.V3(e.Distance, math3d.Uniform(r, -e.Depth, e.Depth), math3d.Uniform(r, -e.Depth, e.Depth))
		p.Velocity = math3d.V3(-speed, 0, 0)
	case EdgeLeft:
		p.Pos = math3d.V3(-e.Distance, math3d.Uniform(r, -e.Depth, e.Depth), math3d.Uniform(r, -e.Depth, e.Depth))
		p.Velocity = math3d.V3(speed, 0, 0)
	case EdgeTop:
		p.Pos = math3d.V3(math3d.Uniform(r, -e.Spread, e.Spread), e.Distance, math3d.Uniform(r, -e.Depth, e.Depth))
		p.Velocity = math3d.V3(0, -speed, 0)
	default:
		p.Pos = math3d.V3(math3d.Uniform(r, -e.Spread, e.Spread), -e.Distance, math3d.Uniform(r, -e.Depth, e.Depth))
		p.Velocity = math3d.V3(0, speed, 0)
	}
	p.Velocity.Y += math3d.Uniform(r, -e.Drift, e.Drift)
	p.Velocity.Z += math3d.Uniform(r, -e.Drift, e.Drift)
	return p
}

// SphereEntry places the actor on a sphere around the origin and sends it
// toward the centre.
type SphereEntry struct {
	Radius float64
	Speed  float64
}

func (s SphereEntry) Relocate(r math3d.Rand) Pose {
	dir := math3d.CubeDirection(r)
	return Pose{
		Pos:      dir.Scale(s.Radius),
		Velocity: dir.Scale(-s.Speed),
	}
}
