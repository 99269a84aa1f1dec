package core

import (
	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

// ---- Transform ----

// Transform is where an actor's drawable sits while the actor is alive
type Transform struct {
	Pos    math3d.Vec3
	Rot    math3d.Vec3 // euler angles, radians
	Scale  float64
	Color  math3d.Color3
	Handle scene.Handle
}

func (t *Transform) Type() ComponentType { return CompTransform }

// Placement converts the transform into what the drawable set stores
func (t *Transform) Placement() scene.Placement {
	return scene.Placement{Pos: t.Pos, Rot: t.Rot, Scale: t.Scale, Alpha: 1, Color: t.Color}
}

// ---- Motion ----

// Motion is constant-velocity background flight
type Motion struct {
	Velocity math3d.Vec3 // units per tick
	Spin     math3d.Vec3 // radians per tick
	Limit    float64     // leaving |x|,|y| or |z| > Limit resets the actor
}

func (m *Motion) Type() ComponentType { return CompMotion }

// OutOfBounds reports whether p has left the play volume
func (m *Motion) OutOfBounds(p math3d.Vec3) bool {
	return m.Limit > 0 && p.MaxAbs() > m.Limit
}

// ---- Hover ----

// Hover bobs a letter around its home position
type Hover struct {
	Index     int     // position in the word, offsets the phase
	Home      math3d.Vec3
	Frequency float64 // radians per second
	Amplitude float64
	Tilt      float64 // max rotation about x and z
}

func (h *Hover) Type() ComponentType { return CompHover }

// ---- Destructible ----

// Lifecycle is the part of an actor controller the systems drive
type Lifecycle interface {
	Tick(dt float64)
	Alive() bool
	// Reset puts a live actor back at a valid starting pose without a burst.
	Reset()
}

// Destructible marks an entity that can be shot
type Destructible struct {
	Actor  Lifecycle
	Class  string
	Points int
}

func (d *Destructible) Type() ComponentType { return CompDestructible }
