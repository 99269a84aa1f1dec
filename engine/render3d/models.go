package render3d

import (
	"math"

	"github.com/tzynski/gallery/engine/math3d"
)

// Palette
var (
	LetterCyan = math3d.Hex(0x00ffcc)
	HullGray   = math3d.Hex(0x444444)
	DomeBlue   = math3d.Hex(0x88ccff)
	GlowCyan   = math3d.Hex(0x00ffcc)
)

// UFORadius bounds the unscaled UFO model (ring radius plus tube)
const UFORadius = 1.3

// MakeUFO builds the saucer at unit scale: a flattened hull, a glass dome on
// top and a glowing ring around the rim.
func MakeUFO() *Mesh3D {
	m := NewMesh()

	body := MakeSphereCap(1, math.Pi*0.6, 24, 8, HullGray)
	m.Append(body)

	dome := MakeSphereCap(0.7, math.Pi*0.5, 20, 6, DomeBlue)
	m.Append(dome.Transform(math3d.Translate(0, 0.3, 0)))

	ring := MakeTorus(1.2, 0.1, 6, 32, GlowCyan)
	m.Append(ring.Transform(math3d.RotateX(math.Pi * 0.5)))

	return m
}

// MakeShard is the tumbling fragment a letter breaks into
func MakeShard() *Mesh3D {
	return MakeTetra(0.1, math3d.Color3{R: 1, G: 1, B: 1})
}
