package render3d

import (
	"math"

	"github.com/tzynski/gallery/engine/math3d"
)

// DirectionalLight shines from Position toward the origin
type DirectionalLight struct {
	Position  math3d.Vec3
	Color     math3d.Color3
	Intensity float64
}

// Direction is the unit vector from a surface toward the light
func (l DirectionalLight) Direction() math3d.Vec3 {
	return l.Position.Normalize()
}

// Spotlight is approximated as a point light with linear falloff to Range
type Spotlight struct {
	Position  math3d.Vec3
	Color     math3d.Color3
	Intensity float64
	Range     float64
}

// LightingSetup contains the scene lighting
type LightingSetup struct {
	Ambient math3d.Color3
	Front   DirectionalLight
	Back    DirectionalLight
	Spots   [2]Spotlight

	FogColor   math3d.Color3
	FogDensity float64

	// Emissive is added to every lit colour as a fraction of the base colour
	Emissive float64
}

// DefaultLighting is the dark cyan stage: dim ambient, a cyan key light in
// front, a blue rim light behind and two orbiting spots.
func DefaultLighting() LightingSetup {
	ls := LightingSetup{
		Ambient:    math3d.Hex(0x111111),
		Front:      DirectionalLight{Position: math3d.V3(0, 0, 10), Color: math3d.Hex(0x00ffcc), Intensity: 1},
		Back:       DirectionalLight{Position: math3d.V3(0, 0, -10), Color: math3d.Hex(0x00ccff), Intensity: 1},
		FogDensity: 0.03,
		Emissive:   0.3,
	}
	ls.Spots[0] = Spotlight{Color: math3d.Hex(0x00ffcc), Intensity: 1, Range: 40}
	ls.Spots[1] = Spotlight{Color: math3d.Hex(0x00ccff), Intensity: 1, Range: 40}
	ls.Update(0)
	return ls
}

// Update moves the spotlights to their positions at t seconds
func (ls *LightingSetup) Update(t float64) {
	x := math.Sin(t*0.7) * 15
	z := math.Cos(t*0.5) * 15
	ls.Spots[0].Position = math3d.V3(x, 10, z)
	ls.Spots[1].Position = math3d.V3(-x, -10, -z)
}

// ComputeLighting calculates the lit colour of a surface at pos
func (ls *LightingSetup) ComputeLighting(pos, normal math3d.Vec3, base math3d.Color3) math3d.Color3 {
	result := base.Mul(ls.Ambient).Add(base.Scale(ls.Emissive))

	for _, l := range [...]DirectionalLight{ls.Front, ls.Back} {
		ndotl := math.Max(0, normal.Dot(l.Direction()))
		result = result.Add(base.Mul(l.Color).Scale(ndotl * l.Intensity))
	}

	for _, s := range ls.Spots {
		to := s.Position.Sub(pos)
		d := to.Len()
		if d >= s.Range || d == 0 {
			continue
		}
		ndotl := math.Max(0, normal.Dot(to.Scale(1/d)))
		falloff := 1 - d/s.Range
		result = result.Add(base.Mul(s.Color).Scale(ndotl * falloff * s.Intensity))
	}
	return result
}

// FogFactor is how much of the fog colour replaces a surface at distance d
// (exponential squared fog).
func (ls *LightingSetup) FogFactor(d float64) float64 {
	k := ls.FogDensity * d
	return 1 - math.Exp(-k*k)
}

// ApplyFog blends c toward the fog colour by distance
func (ls *LightingSetup) ApplyFog(c math3d.Color3, d float64) math3d.Color3 {
	return c.Mix(ls.FogColor, ls.FogFactor(d))
}
