package render3d

import (
	"math"

	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

// Hit is the nearest drawable under the pointer
type Hit struct {
	Handle   scene.Handle
	Kind     scene.Kind
	Point    math3d.Vec3
	Distance float64
}

// Picker casts rays from the camera through screen points
type Picker struct {
	Camera *Camera
	Graph  *scene.Graph
	Glyphs *Glyphs
}

// Pick tests letters first and ships second; a letter hit wins even when a
// ship is nearer.
func (p *Picker) Pick(sx, sy float64) (Hit, bool) {
	origin, dir := p.Camera.Ray(sx, sy)

	best := Hit{Distance: math.Inf(1)}
	if p.Glyphs != nil {
		p.Graph.Each(scene.KindLetter, func(it scene.Item) {
			lo, hi := p.Glyphs.Bounds(it.Glyph)
			if t, ok := rayBox(origin, dir, Model(it.Placement), lo, hi); ok && t < best.Distance {
				best = Hit{Handle: it.Handle, Kind: it.Kind, Distance: t}
			}
		})
	}
	if best.Handle == 0 {
		p.Graph.Each(scene.KindShip, func(it scene.Item) {
			r := UFORadius * it.Placement.Scale
			if t, ok := raySphere(origin, dir, it.Placement.Pos, r); ok && t < best.Distance {
				best = Hit{Handle: it.Handle, Kind: it.Kind, Distance: t}
			}
		})
	}
	if best.Handle == 0 {
		return Hit{}, false
	}
	best.Point = origin.Add(dir.Scale(best.Distance))
	return best, true
}

// rayBox intersects a ray with the box [lo, hi] in the local space of
// model. t is measured along the world ray.
func rayBox(origin, dir math3d.Vec3, model math3d.Mat4, lo, hi math3d.Vec3) (float64, bool) {
	inv := model.Inverse()
	o := inv.TransformPoint(origin)
	d := inv.TransformDir(dir)

	tmin, tmax := 0.0, math.Inf(1)
	for _, axis := range [3][4]float64{
		{o.X, d.X, lo.X, hi.X},
		{o.Y, d.Y, lo.Y, hi.Y},
		{o.Z, d.Z, lo.Z, hi.Z},
	} {
		ro, rd, a, b := axis[0], axis[1], axis[2], axis[3]
		if math.Abs(rd) < 1e-12 {
			if ro < a || ro > b {
				return 0, false
			}
			continue
		}
		t1, t2 := (a-ro)/rd, (b-ro)/rd
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func raySphere(origin, dir, center math3d.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	s := math.Sqrt(disc)
	t := -b - s
	if t < 0 {
		t = -b + s
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
