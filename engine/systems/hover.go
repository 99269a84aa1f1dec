package systems

import (
	"math"

	"github.com/tzynski/gallery/engine/core"
	"github.com/tzynski/gallery/engine/math3d"
)

// HoverSystem bobs letters around their home positions on the world clock
type HoverSystem struct{}

func (s *HoverSystem) Priority() int { return 30 }

func (s *HoverSystem) Update(w *core.World, dt float64) {
	t := w.Seconds()
	ids := w.Query(core.CompTransform, core.CompHover, core.CompDestructible)
	for _, id := range ids {
		xf := w.Get(id, core.CompTransform).(*core.Transform)
		h := w.Get(id, core.CompHover).(*core.Hover)
		d := w.Get(id, core.CompDestructible).(*core.Destructible)

		if !d.Actor.Alive() {
			continue
		}
		xf.Pos = HoverPosition(h, t)
		xf.Rot.X, xf.Rot.Z = HoverTilt(h, t)
	}
}

// HoverPosition is the letter's position at time t seconds
func HoverPosition(h *core.Hover, t float64) (p math3d.Vec3) {
	i := float64(h.Index)
	p = h.Home
	p.Y += math.Sin(h.Frequency*t+i*0.5) * h.Amplitude
	return p
}

// HoverTilt is the letter's rotation about x and z at time t seconds
func HoverTilt(h *core.Hover, t float64) (x, z float64) {
	i := float64(h.Index)
	x = math.Sin(h.Frequency*t+i*0.3) * h.Tilt
	z = math.Cos(h.Frequency*t+i*0.4) * h.Tilt
	return x, z
}
