package systems

import (
	"github.com/tzynski/gallery/engine/core"
)

// FlightSystem moves ships at constant velocity and sends strays back in
type FlightSystem struct{}

func (s *FlightSystem) Priority() int { return 20 }

func (s *FlightSystem) Update(w *core.World, dt float64) {
	ids := w.Query(core.CompTransform, core.CompMotion, core.CompDestructible)
	for _, id := range ids {
		xf := w.Get(id, core.CompTransform).(*core.Transform)
		mov := w.Get(id, core.CompMotion).(*core.Motion)
		d := w.Get(id, core.CompDestructible).(*core.Destructible)

		if !d.Actor.Alive() {
			continue
		}

		xf.Pos = xf.Pos.Add(mov.Velocity)
		xf.Rot = xf.Rot.Add(mov.Spin)

		if mov.OutOfBounds(xf.Pos) {
			d.Actor.Reset()
		}
	}
}
