package systems

import (
	"github.com/tzynski/gallery/engine/core"
	"github.com/tzynski/gallery/engine/scene"
)

// LifecycleSystem ticks every destructible actor before anything moves
type LifecycleSystem struct{}

func (s *LifecycleSystem) Priority() int { return 10 }

func (s *LifecycleSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompDestructible) {
		d := w.Get(id, core.CompDestructible).(*core.Destructible)
		d.Actor.Tick(dt)
	}
}

// SyncSystem copies the transforms of live actors into the drawable set.
// It runs last so the renderer sees this tick's poses.
type SyncSystem struct {
	Draw scene.Drawables
}

func (s *SyncSystem) Priority() int { return 90 }

func (s *SyncSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompTransform, core.CompDestructible) {
		xf := w.Get(id, core.CompTransform).(*core.Transform)
		d := w.Get(id, core.CompDestructible).(*core.Destructible)
		if !d.Actor.Alive() {
			continue
		}
		s.Draw.Place(xf.Handle, xf.Placement())
	}
}
