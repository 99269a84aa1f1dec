// Package burst animates fixed-size particle bursts. An Engine is built once
// per actor and reused for every destruction; it owns its fragments and the
// drawable handles behind them, and is advanced by the frame clock through
// Tick.
package burst

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

// Phase of a burst engine
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseExploding
	PhaseReforming
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExploding:
		return "exploding"
	case PhaseReforming:
		return "reforming"
	}
	return "unknown"
}

// Signal is what an engine reports to its owner when a burst ends
type Signal uint8

const (
	SignalBurstComplete Signal = iota + 1
	SignalReformComplete
)

func (s Signal) String() string {
	switch s {
	case SignalBurstComplete:
		return "burst-complete"
	case SignalReformComplete:
		return "reform-complete"
	}
	return "none"
}

// Fragment is one simulated particle
type Fragment struct {
	Position         math3d.Vec3
	Velocity         math3d.Vec3
	OriginalPosition math3d.Vec3 // reform target, fixed for the life of a burst
	Rotation         math3d.Vec3
	Spin             math3d.Vec3
	Scale            float64
	Alpha            float64
	Color            math3d.Color3
	Alive            bool // true iff registered in the drawable set

	handle scene.Handle
}

// Engine owns one burst's fragments
type Engine struct {
	// OnComplete receives exactly one signal per accepted Trigger
	OnComplete func(Signal)

	cfg    Config
	draw   scene.Drawables
	rng    math3d.Rand
	log    zerolog.Logger
	frags  []Fragment
	phase  Phase
	origin math3d.Vec3
	live   int

	elapsedTicks int
	elapsed      float64
	disposed     bool
}

// New builds an idle engine and allocates one drawable per fragment
func New(cfg Config, draw scene.Drawables, rng math3d.Rand, log zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("burst config: %w", err)
	}
	if draw == nil || rng == nil {
		return nil, fmt.Errorf("burst: drawables and rng are required")
	}
	e := &Engine{
		cfg:   cfg,
		draw:  draw,
		rng:   rng,
		log:   log.With().Str("component", "burst").Str("style", cfg.Style.String()).Logger(),
		frags: make([]Fragment, cfg.Fragments),
	}
	for i := range e.frags {
		f := &e.frags[i]
		f.handle = draw.Allocate(cfg.Kind)
		f.Scale = 1
		f.Alpha = 1
		f.Color = cfg.Color
		if cfg.Spin > 0 {
			f.Spin = math3d.V3(
				math3d.Uniform(rng, -cfg.Spin, cfg.Spin),
				math3d.Uniform(rng, -cfg.Spin, cfg.Spin),
				math3d.Uniform(rng, -cfg.Spin, cfg.Spin),
			)
		}
	}
	return e, nil
}

// CanTrigger reports whether Trigger would be accepted
func (e *Engine) CanTrigger() bool {
	return !e.disposed && e.phase == PhaseIdle
}

// Trigger starts a burst at origin. Dropped unless the engine is idle.
func (e *Engine) Trigger(origin math3d.Vec3) bool {
	if !e.CanTrigger() {
		return false
	}
	e.origin = origin
	e.elapsedTicks = 0
	e.elapsed = 0
	for i := range e.frags {
		f := &e.frags[i]
		f.Position = origin
		f.OriginalPosition = origin
		f.Rotation = math3d.Vec3{}
		f.Scale = 1
		f.Alpha = 1
		f.Velocity = e.sampleVelocity()
		if e.cfg.Style == StyleFade {
			f.Color = math3d.Color3{
				R: math3d.Uniform(e.rng, 0.5, 1),
				G: math3d.Uniform(e.rng, 0.5, 1),
				B: 1,
			}
		}
		f.Alive = true
		e.draw.AddDrawable(f.handle)
		e.place(f)
	}
	e.live = len(e.frags)
	e.phase = PhaseExploding
	e.log.Debug().Interface("origin", origin).Int("fragments", e.live).Msg("burst triggered")
	return true
}

func (e *Engine) sampleVelocity() math3d.Vec3 {
	if e.cfg.Velocity == VelocityCube {
		return math3d.CubeVelocity(e.rng, e.cfg.Speed)
	}
	return math3d.CubeDirection(e.rng).Scale(e.cfg.Speed)
}

// Tick advances the burst by one frame step and reports whether it is still
// running. A gravity-reform burst keeps running through its dwell even when
// every fragment has already been culled.
func (e *Engine) Tick(dt float64) bool {
	if e.disposed {
		misuse(e.log, "tick after dispose")
		return false
	}
	if e.phase == PhaseIdle {
		return false
	}
	e.elapsedTicks++
	e.elapsed += dt

	switch e.phase {
	case PhaseExploding:
		if e.cfg.Style == StyleFade {
			e.stepFade()
		} else {
			e.stepFall()
		}
	case PhaseReforming:
		e.stepReform()
	}

	if e.cfg.Style == StyleFade {
		if e.live == 0 {
			e.finish(SignalBurstComplete)
		}
		return e.phase != PhaseIdle
	}

	if e.phase == PhaseExploding && e.elapsedTicks >= e.cfg.DwellTicks {
		// completion is only checked from the next tick on, so the owner
		// always sees at least one tick in PhaseReforming
		e.phase = PhaseReforming
		e.log.Debug().Int("live", e.live).Msg("burst reforming")
		return true
	}
	if e.phase == PhaseReforming && e.live == 0 {
		e.finish(SignalReformComplete)
	}
	return e.phase != PhaseIdle
}

func (e *Engine) stepFall() {
	for i := range e.frags {
		f := &e.frags[i]
		if !f.Alive {
			continue
		}
		f.Position = f.Position.Add(f.Velocity)
		f.Rotation = f.Rotation.Add(f.Spin)
		f.Velocity.Y -= e.cfg.Gravity
		if f.Position.Y < e.cfg.Floor {
			// Culled debris counts as reabsorbed: it lands on its target.
			f.Position = f.OriginalPosition
			f.Scale = 0
			e.retire(f)
			continue
		}
		e.place(f)
	}
}

func (e *Engine) stepFade() {
	alpha := 1 - float64(e.elapsedTicks)/float64(e.cfg.FadeTicks)
	if alpha < 0 {
		alpha = 0
	}
	for i := range e.frags {
		f := &e.frags[i]
		if !f.Alive {
			continue
		}
		f.Position = f.Position.Add(f.Velocity)
		f.Rotation = f.Rotation.Add(f.Spin)
		f.Alpha = alpha
		if e.elapsedTicks >= e.cfg.FadeTicks {
			e.retire(f)
			continue
		}
		e.place(f)
	}
}

func (e *Engine) stepReform() {
	for i := range e.frags {
		f := &e.frags[i]
		if !f.Alive {
			continue
		}
		if f.Position.DistanceTo(f.OriginalPosition) > e.cfg.ReformTolerance {
			f.Position = f.Position.Lerp(f.OriginalPosition, e.cfg.ReformRate)
			f.Scale *= e.cfg.ShrinkRate
			e.place(f)
			continue
		}
		f.Position = f.OriginalPosition
		f.Scale = 0
		e.retire(f)
	}
}

func (e *Engine) retire(f *Fragment) {
	f.Alive = false
	e.draw.RemoveDrawable(f.handle)
	e.live--
}

func (e *Engine) place(f *Fragment) {
	e.draw.Place(f.handle, scene.Placement{
		Pos:   f.Position,
		Rot:   f.Rotation,
		Scale: f.Scale,
		Alpha: f.Alpha,
		Color: f.Color,
	})
}

func (e *Engine) finish(s Signal) {
	e.phase = PhaseIdle
	e.log.Debug().Stringer("signal", s).Int("ticks", e.elapsedTicks).Msg("burst finished")
	if e.OnComplete != nil {
		e.OnComplete(s)
	}
}

// Dispose removes in-flight fragments from the drawable set and releases
// every handle. The engine is unusable afterwards.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	for i := range e.frags {
		f := &e.frags[i]
		if f.Alive {
			f.Alive = false
			e.draw.RemoveDrawable(f.handle)
		}
		e.draw.Release(f.handle)
		f.handle = 0
	}
	e.live = 0
	e.phase = PhaseIdle
	e.disposed = true
}

func (e *Engine) Phase() Phase        { return e.phase }
func (e *Engine) Origin() math3d.Vec3 { return e.origin }
func (e *Engine) ElapsedTicks() int   { return e.elapsedTicks }
func (e *Engine) Elapsed() float64    { return e.elapsed }
func (e *Engine) Live() int           { return e.live }
func (e *Engine) Disposed() bool      { return e.disposed }
func (e *Engine) Config() Config      { return e.cfg }

// Fragments exposes the fragment buffer. Callers must not modify it.
func (e *Engine) Fragments() []Fragment { return e.frags }
