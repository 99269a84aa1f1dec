// Package actor wraps a destructible drawable in a lifecycle driven by its
// burst engine: shot, burst, then reform or respawn.
package actor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/burst"
	"github.com/tzynski/gallery/engine/core"
	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

// State of an actor. The drawable is visible exactly when the state is
// StateAlive.
type State uint8

const (
	StateAlive State = iota
	StateBursting
	StateReforming
	StateRespawning
)

func (s State) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateBursting:
		return "bursting"
	case StateReforming:
		return "reforming"
	case StateRespawning:
		return "respawning"
	}
	return "unknown"
}

// Options configures a Controller
type Options struct {
	ID     core.EntityID
	Class  Class
	Policy RespawnPolicy
	Home   math3d.Vec3

	// RespawnTicks counts from Destroy; RelocateRandom only
	RespawnTicks int
	Relocator    Relocator

	Events *core.EventBus
}

// Controller is one destructible actor. It owns its burst engine.
type Controller struct {
	id     core.EntityID
	class  Class
	policy RespawnPolicy
	home   math3d.Vec3

	state    State
	xf       *core.Transform
	motion   *core.Motion
	draw     scene.Drawables
	burst    *burst.Engine
	reloc    Relocator
	rng      math3d.Rand
	events   *core.EventBus
	log      zerolog.Logger
	disposed bool

	respawnTicks int
	sinceDestroy int
	destroys     int
}

// New builds a live controller and puts its drawable in the drawn set.
// xf.Handle must already be allocated on draw. motion may be nil for
// actors that never relocate.
func New(opts Options, xf *core.Transform, motion *core.Motion, draw scene.Drawables,
	engine *burst.Engine, rng math3d.Rand, log zerolog.Logger) (*Controller, error) {
	if xf == nil || draw == nil || engine == nil || rng == nil {
		return nil, errors.New("actor: transform, drawables, burst engine and rng are required")
	}
	if opts.Policy == RelocateRandom {
		if motion == nil {
			return nil, fmt.Errorf("actor %d: relocating actors need motion", opts.ID)
		}
		if opts.Relocator == nil {
			opts.Relocator = DefaultEdgeEntry()
		}
		if opts.RespawnTicks <= 0 {
			opts.RespawnTicks = DefaultRespawnTicks
		}
	}

	c := &Controller{
		id:           opts.ID,
		class:        opts.Class,
		policy:       opts.Policy,
		home:         opts.Home,
		xf:           xf,
		motion:       motion,
		draw:         draw,
		burst:        engine,
		reloc:        opts.Relocator,
		rng:          rng,
		events:       opts.Events,
		respawnTicks: opts.RespawnTicks,
		log: log.With().
			Uint64("actor", uint64(opts.ID)).
			Stringer("class", opts.Class).
			Logger(),
	}
	engine.OnComplete = c.onBurst

	draw.AddDrawable(xf.Handle)
	c.Reset()
	return c, nil
}

// Destroy starts the actor's burst at its current position. It is accepted
// only while the actor is alive; the return value says whether it was.
func (c *Controller) Destroy() bool {
	if c.disposed || c.state != StateAlive {
		c.log.Debug().Stringer("state", c.state).Msg("destroy ignored")
		return false
	}
	origin := c.draw.CurrentPosition(c.xf.Handle)
	if !c.burst.Trigger(origin) {
		c.log.Warn().Stringer("phase", c.burst.Phase()).Msg("burst engine busy while alive")
		return false
	}
	c.state = StateBursting
	c.sinceDestroy = 0
	c.destroys++
	c.draw.SetVisible(c.xf.Handle, false)
	c.emit(core.EvtActorDestroyed, origin)
	c.log.Debug().Interface("origin", origin).Msg("destroyed")
	return true
}

// Tick advances the burst and any pending reform or respawn
func (c *Controller) Tick(dt float64) {
	if c.disposed {
		if burst.Strict {
			panic("actor: tick after dispose")
		}
		c.log.Warn().Msg("tick after dispose")
		return
	}
	if c.state == StateAlive {
		return
	}
	c.sinceDestroy++

	if c.burst.Phase() != burst.PhaseIdle {
		c.burst.Tick(dt)
	}
	if c.state == StateBursting && c.burst.Phase() == burst.PhaseReforming {
		c.state = StateReforming
	}
	if c.state == StateRespawning && c.sinceDestroy >= c.respawnTicks {
		c.respawn()
	}
}

func (c *Controller) onBurst(s burst.Signal) {
	switch {
	case s == burst.SignalReformComplete || c.policy == ReformInPlace:
		c.emit(core.EvtReformComplete, c.home)
		c.xf.Pos = c.home
		c.xf.Rot = math3d.Vec3{}
		c.revive()
	default:
		c.state = StateRespawning
		c.emit(core.EvtBurstComplete, c.burst.Origin())
	}
}

func (c *Controller) respawn() {
	c.relocate()
	c.revive()
	c.emit(core.EvtRespawned, c.xf.Pos)
}

func (c *Controller) relocate() {
	pose := c.reloc.Relocate(c.rng)
	c.xf.Pos = pose.Pos
	c.motion.Velocity = pose.Velocity
}

func (c *Controller) revive() {
	c.state = StateAlive
	c.draw.Place(c.xf.Handle, c.xf.Placement())
	c.draw.SetVisible(c.xf.Handle, true)
	c.log.Debug().Interface("pos", c.xf.Pos).Int("ticks", c.sinceDestroy).Msg("alive")
}

// Reset moves a live actor to a fresh starting pose: home for actors that
// reform, a new entry point for actors that relocate.
func (c *Controller) Reset() {
	if c.disposed || c.state != StateAlive {
		return
	}
	if c.policy == RelocateRandom {
		c.relocate()
	} else {
		c.xf.Pos = c.home
		c.xf.Rot = math3d.Vec3{}
	}
	c.revive()
}

// Dispose tears down the burst engine and the actor's drawable
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.burst.Dispose()
	c.draw.RemoveDrawable(c.xf.Handle)
	c.draw.Release(c.xf.Handle)
	c.disposed = true
}

func (c *Controller) emit(t core.EventType, pos math3d.Vec3) {
	c.events.Emit(core.Event{
		Type:    t,
		Payload: core.ActorEvent{ActorID: c.id, Class: c.class.String(), Pos: pos},
	})
}

func (c *Controller) Alive() bool           { return !c.disposed && c.state == StateAlive }
func (c *Controller) State() State          { return c.state }
func (c *Controller) ID() core.EntityID     { return c.id }
func (c *Controller) Class() Class          { return c.class }
func (c *Controller) Policy() RespawnPolicy { return c.policy }
func (c *Controller) Home() math3d.Vec3     { return c.home }
func (c *Controller) Burst() *burst.Engine  { return c.burst }
func (c *Controller) Disposed() bool        { return c.disposed }

// Destroys counts accepted Destroy calls
func (c *Controller) Destroys() int { return c.destroys }
