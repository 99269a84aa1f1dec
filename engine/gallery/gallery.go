// Package gallery assembles the shooting-gallery scene: the hovering word,
// the ships, their burst engines and the systems that drive them. It turns
// clicks into hits and hits into score.
package gallery

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/actor"
	"github.com/tzynski/gallery/engine/burst"
	"github.com/tzynski/gallery/engine/config"
	"github.com/tzynski/gallery/engine/core"
	"github.com/tzynski/gallery/engine/input"
	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/metrics"
	"github.com/tzynski/gallery/engine/render3d"
	"github.com/tzynski/gallery/engine/scene"
	"github.com/tzynski/gallery/engine/score"
	"github.com/tzynski/gallery/engine/systems"
)

// Letter and ship presentation
var (
	LetterColor = math3d.Hex(0x00ffcc)
	ShipColor   = math3d.Color3{R: 1, G: 1, B: 1}
)

const (
	ShipScale    = 0.4
	ShipSpin     = 0.01
	ShipLimit    = 40
	HoverFreq    = 1.5
	HoverAmp     = 0.3
	HoverTilt    = 0.1
	SphereRadius = 30
	SphereSpeed  = 0.15
)

// Picker finds the drawable under a screen point. *render3d.Picker
// satisfies it.
type Picker interface {
	Pick(sx, sy float64) (render3d.Hit, bool)
}

// Overlay gets the first look at every click. *ui.HUD satisfies it.
type Overlay interface {
	HandleClick(x, y int) bool
}

// Options wires a Scene to its collaborators
type Options struct {
	Scene    config.SceneConfig
	TickRate float64
	Seed     int64 // 0 seeds from the clock

	Graph   *scene.Graph // created when nil
	Store   score.Store  // high score kept in memory when nil
	Metrics *metrics.Metrics
	Log     zerolog.Logger
}

// Scene owns the loop, the world and every actor controller
type Scene struct {
	Loop  *core.GameLoop
	Graph *scene.Graph
	Board *score.Board

	actors   map[core.EntityID]*actor.Controller
	byHandle map[scene.Handle]core.EntityID
	letters  []core.EntityID
	ships    []core.EntityID
	hooks    []func()

	metrics  *metrics.Metrics
	log      zerolog.Logger
	disposed bool
}

// New builds the scene and starts the loop
func New(opts Options) (*Scene, error) {
	if opts.TickRate <= 0 {
		return nil, fmt.Errorf("gallery: tick rate must be positive, got %v", opts.TickRate)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := math3d.NewRand(seed)

	loop := core.NewGameLoop(opts.TickRate)
	g := opts.Graph
	if g == nil {
		g = scene.NewGraph()
	}
	log := opts.Log.With().Str("component", "gallery").Logger()
	board := score.NewBoard(opts.Store, loop.Events, opts.Log)

	s := &Scene{
		Loop:     loop,
		Graph:    g,
		Board:    board,
		actors:   make(map[core.EntityID]*actor.Controller),
		byHandle: make(map[scene.Handle]core.EntityID),
		metrics:  opts.Metrics,
		log:      log,
	}

	w := loop.World
	w.AddSystem(&systems.LifecycleSystem{})
	w.AddSystem(&systems.FlightSystem{})
	w.AddSystem(&systems.HoverSystem{})
	w.AddSystem(&systems.SyncSystem{Draw: g})
	w.AddSystem(&hookSystem{scene: s})

	if err := s.spawnWord(opts.Scene, rng); err != nil {
		s.Dispose()
		return nil, err
	}
	if err := s.spawnShips(opts.Scene, rng); err != nil {
		s.Dispose()
		return nil, err
	}
	s.subscribe()

	loop.Play()
	log.Info().
		Int("letters", len(s.letters)).
		Int("ships", len(s.ships)).
		Int64("seed", seed).
		Msg("scene ready")
	return s, nil
}

func (s *Scene) spawnWord(cfg config.SceneConfig, rng math3d.Rand) error {
	runes := []rune(cfg.Word)
	n := float64(len(runes))
	for i, r := range runes {
		if r == ' ' {
			continue
		}
		home := math3d.V3(float64(i)*cfg.LetterSpacing-n*cfg.LetterSpacing/2, 0, 0)
		id := s.Loop.World.Spawn()
		xf := &core.Transform{
			Pos:    home,
			Scale:  1,
			Color:  LetterColor,
			Handle: s.Graph.Allocate(scene.KindLetter),
		}
		s.Graph.SetGlyph(xf.Handle, r)
		s.Loop.World.Attach(id, &core.Hover{
			Index:     i,
			Home:      home,
			Frequency: HoverFreq,
			Amplitude: HoverAmp,
			Tilt:      HoverTilt,
		})
		opts := actor.Options{ID: id, Class: actor.ClassLetter, Policy: actor.ReformInPlace, Home: home}
		if err := s.attach(opts, xf, nil, cfg.FragmentCount, rng); err != nil {
			return fmt.Errorf("letter %q: %w", r, err)
		}
		s.letters = append(s.letters, id)
	}
	return nil
}

func (s *Scene) spawnShips(cfg config.SceneConfig, rng math3d.Rand) error {
	var reloc actor.Relocator = actor.DefaultEdgeEntry()
	if cfg.Relocation == "sphere" {
		reloc = actor.SphereEntry{Radius: SphereRadius, Speed: SphereSpeed}
	}
	for i := 0; i < cfg.ShipCount; i++ {
		id := s.Loop.World.Spawn()
		xf := &core.Transform{
			Scale:  ShipScale,
			Color:  ShipColor,
			Handle: s.Graph.Allocate(scene.KindShip),
		}
		mov := &core.Motion{
			Spin: math3d.V3(
				math3d.Uniform(rng, -ShipSpin, ShipSpin),
				math3d.Uniform(rng, -ShipSpin, ShipSpin),
				math3d.Uniform(rng, -ShipSpin, ShipSpin),
			),
			Limit: ShipLimit,
		}
		s.Loop.World.Attach(id, mov)
		opts := actor.Options{
			ID:        id,
			Class:     actor.ClassShip,
			Policy:    actor.RelocateRandom,
			Relocator: reloc,
		}
		if err := s.attach(opts, xf, mov, cfg.SparkCount, rng); err != nil {
			return fmt.Errorf("ship %d: %w", i, err)
		}
		s.ships = append(s.ships, id)
	}
	return nil
}

// attach builds the burst engine and controller for an already spawned
// entity and registers it with the world
func (s *Scene) attach(opts actor.Options, xf *core.Transform, mov *core.Motion, fragments int, rng math3d.Rand) error {
	cfg := opts.Class.Burst()
	if fragments > 0 {
		cfg.Fragments = fragments
	}
	engine, err := burst.New(cfg, s.Graph, rng, s.log)
	if err != nil {
		return err
	}
	opts.Events = s.Loop.Events
	ctrl, err := actor.New(opts, xf, mov, s.Graph, engine, rng, s.log)
	if err != nil {
		engine.Dispose()
		return err
	}
	w := s.Loop.World
	w.Attach(opts.ID, xf)
	w.Attach(opts.ID, &core.Destructible{Actor: ctrl, Class: opts.Class.String(), Points: opts.Class.Points()})
	s.actors[opts.ID] = ctrl
	s.byHandle[xf.Handle] = opts.ID
	return nil
}

func (s *Scene) subscribe() {
	ev := s.Loop.Events
	ev.On(core.EvtActorHit, func(e core.Event) {
		hit := e.Payload.(core.ActorHit)
		s.Destroy(hit.ActorID)
	})
	ev.On(core.EvtRespawned, func(e core.Event) {
		s.metrics.RecordRespawn(e.Payload.(core.ActorEvent).Class)
	})
	ev.On(core.EvtReformComplete, func(e core.Event) {
		s.metrics.RecordRespawn(e.Payload.(core.ActorEvent).Class)
	})
	ev.On(core.EvtTrackChanged, func(core.Event) {
		s.metrics.RecordTrackChange()
	})
}

// Destroy shoots the actor. Points are awarded only when the controller
// accepts; unknown ids are ignored.
func (s *Scene) Destroy(id core.EntityID) bool {
	ctrl, ok := s.actors[id]
	if !ok || s.disposed {
		return false
	}
	accepted := ctrl.Destroy()
	s.metrics.RecordDestroy(ctrl.Class().String(), accepted)
	if !accepted {
		return false
	}
	s.Board.Add(ctrl.Class().Points())
	s.metrics.RecordScore(s.Board.Score(), s.Board.High())
	return true
}

// Shoot picks at screen point (x, y) and queues a hit for whatever is
// there. The hit lands when the loop next dispatches events.
func (s *Scene) Shoot(p Picker, x, y float64) bool {
	if p == nil || s.disposed {
		return false
	}
	hit, ok := p.Pick(x, y)
	if !ok {
		return false
	}
	id, ok := s.byHandle[hit.Handle]
	if !ok {
		return false
	}
	s.log.Debug().Uint64("actor", uint64(id)).Stringer("kind", hit.Kind).Msg("hit")
	s.Loop.Events.Emit(core.Event{
		Type:    core.EvtActorHit,
		Payload: core.ActorHit{ActorID: id, HitPoint: hit.Point},
	})
	return true
}

// Bind routes clicks from d: the overlay first, the picker for the rest.
// overlay may be nil.
func (s *Scene) Bind(d *input.Dispatcher, p Picker, overlay Overlay) func() {
	return d.Subscribe(input.Click, func(e input.Event) {
		if overlay != nil && overlay.HandleClick(e.X, e.Y) {
			return
		}
		s.Shoot(p, float64(e.X), float64(e.Y))
	})
}

// OnTick runs fn once per fixed tick, after the systems
func (s *Scene) OnTick(fn func()) {
	s.hooks = append(s.hooks, fn)
}

// Advance feeds frameTime seconds into the loop and returns the ticks run
func (s *Scene) Advance(frameTime float64) int {
	if s.disposed {
		return 0
	}
	return s.Loop.Advance(frameTime)
}

// Step runs exactly one tick
func (s *Scene) Step() {
	if s.disposed {
		return
	}
	s.Loop.Step()
}

// Actor returns the controller for id, or nil
func (s *Scene) Actor(id core.EntityID) *actor.Controller { return s.actors[id] }

// ActorAt returns the entity owning drawable h
func (s *Scene) ActorAt(h scene.Handle) (core.EntityID, bool) {
	id, ok := s.byHandle[h]
	return id, ok
}

// Letters are the letter entities in word order
func (s *Scene) Letters() []core.EntityID { return s.letters }

// Ships are the ship entities in spawn order
func (s *Scene) Ships() []core.EntityID { return s.ships }

// Transform returns the live transform of id, or nil
func (s *Scene) Transform(id core.EntityID) *core.Transform {
	if c, ok := s.Loop.World.Get(id, core.CompTransform).(*core.Transform); ok {
		return c
	}
	return nil
}

// Dispose tears down every controller and closes the score store. Safe to
// call twice.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for id, ctrl := range s.actors {
		ctrl.Dispose()
		s.Loop.World.Destroy(id)
	}
	s.Loop.Stop()
	if err := s.Board.Close(); err != nil {
		s.log.Warn().Err(err).Msg("close score store")
	}
	s.log.Info().Int("actors", len(s.actors)).Msg("scene disposed")
}

// hookSystem runs the per-tick hooks after everything else has moved
type hookSystem struct {
	scene *Scene
}

func (h *hookSystem) Priority() int { return 95 }

func (h *hookSystem) Update(*core.World, float64) {
	h.scene.Board.Tick()
	for _, fn := range h.scene.hooks {
		fn()
	}
}
