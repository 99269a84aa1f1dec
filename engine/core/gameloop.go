package core

import "time"

// GameState represents the overall scene state
type GameState uint8

const (
	StateLoading GameState = iota
	StatePlaying
	StatePaused
	StateStopped
)

// maxFrameTime caps one frame's catch-up to avoid the spiral of death
const maxFrameTime = 0.25

// GameLoop runs the simulation at a fixed timestep. Every tick runs the
// world's systems and then delivers the events they queued.
type GameLoop struct {
	World       *World
	Events      *EventBus
	State       GameState
	TickRate    float64 // fixed ticks per second
	Now         func() time.Time
	accumulator float64
	lastTime    time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64) *GameLoop {
	return &GameLoop{
		World:    NewWorld(tickRate),
		Events:   NewEventBus(),
		TickRate: tickRate,
		Now:      time.Now,
		lastTime: time.Now(),
	}
}

// Update should be called every render frame. It measures the wall time
// since the previous call and runs as many fixed ticks as fit.
// Returns the interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	gl.Advance(frameTime)
	return gl.Alpha()
}

// Advance feeds frameTime seconds into the accumulator and returns the
// number of ticks run.
func (gl *GameLoop) Advance(frameTime float64) int {
	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}
	if frameTime < 0 {
		frameTime = 0
	}
	dt := gl.Dt()
	gl.accumulator += frameTime

	ticks := 0
	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			gl.Step()
			ticks++
		}
		gl.accumulator -= dt
	}
	return ticks
}

// Step runs exactly one tick regardless of the accumulator
func (gl *GameLoop) Step() {
	gl.World.Tick(gl.Dt())
	gl.Events.Dispatch()
}

// Dt is the fixed tick length in seconds
func (gl *GameLoop) Dt() float64 { return 1.0 / gl.TickRate }

// Alpha is the fraction of a tick left in the accumulator
func (gl *GameLoop) Alpha() float64 { return gl.accumulator / gl.Dt() }

// Play starts or resumes the simulation
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.Now()
}

// Pause pauses the simulation
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// Stop ends the simulation; Advance becomes a no-op
func (gl *GameLoop) Stop() {
	gl.State = StateStopped
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
