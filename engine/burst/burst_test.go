package burst

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

const dt = 1.0 / 60

func newEngine(t *testing.T, cfg Config, seed int64) (*Engine, *scene.Graph, *[]Signal) {
	t.Helper()
	g := scene.NewGraph()
	e, err := New(cfg, g, math3d.NewRand(seed), zerolog.Nop())
	require.NoError(t, err)
	var signals []Signal
	e.OnComplete = func(s Signal) { signals = append(signals, s) }
	return e, g, &signals
}

// run ticks until the engine goes idle and returns the number of ticks taken
func run(t *testing.T, e *Engine) int {
	t.Helper()
	limit := e.Config().MaxTicks()
	for n := 1; n <= limit; n++ {
		if !e.Tick(dt) {
			return n
		}
	}
	t.Fatalf("burst still active after %d ticks", limit)
	return 0
}

func TestNewAllocatesWithoutDrawing(t *testing.T) {
	e, g, _ := newEngine(t, LetterShards(), 1)
	assert.Len(t, e.Fragments(), 30)
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, 0, g.Len())
	assert.True(t, e.CanTrigger())
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := LetterShards()
	cfg.Fragments = 0
	cfg.ReformRate = 0
	_, err := New(cfg, scene.NewGraph(), math3d.NewRand(1), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fragments")
	assert.Contains(t, err.Error(), "reform rate")

	_, err = New(LetterShards(), nil, math3d.NewRand(1), zerolog.Nop())
	assert.Error(t, err)
}

func TestLetterBurstReformsAtOrigin(t *testing.T) {
	e, g, signals := newEngine(t, LetterShards(), 7)
	origin := math3d.V3(-4, 1, 0)

	require.True(t, e.Trigger(origin))
	assert.Equal(t, PhaseExploding, e.Phase())
	assert.Equal(t, 30, g.Len())
	assert.Equal(t, 30, e.Live())
	for _, f := range e.Fragments() {
		assert.True(t, f.Alive)
		assert.Equal(t, origin, f.OriginalPosition)
		assert.InDelta(t, 0.2, f.Velocity.Len(), 1e-9)
	}

	ticks := run(t, e)
	assert.GreaterOrEqual(t, ticks, 120)
	assert.LessOrEqual(t, ticks, LetterShards().MaxTicks())

	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, []Signal{SignalReformComplete}, *signals)
	assert.Equal(t, 0, g.Len())
	assert.Len(t, e.Fragments(), 30)
	for _, f := range e.Fragments() {
		assert.False(t, f.Alive)
		assert.LessOrEqual(t, f.Position.DistanceTo(f.OriginalPosition), 0.01)
	}

	// a further tick is a no-op
	assert.False(t, e.Tick(dt))
	assert.Len(t, *signals, 1)
}

func TestReformWithoutGravityKeepsEveryFragment(t *testing.T) {
	cfg := LetterShards()
	cfg.Gravity = 0
	cfg.DwellTicks = 30
	e, g, signals := newEngine(t, cfg, 3)

	require.True(t, e.Trigger(math3d.V3(0, 0, 0)))
	for i := 0; i < 30; i++ {
		require.True(t, e.Tick(dt))
	}
	assert.Equal(t, PhaseReforming, e.Phase())
	assert.Equal(t, 30, e.Live(), "nothing reaches the floor without gravity")
	assert.Equal(t, 30, g.Len())

	run(t, e)
	assert.Equal(t, []Signal{SignalReformComplete}, *signals)
	for _, f := range e.Fragments() {
		assert.Equal(t, math3d.Vec3{}, f.Position)
		assert.Zero(t, f.Scale)
	}
}

func TestTriggerIsDroppedWhileActive(t *testing.T) {
	e, g, signals := newEngine(t, LetterShards(), 11)
	require.True(t, e.Trigger(math3d.V3(1, 0, 0)))
	e.Tick(dt)

	assert.False(t, e.CanTrigger())
	before := append([]Fragment(nil), e.Fragments()...)
	assert.False(t, e.Trigger(math3d.V3(5, 5, 5)))
	assert.Equal(t, math3d.V3(1, 0, 0), e.Origin())
	assert.Equal(t, before, e.Fragments(), "a dropped trigger leaves every fragment untouched")
	assert.Len(t, e.Fragments(), 30)
	assert.LessOrEqual(t, g.Len(), 30)

	run(t, e)
	assert.Len(t, *signals, 1)

	// reusable once idle
	require.True(t, e.Trigger(math3d.V3(2, 0, 0)))
	assert.Equal(t, 30, g.Len())
	assert.Len(t, e.Fragments(), 30)
}

func TestAllCulledStillHonoursDwell(t *testing.T) {
	cfg := LetterShards()
	cfg.Floor = 100 // every fragment starts below the floor
	e, g, signals := newEngine(t, cfg, 5)
	require.True(t, e.Trigger(math3d.V3(0, 0, 0)))

	for i := 1; i < cfg.DwellTicks; i++ {
		require.True(t, e.Tick(dt), "tick %d", i)
		assert.Equal(t, 0, g.Len())
		assert.Equal(t, PhaseExploding, e.Phase())
	}
	require.True(t, e.Tick(dt), "the dwell tick only starts the reform")
	assert.Equal(t, PhaseReforming, e.Phase())
	assert.Empty(t, *signals)

	assert.False(t, e.Tick(dt))
	assert.Equal(t, cfg.DwellTicks+1, e.ElapsedTicks())
	assert.Equal(t, []Signal{SignalReformComplete}, *signals)
	for _, f := range e.Fragments() {
		assert.Equal(t, f.OriginalPosition, f.Position)
	}
}

func TestShipSparksFadeInSixtyTicks(t *testing.T) {
	e, g, signals := newEngine(t, ShipSparks(), 9)
	require.True(t, e.Trigger(math3d.V3(3, -2, 1)))
	assert.Equal(t, 50, g.Len())
	for _, f := range e.Fragments() {
		assert.LessOrEqual(t, f.Velocity.MaxAbs(), 0.15)
		assert.Equal(t, 1.0, f.Color.B)
		assert.GreaterOrEqual(t, f.Color.R, 0.5)
	}

	for i := 1; i < 60; i++ {
		require.True(t, e.Tick(dt))
		want := 1 - float64(i)/60
		for _, f := range e.Fragments() {
			assert.InDelta(t, want, f.Alpha, 1e-9)
		}
	}
	assert.False(t, e.Tick(dt))
	assert.Equal(t, 60, e.ElapsedTicks())
	assert.InDelta(t, 1.0, e.Elapsed(), 1e-9)
	assert.Equal(t, []Signal{SignalBurstComplete}, *signals)
	assert.Equal(t, 0, g.Len())

	assert.False(t, e.Tick(dt))
	assert.Len(t, *signals, 1)
}

func TestFragmentsDoNotMoveWithoutTicks(t *testing.T) {
	e, _, _ := newEngine(t, ShipSparks(), 2)
	origin := math3d.V3(1, 1, 1)
	require.True(t, e.Trigger(origin))
	for _, f := range e.Fragments() {
		assert.Equal(t, origin, f.Position)
	}
}

func TestDisposeDeregistersEverything(t *testing.T) {
	e, g, signals := newEngine(t, LetterShards(), 4)
	require.True(t, e.Trigger(math3d.V3(0, 2, 0)))
	for i := 0; i < 10; i++ {
		e.Tick(dt)
	}
	e.Dispose()
	e.Dispose()

	assert.Equal(t, 0, g.Len())
	assert.True(t, e.Disposed())
	assert.False(t, e.CanTrigger())
	assert.False(t, e.Trigger(math3d.V3(0, 0, 0)))
	assert.Empty(t, *signals)

	if Strict {
		assert.Panics(t, func() { e.Tick(dt) })
		return
	}
	assert.False(t, e.Tick(dt))
}

func TestMaxTicksBoundsVariants(t *testing.T) {
	assert.Equal(t, 60, ShipSparks().MaxTicks())
	letters := LetterShards()
	assert.Greater(t, letters.MaxTicks(), letters.DwellTicks)

	letters.ReformRate = 1
	assert.Equal(t, letters.DwellTicks+1, letters.MaxTicks())
}
