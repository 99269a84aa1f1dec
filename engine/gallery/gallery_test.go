package gallery

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzynski/gallery/engine/actor"
	"github.com/tzynski/gallery/engine/config"
	"github.com/tzynski/gallery/engine/core"
	"github.com/tzynski/gallery/engine/input"
	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/metrics"
	"github.com/tzynski/gallery/engine/render3d"
	"github.com/tzynski/gallery/engine/scene"
)

func sceneConfig() config.SceneConfig {
	return config.SceneConfig{
		Word:          "GO GO",
		LetterSpacing: 2.5,
		ShipCount:     3,
		FragmentCount: 12,
		SparkCount:    8,
		Relocation:    "edge",
	}
}

func newScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New(Options{
		Scene:    sceneConfig(),
		TickRate: 60,
		Seed:     42,
		Metrics:  metrics.New(),
		Log:      zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(s.Dispose)
	return s
}

type fakePicker struct {
	hit render3d.Hit
	ok  bool
}

func (p fakePicker) Pick(float64, float64) (render3d.Hit, bool) { return p.hit, p.ok }

type fakeOverlay struct {
	consume bool
	clicks  int
}

func (o *fakeOverlay) HandleClick(int, int) bool {
	o.clicks++
	return o.consume
}

func TestNewRejectsBadTickRate(t *testing.T) {
	_, err := New(Options{Scene: sceneConfig(), Log: zerolog.Nop()})
	assert.Error(t, err)
}

func TestSceneLayout(t *testing.T) {
	s := newScene(t)

	require.Len(t, s.Letters(), 4, "the space gets no letter")
	require.Len(t, s.Ships(), 3)
	assert.Equal(t, 7, s.Graph.Len())

	wantX := []float64{-6.25, -3.75, 1.25, 3.75}
	for i, id := range s.Letters() {
		ctrl := s.Actor(id)
		require.NotNil(t, ctrl)
		assert.Equal(t, actor.ClassLetter, ctrl.Class())
		assert.InDelta(t, wantX[i], ctrl.Home().X, 1e-12)
		assert.Equal(t, 12, ctrl.Burst().Config().Fragments)
		assert.True(t, ctrl.Alive())
		assert.True(t, s.Graph.Visible(s.Transform(id).Handle))
	}
	for _, id := range s.Ships() {
		ctrl := s.Actor(id)
		assert.Equal(t, actor.ClassShip, ctrl.Class())
		assert.Equal(t, 8, ctrl.Burst().Config().Fragments)
		xf := s.Transform(id)
		assert.InDelta(t, 30, xf.Pos.MaxAbs(), 1e-9, "ships start on an edge")
		assert.Equal(t, ShipScale, xf.Scale)
		got, ok := s.ActorAt(xf.Handle)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	}
}

func TestSphereRelocation(t *testing.T) {
	cfg := sceneConfig()
	cfg.Relocation = "sphere"
	s, err := New(Options{Scene: cfg, TickRate: 60, Seed: 3, Log: zerolog.Nop()})
	require.NoError(t, err)
	defer s.Dispose()

	for _, id := range s.Ships() {
		assert.InDelta(t, SphereRadius, s.Transform(id).Pos.Len(), 1e-9)
	}
}

func TestDestroyScoresOnlyWhenAccepted(t *testing.T) {
	s := newScene(t)
	letter, ship := s.Letters()[0], s.Ships()[0]

	assert.True(t, s.Destroy(letter))
	assert.Equal(t, 10, s.Board.Score())
	assert.False(t, s.Destroy(letter), "already bursting")
	assert.Equal(t, 10, s.Board.Score())

	assert.True(t, s.Destroy(ship))
	assert.Equal(t, 110, s.Board.Score())
	assert.Equal(t, 110, s.Board.High())

	assert.False(t, s.Destroy(core.EntityID(9999)))
	assert.Equal(t, 110, s.Board.Score())
}

func TestLetterReformsAndShipRespawns(t *testing.T) {
	s := newScene(t)
	letter, ship := s.Letters()[1], s.Ships()[1]

	var reformed, respawned int
	s.Loop.Events.On(core.EvtReformComplete, func(core.Event) { reformed++ })
	s.Loop.Events.On(core.EvtRespawned, func(core.Event) { respawned++ })

	require.True(t, s.Destroy(letter))
	require.True(t, s.Destroy(ship))
	lh := s.Transform(letter).Handle
	assert.False(t, s.Graph.Visible(lh))

	limit := s.Actor(letter).Burst().Config().MaxTicks() + actor.DefaultRespawnTicks + 10
	for i := 0; i < limit && (reformed == 0 || respawned == 0); i++ {
		s.Step()
	}
	assert.Equal(t, 1, reformed)
	assert.Equal(t, 1, respawned)
	assert.True(t, s.Actor(letter).Alive())
	assert.True(t, s.Actor(ship).Alive())
	assert.True(t, s.Graph.Visible(lh))
}

func TestShootQueuesHitUntilDispatch(t *testing.T) {
	s := newScene(t)
	glyphs, err := render3d.NewGlyphs(2.5, 0.8)
	require.NoError(t, err)
	defer glyphs.Close()

	cam := render3d.NewCamera(800, 600)
	picker := &render3d.Picker{Camera: cam, Graph: s.Graph, Glyphs: glyphs}

	letter := s.Letters()[2]
	sx, sy, _, ok := cam.Project(s.Transform(letter).Pos)
	require.True(t, ok)

	require.True(t, s.Shoot(picker, sx, sy))
	assert.Equal(t, 1, s.Loop.Events.Pending())
	assert.True(t, s.Actor(letter).Alive(), "hits land on dispatch")

	s.Step()
	assert.False(t, s.Actor(letter).Alive())
	assert.Equal(t, 10, s.Board.Score())

	assert.False(t, s.Shoot(picker, 1, 1), "empty sky")
	assert.False(t, s.Shoot(nil, sx, sy))
}

func TestBindRoutesOverlayFirst(t *testing.T) {
	s := newScene(t)
	ship := s.Ships()[0]
	p := fakePicker{hit: render3d.Hit{Handle: s.Transform(ship).Handle, Kind: scene.KindShip}, ok: true}
	overlay := &fakeOverlay{consume: true}

	d := input.NewDispatcher()
	off := s.Bind(d, p, overlay)

	d.Dispatch(input.Event{Kind: input.Click, X: 10, Y: 10})
	assert.Equal(t, 1, overlay.clicks)
	assert.Zero(t, s.Loop.Events.Pending(), "overlay swallowed the click")

	overlay.consume = false
	d.Dispatch(input.Event{Kind: input.Click, X: 10, Y: 10})
	assert.Equal(t, 1, s.Loop.Events.Pending())
	s.Step()
	assert.Equal(t, 100, s.Board.Score())

	off()
	assert.Zero(t, d.Subscribers(input.Click))
}

func TestOnTickRunsAfterSystems(t *testing.T) {
	s := newScene(t)
	var ticks int
	s.OnTick(func() { ticks++ })

	s.Step()
	s.Step()
	assert.Equal(t, 2, ticks)

	assert.Equal(t, 3, s.Advance(3.0/60+1e-9))
	assert.Equal(t, 5, ticks)
}

func TestBoardPulseDecaysPerTick(t *testing.T) {
	s := newScene(t)
	require.True(t, s.Destroy(s.Letters()[0]))
	assert.True(t, s.Board.Pulsing())
	for i := 0; i < 18; i++ {
		s.Step()
	}
	assert.False(t, s.Board.Pulsing())
}

func TestDispose(t *testing.T) {
	s := newScene(t)
	ids := append(append([]core.EntityID{}, s.Letters()...), s.Ships()...)

	s.Dispose()
	s.Dispose()
	for _, id := range ids {
		assert.True(t, s.Actor(id).Disposed())
	}
	assert.Zero(t, s.Graph.Len())
	assert.False(t, s.Destroy(ids[0]))
	assert.Zero(t, s.Advance(1))
	assert.False(t, s.Shoot(fakePicker{ok: true}, 0, 0))
}

func TestHoverMovesLettersOffHome(t *testing.T) {
	s := newScene(t)
	id := s.Letters()[0]
	home := s.Actor(id).Home()
	for i := 0; i < 10; i++ {
		s.Step()
	}
	pos := s.Transform(id).Pos
	assert.InDelta(t, home.X, pos.X, 1e-12)
	assert.NotEqual(t, math3d.Vec3{}, pos.Sub(home))
}
