package ui

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzynski/gallery/engine/config"
	"github.com/tzynski/gallery/engine/input"
)

type fakeMusic struct {
	playing bool
	calls   []string
}

func (m *fakeMusic) Play()         { m.playing = true; m.calls = append(m.calls, "play") }
func (m *fakeMusic) Pause()        { m.playing = false; m.calls = append(m.calls, "pause") }
func (m *fakeMusic) Toggle()       { m.playing = !m.playing; m.calls = append(m.calls, "toggle") }
func (m *fakeMusic) Next()         { m.calls = append(m.calls, "next") }
func (m *fakeMusic) Previous()     { m.calls = append(m.calls, "previous") }
func (m *fakeMusic) Playing() bool { return m.playing }
func (m *fakeMusic) Title() string { return "Initializing..." }

type fakeScores struct{ score, high, pulse float64 }

func (s fakeScores) Score() int     { return int(s.score) }
func (s fakeScores) High() int      { return int(s.high) }
func (s fakeScores) Pulse() float64 { return s.pulse }

func center(r Rect) (int, int) { return r.X + r.W/2, r.Y + r.H/2 }

func TestMeter(t *testing.T) {
	assert.Equal(t, 25.0, MeterHeight(0, 0))
	assert.Equal(t, 39.9, MeterHeight(2, 0))
	for i := 0; i < MeterBars; i++ {
		for p := 0; p < ProgressSteps; p += 7 {
			h := MeterHeight(i, p)
			assert.GreaterOrEqual(t, h, 10.0)
			assert.LessOrEqual(t, h, 40.0)
		}
	}
	assert.False(t, MeterLit(0, 0))
	assert.True(t, MeterLit(19, 50))
	assert.False(t, MeterLit(20, 50))
}

func TestTransportProgress(t *testing.T) {
	tr := NewTransport(&fakeMusic{}, 60, 800, 600)
	for i := 0; i < 59; i++ {
		tr.Tick()
	}
	assert.Equal(t, 0, tr.Progress())
	tr.Tick()
	assert.Equal(t, 1, tr.Progress())
	for i := 0; i < 99*60; i++ {
		tr.Tick()
	}
	assert.Equal(t, 0, tr.Progress(), "wraps after 100 steps")
}

func TestTransportButtons(t *testing.T) {
	m := &fakeMusic{}
	tr := NewTransport(m, 60, 800, 600)
	b := tr.Buttons()

	for _, r := range []Rect{b[0], b[1], b[2], b[1]} {
		x, y := center(r)
		assert.True(t, tr.HandleClick(x, y))
	}
	assert.Equal(t, []string{"previous", "toggle", "next", "toggle"}, m.calls)

	assert.True(t, tr.HandleClick(700, 590), "bar swallows clicks")
	assert.False(t, tr.HandleClick(400, 300))
	assert.Len(t, m.calls, 4)
}

func TestLinks(t *testing.T) {
	var opened []string
	opener := func(url string) error {
		opened = append(opened, url)
		return nil
	}
	items := []config.LinkConfig{
		{Label: "Instagram", URL: "https://example.com/ig"},
		{Label: "SoundCloud", URL: "https://example.com/sc"},
	}
	l := NewLinks(items, opener, 800, 600, zerolog.Nop())

	bx, by := center(l.Buttons()[0])
	assert.False(t, l.HandleClick(bx, by), "hidden buttons do not take clicks")

	tx, ty := center(l.Toggle())
	require.True(t, l.HandleClick(tx, ty))
	assert.True(t, l.Open)

	assert.True(t, l.HandleClick(bx, by))
	assert.Equal(t, []string{"https://example.com/ig"}, opened)

	sx, sy := center(l.Buttons()[1])
	assert.True(t, l.HandleClick(sx, sy))
	assert.Len(t, opened, 1, "second launch within a second is throttled")

	l.HandleClick(tx, ty)
	assert.False(t, l.Open)

	failing := NewLinks(items, func(string) error { return errors.New("no browser") }, 800, 600, zerolog.Nop())
	failing.Open = true
	assert.True(t, failing.HandleClick(bx, by), "a failed launch still consumes the click")

	buttons := l.Buttons()
	assert.Less(t, buttons[0].Y, buttons[1].Y)
	assert.Less(t, buttons[1].Y+buttons[1].H, l.Toggle().Y)
}

func TestCursor(t *testing.T) {
	d := input.NewDispatcher()
	s := input.NewState(d)
	c := &Cursor{}
	off := c.Subscribe(d)

	s.Feed(input.Snapshot{X: 120, Y: 80})
	assert.Equal(t, 120, c.X)
	assert.Equal(t, 1.0, c.RingScale())
	assert.Zero(t, c.BeamAlpha())

	s.Feed(input.Snapshot{X: 120, Y: 80, Left: true})
	assert.Equal(t, PressedScale, c.RingScale())
	assert.Equal(t, 0.5, c.BeamAlpha())

	s.Feed(input.Snapshot{X: 120, Y: 80})
	assert.Equal(t, 1.0, c.RingScale())
	for i := 0; i < BeamTicks-1; i++ {
		c.Tick()
		assert.Positive(t, c.BeamAlpha())
	}
	c.Tick()
	assert.Zero(t, c.BeamAlpha())

	off()
	s.Feed(input.Snapshot{X: 10, Y: 10})
	assert.Equal(t, 120, c.X)
}

func TestScoreboard(t *testing.T) {
	b := &Scoreboard{Scores: fakeScores{score: 110, high: 2500, pulse: 1}}
	assert.Equal(t, [4]string{"CURRENT SCORE", "000110", "HIGH SCORE", "002500"}, b.Lines())
	assert.InDelta(t, 1.05, b.Scale(), 1e-12)

	b.Scores = fakeScores{}
	assert.Equal(t, 1.0, b.Scale())
}

func TestHUDClickRouting(t *testing.T) {
	m := &fakeMusic{}
	h := NewHUD(800, 600, 60, fakeScores{}, m, nil, zerolog.Nop())
	d := input.NewDispatcher()
	off := h.Subscribe(d)
	defer off()

	assert.False(t, h.HandleClick(400, 300), "scene clicks pass through")
	x, y := center(h.Transport.Buttons()[2])
	assert.True(t, h.HandleClick(x, y))
	assert.Equal(t, []string{"next"}, m.calls)

	d.Dispatch(input.Event{Kind: input.Resize, X: 1024, Y: 768})
	assert.Equal(t, 1024, h.Transport.ScreenW)
	assert.Equal(t, 768, h.Links.ScreenH)
	assert.False(t, h.HandleClick(x, y), "layout moved with the resize")
}
