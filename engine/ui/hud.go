// Package ui draws the overlay on top of the 3D scene: scoreboard, music
// transport, links and the crosshair cursor.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/config"
	"github.com/tzynski/gallery/engine/input"
	"github.com/tzynski/gallery/engine/score"
)

// Scores is what the scoreboard shows. *score.Board satisfies it.
type Scores interface {
	Score() int
	High() int
	Pulse() float64
}

const (
	boardW = 200
	boardH = 112
)

// Scoreboard is the panel top-left
type Scoreboard struct {
	Scores Scores
	X, Y   int

	panel   *ebiten.Image
	divider *ebiten.Image
	canvas  *ebiten.Image
}

// Scale grows the panel by up to 5% while a score change pulses
func (s *Scoreboard) Scale() float64 {
	return 1 + 0.05*s.Scores.Pulse()
}

// Lines are the label and value rows as drawn
func (s *Scoreboard) Lines() [4]string {
	return [4]string{
		"CURRENT SCORE", score.Format(s.Scores.Score()),
		"HIGH SCORE", score.Format(s.Scores.High()),
	}
}

func (s *Scoreboard) Draw(screen *ebiten.Image) {
	if s.panel == nil {
		s.panel = generateGlassPanel(boardW, boardH)
		s.divider = generateGlowLine(boardW-32, 1, CyanDim)
		s.canvas = ebiten.NewImage(boardW, boardH)
	}
	board := s.canvas
	board.Clear()
	board.DrawImage(s.panel, nil)

	lines := s.Lines()
	for i := 0; i < 2; i++ {
		y := 12 + i*52
		ebitenutil.DebugPrintAt(board, lines[i*2], 16, y)
		ebitenutil.DebugPrintAt(board, lines[i*2+1], 16, y+18)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(16, boardH/2)
	board.DrawImage(s.divider, op)

	// scale about the centre
	sc := s.Scale()
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-boardW/2, -boardH/2)
	op.GeoM.Scale(sc, sc)
	op.GeoM.Translate(float64(s.X)+boardW/2, float64(s.Y)+boardH/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(board, op)
}

// HUD is the whole overlay
type HUD struct {
	ScreenW, ScreenH int

	Board     *Scoreboard
	Transport *Transport
	Links     *Links
	Cursor    *Cursor
}

// NewHUD builds the overlay for a screen of sw x sh
func NewHUD(sw, sh, tickRate int, scores Scores, music Music, links []config.LinkConfig, log zerolog.Logger) *HUD {
	return &HUD{
		ScreenW:   sw,
		ScreenH:   sh,
		Board:     &Scoreboard{Scores: scores, X: 24, Y: 24},
		Transport: NewTransport(music, tickRate, sw, sh),
		Links:     NewLinks(links, nil, sw, sh, log),
		Cursor:    &Cursor{},
	}
}

// Subscribe wires the cursor and layout to d
func (h *HUD) Subscribe(d *input.Dispatcher) func() {
	offCursor := h.Cursor.Subscribe(d)
	offResize := d.Subscribe(input.Resize, func(e input.Event) { h.Resize(e.X, e.Y) })
	return func() {
		offCursor()
		offResize()
	}
}

// Resize lays the overlay out for a new screen size
func (h *HUD) Resize(w, hgt int) {
	h.ScreenW, h.ScreenH = w, hgt
	h.Transport.ScreenW, h.Transport.ScreenH = w, hgt
	h.Links.ScreenW, h.Links.ScreenH = w, hgt
}

// Tick advances the overlay animations
func (h *HUD) Tick() {
	h.Transport.Tick()
	h.Cursor.Tick()
}

// HandleClick processes overlay clicks. Returns true if the click was
// consumed and must not reach the scene.
func (h *HUD) HandleClick(mx, my int) bool {
	if h.Links.HandleClick(mx, my) {
		return true
	}
	return h.Transport.HandleClick(mx, my)
}

// Draw renders the overlay; the cursor goes last so it sits on top
func (h *HUD) Draw(screen *ebiten.Image) {
	h.Board.Draw(screen)
	h.Transport.Draw(screen)
	h.Links.Draw(screen)
	h.Cursor.Draw(screen)
}
