package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// MeterBars is the number of bars in the level meter
	MeterBars = 40
	// ProgressSteps is the length of the meter animation cycle
	ProgressSteps = 100

	transportH = 80
	buttonSize = 36
)

// Music is the player the transport controls. *audio.Jukebox satisfies it.
type Music interface {
	Play()
	Pause()
	Toggle()
	Next()
	Previous()
	Playing() bool
	Title() string
}

// Transport is the bottom bar: previous, play/pause, next, a decorative
// level meter and the current title.
type Transport struct {
	Music    Music
	TickRate int

	ScreenW, ScreenH int

	progress int
	ticks    int
}

func NewTransport(music Music, tickRate, sw, sh int) *Transport {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Transport{Music: music, TickRate: tickRate, ScreenW: sw, ScreenH: sh}
}

// Tick advances the meter animation one step per second
func (t *Transport) Tick() {
	t.ticks++
	if t.ticks >= t.TickRate {
		t.ticks = 0
		t.progress = (t.progress + 1) % ProgressSteps
	}
}

// Progress is the meter cycle position, 0..ProgressSteps-1
func (t *Transport) Progress() int { return t.progress }

// MeterHeight is the pixel height of bar i at progress p
func MeterHeight(i, p int) float64 {
	return math.Floor((25+math.Sin(float64(i)*0.8+float64(p)*0.1)*15)*10) / 10
}

// MeterLit reports whether bar i is drawn bright at progress p
func MeterLit(i, p int) bool {
	return float64(i) < float64(p)/ProgressSteps*MeterBars
}

func (t *Transport) bar() Rect {
	return Rect{0, t.ScreenH - transportH, t.ScreenW, transportH}
}

// Buttons returns the previous, play/pause and next hit boxes
func (t *Transport) Buttons() [3]Rect {
	y := t.ScreenH - transportH + (transportH-buttonSize)/2
	var out [3]Rect
	for i := range out {
		out[i] = Rect{24 + i*(buttonSize+12), y, buttonSize, buttonSize}
	}
	return out
}

func (t *Transport) meter() Rect {
	x := 24 + 3*(buttonSize+12) + 12
	return Rect{x, t.ScreenH - transportH + 12, t.ScreenW - x - 24, transportH - 24}
}

// HandleClick runs the button under (x, y). Returns true if the click landed
// on the bar.
func (t *Transport) HandleClick(x, y int) bool {
	if !t.bar().Contains(x, y) {
		return false
	}
	b := t.Buttons()
	switch {
	case b[0].Contains(x, y):
		t.Music.Previous()
	case b[1].Contains(x, y):
		t.Music.Toggle()
	case b[2].Contains(x, y):
		t.Music.Next()
	}
	return true
}

func (t *Transport) Draw(screen *ebiten.Image) {
	bar := t.bar()
	vector.DrawFilledRect(screen, 0, float32(bar.Y), float32(bar.W), float32(bar.H), color.NRGBA{0, 0, 0, 170}, false)
	vector.StrokeLine(screen, 0, float32(bar.Y), float32(bar.W), float32(bar.Y), 1, CyanFaint, false)

	b := t.Buttons()
	for i, r := range b {
		cx := float32(r.X) + float32(r.W)/2
		cy := float32(r.Y) + float32(r.H)/2
		vector.StrokeCircle(screen, cx, cy, float32(r.W)/2, 1, CyanFaint, true)
		switch i {
		case 0:
			drawSkip(screen, cx, cy, -1)
		case 1:
			if t.Music.Playing() {
				vector.DrawFilledRect(screen, cx-6, cy-7, 4, 14, CyanGlow, false)
				vector.DrawFilledRect(screen, cx+2, cy-7, 4, 14, CyanGlow, false)
			} else {
				drawTriangle(screen, cx-5, cy-7, cx-5, cy+7, cx+7, cy, CyanGlow)
			}
		case 2:
			drawSkip(screen, cx, cy, 1)
		}
	}

	m := t.meter()
	vector.DrawFilledRect(screen, float32(m.X), float32(m.Y), float32(m.W), float32(m.H), color.NRGBA{8, 51, 68, 51}, false)
	const barW, gap = 3, 3
	total := MeterBars*barW + (MeterBars-1)*gap
	x0 := float32(m.X) + float32(m.W-total)/2
	mid := float32(m.Y) + float32(m.H)/2
	for i := 0; i < MeterBars; i++ {
		h := float32(MeterHeight(i, t.progress))
		clr := CyanGlow
		clr.A = 77
		if MeterLit(i, t.progress) {
			clr.A = 230
		}
		vector.DrawFilledRect(screen, x0+float32(i*(barW+gap)), mid-h/2, barW, h, clr, true)
	}

	title := t.Music.Title()
	// debug font glyphs are 6x16
	ebitenutil.DebugPrintAt(screen, title, m.X+(m.W-len(title)*6)/2, m.Y+m.H/2-8)
}

func drawSkip(screen *ebiten.Image, cx, cy, dir float32) {
	drawTriangle(screen, cx-dir*6, cy-7, cx-dir*6, cy+7, cx+dir*4, cy, CyanGlow)
	vector.DrawFilledRect(screen, cx+dir*5-1, cy-7, 3, 14, CyanGlow, false)
}

func drawTriangle(screen *ebiten.Image, x0, y0, x1, y1, x2, y2 float32, clr color.Color) {
	var p vector.Path
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	p.LineTo(x2, y2)
	p.Close()
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	screen.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	})
}

var white *ebiten.Image

func whitePixel() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(3, 3)
		white.Fill(color.White)
	}
	return white
}
