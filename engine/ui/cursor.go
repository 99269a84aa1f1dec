package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tzynski/gallery/engine/input"
)

const (
	// RingSize is the diameter of the target ring in pixels
	RingSize = 32
	// PressedScale shrinks the ring while the button is held
	PressedScale = 0.8
	// BeamTicks is how long the shot beam takes to fade
	BeamTicks = 9
)

// Cursor draws the crosshair in place of the system pointer: a dot, a ring
// that tightens while pressed and a beam from the top edge after each shot.
type Cursor struct {
	X, Y    int
	Pressed bool

	beam  int
	beamX int
	beamY int
}

// Subscribe registers the cursor on d and returns the unsubscribe function
func (c *Cursor) Subscribe(d *input.Dispatcher) func() {
	offs := []func(){
		d.Subscribe(input.PointerMove, func(e input.Event) { c.X, c.Y = e.X, e.Y }),
		d.Subscribe(input.PointerDown, func(e input.Event) {
			c.Pressed = true
			c.beam = BeamTicks
			c.beamX, c.beamY = e.X, e.Y
		}),
		d.Subscribe(input.PointerUp, func(input.Event) { c.Pressed = false }),
	}
	return func() {
		for _, off := range offs {
			off()
		}
	}
}

// Tick fades the beam
func (c *Cursor) Tick() {
	if c.beam > 0 {
		c.beam--
	}
}

// RingScale is 1 at rest and PressedScale while pressed
func (c *Cursor) RingScale() float64 {
	if c.Pressed {
		return PressedScale
	}
	return 1
}

// BeamAlpha starts at 0.5 on press and reaches 0 after BeamTicks
func (c *Cursor) BeamAlpha() float64 {
	return 0.5 * float64(c.beam) / BeamTicks
}

func (c *Cursor) Draw(screen *ebiten.Image) {
	if a := c.BeamAlpha(); a > 0 {
		clr := Cyan
		clr.A = uint8(a * 255)
		vector.DrawFilledRect(screen, float32(c.beamX)-1, 0, 2, float32(c.beamY), clr, false)
	}
	x, y := float32(c.X), float32(c.Y)
	vector.StrokeCircle(screen, x, y, float32(RingSize/2*c.RingScale()), 2, Cyan, true)
	vector.DrawFilledCircle(screen, x, y, 2, Cyan, true)
}
