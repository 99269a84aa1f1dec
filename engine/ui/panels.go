package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Palette
var (
	Cyan      = color.NRGBA{0, 255, 255, 255}
	CyanText  = color.NRGBA{103, 232, 249, 255}
	CyanDim   = color.NRGBA{34, 211, 238, 153}
	CyanFaint = color.NRGBA{6, 182, 212, 51}
	CyanGlow  = color.NRGBA{6, 182, 212, 255}
)

// ---- Procedural texture generation ----

// generateGlassPanel is a black panel fading from 90% to 70% opacity left to
// right, with a faint cyan border.
func generateGlassPanel(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	pix := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := 0.9 - 0.2*float64(x)/float64(w)
			c := color.NRGBA{0, 0, 0, uint8(a * 255)}
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				c = CyanFaint
			}
			setPremultiplied(pix, (y*w+x)*4, c)
		}
	}
	img.WritePixels(pix)
	return img
}

// generateGlowLine is a horizontal divider that fades out to the right
func generateGlowLine(w, h int, clr color.NRGBA) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	pix := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fade := 1 - float64(x)/float64(w)
			c := clr
			c.A = uint8(float64(clr.A) * fade * fade)
			setPremultiplied(pix, (y*w+x)*4, c)
		}
	}
	img.WritePixels(pix)
	return img
}

// generateDisc is a filled circle with a soft edge
func generateDisc(size int, clr color.NRGBA) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	pix := make([]byte, 4*size*size)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			cov := math.Max(0, math.Min(1, c-d))
			px := clr
			px.A = uint8(float64(clr.A) * cov)
			setPremultiplied(pix, (y*size+x)*4, px)
		}
	}
	img.WritePixels(pix)
	return img
}

func setPremultiplied(pix []byte, i int, c color.NRGBA) {
	r, g, b, a := c.RGBA()
	pix[i] = byte(r >> 8)
	pix[i+1] = byte(g >> 8)
	pix[i+2] = byte(b >> 8)
	pix[i+3] = byte(a >> 8)
}

// Rect is a screen-space hit box
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
