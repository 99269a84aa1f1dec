package render3d

import (
	"math"

	"github.com/tzynski/gallery/engine/math3d"
)

// Camera is a perspective camera looking down -Z from Eye
type Camera struct {
	Eye    math3d.Vec3
	Target math3d.Vec3
	FOV    float64 // vertical, degrees
	Near   float64
	Far    float64

	ScreenW, ScreenH int

	view     math3d.Mat4
	viewProj math3d.Mat4
	inverse  math3d.Mat4
	dirty    bool
}

// NewCamera creates the gallery camera: 75° fov, eye at z = 15
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Eye:     math3d.V3(0, 0, 15),
		FOV:     75,
		Near:    0.1,
		Far:     1000,
		ScreenW: screenW,
		ScreenH: screenH,
		dirty:   true,
	}
}

// Resize updates the aspect ratio
func (c *Camera) Resize(w, h int) {
	if w == c.ScreenW && h == c.ScreenH {
		return
	}
	c.ScreenW, c.ScreenH = w, h
	c.dirty = true
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	aspect := 1.0
	if c.ScreenH > 0 {
		aspect = float64(c.ScreenW) / float64(c.ScreenH)
	}
	c.view = math3d.LookAt(c.Eye, c.Target, math3d.V3(0, 1, 0))
	proj := math3d.Perspective(c.FOV*math.Pi/180, aspect, c.Near, c.Far)
	c.viewProj = proj.Mul(c.view)
	c.inverse = c.viewProj.Inverse()
}

// ViewProj returns the combined view-projection matrix
func (c *Camera) ViewProj() math3d.Mat4 {
	c.update()
	return c.viewProj
}

// Project converts a world point to screen pixels. depth is the distance
// from the eye; ok is false for points behind the camera.
func (c *Camera) Project(p math3d.Vec3) (sx, sy, depth float64, ok bool) {
	c.update()
	clip := c.viewProj.MulVec4(math3d.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if clip.W <= c.Near {
		return 0, 0, 0, false
	}
	ndcX := clip.X / clip.W
	ndcY := clip.Y / clip.W
	sx = (ndcX*0.5 + 0.5) * float64(c.ScreenW)
	sy = (1 - (ndcY*0.5 + 0.5)) * float64(c.ScreenH)
	return sx, sy, p.DistanceTo(c.Eye), true
}

// PixelsPerUnit is the screen size of one world unit at distance depth
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	half := math.Tan(c.FOV * math.Pi / 360)
	return float64(c.ScreenH) / (2 * half * depth)
}

// Ray returns the picking ray through screen pixel (sx, sy)
func (c *Camera) Ray(sx, sy float64) (origin, dir math3d.Vec3) {
	c.update()
	ndcX := sx/float64(c.ScreenW)*2 - 1
	ndcY := (1-sy/float64(c.ScreenH))*2 - 1
	near := c.inverse.TransformPoint(math3d.V3(ndcX, ndcY, -1))
	far := c.inverse.TransformPoint(math3d.V3(ndcX, ndcY, 1))
	return near, far.Sub(near).Normalize()
}
