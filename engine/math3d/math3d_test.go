package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerpConvergesGeometrically(t *testing.T) {
	p := V3(10, 0, 0)
	target := V3(0, 0, 0)
	for i := 0; i < 10; i++ {
		p = p.Lerp(target, 0.1)
	}
	assert.InDelta(t, 10*math.Pow(0.9, 10), p.X, 1e-9)
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateY(0.7)).Mul(ScaleMat(2, 2, 2))
	p := V3(0.5, -1, 4)
	back := m.Inverse().TransformPoint(m.TransformPoint(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
	assert.InDelta(t, p.Z, back.Z, 1e-9)
}

func TestPerspectiveMapsNearPlaneToMinusOne(t *testing.T) {
	proj := Perspective(math.Pi/2, 1, 0.1, 100)
	near := proj.TransformPoint(V3(0, 0, -0.1))
	far := proj.TransformPoint(V3(0, 0, -100))
	assert.InDelta(t, -1, near.Z, 1e-9)
	assert.InDelta(t, 1, far.Z, 1e-9)
}

func TestCubeDirectionIsUnitLength(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 200; i++ {
		assert.InDelta(t, 1, CubeDirection(r).Len(), 1e-9)
	}
}

func TestCubeVelocityBounds(t *testing.T) {
	r := NewRand(3)
	for i := 0; i < 200; i++ {
		v := CubeVelocity(r, 0.3)
		assert.LessOrEqual(t, v.MaxAbs(), 0.15)
	}
}

func TestHex(t *testing.T) {
	c := Hex(0x00ffcc)
	assert.Equal(t, 0.0, c.R)
	assert.Equal(t, 1.0, c.G)
	assert.InDelta(t, 0.8, c.B, 1e-9)
}
