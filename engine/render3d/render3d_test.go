package render3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

func newGlyphs(t *testing.T) *Glyphs {
	t.Helper()
	g, err := NewGlyphs(2.5, 0.8)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestCameraProjectAndRay(t *testing.T) {
	cam := NewCamera(800, 600)

	sx, sy, depth, ok := cam.Project(math3d.V3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 400, sx, 1e-6)
	assert.InDelta(t, 300, sy, 1e-6)
	assert.InDelta(t, 15, depth, 1e-9)

	_, _, _, ok = cam.Project(math3d.V3(0, 0, 20))
	assert.False(t, ok, "behind the eye")

	origin, dir := cam.Ray(400, 300)
	assert.InDelta(t, -1, dir.Z, 1e-6)
	assert.InDelta(t, 15, origin.Z, 0.2)

	p := math3d.V3(3, 2, -1)
	sx, sy, _, ok = cam.Project(p)
	require.True(t, ok)
	assert.Greater(t, sx, 400.0)
	assert.Less(t, sy, 300.0, "up is toward the top of the screen")
	origin, dir = cam.Ray(sx, sy)
	closest := origin.Add(dir.Scale(p.Sub(origin).Dot(dir)))
	assert.InDelta(t, 0, closest.DistanceTo(p), 1e-4)
}

func TestCameraResize(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Resize(1600, 600)
	sx, _, _, _ := cam.Project(math3d.V3(0, 0, 0))
	assert.InDelta(t, 800, sx, 1e-6)
	assert.Greater(t, cam.PixelsPerUnit(5), cam.PixelsPerUnit(15))
	assert.Zero(t, cam.PixelsPerUnit(0))
}

func TestLighting(t *testing.T) {
	ls := DefaultLighting()
	white := math3d.Color3{R: 1, G: 1, B: 1}
	front := ls.ComputeLighting(math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), white)
	side := ls.ComputeLighting(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), white)
	assert.Greater(t, front.G, side.G)

	assert.Zero(t, ls.FogFactor(0))
	assert.InDelta(t, 1-math.Exp(-0.2025), ls.FogFactor(15), 1e-9)
	assert.Greater(t, ls.FogFactor(40), ls.FogFactor(15))
	faded := ls.ApplyFog(white, 1000)
	assert.InDelta(t, 0, faded.R, 1e-6)

	ls.Update(math.Pi)
	assert.Equal(t, ls.Spots[0].Position.X, -ls.Spots[1].Position.X)
}

func TestGlyphMesh(t *testing.T) {
	g := newGlyphs(t)
	m := g.Mesh('T')
	require.NotEmpty(t, m.Triangles)
	assert.Same(t, m, g.Mesh('T'))

	lo, hi := m.Bounds()
	assert.InDelta(t, 0, lo.Add(hi).Len(), 1e-9, "centred")
	assert.InDelta(t, 0.8, hi.Z-lo.Z, 1e-9)
	assert.Less(t, hi.Y-lo.Y, 2.5)
	assert.Greater(t, hi.Y-lo.Y, 1.0)

	assert.Empty(t, g.Mesh(' ').Triangles)
}

func TestMeshPrimitives(t *testing.T) {
	tetra := MakeTetra(0.1, math3d.Color3{R: 1})
	require.Len(t, tetra.Triangles, 4)
	for _, tri := range tetra.Triangles {
		a, b, c := tri.V[0].Pos, tri.V[1].Pos, tri.V[2].Pos
		assert.Positive(t, b.Sub(a).Cross(c.Sub(a)).Dot(tri.V[0].Normal), "wound outward")
	}

	lo, hi := MakeUFO().Bounds()
	assert.InDelta(t, 1.3, hi.X, 1e-9)
	assert.InDelta(t, -1.3, lo.X, 1e-9)
	assert.LessOrEqual(t, hi.Y, 1.0+1e-9)
}

type pickScene struct {
	graph  *scene.Graph
	picker *Picker
}

func newPickScene(t *testing.T) *pickScene {
	g := scene.NewGraph()
	return &pickScene{
		graph:  g,
		picker: &Picker{Camera: NewCamera(800, 600), Graph: g, Glyphs: newGlyphs(t)},
	}
}

func (s *pickScene) add(kind scene.Kind, pos math3d.Vec3, scale float64) scene.Handle {
	h := s.graph.Allocate(kind)
	s.graph.SetGlyph(h, 'T')
	s.graph.Place(h, scene.Placement{Pos: pos, Scale: scale, Alpha: 1})
	s.graph.AddDrawable(h)
	return h
}

func TestPickLetterBeforeShip(t *testing.T) {
	s := newPickScene(t)
	letter := s.add(scene.KindLetter, math3d.V3(0, 0, 0), 1)
	ship := s.add(scene.KindShip, math3d.V3(0, 0, 5), 0.4)

	hit, ok := s.picker.Pick(400, 300)
	require.True(t, ok)
	assert.Equal(t, letter, hit.Handle)
	assert.Equal(t, scene.KindLetter, hit.Kind)
	assert.InDelta(t, 0.4, hit.Point.Z, 1e-4, "front face of the glyph")

	s.graph.SetVisible(letter, false)
	hit, ok = s.picker.Pick(400, 300)
	require.True(t, ok)
	assert.Equal(t, ship, hit.Handle)
	assert.InDelta(t, 5+UFORadius*0.4, hit.Point.Z, 1e-4)
}

func TestPickShipOffCentre(t *testing.T) {
	s := newPickScene(t)
	s.add(scene.KindLetter, math3d.V3(0, 0, 0), 1)
	ship := s.add(scene.KindShip, math3d.V3(8, 3, 0), 0.4)

	sx, sy, _, ok := s.picker.Camera.Project(math3d.V3(8, 3, 0))
	require.True(t, ok)
	hit, ok := s.picker.Pick(sx, sy)
	require.True(t, ok)
	assert.Equal(t, ship, hit.Handle)

	_, ok = s.picker.Pick(5, 5)
	assert.False(t, ok)
}

func TestPickRotatedLetter(t *testing.T) {
	s := newPickScene(t)
	h := s.add(scene.KindLetter, math3d.V3(0, 0, 0), 1)
	s.graph.Place(h, scene.Placement{Rot: math3d.V3(0, math.Pi/2, 0), Scale: 1, Alpha: 1})

	hit, ok := s.picker.Pick(400, 300)
	require.True(t, ok)
	lo, hi := s.picker.Glyphs.Bounds('T')
	assert.InDelta(t, (hi.X-lo.X)/2, hit.Point.Z, 1e-4, "turned side-on, the glyph width faces the camera")
}

func TestBuildSolids(t *testing.T) {
	s := newPickScene(t)
	r := NewRenderer3D(800, 600, s.picker.Glyphs)

	v, idx := r.BuildSolids(s.graph, nil, nil)
	assert.Empty(t, v)
	assert.Empty(t, idx)

	ship := s.add(scene.KindShip, math3d.V3(0, 0, 0), 0.4)
	s.graph.Place(ship, scene.Placement{Scale: 0.4, Alpha: 1, Color: math3d.Color3{R: 1, G: 1, B: 1}})
	v, idx = r.BuildSolids(s.graph, nil, nil)
	require.NotEmpty(t, v)
	assert.Len(t, idx, len(v))
	total := len(MakeUFO().Triangles)
	assert.Less(t, len(v)/3, total, "back faces culled")

	s.graph.SetVisible(ship, false)
	v, _ = r.BuildSolids(s.graph, nil, nil)
	assert.Empty(t, v)
}
