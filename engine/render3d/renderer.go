// Package render3d draws the scene graph with a software perspective
// pipeline on top of ebiten.DrawTriangles: per-vertex lighting and fog,
// painter's ordering by triangle depth, additive sparks.
package render3d

import (
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

// Renderer3D draws letters, ships, shards and sparks
type Renderer3D struct {
	Camera     *Camera
	Lighting   LightingSetup
	Background color.Color

	glyphs *Glyphs
	ufo    *Mesh3D
	shard  *Mesh3D

	// Internal
	whiteImg *ebiten.Image
	time     float64
	tris     []screenTri
	vertices []ebiten.Vertex
	indices  []uint16
}

type screenTri struct {
	v     [3]ebiten.Vertex
	depth float64
}

// NewRenderer3D creates the renderer. glyphs supplies letter meshes.
func NewRenderer3D(screenW, screenH int, glyphs *Glyphs) *Renderer3D {
	return &Renderer3D{
		Camera:     NewCamera(screenW, screenH),
		Lighting:   DefaultLighting(),
		Background: color.Black,
		glyphs:     glyphs,
		ufo:        MakeUFO(),
		shard:      MakeShard(),
	}
}

// Update advances time-based effects
func (r *Renderer3D) Update(dt float64) {
	r.time += dt
	r.Lighting.Update(r.time)
}

// Draw renders the graph: background, solids back to front, then sparks
func (r *Renderer3D) Draw(screen *ebiten.Image, g *scene.Graph) {
	if r.whiteImg == nil {
		// 1x1 white source for coloured triangles
		r.whiteImg = ebiten.NewImage(4, 4)
		r.whiteImg.Fill(color.White)
	}
	screen.Fill(r.Background)

	r.vertices, r.indices = r.BuildSolids(g, r.vertices[:0], r.indices[:0])
	r.flush(screen, nil)

	r.vertices, r.indices = sparkQuads(g, r.Camera, r.vertices[:0], r.indices[:0])
	r.flush(screen, &ebiten.DrawTrianglesOptions{
		Blend:          ebiten.BlendLighter,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	})
}

func (r *Renderer3D) flush(screen *ebiten.Image, op *ebiten.DrawTrianglesOptions) {
	if len(r.vertices) == 0 {
		return
	}
	screen.DrawTriangles(r.vertices, r.indices, r.whiteImg, op)
}

// BuildSolids appends the lit, fogged and depth-sorted triangles of every
// visible letter, ship and shard.
func (r *Renderer3D) BuildSolids(g *scene.Graph, vertices []ebiten.Vertex, indices []uint16) ([]ebiten.Vertex, []uint16) {
	r.tris = r.tris[:0]
	g.Each(scene.KindLetter, func(it scene.Item) {
		if r.glyphs != nil {
			r.addMesh(r.glyphs.Mesh(it.Glyph), it.Placement)
		}
	})
	g.Each(scene.KindShip, func(it scene.Item) { r.addMesh(r.ufo, it.Placement) })
	g.Each(scene.KindShard, func(it scene.Item) { r.addMesh(r.shard, it.Placement) })

	// back to front
	slices.SortStableFunc(r.tris, func(a, b screenTri) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	for _, t := range r.tris {
		// uint16 indices
		if len(vertices)+3 > 65535 {
			break
		}
		base := uint16(len(vertices))
		vertices = append(vertices, t.v[0], t.v[1], t.v[2])
		indices = append(indices, base, base+1, base+2)
	}
	return vertices, indices
}

// Model is the world matrix of a placement
func Model(p scene.Placement) math3d.Mat4 {
	return math3d.Translate(p.Pos.X, p.Pos.Y, p.Pos.Z).
		Mul(math3d.Euler(p.Rot)).
		Mul(math3d.ScaleMat(p.Scale, p.Scale, p.Scale))
}

func (r *Renderer3D) addMesh(mesh *Mesh3D, p scene.Placement) {
	if mesh == nil || len(mesh.Triangles) == 0 || p.Scale == 0 || p.Alpha <= 0 {
		return
	}
	model := Model(p)
	sw, sh := float64(r.Camera.ScreenW), float64(r.Camera.ScreenH)

	for _, tri := range mesh.Triangles {
		var st screenTri
		offScreen := true
		clipped := false

		for i := 0; i < 3; i++ {
			v := tri.V[i]
			world := model.TransformPoint(v.Pos)
			normal := model.TransformDir(v.Normal).Normalize()

			sx, sy, depth, ok := r.Camera.Project(world)
			if !ok {
				clipped = true
				break
			}
			if sx >= -100 && sx <= sw+100 && sy >= -100 && sy <= sh+100 {
				offScreen = false
			}

			lit := r.Lighting.ComputeLighting(world, normal, v.Color.Mul(p.Color))
			lit = r.Lighting.ApplyFog(lit, depth)
			st.depth += depth / 3
			st.v[i] = ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(lit.R),
				ColorG: float32(lit.G),
				ColorB: float32(lit.B),
				ColorA: float32(p.Alpha),
			}
		}
		if clipped || offScreen {
			continue
		}

		// Back-face culling: counter-clockwise in world is clockwise on a y-down screen
		ax := st.v[1].DstX - st.v[0].DstX
		ay := st.v[1].DstY - st.v[0].DstY
		bx := st.v[2].DstX - st.v[0].DstX
		by := st.v[2].DstY - st.v[0].DstY
		if ax*by-ay*bx > -0.01 {
			continue
		}
		r.tris = append(r.tris, st)
	}
}
