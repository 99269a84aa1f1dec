package render3d

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tzynski/gallery/engine/scene"
)

// SparkSize is the world-space edge of a spark billboard
const SparkSize = 0.2

// sparkQuads builds camera-facing squares for every visible spark. The
// colours are premultiplied by alpha so they can be drawn additively.
func sparkQuads(g *scene.Graph, cam *Camera, vertices []ebiten.Vertex, indices []uint16) ([]ebiten.Vertex, []uint16) {
	g.Each(scene.KindSpark, func(it scene.Item) {
		p := it.Placement
		if p.Alpha < 0.01 || len(vertices) > 65000 {
			return
		}
		sx, sy, depth, ok := cam.Project(p.Pos)
		if !ok {
			return
		}
		hs := float32(SparkSize * p.Scale * cam.PixelsPerUnit(depth) / 2)
		if hs < 1 {
			hs = 1
		}
		r := float32(p.Color.R * p.Alpha)
		gr := float32(p.Color.G * p.Alpha)
		b := float32(p.Color.B * p.Alpha)
		a := float32(p.Alpha)
		x, y := float32(sx), float32(sy)

		base := uint16(len(vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			vertices = append(vertices, ebiten.Vertex{
				DstX:   x + c[0]*hs,
				DstY:   y + c[1]*hs,
				SrcX:   1,
				SrcY:   1,
				ColorR: r,
				ColorG: gr,
				ColorB: b,
				ColorA: a,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	})
	return vertices, indices
}
