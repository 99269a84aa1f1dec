package render3d

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/tzynski/gallery/engine/math3d"
)

// glyphPixels is how many raster cells span one em
const glyphPixels = 40

// Glyphs builds extruded letter meshes from the Go Bold font. A glyph is
// rasterised, then every filled cell becomes a voxel column of the given
// depth; only faces on the outline are kept.
type Glyphs struct {
	Size  float64 // em height in world units
	Depth float64

	face  font.Face
	cache map[rune]*Mesh3D
}

// NewGlyphs parses the embedded font
func NewGlyphs(size, depth float64) (*Glyphs, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    glyphPixels,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return &Glyphs{Size: size, Depth: depth, face: face, cache: make(map[rune]*Mesh3D)}, nil
}

// Mesh returns the centred white mesh for r. Runes without ink give an empty
// mesh.
func (g *Glyphs) Mesh(r rune) *Mesh3D {
	if m, ok := g.cache[r]; ok {
		return m
	}
	m := g.extrude(g.rasterize(r))
	g.cache[r] = m
	return m
}

// Bounds is the local box around the glyph of r
func (g *Glyphs) Bounds(r rune) (lo, hi math3d.Vec3) {
	return g.Mesh(r).Bounds()
}

func (g *Glyphs) Close() error {
	return g.face.Close()
}

func (g *Glyphs) rasterize(r rune) *image.Alpha {
	b, _, ok := g.face.GlyphBounds(r)
	if !ok {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}
	w := (b.Max.X - b.Min.X).Ceil() + 2
	h := (b.Max.Y - b.Min.Y).Ceil() + 2
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: g.face,
		Dot:  fixed.Point26_6{X: fixed.I(1) - b.Min.X, Y: fixed.I(1) - b.Min.Y},
	}
	d.DrawString(string(r))
	return img
}

func (g *Glyphs) extrude(img *image.Alpha) *Mesh3D {
	m := NewMesh()
	cell := g.Size / glyphPixels
	hd := g.Depth / 2
	white := math3d.Color3{R: 1, G: 1, B: 1}
	size := img.Bounds().Size()

	filled := func(x, y int) bool {
		if x < 0 || y < 0 || x >= size.X || y >= size.Y {
			return false
		}
		return img.AlphaAt(x, y).A >= 128
	}
	// cell (x, y) spans [x, x+1] * cell horizontally and [-(y+1), -y] * cell vertically
	wx := func(x int) float64 { return float64(x) * cell }
	wy := func(y int) float64 { return -float64(y) * cell }

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; {
			if !filled(x, y) {
				x++
				continue
			}
			x0 := x
			for x < size.X && filled(x, y) {
				x++
			}
			x1 := x
			top, bot := wy(y), wy(y+1)
			left, right := wx(x0), wx(x1)

			// front and back
			addFace(m, math3d.V3(left, bot, hd), math3d.V3(right, bot, hd),
				math3d.V3(right, top, hd), math3d.V3(left, top, hd), math3d.V3(0, 0, 1), white)
			addFace(m, math3d.V3(right, bot, -hd), math3d.V3(left, bot, -hd),
				math3d.V3(left, top, -hd), math3d.V3(right, top, -hd), math3d.V3(0, 0, -1), white)
			// run ends
			addFace(m, math3d.V3(left, bot, -hd), math3d.V3(left, bot, hd),
				math3d.V3(left, top, hd), math3d.V3(left, top, -hd), math3d.V3(-1, 0, 0), white)
			addFace(m, math3d.V3(right, bot, hd), math3d.V3(right, bot, -hd),
				math3d.V3(right, top, -hd), math3d.V3(right, top, hd), math3d.V3(1, 0, 0), white)

			// top and bottom edges, merged along the run
			for _, edge := range [2]struct {
				ny     int
				y      float64
				normal math3d.Vec3
			}{{y - 1, top, math3d.V3(0, 1, 0)}, {y + 1, bot, math3d.V3(0, -1, 0)}} {
				for sx := x0; sx < x1; {
					if filled(sx, edge.ny) {
						sx++
						continue
					}
					s0 := sx
					for sx < x1 && !filled(sx, edge.ny) {
						sx++
					}
					a, b := wx(s0), wx(sx)
					if edge.normal.Y > 0 {
						addFace(m, math3d.V3(a, edge.y, hd), math3d.V3(b, edge.y, hd),
							math3d.V3(b, edge.y, -hd), math3d.V3(a, edge.y, -hd), edge.normal, white)
					} else {
						addFace(m, math3d.V3(a, edge.y, -hd), math3d.V3(b, edge.y, -hd),
							math3d.V3(b, edge.y, hd), math3d.V3(a, edge.y, hd), edge.normal, white)
					}
				}
			}
		}
	}

	lo, hi := m.Bounds()
	center := lo.Add(hi).Scale(0.5)
	return m.Transform(math3d.Translate(-center.X, -center.Y, -center.Z))
}

// addFace appends a quad given counter-clockwise as seen from outside
func addFace(m *Mesh3D, a, b, c, d, n math3d.Vec3, col math3d.Color3) {
	m.AddQuad(
		Vertex3D{Pos: a, Normal: n, Color: col},
		Vertex3D{Pos: b, Normal: n, Color: col},
		Vertex3D{Pos: c, Normal: n, Color: col},
		Vertex3D{Pos: d, Normal: n, Color: col},
	)
}
