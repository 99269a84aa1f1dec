package render3d

import (
	"math"

	"github.com/tzynski/gallery/engine/math3d"
)

// Vertex3D is a vertex with position, normal, and color
type Vertex3D struct {
	Pos    math3d.Vec3
	Normal math3d.Vec3
	Color  math3d.Color3
}

// Triangle3D is three vertices
type Triangle3D struct {
	V [3]Vertex3D
}

// Mesh3D is a collection of triangles
type Mesh3D struct {
	Triangles []Triangle3D
}

func NewMesh() *Mesh3D { return &Mesh3D{} }

func (m *Mesh3D) AddTriangle(v0, v1, v2 Vertex3D) {
	m.Triangles = append(m.Triangles, Triangle3D{V: [3]Vertex3D{v0, v1, v2}})
}

func (m *Mesh3D) AddQuad(v0, v1, v2, v3 Vertex3D) {
	m.AddTriangle(v0, v1, v2)
	m.AddTriangle(v0, v2, v3)
}

func (m *Mesh3D) Transform(mat math3d.Mat4) *Mesh3D {
	out := &Mesh3D{Triangles: make([]Triangle3D, len(m.Triangles))}
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			out.Triangles[i].V[j] = tri.V[j]
			out.Triangles[i].V[j].Pos = mat.TransformPoint(tri.V[j].Pos)
			out.Triangles[i].V[j].Normal = mat.TransformDir(tri.V[j].Normal).Normalize()
		}
	}
	return out
}

func (m *Mesh3D) Append(other *Mesh3D) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

func (m *Mesh3D) SetColor(c math3d.Color3) {
	for i := range m.Triangles {
		for j := 0; j < 3; j++ {
			m.Triangles[i].V[j].Color = c
		}
	}
}

// Bounds returns the axis-aligned box around every vertex
func (m *Mesh3D) Bounds() (lo, hi math3d.Vec3) {
	if len(m.Triangles) == 0 {
		return
	}
	lo = m.Triangles[0].V[0].Pos
	hi = lo
	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			lo = math3d.V3(math.Min(lo.X, v.Pos.X), math.Min(lo.Y, v.Pos.Y), math.Min(lo.Z, v.Pos.Z))
			hi = math3d.V3(math.Max(hi.X, v.Pos.X), math.Max(hi.Y, v.Pos.Y), math.Max(hi.Z, v.Pos.Z))
		}
	}
	return lo, hi
}

// --- Primitive generators ---

// MakeSphereCap builds the top of a sphere from the pole down to polar
// angle thetaLen (π for a full sphere).
func MakeSphereCap(radius, thetaLen float64, segments, rings int, c math3d.Color3) *Mesh3D {
	m := NewMesh()
	if segments < 6 {
		segments = 6
	}
	if rings < 2 {
		rings = 2
	}
	point := func(seg, ring int) Vertex3D {
		phi := float64(seg) / float64(segments) * 2 * math.Pi
		theta := float64(ring) / float64(rings) * thetaLen
		n := math3d.V3(-math.Cos(phi)*math.Sin(theta), math.Cos(theta), math.Sin(phi)*math.Sin(theta))
		return Vertex3D{Pos: n.Scale(radius), Normal: n, Color: c}
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := point(s, r)
			b := point(s, r+1)
			cc := point(s+1, r+1)
			d := point(s+1, r)
			if r == 0 {
				m.AddTriangle(a, b, cc)
				continue
			}
			m.AddQuad(a, b, cc, d)
		}
	}
	return m
}

// MakeTorus builds a ring in the XY plane
func MakeTorus(radius, tube float64, radial, tubular int, c math3d.Color3) *Mesh3D {
	m := NewMesh()
	point := func(i, j int) Vertex3D {
		u := float64(i) / float64(tubular) * 2 * math.Pi
		v := float64(j) / float64(radial) * 2 * math.Pi
		center := math3d.V3(radius*math.Cos(u), radius*math.Sin(u), 0)
		pos := math3d.V3(
			(radius+tube*math.Cos(v))*math.Cos(u),
			(radius+tube*math.Cos(v))*math.Sin(u),
			tube*math.Sin(v),
		)
		return Vertex3D{Pos: pos, Normal: pos.Sub(center).Normalize(), Color: c}
	}
	for j := 0; j < radial; j++ {
		for i := 0; i < tubular; i++ {
			m.AddQuad(point(i, j), point(i+1, j), point(i+1, j+1), point(i, j+1))
		}
	}
	return m
}

// MakeTetra builds a regular tetrahedron with the given circumradius
func MakeTetra(radius float64, c math3d.Color3) *Mesh3D {
	m := NewMesh()
	s := radius / math.Sqrt(3)
	v := [4]math3d.Vec3{
		math3d.V3(s, s, s), math3d.V3(-s, -s, s), math3d.V3(-s, s, -s), math3d.V3(s, -s, -s),
	}
	faces := [4][3]int{{2, 1, 0}, {0, 3, 2}, {1, 3, 0}, {2, 3, 1}}
	for _, f := range faces {
		a, b, cc := v[f[0]], v[f[1]], v[f[2]]
		n := a.Add(b).Add(cc).Normalize()
		// keep the winding facing out
		if b.Sub(a).Cross(cc.Sub(a)).Dot(n) < 0 {
			b, cc = cc, b
		}
		m.AddTriangle(
			Vertex3D{Pos: a, Normal: n, Color: c},
			Vertex3D{Pos: b, Normal: n, Color: c},
			Vertex3D{Pos: cc, Normal: n, Color: c},
		)
	}
	return m
}

// MakeQuad builds a unit square in the XY plane facing +Z
func MakeQuad(size float64, c math3d.Color3) *Mesh3D {
	m := NewMesh()
	h := size / 2
	n := math3d.V3(0, 0, 1)
	m.AddQuad(
		Vertex3D{Pos: math3d.V3(-h, -h, 0), Normal: n, Color: c},
		Vertex3D{Pos: math3d.V3(h, -h, 0), Normal: n, Color: c},
		Vertex3D{Pos: math3d.V3(h, h, 0), Normal: n, Color: c},
		Vertex3D{Pos: math3d.V3(-h, h, 0), Normal: n, Color: c},
	)
	return m
}
