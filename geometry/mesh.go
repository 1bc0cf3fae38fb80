// Package geometry converts externally-represented triangle meshes into the
// solver's native mesh format and decorates scenes with visualization
// primitives.
package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlouielu/sionna-utils/scene"
)

// TriangleMesh is an indexed triangle mesh in the external toolkit's
// representation: vertex positions with optional per-vertex and per-face
// normals.
type TriangleMesh struct {
	Vertices      []r3.Vec
	VertexNormals []r3.Vec
	FaceNormals   []r3.Vec
	Faces         [][3]int
}

// HasVertexNormals reports whether every vertex carries a normal.
func (m *TriangleMesh) HasVertexNormals() bool {
	return len(m.Vertices) > 0 && len(m.VertexNormals) == len(m.Vertices)
}

// HasFaceNormals reports whether every face carries a normal.
func (m *TriangleMesh) HasFaceNormals() bool {
	return len(m.Faces) > 0 && len(m.FaceNormals) == len(m.Faces)
}

// ComputeFaceNormals fills FaceNormals from the face windings.
func (m *TriangleMesh) ComputeFaceNormals() {
	m.FaceNormals = make([]r3.Vec, len(m.Faces))
	for i, f := range m.Faces {
		m.FaceNormals[i] = faceNormal(m.Vertices, f)
	}
}

// ComputeVertexNormals fills VertexNormals with area-weighted averages of
// the adjacent face normals.
func (m *TriangleMesh) ComputeVertexNormals() {
	m.VertexNormals = make([]r3.Vec, len(m.Vertices))
	for _, f := range m.Faces {
		// Cross product length carries the area weighting.
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		for _, vi := range f {
			m.VertexNormals[vi] = r3.Add(m.VertexNormals[vi], n)
		}
	}
	for i, n := range m.VertexNormals {
		if r3.Norm(n) > 0 {
			m.VertexNormals[i] = r3.Unit(n)
		}
	}
}

func faceNormal(vertices []r3.Vec, f [3]int) r3.Vec {
	a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Norm(n) > 0 {
		return r3.Unit(n)
	}
	return n
}

// ToSceneMesh converts a triangle mesh into the solver's native mesh
// representation, copying vertex positions, per-vertex normals and face
// indices exactly.
func ToSceneMesh(m *TriangleMesh, name string) (*scene.Mesh, error) {
	if m == nil || len(m.Vertices) == 0 {
		return nil, fmt.Errorf("geometry: empty mesh %q", name)
	}

	out := &scene.Mesh{
		Name:             name,
		VertexCount:      len(m.Vertices),
		FaceCount:        len(m.Faces),
		VertexPositions:  make([]float32, 0, 3*len(m.Vertices)),
		Faces:            make([]uint32, 0, 3*len(m.Faces)),
		FaceNormals:      m.HasFaceNormals(),
		HasVertexNormals: m.HasVertexNormals(),
	}

	for _, v := range m.Vertices {
		out.VertexPositions = append(out.VertexPositions, float32(v.X), float32(v.Y), float32(v.Z))
	}
	if out.HasVertexNormals {
		out.VertexNormals = make([]float32, 0, 3*len(m.Vertices))
		for _, n := range m.VertexNormals {
			out.VertexNormals = append(out.VertexNormals, float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	for _, f := range m.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= len(m.Vertices) {
				return nil, fmt.Errorf("geometry: mesh %q face index %d out of range (%d vertices)", name, vi, len(m.Vertices))
			}
			out.Faces = append(out.Faces, uint32(vi))
		}
	}

	return out, nil
}
