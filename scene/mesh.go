package scene

import "fmt"

// Mesh is the solver's native mesh representation: flat vertex buffers and
// triangle indices, matching the layout the solver's geometry kernel maps
// into its own parameters.
type Mesh struct {
	Name        string `json:"name"`
	VertexCount int    `json:"vertex_count"`
	FaceCount   int    `json:"face_count"`

	// VertexPositions holds VertexCount xyz triples.
	VertexPositions []float32 `json:"vertex_positions"`

	// VertexNormals holds VertexCount xyz triples when HasVertexNormals.
	VertexNormals []float32 `json:"vertex_normals,omitempty"`

	// Faces holds FaceCount index triples into the vertex buffer.
	Faces []uint32 `json:"faces"`

	// FaceNormals marks meshes shaded with per-face normals.
	FaceNormals      bool `json:"face_normals"`
	HasVertexNormals bool `json:"has_vertex_normals"`
}

// Validate checks buffer lengths and face index bounds.
func (m *Mesh) Validate() error {
	if len(m.VertexPositions) != 3*m.VertexCount {
		return fmt.Errorf("mesh %s: %d position floats for %d vertices", m.Name, len(m.VertexPositions), m.VertexCount)
	}
	if m.HasVertexNormals && len(m.VertexNormals) != 3*m.VertexCount {
		return fmt.Errorf("mesh %s: %d normal floats for %d vertices", m.Name, len(m.VertexNormals), m.VertexCount)
	}
	if len(m.Faces) != 3*m.FaceCount {
		return fmt.Errorf("mesh %s: %d face indices for %d faces", m.Name, len(m.Faces), m.FaceCount)
	}
	for _, idx := range m.Faces {
		if int(idx) >= m.VertexCount {
			return fmt.Errorf("mesh %s: face index %d out of range (%d vertices)", m.Name, idx, m.VertexCount)
		}
	}
	return nil
}
