package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NewBox builds an axis-aligned box with one corner at the origin,
// 8 vertices and 12 triangles.
func NewBox(width, height, depth float64) *TriangleMesh {
	w, h, d := width, height, depth
	return &TriangleMesh{
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: w, Y: 0, Z: 0},
			{X: 0, Y: h, Z: 0},
			{X: w, Y: h, Z: 0},
			{X: 0, Y: 0, Z: d},
			{X: w, Y: 0, Z: d},
			{X: 0, Y: h, Z: d},
			{X: w, Y: h, Z: d},
		},
		Faces: [][3]int{
			{4, 7, 5}, {4, 6, 7}, // top (+z)
			{0, 2, 4}, {2, 6, 4}, // -x
			{0, 1, 2}, {1, 3, 2}, // bottom (-z)
			{1, 5, 7}, {1, 7, 3}, // +x
			{2, 3, 7}, {2, 7, 6}, // +y
			{0, 4, 1}, {1, 4, 5}, // -y
		},
	}
}

// NewSphere builds a UV sphere centered at the origin with `resolution`
// latitude divisions and 2*resolution longitude divisions.
func NewSphere(radius float64, resolution int) *TriangleMesh {
	stacks := resolution
	if stacks < 2 {
		stacks = 2
	}
	sectors := 2 * stacks

	m := &TriangleMesh{}

	// Poles plus (stacks-1) rings of `sectors` vertices.
	m.Vertices = append(m.Vertices, r3.Vec{Z: radius})
	for i := 1; i < stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j < sectors; j++ {
			theta := 2 * math.Pi * float64(j) / float64(sectors)
			m.Vertices = append(m.Vertices, r3.Vec{
				X: radius * math.Sin(phi) * math.Cos(theta),
				Y: radius * math.Sin(phi) * math.Sin(theta),
				Z: radius * math.Cos(phi),
			})
		}
	}
	m.Vertices = append(m.Vertices, r3.Vec{Z: -radius})

	ring := func(i int) int { return 1 + (i-1)*sectors } // first vertex of ring i
	bottom := len(m.Vertices) - 1

	for j := 0; j < sectors; j++ {
		next := (j + 1) % sectors
		m.Faces = append(m.Faces, [3]int{0, ring(1) + j, ring(1) + next})
	}
	for i := 1; i < stacks-1; i++ {
		for j := 0; j < sectors; j++ {
			next := (j + 1) % sectors
			a, b := ring(i)+j, ring(i)+next
			c, d := ring(i+1)+j, ring(i+1)+next
			m.Faces = append(m.Faces, [3]int{a, c, d}, [3]int{a, d, b})
		}
	}
	for j := 0; j < sectors; j++ {
		next := (j + 1) % sectors
		m.Faces = append(m.Faces, [3]int{bottom, ring(stacks-1) + next, ring(stacks-1) + j})
	}

	return m
}

// ArrowConfig sizes an arrow built from a cylinder shaft and a cone head,
// both aligned with +Z and based at the origin.
type ArrowConfig struct {
	ConeHeight     float64
	ConeRadius     float64
	CylinderHeight float64
	CylinderRadius float64
	Resolution     int
}

// NewArrow builds an arrow mesh pointing along +Z.
func NewArrow(cfg ArrowConfig) *TriangleMesh {
	res := cfg.Resolution
	if res < 3 {
		res = 3
	}

	m := &TriangleMesh{}
	circle := func(radius, z float64) []int {
		idx := make([]int, res)
		for j := 0; j < res; j++ {
			theta := 2 * math.Pi * float64(j) / float64(res)
			idx[j] = len(m.Vertices)
			m.Vertices = append(m.Vertices, r3.Vec{
				X: radius * math.Cos(theta),
				Y: radius * math.Sin(theta),
				Z: z,
			})
		}
		return idx
	}

	baseCenter := len(m.Vertices)
	m.Vertices = append(m.Vertices, r3.Vec{})
	base := circle(cfg.CylinderRadius, 0)
	top := circle(cfg.CylinderRadius, cfg.CylinderHeight)
	coneBase := circle(cfg.ConeRadius, cfg.CylinderHeight)
	tip := len(m.Vertices)
	m.Vertices = append(m.Vertices, r3.Vec{Z: cfg.CylinderHeight + cfg.ConeHeight})

	for j := 0; j < res; j++ {
		next := (j + 1) % res

		// Shaft base disk, facing -z.
		m.Faces = append(m.Faces, [3]int{baseCenter, base[next], base[j]})

		// Shaft wall.
		m.Faces = append(m.Faces,
			[3]int{base[j], base[next], top[next]},
			[3]int{base[j], top[next], top[j]})

		// Annulus between shaft top and cone base, facing -z.
		m.Faces = append(m.Faces,
			[3]int{top[j], coneBase[next], coneBase[j]},
			[3]int{top[j], top[next], coneBase[next]})

		// Cone wall.
		m.Faces = append(m.Faces, [3]int{coneBase[j], coneBase[next], tip})
	}

	return m
}
