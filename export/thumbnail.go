package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlouielu/sionna-utils/scene"
)

// Thumbnail renders a wireframe overview of the scene: an isometric
// projection drawn at double resolution and downsampled for cheap
// antialiasing.
func Thumbnail(sc *scene.Scene, width, height int) image.Image {
	const super = 2
	w, h := width*super, height*super
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{27, 27, 31, 255}), image.Point{}, draw.Src)

	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	eachVertex(sc, func(v r3.Vec) {
		lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	})
	if math.IsInf(lo.X, 1) {
		lo, hi = r3.Vec{X: -1, Y: -1, Z: -1}, r3.Vec{X: 1, Y: 1, Z: 1}
	}
	center := r3.Scale(0.5, r3.Add(lo, hi))
	radius := math.Max(r3.Norm(r3.Sub(hi, lo))/2, 1e-6)
	scale := float64(min(w, h)) / (2.5 * radius)

	project := func(v r3.Vec) (int, int) {
		p := r3.Sub(v, center)
		// Isometric: rotate 45 degrees around Z, tilt toward the viewer.
		x := (p.X - p.Y) * math.Sqrt2 / 2
		y := (p.X+p.Y)*math.Sqrt2/4 - p.Z*math.Sqrt(3)/2
		return w/2 + int(x*scale), h/2 + int(y*scale)
	}

	for _, o := range sc.Objects() {
		c := color.RGBA{178, 178, 178, 255}
		if o.Material != nil {
			c = color.RGBA{
				uint8(o.Material.Color[0] * 255),
				uint8(o.Material.Color[1] * 255),
				uint8(o.Material.Color[2] * 255),
				255,
			}
		}
		for i := 0; i+2 < len(o.Mesh.Faces); i += 3 {
			a := meshVertex(o, int(o.Mesh.Faces[i]))
			b := meshVertex(o, int(o.Mesh.Faces[i+1]))
			cc := meshVertex(o, int(o.Mesh.Faces[i+2]))
			ax, ay := project(a)
			bx, by := project(b)
			cx, cy := project(cc)
			line(img, ax, ay, bx, by, c)
			line(img, bx, by, cx, cy, c)
			line(img, cx, cy, ax, ay, c)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

func eachVertex(sc *scene.Scene, fn func(r3.Vec)) {
	for _, o := range sc.Objects() {
		for i := 0; i < o.Mesh.VertexCount; i++ {
			fn(meshVertex(o, i))
		}
	}
}

func meshVertex(o *scene.SceneObject, i int) r3.Vec {
	return r3.Add(o.Position, r3.Vec{
		X: float64(o.Mesh.VertexPositions[3*i]),
		Y: float64(o.Mesh.VertexPositions[3*i+1]),
		Z: float64(o.Mesh.VertexPositions[3*i+2]),
	})
}

// line draws with the integer Bresenham walk.
func line(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
