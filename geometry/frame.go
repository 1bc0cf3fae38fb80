package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlouielu/sionna-utils/scene"
)

// Fixed names for the coordinate frame's shared materials and objects.
const (
	matBlack = "_coord_black"
	matRed   = "_coord_red"
	matGreen = "_coord_green"
	matBlue  = "_coord_blue"

	originName = "_coord_origin"
	arrowXName = "_coord_arrow_x"
	arrowYName = "_coord_arrow_y"
	arrowZName = "_coord_arrow_z"
)

// Frame holds the four scene objects of a coordinate frame: the origin
// sphere and the X (red), Y (green) and Z (blue) axis arrows.
type Frame struct {
	Origin *scene.SceneObject
	ArrowX *scene.SceneObject
	ArrowY *scene.SceneObject
	ArrowZ *scene.SceneObject
}

// CoordinateFrame adds a coordinate frame of the given scale to the scene
// at position: a black origin sphere plus red/green/blue unit arrows along
// X, Y and Z. The shared _coord_* materials are registered once and reused
// by later frames; object names are fixed, so a scene holds at most one
// frame.
func CoordinateFrame(sc *scene.Scene, scale float64, position r3.Vec) (*Frame, error) {
	if sc.Get(matBlack) == nil {
		mats := []*scene.RadioMaterial{
			{Name: matBlack, Permittivity: 1.0, Color: [3]float64{0, 0, 0}},
			{Name: matRed, Permittivity: 1.0, Color: [3]float64{1, 0, 0}},
			{Name: matGreen, Permittivity: 1.0, Color: [3]float64{0, 1, 0}},
			{Name: matBlue, Permittivity: 1.0, Color: [3]float64{0, 0, 1}},
		}
		for _, m := range mats {
			if err := sc.Add(m); err != nil {
				return nil, err
			}
		}
	}

	length := 1.0 * scale

	sphere := NewSphere(0.05*scale, 20)
	sphere.ComputeVertexNormals()
	originMesh, err := ToSceneMesh(sphere, originName)
	if err != nil {
		return nil, err
	}

	arrowCfg := ArrowConfig{
		ConeHeight:     0.1 * scale,
		ConeRadius:     0.03 * scale,
		CylinderHeight: length - 0.1*scale,
		CylinderRadius: 0.01 * scale,
		Resolution:     20,
	}
	arrowMesh := func(name string) (*scene.Mesh, error) {
		arrow := NewArrow(arrowCfg)
		arrow.ComputeVertexNormals()
		return ToSceneMesh(arrow, name)
	}

	arrowX, err := arrowMesh(arrowXName)
	if err != nil {
		return nil, err
	}
	arrowY, err := arrowMesh(arrowYName)
	if err != nil {
		return nil, err
	}
	arrowZ, err := arrowMesh(arrowZName)
	if err != nil {
		return nil, err
	}

	material := func(name string) *scene.RadioMaterial {
		m, _ := sc.Material(name)
		return m
	}

	frame := &Frame{
		Origin: &scene.SceneObject{
			Name:     originName,
			Mesh:     originMesh,
			Material: material(matBlack),
			Position: position,
		},
		ArrowX: &scene.SceneObject{
			Name:        arrowXName,
			Mesh:        arrowX,
			Material:    material(matRed),
			Position:    r3.Add(position, r3.Vec{X: length / 2}),
			Orientation: [3]float64{0, math.Pi / 2, 0},
		},
		ArrowY: &scene.SceneObject{
			Name:        arrowYName,
			Mesh:        arrowY,
			Material:    material(matGreen),
			Position:    r3.Add(position, r3.Vec{Y: length / 2}),
			Orientation: [3]float64{0, 0, -math.Pi / 2},
		},
		ArrowZ: &scene.SceneObject{
			Name:        arrowZName,
			Mesh:        arrowZ,
			Material:    material(matBlue),
			Position:    r3.Add(position, r3.Vec{Z: length / 2}),
		},
	}

	add := []*scene.SceneObject{frame.Origin, frame.ArrowX, frame.ArrowY, frame.ArrowZ}
	if err := sc.Edit(add, nil); err != nil {
		return nil, fmt.Errorf("adding coordinate frame: %w", err)
	}

	return frame, nil
}
