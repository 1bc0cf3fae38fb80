package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlouielu/sionna-utils/scene"
)

func TestCoordinateFrame(t *testing.T) {
	sc := scene.New()

	frame, err := CoordinateFrame(sc, 1.0, r3.Vec{})
	if err != nil {
		t.Fatalf("CoordinateFrame() error = %v", err)
	}

	// The handle exposes all four objects, not just the Z arrow.
	for name, obj := range map[string]*scene.SceneObject{
		"origin":  frame.Origin,
		"arrow x": frame.ArrowX,
		"arrow y": frame.ArrowY,
		"arrow z": frame.ArrowZ,
	} {
		if obj == nil {
			t.Fatalf("frame %s is nil", name)
		}
		if obj.Material == nil {
			t.Errorf("frame %s has no material", name)
		}
	}

	if got := len(sc.Objects()); got != 4 {
		t.Errorf("scene has %d objects, want 4", got)
	}
	if got := len(sc.Materials()); got != 4 {
		t.Errorf("scene has %d materials, want 4", got)
	}

	if frame.ArrowX.Position != (r3.Vec{X: 0.5}) {
		t.Errorf("arrow x position = %v, want (0.5,0,0)", frame.ArrowX.Position)
	}
	if frame.ArrowX.Orientation != [3]float64{0, math.Pi / 2, 0} {
		t.Errorf("arrow x orientation = %v", frame.ArrowX.Orientation)
	}
	if frame.ArrowZ.Position != (r3.Vec{Z: 0.5}) {
		t.Errorf("arrow z position = %v, want (0,0,0.5)", frame.ArrowZ.Position)
	}
}

func TestCoordinateFrameOffset(t *testing.T) {
	sc := scene.New()
	pos := r3.Vec{X: 1, Y: 2, Z: 3}

	frame, err := CoordinateFrame(sc, 2.0, pos)
	if err != nil {
		t.Fatalf("CoordinateFrame() error = %v", err)
	}

	if frame.Origin.Position != pos {
		t.Errorf("origin position = %v, want %v", frame.Origin.Position, pos)
	}
	if frame.ArrowY.Position != (r3.Vec{X: 1, Y: 3, Z: 3}) {
		t.Errorf("arrow y position = %v, want offset by half the arrow length", frame.ArrowY.Position)
	}
}

func TestCoordinateFrameMaterialsIdempotent(t *testing.T) {
	sc := scene.New()
	if _, err := CoordinateFrame(sc, 1.0, r3.Vec{}); err != nil {
		t.Fatalf("CoordinateFrame() error = %v", err)
	}

	// The object names are fixed, so a second frame must fail — but
	// without attempting to re-register the shared materials.
	if _, err := CoordinateFrame(sc, 1.0, r3.Vec{}); err == nil {
		t.Fatal("second CoordinateFrame() succeeded, want duplicate object error")
	}
	if got := len(sc.Materials()); got != 4 {
		t.Errorf("scene has %d materials after second call, want 4", got)
	}
}
