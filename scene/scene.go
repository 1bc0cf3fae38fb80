// Package scene models the solver's scene graph as seen by post-processing
// tools: radio materials, mesh objects, and radio devices, registered by
// name. Registration mutates the scene in place and is not synchronized;
// callers serialize concurrent access themselves.
package scene

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"gonum.org/v1/gonum/spatial/r3"
)

// RadioMaterial describes the electromagnetic surface properties of scene
// objects. Color only affects visualization.
type RadioMaterial struct {
	Name         string     `json:"name"`
	Permittivity float64    `json:"permittivity"`
	Color        [3]float64 `json:"color"`
}

// SceneObject places a mesh with a radio material in the scene.
type SceneObject struct {
	Name        string         `json:"name"`
	Mesh        *Mesh          `json:"mesh"`
	Material    *RadioMaterial `json:"material,omitempty"`
	Position    r3.Vec         `json:"position"`
	Orientation [3]float64     `json:"orientation"`
}

// RadioDevice is a transmitter or receiver placed in the scene.
type RadioDevice struct {
	Name          string     `json:"name"`
	Position      r3.Vec     `json:"position"`
	Orientation   [3]float64 `json:"orientation"`
	DisplayRadius float64    `json:"display_radius"`
}

// Scene is a mutable registry of materials, objects and radio devices.
type Scene struct {
	materials map[string]*RadioMaterial
	objects   map[string]*SceneObject

	// Registration order, for deterministic iteration and export.
	materialOrder []string
	objectOrder   []string

	transmitters []*RadioDevice
	receivers    []*RadioDevice
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{
		materials: make(map[string]*RadioMaterial),
		objects:   make(map[string]*SceneObject),
	}
}

// Add registers a material, object, transmitter or receiver. Names must be
// unique within their kind.
func (s *Scene) Add(v any) error {
	switch item := v.(type) {
	case *RadioMaterial:
		return s.addMaterial(item)
	case *SceneObject:
		return s.addObject(item)
	default:
		return fmt.Errorf("scene: cannot add %T", v)
	}
}

func (s *Scene) addMaterial(m *RadioMaterial) error {
	if m.Name == "" {
		return fmt.Errorf("scene: material needs a name")
	}
	if _, ok := s.materials[m.Name]; ok {
		return fmt.Errorf("scene: material %q already registered", m.Name)
	}
	s.materials[m.Name] = m
	s.materialOrder = append(s.materialOrder, m.Name)
	return nil
}

func (s *Scene) addObject(o *SceneObject) error {
	if o.Name == "" {
		return fmt.Errorf("scene: object needs a name")
	}
	if _, ok := s.objects[o.Name]; ok {
		return fmt.Errorf("scene: object %q already registered", o.Name)
	}
	if o.Mesh == nil {
		return fmt.Errorf("scene: object %q has no mesh", o.Name)
	}
	if err := o.Mesh.Validate(); err != nil {
		return fmt.Errorf("scene: object %q: %w", o.Name, err)
	}
	s.objects[o.Name] = o
	s.objectOrder = append(s.objectOrder, o.Name)
	return nil
}

// AddTransmitter places a transmitter in the scene.
func (s *Scene) AddTransmitter(d *RadioDevice) {
	s.transmitters = append(s.transmitters, d)
}

// AddReceiver places a receiver in the scene.
func (s *Scene) AddReceiver(d *RadioDevice) {
	s.receivers = append(s.receivers, d)
}

// Edit applies a batch of object additions and removals.
func (s *Scene) Edit(add []*SceneObject, remove []string) error {
	for _, o := range add {
		if err := s.addObject(o); err != nil {
			return err
		}
	}
	for _, name := range remove {
		if _, ok := s.objects[name]; !ok {
			return fmt.Errorf("scene: cannot remove unknown object %q", name)
		}
		delete(s.objects, name)
		for i, n := range s.objectOrder {
			if n == name {
				s.objectOrder = append(s.objectOrder[:i], s.objectOrder[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Get looks a material or object up by name, or nil when absent. Materials
// shadow objects of the same name, matching the shared namespace the
// solver's decoration helpers rely on.
func (s *Scene) Get(name string) any {
	if m, ok := s.materials[name]; ok {
		return m
	}
	if o, ok := s.objects[name]; ok {
		return o
	}
	return nil
}

// Material looks a material up by name; a miss suggests the closest
// registered name.
func (s *Scene) Material(name string) (*RadioMaterial, error) {
	if m, ok := s.materials[name]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("scene: unknown material %q%s", name, suggestion(name, s.materialOrder))
}

// Object looks an object up by name; a miss suggests the closest
// registered name.
func (s *Scene) Object(name string) (*SceneObject, error) {
	if o, ok := s.objects[name]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("scene: unknown object %q%s", name, suggestion(name, s.objectOrder))
}

// Materials returns all materials in registration order.
func (s *Scene) Materials() []*RadioMaterial {
	out := make([]*RadioMaterial, 0, len(s.materialOrder))
	for _, name := range s.materialOrder {
		out = append(out, s.materials[name])
	}
	return out
}

// Objects returns all objects in registration order.
func (s *Scene) Objects() []*SceneObject {
	out := make([]*SceneObject, 0, len(s.objectOrder))
	for _, name := range s.objectOrder {
		out = append(out, s.objects[name])
	}
	return out
}

// Transmitters returns the scene's transmitters.
func (s *Scene) Transmitters() []*RadioDevice { return s.transmitters }

// Receivers returns the scene's receivers.
func (s *Scene) Receivers() []*RadioDevice { return s.receivers }

// suggestion finds the candidate closest to name, within a small edit
// distance.
func suggestion(name string, candidates []string) string {
	best, bestDist := "", 5
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
