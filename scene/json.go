package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// sceneFile is the on-disk scene description.
type sceneFile struct {
	Materials    []*RadioMaterial `json:"materials"`
	Objects      []*SceneObject   `json:"objects"`
	Transmitters []*RadioDevice   `json:"transmitters,omitempty"`
	Receivers    []*RadioDevice   `json:"receivers,omitempty"`
}

// Load reads a scene description file. Object material references are
// resolved against the material list by name.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sf sceneFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("scene: parsing %s: %w", path, err)
	}

	s := New()
	for _, m := range sf.Materials {
		if err := s.Add(m); err != nil {
			return nil, err
		}
	}
	for _, o := range sf.Objects {
		if o.Material != nil && o.Material.Name != "" {
			if m, err := s.Material(o.Material.Name); err == nil {
				o.Material = m
			}
		}
		if err := s.Add(o); err != nil {
			return nil, err
		}
	}
	for _, tx := range sf.Transmitters {
		s.AddTransmitter(tx)
	}
	for _, rx := range sf.Receivers {
		s.AddReceiver(rx)
	}
	return s, nil
}

// Save writes the scene description to a file.
func (s *Scene) Save(path string) error {
	sf := sceneFile{
		Materials:    s.Materials(),
		Objects:      s.Objects(),
		Transmitters: s.transmitters,
		Receivers:    s.receivers,
	}
	raw, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
