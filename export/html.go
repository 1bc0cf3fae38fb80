// Package export serializes scenes into standalone artifacts: an
// interactive HTML preview and raster thumbnails.
package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mlouielu/sionna-utils/scene"
)

//go:embed preview.html.tmpl
var previewSource string

var previewTmpl = template.Must(template.New("preview").Parse(previewSource))

// Options configure the HTML preview.
type Options struct {
	Title            string
	ShowOrientations bool
	ShowRadioDevices bool
}

// Option mutates preview options.
type Option func(*Options)

// WithTitle sets the HTML document title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithOrientations toggles device orientation markers.
func WithOrientations(show bool) Option {
	return func(o *Options) { o.ShowOrientations = show }
}

// WithRadioDevices toggles transmitter/receiver markers.
func WithRadioDevices(show bool) Option {
	return func(o *Options) { o.ShowRadioDevices = show }
}

type previewObject struct {
	Name      string     `json:"name"`
	Color     [3]float64 `json:"color"`
	Position  [3]float64 `json:"position"`
	Positions []float32  `json:"positions"`
	Faces     []uint32   `json:"faces"`
}

type previewDevice struct {
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	Position    [3]float64 `json:"position"`
	Orientation [3]float64 `json:"orientation"`
	Radius      float64    `json:"radius"`
}

type previewModel struct {
	Objects          []previewObject `json:"objects"`
	Devices          []previewDevice `json:"devices"`
	ShowOrientations bool            `json:"show_orientations"`
}

// Render serializes the scene preview into a standalone HTML document.
func Render(sc *scene.Scene, opts ...Option) ([]byte, error) {
	options := Options{Title: "Scene Preview", ShowRadioDevices: true}
	for _, opt := range opts {
		opt(&options)
	}

	model := previewModel{ShowOrientations: options.ShowOrientations}
	for _, o := range sc.Objects() {
		po := previewObject{
			Name:      o.Name,
			Color:     [3]float64{0.7, 0.7, 0.7},
			Position:  [3]float64{o.Position.X, o.Position.Y, o.Position.Z},
			Positions: o.Mesh.VertexPositions,
			Faces:     o.Mesh.Faces,
		}
		if o.Material != nil {
			po.Color = o.Material.Color
		}
		model.Objects = append(model.Objects, po)
	}
	if options.ShowRadioDevices {
		for _, tx := range sc.Transmitters() {
			model.Devices = append(model.Devices, device(tx, "tx"))
		}
		for _, rx := range sc.Receivers() {
			model.Devices = append(model.Devices, device(rx, "rx"))
		}
	}

	raw, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("export: encoding scene model: %w", err)
	}

	var buf strings.Builder
	err = previewTmpl.Execute(&buf, struct {
		Title    string
		WidgetID string
		ViewID   string
		Model    template.JS
	}{
		Title:    options.Title,
		WidgetID: uuid.NewString(),
		ViewID:   uuid.NewString(),
		Model:    template.JS(raw),
	})
	if err != nil {
		return nil, fmt.Errorf("export: rendering preview: %w", err)
	}
	return []byte(buf.String()), nil
}

// HTML writes the scene preview to a standalone HTML file.
func HTML(sc *scene.Scene, fpath string, opts ...Option) error {
	raw, err := Render(sc, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fpath, raw, 0o644); err != nil {
		return err
	}
	slog.Debug("exported scene preview", "path", fpath, "bytes", len(raw))
	return nil
}

func device(d *scene.RadioDevice, kind string) previewDevice {
	return previewDevice{
		Name:        d.Name,
		Kind:        kind,
		Position:    [3]float64{d.Position.X, d.Position.Y, d.Position.Z},
		Orientation: d.Orientation,
		Radius:      d.DisplayRadius,
	}
}
