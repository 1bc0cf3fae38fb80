package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pdevine/tensor"

	"github.com/mlouielu/sionna-utils/geometry"
	"github.com/mlouielu/sionna-utils/paths"
	"github.com/mlouielu/sionna-utils/scene"
	"github.com/mlouielu/sionna-utils/version"
)

func testServer(t *testing.T, p *paths.Paths) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sc := scene.New()
	mesh, err := geometry.ToSceneMesh(geometry.NewBox(1, 1, 1), "box")
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Add(&scene.SceneObject{Name: "box", Mesh: mesh}); err != nil {
		t.Fatal(err)
	}

	s := &Server{Scene: sc, Paths: p}
	handler, err := s.GenerateRoutes()
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func testPaths() *paths.Paths {
	interactions := tensor.New(
		tensor.WithShape(2, 1, 1, 2),
		tensor.WithBacking([]uint32{1, 1, 0, 2}),
	)
	objects := tensor.New(
		tensor.WithShape(2, 1, 1, 2),
		tensor.WithBacking([]uint32{3, 5, paths.InvalidObject, 7}),
	)
	valid := tensor.New(
		tensor.WithShape(1, 1, 2),
		tensor.WithBacking([]bool{true, false}),
	)
	aReal := tensor.New(tensor.WithShape(1, 1, 2), tensor.WithBacking([]float32{3, 0}))
	aImag := tensor.New(tensor.WithShape(1, 1, 2), tensor.WithBacking([]float32{4, 1}))
	return paths.New(interactions, objects, valid, aReal, aImag)
}

func getJSON(t *testing.T, url string, want int) map[string]any {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, want)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestVersionHandler(t *testing.T) {
	srv := testServer(t, nil)

	body := getJSON(t, srv.URL+"/api/version", http.StatusOK)
	if body["version"] != version.Version {
		t.Errorf("version = %v, want %v", body["version"], version.Version)
	}
}

func TestSceneHandler(t *testing.T) {
	srv := testServer(t, nil)

	body := getJSON(t, srv.URL+"/api/scene", http.StatusOK)
	objects, ok := body["objects"].([]any)
	if !ok || len(objects) != 1 {
		t.Fatalf("objects = %v, want one entry", body["objects"])
	}
}

func TestStatsHandler(t *testing.T) {
	srv := testServer(t, testPaths())

	body := getJSON(t, srv.URL+"/api/paths/stats?mode=max", http.StatusOK)
	if body["a_mag_mode"] != "max" {
		t.Errorf("a_mag_mode = %v, want max", body["a_mag_mode"])
	}
	mags, ok := body["a_mag"].([]any)
	if !ok || len(mags) != 2 {
		t.Fatalf("a_mag = %v, want two entries", body["a_mag"])
	}
	if mags[0].(float64) != 5 {
		t.Errorf("a_mag[0] = %v, want 5", mags[0])
	}
}

func TestStatsHandlerBadMode(t *testing.T) {
	srv := testServer(t, testPaths())

	body := getJSON(t, srv.URL+"/api/paths/stats?mode=bogus", http.StatusBadRequest)
	if _, ok := body["error"]; !ok {
		t.Error("expected error message in response")
	}
}

func TestStatsHandlerReportsSkippedSections(t *testing.T) {
	// A dump with no members cannot answer any section; the response must
	// say so instead of serving an empty 200.
	srv := testServer(t, paths.New(nil, nil, nil, nil, nil))

	body := getJSON(t, srv.URL+"/api/paths/stats", http.StatusOK)
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 3 {
		t.Fatalf("errors = %v, want three entries", body["errors"])
	}
	for _, key := range []string{"depths", "all_valid", "a_mag"} {
		if _, ok := body[key]; ok {
			t.Errorf("response contains %q despite the missing tensor", key)
		}
	}
}

func TestStatsHandlerNoPaths(t *testing.T) {
	srv := testServer(t, nil)
	getJSON(t, srv.URL+"/api/paths/stats", http.StatusNotFound)
}

func TestThumbnailHandler(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/scene/thumbnail?width=64&height=64")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/png") {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("thumbnail bounds = %v, want 64x64", b)
	}
}

func TestThumbnailHandlerSizeLimit(t *testing.T) {
	t.Setenv("SIONNA_THUMB_MAX", "128")
	srv := testServer(t, nil)

	// Above the configured cap the handler falls back to the defaults.
	resp, err := http.Get(srv.URL + "/api/scene/thumbnail?width=256&height=64")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 64 {
		t.Errorf("thumbnail bounds = %v, want 640x64", b)
	}
}
