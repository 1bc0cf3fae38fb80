// Package server exposes a loaded scene and solver paths dump over HTTP
// for interactive previewing.
package server

import (
	"fmt"
	"image/png"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mlouielu/sionna-utils/envconfig"
	"github.com/mlouielu/sionna-utils/export"
	"github.com/mlouielu/sionna-utils/paths"
	"github.com/mlouielu/sionna-utils/scene"
	"github.com/mlouielu/sionna-utils/version"
)

// Server serves a scene and, optionally, a paths dump.
type Server struct {
	Scene *scene.Scene
	Paths *paths.Paths
}

// GenerateRoutes builds the HTTP router.
func (s *Server) GenerateRoutes() (http.Handler, error) {
	if !envconfig.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{"Authorization", "Content-Type", "User-Agent", "Accept", "X-Requested-With"}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(cors.New(corsConfig))

	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "sionna-utils is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "sionna-utils is running") })
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })

	r.GET("/preview", s.PreviewHandler)
	r.GET("/api/scene", s.SceneHandler)
	r.GET("/api/scene/thumbnail", s.ThumbnailHandler)
	r.GET("/api/paths/stats", s.StatsHandler)

	return r, nil
}

// PreviewHandler serves the interactive HTML preview of the scene.
func (s *Server) PreviewHandler(c *gin.Context) {
	raw, err := export.Render(s.Scene, export.WithTitle("Scene Preview"), export.WithOrientations(true))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", raw)
}

// SceneHandler serves the scene description as JSON.
func (s *Server) SceneHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"materials":    s.Scene.Materials(),
		"objects":      s.Scene.Objects(),
		"transmitters": s.Scene.Transmitters(),
		"receivers":    s.Scene.Receivers(),
	})
}

// ThumbnailHandler serves a wireframe PNG of the scene. Width and height
// are clamped to sane bounds.
func (s *Server) ThumbnailHandler(c *gin.Context) {
	limit := int(envconfig.ThumbnailMax())
	width := intQuery(c, "width", 640, 16, limit)
	height := intQuery(c, "height", 480, 16, limit)

	img := export.Thumbnail(s.Scene, width, height)
	c.Status(http.StatusOK)
	c.Header("Content-Type", "image/png")
	if err := png.Encode(c.Writer, img); err != nil {
		slog.Warn("thumbnail encode failed", "error", err)
	}
}

// StatsHandler serves per-path statistics of the loaded dump: interaction
// depth counts, the all-valid mask, and reduced coefficient magnitudes.
// Sections the dump cannot answer are reported under "errors".
func (s *Server) StatsHandler(c *gin.Context) {
	if s.Paths == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no paths dump loaded"})
		return
	}

	mode, err := paths.ParseMagMode(c.DefaultQuery("mode", "max"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats := gin.H{}
	var errs []string
	if depths, err := paths.Depths(s.Paths); err == nil {
		stats["depths"] = depths.Data()
		stats["depths_shape"] = depths.Shape()
	} else {
		errs = append(errs, fmt.Sprintf("depths: %v", err))
	}
	if mask, err := paths.AllValid(s.Paths); err == nil {
		stats["all_valid"] = mask
	} else {
		errs = append(errs, fmt.Sprintf("all_valid: %v", err))
	}
	if mag, err := paths.AMagReduced(s.Paths, mode); err == nil {
		stats["a_mag"] = mag
		stats["a_mag_mode"] = mode.String()
	} else {
		errs = append(errs, fmt.Sprintf("a_mag: %v", err))
	}
	if len(errs) > 0 {
		slog.Debug("paths stats sections skipped", "errors", errs)
		stats["errors"] = errs
	}
	c.JSON(http.StatusOK, stats)
}

// Serve runs the server on the listener until it fails.
func Serve(ln net.Listener, sc *scene.Scene, p *paths.Paths) error {
	s := &Server{Scene: sc, Paths: p}
	handler, err := s.GenerateRoutes()
	if err != nil {
		return err
	}

	slog.Info("preview server listening", "addr", ln.Addr())
	slog.Info("server config", "env", envconfig.Values())
	srv := &http.Server{Handler: handler}
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func intQuery(c *gin.Context, key string, def, lo, hi int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil || v < lo || v > hi {
		return def
	}
	return v
}
