// Command polystrip builds a quad strip along a Bézier spline, snaps it onto
// a surface mesh and writes the result as Wavefront OBJ.
//
// The surface is read from an STL file and the spline from a TOML file of
// [[point]] tables (see [polystrip.ReadSpline]). Engine tunables can be given
// in a TOML file of their own (see [polystrip.LoadConfig]).
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/core/cli"
	polystrip "github.com/geynet/retopology-contours"
)

// Config is the command line configuration.
type Config struct {

	// Surface is the STL file of the surface the strip is snapped to.
	Surface string

	// Spline is the TOML file holding the spline control points.
	Spline string

	// Engine is an optional TOML file of engine settings.
	Engine string

	// Output is the OBJ file to write.
	Output string `default:"polystrip.obj"`

	// Verbose enables debug logging.
	Verbose bool
}

func main() {
	opts := cli.DefaultOptions("polystrip", "Polystrip builds a quad strip along a spline and snaps it onto a surface mesh.")
	cli.Run(opts, &Config{}, Build)
}

// Build builds the strip mesh and writes it to the output file.
func Build(c *Config) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if c.Surface == "" || c.Spline == "" {
		return errors.New("both -surface and -spline are required")
	}

	cfg, err := loadEngineConfig(c.Engine)
	if err != nil {
		return err
	}
	surface, err := loadSTL(c.Surface)
	if err != nil {
		return err
	}
	logger.Info("loaded surface", "path", c.Surface, "triangles", len(surface))

	points, err := loadSpline(c.Spline)
	if err != nil {
		return err
	}
	mesh, err := buildMesh(points, surface, cfg, logger)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	if err := mesh.WriteOBJ(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", c.Output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("wrote strip mesh", "path", c.Output, "vertices", len(mesh.Vertices), "quads", len(mesh.Quads))
	return nil
}

// buildMesh runs the engine over the spline and returns the welded strip
// mesh. A surface without usable triangles is not fatal: the strip is
// produced unsnapped. Any edge that could not be computed is.
func buildMesh(points []polystrip.SplinePoint, surface polystrip.Surface, cfg polystrip.Config, logger *slog.Logger) (polystrip.Mesh, error) {
	ps, err := polystrip.FromSpline(points, surface, cfg, logger)
	if err != nil {
		return polystrip.Mesh{}, err
	}
	if err := ps.RebuildAll(); err != nil {
		if len(ps.Dirty()) > 0 || !errors.Is(err, polystrip.ErrEmptySurface) {
			return polystrip.Mesh{}, err
		}
		logger.Warn("surface has no usable triangles, writing unsnapped strip")
	}
	return ps.Mesh().Weld(cfg.WeldTolerance), nil
}

func loadEngineConfig(path string) (polystrip.Config, error) {
	if path == "" {
		return polystrip.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return polystrip.Config{}, err
	}
	defer f.Close()
	cfg, err := polystrip.LoadConfig(f)
	if err != nil {
		return polystrip.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func loadSpline(path string) ([]polystrip.SplinePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	points, err := polystrip.ReadSpline(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}
