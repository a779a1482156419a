// Command waterlevel generates the flooded-area polygon for a water level
// above a reference point and registers it with a project.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	waterlevel "github.com/godeepar/waterlevel"
	"github.com/godeepar/waterlevel/config"
	"github.com/godeepar/waterlevel/internal/prompt"
	"github.com/godeepar/waterlevel/project"
	"github.com/godeepar/waterlevel/raster"
	"github.com/godeepar/waterlevel/toolbox"
)

func main() {
	projectPath := flag.String("project", os.Getenv(config.EnvProject), "project file path")
	dem := flag.String("dem", "", "DEM raster path (ESRI ASCII Grid)")
	points := flag.String("points", "", "reference point layer (name or id in the project)")
	level := flag.Float64("level", 10.0, "water level in meters above the reference point")
	extent := flag.String("extent", "canvas", `processing extent: "canvas", "dem", or "xmin,xmax,ymin,ymax [EPSG:code]"`)
	out := flag.String("out", os.Getenv(config.EnvOutputDir), "output directory (default: <project home>/output)")
	interactive := flag.Bool("i", false, "prompt for the water level instead of using -level")
	flag.Parse()

	if *projectPath == "" {
		log.Printf("no project file given (use -project or %s)", config.EnvProject)
		os.Exit(1)
	}
	if *dem == "" {
		log.Printf("no DEM raster given (use -dem)")
		os.Exit(1)
	}

	if *interactive {
		p := prompt.New(os.Stdin, os.Stdout)
		v, err := p.Float("water level (m)", *level)
		if errors.Is(err, prompt.ErrCancelled) {
			fmt.Println("cancelled")
			return
		}
		if err != nil {
			log.Printf("reading input: %v", err)
			os.Exit(1)
		}
		*level = v
	}

	if err := run(*projectPath, *dem, *points, *extent, *out, *level); err != nil {
		log.Printf("water level: %v", err)
		var opErr *toolbox.OpError
		if errors.As(err, &opErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(projectPath, dem, points, extentSpec, out string, level float64) error {
	proj, err := project.Open(projectPath)
	if err != nil {
		return err
	}
	defer proj.Close()

	layer, err := pointLayer(proj, points)
	if err != nil {
		return err
	}

	ext, err := processingExtent(proj, extentSpec)
	if err != nil {
		return err
	}

	res, err := waterlevel.Generate(proj, toolbox.Local{}, waterlevel.GenerateParams{
		DEM:       dem,
		Points:    layer,
		Level:     level,
		Extent:    ext,
		OutputDir: out,
	})
	if err != nil {
		return err
	}

	fmt.Printf("base elevation: %.2f m\n", res.Base)
	fmt.Printf("polygon: %s\n", res.Polygon)
	fmt.Printf("layer: %s (%s)\n", res.Layer.Name, res.Layer.ID)

	return nil
}

// pointLayer resolves the reference point layer: the named (or id'd) layer
// when given, otherwise the only point layer in the project.
func pointLayer(proj *project.Project, ref string) (*project.Layer, error) {
	if ref != "" {
		return proj.Layer(ref)
	}

	layers, err := proj.VectorLayers("Point")
	if err != nil {
		return nil, err
	}
	switch len(layers) {
	case 0:
		return nil, waterlevel.ErrMissingSelection
	case 1:
		return layers[0], nil
	}
	return nil, fmt.Errorf("%d point layers in project, pick one with -points", len(layers))
}

// processingExtent maps the -extent flag onto an extent: the stored view
// extent for "canvas", the whole DEM for "dem", a parsed extent otherwise.
func processingExtent(proj *project.Project, spec string) (raster.Extent, error) {
	switch spec {
	case "canvas":
		return proj.ViewExtent()
	case "dem", "":
		return raster.Extent{}, nil
	}
	return raster.ParseExtent(spec)
}
