// Command addpoint adds a single 3D reference point layer to a project.
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
)

func main() {
	projectPath := flag.String("project", os.Getenv(config.EnvProject), "project file path")
	name := flag.String("name", "measurement_point", "layer name")
	x := flag.Float64("x", 641056.0, "x coordinate")
	y := flag.Float64("y", 162787.0, "y coordinate")
	z := flag.Float64("z", 88.86, "z coordinate (elevation)")
	output := flag.String("o", "", "shapefile output path (default: in-memory layer)")
	interactive := flag.Bool("i", false, "prompt for the point instead of using flags")
	flag.Parse()

	if *projectPath == "" {
		log.Printf("no project file given (use -project or %s)", config.EnvProject)
		os.Exit(1)
	}

	params := waterlevel.PointLayerParams{Name: *name, X: *x, Y: *y, Z: *z, Output: *output}
	if *interactive {
		var err error
		params, err = promptParams(params)
		if errors.Is(err, prompt.ErrCancelled) {
			fmt.Println("cancelled")
			return
		}
		if err != nil {
			log.Printf("reading input: %v", err)
			os.Exit(1)
		}
	}

	if err := run(*projectPath, params); err != nil {
		log.Printf("add point: %v", err)
		if errors.Is(err, waterlevel.ErrValidation) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func run(projectPath string, params waterlevel.PointLayerParams) error {
	proj, err := project.Open(projectPath)
	if err != nil {
		return err
	}
	defer proj.Close()

	layer, err := waterlevel.CreatePointLayer(proj, params)
	if err != nil {
		return err
	}
	fmt.Printf("added layer %s (%s)\n", layer.Name, layer.ID)

	return nil
}

func promptParams(def waterlevel.PointLayerParams) (waterlevel.PointLayerParams, error) {
	p := prompt.New(os.Stdin, os.Stdout)

	var err error
	if def.Name, err = p.String("layer name", def.Name); err != nil {
		return def, err
	}
	if def.X, err = p.Float("x coordinate", def.X); err != nil {
		return def, err
	}
	if def.Y, err = p.Float("y coordinate", def.Y); err != nil {
		return def, err
	}
	if def.Z, err = p.Float("z coordinate", def.Z); err != nil {
		return def, err
	}

	return def, nil
}
