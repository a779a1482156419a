// Package waterlevel implements the two field tools of this module: creating
// a single-point reference layer and generating the flooded-area polygon for
// a water level above that point. Both operate on an explicit project and a
// toolbox handle rather than application globals.
package waterlevel

import (
	"fmt"
	"log"
	"strings"

	"github.com/godeepar/waterlevel/feature"
	"github.com/godeepar/waterlevel/project"
	"github.com/godeepar/waterlevel/raster"
)

// PointLayerParams describe one reference point. Output is the shapefile path
// to persist to; when empty the layer is stored in the project file as an
// in-memory GeoJSON layer.
type PointLayerParams struct {
	Name   string
	X, Y   float64
	Z      float64
	Output string
}

// CreatePointLayer builds a single-feature 3D point layer and registers it
// with the project. The feature carries id, x, y, z and name attributes so
// the coordinate survives formats that drop the geometry Z. It returns the
// registered layer.
func CreatePointLayer(proj *project.Project, p PointLayerParams) (*project.Layer, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("layer name is empty: %w", ErrValidation)
	}

	f := feature.Feature{XYZ: []float64{p.X, p.Y, p.Z}}
	f.SetAttribute("id", 1)
	f.SetAttribute("x", p.X)
	f.SetAttribute("y", p.Y)
	f.SetAttribute("z", p.Z)
	f.SetAttribute("name", name)

	d := &feature.Dataset{
		Name:     name,
		GeomType: feature.GeomPoint,
		Features: []feature.Feature{f},
	}

	l := &project.Layer{
		Name:     name,
		Kind:     project.KindVector,
		GeomType: feature.GeomPoint,
		Extent:   raster.Extent{XMin: p.X, XMax: p.X, YMin: p.Y, YMax: p.Y, CRS: proj.CRS()},
	}

	if p.Output != "" {
		if err := feature.WritePointShapefile(d, p.Output); err != nil {
			return nil, err
		}
		l.Source = p.Output
	} else {
		raw, err := feature.ToGeoJSON(d)
		if err != nil {
			return nil, err
		}
		l.Memory = raw
	}

	if err := proj.AddLayer(l); err != nil {
		return nil, err
	}
	log.Printf("created point layer %q at (%v, %v, %v)", name, p.X, p.Y, p.Z)

	return l, nil
}
