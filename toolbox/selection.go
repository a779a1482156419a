package toolbox

import (
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/godeepar/waterlevel/feature"
)

// SelectByLocation keeps the polygons of the input dataset whose geometry
// contains the reference point. An empty selection is a valid result, not an
// error.
func (Local) SelectByLocation(p SelectParams) (*feature.Dataset, error) {
	const op = "selectbylocation"

	if p.Input == nil {
		return nil, opErrorf(op, "no input dataset provided")
	}
	if p.Input.GeomType != feature.GeomPolygon {
		return nil, opErrorf(op, "input dataset %q is not a polygon dataset", p.Input.Name)
	}
	if len(p.Intersect.XYZ) < 2 {
		return nil, opErrorf(op, "reference feature has no point geometry")
	}

	pt := orb.Point{p.Intersect.XYZ[0], p.Intersect.XYZ[1]}
	out := &feature.Dataset{Name: p.Input.Name + "_selection", GeomType: feature.GeomPolygon}

	for _, f := range p.Input.Features {
		if len(f.Rings) == 0 {
			continue
		}
		poly := make(orb.Polygon, 0, len(f.Rings))
		for _, ring := range f.Rings {
			poly = append(poly, toOrbRing(ring))
		}
		if planar.PolygonContains(poly, pt) {
			out.Features = append(out.Features, f)
		}
	}
	log.Printf("select by location kept %d of %d polygons", len(out.Features), len(p.Input.Features))

	return out, nil
}

// SaveSelection persists a dataset to a shapefile and returns the path.
func (Local) SaveSelection(p SaveParams) (string, error) {
	const op = "saveselectedfeatures"

	if p.Input == nil {
		return "", opErrorf(op, "no input dataset provided")
	}
	if p.Output == "" {
		return "", opErrorf(op, "no output path provided")
	}

	var err error
	switch p.Input.GeomType {
	case feature.GeomPolygon:
		err = feature.WritePolygonShapefile(p.Input, p.Output)
	case feature.GeomPoint:
		err = feature.WritePointShapefile(p.Input, p.Output)
	default:
		return "", opErrorf(op, "unsupported geometry type %q", p.Input.GeomType)
	}
	if err != nil {
		return "", &OpError{Op: op, Err: err}
	}

	return p.Output, nil
}
