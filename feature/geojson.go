package feature

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// ToGeoJSON serializes a dataset as a GeoJSON feature collection. This is the
// storage format for in-memory layers registered with a project.
func ToGeoJSON(d *Dataset) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for n, f := range d.Features {
		var gf *geojson.Feature
		switch d.GeomType {
		case GeomPoint:
			if len(f.XYZ) < 2 {
				return nil, fmt.Errorf("feature %d has no coordinate", n)
			}
			gf = geojson.NewPointFeature(f.XYZ)
		case GeomPolygon:
			if len(f.Rings) == 0 {
				return nil, fmt.Errorf("feature %d has no rings", n)
			}
			gf = geojson.NewPolygonFeature(f.Rings)
		default:
			return nil, fmt.Errorf("unsupported geometry type %q", d.GeomType)
		}
		for k, v := range f.Attributes {
			gf.SetProperty(k, v)
		}
		fc.AddFeature(gf)
	}

	raw, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshalling dataset %q: %v", d.Name, err)
	}
	return raw, nil
}

// FromGeoJSON parses a GeoJSON feature collection into a dataset. Only Point
// and Polygon geometries are accepted; the collection must be homogeneous.
func FromGeoJSON(name string, raw []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling %q: %v", name, err)
	}

	d := &Dataset{Name: name}

	for n, gf := range fc.Features {
		if gf.Geometry == nil {
			return nil, fmt.Errorf("feature %d has no geometry", n)
		}

		var f Feature
		var geomType string
		switch gf.Geometry.Type {
		case geojson.GeometryPoint:
			geomType = GeomPoint
			f.XYZ = gf.Geometry.Point
		case geojson.GeometryPolygon:
			geomType = GeomPolygon
			f.Rings = gf.Geometry.Polygon
		default:
			return nil, fmt.Errorf("unsupported geometry of type %v", gf.Geometry.Type)
		}

		if d.GeomType == "" {
			d.GeomType = geomType
		} else if d.GeomType != geomType {
			return nil, fmt.Errorf("mixed geometry types %q and %q in %q", d.GeomType, geomType, name)
		}

		if len(gf.Properties) > 0 {
			f.Attributes = make(map[string]interface{}, len(gf.Properties))
			for k, v := range gf.Properties {
				f.Attributes[k] = v
			}
		}
		d.Features = append(d.Features, f)
	}

	if d.GeomType == "" {
		d.GeomType = GeomPoint
	}

	return d, nil
}
