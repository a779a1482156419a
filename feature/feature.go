// Package feature holds the vector dataset model shared by the waterlevel
// tools: point and polygon features with named attributes, plus shapefile and
// GeoJSON readers and writers for them.
//
// Geometry is kept as nested float arrays rather than a geometry library
// type:
//
//	point    []float64        x, y and optional z
//	polygon  [][][]float64    closed rings, exterior ring first
//
// and only converted at the few places that need real geometry math.
package feature

// GeomType values for a Dataset.
const (
	GeomPoint   = "Point"
	GeomPolygon = "Polygon"
)

// Feature is a single vector feature. Exactly one of XYZ or Rings is set,
// depending on the owning dataset's GeomType.
type Feature struct {
	XYZ        []float64
	Rings      [][][]float64
	Attributes map[string]interface{}
}

// Dataset is an ordered collection of features of one geometry type.
// Iteration order is the order features were read or appended; nothing here
// sorts it.
type Dataset struct {
	Name     string
	GeomType string
	Features []Feature
}

// Attribute returns the named attribute and whether it is present.
func (f *Feature) Attribute(key string) (interface{}, bool) {
	if f.Attributes == nil {
		return nil, false
	}
	v, ok := f.Attributes[key]
	return v, ok
}

// SetAttribute sets a named attribute, allocating the map on first use.
func (f *Feature) SetAttribute(key string, value interface{}) {
	if f.Attributes == nil {
		f.Attributes = make(map[string]interface{})
	}
	f.Attributes[key] = value
}

// BBox returns the bounding box of the dataset as xmin, xmax, ymin, ymax.
// The second return is false when the dataset holds no coordinates.
func (d *Dataset) BBox() ([4]float64, bool) {
	var box [4]float64
	seen := false

	grow := func(x, y float64) {
		if !seen {
			box = [4]float64{x, x, y, y}
			seen = true
			return
		}
		if x < box[0] {
			box[0] = x
		}
		if x > box[1] {
			box[1] = x
		}
		if y < box[2] {
			box[2] = y
		}
		if y > box[3] {
			box[3] = y
		}
	}

	for _, f := range d.Features {
		if len(f.XYZ) >= 2 {
			grow(f.XYZ[0], f.XYZ[1])
		}
		for _, ring := range f.Rings {
			for _, pt := range ring {
				if len(pt) >= 2 {
					grow(pt[0], pt[1])
				}
			}
		}
	}

	return box, seen
}
