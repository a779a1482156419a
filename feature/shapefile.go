package feature

import (
	"fmt"
	"os"
	"sort"
	"strings"

	shp "github.com/jonas-p/go-shp"
)

// WritePointShapefile persists a point dataset as an ESRI shapefile with
// PointZ geometry. Attribute columns are derived from the dataset (see
// dbfFields); missing values are written as empty strings.
func WritePointShapefile(d *Dataset, path string) error {
	if d.GeomType != GeomPoint {
		return fmt.Errorf("dataset %q is not a point dataset", d.Name)
	}

	w, err := shp.Create(path, shp.POINTZ)
	if err != nil {
		return fmt.Errorf("creating shapefile %s: %v", path, err)
	}

	fields, names := dbfFields(d)
	w.SetFields(fields)

	for n, f := range d.Features {
		if len(f.XYZ) < 2 {
			w.Close()
			return fmt.Errorf("feature %d has no coordinate", n)
		}
		pt := shp.PointZ{X: f.XYZ[0], Y: f.XYZ[1]}
		if len(f.XYZ) >= 3 {
			pt.Z = f.XYZ[2]
		}
		w.Write(&pt)
		if err := writeAttributes(w, n, names, f); err != nil {
			w.Close()
			return fmt.Errorf("shapefile %s: %v", path, err)
		}
	}
	w.Close()

	return renameAttributeTable(path)
}

// WritePolygonShapefile persists a polygon dataset as an ESRI shapefile.
// Rings are written in dataset order, exterior ring first per feature.
func WritePolygonShapefile(d *Dataset, path string) error {
	if d.GeomType != GeomPolygon {
		return fmt.Errorf("dataset %q is not a polygon dataset", d.Name)
	}

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return fmt.Errorf("creating shapefile %s: %v", path, err)
	}

	fields, names := dbfFields(d)
	w.SetFields(fields)

	for n, f := range d.Features {
		if len(f.Rings) == 0 {
			w.Close()
			return fmt.Errorf("feature %d has no rings", n)
		}
		parts := make([][]shp.Point, 0, len(f.Rings))
		for _, ring := range f.Rings {
			part := make([]shp.Point, 0, len(ring))
			for _, pt := range ring {
				part = append(part, shp.Point{X: pt[0], Y: pt[1]})
			}
			parts = append(parts, part)
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		w.Write(&poly)
		if err := writeAttributes(w, n, names, f); err != nil {
			w.Close()
			return fmt.Errorf("shapefile %s: %v", path, err)
		}
	}
	w.Close()

	return renameAttributeTable(path)
}

// ReadPointShapefile loads a point shapefile into a dataset. PointZ and
// PointM geometries keep their Z; plain points come back 2D. Attributes are
// read as dbf strings.
func ReadPointShapefile(path string) (*Dataset, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile %s: %v", path, err)
	}
	defer r.Close()

	d := &Dataset{Name: baseName(path), GeomType: GeomPoint}
	fields := r.Fields()

	for r.Next() {
		n, s := r.Shape()
		var f Feature
		switch pt := s.(type) {
		case *shp.Point:
			f.XYZ = []float64{pt.X, pt.Y}
		case *shp.PointZ:
			f.XYZ = []float64{pt.X, pt.Y, pt.Z}
		case *shp.PointM:
			f.XYZ = []float64{pt.X, pt.Y}
		default:
			return nil, fmt.Errorf("feature %d in %s is not a point", n, path)
		}
		readAttributes(r, n, fields, &f)
		d.Features = append(d.Features, f)
	}

	return d, nil
}

// ReadPolygonShapefile loads a polygon shapefile into a dataset.
func ReadPolygonShapefile(path string) (*Dataset, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile %s: %v", path, err)
	}
	defer r.Close()

	d := &Dataset{Name: baseName(path), GeomType: GeomPolygon}
	fields := r.Fields()

	for r.Next() {
		n, s := r.Shape()
		poly, ok := s.(*shp.Polygon)
		if !ok {
			return nil, fmt.Errorf("feature %d in %s is not a polygon", n, path)
		}

		var f Feature
		for p := 0; p < len(poly.Parts); p++ {
			start := int(poly.Parts[p])
			end := len(poly.Points)
			if p+1 < len(poly.Parts) {
				end = int(poly.Parts[p+1])
			}
			ring := make([][]float64, 0, end-start)
			for _, pt := range poly.Points[start:end] {
				ring = append(ring, []float64{pt.X, pt.Y})
			}
			f.Rings = append(f.Rings, ring)
		}
		readAttributes(r, n, fields, &f)
		d.Features = append(d.Features, f)
	}

	return d, nil
}

// dbfFields derives the attribute columns for a dataset: the union of
// attribute keys across features, sorted for a stable column order, typed by
// the first non-null value seen.
func dbfFields(d *Dataset) ([]shp.Field, []string) {
	kinds := make(map[string]byte) // 'N' int, 'F' float, 'C' string
	for _, f := range d.Features {
		for k, v := range f.Attributes {
			if _, seen := kinds[k]; seen {
				continue
			}
			switch v.(type) {
			case int, int32, int64:
				kinds[k] = 'N'
			case float32, float64:
				kinds[k] = 'F'
			default:
				kinds[k] = 'C'
			}
		}
	}

	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	fields := make([]shp.Field, 0, len(names))
	for _, k := range names {
		switch kinds[k] {
		case 'N':
			fields = append(fields, shp.NumberField(k, 16))
		case 'F':
			fields = append(fields, shp.FloatField(k, 24, 8))
		default:
			fields = append(fields, shp.StringField(k, 64))
		}
	}

	return fields, names
}

// renameAttributeTable moves the dbf written by go-shp to the name readers
// expect: shp.Create trims the ".shp" suffix including the dot, so the
// attribute table lands at "<stem>dbf" while shp.Open looks for "<stem>.dbf".
func renameAttributeTable(path string) error {
	stem := strings.TrimSuffix(path, ".shp")
	misnamed := stem + "dbf"

	if _, err := os.Stat(misnamed); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("shapefile %s: %v", path, err)
	}
	if err := os.Rename(misnamed, stem+".dbf"); err != nil {
		return fmt.Errorf("shapefile %s: %v", path, err)
	}
	return nil
}

func writeAttributes(w *shp.Writer, row int, names []string, f Feature) error {
	for col, name := range names {
		v, ok := f.Attribute(name)
		if !ok || v == nil {
			v = ""
		}
		if err := w.WriteAttribute(row, col, v); err != nil {
			return fmt.Errorf("attribute %s of feature %d: %v", name, row, err)
		}
	}
	return nil
}

func readAttributes(r *shp.Reader, row int, fields []shp.Field, f *Feature) {
	for col, fld := range fields {
		val := strings.TrimSpace(r.ReadAttribute(row, col))
		f.SetAttribute(fld.String(), val)
	}
}

func baseName(path string) string {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".shp")
}

// SidecarExtensions are the companion files written next to a .shp; used for
// best effort cleanup of temporary shapefiles.
var SidecarExtensions = []string{".shx", ".dbf", ".prj", ".cpg"}
