package feature

import "testing"

func TestGeoJSONPointRoundTrip(t *testing.T) {
	f := Feature{XYZ: []float64{641056.0, 162787.0, 88.86}}
	f.SetAttribute("name", "measurement_point")
	f.SetAttribute("id", 1)

	d := &Dataset{Name: "pts", GeomType: GeomPoint, Features: []Feature{f}}

	raw, err := ToGeoJSON(d)
	if err != nil {
		t.Fatalf("ToGeoJSON: %v", err)
	}

	got, err := FromGeoJSON("pts", raw)
	if err != nil {
		t.Fatalf("FromGeoJSON: %v", err)
	}
	if got.GeomType != GeomPoint {
		t.Fatalf("geometry type %q, want Point", got.GeomType)
	}
	if len(got.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(got.Features))
	}

	xyz := got.Features[0].XYZ
	if len(xyz) != 3 || xyz[2] != 88.86 {
		t.Errorf("coordinate %v, want a 3D point with z 88.86", xyz)
	}
	if v, _ := got.Features[0].Attribute("name"); v != "measurement_point" {
		t.Errorf("name attribute %v, want measurement_point", v)
	}

	z, err := BaseElevation(got)
	if err != nil {
		t.Fatalf("BaseElevation after round trip: %v", err)
	}
	if z != 88.86 {
		t.Errorf("base elevation %v, want 88.86", z)
	}
}

func TestGeoJSONPolygonRoundTrip(t *testing.T) {
	ring := [][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	f := Feature{Rings: [][][]float64{ring}}
	f.SetAttribute("DN", 1)

	d := &Dataset{Name: "poly", GeomType: GeomPolygon, Features: []Feature{f}}

	raw, err := ToGeoJSON(d)
	if err != nil {
		t.Fatalf("ToGeoJSON: %v", err)
	}

	got, err := FromGeoJSON("poly", raw)
	if err != nil {
		t.Fatalf("FromGeoJSON: %v", err)
	}
	if got.GeomType != GeomPolygon {
		t.Fatalf("geometry type %q, want Polygon", got.GeomType)
	}
	if len(got.Features) != 1 || len(got.Features[0].Rings) != 1 {
		t.Fatalf("got %d features, want 1 with a single ring", len(got.Features))
	}
	if len(got.Features[0].Rings[0]) != len(ring) {
		t.Errorf("ring has %d vertices, want %d", len(got.Features[0].Rings[0]), len(ring))
	}
}

func TestFromGeoJSONEmptyCollection(t *testing.T) {
	got, err := FromGeoJSON("empty", []byte(`{"type":"FeatureCollection","features":[]}`))
	if err != nil {
		t.Fatalf("FromGeoJSON: %v", err)
	}
	if len(got.Features) != 0 {
		t.Errorf("got %d features, want none", len(got.Features))
	}
	if got.GeomType != GeomPoint {
		t.Errorf("geometry type %q, want the Point default", got.GeomType)
	}
}
