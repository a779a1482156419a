package feature

import (
	"errors"
	"math"
	"testing"
)

func pointDataset(f Feature) *Dataset {
	return &Dataset{Name: "pts", GeomType: GeomPoint, Features: []Feature{f}}
}

func TestBaseElevationFromGeometry(t *testing.T) {
	d := pointDataset(Feature{XYZ: []float64{641056.0, 162787.0, 88.86}})

	z, err := BaseElevation(d)
	if err != nil {
		t.Fatalf("BaseElevation: %v", err)
	}
	if z != 88.86 {
		t.Errorf("got %v, want 88.86", z)
	}
}

func TestBaseElevationGeometryBeatsAttributes(t *testing.T) {
	f := Feature{XYZ: []float64{10, 20, 5.5}}
	f.SetAttribute("z", 99.0)
	f.SetAttribute("elevation", 123.0)

	z, err := BaseElevation(pointDataset(f))
	if err != nil {
		t.Fatalf("BaseElevation: %v", err)
	}
	if z != 5.5 {
		t.Errorf("got %v, want geometry z 5.5", z)
	}
}

func TestBaseElevationAttributeOrder(t *testing.T) {
	// "z" must win over "elevation" even when both are set
	f := Feature{XYZ: []float64{10, 20}}
	f.SetAttribute("elevation", 9.0)
	f.SetAttribute("z", 12.5)

	z, err := BaseElevation(pointDataset(f))
	if err != nil {
		t.Fatalf("BaseElevation: %v", err)
	}
	if z != 12.5 {
		t.Errorf("got %v, want 12.5 from the z attribute", z)
	}
}

func TestBaseElevationSkipsNullAttributes(t *testing.T) {
	f := Feature{XYZ: []float64{10, 20}}
	f.SetAttribute("z", "")
	f.SetAttribute("Z", nil)
	f.SetAttribute("elev", "42.25")

	z, err := BaseElevation(pointDataset(f))
	if err != nil {
		t.Fatalf("BaseElevation: %v", err)
	}
	if z != 42.25 {
		t.Errorf("got %v, want 42.25 from the elev attribute", z)
	}
}

func TestBaseElevationErrors(t *testing.T) {
	withAttr := func(key string, v interface{}) Feature {
		f := Feature{XYZ: []float64{10, 20}}
		f.SetAttribute(key, v)
		return f
	}

	cases := []struct {
		name string
		d    *Dataset
		want error
	}{
		{"nil dataset", nil, ErrEmptyInput},
		{"no features", &Dataset{GeomType: GeomPoint}, ErrEmptyInput},
		{"no coordinate", pointDataset(Feature{}), ErrInvalidGeometry},
		{"nan geometry z", pointDataset(Feature{XYZ: []float64{1, 2, math.NaN()}}), ErrInvalidValue},
		{"no elevation anywhere", pointDataset(withAttr("depth", 3.0)), ErrMissingElevation},
		{"non numeric attribute", pointDataset(withAttr("z", "not-a-number")), ErrInvalidValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BaseElevation(tc.d)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBaseElevationUsesFirstFeatureOnly(t *testing.T) {
	d := &Dataset{
		GeomType: GeomPoint,
		Features: []Feature{
			{XYZ: []float64{0, 0, 7}},
			{XYZ: []float64{1, 1, 999}},
		},
	}

	z, err := BaseElevation(d)
	if err != nil {
		t.Fatalf("BaseElevation: %v", err)
	}
	if z != 7 {
		t.Errorf("got %v, want the first feature's 7", z)
	}
}
