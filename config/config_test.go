package config

import "testing"

func TestFormatLevel(t *testing.T) {
	cases := []struct {
		level float64
		want  string
	}{
		{10.0, "10"},
		{2.5, "2.5"},
		{0.25, "0.25"},
	}
	for _, tc := range cases {
		if got := FormatLevel(tc.level); got != tc.want {
			t.Errorf("FormatLevel(%v) = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestRunFileNames(t *testing.T) {
	if got := LevelFolder(10); got != "water_level_10m" {
		t.Errorf("LevelFolder = %q", got)
	}
	if got := MaskFile(10); got != "10_level.asc" {
		t.Errorf("MaskFile = %q", got)
	}
	if got := TempPolygonFile(2.5); got != "2.5_level_polygon_temp.shp" {
		t.Errorf("TempPolygonFile = %q", got)
	}
	if got := PolygonFile(2.5); got != "2.5_level_polygon.shp" {
		t.Errorf("PolygonFile = %q", got)
	}
}
