package raster

import (
	"bytes"
	"strings"
	"testing"
)

const sampleGrid = `ncols 3
nrows 2
xllcorner 100
yllcorner 200
cellsize 10
NODATA_value -9999
1 2 3
4 -9999 6
`

func TestReadGrid(t *testing.T) {
	g, err := Read(strings.NewReader(sampleGrid))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if g.Ncols != 3 || g.Nrows != 2 {
		t.Fatalf("size %dx%d, want 3x2", g.Ncols, g.Nrows)
	}
	if g.Xll != 100 || g.Yll != 200 || g.CellSize != 10 {
		t.Errorf("origin (%v, %v) cellsize %v, want (100, 200) 10", g.Xll, g.Yll, g.CellSize)
	}

	// row 0 is the northernmost row
	if v := g.Value(2, 0); v != 3 {
		t.Errorf("cell (2,0) = %v, want 3", v)
	}
	if v := g.Value(0, 1); v != 4 {
		t.Errorf("cell (0,1) = %v, want 4", v)
	}
	if !g.IsNoData(1, 1) {
		t.Error("cell (1,1) should be nodata")
	}
}

func TestReadGridCenterOrigin(t *testing.T) {
	src := `ncols 2
nrows 1
xllcenter 105
yllcenter 205
cellsize 10
7 8
`
	g, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.Xll != 100 || g.Yll != 200 {
		t.Errorf("origin (%v, %v), want the corner (100, 200)", g.Xll, g.Yll)
	}
	if g.NoData != DefaultNoData {
		t.Errorf("nodata %v, want the default %v", g.NoData, float64(DefaultNoData))
	}
}

func TestReadGridErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing header", "1 2 3\n"},
		{"cell count mismatch", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3\n"},
		{"bad cell value", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nabc\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.src)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	g := NewGrid(3, 2, 100, 200, 10, -9999)
	g.SetValue(0, 0, 1.5)
	g.SetValue(2, 1, 6)

	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Ncols != g.Ncols || got.Nrows != g.Nrows || got.Xll != g.Xll || got.Yll != g.Yll {
		t.Errorf("header mismatch after round trip: %+v vs %+v", got, g)
	}
	if got.Value(0, 0) != 1.5 || got.Value(2, 1) != 6 {
		t.Errorf("cells did not survive the round trip")
	}
	if !got.IsNoData(1, 0) {
		t.Error("untouched cell should still be nodata")
	}
}
