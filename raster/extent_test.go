package raster

import "testing"

func TestParseExtent(t *testing.T) {
	e, err := ParseExtent("640000,642000,162000,163000 [EPSG:3857]")
	if err != nil {
		t.Fatalf("ParseExtent: %v", err)
	}
	if e.XMin != 640000 || e.XMax != 642000 || e.YMin != 162000 || e.YMax != 163000 {
		t.Errorf("bounds %+v wrong", e)
	}
	if e.CRS != "EPSG:3857" {
		t.Errorf("CRS %q, want EPSG:3857", e.CRS)
	}

	if e.String() != "640000,642000,162000,163000 [EPSG:3857]" {
		t.Errorf("String() = %q did not round trip", e.String())
	}
}

func TestParseExtentWithoutCRS(t *testing.T) {
	e, err := ParseExtent("0, 10, 0, 5")
	if err != nil {
		t.Fatalf("ParseExtent: %v", err)
	}
	if e.CRS != "" {
		t.Errorf("CRS %q, want empty", e.CRS)
	}
	if e.XMax != 10 || e.YMax != 5 {
		t.Errorf("bounds %+v wrong", e)
	}
}

func TestParseExtentErrors(t *testing.T) {
	for _, s := range []string{"", "1,2,3", "1,2,3,x", "5,1,0,10", "1,2,3,4 [EPSG:3857"} {
		if _, err := ParseExtent(s); err == nil {
			t.Errorf("ParseExtent(%q): expected an error", s)
		}
	}
}

func TestExtentIntersect(t *testing.T) {
	a := Extent{XMin: 0, XMax: 10, YMin: 0, YMax: 10, CRS: "EPSG:3857"}
	b := Extent{XMin: 5, XMax: 15, YMin: -5, YMax: 5}

	got := a.Intersect(b)
	want := Extent{XMin: 5, XMax: 10, YMin: 0, YMax: 5, CRS: "EPSG:3857"}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	disjoint := Extent{XMin: 20, XMax: 30, YMin: 20, YMax: 30}
	if !a.Intersect(disjoint).Empty() {
		t.Error("disjoint extents should intersect to empty")
	}
}

func TestCellRange(t *testing.T) {
	g := NewGrid(10, 10, 0, 0, 10, -9999) // covers 0..100 in both axes

	c0, c1, r0, r1, ok := g.CellRange(Extent{XMin: 15, XMax: 35, YMin: 15, YMax: 35})
	if !ok {
		t.Fatal("extent inside the grid must map to cells")
	}
	if c0 != 1 || c1 != 4 {
		t.Errorf("columns [%d,%d), want [1,4)", c0, c1)
	}
	// rows count from the north: y 35 is 65 below the 100 top
	if r0 != 6 || r1 != 9 {
		t.Errorf("rows [%d,%d), want [6,9)", r0, r1)
	}

	// an oversized extent clamps to the whole grid
	c0, c1, r0, r1, ok = g.CellRange(Extent{XMin: -100, XMax: 200, YMin: -100, YMax: 200})
	if !ok || c0 != 0 || c1 != 10 || r0 != 0 || r1 != 10 {
		t.Errorf("clamped range [%d,%d)x[%d,%d) ok=%v, want the full grid", c0, c1, r0, r1, ok)
	}

	if _, _, _, _, ok := g.CellRange(Extent{XMin: 500, XMax: 600, YMin: 500, YMax: 600}); ok {
		t.Error("extent off the grid must not map to cells")
	}
}
