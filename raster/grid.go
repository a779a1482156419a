// Package raster holds the in-memory DEM grid model used by the waterlevel
// toolbox, an ESRI ASCII Grid codec for it, and the processing extent type.
package raster

import "math"

// DefaultNoData is the nodata marker written when a grid does not declare one.
const DefaultNoData = -9999

// Grid is a single-band raster. Cells are stored row major with the
// northernmost row first, matching the ESRI ASCII layout. Xll/Yll locate the
// lower-left corner of the lower-left cell.
type Grid struct {
	Ncols, Nrows int
	Xll, Yll     float64
	CellSize     float64
	NoData       float64
	Cells        []float64
}

// NewGrid allocates a grid with every cell set to the nodata value.
func NewGrid(ncols, nrows int, xll, yll, cellSize, noData float64) *Grid {
	g := &Grid{
		Ncols:    ncols,
		Nrows:    nrows,
		Xll:      xll,
		Yll:      yll,
		CellSize: cellSize,
		NoData:   noData,
		Cells:    make([]float64, ncols*nrows),
	}
	for i := range g.Cells {
		g.Cells[i] = noData
	}
	return g
}

// Value returns the cell value at column c, row r (row 0 is the northernmost).
func (g *Grid) Value(c, r int) float64 {
	return g.Cells[r*g.Ncols+c]
}

// SetValue sets the cell value at column c, row r.
func (g *Grid) SetValue(c, r int, v float64) {
	g.Cells[r*g.Ncols+c] = v
}

// IsNoData reports whether the cell at column c, row r holds no data.
func (g *Grid) IsNoData(c, r int) bool {
	v := g.Value(c, r)
	return v == g.NoData || math.IsNaN(v)
}

// CellCenter returns the world coordinate of the center of cell (c, r).
func (g *Grid) CellCenter(c, r int) (x, y float64) {
	x = g.Xll + (float64(c)+0.5)*g.CellSize
	y = g.Yll + (float64(g.Nrows-r)-0.5)*g.CellSize
	return x, y
}

// Corner returns the world coordinate of the grid corner point (c, r), where
// corner (0, 0) is the northwest corner and corner (Ncols, Nrows) the
// southeast one.
func (g *Grid) Corner(c, r int) (x, y float64) {
	x = g.Xll + float64(c)*g.CellSize
	y = g.Yll + float64(g.Nrows-r)*g.CellSize
	return x, y
}

// Extent returns the outer bounds of the grid.
func (g *Grid) Extent() Extent {
	return Extent{
		XMin: g.Xll,
		XMax: g.Xll + float64(g.Ncols)*g.CellSize,
		YMin: g.Yll,
		YMax: g.Yll + float64(g.Nrows)*g.CellSize,
	}
}

// CellRange maps an extent onto the grid's cell indices, clamped to the grid.
// It returns the half-open column and row ranges covering every cell whose
// center falls inside the intersection; ok is false when the extent misses
// the grid entirely.
func (g *Grid) CellRange(e Extent) (c0, c1, r0, r1 int, ok bool) {
	inter := g.Extent().Intersect(e)
	if inter.Empty() {
		return 0, 0, 0, 0, false
	}

	c0 = int(math.Floor((inter.XMin - g.Xll) / g.CellSize))
	c1 = int(math.Ceil((inter.XMax - g.Xll) / g.CellSize))
	top := g.Yll + float64(g.Nrows)*g.CellSize
	r0 = int(math.Floor((top - inter.YMax) / g.CellSize))
	r1 = int(math.Ceil((top - inter.YMin) / g.CellSize))

	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 > g.Ncols {
		c1 = g.Ncols
	}
	if r1 > g.Nrows {
		r1 = g.Nrows
	}
	if c0 >= c1 || r0 >= r1 {
		return 0, 0, 0, 0, false
	}

	return c0, c1, r0, r1, true
}
