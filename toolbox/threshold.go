package toolbox

import (
	"log"

	"github.com/godeepar/waterlevel/raster"
)

// RasterThreshold builds the inundation indicator grid for a DEM: 1 where the
// cell elevation is strictly below the threshold, 0 where it is not, nodata
// where the DEM has none. The output grid is clipped to the intersection of
// the DEM and the requested extent; an empty extent means the whole DEM.
func (Local) RasterThreshold(p ThresholdParams) (*raster.Grid, error) {
	const op = "rasterthreshold"

	if p.DEM == nil {
		return nil, opErrorf(op, "no DEM grid provided")
	}

	ext := p.Extent
	if ext.Empty() {
		ext = p.DEM.Extent()
	}

	c0, c1, r0, r1, ok := p.DEM.CellRange(ext)
	if !ok {
		return nil, opErrorf(op, "extent %s does not overlap the DEM", ext.String())
	}

	out := raster.NewGrid(
		c1-c0, r1-r0,
		p.DEM.Xll+float64(c0)*p.DEM.CellSize,
		p.DEM.Yll+float64(p.DEM.Nrows-r1)*p.DEM.CellSize,
		p.DEM.CellSize,
		p.DEM.NoData,
	)

	flagged := 0
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			if p.DEM.IsNoData(c, r) {
				continue
			}
			v := 0.0
			if p.DEM.Value(c, r) < p.Threshold {
				v = 1
				flagged++
			}
			out.SetValue(c-c0, r-r0, v)
		}
	}
	log.Printf("raster threshold %v flagged %d of %d cells", p.Threshold, flagged, len(out.Cells))

	if p.Output != "" {
		if err := raster.WriteFile(out, p.Output); err != nil {
			return nil, &OpError{Op: op, Err: err}
		}
	}

	return out, nil
}
