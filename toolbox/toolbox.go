// Package toolbox is the narrow geoprocessing interface the water level
// pipeline depends on, together with a pure Go implementation of it. Each
// operation takes a typed parameter record and returns either a result or a
// descriptive *OpError, so the pipeline never dispatches by operation name.
package toolbox

import (
	"fmt"

	"github.com/godeepar/waterlevel/feature"
	"github.com/godeepar/waterlevel/raster"
)

// Toolbox exposes the geoprocessing operations used by the pipeline: raster
// thresholding, raster to vector conversion, spatial selection, and saving a
// selection.
type Toolbox interface {
	RasterThreshold(p ThresholdParams) (*raster.Grid, error)
	Polygonize(p PolygonizeParams) (*feature.Dataset, error)
	SelectByLocation(p SelectParams) (*feature.Dataset, error)
	SaveSelection(p SaveParams) (string, error)
}

// ThresholdParams drive RasterThreshold: cells of DEM inside Extent are
// compared against Threshold, producing an indicator grid with 1 where
// DEM < Threshold and 0 elsewhere. Nodata cells stay nodata. When Output is
// set the indicator grid is also written there as an ESRI ASCII raster.
type ThresholdParams struct {
	DEM       *raster.Grid
	Threshold float64
	Extent    raster.Extent
	Output    string
}

// PolygonizeParams drive Polygonize: every maximal connected region of equal
// cell value in Input becomes one polygon, tagged with the region value under
// the Field attribute. EightConnected extends region connectivity across
// diagonals, matching gdal polygonize's 8-connectedness option. When Output
// is set the raw polygon dataset is also written there as a shapefile.
type PolygonizeParams struct {
	Input          *raster.Grid
	Field          string
	EightConnected bool
	Output         string
}

// SelectParams drive SelectByLocation: polygons of Input whose geometry
// contains the reference point are kept, all others discarded.
type SelectParams struct {
	Input     *feature.Dataset
	Intersect feature.Feature
}

// SaveParams drive SaveSelection.
type SaveParams struct {
	Input  *feature.Dataset
	Output string
}

// Local implements Toolbox natively, with no external geoprocessing engine.
type Local struct{}

var _ Toolbox = Local{}

// OpError reports the failure of a single toolbox operation.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("toolbox %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErrorf(op, format string, args ...interface{}) error {
	return &OpError{Op: op, Err: fmt.Errorf(format, args...)}
}
