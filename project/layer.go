package project

import (
	"github.com/golang/geo/s2"
	geo "github.com/paulmach/go.geo"

	"github.com/godeepar/waterlevel/config"
	"github.com/godeepar/waterlevel/raster"
)

// Layer kinds.
const (
	KindRaster = "raster"
	KindVector = "vector"
)

// Layer describes one entry of a project's layer registry. File backed layers
// carry a Source path; in-memory vector layers carry their GeoJSON payload in
// Memory instead.
type Layer struct {
	ID       string
	Name     string
	Kind     string
	GeomType string
	Source   string
	Memory   []byte
	Style    *config.Style
	Extent   raster.Extent
	S2       []string
	AddedAt  string
}

// InMemory reports whether the layer lives in the project file rather than on
// disk.
func (l *Layer) InMemory() bool {
	return l.Source == "" && len(l.Memory) > 0
}

// s2Covering derives the s2 cell tokens covering a layer extent, for coarse
// spatial bookkeeping in the registry. Projected coordinates are brought back
// to EPSG:4326 first; tokens are capped at 8 characters.
func s2Covering(e raster.Extent) []string {
	if e.Empty() {
		return nil
	}

	rx, uy := to4326(e.XMax, e.YMax)
	lx, ly := to4326(e.XMin, e.YMin)

	pts := []s2.Point{
		s2.PointFromCoords(rx, uy, 0),
		s2.PointFromCoords(lx, uy, 0),
		s2.PointFromCoords(lx, ly, 0),
		s2.PointFromCoords(rx, ly, 0),
	}

	loop := s2.LoopFromPoints(pts)
	covering := loop.CellUnionBound()

	var tokens []string
	for _, cellid := range covering {
		token := cellid.ToToken()
		if len(token) > 8 {
			token = token[:8]
		}
		tokens = append(tokens, token)
	}

	return tokens
}

// to4326 converts a coordinate to EPSG:4326 when it is clearly projected.
func to4326(x, y float64) (float64, float64) {
	if x > 180 || x < -180 || y > 180 || y < -180 {
		mercPoint := geo.NewPoint(x, y)
		geo.Mercator.Inverse(mercPoint)
		return mercPoint[0], mercPoint[1]
	}
	return x, y
}
