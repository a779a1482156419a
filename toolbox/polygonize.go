package toolbox

import (
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/godeepar/waterlevel/feature"
	"github.com/godeepar/waterlevel/raster"
)

// Polygonize converts a grid into a polygon dataset: one polygon per maximal
// connected region of equal cell value, tagged with that value. Region
// boundaries are traced as closed rings in world coordinates; interior holes
// come out as additional rings. Nodata cells belong to no region.
func (l Local) Polygonize(p PolygonizeParams) (*feature.Dataset, error) {
	const op = "polygonize"

	if p.Input == nil {
		return nil, opErrorf(op, "no input grid provided")
	}
	field := p.Field
	if field == "" {
		field = "DN"
	}

	labels, values := labelRegions(p.Input, p.EightConnected)

	d := &feature.Dataset{Name: "polygonized", GeomType: feature.GeomPolygon}
	for label := 0; label < len(values); label++ {
		rings := traceRegion(p.Input, labels, label)
		for _, poly := range assemblePolygons(rings) {
			f := feature.Feature{Rings: poly}
			f.SetAttribute(field, int(math.Round(values[label])))
			d.Features = append(d.Features, f)
		}
	}
	log.Printf("polygonize produced %d polygons from %d regions", len(d.Features), len(values))

	if p.Output != "" {
		if err := feature.WritePolygonShapefile(d, p.Output); err != nil {
			return nil, &OpError{Op: op, Err: err}
		}
	}

	return d, nil
}

// labelRegions flood fills the grid into connected regions of equal value.
// It returns a per-cell label (-1 for nodata) and the cell value of each
// label. Labels are assigned in scan order, so output is deterministic.
func labelRegions(g *raster.Grid, eightConnected bool) ([]int, []float64) {
	labels := make([]int, len(g.Cells))
	for i := range labels {
		labels[i] = -1
	}

	neighbors := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	if eightConnected {
		neighbors = append(neighbors, [2]int{1, 1}, [2]int{1, -1}, [2]int{-1, 1}, [2]int{-1, -1})
	}

	var values []float64
	var stack [][2]int

	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			if g.IsNoData(c, r) || labels[r*g.Ncols+c] >= 0 {
				continue
			}

			label := len(values)
			v := g.Value(c, r)
			values = append(values, v)

			stack = append(stack[:0], [2]int{c, r})
			labels[r*g.Ncols+c] = label

			for len(stack) > 0 {
				cell := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				for _, n := range neighbors {
					nc, nr := cell[0]+n[0], cell[1]+n[1]
					if nc < 0 || nr < 0 || nc >= g.Ncols || nr >= g.Nrows {
						continue
					}
					if g.IsNoData(nc, nr) || labels[nr*g.Ncols+nc] >= 0 {
						continue
					}
					if g.Value(nc, nr) != v {
						continue
					}
					labels[nr*g.Ncols+nc] = label
					stack = append(stack, [2]int{nc, nr})
				}
			}
		}
	}

	return labels, values
}

// cornerEdge is a directed boundary edge between two grid corner points,
// oriented so the region interior lies on its left in world coordinates.
type cornerEdge struct {
	from, to int
}

// traceRegion collects the boundary edges of one labelled region and
// stitches them into closed rings of world coordinates. Exterior rings come
// out counterclockwise, holes clockwise.
func traceRegion(g *raster.Grid, labels []int, label int) [][][]float64 {
	stride := g.Ncols + 1
	corner := func(c, r int) int { return r*stride + c }

	var edges []cornerEdge
	sameRegion := func(c, r int) bool {
		if c < 0 || r < 0 || c >= g.Ncols || r >= g.Nrows {
			return false
		}
		return labels[r*g.Ncols+c] == label
	}

	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			if labels[r*g.Ncols+c] != label {
				continue
			}
			if !sameRegion(c, r+1) { // south side, west to east
				edges = append(edges, cornerEdge{corner(c, r+1), corner(c+1, r+1)})
			}
			if !sameRegion(c+1, r) { // east side, south to north
				edges = append(edges, cornerEdge{corner(c+1, r+1), corner(c+1, r)})
			}
			if !sameRegion(c, r-1) { // north side, east to west
				edges = append(edges, cornerEdge{corner(c+1, r), corner(c, r)})
			}
			if !sameRegion(c-1, r) { // west side, north to south
				edges = append(edges, cornerEdge{corner(c, r), corner(c, r+1)})
			}
		}
	}

	byStart := make(map[int][]int)
	for i, e := range edges {
		byStart[e.from] = append(byStart[e.from], i)
	}

	used := make([]bool, len(edges))
	var rings [][][]float64

	for start := range edges {
		if used[start] {
			continue
		}

		var ring []int
		cur := start
		used[cur] = true
		ring = append(ring, edges[cur].from, edges[cur].to)

		for {
			next := pickNext(edges, byStart, used, cur, stride)
			if next < 0 {
				break
			}
			used[next] = true
			cur = next
			ring = append(ring, edges[cur].to)
		}

		world := make([][]float64, 0, len(ring))
		for _, id := range ring {
			x, y := g.Corner(id%stride, id/stride)
			world = append(world, []float64{x, y})
		}
		rings = append(rings, world)
	}

	return rings
}

// pickNext chooses the next unused edge out of the current edge's end vertex.
// At pinch vertices (several outgoing edges, as happens where cells of one
// 8-connected region touch only diagonally) it takes the rightmost turn, which
// keeps the region on the left and merges the diagonal squares into a single
// ring instead of splitting them.
func pickNext(edges []cornerEdge, byStart map[int][]int, used []bool, cur, stride int) int {
	candidates := byStart[edges[cur].to]

	best := -1
	bestRank := 4
	inDC, inDR := edgeDir(edges[cur], stride)

	for _, i := range candidates {
		if used[i] {
			continue
		}
		dc, dr := edgeDir(edges[i], stride)
		rank := turnRank(inDC, inDR, dc, dr)
		if rank < bestRank {
			best, bestRank = i, rank
		}
	}

	return best
}

func edgeDir(e cornerEdge, stride int) (dc, dr int) {
	dc = e.to%stride - e.from%stride
	dr = e.to/stride - e.from/stride
	return dc, dr
}

// turnRank orders candidate directions: right turn, straight, left turn,
// reverse. Directions are corner index deltas; world y points the other way
// than the row index, hence the sign flip.
func turnRank(inDC, inDR, outDC, outDR int) int {
	wx, wy := inDC, -inDR
	ox, oy := outDC, -outDR

	cross := wx*oy - wy*ox
	dot := wx*ox + wy*oy

	switch {
	case cross < 0:
		return 0 // right
	case cross == 0 && dot > 0:
		return 1 // straight
	case cross > 0:
		return 2 // left
	default:
		return 3 // reverse
	}
}

// assemblePolygons splits traced rings into polygons: each counterclockwise
// ring becomes an exterior, each clockwise ring a hole of the exterior that
// contains it.
func assemblePolygons(rings [][][]float64) [][][][]float64 {
	var exteriors [][][]float64
	var holes [][][]float64

	for _, ring := range rings {
		if signedArea(ring) >= 0 {
			exteriors = append(exteriors, ring)
		} else {
			holes = append(holes, ring)
		}
	}

	polys := make([][][][]float64, len(exteriors))
	orbExteriors := make([]orb.Ring, len(exteriors))
	for i, ext := range exteriors {
		polys[i] = [][][]float64{ext}
		orbExteriors[i] = toOrbRing(ext)
	}

	for _, hole := range holes {
		pt := orb.Point{hole[0][0], hole[0][1]}
		for i := range orbExteriors {
			if planar.RingContains(orbExteriors[i], pt) {
				polys[i] = append(polys[i], hole)
				break
			}
		}
	}

	return polys
}

func signedArea(ring [][]float64) float64 {
	sum := 0.0
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

func toOrbRing(ring [][]float64) orb.Ring {
	out := make(orb.Ring, 0, len(ring))
	for _, pt := range ring {
		out = append(out, orb.Point{pt[0], pt[1]})
	}
	return out
}
