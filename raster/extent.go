package raster

import (
	"fmt"
	"strconv"
	"strings"
)

// Extent is an axis-aligned bounding box with an optional CRS authority id.
// Its string form is the dialog convention "xmin,xmax,ymin,ymax [EPSG:code]".
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
	CRS        string
}

// ParseExtent parses "xmin,xmax,ymin,ymax" with an optional trailing
// "[EPSG:code]" part.
func ParseExtent(s string) (Extent, error) {
	var e Extent

	s = strings.TrimSpace(s)
	if s == "" {
		return e, fmt.Errorf("extent string is empty")
	}

	if i := strings.Index(s, "["); i >= 0 {
		crs := strings.TrimSpace(s[i:])
		if !strings.HasSuffix(crs, "]") {
			return e, fmt.Errorf("malformed CRS suffix in extent %q", s)
		}
		e.CRS = strings.TrimSpace(crs[1 : len(crs)-1])
		s = strings.TrimSpace(s[:i])
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return e, fmt.Errorf("extent %q must have four comma separated values", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return e, fmt.Errorf("extent value %q is not a number", strings.TrimSpace(p))
		}
		vals[i] = v
	}

	e.XMin, e.XMax, e.YMin, e.YMax = vals[0], vals[1], vals[2], vals[3]
	if e.XMin > e.XMax || e.YMin > e.YMax {
		return e, fmt.Errorf("extent %q has min greater than max", s)
	}

	return e, nil
}

// String renders the extent in the dialog convention.
func (e Extent) String() string {
	s := fmt.Sprintf("%s,%s,%s,%s",
		trimFloat(e.XMin), trimFloat(e.XMax), trimFloat(e.YMin), trimFloat(e.YMax))
	if e.CRS != "" {
		s += fmt.Sprintf(" [%s]", e.CRS)
	}
	return s
}

// Empty reports whether the extent covers no area.
func (e Extent) Empty() bool {
	return e.XMin >= e.XMax || e.YMin >= e.YMax
}

// Intersect returns the overlap of two extents. The CRS of the receiver is
// kept; callers are responsible for not mixing reference systems.
func (e Extent) Intersect(o Extent) Extent {
	out := Extent{
		XMin: maxf(e.XMin, o.XMin),
		XMax: minf(e.XMax, o.XMax),
		YMin: maxf(e.YMin, o.YMin),
		YMax: minf(e.YMax, o.YMax),
		CRS:  e.CRS,
	}
	if out.Empty() {
		return Extent{CRS: e.CRS}
	}
	return out
}

// Contains reports whether the point (x, y) lies inside the extent.
func (e Extent) Contains(x, y float64) bool {
	return x >= e.XMin && x <= e.XMax && y >= e.YMin && y <= e.YMax
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
