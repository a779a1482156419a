package feature

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// elevationFields is the attribute probe order used when a point geometry
// carries no Z. Case-sensitive, first match wins, even if a later name would
// also match.
var elevationFields = []string{"z", "Z", "elevation", "elev", "height"}

// BaseElevation extracts the base elevation from the first feature of a point
// dataset. A Z coordinate on the geometry always wins; otherwise the feature
// attributes are probed in the fixed order z, Z, elevation, elev, height and
// the first non-null value is converted.
func BaseElevation(d *Dataset) (float64, error) {
	if d == nil || len(d.Features) == 0 {
		return 0, ErrEmptyInput
	}

	first := d.Features[0]
	if len(first.XYZ) < 2 {
		return 0, ErrInvalidGeometry
	}

	// geometry z takes priority over any elevation-like attribute
	if len(first.XYZ) >= 3 {
		z := first.XYZ[2]
		if math.IsNaN(z) {
			return 0, fmt.Errorf("geometry z: %w", ErrInvalidValue)
		}
		return z, nil
	}

	for _, name := range elevationFields {
		v, ok := first.Attribute(name)
		if !ok || isNull(v) {
			continue
		}
		z, err := toFloat(v)
		if err != nil {
			return 0, fmt.Errorf("attribute %q: %w", name, ErrInvalidValue)
		}
		return z, nil
	}

	return 0, ErrMissingElevation
}

// isNull reports whether an attribute value counts as absent. Empty strings
// show up for null dbf fields, so they are treated as null too.
func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// toFloat converts the attribute representations seen in practice: native
// numbers from GeoJSON properties and strings from dbf records.
func toFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return 0, fmt.Errorf("value is NaN")
		}
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		z, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as a number", t)
		}
		return z, nil
	default:
		return 0, fmt.Errorf("unsupported attribute type %T", v)
	}
}
