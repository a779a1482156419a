package toolbox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godeepar/waterlevel/feature"
)

func polygonDataset() *feature.Dataset {
	west := feature.Feature{Rings: [][][]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
	}}
	west.SetAttribute("DN", 1)
	east := feature.Feature{Rings: [][][]float64{
		{{20, 0}, {30, 0}, {30, 10}, {20, 10}, {20, 0}},
	}}
	east.SetAttribute("DN", 1)

	return &feature.Dataset{
		Name:     "flood",
		GeomType: feature.GeomPolygon,
		Features: []feature.Feature{west, east},
	}
}

func TestSelectByLocation(t *testing.T) {
	tb := Local{}

	got, err := tb.SelectByLocation(SelectParams{
		Input:     polygonDataset(),
		Intersect: feature.Feature{XYZ: []float64{5, 5, 88.86}},
	})
	require.NoError(t, err)
	require.Len(t, got.Features, 1)
	assert.Equal(t, "flood_selection", got.Name)

	// the western square contains (5, 5)
	assert.Equal(t, 0.0, got.Features[0].Rings[0][0][0])
}

func TestSelectByLocationEmptySelection(t *testing.T) {
	tb := Local{}

	// a point between the squares matches nothing, which is not an error
	got, err := tb.SelectByLocation(SelectParams{
		Input:     polygonDataset(),
		Intersect: feature.Feature{XYZ: []float64{15, 5}},
	})
	require.NoError(t, err)
	assert.Empty(t, got.Features)
	assert.Equal(t, feature.GeomPolygon, got.GeomType)
}

func TestSelectByLocationErrors(t *testing.T) {
	tb := Local{}

	_, err := tb.SelectByLocation(SelectParams{Intersect: feature.Feature{XYZ: []float64{0, 0}}})
	require.Error(t, err)

	points := &feature.Dataset{Name: "pts", GeomType: feature.GeomPoint}
	_, err = tb.SelectByLocation(SelectParams{Input: points, Intersect: feature.Feature{XYZ: []float64{0, 0}}})
	require.Error(t, err)

	_, err = tb.SelectByLocation(SelectParams{Input: polygonDataset()})
	require.Error(t, err)
}

func TestSaveSelection(t *testing.T) {
	tb := Local{}
	path := filepath.Join(t.TempDir(), "selection.shp")

	got, err := tb.SaveSelection(SaveParams{Input: polygonDataset(), Output: path})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	d, err := feature.ReadPolygonShapefile(path)
	require.NoError(t, err)
	assert.Len(t, d.Features, 2)
}

func TestSaveSelectionErrors(t *testing.T) {
	tb := Local{}

	_, err := tb.SaveSelection(SaveParams{Output: "x.shp"})
	require.Error(t, err)

	_, err = tb.SaveSelection(SaveParams{Input: polygonDataset()})
	require.Error(t, err)
}
