package waterlevel

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/godeepar/waterlevel/config"
	"github.com/godeepar/waterlevel/feature"
	"github.com/godeepar/waterlevel/project"
	"github.com/godeepar/waterlevel/raster"
	"github.com/godeepar/waterlevel/toolbox"
)

// GenerateParams drive one water level run.
//
// DEM is the path of the elevation raster (ESRI ASCII Grid). Points is the
// registered reference point layer; its first feature anchors the water
// level. Extent restricts processing; when empty the whole DEM is used.
// OutputDir overrides the default output location under the project home.
type GenerateParams struct {
	DEM       string
	Points    *project.Layer
	Level     float64
	Extent    raster.Extent
	OutputDir string
}

// Result reports one completed water level run.
type Result struct {
	Layer   *project.Layer
	Base    float64
	Level   float64
	Polygon string
	Folder  string
}

// Generate computes the flooded area for a water level above the reference
// point and registers the result with the project.
//
// The run thresholds the DEM at base elevation plus level, polygonizes the
// indicator grid with 8-connectedness, keeps only the polygons containing the
// reference point, and persists that selection as a shapefile inside a per-run
// folder. Intermediate artifacts (the threshold raster and the unfiltered
// polygon shapefile) are removed after a successful run; on failure they are
// left in place for inspection.
func Generate(proj *project.Project, tb toolbox.Toolbox, p GenerateParams) (*Result, error) {
	if p.Points == nil {
		return nil, ErrMissingSelection
	}
	if p.DEM == "" {
		return nil, fmt.Errorf("no DEM raster given: %w", ErrValidation)
	}
	if p.Level < 0 {
		return nil, fmt.Errorf("water level %v must not be negative: %w", p.Level, ErrValidation)
	}

	dem, err := raster.ReadFile(p.DEM)
	if err != nil {
		return nil, err
	}

	points, err := loadPoints(p.Points)
	if err != nil {
		return nil, err
	}

	base, err := feature.BaseElevation(points)
	if err != nil {
		return nil, err
	}
	threshold := base + p.Level
	log.Printf("base elevation %.2f, water level %v, threshold %.2f", base, p.Level, threshold)

	outDir := p.OutputDir
	if outDir == "" {
		outDir = filepath.Join(proj.HomePath(), config.OutputDirName)
	}
	folder := filepath.Join(outDir, config.LevelFolder(p.Level))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("creating output folder %s: %v", folder, err)
	}

	maskPath := filepath.Join(folder, config.MaskFile(p.Level))
	mask, err := tb.RasterThreshold(toolbox.ThresholdParams{
		DEM:       dem,
		Threshold: threshold,
		Extent:    p.Extent,
		Output:    maskPath,
	})
	if err != nil {
		return nil, err
	}

	tempPath := filepath.Join(folder, config.TempPolygonFile(p.Level))
	polygons, err := tb.Polygonize(toolbox.PolygonizeParams{
		Input:          mask,
		Field:          "DN",
		EightConnected: true,
		Output:         tempPath,
	})
	if err != nil {
		return nil, err
	}

	selected, err := tb.SelectByLocation(toolbox.SelectParams{
		Input:     polygons,
		Intersect: points.Features[0],
	})
	if err != nil {
		return nil, err
	}

	polygonPath := filepath.Join(folder, config.PolygonFile(p.Level))
	if _, err := tb.SaveSelection(toolbox.SaveParams{Input: selected, Output: polygonPath}); err != nil {
		return nil, err
	}

	ext := layerExtent(selected, proj.CRS())
	if ext.Empty() {
		// an empty selection still registers; fall back to the processed area
		ext = mask.Extent()
		ext.CRS = proj.CRS()
	}

	style := config.WaterLevelStyle()
	layer := &project.Layer{
		Name:     fmt.Sprintf("Water Level %sm (Base: %.1fm)", config.FormatLevel(p.Level), base),
		Kind:     project.KindVector,
		GeomType: feature.GeomPolygon,
		Source:   polygonPath,
		Style:    &style,
		Extent:   ext,
	}
	if err := proj.AddLayer(layer); err != nil {
		return nil, err
	}
	log.Printf("registered layer %q with %d polygons", layer.Name, len(selected.Features))

	cleanup(maskPath, tempPath)

	return &Result{
		Layer:   layer,
		Base:    base,
		Level:   p.Level,
		Polygon: polygonPath,
		Folder:  folder,
	}, nil
}

// loadPoints reads the reference point dataset from wherever the layer keeps
// it: the project file for in-memory layers, a shapefile otherwise.
func loadPoints(l *project.Layer) (*feature.Dataset, error) {
	if l.GeomType != feature.GeomPoint {
		return nil, fmt.Errorf("layer %q is not a point layer: %w", l.Name, ErrValidation)
	}
	if l.InMemory() {
		return feature.FromGeoJSON(l.Name, l.Memory)
	}
	if l.Source == "" {
		return nil, fmt.Errorf("layer %q has no data source: %w", l.Name, ErrValidation)
	}
	return feature.ReadPointShapefile(l.Source)
}

func layerExtent(d *feature.Dataset, crs string) raster.Extent {
	box, ok := d.BBox()
	if !ok {
		return raster.Extent{}
	}
	return raster.Extent{XMin: box[0], XMax: box[1], YMin: box[2], YMax: box[3], CRS: crs}
}

// cleanup removes the intermediate run artifacts. Failures are logged, not
// returned; a leftover temp file never fails a finished run.
func cleanup(maskPath, tempPath string) {
	for _, path := range intermediatePaths(maskPath, tempPath) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("cleanup: %v", err)
		}
	}
}

func intermediatePaths(maskPath, tempPath string) []string {
	paths := []string{maskPath, tempPath}
	stem := tempPath[:len(tempPath)-len(filepath.Ext(tempPath))]
	for _, ext := range feature.SidecarExtensions {
		paths = append(paths, stem+ext)
	}
	return paths
}
