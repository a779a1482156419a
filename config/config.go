// Package config carries the output conventions and defaults shared by the
// waterlevel tools: folder naming, layer styling, and the environment
// variables the commands honour.
package config

import (
	"fmt"
	"strconv"
)

const (
	// env var for the default project file path
	EnvProject = "WLPROJECT"

	// env var for the default output directory
	EnvOutputDir = "WLOUTPUT"

	// OutputDirName is the folder created under the project home that
	// collects all water level runs.
	OutputDirName = "output"
)

// Style describes how a registered vector layer should be rendered by a
// consumer. Colors are "r,g,b,a" strings with 0-255 components.
type Style struct {
	FillColor    string  `json:"fill_color"`
	OutlineColor string  `json:"outline_color"`
	OutlineWidth float64 `json:"outline_width"`
}

// WaterLevelStyle is the transparent blue fill applied to generated
// inundation polygons.
func WaterLevelStyle() Style {
	return Style{
		FillColor:    "0,100,255,100",
		OutlineColor: "0,50,200,200",
		OutlineWidth: 0.5,
	}
}

// FormatLevel renders a flood level for use in file and folder names,
// without a trailing ".0" for whole meters.
func FormatLevel(level float64) string {
	return strconv.FormatFloat(level, 'f', -1, 64)
}

// LevelFolder is the per-run folder name, e.g. "water_level_10m".
func LevelFolder(level float64) string {
	return fmt.Sprintf("water_level_%sm", FormatLevel(level))
}

// MaskFile is the threshold raster name inside the level folder.
func MaskFile(level float64) string {
	return fmt.Sprintf("%s_level.asc", FormatLevel(level))
}

// TempPolygonFile is the raw polygonize output inside the level folder.
func TempPolygonFile(level float64) string {
	return fmt.Sprintf("%s_level_polygon_temp.shp", FormatLevel(level))
}

// PolygonFile is the final filtered polygon name inside the level folder.
func PolygonFile(level float64) string {
	return fmt.Sprintf("%s_level_polygon.shp", FormatLevel(level))
}
