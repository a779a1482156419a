package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadFile loads an ESRI ASCII Grid (.asc) from disk.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raster %s: %v", path, err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading raster %s: %v", path, err)
	}
	return g, nil
}

// Read parses an ESRI ASCII Grid. Both the xllcorner/yllcorner and the
// xllcenter/yllcenter header variants are accepted; a missing NODATA_value
// defaults to -9999.
func Read(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	g := &Grid{Ncols: -1, Nrows: -1, CellSize: -1, NoData: DefaultNoData}
	var xSet, ySet, xIsCenter, yIsCenter bool

	// header: key value pairs until the first row of cells
	var pending []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		key := strings.ToLower(fields[0])
		isHeader := len(fields) == 2
		if isHeader {
			switch key {
			case "ncols", "nrows", "xllcorner", "yllcorner",
				"xllcenter", "yllcenter", "cellsize", "nodata_value":
			default:
				isHeader = false
			}
		}
		if !isHeader {
			pending = fields
			break
		}

		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("header %s: %q is not a number", key, fields[1])
		}
		switch key {
		case "ncols":
			g.Ncols = int(v)
		case "nrows":
			g.Nrows = int(v)
		case "xllcorner":
			g.Xll, xSet = v, true
		case "xllcenter":
			g.Xll, xSet, xIsCenter = v, true, true
		case "yllcorner":
			g.Yll, ySet = v, true
		case "yllcenter":
			g.Yll, ySet, yIsCenter = v, true, true
		case "cellsize":
			g.CellSize = v
		case "nodata_value":
			g.NoData = v
		}
	}

	if g.Ncols <= 0 || g.Nrows <= 0 || g.CellSize <= 0 || !xSet || !ySet {
		return nil, fmt.Errorf("incomplete ESRI ASCII header")
	}
	if xIsCenter {
		g.Xll -= g.CellSize / 2
	}
	if yIsCenter {
		g.Yll -= g.CellSize / 2
	}

	g.Cells = make([]float64, 0, g.Ncols*g.Nrows)
	appendRow := func(fields []string) error {
		for _, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("cell value %q is not a number", s)
			}
			g.Cells = append(g.Cells, v)
		}
		return nil
	}

	if pending != nil {
		if err := appendRow(pending); err != nil {
			return nil, err
		}
	}
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if err := appendRow(fields); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(g.Cells) != g.Ncols*g.Nrows {
		return nil, fmt.Errorf("expected %d cells, got %d", g.Ncols*g.Nrows, len(g.Cells))
	}

	return g, nil
}

// WriteFile writes a grid to disk as an ESRI ASCII Grid.
func WriteFile(g *Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating raster %s: %v", path, err)
	}
	defer f.Close()

	if err := Write(g, f); err != nil {
		return fmt.Errorf("writing raster %s: %v", path, err)
	}
	return nil
}

// Write renders a grid in ESRI ASCII form, one raster row per line.
func Write(g *Grid, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "ncols %d\n", g.Ncols)
	fmt.Fprintf(bw, "nrows %d\n", g.Nrows)
	fmt.Fprintf(bw, "xllcorner %s\n", trimFloat(g.Xll))
	fmt.Fprintf(bw, "yllcorner %s\n", trimFloat(g.Yll))
	fmt.Fprintf(bw, "cellsize %s\n", trimFloat(g.CellSize))
	fmt.Fprintf(bw, "NODATA_value %s\n", trimFloat(g.NoData))

	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			if c > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(trimFloat(g.Value(c, r)))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
