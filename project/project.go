// Package project holds the layer registry of a working session. A project is
// a single sqlite file next to the data it references; every layer the
// pipeline produces is registered here instead of in a global application
// singleton.
package project

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/godeepar/waterlevel/config"
	"github.com/godeepar/waterlevel/raster"
)

// DefaultCRS is assumed for projects that never set one.
const DefaultCRS = "EPSG:3857"

// Project is an open project file.
type Project struct {
	db   *sql.DB
	path string
}

// Open opens a project file, creating it and its schema when missing.
func Open(path string) (*Project, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open project %s: %v", path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS layers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		geom_type TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		memory BLOB,
		style TEXT NOT NULL DEFAULT '',
		extent TEXT NOT NULL DEFAULT '',
		s2 TEXT NOT NULL DEFAULT '',
		added_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create project schema: %v", err)
	}

	return &Project{db: db, path: path}, nil
}

// Close closes the underlying project file.
func (p *Project) Close() error {
	return p.db.Close()
}

// Path returns the project file path.
func (p *Project) Path() string {
	return p.path
}

// HomePath returns the directory holding the project file. Relative layer
// output lands under it.
func (p *Project) HomePath() string {
	return filepath.Dir(p.path)
}

// AddLayer registers a layer and fills in its ID, coverage tokens and
// timestamp.
func (p *Project) AddLayer(l *Layer) error {
	if l.Name == "" {
		return fmt.Errorf("add layer: layer has no name")
	}
	if l.Kind != KindRaster && l.Kind != KindVector {
		return fmt.Errorf("add layer %s: unknown kind %q", l.Name, l.Kind)
	}

	if len(l.S2) == 0 {
		l.S2 = s2Covering(l.Extent)
	}
	l.AddedAt = time.Now().UTC().Format(time.RFC3339)

	style := ""
	if l.Style != nil {
		raw, err := json.Marshal(l.Style)
		if err != nil {
			return fmt.Errorf("add layer %s: encode style: %v", l.Name, err)
		}
		style = string(raw)
	}

	extent := ""
	if !l.Extent.Empty() {
		extent = l.Extent.String()
	}

	res, err := p.db.Exec(
		`INSERT INTO layers (name, kind, geom_type, source, memory, style, extent, s2, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Name, l.Kind, l.GeomType, l.Source, l.Memory, style, extent,
		strings.Join(l.S2, ","), l.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("add layer %s: %v", l.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("add layer %s: %v", l.Name, err)
	}
	l.ID = strconv.FormatInt(id, 10)

	return nil
}

// RemoveLayer deletes a layer from the registry. Removing an unknown layer is
// an error.
func (p *Project) RemoveLayer(id string) error {
	res, err := p.db.Exec(`DELETE FROM layers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove layer %s: %v", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove layer %s: %v", id, err)
	}
	if n == 0 {
		return fmt.Errorf("remove layer %s: no such layer", id)
	}
	return nil
}

// Layer looks a layer up by ID, or by name when no ID matches.
func (p *Project) Layer(ref string) (*Layer, error) {
	row := p.db.QueryRow(
		`SELECT id, name, kind, geom_type, source, memory, style, extent, s2, added_at
		 FROM layers WHERE id = ? OR name = ? ORDER BY id LIMIT 1`, ref, ref)

	l, err := scanLayer(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("layer %q: not in project", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("layer %q: %v", ref, err)
	}
	return l, nil
}

// Layers lists every registered layer in registration order.
func (p *Project) Layers() ([]*Layer, error) {
	return p.queryLayers(
		`SELECT id, name, kind, geom_type, source, memory, style, extent, s2, added_at
		 FROM layers ORDER BY id`)
}

// RasterLayers lists the raster layers in registration order.
func (p *Project) RasterLayers() ([]*Layer, error) {
	return p.queryLayers(
		`SELECT id, name, kind, geom_type, source, memory, style, extent, s2, added_at
		 FROM layers WHERE kind = ? ORDER BY id`, KindRaster)
}

// VectorLayers lists vector layers, restricted to one geometry type when
// geomType is not empty.
func (p *Project) VectorLayers(geomType string) ([]*Layer, error) {
	if geomType == "" {
		return p.queryLayers(
			`SELECT id, name, kind, geom_type, source, memory, style, extent, s2, added_at
			 FROM layers WHERE kind = ? ORDER BY id`, KindVector)
	}
	return p.queryLayers(
		`SELECT id, name, kind, geom_type, source, memory, style, extent, s2, added_at
		 FROM layers WHERE kind = ? AND geom_type = ? ORDER BY id`, KindVector, geomType)
}

// CRS returns the project coordinate reference system.
func (p *Project) CRS() string {
	v, err := p.setting("crs")
	if err != nil || v == "" {
		return DefaultCRS
	}
	return v
}

// SetCRS stores the project coordinate reference system.
func (p *Project) SetCRS(crs string) error {
	return p.setSetting("crs", crs)
}

// ViewExtent returns the stored map view extent, empty when never set.
func (p *Project) ViewExtent() (raster.Extent, error) {
	v, err := p.setting("view_extent")
	if err != nil || v == "" {
		return raster.Extent{}, err
	}
	return raster.ParseExtent(v)
}

// SetViewExtent stores the map view extent.
func (p *Project) SetViewExtent(e raster.Extent) error {
	return p.setSetting("view_extent", e.String())
}

func (p *Project) setting(key string) (string, error) {
	var v string
	err := p.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %v", key, err)
	}
	return v, nil
}

func (p *Project) setSetting(key, value string) error {
	_, err := p.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("store setting %s: %v", key, err)
	}
	return nil
}

func (p *Project) queryLayers(query string, args ...interface{}) ([]*Layer, error) {
	rows, err := p.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list layers: %v", err)
	}
	defer rows.Close()

	var layers []*Layer
	for rows.Next() {
		l, err := scanLayer(rows)
		if err != nil {
			return nil, fmt.Errorf("list layers: %v", err)
		}
		layers = append(layers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layers: %v", err)
	}
	return layers, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLayer(s scanner) (*Layer, error) {
	var (
		l      Layer
		id     int64
		style  string
		extent string
		s2     string
	)
	err := s.Scan(&id, &l.Name, &l.Kind, &l.GeomType, &l.Source, &l.Memory,
		&style, &extent, &s2, &l.AddedAt)
	if err != nil {
		return nil, err
	}
	l.ID = strconv.FormatInt(id, 10)

	if style != "" {
		var st config.Style
		if err := json.Unmarshal([]byte(style), &st); err != nil {
			return nil, fmt.Errorf("decode style: %v", err)
		}
		l.Style = &st
	}
	if extent != "" {
		e, err := raster.ParseExtent(extent)
		if err != nil {
			return nil, fmt.Errorf("decode extent: %v", err)
		}
		l.Extent = e
	}
	if s2 != "" {
		l.S2 = strings.Split(s2, ",")
	}

	return &l, nil
}
