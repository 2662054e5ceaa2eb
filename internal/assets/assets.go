// Package assets embeds a small sample dataset and matching country shapes
// so the dashboard runs without any input files.
package assets

import (
	_ "embed"

	"happydash/internal/dataset"
	"happydash/internal/geo"
)

// Data is a sample of World Happiness Report records, 2019-2023.
//
//go:embed data.json
var Data []byte

// World holds simplified country outlines keyed by properties.name.
//
//go:embed world.geo.json
var World []byte

// Embedded names the bundled files where a path would otherwise be shown.
const Embedded = "embedded"

// Source returns path, or Embedded when path is empty.
func Source(path string) string {
	if path == "" {
		return Embedded
	}
	return path
}

// Dataset loads the records file at path, or the embedded sample when
// path is empty.
func Dataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Parse(Data)
	}
	return dataset.Load(path)
}

// Geography loads the GeoJSON file at path, or the embedded outlines.
func Geography(path string) (*geo.Geography, error) {
	if path == "" {
		return geo.Parse(World)
	}
	return geo.Load(path)
}
