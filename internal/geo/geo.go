// Package geo loads country boundaries from GeoJSON and projects them onto
// a canvas.
package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"happydash/internal/jsonutil"
)

// ErrNoFeatures is returned when a GeoJSON file has no usable country shapes.
var ErrNoFeatures = errors.New("no polygon features")

// Feature is one country shape keyed by the name matched against the dataset.
type Feature struct {
	Name     string
	Polygons orb.MultiPolygon
}

// Geography is the immutable set of country shapes.
type Geography struct {
	Features []Feature
}

// Parse decodes a GeoJSON FeatureCollection. Features without a
// properties.name or without Polygon/MultiPolygon geometry are skipped.
func Parse(data []byte) (*Geography, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geography: %w", err)
	}
	g := &Geography{}
	for _, f := range fc.Features {
		name := f.Properties.MustString("name", "")
		if name == "" {
			continue
		}
		var mp orb.MultiPolygon
		switch geom := f.Geometry.(type) {
		case orb.Polygon:
			mp = orb.MultiPolygon{geom}
		case orb.MultiPolygon:
			mp = geom
		default:
			continue
		}
		g.Features = append(g.Features, Feature{Name: name, Polygons: mp})
	}
	if len(g.Features) == 0 {
		return nil, fmt.Errorf("geography: %w", ErrNoFeatures)
	}
	return g, nil
}

// Load reads and parses the GeoJSON file at path.
func Load(path string) (*Geography, error) {
	b, err := jsonutil.ReadFile(path, "geography")
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Names returns the feature names in file order.
func (g *Geography) Names() []string {
	out := make([]string, len(g.Features))
	for i, f := range g.Features {
		out[i] = f.Name
	}
	return out
}
