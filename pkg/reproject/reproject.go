// Package reproject converts orb geometries from a source CRS to WGS84.
package reproject

import (
	"fmt"

	"github.com/paulmach/orb"

	"soil2geojson/pkg/crs"
)

// coordDepth is the nesting depth of the coordinates array per geometry
// kind: 0 means a bare [x, y] pair, each level above maps over its children.
// Kinds absent from the table are passed through untouched.
var coordDepth = map[string]int{
	"Point":           0,
	"LineString":      1,
	"MultiPoint":      1,
	"Polygon":         2,
	"MultiLineString": 2,
	"MultiPolygon":    3,
}

// Geometry returns g with its coordinates reprojected from sourceCRS to
// WGS84. The input is never mutated; fresh coordinate slices are allocated.
// When sourceCRS is empty or already WGS84 the geometry is returned as-is,
// and unrecognized geometry kinds pass through unmodified.
func Geometry(g orb.Geometry, sourceCRS string) (orb.Geometry, error) {
	if g == nil || crs.IsGeographic(sourceCRS) {
		return g, nil
	}
	depth, ok := coordDepth[g.GeoJSONType()]
	if !ok {
		return g, nil
	}

	fwd, err := crs.Forward(sourceCRS)
	if err != nil {
		return nil, fmt.Errorf("building transform from %q: %w", sourceCRS, err)
	}

	return mapCoords(g, depth, fwd)
}

// mapCoords rebuilds g with fwd applied to every coordinate pair. The depth
// from the coordDepth table drives the recursion: each composite level peels
// one off, and it must reach exactly zero at a coordinate pair — anything
// else is malformed input and fails instead of silently truncating.
func mapCoords(g orb.Geometry, depth int, fwd func(x, y float64) (float64, float64)) (orb.Geometry, error) {
	if depth == 0 {
		p, ok := g.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("coordinate depth mismatch: %T at depth 0", g)
		}
		lon, lat := fwd(p[0], p[1])
		return orb.Point{lon, lat}, nil
	}

	switch s := g.(type) {
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(s))
		for i, p := range s {
			c, err := mapCoords(p, depth-1, fwd)
			if err != nil {
				return nil, err
			}
			out[i] = c.(orb.Point)
		}
		return out, nil
	case orb.LineString:
		out := make(orb.LineString, len(s))
		for i, p := range s {
			c, err := mapCoords(p, depth-1, fwd)
			if err != nil {
				return nil, err
			}
			out[i] = c.(orb.Point)
		}
		return out, nil
	case orb.Ring:
		out := make(orb.Ring, len(s))
		for i, p := range s {
			c, err := mapCoords(p, depth-1, fwd)
			if err != nil {
				return nil, err
			}
			out[i] = c.(orb.Point)
		}
		return out, nil
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(s))
		for i, ls := range s {
			c, err := mapCoords(ls, depth-1, fwd)
			if err != nil {
				return nil, err
			}
			out[i] = c.(orb.LineString)
		}
		return out, nil
	case orb.Polygon:
		out := make(orb.Polygon, len(s))
		for i, r := range s {
			c, err := mapCoords(r, depth-1, fwd)
			if err != nil {
				return nil, err
			}
			out[i] = c.(orb.Ring)
		}
		return out, nil
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(s))
		for i, p := range s {
			c, err := mapCoords(p, depth-1, fwd)
			if err != nil {
				return nil, err
			}
			out[i] = c.(orb.Polygon)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("coordinate depth mismatch: %T at depth %d", g, depth)
	}
}
