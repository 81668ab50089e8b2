// Package crs resolves shapefile .prj contents to a coordinate reference
// system identifier and builds forward transforms to WGS84.
package crs

import (
	"fmt"
	"strings"

	"github.com/wroge/wgs84"
)

// Identifiers for the reference systems the soil datasets ship in.
const (
	UTM47N = "EPSG:32647"
	UTM48N = "EPSG:32648"
	WGS84  = "EPSG:4326"
)

// marker maps a substring of .prj text to an identifier. Order matters:
// the first match wins.
type marker struct {
	substr string
	id     string
}

var markers = []marker{
	{"Zone_47", UTM47N},
	{"Zone 47", UTM47N},
	{"Zone_48", UTM48N},
	{"Zone 48", UTM48N},
	{"GCS_WGS_1984", WGS84},
	{"WGS 84", WGS84},
}

// Resolve maps .prj file contents to a CRS identifier. Unrecognized text is
// returned verbatim as a best-effort identifier; constructing a transform
// from it will fail later, and that failure is surfaced rather than hidden.
func Resolve(prj []byte) string {
	text := string(prj)
	for _, m := range markers {
		if strings.Contains(text, m.substr) {
			return m.id
		}
	}
	return text
}

// IsGeographic reports whether id already denotes WGS84 coordinates (or is
// absent), i.e. no reprojection is needed.
func IsGeographic(id string) bool {
	return id == "" || id == WGS84
}

// Forward returns a function projecting (x, y) in the given CRS to
// (lon, lat) in WGS84.
func Forward(id string) (func(x, y float64) (lon, lat float64), error) {
	var from wgs84.CoordinateReferenceSystem
	switch id {
	case UTM47N:
		from = wgs84.UTM(47, true)
	case UTM48N:
		from = wgs84.UTM(48, true)
	default:
		return nil, fmt.Errorf("unsupported CRS definition %q", id)
	}

	f := wgs84.Transform(from, wgs84.LonLat())
	return func(x, y float64) (float64, float64) {
		lon, lat, _ := f(x, y, 0)
		return lon, lat
	}, nil
}
