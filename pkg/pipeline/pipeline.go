// Package pipeline turns a remote RAR-compressed shapefile archive into a
// GeoJSON file: fetch, extract, group into component sets, parse, reproject
// to WGS84, simplify, write.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
	"golang.org/x/text/encoding/charmap"

	"soil2geojson/pkg/archive"
	"soil2geojson/pkg/config"
	"soil2geojson/pkg/crs"
	"soil2geojson/pkg/fetch"
	"soil2geojson/pkg/reproject"
	"soil2geojson/pkg/shapeset"
)

// attrEncoding decodes dbf attribute text. The soil datasets ship dbf files
// in the legacy Thai codepage; decoding them as anything else mangles every
// Thai attribute value.
var attrEncoding = charmap.Windows874

// Converter runs the archive-to-GeoJSON pipeline for single batch items.
type Converter struct {
	client   *fetch.Client
	simplify config.SimplifyConfig
}

// New creates a Converter.
func New(client *fetch.Client, simplifyCfg config.SimplifyConfig) *Converter {
	return &Converter{client: client, simplify: simplifyCfg}
}

// Convert downloads the archive at url and writes its converted GeoJSON to
// outputPath. It either fully succeeds or returns one of *FetchError,
// *ExtractionError, *ParseError or *WriteError without writing anything.
func (c *Converter) Convert(ctx context.Context, url, outputPath string) error {
	slog.Info("Downloading archive", "url", url)
	data, err := c.client.Get(ctx, url)
	if err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) {
			return &FetchError{URL: url, Status: se.Status, Err: err}
		}
		return &FetchError{URL: url, Err: err}
	}

	members, err := archive.Extract(data)
	if err != nil {
		return &ExtractionError{Err: err}
	}

	sets := shapeset.Group(members)

	doc := newDocument()
	for _, set := range sets {
		if !set.Complete() {
			slog.Warn("Skipping incomplete component set", "name", set.Name)
			continue
		}

		fc, err := c.convertSet(set)
		if err != nil {
			return &ParseError{Set: set.Name, Err: err}
		}
		doc.add(set.Name, fc)
	}

	if doc.len() == 0 {
		return &ParseError{Err: errors.New("archive contains no convertible shapefile")}
	}

	return doc.write(outputPath)
}

// convertSet parses one shapefile component set into a FeatureCollection,
// reprojecting and simplifying each feature in read order.
func (c *Converter) convertSet(set *shapeset.Set) (*geojson.FeatureCollection, error) {
	// An empty or whitespace-only .prj counts as absent, so the regional
	// default applies instead of a blank identifier.
	sourceCRS := crs.UTM47N
	if len(bytes.TrimSpace(set.PRJ)) > 0 {
		sourceCRS = crs.Resolve(set.PRJ)
	}
	slog.Info("Converting component set", "name", set.Name, "crs", sourceCRS)

	sr := shp.SequentialReaderFromExt(memberReader(set.SHP), memberReader(set.DBF))
	defer sr.Close()

	fields := sr.Fields()
	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = f.String()
	}

	decoder := attrEncoding.NewDecoder()
	fc := geojson.NewFeatureCollection()

	for sr.Next() {
		_, s := sr.Shape()

		geometry, ok := toGeometry(s)
		if !ok {
			continue
		}

		geometry, err := reproject.Geometry(geometry, sourceCRS)
		if err != nil {
			return nil, err
		}
		geometry = c.simplifyGeometry(geometry)

		f := geojson.NewFeature(geometry)
		for i, name := range fieldNames {
			val, err := decoder.String(sr.Attribute(i))
			if err != nil {
				return nil, fmt.Errorf("decoding attribute %q: %w", name, err)
			}
			f.Properties[name] = strings.TrimRight(val, "\x00 ")
		}
		fc.Append(f)
	}

	if err := sr.Err(); err != nil {
		return nil, fmt.Errorf("reading shapefile records: %w", err)
	}

	slog.Info("Converted component set", "name", set.Name, "features", len(fc.Features))
	return fc, nil
}

// simplifyGeometry reduces line and polygon geometry at the configured
// tolerance. Visvalingam drops the points contributing the least area,
// which keeps curvature better than plain distance thresholding. Points
// are never simplified.
func (c *Converter) simplifyGeometry(g orb.Geometry) orb.Geometry {
	if !c.simplify.Enabled {
		return g
	}
	switch g.(type) {
	case orb.LineString, orb.MultiLineString, orb.Polygon, orb.MultiPolygon:
		return simplify.VisvalingamThreshold(c.simplify.Tolerance).Simplify(g)
	}
	return g
}

// toGeometry maps a shapefile record to an orb geometry. Null and
// unsupported shape types are skipped.
func toGeometry(s shp.Shape) (orb.Geometry, bool) {
	switch v := s.(type) {
	case *shp.Point:
		return orb.Point{v.X, v.Y}, true
	case *shp.MultiPoint:
		mp := make(orb.MultiPoint, len(v.Points))
		for i, p := range v.Points {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp, true
	case *shp.PolyLine:
		return toMultiLineString(v.NumParts, v.NumPoints, v.Parts, v.Points), true
	case *shp.Polygon:
		return toPolygon(v.NumParts, v.NumPoints, v.Parts, v.Points), true
	case *shp.Null:
		return nil, false
	default:
		slog.Warn("Skipping unsupported shape type", "type", fmt.Sprintf("%T", s))
		return nil, false
	}
}

func toMultiLineString(numParts, numPoints int32, parts []int32, points []shp.Point) orb.MultiLineString {
	var mls orb.MultiLineString
	for i := int32(0); i < numParts; i++ {
		start := parts[i]
		end := numPoints
		if i < numParts-1 {
			end = parts[i+1]
		}

		line := make(orb.LineString, 0, end-start)
		for j := start; j < end; j++ {
			line = append(line, orb.Point{points[j].X, points[j].Y})
		}
		mls = append(mls, line)
	}
	return mls
}

// toPolygon treats every part as a ring of a single polygon, matching how
// the source datasets encode their shapes.
func toPolygon(numParts, numPoints int32, parts []int32, points []shp.Point) orb.Polygon {
	var poly orb.Polygon
	for i := int32(0); i < numParts; i++ {
		start := parts[i]
		end := numPoints
		if i < numParts-1 {
			end = parts[i+1]
		}

		ring := make(orb.Ring, 0, end-start)
		for j := start; j < end; j++ {
			ring = append(ring, orb.Point{points[j].X, points[j].Y})
		}
		poly = append(poly, ring)
	}
	return poly
}

func memberReader(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}
