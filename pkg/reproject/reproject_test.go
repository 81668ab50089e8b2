package reproject

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soil2geojson/pkg/crs"
)

// Roughly Bangkok in UTM zone 47N.
var bangkokUTM = orb.Point{662000, 1521000}

func TestGeometry_IdentityOnWGS84(t *testing.T) {
	p := orb.Point{100.5, 13.75}

	got, err := Geometry(p, crs.WGS84)
	require.NoError(t, err)
	assert.Equal(t, orb.Geometry(p), got)

	got, err = Geometry(p, "")
	require.NoError(t, err)
	assert.Equal(t, orb.Geometry(p), got)
}

func TestGeometry_Point(t *testing.T) {
	got, err := Geometry(bangkokUTM, crs.UTM47N)
	require.NoError(t, err)

	p, ok := got.(orb.Point)
	require.True(t, ok)
	assert.NotEqual(t, bangkokUTM, p)

	// Thailand bounds.
	assert.Greater(t, p[0], 97.0)
	assert.Less(t, p[0], 106.0)
	assert.Greater(t, p[1], 5.0)
	assert.Less(t, p[1], 21.0)
}

func TestGeometry_MultiPolygonShapePreserved(t *testing.T) {
	mp := orb.MultiPolygon{
		{
			{bangkokUTM, {663000, 1521000}, {663000, 1522000}, bangkokUTM},
			{{662200, 1521200}, {662400, 1521200}, {662300, 1521400}, {662200, 1521200}},
		},
		{
			{{700000, 1600000}, {701000, 1600000}, {701000, 1601000}, {700000, 1600000}},
		},
	}

	got, err := Geometry(mp, crs.UTM47N)
	require.NoError(t, err)

	out, ok := got.(orb.MultiPolygon)
	require.True(t, ok)
	require.Len(t, out, len(mp))
	for i := range mp {
		require.Len(t, out[i], len(mp[i]))
		for j := range mp[i] {
			require.Len(t, out[i][j], len(mp[i][j]))
			for k := range mp[i][j] {
				assert.NotEqual(t, mp[i][j][k], out[i][j][k])
			}
		}
	}
}

func TestGeometry_InputNotMutated(t *testing.T) {
	line := orb.LineString{bangkokUTM, {663000, 1522000}}
	orig := orb.LineString{bangkokUTM, {663000, 1522000}}

	_, err := Geometry(line, crs.UTM47N)
	require.NoError(t, err)
	assert.Equal(t, orig, line)
}

func TestGeometry_AllKindsTransformAtTheirDepth(t *testing.T) {
	ring := orb.Ring{bangkokUTM, {663000, 1521000}, {663000, 1522000}, bangkokUTM}
	geoms := []orb.Geometry{
		bangkokUTM,
		orb.MultiPoint{bangkokUTM, {663000, 1522000}},
		orb.LineString{bangkokUTM, {663000, 1522000}},
		orb.MultiLineString{{bangkokUTM, {663000, 1522000}}, {{700000, 1600000}, {701000, 1601000}}},
		orb.Polygon{ring},
		orb.MultiPolygon{{ring}},
	}

	for _, g := range geoms {
		t.Run(g.GeoJSONType(), func(t *testing.T) {
			got, err := Geometry(g, crs.UTM47N)
			require.NoError(t, err)
			assert.Equal(t, g.GeoJSONType(), got.GeoJSONType())
			assert.NotEqual(t, g, got)

			// Every leaf pair must land in Thailand's WGS84 bounds.
			b := got.Bound()
			assert.Greater(t, b.Min[0], 97.0)
			assert.Less(t, b.Max[0], 106.0)
			assert.Greater(t, b.Min[1], 5.0)
			assert.Less(t, b.Max[1], 21.0)
		})
	}
}

func TestGeometry_UnknownKindPassthrough(t *testing.T) {
	c := orb.Collection{bangkokUTM}

	got, err := Geometry(c, crs.UTM47N)
	require.NoError(t, err)
	assert.Equal(t, orb.Geometry(c), got)
}

func TestGeometry_BadCRS(t *testing.T) {
	_, err := Geometry(bangkokUTM, `PROJCS["Indian_1975_UTM"]`)
	require.Error(t, err)
}
