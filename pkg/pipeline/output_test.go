package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneFeatureCollection(lon, lat float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{lon, lat}))
	return fc
}

func TestDocument_SingleSetIsBareFeatureCollection(t *testing.T) {
	doc := newDocument()
	doc.add("soil62", oneFeatureCollection(100.5, 13.75))

	path := filepath.Join(t.TempDir(), "out", "soil62.json")
	require.NoError(t, doc.write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
	assert.Contains(t, decoded, "features")

	// Pretty-printed with two-space indent.
	assert.Contains(t, string(data), "\n  \"")
}

func TestDocument_MultipleSetsAreNameKeyed(t *testing.T) {
	doc := newDocument()
	doc.add("soil62", oneFeatureCollection(100.5, 13.75))
	doc.add("soil63", oneFeatureCollection(101.0, 14.0))

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, doc.write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	// No outer FeatureCollection wrapper in the multi-set case.
	assert.NotContains(t, decoded, "type")
	require.Contains(t, decoded, "soil62")
	require.Contains(t, decoded, "soil63")

	var fc map[string]any
	require.NoError(t, json.Unmarshal(decoded["soil62"], &fc))
	assert.Equal(t, "FeatureCollection", fc["type"])
}

func TestDocument_AddSameNameReplaces(t *testing.T) {
	doc := newDocument()
	doc.add("soil62", oneFeatureCollection(100.5, 13.75))
	doc.add("soil62", oneFeatureCollection(101.0, 14.0))

	assert.Equal(t, 1, doc.len())
}
