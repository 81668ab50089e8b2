package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
)

// document collects the converted FeatureCollections of one archive.
//
// Its serialized shape is asymmetric on purpose: with exactly one component
// set the file is that set's bare FeatureCollection, with several sets it is
// a JSON object keyed by base filename (no outer FeatureCollection wrapper).
// Downstream consumers of the original datasets rely on this, so it is
// preserved rather than unified.
type document struct {
	names  []string
	byName map[string]*geojson.FeatureCollection
}

func newDocument() *document {
	return &document{byName: make(map[string]*geojson.FeatureCollection)}
}

func (d *document) add(name string, fc *geojson.FeatureCollection) {
	if _, ok := d.byName[name]; !ok {
		d.names = append(d.names, name)
	}
	d.byName[name] = fc
}

func (d *document) len() int { return len(d.names) }

func (d *document) marshal() ([]byte, error) {
	if d.len() == 1 {
		return json.MarshalIndent(d.byName[d.names[0]], "", "  ")
	}
	return json.MarshalIndent(d.byName, "", "  ")
}

// write serializes the document to path, creating the output directory if
// needed. Nothing is written when marshalling fails.
func (d *document) write(path string) error {
	data, err := d.marshal()
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("marshalling GeoJSON: %w", err)}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
