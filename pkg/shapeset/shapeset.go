// Package shapeset groups extracted archive members into shapefile
// component sets keyed by their shared base filename.
package shapeset

import (
	"path"
	"strings"
)

// Member is one extracted archive entry.
type Member struct {
	Name string
	Data []byte
}

// Set holds the component files of one shapefile, each optional until seen.
// A set is convertible once it has at least the geometry (.shp) and
// attribute (.dbf) files; .shx and .cpg are recognized but unused.
type Set struct {
	Name string
	SHP  []byte
	SHX  []byte
	DBF  []byte
	PRJ  []byte
	CPG  []byte
}

// Complete reports whether the set can be converted.
func (s *Set) Complete() bool {
	return s.SHP != nil && s.DBF != nil
}

// Group buckets members by base filename. Extensions are matched
// case-insensitively; unrecognized files are ignored. The returned slice
// preserves the order in which base names were first seen.
func Group(members []Member) []*Set {
	var order []*Set
	byName := make(map[string]*Set)

	for _, m := range members {
		ext := strings.ToLower(path.Ext(m.Name))
		switch ext {
		case ".shp", ".shx", ".dbf", ".prj", ".cpg":
		default:
			continue
		}

		base := strings.TrimSuffix(path.Base(m.Name), path.Ext(m.Name))
		set, ok := byName[base]
		if !ok {
			set = &Set{Name: base}
			byName[base] = set
			order = append(order, set)
		}

		switch ext {
		case ".shp":
			set.SHP = m.Data
		case ".shx":
			set.SHX = m.Data
		case ".dbf":
			set.DBF = m.Data
		case ".prj":
			set.PRJ = m.Data
		case ".cpg":
			set.CPG = m.Data
		}
	}

	return order
}
