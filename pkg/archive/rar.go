// Package archive extracts RAR archives into in-memory members.
package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"

	"soil2geojson/pkg/shapeset"
)

// Extract decompresses a RAR archive held in memory and returns its file
// members in archive order. Directories are skipped.
func Extract(data []byte) ([]shapeset.Member, error) {
	r, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening rar archive: %w", err)
	}

	var members []shapeset.Member
	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rar entry: %w", err)
		}
		if hdr.IsDir {
			continue
		}

		buf, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", hdr.Name, err)
		}
		members = append(members, shapeset.Member{Name: hdr.Name, Data: buf})
	}

	return members, nil
}
