package pipeline

import "fmt"

// FetchError reports a failed archive download. Status is zero when the
// request failed before a response arrived.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports a corrupt or unsupported archive.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extracting archive: %v", e.Err) }

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError reports a malformed shapefile component set, an attribute
// encoding failure, or a projection that could not be constructed.
type ParseError struct {
	Set string
	Err error
}

func (e *ParseError) Error() string {
	if e.Set == "" {
		return fmt.Sprintf("parsing archive contents: %v", e.Err)
	}
	return fmt.Sprintf("parsing component set %q: %v", e.Set, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError reports a filesystem failure while writing the output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("writing %s: %v", e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }
