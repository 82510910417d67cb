// Package parsererror defines the typed errors surfaced by the statement
// ingestion pipeline.
package parsererror

import "fmt"

// UnsupportedFormatError indicates that the input file's extension is not one
// of the supported statement formats.
type UnsupportedFormatError struct {
	FilePath  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported extension: %s", e.Extension)
}

// EmptyStatementError indicates that the input file contained no usable rows.
type EmptyStatementError struct {
	FilePath string
}

func (e *EmptyStatementError) Error() string {
	return "empty or unreadable statement"
}

// NormalizationError indicates that the raw table could not be mapped onto the
// canonical data/descricao/valor schema.
type NormalizationError struct {
	FilePath string
	Reason   string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize statement %s: %s", e.FilePath, e.Reason)
}

// CacheError indicates a cache load or save failure other than a missing file.
type CacheError struct {
	Path string
	Op   string
	Err  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
