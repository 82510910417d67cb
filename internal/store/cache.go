// Package store persists the categorization cache: a durable mapping from
// canonical transaction descriptions to category labels. The cache is the
// sole cross-run state of the pipeline and is what makes re-runs idempotent
// and incrementally cheaper.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// CacheStore manages loading and saving of the description→category mapping.
// Concurrent writers are not supported: two runs saving to the same path race
// on the final write and the last writer wins.
type CacheStore struct {
	Path string
}

// NewCacheStore creates a store backed by the given file path.
func NewCacheStore(path string) *CacheStore {
	return &CacheStore{Path: path}
}

// Load reads the full mapping from disk. A missing file is an empty cache,
// not an error; any other I/O fault propagates to the caller.
func (s *CacheStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField(logging.FieldCachePath, s.Path).Debug("Cache file not found, starting with empty cache")
			return map[string]string{}, nil
		}
		return nil, &parsererror.CacheError{Path: s.Path, Op: "load", Err: err}
	}

	var mapping map[string]string
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, &parsererror.CacheError{Path: s.Path, Op: "load", Err: err}
	}
	if mapping == nil {
		mapping = map[string]string{}
	}

	log.WithFields(
		logging.Field{Key: logging.FieldCachePath, Value: s.Path},
		logging.Field{Key: logging.FieldCount, Value: len(mapping)},
	).Debug("Loaded categorization cache")
	return mapping, nil
}

// Save overwrites the backing file with the full mapping. The write goes
// through a temporary file and a rename so a crash mid-save cannot leave a
// half-written cache behind.
func (s *CacheStore) Save(mapping map[string]string) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return &parsererror.CacheError{Path: s.Path, Op: "save", Err: fmt.Errorf("creating directory: %w", err)}
	}

	data, err := yaml.Marshal(mapping)
	if err != nil {
		return &parsererror.CacheError{Path: s.Path, Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp*")
	if err != nil {
		return &parsererror.CacheError{Path: s.Path, Op: "save", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &parsererror.CacheError{Path: s.Path, Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &parsererror.CacheError{Path: s.Path, Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		_ = os.Remove(tmpName)
		return &parsererror.CacheError{Path: s.Path, Op: "save", Err: err}
	}

	log.WithFields(
		logging.Field{Key: logging.FieldCachePath, Value: s.Path},
		logging.Field{Key: logging.FieldCount, Value: len(mapping)},
	).Debug("Saved categorization cache")
	return nil
}
