// Package store reads and writes a library file: a YAML sequence of records.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bibmerge/src/internal/schema"
)

// Load reads every record from the library file at path.
func Load(path string) ([]*schema.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recs []*schema.Record
	if err := yaml.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}
	for _, r := range recs {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("store: %s: %w", path, err)
		}
	}
	return recs, nil
}

// Save writes recs to path atomically (temp file + rename).
func Save(path string, recs []*schema.Record) error {
	b, err := yaml.Marshal(recs)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".library-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FindByID returns the record with the given id, if present.
func FindByID(recs []*schema.Record, id string) (*schema.Record, bool) {
	for _, r := range recs {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}
