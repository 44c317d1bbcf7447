package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source-sequence validation errors.
var (
	ErrNoSources         = errors.New("at least one source is required")
	ErrSourceMissingFile = errors.New("file is required")
	ErrNoEnabledSources  = errors.New("at least one source must be enabled")
)

// SourceList declares the ordered sequence of CSV exports for one run.
// Order is load-bearing: first-seen-wins dedup across sources depends on
// it. A disabled source is removed from the sequence entirely.
type SourceList struct {
	// Dir is the directory the files live in; relative file entries are
	// resolved against it.
	Dir string `yaml:"dir"`

	Sources []Source `yaml:"sources"`
}

// Source is one declared CSV export.
type Source struct {
	File    string `yaml:"file"`
	Enabled bool   `yaml:"enabled"`
}

// LoadSources reads and validates the YAML source sequence.
func LoadSources(path string) (*SourceList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var list SourceList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("sources file %s: %w", path, err)
	}

	return &list, nil
}

// Validate checks the declared sequence.
func (l *SourceList) Validate() error {
	if len(l.Sources) == 0 {
		return ErrNoSources
	}

	enabled := 0
	for i, src := range l.Sources {
		if src.File == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingFile, i)
		}
		if src.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return ErrNoEnabledSources
	}
	return nil
}

// EnabledPaths returns the resolved paths of enabled sources in declared
// order.
func (l *SourceList) EnabledPaths() []string {
	var paths []string
	for _, src := range l.Sources {
		if !src.Enabled {
			continue
		}
		if l.Dir != "" && !filepath.IsAbs(src.File) {
			paths = append(paths, filepath.Join(l.Dir, src.File))
		} else {
			paths = append(paths, src.File)
		}
	}
	return paths
}
