package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSources(t *testing.T) {
	path := writeSourcesFile(t, `
dir: /data/exports
sources:
  - file: property_data_1.csv
    enabled: true
  - file: property_data_2.csv
    enabled: true
  - file: property_data_3.csv
    enabled: false
`)

	list, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}

	got := list.EnabledPaths()
	want := []string{
		filepath.Join("/data/exports", "property_data_1.csv"),
		filepath.Join("/data/exports", "property_data_2.csv"),
	}
	if len(got) != len(want) {
		t.Fatalf("EnabledPaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EnabledPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadSources_OrderPreserved(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - file: b.csv
    enabled: true
  - file: a.csv
    enabled: true
`)

	list, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}

	got := list.EnabledPaths()
	if len(got) != 2 || got[0] != "b.csv" || got[1] != "a.csv" {
		t.Errorf("EnabledPaths() = %v, want declared order [b.csv a.csv]", got)
	}
}

func TestLoadSources_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no sources",
			content: "sources: []\n",
			wantErr: ErrNoSources,
		},
		{
			name: "missing file",
			content: `
sources:
  - enabled: true
`,
			wantErr: ErrSourceMissingFile,
		},
		{
			name: "all disabled",
			content: `
sources:
  - file: a.csv
    enabled: false
`,
			wantErr: ErrNoEnabledSources,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSourcesFile(t, tt.content)
			_, err := LoadSources(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadSources() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSources_FileMissing(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadSources() expected error for missing file")
	}
}
