package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePath(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"file", filepath.Join("cache", "http")},
		{"sqlite", filepath.Join("cache", "cache.db")},
		{"none", "Caching is disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			_, cfgPath := writeConfig(t, "http://127.0.0.1", tt.backend)
			stdout, _, err := execute(t, "cache", "path", "--config", cfgPath)
			if err != nil {
				t.Fatalf("cache path: %v", err)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestCacheClear(t *testing.T) {
	dir, cfgPath := writeConfig(t, "http://127.0.0.1", "file")
	httpDir := filepath.Join(dir, "cache", "http")
	if err := os.MkdirAll(httpDir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(httpDir, "stale.json")
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "cache", "clear", "--config", cfgPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(stdout, "Cache cleared") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale entry still present: %v", err)
	}
}
