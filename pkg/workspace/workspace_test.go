package workspace

import (
	"path/filepath"
	"testing"
)

func TestWorkspace_ArtifactPath(t *testing.T) {
	w := &Workspace{OutputDir: "/data/charts"}

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"january", "regional-global-daily-2020-01-01.csv", "/data/charts/regional-global-daily-2020-01-01.csv"},
		{"december", "regional-global-daily-2020-12-01.csv", "/data/charts/regional-global-daily-2020-12-01.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := w.ArtifactPath(tt.filename)
			if result != tt.expected {
				t.Errorf("ArtifactPath(%q) = %q, want %q", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestNew_DefaultsToCurrentDirectory(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if w.OutputDir != "." {
		t.Errorf("expected OutputDir '.', got %q", w.OutputDir)
	}
}

func TestNew_UsesXDGConfigHome(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	expected := filepath.Join(configHome, "chartfetch", "config.yaml")
	if w.ConfigPath != expected {
		t.Errorf("ConfigPath = %q, want %q", w.ConfigPath, expected)
	}
}

func TestWorkspace_SetOutputDir(t *testing.T) {
	w := NewWithOutputDir(".")

	w.SetOutputDir("")
	if w.OutputDir != "." {
		t.Errorf("empty dir should be ignored, got %q", w.OutputDir)
	}

	w.SetOutputDir("/tmp/out")
	if w.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want /tmp/out", w.OutputDir)
	}
}

func TestWorkspace_Initialize(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "charts")
	w := NewWithOutputDir(dir)

	if w.Exists() {
		t.Fatal("directory should not exist yet")
	}

	if err := w.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if !w.Exists() {
		t.Error("expected directory to exist after Initialize")
	}

	// Idempotent
	if err := w.Initialize(); err != nil {
		t.Errorf("second Initialize failed: %v", err)
	}
}

func TestWorkspace_AbsOutputDir(t *testing.T) {
	w := NewWithOutputDir("relative/charts")

	if !filepath.IsAbs(w.AbsOutputDir()) {
		t.Errorf("expected absolute path, got %q", w.AbsOutputDir())
	}
}
