package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
	"github.com/kamal-hamza/chartfetch/pkg/workspace"
)

const fileMode = 0644

// FileStore implements the ArtifactStore port on the workspace output directory
type FileStore struct {
	workspace *workspace.Workspace
}

// NewFileStore creates a store writing into the workspace output directory
func NewFileStore(ws *workspace.Workspace) *FileStore {
	return &FileStore{workspace: ws}
}

// Stage writes data to a hidden temporary file beside the destination
func (s *FileStore) Stage(ctx context.Context, filename string, data []byte) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	if err := s.workspace.Initialize(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.workspace.OutputDir, "."+filename+".part-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging file for %s: %w", filename, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return tmp.Name(), nil
}

// Commit renames the staged file onto its final name, replacing any existing file
func (s *FileStore) Commit(ctx context.Context, stagedPath string, filename string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	if err := os.Chmod(stagedPath, fileMode); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", filename, err)
	}

	finalPath := s.workspace.ArtifactPath(filename)
	if err := os.Rename(stagedPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}

	return finalPath, nil
}

// Discard removes a staged file; a missing file is not an error
func (s *FileStore) Discard(stagedPath string) error {
	if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", stagedPath, err)
	}
	return nil
}

// Downloaded maps the date stamp of every chart file already in the output
// directory to its path. A missing directory means nothing was downloaded yet.
func (s *FileStore) Downloaded() (map[string]string, error) {
	found := make(map[string]string)
	if !s.workspace.Exists() {
		return found, nil
	}

	entries, err := os.ReadDir(s.workspace.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if date, ok := domain.ParseFilename(entry.Name()); ok {
			found[date] = s.workspace.ArtifactPath(entry.Name())
		}
	}

	return found, nil
}

// validateFilename rejects names that would escape the output directory
func validateFilename(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.ContainsAny(filename, `/\`) || filename == "." || filename == ".." {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOutputPath, filename)
	}
	return nil
}
