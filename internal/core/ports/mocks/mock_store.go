package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	stagedPrefix = "/fake/staged/"
	outputPrefix = "/fake/output/"
)

// MockArtifactStore is an in-memory implementation of the ArtifactStore interface
type MockArtifactStore struct {
	mu         sync.Mutex
	staged     map[string][]byte
	files      map[string][]byte
	discarded  []string
	failures   map[string]error
	commitErr  error
	discardErr error
}

func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{
		staged:   make(map[string][]byte),
		files:    make(map[string][]byte),
		failures: make(map[string]error),
	}
}

func (m *MockArtifactStore) Stage(ctx context.Context, filename string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failures[filename]; ok {
		return "", err
	}

	path := stagedPrefix + filename
	buf := make([]byte, len(data))
	copy(buf, data)
	m.staged[path] = buf
	return path, nil
}

func (m *MockArtifactStore) Commit(ctx context.Context, stagedPath string, filename string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.commitErr != nil {
		return "", m.commitErr
	}

	data, ok := m.staged[stagedPath]
	if !ok {
		return "", fmt.Errorf("staged file not found: %s", stagedPath)
	}
	delete(m.staged, stagedPath)
	m.files[filename] = data
	return outputPrefix + filename, nil
}

func (m *MockArtifactStore) Discard(stagedPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.discardErr != nil {
		return m.discardErr
	}

	delete(m.staged, stagedPath)
	m.discarded = append(m.discarded, strings.TrimPrefix(stagedPath, stagedPrefix))
	return nil
}

// SetCommitError makes every Commit fail with err
func (m *MockArtifactStore) SetCommitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitErr = err
}

// SetDiscardError makes every Discard fail with err, leaving the staged file in place
func (m *MockArtifactStore) SetDiscardError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discardErr = err
}

// SetFailFor makes Stage fail for a specific file name
func (m *MockArtifactStore) SetFailFor(filename string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[filename] = err
}

// Get returns the committed bytes for a file name
func (m *MockArtifactStore) Get(filename string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filename]
	return data, ok
}

// Files returns the number of committed files
func (m *MockArtifactStore) Files() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// PendingStaged returns the number of staged files neither committed nor discarded
func (m *MockArtifactStore) PendingStaged() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.staged)
}

// GetDiscarded returns the file names whose staged copies were discarded
func (m *MockArtifactStore) GetDiscarded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	discarded := make([]string, len(m.discarded))
	copy(discarded, m.discarded)
	return discarded
}
