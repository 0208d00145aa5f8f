package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
)

// MockValidator is a mock implementation of the Validator interface for testing
type MockValidator struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]error // keyed by file name suffix
	rows     int
}

func NewMockValidator() *MockValidator {
	return &MockValidator{
		failures: make(map[string]error),
		rows:     1,
	}
}

func (m *MockValidator) Validate(ctx context.Context, path string) (*domain.ParseReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, path)

	for suffix, err := range m.failures {
		if strings.HasSuffix(path, suffix) {
			return nil, err
		}
	}

	return &domain.ParseReport{
		Header:  []string{"Position", "Track Name", "Artist", "Streams", "URL"},
		Columns: 5,
		Rows:    m.rows,
	}, nil
}

// SetFailFor makes Validate fail for any path ending in filename
func (m *MockValidator) SetFailFor(filename string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[filename] = err
}

func (m *MockValidator) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}
