package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
)

// MockFetcher is a mock implementation of the Fetcher interface for testing
type MockFetcher struct {
	mu         sync.Mutex
	calls      []string
	responses  map[string]*domain.FetchResult
	failures   map[string]error
	shouldFail bool
	failError  error
}

// NewMockFetcher creates a fetcher that answers every URL with a small CSV body
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		responses: make(map[string]*domain.FetchResult),
		failures:  make(map[string]error),
	}
}

// Fetch records the call and returns the configured response for url
func (m *MockFetcher) Fetch(ctx context.Context, url string) (*domain.FetchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, url)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err, ok := m.failures[url]; ok {
		return nil, err
	}
	if m.shouldFail {
		if m.failError != nil {
			return nil, m.failError
		}
		return nil, fmt.Errorf("fetch failed for %s", url)
	}

	if resp, ok := m.responses[url]; ok {
		copied := *resp
		copied.URL = url
		return &copied, nil
	}

	return &domain.FetchResult{
		URL:         url,
		StatusCode:  200,
		Status:      "200 OK",
		ContentType: "text/csv",
		Body:        []byte("Position,Track Name,Artist,Streams,URL\n1,Song,Artist,100,https://example.com\n"),
	}, nil
}

// SetResponse sets the response returned for a specific URL
func (m *MockFetcher) SetResponse(url string, resp *domain.FetchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[url] = resp
}

// SetFailFor makes Fetch return err for a specific URL
func (m *MockFetcher) SetFailFor(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[url] = err
}

func (m *MockFetcher) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

func (m *MockFetcher) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockFetcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.responses = make(map[string]*domain.FetchResult)
	m.failures = make(map[string]error)
	m.shouldFail = false
	m.failError = nil
}
