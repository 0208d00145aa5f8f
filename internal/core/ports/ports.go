package ports

import (
	"context"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
)

// Fetcher defines the port for retrieving a remote resource
type Fetcher interface {
	// Fetch issues a GET request, following redirects, and returns the final response.
	// A non-2xx status is not an error at this level.
	Fetch(ctx context.Context, url string) (*domain.FetchResult, error)
}

// ArtifactStore defines the port for persisting downloaded bytes
type ArtifactStore interface {
	// Stage writes data to a temporary location next to the final file
	// Returns the path of the staged file
	Stage(ctx context.Context, filename string, data []byte) (string, error)

	// Commit moves a staged file onto its final name, replacing any existing file
	// Returns the final path
	Commit(ctx context.Context, stagedPath string, filename string) (string, error)

	// Discard removes a staged file that will not be committed
	Discard(stagedPath string) error
}

// Validator defines the port for checking that a written file is tabular data
type Validator interface {
	// Validate parses the file at path and reports its shape
	Validate(ctx context.Context, path string) (*domain.ParseReport, error)
}
