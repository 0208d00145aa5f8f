package domain

import "time"

// FetchResult is the raw outcome of one HTTP request
type FetchResult struct {
	URL         string
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

// IsSuccess reports whether the final status code is 2xx
func (r *FetchResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ParseReport summarizes what the validator saw in a written file
type ParseReport struct {
	Header  []string
	Columns int
	Rows    int // data rows, header excluded
}

// Artifact represents a downloaded file persisted verbatim to disk
type Artifact struct {
	Target      Target
	Path        string // Final file path
	Bytes       int64  // Size of the response body
	StatusCode  int    // Final HTTP status
	ContentType string // As reported by the server
	SHA256      string // Hex digest of the body
	Rows        int    // Data rows seen by the validator
	FetchedAt   time.Time
}

// ShortDigest returns the first 12 hex characters of the body digest
func (a *Artifact) ShortDigest() string {
	if len(a.SHA256) <= 12 {
		return a.SHA256
	}
	return a.SHA256[:12]
}
