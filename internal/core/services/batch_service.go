package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
	"github.com/kamal-hamza/chartfetch/internal/core/ports"
)

// StatusPolicy decides what happens to a response with a non-2xx status
type StatusPolicy string

const (
	// StatusPolicyStrict fails the month before anything is written
	StatusPolicyStrict StatusPolicy = "strict"

	// StatusPolicyIgnore writes whatever body came back and leaves
	// detection to the parse step
	StatusPolicyIgnore StatusPolicy = "ignore"
)

// ParseStatusPolicy converts a config or flag value into a StatusPolicy
func ParseStatusPolicy(s string) (StatusPolicy, error) {
	switch StatusPolicy(s) {
	case StatusPolicyStrict, StatusPolicyIgnore:
		return StatusPolicy(s), nil
	default:
		return "", fmt.Errorf("invalid status policy %q (expected %q or %q)", s, StatusPolicyStrict, StatusPolicyIgnore)
	}
}

// BatchService downloads the monthly chart snapshots one after another
type BatchService struct {
	fetcher   ports.Fetcher
	store     ports.ArtifactStore
	validator ports.Validator
	baseURL   string
	year      int
	now       func() time.Time
}

// NewBatchService creates a batch service for the fixed chart year and endpoint
func NewBatchService(fetcher ports.Fetcher, store ports.ArtifactStore, validator ports.Validator) *BatchService {
	return NewBatchServiceWithSource(fetcher, store, validator, domain.BaseURL, domain.Year)
}

// NewBatchServiceWithSource creates a batch service against another endpoint (For testing)
func NewBatchServiceWithSource(fetcher ports.Fetcher, store ports.ArtifactStore, validator ports.Validator, baseURL string, year int) *BatchService {
	return &BatchService{
		fetcher:   fetcher,
		store:     store,
		validator: validator,
		baseURL:   baseURL,
		year:      year,
		now:       time.Now,
	}
}

// BatchRequest represents a request to download every month of the year
type BatchRequest struct {
	StatusPolicy StatusPolicy
	KeepGoing    bool // Attempt every month even after a failure
}

// BatchProgress is reported once per finished (or skipped) month
type BatchProgress struct {
	Current int
	Total   int
	Result  domain.ItemResult
}

// Plan returns the targets a batch would download, without touching the network
func (s *BatchService) Plan() []domain.Target {
	return domain.PlanYear(s.baseURL, s.year)
}

// Execute downloads every month and returns the aggregated result
func (s *BatchService) Execute(ctx context.Context, req BatchRequest) (*domain.BatchResult, error) {
	return s.ExecuteWithProgress(ctx, req, nil)
}

// ExecuteWithProgress downloads every month in ascending order and reports progress.
// Item failures are recorded in the result; the returned error is only set when
// the context is cancelled. progressChan may be nil and is closed on return.
func (s *BatchService) ExecuteWithProgress(ctx context.Context, req BatchRequest, progressChan chan<- BatchProgress) (*domain.BatchResult, error) {
	if progressChan != nil {
		defer close(progressChan)
	}

	policy := req.StatusPolicy
	if policy == "" {
		policy = StatusPolicyStrict
	}

	targets := s.Plan()
	started := s.now()

	result := &domain.BatchResult{
		RunID:     uuid.NewString(),
		StartedAt: started,
		Total:     len(targets),
		Results:   make([]domain.ItemResult, 0, len(targets)),
	}

	report := func(item domain.ItemResult) {
		result.Add(item)
		if progressChan != nil {
			progressChan <- BatchProgress{
				Current: len(result.Results),
				Total:   result.Total,
				Result:  item,
			}
		}
	}

	var cancelErr error
	aborted := false

	for _, target := range targets {
		if aborted {
			report(domain.ItemResult{Target: target, Status: domain.StatusSkipped})
			continue
		}

		if err := ctx.Err(); err != nil {
			cancelErr = err
			aborted = true
			report(domain.ItemResult{Target: target, Status: domain.StatusSkipped})
			continue
		}

		item := s.download(ctx, target, policy)
		report(item)

		if item.Failed() {
			if ctx.Err() != nil {
				cancelErr = ctx.Err()
				aborted = true
			} else if !req.KeepGoing {
				aborted = true
			}
		}
	}

	result.Duration = s.now().Sub(started)

	if cancelErr != nil {
		return result, fmt.Errorf("batch cancelled: %w", cancelErr)
	}

	return result, nil
}

// download runs fetch, write and parse for a single target
func (s *BatchService) download(ctx context.Context, target domain.Target, policy StatusPolicy) domain.ItemResult {
	failed := func(stage domain.Stage, err error) domain.ItemResult {
		return domain.ItemResult{
			Target: target,
			Status: domain.StatusFailed,
			Stage:  stage,
			Err:    err,
		}
	}

	// 1. Fetch
	resp, err := s.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		return failed(domain.StageFetch, err)
	}

	// 2. Status policy
	if policy == StatusPolicyStrict && !resp.IsSuccess() {
		return failed(domain.StageStatus, fmt.Errorf("%w: %s", domain.ErrUnexpectedStatus, statusText(resp)))
	}

	// 3. Write to a staging file next to the destination
	stagedPath, err := s.store.Stage(ctx, target.Filename, resp.Body)
	if err != nil {
		return failed(domain.StageWrite, err)
	}

	// 4. Parse what was written; a failing month leaves no file behind
	report, err := s.validator.Validate(ctx, stagedPath)
	if err != nil {
		return failed(domain.StageParse, errors.Join(err, s.store.Discard(stagedPath)))
	}

	// 5. Move onto the final name, replacing any previous download
	finalPath, err := s.store.Commit(ctx, stagedPath, target.Filename)
	if err != nil {
		return failed(domain.StageWrite, errors.Join(err, s.store.Discard(stagedPath)))
	}

	sum := sha256.Sum256(resp.Body)

	return domain.ItemResult{
		Target: target,
		Status: domain.StatusOK,
		Artifact: &domain.Artifact{
			Target:      target,
			Path:        finalPath,
			Bytes:       int64(len(resp.Body)),
			StatusCode:  resp.StatusCode,
			ContentType: resp.ContentType,
			SHA256:      hex.EncodeToString(sum[:]),
			Rows:        report.Rows,
			FetchedAt:   s.now(),
		},
	}
}

func statusText(resp *domain.FetchResult) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d", resp.StatusCode)
}
