package domain

import (
	"errors"
	"fmt"
	"time"
)

// ItemStatus is the outcome of one target within a batch
type ItemStatus string

const (
	StatusOK      ItemStatus = "ok"
	StatusFailed  ItemStatus = "failed"
	StatusSkipped ItemStatus = "skipped"
)

// Stage names the step of an iteration that produced a failure
type Stage string

const (
	StageFetch  Stage = "fetch"
	StageStatus Stage = "status"
	StageWrite  Stage = "write"
	StageParse  Stage = "parse"
)

// ItemResult is the per-target result collected by a batch run
type ItemResult struct {
	Target   Target
	Status   ItemStatus
	Stage    Stage // Empty unless Status is StatusFailed
	Artifact *Artifact
	Err      error
}

// Failed reports whether the target was attempted and failed
func (r ItemResult) Failed() bool {
	return r.Status == StatusFailed
}

// BatchResult aggregates the item results of a whole run
type BatchResult struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Results   []ItemResult
}

// Add appends a result and updates the counters
func (b *BatchResult) Add(r ItemResult) {
	b.Results = append(b.Results, r)
	switch r.Status {
	case StatusOK:
		b.Succeeded++
	case StatusFailed:
		b.Failed++
	case StatusSkipped:
		b.Skipped++
	}
}

// Err joins every item failure, or returns nil if nothing failed
func (b *BatchResult) Err() error {
	var errs []error
	for _, r := range b.Results {
		if r.Failed() {
			errs = append(errs, fmt.Errorf("%s (%s): %w", r.Target.Date, r.Stage, r.Err))
		}
	}
	return errors.Join(errs...)
}

// Artifacts returns the artifacts of every successful item, in order
func (b *BatchResult) Artifacts() []Artifact {
	artifacts := make([]Artifact, 0, b.Succeeded)
	for _, r := range b.Results {
		if r.Status == StatusOK && r.Artifact != nil {
			artifacts = append(artifacts, *r.Artifact)
		}
	}
	return artifacts
}
