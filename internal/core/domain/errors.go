package domain

import "errors"

var (
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrUnexpectedStatus  = errors.New("unexpected HTTP status")
	ErrEmptyArtifact     = errors.New("downloaded artifact is empty")
	ErrNotTabular        = errors.New("downloaded artifact is not tabular data")
	ErrInvalidOutputPath = errors.New("invalid output file name")
)
