package domain

import "errors"

var (
	// ErrOrganizationNotFound signals a missing organization.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrInvalidRequest signals a malformed search or upsert request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrVectorDimMismatch signals a stored vector of the wrong length.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSearchFailed signals an unrecoverable failure inside the search pipeline.
	ErrSearchFailed = errors.New("search failed")
)
