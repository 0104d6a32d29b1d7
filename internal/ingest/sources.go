// Package ingest resolves the upstream forecast payload from a priority
// ordered list of sources. Sources are tried strictly one at a time; the
// first response that parses as valid JSON wins, regardless of relative
// latency, and every attempt leaves a provenance record for diagnostics.
package ingest

import (
	"context"
	"errors"

	"goldboard/internal/domain"
)

// PayloadSource provides one raw upstream document.
type PayloadSource interface {
	// Name identifies the source in provenance records.
	Name() domain.SourceName

	// URL returns the address the source fetches from, for diagnostics.
	URL() string

	// Fetch retrieves and parses the payload. Any failure (transport,
	// non-2xx status, invalid JSON) is returned as an error; the resolver
	// advances to the next source.
	Fetch(ctx context.Context) (domain.RawPayload, error)
}

// Sentinel errors distinguishing attempt outcomes.
var (
	// ErrBadStatus marks a non-2xx HTTP response.
	ErrBadStatus = errors.New("source returned non-2xx status")

	// ErrInvalidJSON marks a response body that did not parse as JSON.
	ErrInvalidJSON = errors.New("source returned invalid JSON")

	// ErrAllSourcesExhausted is returned when every source failed. The
	// caller recovers by generating synthetic data; this is never fatal.
	ErrAllSourcesExhausted = errors.New("all payload sources exhausted")
)
