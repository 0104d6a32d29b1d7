package ingest

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"goldboard/internal/domain"
)

// Result is a resolved payload tagged with its provenance.
type Result struct {
	Payload    domain.RawPayload
	Source     domain.SourceName
	Provenance []domain.ProvenanceRecord
}

// Resolver tries sources in strict priority order. A higher-priority
// source, even if slower, always wins over a lower-priority one; sources
// are never raced.
type Resolver struct {
	sources []PayloadSource
	logger  *log.Logger
}

// NewResolver creates a resolver over sources, freshest first.
func NewResolver(sources []PayloadSource, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{sources: sources, logger: logger}
}

// Resolve attempts each source in sequence and returns the first payload
// that parses as valid JSON, even if semantically empty. Once a source
// succeeds no further source is attempted. When every source fails the
// error is ErrAllSourcesExhausted and the provenance records of all
// attempts are still returned for diagnostics.
func (r *Resolver) Resolve(ctx context.Context) (*Result, error) {
	provenance := make([]domain.ProvenanceRecord, 0, len(r.sources))

	for _, src := range r.sources {
		start := time.Now()
		payload, err := src.Fetch(ctx)
		rec := domain.ProvenanceRecord{
			ID:        uuid.NewString(),
			Source:    src.Name(),
			URL:       src.URL(),
			ElapsedMs: time.Since(start).Milliseconds(),
		}

		if err != nil {
			rec.Outcome = classifyOutcome(err)
			rec.Detail = err.Error()
			provenance = append(provenance, rec)
			r.logger.Printf("[ingest] source %s failed (%s): %v", src.Name(), rec.Outcome, err)
			continue
		}

		rec.Outcome = domain.AttemptOK
		provenance = append(provenance, rec)
		r.logger.Printf("[ingest] source %s resolved in %dms", src.Name(), rec.ElapsedMs)
		return &Result{Payload: payload, Source: src.Name(), Provenance: provenance}, nil
	}

	return &Result{Provenance: provenance}, ErrAllSourcesExhausted
}

// classifyOutcome maps a fetch error to a provenance outcome label.
func classifyOutcome(err error) string {
	switch {
	case errors.Is(err, ErrBadStatus):
		return domain.AttemptBadStatus
	case errors.Is(err, ErrInvalidJSON):
		return domain.AttemptInvalidJSON
	default:
		return domain.AttemptHTTPError
	}
}
