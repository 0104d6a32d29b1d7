package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"goldboard/internal/domain"
	"goldboard/internal/ingest"
	"goldboard/internal/ingest/stub"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestResolve_FirstSourceWins(t *testing.T) {
	primary := stub.NewSource(domain.SourceCombined, domain.RawPayload{"current_price": 1950.0})
	secondary := stub.NewSource(domain.SourcePredictions, domain.RawPayload{"current_price": 1111.0})

	resolver := ingest.NewResolver([]ingest.PayloadSource{primary, secondary}, quietLogger())
	result, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Source != domain.SourceCombined {
		t.Errorf("expected combined source, got %s", result.Source)
	}
	if secondary.Calls != 0 {
		t.Errorf("lower-priority source was attempted %d times after a success", secondary.Calls)
	}
	if len(result.Provenance) != 1 {
		t.Fatalf("expected 1 provenance record, got %d", len(result.Provenance))
	}
	if result.Provenance[0].Outcome != domain.AttemptOK {
		t.Errorf("provenance outcome = %s, want ok", result.Provenance[0].Outcome)
	}
}

func TestResolve_EmptyPayloadStillWins(t *testing.T) {
	// A parseable but semantically empty document terminates the chain;
	// fallback is per attempt, not per missing field.
	primary := stub.NewSource(domain.SourceCombined, domain.RawPayload{})
	secondary := stub.NewSource(domain.SourcePredictions, domain.RawPayload{"current_price": 1950.0})

	resolver := ingest.NewResolver([]ingest.PayloadSource{primary, secondary}, quietLogger())
	result, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Source != domain.SourceCombined {
		t.Errorf("expected empty combined payload to win, got %s", result.Source)
	}
	if secondary.Calls != 0 {
		t.Error("secondary source must not be attempted")
	}
}

func TestResolve_FallsThroughFailures(t *testing.T) {
	first := stub.NewFailingSource(domain.SourceCombined,
		fmt.Errorf("status 503: %w", ingest.ErrBadStatus))
	second := stub.NewFailingSource(domain.SourcePredictions,
		fmt.Errorf("bad body: %w", ingest.ErrInvalidJSON))
	third := stub.NewSource(domain.SourceSample, domain.RawPayload{"current_price": 1950.0})

	resolver := ingest.NewResolver([]ingest.PayloadSource{first, second, third}, quietLogger())
	result, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Source != domain.SourceSample {
		t.Errorf("expected sample source, got %s", result.Source)
	}

	if len(result.Provenance) != 3 {
		t.Fatalf("expected 3 provenance records, got %d", len(result.Provenance))
	}
	wantOutcomes := []string{domain.AttemptBadStatus, domain.AttemptInvalidJSON, domain.AttemptOK}
	for i, rec := range result.Provenance {
		if rec.Outcome != wantOutcomes[i] {
			t.Errorf("attempt %d outcome = %s, want %s", i, rec.Outcome, wantOutcomes[i])
		}
		if rec.ID == "" {
			t.Errorf("attempt %d missing provenance id", i)
		}
	}
}

func TestResolve_AllSourcesExhausted(t *testing.T) {
	sources := []ingest.PayloadSource{
		stub.NewFailingSource(domain.SourceCombined, errors.New("connection refused")),
		stub.NewFailingSource(domain.SourcePredictions, fmt.Errorf("status 404: %w", ingest.ErrBadStatus)),
		stub.NewFailingSource(domain.SourceSample, fmt.Errorf("parse: %w", ingest.ErrInvalidJSON)),
	}

	resolver := ingest.NewResolver(sources, quietLogger())
	result, err := resolver.Resolve(context.Background())
	if !errors.Is(err, ingest.ErrAllSourcesExhausted) {
		t.Fatalf("expected ErrAllSourcesExhausted, got %v", err)
	}
	if len(result.Provenance) != 3 {
		t.Errorf("diagnostics must cover all attempts, got %d records", len(result.Provenance))
	}
	if result.Provenance[0].Outcome != domain.AttemptHTTPError {
		t.Errorf("plain transport error should classify as http_error, got %s", result.Provenance[0].Outcome)
	}
}
