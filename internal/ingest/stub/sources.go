// Package stub provides fixed in-memory payload sources for testing.
package stub

import (
	"context"

	"goldboard/internal/domain"
)

// Source returns a fixed payload or error. Implements ingest.PayloadSource.
type Source struct {
	name    domain.SourceName
	payload domain.RawPayload
	err     error

	// Calls counts Fetch invocations so tests can pin that lower-priority
	// sources are never attempted after a success.
	Calls int
}

// NewSource creates a stub that succeeds with payload.
func NewSource(name domain.SourceName, payload domain.RawPayload) *Source {
	return &Source{name: name, payload: payload}
}

// NewFailingSource creates a stub that always returns err.
func NewFailingSource(name domain.SourceName, err error) *Source {
	return &Source{name: name, err: err}
}

// Name implements ingest.PayloadSource.
func (s *Source) Name() domain.SourceName {
	return s.name
}

// URL implements ingest.PayloadSource.
func (s *Source) URL() string {
	return "stub://" + string(s.name)
}

// Fetch implements ingest.PayloadSource.
func (s *Source) Fetch(_ context.Context) (domain.RawPayload, error) {
	s.Calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}
