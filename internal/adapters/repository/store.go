// Package repository defines the match store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
)

// Filter narrows a match listing. Zero-valued fields are ignored.
type Filter struct {
	// Date restricts matches to a single calendar day (UTC).
	Date time.Time
	// Competition restricts matches to one competition name.
	Competition string
	// Team matches fixtures where the team plays home or away.
	Team string

	Limit  int
	Offset int
}

// Store provides read access to match data. Matches are immutable once
// stored; the source collaborator owns their lifecycle.
type Store interface {
	// Get returns a match by ID. Returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, matchID string) (model.Match, error)

	// List returns matches satisfying the filter plus the total count
	// before limit/offset were applied.
	List(ctx context.Context, f Filter) ([]model.Match, int, error)

	// OnDate returns every match kicking off on the given day (UTC).
	OnDate(ctx context.Context, day time.Time) ([]model.Match, error)

	// Stats returns the per-match statistics and the historical statistics
	// for the two teams involved. Returns ErrNotFound for unknown IDs.
	Stats(ctx context.Context, matchID string) (model.Map, model.Map, error)

	// Count returns the number of matches tracked.
	Count(ctx context.Context) int
}
