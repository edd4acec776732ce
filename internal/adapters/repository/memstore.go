package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
)

// MemStore implements Store with an in-memory index. It stands in for the
// external match-data collaborator; reads are lock-free beyond an RWMutex
// because matches never mutate once seeded.
type MemStore struct {
	mu      sync.RWMutex
	byID    map[string]model.Match
	ordered []string // IDs in kickoff order for stable listings
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeed preloads the store with fixtures.
func WithSeed(matches ...model.Match) Option {
	return func(s *MemStore) {
		for _, m := range matches {
			s.put(m)
		}
	}
}

// NewMemStore creates an empty in-memory match store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID: make(map[string]model.Match),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores a new match. Returns ErrDuplicate when the ID is taken.
func (s *MemStore) Put(_ context.Context, m model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[m.ID]; exists {
		return ErrDuplicate
	}
	s.put(m)
	return nil
}

func (s *MemStore) put(m model.Match) {
	s.byID[m.ID] = m
	s.ordered = append(s.ordered, m.ID)
	sort.SliceStable(s.ordered, func(i, j int) bool {
		return s.byID[s.ordered[i]].Kickoff.Before(s.byID[s.ordered[j]].Kickoff)
	})
}

// Get returns a match by ID.
func (s *MemStore) Get(_ context.Context, matchID string) (model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[matchID]
	if !ok {
		return model.Match{}, ErrNotFound
	}
	return m, nil
}

// List returns matches satisfying the filter and the pre-pagination total.
func (s *MemStore) List(_ context.Context, f Filter) ([]model.Match, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []model.Match
	for _, id := range s.ordered {
		m := s.byID[id]
		if !matches(m, f) {
			continue
		}
		hits = append(hits, m)
	}
	total := len(hits)

	if f.Offset > 0 {
		if f.Offset >= len(hits) {
			hits = nil
		} else {
			hits = hits[f.Offset:]
		}
	}
	if f.Limit > 0 && f.Limit < len(hits) {
		hits = hits[:f.Limit]
	}
	return hits, total, nil
}

// OnDate returns matches kicking off on the given UTC day.
func (s *MemStore) OnDate(ctx context.Context, day time.Time) ([]model.Match, error) {
	out, _, err := s.List(ctx, Filter{Date: day})
	return out, err
}

// Stats returns per-match and historical statistics for a match.
func (s *MemStore) Stats(_ context.Context, matchID string) (model.Map, model.Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[matchID]
	if !ok {
		return nil, nil, ErrNotFound
	}

	matchStats := m.Statistics
	if matchStats == nil {
		matchStats = model.Map{}
	}

	// Historical stats aggregate past meetings of the two sides.
	meetings := 0
	for _, id := range s.ordered {
		other := s.byID[id]
		if other.ID == m.ID {
			continue
		}
		if sameTeams(other, m) && other.Kickoff.Before(m.Kickoff) {
			meetings++
		}
	}
	historical := model.Map{
		"headToHeadMatches": model.Number(float64(meetings)),
		"homeTeam":          model.Text(m.HomeTeam),
		"awayTeam":          model.Text(m.AwayTeam),
	}
	return matchStats, historical, nil
}

// Count returns the number of matches tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func matches(m model.Match, f Filter) bool {
	if !f.Date.IsZero() {
		y1, m1, d1 := m.Kickoff.UTC().Date()
		y2, m2, d2 := f.Date.UTC().Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if f.Competition != "" && !strings.EqualFold(m.Competition, f.Competition) {
		return false
	}
	if f.Team != "" && !strings.EqualFold(m.HomeTeam, f.Team) && !strings.EqualFold(m.AwayTeam, f.Team) {
		return false
	}
	return true
}

func sameTeams(a, b model.Match) bool {
	direct := strings.EqualFold(a.HomeTeam, b.HomeTeam) && strings.EqualFold(a.AwayTeam, b.AwayTeam)
	reversed := strings.EqualFold(a.HomeTeam, b.AwayTeam) && strings.EqualFold(a.AwayTeam, b.HomeTeam)
	return direct || reversed
}
