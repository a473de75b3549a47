package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/domain"
)

// Registry is the single authoritative store of live matches. In-memory
// only: a process restart loses all in-flight matches. A match is either
// present (live) or absent (completed/expired); there are no tombstones.
type Registry struct {
	mu      sync.RWMutex
	matches map[domain.MatchID]*domain.Match
}

func NewRegistry() *Registry {
	return &Registry{matches: make(map[domain.MatchID]*domain.Match)}
}

// Insert registers a fully-constructed match. Ids are generated fresh
// per match, so a collision means a caller bug.
func (r *Registry) Insert(m *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[m.ID]; ok {
		return domain.ErrDuplicateMatch
	}
	r.matches[m.ID] = m
	log.Info().Str("module", "app.registry").Str("match", string(m.ID)).Str("guild", string(m.Guild)).Str("map", m.Map).Msg("match registered")
	return nil
}

func (r *Registry) Get(id domain.MatchID) (*domain.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	return m, ok
}

// Take removes and returns the match in one step. Completion and expiry
// both go through Take, so two teardowns racing on the same id degrade
// to "already gone" for the loser.
func (r *Registry) Take(id domain.MatchID) (*domain.Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, false
	}
	delete(r.matches, id)
	log.Info().Str("module", "app.registry").Str("match", string(id)).Msg("match removed")
	return m, true
}

// Snapshot returns the live matches at the time of the call. The slice
// is the caller's; entries may be deleted by others afterwards.
func (r *Registry) Snapshot() []*domain.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	return out
}

// StaleBefore returns matches created at or before cutoff.
func (r *Registry) StaleBefore(cutoff time.Time) []*domain.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if !m.CreatedAt.After(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}
