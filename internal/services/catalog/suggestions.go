package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/lib/debounce"
)

const minSuggestionQueryLen = 3

// Suggestions is the debounced autocomplete of one session. Each call arms
// the session timer again; a call replaced by a newer one before the delay
// ends returns ErrSuperseded and an empty list. Queries shorter than three
// characters and provider failures also yield an empty list.
func (s *CatalogService) Suggestions(ctx context.Context, sid, query string) ([]models.SearchResultItem, error) {
	const op = "catalog.CatalogService.Suggestions"
	empty := []models.SearchResultItem{}

	s.mu.Lock()
	if prev, ok := s.pending[sid]; ok {
		close(prev)
	}
	superseded := make(chan struct{})
	s.pending[sid] = superseded
	timer, ok := s.timers[sid]
	if !ok {
		timer = debounce.New()
		s.timers[sid] = timer
	}
	s.mu.Unlock()

	fired := make(chan struct{})
	timer.Arm(s.opts.SuggestDelay, func() { close(fired) })

	select {
	case <-superseded:
		return empty, ErrSuperseded
	case <-ctx.Done():
		s.mu.Lock()
		if s.pending[sid] == superseded {
			timer.Disarm()
			s.release(sid)
		}
		s.mu.Unlock()
		return empty, ctx.Err()
	case <-fired:
		s.mu.Lock()
		if s.pending[sid] == superseded {
			s.release(sid)
		}
		s.mu.Unlock()
	}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestionQueryLen {
		return empty, nil
	}
	env, err := s.Search(ctx, omdb.SearchParams{Query: query})
	if err != nil {
		s.log.Info("suggestions lookup failed", "op", op, "query", query, "error", err)
		return empty, err
	}
	return firstN(env.Search, s.opts.SuggestLimit), nil
}

// release forgets the session's debounce state. Callers hold s.mu.
func (s *CatalogService) release(sid string) {
	delete(s.pending, sid)
	delete(s.timers, sid)
}
