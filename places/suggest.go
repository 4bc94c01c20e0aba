package places

import (
	"context"
	"log"

	"github.com/helper-hub/api-go/types"
)

// Service combines the curated catalog with live provider search. Catalog
// matches always come first; live results follow in provider order. The two
// sources are not deduplicated against each other, duplicates are the UI's
// call to collapse.
type Service struct {
	catalog  *Catalog
	searcher *Searcher
}

func NewService(catalog *Catalog, searcher *Searcher) *Service {
	return &Service{catalog: catalog, searcher: searcher}
}

// Suggest returns catalog matches followed by live search results. A
// provider failure degrades to catalog-only results rather than erroring,
// so typing stays responsive when the upstream is down. The result is never
// nil; no matches serialize as an empty list.
func (s *Service) Suggest(ctx context.Context, query string) ([]types.PlaceSuggestion, error) {
	suggestions := s.catalog.Lookup(query)

	remote, err := s.searcher.Search(ctx, query)
	if err != nil {
		log.Printf("places: live search failed for %q, serving catalog only: %v", query, err)
	} else {
		suggestions = append(suggestions, remote...)
	}

	if suggestions == nil {
		suggestions = []types.PlaceSuggestion{}
	}
	return suggestions, nil
}

// HasCached reports whether a repeat of query would be answered from the
// search cache without a provider call.
func (s *Service) HasCached(query string) bool {
	_, ok := s.searcher.Cache().GetSuggestions(NormalizeQuery(query))
	return ok
}
