package browser

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/RovaFananganana/frontend/internal/logging"
	"github.com/RovaFananganana/frontend/internal/metrics"
	"github.com/RovaFananganana/frontend/pkg/models"
	"github.com/RovaFananganana/frontend/pkg/protocol"
)

// SearchFiles runs a search scoped to the current folder and switches the
// active view to the results. An empty query with an empty type filter
// clears the search instead. On failure the previous results stay in place.
func (s *Session) SearchFiles(ctx context.Context, query, typeFilter string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" && typeFilter == "" {
		s.ClearSearch()
		return nil
	}

	s.addLoading(1)
	defer s.addLoading(-1)

	s.mu.Lock()
	s.searchQuery = query
	s.filterType = typeFilter
	folderID := s.currentFolder.ID
	s.mu.Unlock()

	contents, err := s.source.SearchFiles(ctx, protocol.SearchRequest{
		Query:    trimmed,
		Type:     typeFilter,
		FolderID: folderID,
	})
	if err != nil {
		logging.Error("search", zap.String("query", trimmed), zap.Error(err))
		s.notifier.Error("Search failed")
		metrics.RecordSearch(false)
		return err
	}

	s.mu.Lock()
	s.searchResults = &models.SearchResult{
		FolderContents: *contents,
		Query:          query,
		TypeFilter:     typeFilter,
	}
	s.mu.Unlock()

	metrics.RecordSearch(true)
	return nil
}

// ClearSearch resets the query, type filter and results, reverting the
// active view to the folder contents.
func (s *Session) ClearSearch() {
	s.mu.Lock()
	s.searchQuery = ""
	s.filterType = ""
	s.searchResults = nil
	s.mu.Unlock()
}

// IsSearchActive reports whether the search view is the authoritative one.
func (s *Session) IsSearchActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery != "" || s.filterType != ""
}

// SearchResults returns the current results, or nil when no search ran.
func (s *Session) SearchResults() *models.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchResults == nil {
		return nil
	}
	res := *s.searchResults
	return &res
}

// SearchQuery returns the active search term.
func (s *Session) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// FilterType returns the active file type filter.
func (s *Session) FilterType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterType
}

// SetFilterType sets the extension filter applied by FilteredFiles.
func (s *Session) SetFilterType(typeFilter string) {
	s.mu.Lock()
	s.filterType = typeFilter
	s.mu.Unlock()
}
