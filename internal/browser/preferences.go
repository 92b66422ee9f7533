package browser

import (
	"go.uber.org/zap"

	"github.com/RovaFananganana/frontend/internal/logging"
)

// Preference keys understood by the persistence collaborator.
const (
	prefViewMode  = "view_mode"
	prefSortBy    = "sort_by"
	prefSortOrder = "sort_order"
)

// ViewMode returns the current display mode.
func (s *Session) ViewMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// SortBy returns the current sort field.
func (s *Session) SortBy() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortBy
}

// SortOrder returns the current sort order.
func (s *Session) SortOrder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortOrder
}

// SetViewMode sets the display mode and persists it.
func (s *Session) SetViewMode(mode string) {
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()

	s.persist(prefViewMode, mode)
}

// SetSorting sets the sort field and order and persists both. Calling it
// with an empty order and the field already active toggles the direction.
func (s *Session) SetSorting(field, order string) {
	s.mu.Lock()
	if s.sortBy == field && order == "" {
		if s.sortOrder == OrderAsc {
			s.sortOrder = OrderDesc
		} else {
			s.sortOrder = OrderAsc
		}
	} else {
		s.sortBy = field
		if order != "" {
			s.sortOrder = order
		}
	}
	sortBy, sortOrder := s.sortBy, s.sortOrder
	s.mu.Unlock()

	s.persist(prefSortBy, sortBy)
	s.persist(prefSortOrder, sortOrder)
}

// InitializePreferences restores persisted view settings. Absent keys
// leave the defaults (grid, name, asc) untouched.
func (s *Session) InitializePreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.prefs.Get(prefViewMode); ok {
		s.viewMode = v
	}
	if v, ok := s.prefs.Get(prefSortBy); ok {
		s.sortBy = v
	}
	if v, ok := s.prefs.Get(prefSortOrder); ok {
		s.sortOrder = v
	}
}

func (s *Session) persist(key, value string) {
	if err := s.prefs.Set(key, value); err != nil {
		logging.Warn("persist preference", zap.String("key", key), zap.Error(err))
	}
}
