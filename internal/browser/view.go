package browser

import (
	"sort"
	"strings"

	"github.com/RovaFananganana/frontend/pkg/models"
)

// Sort fields and orders accepted by SetSorting.
const (
	SortByName = "name"
	SortByDate = "date"
	SortBySize = "size"
	SortByType = "type"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// View modes accepted by SetViewMode.
const (
	ViewModeGrid = "grid"
	ViewModeList = "list"
)

// FilteredFiles projects the raw file list through the current type filter
// and sort settings. It is recomputed on every call and never mutates the
// raw contents.
func (s *Session) FilteredFiles() []models.FileEntry {
	s.mu.Lock()
	files := append([]models.FileEntry(nil), s.contents.Files...)
	filterType := strings.ToLower(s.filterType)
	sortBy := s.sortBy
	desc := s.sortOrder == OrderDesc
	s.mu.Unlock()

	if filterType != "" {
		kept := files[:0]
		for _, f := range files {
			if f.Extension() == filterType {
				kept = append(kept, f)
			}
		}
		files = kept
	}

	sort.Slice(files, func(i, j int) bool {
		cmp := compareFiles(files[i], files[j], sortBy)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return files
}

// FilteredFolders projects the raw folder list through the current sort
// order. Folders always sort by name and are never type-filtered.
func (s *Session) FilteredFolders() []models.Folder {
	s.mu.Lock()
	folders := append([]models.Folder(nil), s.contents.Folders...)
	desc := s.sortOrder == OrderDesc
	s.mu.Unlock()

	sort.Slice(folders, func(i, j int) bool {
		cmp := strings.Compare(strings.ToLower(folders[i].Name), strings.ToLower(folders[j].Name))
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return folders
}

// compareFiles orders two files by the given sort field, ascending.
// Equal keys compare as 0.
func compareFiles(a, b models.FileEntry, sortBy string) int {
	switch sortBy {
	case SortByDate:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
		return 0
	case SortBySize:
		switch {
		case a.Size < b.Size:
			return -1
		case a.Size > b.Size:
			return 1
		}
		return 0
	case SortByType:
		return strings.Compare(a.Extension(), b.Extension())
	default: // SortByName
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}
