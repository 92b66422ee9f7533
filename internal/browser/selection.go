package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RovaFananganana/frontend/internal/logging"
	"github.com/RovaFananganana/frontend/internal/metrics"
	"github.com/RovaFananganana/frontend/pkg/models"
)

// BatchFailure identifies one item that could not be deleted.
type BatchFailure struct {
	Entry models.SelectionEntry
	Err   error
}

// BatchResult accounts for a batch delete.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failed    []BatchFailure
}

// AllSucceeded reports whether every attempted deletion went through.
func (r BatchResult) AllSucceeded() bool {
	return r.Attempted > 0 && len(r.Failed) == 0
}

// ToggleSelection adds or removes one entry from the selection set.
// Membership is keyed by (kind, id); the kind defaults to file. Adding a
// present key or removing an absent one is a no-op.
func (s *Session) ToggleSelection(item models.SelectionEntry, selected bool) {
	if item.Kind == "" {
		item.Kind = models.KindFile
	}
	item.Key = models.SelectionKey(item.Kind, item.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.selected {
		if e.Key == item.Key {
			idx = i
			break
		}
	}

	if selected {
		if idx < 0 {
			s.selected = append(s.selected, item)
		}
		return
	}
	if idx >= 0 {
		s.selected = append(s.selected[:idx], s.selected[idx+1:]...)
	}
}

// SelectAll replaces the selection with every folder and file of the
// current derived (filtered and sorted) lists, folders first.
func (s *Session) SelectAll() {
	folders := s.FilteredFolders()
	files := s.FilteredFiles()

	s.ClearSelection()
	for _, f := range folders {
		s.ToggleSelection(models.SelectionEntry{Kind: models.KindFolder, ID: f.ID, Name: f.Name}, true)
	}
	for _, f := range files {
		s.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: f.ID, Name: f.Name}, true)
	}
}

// ClearSelection empties the selection set.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// HasSelection reports whether any item is selected.
func (s *Session) HasSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected) > 0
}

// SelectionCount returns the number of selected items.
func (s *Session) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// SelectedItems returns the selection in insertion order.
func (s *Session) SelectedItems() []models.SelectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SelectionEntry(nil), s.selected...)
}

// DeleteSelected deletes every selected item in insertion order. Failures
// are recorded per item and never abort the batch; no dependency ordering
// is enforced between folders and their contents. When at least one
// deletion succeeded the selection is cleared and the current folder is
// reloaded exactly once.
func (s *Session) DeleteSelected(ctx context.Context) BatchResult {
	items := s.SelectedItems()
	result := BatchResult{Attempted: len(items)}
	if len(items) == 0 {
		return result
	}

	for _, item := range items {
		var err error
		if item.Kind == models.KindFolder {
			err = s.source.DeleteFolder(ctx, item.ID)
		} else {
			err = s.source.DeleteFile(ctx, item.ID)
		}

		metrics.RecordDelete(string(item.Kind), err == nil)
		if err != nil {
			logging.Error("batch delete item",
				zap.String("kind", string(item.Kind)),
				zap.Int64("id", item.ID),
				zap.String("name", item.Name),
				zap.Error(err))
			result.Failed = append(result.Failed, BatchFailure{Entry: item, Err: err})
			continue
		}
		result.Succeeded++
	}

	if result.Succeeded > 0 {
		s.notifier.Success(fmt.Sprintf("%d item(s) deleted", result.Succeeded))
		s.ClearSelection()
		if err := s.LoadFolderContents(ctx, s.CurrentFolderID()); err != nil {
			logging.Error("reload after batch delete", zap.Error(err))
		}
	}

	return result
}
