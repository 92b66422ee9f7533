package browser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/RovaFananganana/frontend/internal/logging"
	"github.com/RovaFananganana/frontend/internal/metrics"
	"github.com/RovaFananganana/frontend/pkg/models"
	"github.com/RovaFananganana/frontend/pkg/protocol"
)

// LoadFolderContents opens folderID and replaces the raw content state.
// For folderID 0 the root sentinel is used without a remote call. A failed
// folder fetch leaves the current folder untouched but the contents are
// still fetched. When navigations overlap, only the most recently issued
// one may apply its result; stale responses are discarded.
func (s *Session) LoadFolderContents(ctx context.Context, folderID int64) error {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.activeLoads++
	s.mu.Unlock()
	defer s.addLoading(-1)

	var folder *models.Folder
	if folderID > 0 {
		f, err := s.source.GetFolder(ctx, folderID)
		if err != nil {
			logging.Error("load folder", zap.Int64("folder_id", folderID), zap.Error(err))
			s.notifier.Error("Unable to open folder")
		} else {
			folder = f
		}
	} else {
		root := models.RootFolder()
		folder = &root
	}

	contents, err := s.source.GetFolderContents(ctx, folderID, protocol.DefaultContentsQuery())
	if err != nil {
		logging.Error("load folder contents", zap.Int64("folder_id", folderID), zap.Error(err))
		s.notifier.Error("Unable to load folder contents")
		metrics.RecordNavigation(false)
		return err
	}

	s.mu.Lock()
	if seq == s.loadSeq {
		if folder != nil {
			s.currentFolder = *folder
		}
		s.contents = *contents
		if s.clearSelectionOnNavigate {
			s.selected = nil
		}
	} else {
		logging.Debug("discarding stale navigation result",
			zap.Int64("folder_id", folderID),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", s.loadSeq))
	}
	s.mu.Unlock()

	metrics.RecordNavigation(true)
	return nil
}

// NavigateToFolder opens a folder. Updating the breadcrumb trail stays the
// caller's responsibility.
func (s *Session) NavigateToFolder(ctx context.Context, folderID int64) error {
	return s.LoadFolderContents(ctx, folderID)
}

// UpdateBreadcrumbs rebuilds the breadcrumb trail by walking parent links
// up from folderID. The walk is sequential, bounded by MaxBreadcrumbDepth
// and aborts on context cancellation. A fetch failure mid-chain produces a
// partial trail; it is logged, not retried.
func (s *Session) UpdateBreadcrumbs(ctx context.Context, folderID int64) error {
	if folderID == 0 {
		s.mu.Lock()
		s.breadcrumbs = []models.Folder{models.RootFolder()}
		s.mu.Unlock()
		return nil
	}

	var crumbs []models.Folder
	currentID := folderID

	for depth := 0; currentID > 0; depth++ {
		if depth >= s.maxBreadcrumbDepth {
			logging.Warn("breadcrumb walk hit depth bound",
				zap.Int64("folder_id", folderID),
				zap.Int("max_depth", s.maxBreadcrumbDepth))
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		folder, err := s.source.GetFolder(ctx, currentID)
		if err != nil {
			logging.Error("breadcrumb walk", zap.Int64("folder_id", currentID), zap.Error(err))
			break
		}

		crumbs = append([]models.Folder{*folder}, crumbs...)
		currentID = folder.ParentID
	}

	s.mu.Lock()
	s.breadcrumbs = append([]models.Folder{models.RootFolder()}, crumbs...)
	s.mu.Unlock()
	return nil
}

// CreateFolder creates a folder under the current one and reloads the
// contents on success.
func (s *Session) CreateFolder(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notifier.Error("Folder name cannot be empty")
		return ErrEmptyName
	}

	s.addLoading(1)
	defer s.addLoading(-1)

	parentID := s.CurrentFolderID()
	_, err := s.source.CreateFolder(ctx, protocol.CreateFolderRequest{
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		logging.Error("create folder", zap.String("name", name), zap.Error(err))
		s.notifier.Error("Unable to create folder")
		return err
	}

	s.notifier.Success(fmt.Sprintf("Folder %q created", name))
	return s.LoadFolderContents(ctx, parentID)
}

// DeleteFolder removes one folder and reloads the current contents on
// success. No rollback happens on failure.
func (s *Session) DeleteFolder(ctx context.Context, folderID int64) error {
	if err := s.source.DeleteFolder(ctx, folderID); err != nil {
		logging.Error("delete folder", zap.Int64("folder_id", folderID), zap.Error(err))
		s.notifier.Error("Unable to delete folder")
		metrics.RecordDelete(string(models.KindFolder), false)
		return err
	}

	metrics.RecordDelete(string(models.KindFolder), true)
	s.notifier.Success("Folder deleted")
	return s.LoadFolderContents(ctx, s.CurrentFolderID())
}

// DeleteFile removes one file and reloads the current contents on success.
func (s *Session) DeleteFile(ctx context.Context, fileID int64) error {
	if err := s.source.DeleteFile(ctx, fileID); err != nil {
		logging.Error("delete file", zap.Int64("file_id", fileID), zap.Error(err))
		s.notifier.Error("Unable to delete file")
		metrics.RecordDelete(string(models.KindFile), false)
		return err
	}

	metrics.RecordDelete(string(models.KindFile), true)
	s.notifier.Success("File deleted")
	return s.LoadFolderContents(ctx, s.CurrentFolderID())
}

// DownloadFile streams the binary payload of file into w.
func (s *Session) DownloadFile(ctx context.Context, file models.FileEntry, w io.Writer) error {
	rc, _, err := s.source.DownloadFile(ctx, file.ID)
	if err != nil {
		logging.Error("download file", zap.Int64("file_id", file.ID), zap.Error(err))
		s.notifier.Error("Unable to download file")
		return err
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		logging.Error("download transfer", zap.Int64("file_id", file.ID), zap.Error(err))
		s.notifier.Error("Unable to download file")
		return err
	}

	s.notifier.Success(fmt.Sprintf("Download of %q started", file.Name))
	return nil
}

// LoadSystemStats refreshes the dashboard statistics. Last fetched wins.
func (s *Session) LoadSystemStats(ctx context.Context) error {
	stats, err := s.source.GetSystemStats(ctx)
	if err != nil {
		logging.Error("load system stats", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.stats = *stats
	s.mu.Unlock()
	return nil
}
