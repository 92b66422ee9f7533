package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RovaFananganana/frontend/internal/logging"
	"github.com/RovaFananganana/frontend/internal/metrics"
	"github.com/RovaFananganana/frontend/pkg/models"
)

// UploadFiles sends files to the current folder as one atomic request and
// reloads the contents on success. The uploading flag and progress are
// reset on every exit path. An empty input is rejected before any network
// call.
func (s *Session) UploadFiles(ctx context.Context, files []models.UploadFile) error {
	if len(files) == 0 {
		return ErrNoFiles
	}

	s.mu.Lock()
	s.uploading = true
	s.uploadProgress = 0
	folderID := s.currentFolder.ID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.uploadProgress = 0
		s.mu.Unlock()
	}()

	var total int64
	for _, f := range files {
		total += f.Size
	}

	_, err := s.source.UploadFiles(ctx, files, folderID, func(pct int) {
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		s.mu.Lock()
		s.uploadProgress = pct
		s.mu.Unlock()
	})
	if err != nil {
		logging.Error("upload", zap.Int("files", len(files)), zap.Error(err))
		s.notifier.Error("Unable to upload files")
		metrics.RecordUpload(false, 0)
		return err
	}

	metrics.RecordUpload(true, total)
	s.notifier.Success(fmt.Sprintf("%d file(s) uploaded", len(files)))

	if err := s.LoadFolderContents(ctx, folderID); err != nil {
		logging.Error("reload after upload", zap.Error(err))
	}
	return nil
}
