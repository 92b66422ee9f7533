// Package browser is the client-side state engine for browsing the remote
// document store. A Session owns the currently open folder, its raw
// contents, the breadcrumb trail, the selection set, search state and view
// preferences. It talks to the store through the ContentSource collaborator
// and reports outcomes through the Notifier; it renders nothing.
package browser

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/RovaFananganana/frontend/internal/logging"
	"github.com/RovaFananganana/frontend/internal/prefs"
	"github.com/RovaFananganana/frontend/pkg/models"
	"github.com/RovaFananganana/frontend/pkg/protocol"
)

// Validation errors, returned before any network call is made.
var (
	ErrEmptyName = errors.New("name cannot be empty")
	ErrNoFiles   = errors.New("no files to upload")
)

// ContentSource is the remote store boundary the engine consumes.
// *content.Client satisfies it.
type ContentSource interface {
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)
	GetFolderContents(ctx context.Context, id int64, q protocol.ContentsQuery) (*models.FolderContents, error)
	CreateFolder(ctx context.Context, req protocol.CreateFolderRequest) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id int64) error
	DeleteFile(ctx context.Context, id int64) error
	UploadFiles(ctx context.Context, files []models.UploadFile, folderID int64, onProgress func(pct int)) (*protocol.UploadResult, error)
	DownloadFile(ctx context.Context, id int64) (io.ReadCloser, int64, error)
	SearchFiles(ctx context.Context, req protocol.SearchRequest) (*models.FolderContents, error)
	GetSystemStats(ctx context.Context) (*models.SystemStats, error)
}

// Notifier receives user-facing outcome messages. Fire-and-forget.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// LogNotifier routes notifications to the log. It is the default when no
// Notifier is injected.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { logging.Info(msg) }
func (LogNotifier) Error(msg string)   { logging.Error(msg) }
func (LogNotifier) Info(msg string)    { logging.Info(msg) }

// Options configures a Session.
type Options struct {
	// Source is the remote store client. Required.
	Source ContentSource
	// Notifier receives outcome messages. Defaults to LogNotifier.
	Notifier Notifier
	// Prefs persists view preferences. Defaults to an in-memory store.
	Prefs prefs.Store
	// MaxBreadcrumbDepth bounds the upward breadcrumb walk. Defaults to 32.
	MaxBreadcrumbDepth int
	// ClearSelectionOnNavigate empties the selection set whenever a
	// navigation completes. Off by default: a selection survives folder
	// changes until explicitly cleared or batch-deleted.
	ClearSelectionOnNavigate bool
}

// Session holds the browsing state for one user session. All state access
// is serialized behind one mutex; remote calls happen outside it.
type Session struct {
	source                   ContentSource
	notifier                 Notifier
	prefs                    prefs.Store
	maxBreadcrumbDepth       int
	clearSelectionOnNavigate bool

	mu             sync.Mutex
	currentFolder  models.Folder
	contents       models.FolderContents
	breadcrumbs    []models.Folder
	selected       []models.SelectionEntry
	searchResults  *models.SearchResult
	searchQuery    string
	filterType     string
	stats          models.SystemStats
	viewMode       string
	sortBy         string
	sortOrder      string
	uploading      bool
	uploadProgress int
	activeLoads    int
	loadSeq        uint64
}

// NewSession creates a session rooted at the root sentinel.
func NewSession(opts Options) *Session {
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{}
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemStore()
	}
	if opts.MaxBreadcrumbDepth <= 0 {
		opts.MaxBreadcrumbDepth = 32
	}

	return &Session{
		source:                   opts.Source,
		notifier:                 opts.Notifier,
		prefs:                    opts.Prefs,
		maxBreadcrumbDepth:       opts.MaxBreadcrumbDepth,
		clearSelectionOnNavigate: opts.ClearSelectionOnNavigate,
		currentFolder:            models.RootFolder(),
		breadcrumbs:              []models.Folder{models.RootFolder()},
		viewMode:                 ViewModeGrid,
		sortBy:                   SortByName,
		sortOrder:                OrderAsc,
	}
}

// CurrentFolder returns the currently open folder.
func (s *Session) CurrentFolder() models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFolder
}

// CurrentFolderID returns the id of the currently open folder (0 = root).
func (s *Session) CurrentFolderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFolder.ID
}

// Contents returns the raw, unprojected folder contents.
func (s *Session) Contents() models.FolderContents {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.FolderContents{
		Folders: append([]models.Folder(nil), s.contents.Folders...),
		Files:   append([]models.FileEntry(nil), s.contents.Files...),
	}
}

// Breadcrumbs returns the path from root to the current folder.
func (s *Session) Breadcrumbs() []models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Folder(nil), s.breadcrumbs...)
}

// IsLoading reports whether any load or search is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLoads > 0
}

// IsUploading reports whether an upload is in flight.
func (s *Session) IsUploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// UploadProgress returns the current upload percentage in [0,100].
func (s *Session) UploadProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadProgress
}

// Stats returns the last fetched system statistics.
func (s *Session) Stats() models.SystemStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Session) addLoading(delta int) {
	s.mu.Lock()
	s.activeLoads += delta
	s.mu.Unlock()
}
