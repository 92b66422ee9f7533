// Package models contains the data types shared by the browsing engine,
// the wire protocol and the content client.
package models

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Folder is a node of the remote hierarchy. ID 0 is reserved for the root
// sentinel, which is never fetched from the server.
type Folder struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	ParentID    int64     `json:"parent_id"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// RootFolder returns the root sentinel.
func RootFolder() Folder {
	return Folder{ID: 0, Name: "Home", Path: "/"}
}

// IsRoot reports whether the folder is the root sentinel.
func (f Folder) IsRoot() bool {
	return f.ID == 0
}

// FileEntry is a leaf of the remote hierarchy.
type FileEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	FolderID  int64     `json:"folder_id"`
	MimeType  string    `json:"mime_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Extension returns the lower-cased file extension without the dot,
// or "" if the name has no dot.
func (f FileEntry) Extension() string {
	idx := strings.LastIndexByte(f.Name, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(f.Name[idx+1:])
}

// FolderContents is the raw content of one folder. It is replaced wholesale
// on every load, never patched.
type FolderContents struct {
	Folders []Folder    `json:"folders"`
	Files   []FileEntry `json:"files"`
}

// ItemKind distinguishes selected files from selected folders.
type ItemKind string

const (
	KindFile   ItemKind = "file"
	KindFolder ItemKind = "folder"
)

// SelectionKey builds the composite key used for selection set membership.
func SelectionKey(kind ItemKind, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// SelectionEntry is one item marked for a pending batch operation.
type SelectionEntry struct {
	Key  string
	Kind ItemKind
	ID   int64
	Name string
}

// SearchResult carries search hits plus the query that produced them.
type SearchResult struct {
	FolderContents
	Query      string
	TypeFilter string
}

// SystemStats is the dashboard summary of the remote store.
type SystemStats struct {
	TotalFiles     int64 `json:"total_files"`
	TotalFolders   int64 `json:"total_folders"`
	TotalSize      int64 `json:"total_size"`
	UsedSpace      int64 `json:"used_space"`
	AvailableSpace int64 `json:"available_space"`
}

// UploadFile describes one file to send to the server.
type UploadFile struct {
	Name    string
	Size    int64
	Content io.Reader
}
