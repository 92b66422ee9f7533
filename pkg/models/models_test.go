package models

import "testing"

func TestFileEntryExtension(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"report.pdf", "pdf"},
		{"ARCHIVE.ZIP", "zip"},
		{"notes.backup.txt", "txt"},
		{"Makefile", ""},
		{".gitignore", "gitignore"},
		{"trailing.", ""},
		{"", ""},
	}
	for _, tc := range cases {
		f := FileEntry{Name: tc.name}
		if got := f.Extension(); got != tc.want {
			t.Errorf("Extension(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSelectionKey(t *testing.T) {
	if got := SelectionKey(KindFile, 42); got != "file:42" {
		t.Errorf("unexpected key %q", got)
	}
	if got := SelectionKey(KindFolder, 7); got != "folder:7" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestRootFolder(t *testing.T) {
	root := RootFolder()
	if root.ID != 0 || root.Name != "Home" || root.Path != "/" {
		t.Errorf("unexpected root sentinel %+v", root)
	}
}
