package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/RovaFananganana/frontend/pkg/models"
	"github.com/RovaFananganana/frontend/pkg/protocol"
)

func TestToggleSelection_Idempotent(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})
	entry := models.SelectionEntry{Kind: models.KindFile, ID: 1, Name: "a.txt"}

	sess.ToggleSelection(entry, true)
	sess.ToggleSelection(entry, true)
	if got := sess.SelectionCount(); got != 1 {
		t.Errorf("expected 1 selected item, got %d", got)
	}

	sess.ToggleSelection(entry, false)
	sess.ToggleSelection(entry, false)
	if got := sess.SelectionCount(); got != 0 {
		t.Errorf("expected empty selection, got %d", got)
	}
}

func TestToggleSelection_KindDefaultsToFile(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	sess.ToggleSelection(models.SelectionEntry{ID: 5, Name: "a.txt"}, true)
	items := sess.SelectedItems()
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	if items[0].Kind != models.KindFile {
		t.Errorf("expected default kind file, got %s", items[0].Kind)
	}
	if items[0].Key != "file:5" {
		t.Errorf("unexpected key %q", items[0].Key)
	}
}

func TestToggleSelection_SameIDDifferentKind(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 1}, true)
	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFolder, ID: 1}, true)
	if got := sess.SelectionCount(); got != 2 {
		t.Errorf("file 1 and folder 1 are distinct, got %d items", got)
	}
}

func TestSelectAll_UsesDerivedLists(t *testing.T) {
	src := &fakeSource{
		getContents: func(ctx context.Context, id int64, q protocol.ContentsQuery) (*models.FolderContents, error) {
			return &models.FolderContents{
				Folders: []models.Folder{{ID: 10, Name: "docs"}},
				Files: []models.FileEntry{
					{ID: 1, Name: "a.txt"},
					{ID: 2, Name: "b.jpg"},
					{ID: 3, Name: "c.txt"},
				},
			}, nil
		},
	}
	sess, _ := newTestSession(src)
	if err := sess.LoadFolderContents(context.Background(), 0); err != nil {
		t.Fatalf("load contents: %v", err)
	}

	sess.SetFilterType("txt")
	sess.SelectAll()

	items := sess.SelectedItems()
	if len(items) != 3 {
		t.Fatalf("expected folder + 2 filtered files, got %d items", len(items))
	}
	if items[0].Kind != models.KindFolder || items[0].ID != 10 {
		t.Errorf("expected the folder first, got %+v", items[0])
	}
	for _, item := range items[1:] {
		if item.Kind != models.KindFile {
			t.Errorf("expected files after folders, got %+v", item)
		}
		if item.ID == 2 {
			t.Errorf("filtered-out file must not be selected")
		}
	}
}

func TestSelectAll_ReplacesExistingSelection(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 42}, true)
	sess.SelectAll()
	if got := sess.SelectionCount(); got != 0 {
		t.Errorf("empty contents should yield empty selection, got %d", got)
	}
}

func TestDeleteSelected_Empty(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	result := sess.DeleteSelected(context.Background())
	if result.Attempted != 0 || result.AllSucceeded() {
		t.Errorf("unexpected result for empty selection: %+v", result)
	}
}

func TestDeleteSelected_PartialFailure(t *testing.T) {
	src := &fakeSource{
		delFile: func(ctx context.Context, id int64) error {
			if id == 2 {
				return errors.New("locked")
			}
			return nil
		},
	}
	sess, notifier := newTestSession(src)

	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 1, Name: "a"}, true)
	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 2, Name: "b"}, true)
	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 3, Name: "c"}, true)

	result := sess.DeleteSelected(context.Background())
	if result.AllSucceeded() {
		t.Error("expected a partial failure")
	}
	if result.Attempted != 3 || result.Succeeded != 2 {
		t.Errorf("unexpected accounting: %+v", result)
	}
	if len(result.Failed) != 1 || result.Failed[0].Entry.ID != 2 {
		t.Errorf("expected item 2 to be the failure, got %+v", result.Failed)
	}
	// At least one success: selection cleared and exactly one reload.
	if sess.HasSelection() {
		t.Error("selection should be cleared")
	}
	if src.ContentsCalls() != 1 {
		t.Errorf("expected exactly one reload, got %d", src.ContentsCalls())
	}
	if notifier.SuccessCount() != 1 {
		t.Errorf("expected one success notification, got %d", notifier.SuccessCount())
	}
}

func TestDeleteSelected_AllFail(t *testing.T) {
	src := &fakeSource{
		delFile: func(ctx context.Context, id int64) error {
			return errors.New("boom")
		},
	}
	sess, notifier := newTestSession(src)

	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 1}, true)
	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 2}, true)

	result := sess.DeleteSelected(context.Background())
	if result.Succeeded != 0 || len(result.Failed) != 2 {
		t.Errorf("unexpected accounting: %+v", result)
	}
	if !sess.HasSelection() {
		t.Error("selection must survive when nothing was deleted")
	}
	if src.ContentsCalls() != 0 {
		t.Errorf("no reload expected, got %d", src.ContentsCalls())
	}
	if notifier.SuccessCount() != 0 {
		t.Errorf("no success notification expected")
	}
}

func TestDeleteSelected_InsertionOrderAndKinds(t *testing.T) {
	var order []string
	src := &fakeSource{
		delFolder: func(ctx context.Context, id int64) error {
			order = append(order, models.SelectionKey(models.KindFolder, id))
			return nil
		},
		delFile: func(ctx context.Context, id int64) error {
			order = append(order, models.SelectionKey(models.KindFile, id))
			return nil
		},
	}
	sess, _ := newTestSession(src)

	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 9}, true)
	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFolder, ID: 4}, true)
	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 7}, true)

	result := sess.DeleteSelected(context.Background())
	if !result.AllSucceeded() {
		t.Fatalf("unexpected failures: %+v", result.Failed)
	}

	want := []string{"file:9", "folder:4", "file:7"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected deletion order %v, got %v", want, order)
		}
	}
}

func TestSelectionSurvivesNavigationByDefault(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 1}, true)
	if err := sess.LoadFolderContents(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sess.SelectionCount(); got != 1 {
		t.Errorf("selection should survive navigation, got %d items", got)
	}
}

func TestSelectionClearedOnNavigateWhenConfigured(t *testing.T) {
	sess := NewSession(Options{
		Source:                   &fakeSource{},
		Notifier:                 &fakeNotifier{},
		ClearSelectionOnNavigate: true,
	})

	sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: 1}, true)
	if err := sess.LoadFolderContents(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.HasSelection() {
		t.Error("selection should be cleared by the navigation policy")
	}
}
