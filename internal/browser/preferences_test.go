package browser

import (
	"testing"

	"github.com/RovaFananganana/frontend/internal/prefs"
)

func TestPreferences_Defaults(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	if sess.ViewMode() != ViewModeGrid {
		t.Errorf("expected grid, got %q", sess.ViewMode())
	}
	if sess.SortBy() != SortByName {
		t.Errorf("expected name, got %q", sess.SortBy())
	}
	if sess.SortOrder() != OrderAsc {
		t.Errorf("expected asc, got %q", sess.SortOrder())
	}
}

func TestSetViewMode_Persists(t *testing.T) {
	store := prefs.NewMemStore()
	sess := NewSession(Options{Source: &fakeSource{}, Notifier: &fakeNotifier{}, Prefs: store})

	sess.SetViewMode(ViewModeList)

	if sess.ViewMode() != ViewModeList {
		t.Errorf("expected list, got %q", sess.ViewMode())
	}
	if v, ok := store.Get("view_mode"); !ok || v != ViewModeList {
		t.Errorf("expected persisted view_mode=list, got %q (%v)", v, ok)
	}
}

func TestSetSorting_ToggleOnSameField(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	sess.SetSorting(SortByName, "")
	if sess.SortOrder() != OrderDesc {
		t.Errorf("expected toggle to desc, got %q", sess.SortOrder())
	}

	sess.SetSorting(SortByName, "")
	if sess.SortOrder() != OrderAsc {
		t.Errorf("expected toggle back to asc, got %q", sess.SortOrder())
	}
}

func TestSetSorting_NewFieldKeepsOrder(t *testing.T) {
	sess, _ := newTestSession(&fakeSource{})

	sess.SetSorting(SortByName, "")
	// Now desc. Switching field without an explicit order keeps it.
	sess.SetSorting(SortBySize, "")

	if sess.SortBy() != SortBySize {
		t.Errorf("expected size, got %q", sess.SortBy())
	}
	if sess.SortOrder() != OrderDesc {
		t.Errorf("expected desc carried over, got %q", sess.SortOrder())
	}
}

func TestSetSorting_ExplicitOrder(t *testing.T) {
	store := prefs.NewMemStore()
	sess := NewSession(Options{Source: &fakeSource{}, Notifier: &fakeNotifier{}, Prefs: store})

	sess.SetSorting(SortByDate, OrderDesc)

	if sess.SortBy() != SortByDate || sess.SortOrder() != OrderDesc {
		t.Errorf("unexpected sorting %q/%q", sess.SortBy(), sess.SortOrder())
	}
	if v, _ := store.Get("sort_by"); v != SortByDate {
		t.Errorf("expected persisted sort_by=date, got %q", v)
	}
	if v, _ := store.Get("sort_order"); v != OrderDesc {
		t.Errorf("expected persisted sort_order=desc, got %q", v)
	}
}

func TestInitializePreferences_AppliesOnlyPresentKeys(t *testing.T) {
	store := prefs.NewMemStore()
	if err := store.Set("sort_by", SortBySize); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	sess := NewSession(Options{Source: &fakeSource{}, Notifier: &fakeNotifier{}, Prefs: store})

	sess.InitializePreferences()

	if sess.SortBy() != SortBySize {
		t.Errorf("expected restored sort field, got %q", sess.SortBy())
	}
	if sess.ViewMode() != ViewModeGrid {
		t.Errorf("absent key must leave the default, got %q", sess.ViewMode())
	}
	if sess.SortOrder() != OrderAsc {
		t.Errorf("absent key must leave the default, got %q", sess.SortOrder())
	}
}
