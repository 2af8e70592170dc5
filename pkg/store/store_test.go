package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

type item struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Flag  bool   `json:"flag"`
	Extra string `json:"extra,omitempty"`
}

func (i item) RecordID() string { return i.ID }

func (i item) WithID(id string) item {
	i.ID = id
	return i
}

func keepFlag(prev, next item) item {
	next.Flag = prev.Flag
	return next
}

func newTestCollection(t *testing.T) (*Persistence, *Collection[item]) {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p, NewCollection[item](p, SlotTodos, keepFlag)
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestLoadAllMissingSlotIsEmpty(t *testing.T) {
	_, c := newTestCollection(t)
	all, err := c.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", all)
	}
}

func TestLoadAllCorruptSlotIsEmpty(t *testing.T) {
	p, c := newTestCollection(t)
	if err := p.Write(SlotTodos, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	all, err := c.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("corrupt slot should not error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty collection, got %v", all)
	}
}

func TestLoadAllAssignsMissingIDs(t *testing.T) {
	p, c := newTestCollection(t)
	if err := p.Write(SlotTodos, []byte(`[{"name":"a"},{"name":"b","id":"keep"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx := context.Background()
	first, err := c.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if first[0].ID == "" || first[1].ID != "keep" {
		t.Fatalf("unexpected ids %+v", first)
	}
	second, err := c.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if second[0].ID != first[0].ID {
		t.Fatalf("assigned id did not persist: %q vs %q", first[0].ID, second[0].ID)
	}
}

func TestSaveAppendsAndOverwrites(t *testing.T) {
	_, c := newTestCollection(t)
	ctx := context.Background()

	a, err := c.Save(ctx, item{Name: "a", Flag: true}, "")
	if err != nil {
		t.Fatalf("save a: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, err := c.Save(ctx, item{Name: "b"}, ""); err != nil {
		t.Fatalf("save b: %v", err)
	}

	edited, err := c.Save(ctx, item{Name: "a2"}, a.ID)
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if edited.ID != a.ID || !edited.Flag {
		t.Fatalf("overwrite must keep id and merged state, got %+v", edited)
	}

	all, err := c.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if got := names(all); len(got) != 2 || got[0] != "a2" || got[1] != "b" {
		t.Fatalf("expected [a2 b], got %v", got)
	}
}

func TestSaveUnknownIDFails(t *testing.T) {
	_, c := newTestCollection(t)
	if _, err := c.Save(context.Background(), item{Name: "x"}, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateBypassesMerge(t *testing.T) {
	_, c := newTestCollection(t)
	ctx := context.Background()
	a, err := c.Save(ctx, item{Name: "a"}, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := c.Update(ctx, a.ID, func(i item) item {
		i.Flag = !i.Flag
		return i
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Flag {
		t.Fatalf("expected flag toggled")
	}
	stored, _, err := c.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Flag {
		t.Fatalf("toggle not persisted")
	}
}

func TestDeleteAtAndDelete(t *testing.T) {
	_, c := newTestCollection(t)
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		if _, err := c.Save(ctx, item{Name: n}, ""); err != nil {
			t.Fatalf("save %s: %v", n, err)
		}
	}

	removed, err := c.DeleteAt(ctx, 1)
	if err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}
	if removed.Name != "b" {
		t.Fatalf("removed wrong record %+v", removed)
	}
	if _, err := c.DeleteAt(ctx, 5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	first, err := c.At(ctx, 0)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if _, err := c.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all, err := c.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if got := names(all); len(got) != 1 || got[0] != "c" {
		t.Fatalf("expected [c], got %v", got)
	}
}

func TestDeleteAllErasesSlot(t *testing.T) {
	p, c := newTestCollection(t)
	ctx := context.Background()
	if _, err := c.Save(ctx, item{Name: "a"}, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if p.Has(SlotTodos) {
		t.Fatalf("slot should be erased")
	}
	if _, err := os.Stat(filepath.Join(p.BasePath(), string(SlotTodos))); !os.IsNotExist(err) {
		t.Fatalf("slot file should be gone, stat err = %v", err)
	}
	if err := c.DeleteAll(ctx); err != nil {
		t.Fatalf("second DeleteAll should be a no-op: %v", err)
	}
}

func TestChangesSignalsEveryMutation(t *testing.T) {
	p, c := newTestCollection(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := p.Changes(ctx)

	a, err := c.Save(ctx, item{Name: "a"}, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := c.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	for i := 0; i < 3; i++ {
		select {
		case ev := <-ch:
			if ev.Type != EventSlotChanged || ev.Slot != SlotTodos {
				t.Fatalf("unexpected event %+v", ev)
			}
		default:
			t.Fatalf("expected 3 change events, got %d", i)
		}
	}
}

func TestChangesUnsubscribeOnCancel(t *testing.T) {
	p, c := newTestCollection(t)
	ctx, cancel := context.WithCancel(context.Background())
	ch := p.Changes(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected the channel to close without events")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("channel not closed after cancel")
	}

	p.mu.Lock()
	subs := len(p.subs)
	p.mu.Unlock()
	if subs != 0 {
		t.Fatalf("subscriber still registered: %d", subs)
	}

	if _, err := c.Save(context.Background(), item{Name: "after"}, ""); err != nil {
		t.Fatalf("save after unsubscribe: %v", err)
	}
}

func TestLoadRequiresBasePath(t *testing.T) {
	if _, err := Load(testConfig{}); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		c := NewCollection[item](p, SlotNotes, nil)
		if err := c.DeleteAll(ctx); err != nil {
			rt.Fatalf("reset: %v", err)
		}
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		for i := 0; i < n; i++ {
			if _, err := c.Save(ctx, item{Name: rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "name")}, ""); err != nil {
				rt.Fatalf("save: %v", err)
			}
		}

		rec := item{Name: "probe"}
		saved, err := c.Save(ctx, rec, "")
		if err != nil {
			rt.Fatalf("save probe: %v", err)
		}
		all, err := c.LoadAll(ctx)
		if err != nil {
			rt.Fatalf("LoadAll: %v", err)
		}
		if len(all) != n+1 || all[n] != saved {
			rt.Fatalf("appended record not at position %d", n)
		}

		i := rapid.IntRange(0, n).Draw(rt, "delete")
		removed, err := c.DeleteAt(ctx, i)
		if err != nil {
			rt.Fatalf("DeleteAt: %v", err)
		}
		after, err := c.LoadAll(ctx)
		if err != nil {
			rt.Fatalf("LoadAll: %v", err)
		}
		if len(after) != len(all)-1 {
			rt.Fatalf("length %d after delete, want %d", len(after), len(all)-1)
		}
		for _, it := range after {
			if it.ID == removed.ID {
				rt.Fatalf("deleted record %s still present", removed.ID)
			}
		}
	})
}
