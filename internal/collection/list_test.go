package collection

import (
	"context"
	"errors"
	"testing"
)

type entry struct {
	ID   string
	Name string
}

type memStore struct {
	saved   []entry
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load(context.Context) ([]entry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]entry(nil), m.saved...), nil
}

func (m *memStore) Save(_ context.Context, items []entry) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append([]entry(nil), items...)
	return nil
}

func newTestList(store Persister[entry]) *List[entry] {
	return New(func(e entry) string { return e.ID }, store)
}

func TestListCRUDPersistsWholeList(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	list := newTestList(store)

	if err := list.Add(ctx, entry{ID: "a", Name: "Alchemist"}); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if err := list.Add(ctx, entry{ID: "b", Name: "Blacksmith"}); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if err := list.Update(ctx, "a", entry{ID: "a", Name: "Apothecary"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := list.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if store.saves != 4 {
		t.Fatalf("expected 4 saves, got %d", store.saves)
	}
	if len(store.saved) != 1 || store.saved[0].Name != "Apothecary" {
		t.Fatalf("unexpected persisted state: %+v", store.saved)
	}
}

func TestListRejectsDuplicatesAndMissingKeys(t *testing.T) {
	ctx := context.Background()
	list := newTestList(nil)

	if err := list.Add(ctx, entry{ID: "a"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := list.Add(ctx, entry{ID: "a"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := list.Update(ctx, "missing", entry{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := list.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}

	if err := list.Add(ctx, entry{ID: "b"}); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if err := list.Update(ctx, "a", entry{ID: "b"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on rekey, got %v", err)
	}
}

func TestListKeepsOptimisticStateOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	store := &memStore{saveErr: errors.New("blob store offline")}
	list := newTestList(store)

	err := list.Add(ctx, entry{ID: "a"})
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if _, ok := list.Get("a"); !ok {
		t.Fatal("expected local state to keep the added entry")
	}
}

func TestListLoadReplacesState(t *testing.T) {
	ctx := context.Background()
	store := &memStore{saved: []entry{{ID: "x"}, {ID: "y"}}}
	list := newTestList(store)

	if err := list.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	all := list.All()
	if len(all) != 2 || all[0].ID != "x" || all[1].ID != "y" {
		t.Fatalf("unexpected state: %+v", all)
	}

	store.loadErr = errors.New("boom")
	if err := list.Load(ctx); err == nil {
		t.Fatal("expected load error")
	}
	if len(list.All()) != 2 {
		t.Fatal("expected failed load to keep state")
	}
}

func TestListAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	list := newTestList(nil)
	_ = list.Add(ctx, entry{ID: "a", Name: "original"})

	all := list.All()
	all[0].Name = "changed"

	if got, _ := list.Get("a"); got.Name != "original" {
		t.Fatalf("expected list to be unaffected, got %q", got.Name)
	}
}
