package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"menukeeper/internal/kvstorage"
	"menukeeper/internal/kvstorage/memory"
)

func newTestManager(t *testing.T, flavor Flavor) (*Manager, *memory.Store) {
	t.Helper()
	store := memory.New()
	m, err := New(Options{Flavor: flavor, Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m, store
}

func mustAdd(t *testing.T, m *Manager, d Draft) Item {
	t.Helper()
	items, err := m.Add(context.Background(), d)
	if err != nil {
		t.Fatalf("Add(%+v): %v", d, err)
	}
	return items[len(items)-1]
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without store")
	}
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(Options{Store: memory.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Flavor() != FlavorMenu {
		t.Errorf("Flavor = %q, want menu", m.Flavor())
	}
	if m.Key() != "menu" {
		t.Errorf("Key = %q, want menu", m.Key())
	}
}

func TestNew_RejectsBadKeyAndFlavor(t *testing.T) {
	if _, err := New(Options{Store: memory.New(), Key: "a/b"}); err == nil {
		t.Error("expected error for key with separator")
	}
	if _, err := New(Options{Store: memory.New(), Flavor: "drinks"}); err == nil {
		t.Error("expected error for unknown flavor")
	}
}

func TestAdd_Latte(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)

	items, err := m.Add(context.Background(), Draft{Name: "Latte", Price: "3.50", Image: "img1"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	got := items[0]
	if got.ID == "" || got.Name != "Latte" || got.Price != 3.5 || got.Image != "img1" {
		t.Errorf("item = %+v", got)
	}
	if got.Quantity != nil {
		t.Errorf("menu item should have no quantity, got %d", *got.Quantity)
	}
	if store.Writes() != 1 {
		t.Errorf("Writes = %d, want 1", store.Writes())
	}
}

func TestAdd_EmptyNameRejected(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)

	items, err := m.Add(context.Background(), Draft{Name: "", Price: "2", Image: "img1"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Field != "name" {
		t.Errorf("Field = %q, want name", verr.Field)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation)")
	}
	if len(items) != 0 || m.Len() != 0 {
		t.Errorf("collection should stay empty, got %v", items)
	}
	if store.Writes() != 0 {
		t.Errorf("Writes = %d, want 0", store.Writes())
	}
}

func TestAdd_ValidationFields(t *testing.T) {
	tests := []struct {
		name   string
		flavor Flavor
		draft  Draft
		field  string
	}{
		{"whitespace name", FlavorMenu, Draft{Name: "   ", Price: "1", Image: "i"}, "name"},
		{"empty price", FlavorMenu, Draft{Name: "A", Price: "", Image: "i"}, "price"},
		{"non-numeric price", FlavorMenu, Draft{Name: "A", Price: "abc", Image: "i"}, "price"},
		{"negative price", FlavorMenu, Draft{Name: "A", Price: "-1", Image: "i"}, "price"},
		{"NaN price", FlavorMenu, Draft{Name: "A", Price: "NaN", Image: "i"}, "price"},
		{"infinite price", FlavorMenu, Draft{Name: "A", Price: "Inf", Image: "i"}, "price"},
		{"missing image", FlavorMenu, Draft{Name: "A", Price: "1"}, "image"},
		{"blank image", FlavorMenu, Draft{Name: "A", Price: "1", Image: "  "}, "image"},
		{"missing quantity", FlavorInventory, Draft{Name: "A", Price: "1"}, "quantity"},
		{"fractional quantity", FlavorInventory, Draft{Name: "A", Price: "1", Quantity: "1.5"}, "quantity"},
		{"negative quantity", FlavorInventory, Draft{Name: "A", Price: "1", Quantity: "-3"}, "quantity"},
		{"name checked first", FlavorMenu, Draft{Price: "x"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t, tt.flavor)
			_, err := m.Add(context.Background(), tt.draft)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q (%s), want %q", verr.Field, verr.Reason, tt.field)
			}
			if m.Len() != 0 {
				t.Errorf("Len = %d, want 0", m.Len())
			}
		})
	}
}

func TestAdd_ParsesAndTrims(t *testing.T) {
	m, _ := newTestManager(t, FlavorInventory)
	it := mustAdd(t, m, Draft{Name: "  Beans ", Price: " 12.25 ", Quantity: " 40 ", Image: "ignored", Type: "ignored"})

	if it.Name != "Beans" || it.Price != 12.25 {
		t.Errorf("item = %+v", it)
	}
	if it.Quantity == nil || *it.Quantity != 40 {
		t.Errorf("Quantity = %v, want 40", it.Quantity)
	}
	if it.Image != "" || it.Type != "" {
		t.Errorf("inventory item should drop image and type, got %+v", it)
	}
}

func TestAdd_MenuType(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	it := mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "img", Type: " hot "})
	if it.Type != "hot" {
		t.Errorf("Type = %q, want hot", it.Type)
	}
	it = mustAdd(t, m, Draft{Name: "Water", Price: "0", Image: "img"})
	if it.Type != "" || it.Price != 0 {
		t.Errorf("item = %+v", it)
	}
}

func TestAdd_NegativeZeroPrice(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	it := mustAdd(t, m, Draft{Name: "Free", Price: "-0", Image: "img"})
	blob, _ := Encode([]Item{it})
	if want := `[{"id":"` + it.ID + `","name":"Free","price":0,"image":"img"}]`; string(blob) != want {
		t.Errorf("Encode = %s, want %s", blob, want)
	}
}

func TestAdd_UniqueIDsAndLength(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	const n = 200
	for i := 0; i < n; i++ {
		mustAdd(t, m, Draft{Name: fmt.Sprintf("Item %d", i), Price: "1", Image: "img"})
	}
	items := m.Items()
	if len(items) != n {
		t.Fatalf("len = %d, want %d", len(items), n)
	}
	seen := map[string]bool{}
	for i, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
		if want := fmt.Sprintf("Item %d", i); it.Name != want {
			t.Errorf("items[%d] = %q, want %q (insertion order)", i, it.Name, want)
		}
	}
}

func TestUpdate_KeepsIDAndPosition(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	a := mustAdd(t, m, Draft{Name: "Americano", Price: "2", Image: "a"})
	b := mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "b"})
	c := mustAdd(t, m, Draft{Name: "Mocha", Price: "4", Image: "c"})

	items, err := m.Update(context.Background(), b.ID, Draft{Name: "Flat White", Price: "3.75", Image: "b2"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, want := ids(items), []string{a.ID, b.ID, c.ID}; !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if items[1].Name != "Flat White" || items[1].Price != 3.75 || items[1].Image != "b2" {
		t.Errorf("updated item = %+v", items[1])
	}
}

func TestUpdate_ReplacesWholeItem(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	a := mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "a", Type: "hot"})

	items, err := m.Update(context.Background(), a.ID, Draft{Name: "Latte", Price: "3", Image: "a"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if items[0].Type != "" {
		t.Errorf("Type = %q, want cleared", items[0].Type)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)
	for _, n := range []string{"A", "B", "C"} {
		mustAdd(t, m, Draft{Name: n, Price: "1", Image: "img"})
	}
	before := m.Items()
	writes := store.Writes()

	items, err := m.Update(context.Background(), "itm-missing", Draft{Name: "X", Price: "1", Image: "img"})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "itm-missing" {
		t.Fatalf("error = %v, want NotFoundError{itm-missing}", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}
	if !slices.EqualFunc(items, before, itemsEqual) {
		t.Errorf("collection changed: %v", items)
	}
	if store.Writes() != writes {
		t.Error("no write expected")
	}
}

func TestUpdate_InvalidDraftLeavesItem(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	a := mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "img"})

	_, err := m.Update(context.Background(), a.ID, Draft{Name: "Latte", Price: "-2", Image: "img"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
	got, _ := m.Get(a.ID)
	if got.Price != 3 {
		t.Errorf("Price = %v, want 3", got.Price)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)
	a := mustAdd(t, m, Draft{Name: "A", Price: "1", Image: "img"})
	b := mustAdd(t, m, Draft{Name: "B", Price: "1", Image: "img"})
	c := mustAdd(t, m, Draft{Name: "C", Price: "1", Image: "img"})

	items, err := m.Delete(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, want := ids(items), []string{a.ID, c.ID}; !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	writes := store.Writes()

	items, err = m.Delete(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
	if store.Writes() != writes {
		t.Error("no-op delete should not write")
	}
}

func TestPersistenceFailure_KeepsMutation(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)
	mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "img"})

	store.SetFailure(errors.New("disk full"))
	items, err := m.Add(context.Background(), Draft{Name: "Mocha", Price: "4", Image: "img"})
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "write" {
		t.Fatalf("error = %v, want write PersistenceError", err)
	}
	if len(items) != 2 || m.Len() != 2 {
		t.Fatalf("mutation must be kept in memory, got %v", names(items))
	}
	if !m.Dirty() {
		t.Error("Dirty = false, want true")
	}

	// The stored copy is still one mutation behind.
	blob, _ := store.Get(context.Background(), "menu")
	stored, _ := Decode(blob)
	if len(stored) != 1 {
		t.Errorf("stored len = %d, want 1", len(stored))
	}

	store.SetFailure(nil)
	if err := m.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if m.Dirty() {
		t.Error("Dirty after Save = true, want false")
	}
	blob, _ = store.Get(context.Background(), "menu")
	stored, _ = Decode(blob)
	if !slices.Equal(names(stored), []string{"Latte", "Mocha"}) {
		t.Errorf("stored = %v", names(stored))
	}
}

func TestRestartReloadsStaleCopy(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)
	mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "img"})
	store.SetFailure(errors.New("disk full"))
	m.Add(context.Background(), Draft{Name: "Mocha", Price: "4", Image: "img"})
	store.SetFailure(nil)

	restarted, err := New(Options{Store: store})
	if err != nil {
		t.Fatal(err)
	}
	if err := restarted.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := names(restarted.Items()); !slices.Equal(got, []string{"Latte"}) {
		t.Errorf("reloaded = %v, want [Latte]", got)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	m, store := newTestManager(t, FlavorInventory)
	mustAdd(t, m, Draft{Name: "Milk", Price: "1.2", Quantity: "10"})
	mustAdd(t, m, Draft{Name: "Beans", Price: "15", Quantity: "0"})
	mustAdd(t, m, Draft{Name: "Cups", Price: "0.05", Quantity: "500"})
	want := m.Items()

	reloaded, err := New(Options{Flavor: FlavorInventory, Store: store})
	if err != nil {
		t.Fatal(err)
	}
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.Items(); !slices.EqualFunc(got, want, itemsEqual) {
		t.Errorf("reloaded = %+v, want %+v", got, want)
	}
}

func TestLoad_Missing(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestLoad_CorruptFallsBackToEmpty(t *testing.T) {
	for name, blob := range map[string]string{
		"not json":     `{{{`,
		"object":       `{"id":"x"}`,
		"string price": `[{"id":"a","name":"Latte","price":"3.5"}]`,
		"duplicate id": `[{"id":"a","name":"A","price":1},{"id":"a","name":"B","price":2}]`,
	} {
		t.Run(name, func(t *testing.T) {
			store := memory.New()
			store.Set(context.Background(), "menu", []byte(blob), kvstorage.SetOptions{})
			m, _ := New(Options{Store: store})
			// Seed memory so we can see Load replace it.
			m.items = []Item{{ID: "stale", Name: "stale"}}

			err := m.Load(context.Background())
			var cerr *CorruptStateError
			if !errors.As(err, &cerr) || cerr.Key != "menu" {
				t.Fatalf("error = %v, want CorruptStateError", err)
			}
			if m.Len() != 0 {
				t.Errorf("Len = %d, want 0", m.Len())
			}
		})
	}
}

func TestLoad_FlavorMismatch(t *testing.T) {
	menu, store := newTestManager(t, FlavorMenu)
	mustAdd(t, menu, Draft{Name: "Latte", Price: "3", Image: "img"})

	inv, err := New(Options{Flavor: FlavorInventory, Key: "menu", Store: store})
	if err != nil {
		t.Fatal(err)
	}
	err = inv.Load(context.Background())
	var ferr *FlavorMismatchError
	if !errors.As(err, &ferr) || ferr.Field != "quantity" || ferr.Flavor != FlavorInventory {
		t.Fatalf("error = %v, want quantity FlavorMismatchError", err)
	}
	if inv.Len() != 0 {
		t.Errorf("Len = %d, want 0", inv.Len())
	}

	stock, store := newTestManager(t, FlavorInventory)
	mustAdd(t, stock, Draft{Name: "Beans", Price: "12", Quantity: "3"})
	asMenu, _ := New(Options{Flavor: FlavorMenu, Key: "inventory", Store: store})
	if err := asMenu.Load(context.Background()); !errors.Is(err, ErrFlavorMismatch) {
		t.Errorf("error = %v, want ErrFlavorMismatch", err)
	}
}

func TestLoad_ReadFailure(t *testing.T) {
	m, err := New(Options{Store: failingGetStore{memory.New()}})
	if err != nil {
		t.Fatal(err)
	}
	err = m.Load(context.Background())
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "read" {
		t.Fatalf("error = %v, want read PersistenceError", err)
	}
}

type failingGetStore struct{ *memory.Store }

func (failingGetStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("permission denied")
}

func TestFilter(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "img"})
	mustAdd(t, m, Draft{Name: "Mocha", Price: "4", Image: "img"})

	if got := names(slices.Collect(m.Filter("cha"))); !slices.Equal(got, []string{"Mocha"}) {
		t.Errorf(`Filter("cha") = %v, want [Mocha]`, got)
	}
	if got := names(slices.Collect(m.Filter(""))); !slices.Equal(got, []string{"Latte", "Mocha"}) {
		t.Errorf(`Filter("") = %v, want [Latte Mocha]`, got)
	}
	for _, q := range []string{"LAT", "lAtTe", "atte"} {
		if got := names(slices.Collect(m.Filter(q))); !slices.Equal(got, []string{"Latte"}) {
			t.Errorf("Filter(%q) = %v, want [Latte]", q, got)
		}
	}
	if got := slices.Collect(m.Filter("tea")); len(got) != 0 {
		t.Errorf(`Filter("tea") = %v, want none`, names(got))
	}
}

func TestFilter_RestartableAndLive(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)
	mustAdd(t, m, Draft{Name: "Latte", Price: "3", Image: "img"})
	writes := store.Writes()

	seq := m.Filter("")
	if n := len(slices.Collect(seq)); n != 1 {
		t.Fatalf("first pass = %d items", n)
	}
	mustAdd(t, m, Draft{Name: "Mocha", Price: "4", Image: "img"})
	if n := len(slices.Collect(seq)); n != 2 {
		t.Errorf("second pass = %d items, want 2", n)
	}
	if store.Writes() != writes+1 {
		t.Error("Filter must not write")
	}
}

func TestFilter_StopsEarlyAndAllowsCallbacks(t *testing.T) {
	m, _ := newTestManager(t, FlavorMenu)
	for _, n := range []string{"A", "B", "C"} {
		mustAdd(t, m, Draft{Name: n, Price: "1", Image: "img"})
	}
	var seen []string
	for it := range m.Filter("") {
		seen = append(seen, it.Name)
		// Mutating from inside the loop must not deadlock.
		if _, err := m.Delete(context.Background(), it.ID); err != nil {
			t.Fatal(err)
		}
		if len(seen) == 2 {
			break
		}
	}
	if !slices.Equal(seen, []string{"A", "B"}) {
		t.Errorf("seen = %v", seen)
	}
	if got := names(m.Items()); !slices.Equal(got, []string{"C"}) {
		t.Errorf("remaining = %v", got)
	}
}

func TestResolve(t *testing.T) {
	store := memory.New()
	blob := `[{"id":"itm-abc","name":"A","price":1,"image":"i"},{"id":"itm-abd","name":"B","price":1,"image":"i"},{"id":"itm-xyz","name":"C","price":1,"image":"i"}]`
	store.Set(context.Background(), "menu", []byte(blob), kvstorage.SetOptions{})
	m, _ := New(Options{Store: store})
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if it, err := m.Resolve("itm-xyz"); err != nil || it.Name != "C" {
		t.Errorf("Resolve exact = %+v, %v", it, err)
	}
	if it, err := m.Resolve("itm-x"); err != nil || it.Name != "C" {
		t.Errorf("Resolve prefix = %+v, %v", it, err)
	}
	if _, err := m.Resolve("itm-ab"); !errors.Is(err, ErrValidation) {
		t.Errorf("Resolve ambiguous error = %v, want validation error", err)
	}
	if _, err := m.Resolve("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve missing error = %v, want not found", err)
	}
	if _, err := m.Resolve(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve empty error = %v, want not found", err)
	}
}

func TestItemsAreCopies(t *testing.T) {
	m, _ := newTestManager(t, FlavorInventory)
	it := mustAdd(t, m, Draft{Name: "Milk", Price: "1", Quantity: "5"})

	items := m.Items()
	*items[0].Quantity = 99
	items[0].Name = "changed"

	got, _ := m.Get(it.ID)
	if got.Name != "Milk" || *got.Quantity != 5 {
		t.Errorf("internal state leaked: %+v", got)
	}
}

func TestHooks(t *testing.T) {
	var events []Event
	store := memory.New()
	m, err := New(Options{
		Store: store,
		Hooks: Hooks{
			HookFunc(func(_ context.Context, ev Event) error {
				events = append(events, ev)
				return nil
			}),
			HookFunc(func(context.Context, Event) error { return errors.New("hook broke") }),
			nil,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	items, err := m.Add(ctx, Draft{Name: "Latte", Price: "3", Image: "img"})
	if err != nil {
		t.Fatalf("Add must not fail because a hook failed: %v", err)
	}
	m.Add(ctx, Draft{Name: ""})
	m.Delete(ctx, "missing")
	m.Delete(ctx, items[0].ID)

	want := []struct {
		verb      string
		changed   bool
		persisted bool
		failed    bool
	}{
		{VerbLoad, true, true, false},
		{VerbAdd, true, true, false},
		{VerbAdd, false, false, true},
		{VerbDelete, false, false, false},
		{VerbDelete, true, true, false},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		ev := events[i]
		if ev.Verb != w.verb || ev.Changed != w.changed || ev.Persisted != w.persisted || (ev.Err != nil) != w.failed {
			t.Errorf("event %d = %+v, want %+v", i, ev, w)
		}
		if ev.OccurredAt.IsZero() {
			t.Errorf("event %d missing timestamp", i)
		}
	}
	if events[1].ItemID != items[0].ID || events[1].Count != 1 {
		t.Errorf("add event = %+v", events[1])
	}
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	m, store := newTestManager(t, FlavorMenu)
	const n = 50
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			_, err := m.Add(context.Background(), Draft{Name: fmt.Sprintf("Item %d", i), Price: "1", Image: "img"})
			errs <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	blob, _ := store.Get(context.Background(), "menu")
	stored, err := Decode(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != n {
		t.Errorf("stored len = %d, want %d (a write was lost)", len(stored), n)
	}
}

func itemsEqual(a, b Item) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Price != b.Price || a.Type != b.Type || a.Image != b.Image {
		return false
	}
	if (a.Quantity == nil) != (b.Quantity == nil) {
		return false
	}
	return a.Quantity == nil || *a.Quantity == *b.Quantity
}
