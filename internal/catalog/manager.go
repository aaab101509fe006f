package catalog

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"menukeeper/internal/idgen"
	"menukeeper/internal/kvstorage"
)

// Options configures a Manager.
type Options struct {
	Flavor Flavor
	// Key is the storage key; defaults to Flavor.DefaultKey().
	Key   string
	Store kvstorage.KVStore
	// IDs allocates new item IDs; defaults to short "itm-" IDs.
	IDs   *idgen.Allocator
	Hooks Hooks
}

// Manager owns a catalog collection and mirrors it to a KVStore.
//
// Mutations are serialized: a mutation holds the manager for its whole
// validate-apply-write sequence, so two overlapping calls can never
// interleave their writes and drop each other's change.
type Manager struct {
	mu     sync.Mutex
	store  kvstorage.KVStore
	key    string
	flavor Flavor
	ids    *idgen.Allocator
	hooks  Hooks

	items []Item
	dirty bool // memory is ahead of the store
}

// New returns a Manager with an empty collection. Call Load to hydrate it.
func New(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, errors.New("catalog: store is required")
	}
	if opts.Flavor == "" {
		opts.Flavor = FlavorMenu
	}
	if _, err := ParseFlavor(string(opts.Flavor)); err != nil {
		return nil, err
	}
	if opts.Key == "" {
		opts.Key = opts.Flavor.DefaultKey()
	}
	if err := kvstorage.ValidateKey(opts.Key); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if opts.IDs == nil {
		opts.IDs = idgen.NewAllocator("itm-", idgen.FormatShort)
	}
	return &Manager{
		store:  opts.Store,
		key:    opts.Key,
		flavor: opts.Flavor,
		ids:    opts.IDs,
		hooks:  opts.Hooks,
	}, nil
}

// Flavor returns the manager's flavor.
func (m *Manager) Flavor() Flavor { return m.flavor }

// Key returns the storage key the collection is persisted under.
func (m *Manager) Key() string { return m.key }

// Load replaces the in-memory collection with the stored one.
//
// A missing key leaves the collection empty. A blob that cannot be decoded
// also leaves it empty and returns a *CorruptStateError; callers should
// report it and carry on. A failed read returns a *PersistenceError and
// leaves the collection empty, as does a *FlavorMismatchError when a stored
// item lacks a field the flavor requires.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	err := m.load(ctx)
	ev := m.event(VerbLoad, "", err == nil, err)
	ev.Persisted = err == nil
	m.mu.Unlock()

	m.notify(ctx, ev)
	return err
}

func (m *Manager) load(ctx context.Context) error {
	m.items = nil
	m.dirty = false

	blob, err := m.store.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, kvstorage.ErrKeyNotFound) {
			return nil
		}
		return &PersistenceError{Key: m.key, Op: "read", Err: err}
	}
	items, err := Decode(blob)
	if err != nil {
		return &CorruptStateError{Key: m.key, Err: err}
	}
	if err := m.checkFlavor(items); err != nil {
		return err
	}
	m.items = items
	return nil
}

func (m *Manager) checkFlavor(items []Item) error {
	for _, it := range items {
		switch {
		case m.flavor.RequiresQuantity() && it.Quantity == nil:
			return &FlavorMismatchError{Key: m.key, Flavor: m.flavor, ID: it.ID, Field: "quantity"}
		case m.flavor.RequiresImage() && strings.TrimSpace(it.Image) == "":
			return &FlavorMismatchError{Key: m.key, Flavor: m.flavor, ID: it.ID, Field: "image"}
		}
	}
	return nil
}

// Add validates d, appends a new item with a fresh ID and persists the
// collection. It returns the updated collection.
//
// On a *ValidationError the collection is unchanged and nothing is written.
// On a *PersistenceError the item has been added in memory and the returned
// collection includes it.
func (m *Manager) Add(ctx context.Context, d Draft) ([]Item, error) {
	m.mu.Lock()
	id, err := m.add(ctx, d)
	ev := m.event(VerbAdd, id, id != "", err)
	items := m.snapshot()
	m.mu.Unlock()

	m.notify(ctx, ev)
	return items, err
}

func (m *Manager) add(ctx context.Context, d Draft) (string, error) {
	it, err := validate(m.flavor, d)
	if err != nil {
		return "", err
	}
	id, err := m.ids.Next(len(m.items), func(id string) bool { return m.indexOf(id) >= 0 })
	if err != nil {
		return "", fmt.Errorf("allocating item id: %w", err)
	}
	it.ID = id
	m.items = append(m.items, it)
	return id, m.persist(ctx)
}

// Update validates d and replaces the item with the given ID in place,
// keeping its ID and position, then persists the collection.
// A missing ID fails with *NotFoundError before the draft is examined.
func (m *Manager) Update(ctx context.Context, id string, d Draft) ([]Item, error) {
	m.mu.Lock()
	changed, err := m.update(ctx, id, d)
	ev := m.event(VerbUpdate, id, changed, err)
	items := m.snapshot()
	m.mu.Unlock()

	m.notify(ctx, ev)
	return items, err
}

func (m *Manager) update(ctx context.Context, id string, d Draft) (bool, error) {
	i := m.indexOf(id)
	if i < 0 {
		return false, &NotFoundError{ID: id}
	}
	it, err := validate(m.flavor, d)
	if err != nil {
		return false, err
	}
	it.ID = id
	m.items[i] = it
	return true, m.persist(ctx)
}

// Delete removes the item with the given ID and persists the collection.
// Deleting an ID that is not present succeeds without writing.
func (m *Manager) Delete(ctx context.Context, id string) ([]Item, error) {
	m.mu.Lock()
	changed, err := m.delete(ctx, id)
	ev := m.event(VerbDelete, id, changed, err)
	items := m.snapshot()
	m.mu.Unlock()

	m.notify(ctx, ev)
	return items, err
}

func (m *Manager) delete(ctx context.Context, id string) (bool, error) {
	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}
	m.items = append(m.items[:i:i], m.items[i+1:]...)
	return true, m.persist(ctx)
}

// Save writes the current collection, whether or not it is dirty. It is the
// retry path after a *PersistenceError.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	err := m.persist(ctx)
	ev := m.event(VerbSave, "", false, err)
	m.mu.Unlock()

	m.notify(ctx, ev)
	return err
}

// Dirty reports whether the last write failed, leaving memory ahead of the store.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Len returns the number of items.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Items returns a copy of the collection in order.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Get returns the item with the given ID.
func (m *Manager) Get(id string) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i].Clone(), nil
	}
	return Item{}, &NotFoundError{ID: id}
}

// Resolve returns the item whose ID is idOrPrefix, or failing that the
// single item whose ID starts with it. An ambiguous prefix is a
// *ValidationError on field "id".
func (m *Manager) Resolve(idOrPrefix string) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(idOrPrefix); i >= 0 {
		return m.items[i].Clone(), nil
	}
	if idOrPrefix == "" {
		return Item{}, &NotFoundError{ID: idOrPrefix}
	}
	var matches []int
	for i, it := range m.items {
		if strings.HasPrefix(it.ID, idOrPrefix) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return Item{}, &NotFoundError{ID: idOrPrefix}
	case 1:
		return m.items[matches[0]].Clone(), nil
	default:
		return Item{}, &ValidationError{
			Field:  "id",
			Reason: fmt.Sprintf("prefix %q matches %d items", idOrPrefix, len(matches)),
		}
	}
}

// Where returns a lazy sequence of the items for which keep returns true.
// Each iteration works on a snapshot taken when it starts, so the sequence
// can be ranged over repeatedly and the body may call back into the Manager.
func (m *Manager) Where(keep func(Item) bool) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, it := range m.Items() {
			if keep != nil && !keep(it) {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// Filter returns the items whose name contains query, ignoring case.
// An empty query matches every item.
func (m *Manager) Filter(query string) iter.Seq[Item] {
	q := strings.ToLower(query)
	return m.Where(func(it Item) bool {
		return strings.Contains(strings.ToLower(it.Name), q)
	})
}

// persist writes the full collection. Must be called with m.mu held.
func (m *Manager) persist(ctx context.Context) error {
	blob, err := Encode(m.items)
	if err != nil {
		m.dirty = true
		return &PersistenceError{Key: m.key, Op: "write", Err: err}
	}
	if err := m.store.Set(ctx, m.key, blob, kvstorage.SetOptions{}); err != nil {
		m.dirty = true
		return &PersistenceError{Key: m.key, Op: "write", Err: err}
	}
	m.dirty = false
	return nil
}

func (m *Manager) indexOf(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshot() []Item {
	out := make([]Item, len(m.items))
	for i, it := range m.items {
		out[i] = it.Clone()
	}
	return out
}

// event builds an Event for the current state. Must be called with m.mu held.
func (m *Manager) event(verb, id string, changed bool, err error) Event {
	return Event{
		Verb:      verb,
		Flavor:    m.flavor,
		Key:       m.key,
		ItemID:    id,
		Count:     len(m.items),
		Changed:   changed,
		Persisted: (changed || verb == VerbSave) && err == nil,
		Err:       err,
	}
}

// notify runs hooks outside the lock. Hook failures never fail an operation.
func (m *Manager) notify(ctx context.Context, ev Event) {
	_ = m.hooks.Notify(ctx, ev)
}
