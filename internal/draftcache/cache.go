// ABOUTME: Badger-backed cache persisting the in-progress session draft.
// ABOUTME: Stores one JSON snapshot per key so drafts survive restarts.
package draftcache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/harperreed/fittracker/internal/models"
)

const draftKey = "session:draft"

// Cache wraps a Badger store holding the persisted session draft.
// Safe for concurrent use.
type Cache struct {
	mu sync.Mutex
	db *badger.DB
}

// Open opens (or creates) the cache at dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open draft cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// SaveDraft persists the draft snapshot, replacing any previous one.
func (c *Cache) SaveDraft(draft models.SessionDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(draftKey), data)
	})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// LoadDraft reads the persisted draft. found is false when no draft
// has been saved.
func (c *Cache) LoadDraft() (models.SessionDraft, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(draftKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return models.SessionDraft{}, false, nil
	}
	if err != nil {
		return models.SessionDraft{}, false, fmt.Errorf("load draft: %w", err)
	}

	var draft models.SessionDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return models.SessionDraft{}, false, fmt.Errorf("unmarshal draft: %w", err)
	}
	return draft, true, nil
}

// ClearDraft removes the persisted draft. Clearing an empty cache is a
// no-op.
func (c *Cache) ClearDraft() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(draftKey))
	})
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
