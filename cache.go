package balance

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// cacheDirName is the per-app folder created under the user config directory.
const cacheDirName = "BalancePlusCache"

const defaultCacheFileName = "transactions.json"

// ItemError records one element of the cache file that failed to decode
// during Load.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string { return fmt.Sprintf("element %d: %v", e.Index, e.Err) }

func (e ItemError) Unwrap() error { return e.Err }

// FileCache is the local mirror of the transaction collection: an in-memory
// ordered slice with a single JSON file as its durable copy. Every mutation
// re-persists the whole collection; there is no incremental diffing.
//
// The cache assumes a single logical writer. It takes no lock of its own
// unless one is injected with WithLocker; callers sharing an instance across
// goroutines must inject one.
type FileCache struct {
	items []Transaction
	path  string
	name  string
	mu    sync.Locker
}

// Option configures a FileCache.
type Option func(*FileCache)

// WithFileName overrides the cache file name inside the standard cache
// directory.
func WithFileName(name string) Option {
	return func(c *FileCache) { c.name = name }
}

// WithPath pins the backing file to an explicit path, bypassing the cache
// directory policy entirely.
func WithPath(path string) Option {
	return func(c *FileCache) { c.path = path }
}

// WithLocker injects the primitive that serializes Add, Remove, Save and Load
// calls, for callers that use the cache from more than one goroutine.
func WithLocker(l sync.Locker) Option {
	return func(c *FileCache) { c.mu = l }
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// NewFileCache builds a cache and best-effort loads the backing file.
// Construction never fails: a missing, unreadable or foreign file yields an
// empty cache, with the reason logged.
func NewFileCache(opts ...Option) *FileCache {
	c := &FileCache{name: defaultCacheFileName, mu: nopLocker{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.path == "" {
		c.path = defaultCachePath(c.name)
	}
	if _, err := c.load(); err != nil {
		log.Printf("cache-load-fallback file=%q err=%q", c.path, err)
		c.items = nil
	}
	return c
}

// defaultCachePath prefers a per-app folder under the user config directory
// and falls back to the temporary directory, so the cache can always be
// constructed.
func defaultCachePath(name string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(dir, cacheDirName)
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, name)
		}
	}
	log.Printf("cache-dir-fallback dir=%q", os.TempDir())
	return filepath.Join(os.TempDir(), name)
}

// Path returns the location of the backing file.
func (c *FileCache) Path() string { return c.path }

// Items returns a copy of the cached transactions, in first-add order.
func (c *FileCache) Items() []Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Add upserts a transaction: an item with the same id is replaced in place,
// preserving its position, otherwise the item is appended. The collection is
// persisted immediately. If the save fails the in-memory change stays applied
// and the error is returned; memory and disk then diverge until the next
// successful save.
func (c *FileCache) Add(item Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := slices.IndexFunc(c.items, func(t Transaction) bool { return t.ID == item.ID })
	if idx >= 0 {
		c.items[idx] = item
	} else {
		c.items = append(c.items, item)
	}
	log.Printf("cache-add id=%d replaced=%t", item.ID, idx >= 0)
	return c.save()
}

// Remove deletes the transaction with the given id and persists. If no such
// id is cached it fails with ErrNotFound and touches neither memory nor disk.
func (c *FileCache) Remove(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := slices.IndexFunc(c.items, func(t Transaction) bool { return t.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: transaction id %d", ErrNotFound, id)
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	log.Printf("cache-remove id=%d", id)
	return c.save()
}

// Save serializes the whole collection into one JSON array and writes it to
// the backing file atomically.
func (c *FileCache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save()
}

func (c *FileCache) save() error {
	list := make(List, 0, len(c.items))
	for _, t := range c.items {
		list = append(list, t.Tree())
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding cache: %v", ErrSerialization, err)
	}
	if err := atomicWrite(c.path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	log.Printf("cache-save count=%d file=%q", len(c.items), filepath.Base(c.path))
	return nil
}

// Load replaces the collection with the content of the backing file. A
// missing file is a valid empty cache (first run). Elements that fail to
// decode are skipped and returned as diagnostics, not fatal; a file whose top
// level is not a JSON array is an ErrSerialization. Load is an idempotent
// read and safe to call repeatedly.
func (c *FileCache) Load() ([]ItemError, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *FileCache) load() ([]ItemError, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("cache-load-missing file=%q", filepath.Base(c.path))
		c.items = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	v, err := ParseValue(data)
	if err != nil {
		return nil, err
	}
	list, ok := v.(List)
	if !ok {
		return nil, fmt.Errorf("%w: cache file is not a JSON array", ErrSerialization)
	}
	items := make([]Transaction, 0, len(list))
	var skipped []ItemError
	for i, el := range list {
		tx, err := DecodeTransactionTree(el)
		if err != nil {
			log.Printf("cache-load-skip index=%d err=%q", i, err)
			skipped = append(skipped, ItemError{Index: i, Err: err})
			continue
		}
		items = append(items, tx)
	}
	c.items = items
	log.Printf("cache-load count=%d skipped=%d file=%q", len(items), len(skipped), filepath.Base(c.path))
	return skipped, nil
}

// ClearCacheFile deletes the backing file if present and empties the
// collection. Deleting a file that does not exist is a no-op, not an error.
func (c *FileCache) ClearCacheFile() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	c.items = nil
	return nil
}

// atomicWrite writes data to path through a temporary file in the same
// directory followed by a rename, so a concurrent reader never observes a
// partially written file and a crash mid-write leaves the previous good state
// intact.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		if werr != nil {
			return werr
		}
		return cerr
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
