package balance

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *FileCache {
	t.Helper()
	return NewFileCache(WithPath(filepath.Join(t.TempDir(), "transactions.json")))
}

func TestNewFileCache_MissingFile(t *testing.T) {
	c := newTestCache(t)
	assert.Empty(t, c.Items(), "a nonexistent file is a valid empty cache")
	_, err := os.Stat(c.Path())
	assert.True(t, errors.Is(err, os.ErrNotExist), "construction alone must not create the file")
}

func TestFileCache_Scenario(t *testing.T) {
	// add id=1 (amount 100.50), reload in a fresh instance
	c := newTestCache(t)
	require.NoError(t, c.Add(testTransaction(1, "100.50")))

	reloaded := NewFileCache(WithPath(c.Path()))
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(dec("100.50")))

	// remove an unknown id: NotFound, memory and file untouched
	before, err := os.ReadFile(reloaded.Path())
	require.NoError(t, err)
	err = reloaded.Remove(2)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Len(t, reloaded.Items(), 1)
	after, err := os.ReadFile(reloaded.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed remove must not rewrite the file")

	// re-add id=1 with a new amount: replaced, not duplicated
	require.NoError(t, reloaded.Add(testTransaction(1, "200.00")))
	items = reloaded.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(dec("200.00")))
}

func TestFileCache_IdempotentUpsert(t *testing.T) {
	c := newTestCache(t)
	tx := testTransaction(1, "10.00")

	require.NoError(t, c.Add(tx))
	first, err := os.ReadFile(c.Path())
	require.NoError(t, err)

	require.NoError(t, c.Add(tx))
	second, err := os.ReadFile(c.Path())
	require.NoError(t, err)

	assert.Len(t, c.Items(), 1)
	assert.Equal(t, first, second, "re-adding the same record must not change the file")
}

func TestFileCache_UpsertPreservesPosition(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Add(testTransaction(1, "1.00")))
	require.NoError(t, c.Add(testTransaction(2, "2.00")))
	require.NoError(t, c.Add(testTransaction(3, "3.00")))

	require.NoError(t, c.Add(testTransaction(2, "22.00")))
	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{items[0].ID, items[1].ID, items[2].ID}, []int{1, 2, 3})
	assert.True(t, items[1].Amount.Equal(dec("22.00")))
}

func TestFileCache_LoadAfterSaveIdentity(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Add(testTransaction(1, "1.00")))
	require.NoError(t, c.Add(testTransaction(2, "2.00")))
	require.NoError(t, c.Add(testTransaction(3, "3.00")))
	require.NoError(t, c.Remove(2))

	fresh := NewFileCache(WithPath(c.Path()))
	want := c.Items()
	got := fresh.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, got[i].Equal(want[i]), "item %d differs after reload", i)
	}
}

func TestFileCache_CorruptElementTolerance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")

	good1, err := json.Marshal(testTransaction(1, "1.00").Tree())
	require.NoError(t, err)
	good2, err := json.Marshal(testTransaction(2, "2.00").Tree())
	require.NoError(t, err)
	content := `[` + string(good1) + `,{"id":"oops"},` + string(good2) + `]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := NewFileCache(WithPath(path))
	items := c.Items()
	require.Len(t, items, 2, "well-formed elements load, the corrupt one is skipped")
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)

	skipped, err := c.Load()
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)
}

func TestFileCache_NonArrayFileIsSerializationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	// construction swallows the failure into an empty cache
	c := NewFileCache(WithPath(path))
	assert.Empty(t, c.Items())

	// an explicit Load surfaces it
	_, err := c.Load()
	assert.True(t, errors.Is(err, ErrSerialization), "error = %v", err)
}

func TestFileCache_GarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	c := NewFileCache(WithPath(path))
	assert.Empty(t, c.Items())
}

func TestFileCache_ClearCacheFile(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Add(testTransaction(1, "1.00")))
	require.NoError(t, c.ClearCacheFile())

	assert.Empty(t, c.Items())
	_, err := os.Stat(c.Path())
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// deleting a nonexistent file is a no-op
	require.NoError(t, c.ClearCacheFile())
}

func TestFileCache_SaveIsAtomicReplace(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Add(testTransaction(1, "1.00")))
	require.NoError(t, c.Add(testTransaction(2, "2.00")))

	// no temp files are left behind next to the cache
	entries, err := os.ReadDir(filepath.Dir(c.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(c.Path()), entries[0].Name())
}

func TestFileCache_WithLocker(t *testing.T) {
	var mu sync.Mutex
	c := NewFileCache(
		WithPath(filepath.Join(t.TempDir(), "transactions.json")),
		WithLocker(&mu),
	)

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = c.Add(testTransaction(id, "1.00"))
		}(i)
	}
	wg.Wait()
	assert.Len(t, c.Items(), 8)
}

func TestFileCache_DefaultPathNeverFails(t *testing.T) {
	c := NewFileCache(WithFileName("balance-cache-test.json"))
	require.NotEmpty(t, c.Path())
	t.Cleanup(func() { _ = c.ClearCacheFile() })

	require.NoError(t, c.Add(testTransaction(1, "1.00")))
	assert.Len(t, c.Items(), 1)
}
