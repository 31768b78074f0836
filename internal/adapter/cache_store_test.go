package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "colfmt.dev/pkg/colfmt/internal/model"
)

func TestYAMLCacheStore_RoundTrip(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "nested", ".colfmt-cache.yaml"))
	store := NewCacheStore()

	cache := NewCache()
	cache.Put(m.OperationAlign, "/src/a.py", "h1", "fmt_tags=false")
	cache.Put(m.OperationMark, "/src/a.py", "h2", "threshold=0.5")

	require.NoError(t, store.Save(path, cache))

	loaded, err := store.Load(path)
	require.NoError(t, err)

	src := m.Source{Origin: &m.File{FullPath: "/src/a.py", Hash: "h1"}}
	assert.True(t, loaded.Fresh(m.OperationAlign, src, "fmt_tags=false"))
	assert.False(t, loaded.Fresh(m.OperationAlign, src, "fmt_tags=true"), "settings changed")
	assert.False(t, loaded.Fresh(m.OperationMark, src, "threshold=0.5"), "hash changed")
	assert.False(t, loaded.Fresh(m.OperationUnmark, src, ""))
	assert.False(t, loaded.Fresh(m.OperationAlign, m.Source{}, ""))
}

func TestYAMLCacheStore_LoadMissingFile(t *testing.T) {
	cache, err := NewCacheStore().Load(m.Path(filepath.Join(t.TempDir(), "none.yaml")))
	require.NoError(t, err)
	assert.Empty(t, cache.Entries)
	assert.Equal(t, cacheVersion, cache.Version)
}

func TestYAMLCacheStore_LoadOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\nentries:\n  align:\n    /a.py:\n      hash: x\n"), 0o600))

	cache, err := NewCacheStore().Load(m.Path(path))
	require.NoError(t, err)
	assert.Empty(t, cache.Entries)
}

func TestYAMLCacheStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [\n"), 0o600))

	_, err := NewCacheStore().Load(m.Path(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse cache")
}

func TestCache_Forget(t *testing.T) {
	cache := NewCache()
	cache.Put(m.OperationAlign, "/a.py", "h", "")
	cache.Put(m.OperationUnmark, "/a.py", "h", "")
	cache.Put(m.OperationAlign, "/b.py", "h", "")

	cache.Forget("/a.py")

	assert.NotContains(t, cache.Entries[m.OperationAlign], "/a.py")
	assert.NotContains(t, cache.Entries[m.OperationUnmark], "/a.py")
	assert.Contains(t, cache.Entries[m.OperationAlign], "/b.py")
}

func TestCache_PutOnZeroValue(t *testing.T) {
	var cache Cache
	cache.Put(m.OperationAlign, "/a.py", "h", "")

	assert.Equal(t, CacheEntry{Hash: "h"}, cache.Entries[m.OperationAlign]["/a.py"])
}
