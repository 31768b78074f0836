package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Path    string
	Changed bool
	Blocks  int
	Err     string
}

func newTestSpill[T any](t *testing.T) FileSpill[T] {
	t.Helper()

	spill, err := NewFileSpillIn[T](t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() { _ = spill.Close() })

	return spill
}

func TestNewFileSpill(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)

	assert.Contains(t, spill.Path(), spillDirName)
	assert.FileExists(t, spill.Path())

	require.NoError(t, spill.Close())
	assert.NoFileExists(t, spill.Path())
}

func TestNewFileSpillIn_BadDirectory(t *testing.T) {
	file := t.TempDir() + "/file"
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewFileSpillIn[int](file + "/sub")
	require.Error(t, err)
}

func TestNewFileSpillIn_EmptyDirUsesTemp(t *testing.T) {
	spill, err := NewFileSpillIn[int]("")
	require.NoError(t, err)

	t.Cleanup(func() { _ = spill.Close() })

	assert.Equal(t, filepath.Join(os.TempDir(), spillDirName), filepath.Dir(spill.Path()))
}

func TestFileSpill_Append(t *testing.T) {
	dir := t.TempDir()

	spill, err := NewFileSpillIn[record](dir)
	require.NoError(t, err)

	t.Cleanup(func() { _ = spill.Close() })

	assert.Equal(t, dir, filepath.Dir(spill.Path()))

	require.NoError(t, spill.Append(record{Path: "a.py", Changed: true, Blocks: 2}))
	require.NoError(t, spill.Append(record{Path: "c.py", Err: "boom"}))
	assert.Equal(t, uint64(2), spill.Len())

	var got []record

	require.NoError(t, spill.Range(func(_ uint64, r record) error {
		got = append(got, r)
		return nil
	}))

	assert.Equal(t, []record{{Path: "a.py", Changed: true, Blocks: 2}, {Path: "c.py", Err: "boom"}}, got)
}

func TestFileSpill_RangeKeepsOrder(t *testing.T) {
	spill := newTestSpill[int](t)
	for _, v := range []int{5, 0, 7} {
		require.NoError(t, spill.Append(v))
	}

	var got []int

	require.NoError(t, spill.Range(func(i uint64, v int) error {
		assert.Equal(t, uint64(len(got)), i)
		got = append(got, v)

		return nil
	}))

	assert.Equal(t, []int{5, 0, 7}, got, "zero values are not carried over")
}

func TestFileSpill_RangeStopsOnError(t *testing.T) {
	spill := newTestSpill[int](t)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, spill.Append(v))
	}

	stop := errors.New("stop here")
	calls := 0

	err := spill.Range(func(_ uint64, _ int) error {
		calls++
		return stop
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestFileSpill_ConcurrentAppend(t *testing.T) {
	spill := newTestSpill[record](t)

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			assert.NoError(t, spill.Append(record{Blocks: i}))
		}()
	}

	wg.Wait()

	total := 0
	require.NoError(t, spill.Range(func(_ uint64, r record) error {
		total += r.Blocks
		return nil
	}))

	assert.Equal(t, uint64(20), spill.Len())
	assert.Equal(t, 190, total)
}

func TestFileSpill_Closed(t *testing.T) {
	spill, err := NewFileSpillIn[int](t.TempDir())
	require.NoError(t, err)
	require.NoError(t, spill.Append(1))

	require.NoError(t, spill.Close())
	require.NoError(t, spill.Close())

	require.ErrorIs(t, spill.Append(2), ErrClosed)
	require.ErrorIs(t, spill.Range(func(uint64, int) error { return nil }), ErrClosed)
}
