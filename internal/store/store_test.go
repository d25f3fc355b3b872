package store

import (
	"context"
	"errors"
	"maps"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := New(context.Background(), db, "teststore")
	require.NoError(t, err)
	return s
}

func TestNewBadName(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"", "drop table", "x;--", "stats1"} {
		_, err := New(context.Background(), db, name)
		assert.ErrorIs(t, err, ErrBadName, name)
	}
}

func TestStoreReadEmpty(t *testing.T) {
	s := setupTestStore(t)

	var nothing struct{}
	assert.ErrorIs(t, s.Get(context.Background(), "some key", &nothing), ErrNotFound)
}

func TestStoreWriteAndReadStruct(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	type Box struct {
		Name  string
		Array []int64
		Inner *Box
	}
	val := Box{
		Name:  "some name",
		Array: []int64{1, 2, 3},
		Inner: &Box{Name: "other name"},
	}
	require.NoError(t, s.Set(ctx, "key", val))

	var got Box
	require.NoError(t, s.Get(ctx, "key", &got))
	assert.Equal(t, val, got)

	assert.NoError(t, s.Get(ctx, "key", nil))
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	r := rand.New(rand.NewPCG(1, 2))
	require.NoError(t, s.Set(ctx, "key", r.Int32()))
	val := r.Int32()
	require.NoError(t, s.Set(ctx, "key", val))

	var got int32
	require.NoError(t, s.Get(ctx, "key", &got))
	assert.Equal(t, val, got)
}

func TestStoreReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	for range 3 {
		var n int
		require.NoError(t, s.Update(ctx, "counter", &n, func() error {
			n++
			return nil
		}))
	}
	var n int
	require.NoError(t, s.Get(ctx, "counter", &n))
	assert.Equal(t, 3, n)

	errStop := errors.New("stop")
	err := s.Update(ctx, "counter", &n, func() error { return errStop })
	assert.ErrorIs(t, err, errStop)
	require.NoError(t, s.Get(ctx, "counter", &n))
	assert.Equal(t, 3, n)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.Delete(ctx, "something"))

	require.NoError(t, s.Set(ctx, "key", 1337))
	require.NoError(t, s.Delete(ctx, "key"))
	var got int
	assert.ErrorIs(t, s.Get(ctx, "key", &got), ErrNotFound)
}

func TestStoreCountAndKeys(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	rows := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	for key, value := range rows {
		require.NoError(t, s.Set(ctx, key, value))
	}

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(rows), count)

	delete(rows, "a")
	require.NoError(t, s.Delete(ctx, "a"))

	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(rows), count)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, slices.Sorted(maps.Keys(rows)), keys)
}
