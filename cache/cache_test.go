package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestGetMiss(t *testing.T) {
	kv := openTestKV(t)

	_, err := kv.Get(context.Background(), KeyProjects)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestPutGetOverwrite(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, KeyLegal, `{"impressum":"a"}`))

	got, err := kv.Get(ctx, KeyLegal)
	require.NoError(t, err)
	assert.Equal(t, `{"impressum":"a"}`, got)

	// last write wins
	require.NoError(t, kv.Put(ctx, KeyLegal, `{"impressum":"b"}`))
	got, err = kv.Get(ctx, KeyLegal)
	require.NoError(t, err)
	assert.Equal(t, `{"impressum":"b"}`, got)
}
