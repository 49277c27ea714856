// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scienceparse/pkg/types"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := openTestStore(t)
	pages, ok, err := s.Get(context.Background(), "https://example.com/a.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, pages)
}

func TestStore_PutGet(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	url := "https://example.com/a.pdf"
	want := types.PageText{"1. Introduction\nCafé ünïcode", "page two"}

	require.NoError(t, s.Put(ctx, url, want))
	got, ok, err := s.Get(ctx, url)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestStore_PutReplaces(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	url := "https://example.com/a.pdf"

	require.NoError(t, s.Put(ctx, url, types.PageText{"old"}))
	require.NoError(t, s.Put(ctx, url, types.PageText{"new", "pages"}))

	got, _, err := s.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, types.PageText{"new", "pages"}, got)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "u", types.PageText{"kept"}))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.PageText{"kept"}, got)
}
