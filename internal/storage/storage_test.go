package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoStore_Unit(t *testing.T) {
	// No disk I/O is performed with an in-memory filesystem.
	memFs := afero.NewMemMapFs()
	store := NewAferoStore(memFs)
	ctx := context.Background()

	key := "drafts/abc/photo.png"
	content := "\x89PNG fake image bytes"

	t.Run("Save", func(t *testing.T) {
		n, err := store.Save(ctx, key, bytes.NewReader([]byte(content)))
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), n)

		readBytes, err := afero.ReadFile(memFs, key)
		require.NoError(t, err)
		assert.Equal(t, content, string(readBytes))
	})

	t.Run("Get", func(t *testing.T) {
		f, err := store.Get(ctx, key)
		require.NoError(t, err)
		defer f.Close()

		readBytes, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, content, string(readBytes))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))

		exists, err := afero.Exists(memFs, key)
		require.NoError(t, err)
		assert.False(t, exists, "file should not exist after deleting")
	})

	t.Run("Delete missing key", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "drafts/nothing/here.png"))
	})

	t.Run("Get missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "drafts/nothing/here.png")
		assert.Error(t, err)
	})
}

func TestNew_OnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "drafts/x/a.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)

	exists, err := afero.Exists(afero.NewOsFs(), dir+"/drafts/x/a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDraftKey(t *testing.T) {
	key := DraftKey("draft-1", "../../Minha Foto.PNG")
	assert.True(t, strings.HasPrefix(key, "drafts/draft-1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotContains(t, key, "..")
	assert.NotEqual(t, key, DraftKey("draft-1", "foto.png"))
}

func TestDraftKey_DropsUnsafeExtensions(t *testing.T) {
	for _, name := range []string{"foto.~png", "foto.p/ng", "foto." + strings.Repeat("x", 20), "foto"} {
		key := DraftKey("draft-1", name)
		assert.Equal(t, "", filepath.Ext(key), name)
		assert.NotContains(t, key, "~", name)
	}
}
