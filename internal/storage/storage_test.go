package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	fs := NewFile(filepath.Join(t.TempDir(), "state.json"))

	_, ok, err := fs.Load()
	require.NoError(t, err)
	assert.False(t, ok, "fresh install has no state")

	require.NoError(t, fs.Save([]byte(`{"products":[]}`)))
	data, ok, err := fs.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"products":[]}`, string(data))
}

func TestGormStorageRoundTrip(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	g, err := OpenGorm(dsn)
	require.NoError(t, err)

	_, ok, err := g.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.Save([]byte("one")))
	require.NoError(t, g.Save([]byte("two")), "second save overwrites the single key")

	data, ok, err := g.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(data))
}
