package objectstore

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.Put("https://example.test/report.pdf", "original", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Contains(t, url, "file://")

	path := url[len("file://"):]
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestLocalStorePutIsDeterministicForSameSourceAndTag(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url1, err := store.Put("https://example.test/report.pdf", "original", []byte("a"))
	require.NoError(t, err)
	url2, err := store.Put("https://example.test/report.pdf", "original", []byte("b"))
	require.NoError(t, err)

	assert.Equal(t, url1, url2)
}
