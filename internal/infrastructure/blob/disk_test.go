package blob

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_UploadYPublicURL(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "https://mdcpro.example/")
	require.NoError(t, err)

	rel, err := store.Upload("user-42", "avatar.PNG", strings.NewReader("imagen"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "user-42/"), "ruta: %s", rel)
	assert.True(t, strings.HasSuffix(rel, ".png"), "la extensión se normaliza a minúsculas")

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "imagen", string(data))

	url := store.PublicURL(rel)
	assert.Equal(t, "https://mdcpro.example/uploads/"+rel, url)
}

func TestDiskStore_UploadsNoColisionan(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	a, err := store.Upload("u1", "foto.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Upload("u1", "foto.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDiskStore_OwnerSanitizado(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	rel, err := store.Upload("../../etc", "x.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "etc/"), "los separadores se eliminan: %s", rel)

	_, err = store.Upload("../..", "x.txt", strings.NewReader("x"))
	assert.Error(t, err, "owner que queda vacío tras sanear se rechaza")
}

func TestDiskStore_Delete(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	rel, err := store.Upload("u1", "doc.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(rel))
	_, statErr := os.Stat(filepath.Join(store.BaseDir(), filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(statErr))

	assert.NoError(t, store.Delete(rel), "borrar dos veces no falla")
	assert.Error(t, store.Delete("../fuera"), "rutas fuera del baseDir se rechazan")
}
