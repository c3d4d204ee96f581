package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "http://localhost:8080/")
	require.NoError(t, err)

	obj, err := l.Put(context.Background(), "riders/r1/identity/1-id.jpg", "image/jpeg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)

	assert.Equal(t, "riders/r1/identity/1-id.jpg", obj.Key)
	assert.Equal(t, "http://localhost:8080/uploads/riders/r1/identity/1-id.jpg", obj.URL)
	assert.Equal(t, int64(9), obj.Bytes)

	b, err := os.ReadFile(filepath.Join(root, "riders", "r1", "identity", "1-id.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(b))

	require.NoError(t, l.Delete(context.Background(), obj.Key))
	_, err = os.Stat(filepath.Join(root, "riders", "r1", "identity", "1-id.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocal_PutRefusesOverwrite(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "")
	require.NoError(t, err)

	_, err = l.Put(context.Background(), "a/b.pdf", "application/pdf", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = l.Put(context.Background(), "a/b.pdf", "application/pdf", strings.NewReader("two"))
	assert.Error(t, err)
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"../outside.txt", "a/../../outside.txt", "", "."} {
		_, err := l.Put(context.Background(), key, "image/png", strings.NewReader("x"))
		assert.Error(t, err, key)
	}
}

func TestResourceType(t *testing.T) {
	assert.Equal(t, "image", resourceType("image/png"))
	assert.Equal(t, "image", resourceType("application/pdf"))
	assert.Equal(t, "auto", resourceType("text/plain"))
}
