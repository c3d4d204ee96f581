package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local writes blobs under a directory on disk and serves them from baseURL.
// It exists for local development when no Cloudinary account is configured.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates the root directory if needed
func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root is the directory blobs are written under
func (l *Local) Root() string {
	return l.root
}

// Put writes body to root/key
func (l *Local) Put(ctx context.Context, key, contentType string, body io.Reader) (Object, error) {
	path, err := l.path(key)
	if err != nil {
		return Object{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Object{}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Object{}, err
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return Object{}, err
	}
	return Object{Key: key, URL: l.baseURL + "/uploads/" + filepath.ToSlash(key), Bytes: n}, nil
}

// Delete removes root/key
func (l *Local) Delete(ctx context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// path keeps every key inside root
func (l *Local) path(key string) (string, error) {
	root := filepath.Clean(l.root)
	p := filepath.Clean(filepath.Join(root, filepath.FromSlash(key)))
	if p == root || !strings.HasPrefix(p, root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return p, nil
}
