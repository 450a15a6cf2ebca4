// Package artifacts persists binary turn outputs (synthesized audio,
// generated images) under per-session directories and hands back URL paths
// that an embedding server can serve statically.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Kind names the artifact family and fixes its file extension.
type Kind string

const (
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

func (k Kind) extension() string {
	switch k {
	case KindAudio:
		return ".mp3"
	case KindImage:
		return ".png"
	}
	return ".bin"
}

type Store struct {
	root    string
	baseURL string
}

type Option func(*Store)

// WithBaseURL sets the URL prefix under which the embedding server exposes
// the store's root directory.
func WithBaseURL(baseURL string) Option {
	return func(s *Store) { s.baseURL = baseURL }
}

func NewStore(root string, opts ...Option) *Store {
	s := &Store{root: root, baseURL: "/assets"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put writes data under a fresh random name and returns the URL path it will
// be served from. Directories are created on demand and names never collide,
// so existing artifacts are never overwritten.
func (s *Store) Put(sessionID string, kind Kind, data []byte) (string, error) {
	name := uuid.NewString() + kind.extension()
	dir := filepath.Join(s.root, string(kind), sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating artifact directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("error creating artifact file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return "", fmt.Errorf("error writing artifact: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s/%s", s.baseURL, kind, sessionID, name), nil
}
