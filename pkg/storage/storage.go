package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
var ErrFileTooLarge = errors.New("file exceeds maximum upload size")

// Config holds local storage settings.
type Config struct {
	// Dir is the directory files are written to.
	Dir string
	// MaxBytes caps the size of a single upload. Zero means no limit.
	MaxBytes int64
	// PublicPrefix is the URL path the directory is served under.
	PublicPrefix string
}

// LocalStore writes uploaded files to a local directory and hands back
// stable URLs under the public prefix.
type LocalStore struct {
	cfg Config
}

// NewLocalStore creates a LocalStore, making sure the directory exists.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = "/uploads"
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Dir, err)
	}
	return &LocalStore{cfg: cfg}, nil
}

// Save writes the reader's contents under a unique name derived from the
// original filename and returns the public URL. The random prefix keeps two
// uploads of the same filename from colliding.
func (s *LocalStore) Save(originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(originalName))
	path := filepath.Join(s.cfg.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	reader := r
	if s.cfg.MaxBytes > 0 {
		reader = io.LimitReader(r, s.cfg.MaxBytes+1)
	}

	written, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if s.cfg.MaxBytes > 0 && written > s.cfg.MaxBytes {
		os.Remove(path)
		return "", fmt.Errorf("file %s: %w", originalName, ErrFileTooLarge)
	}

	return s.cfg.PublicPrefix + "/" + name, nil
}

// Dir returns the directory the store writes to, for static serving.
func (s *LocalStore) Dir() string {
	return s.cfg.Dir
}
