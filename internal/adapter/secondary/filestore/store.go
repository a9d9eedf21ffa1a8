package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

const filePerm = 0o600

// Store implements secondary.KeyValueStore with one file per key inside a
// directory. It is not safe for concurrent writers of the same key.
type Store struct {
	dir    string
	logger *zap.Logger
}

var _ secondary.KeyValueStore = (*Store)(nil)

// NewStore creates the directory if needed and returns a store rooted there.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory %q: %w", dir, err)
	}

	logger.Info("file store initialized", zap.String("dir", dir))
	return &Store{
		dir:    dir,
		logger: logger.Named("file-store"),
	}, nil
}

// Get returns the contents of the file for key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return data, nil
}

// Put replaces the file for key with value.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, value, filePerm); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}

	s.logger.Debug("value stored",
		zap.String("key", key),
		zap.Int("size", len(value)),
	)
	return nil
}

// Exists reports whether a file for key is present.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", key, err)
	}
	return true, nil
}

// path maps key to a file name inside dir. Keys are plain names.
func (s *Store) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid store key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
