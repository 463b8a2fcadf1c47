// Package store persists named collections as JSON files on local disk.
//
// Layout:
//
//	data_dir/
//	  documents.json
//	  sessions.json
//	  reviews.json
//	  users.json
//	  notifications.json
//
// Load and Save are independent operations: a caller that loads, edits and
// saves without holding Lock races with other writers of the same collection
// and the last save wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/metrics"
)

var (
	// ErrRead matches every *ReadError.
	ErrRead = errors.New("collection read failed")
	// ErrWrite matches every *WriteError.
	ErrWrite = errors.New("collection write failed")
)

// ReadError reports a collection that could not be read or decoded.
type ReadError struct {
	Collection string
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read collection %s: %v", e.Collection, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRead) hold.
func (e *ReadError) Is(target error) bool { return target == ErrRead }

// WriteError reports a collection that could not be encoded or written.
type WriteError struct {
	Collection string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write collection %s: %v", e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrWrite) hold.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// FileStore keeps one JSON file per collection under dir.
type FileStore struct {
	dir     string
	log     *zap.Logger
	metrics metrics.Recorder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory and collection
// files are expected to exist already.
func NewFileStore(dir string, log *zap.Logger, rec metrics.Recorder) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &FileStore{
		dir:     dir,
		log:     log,
		metrics: rec,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Path returns the file backing the named collection.
func (s *FileStore) Path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load returns the raw contents of the collection file.
func (s *FileStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Collection: collection, Err: err}
	}

	data, err := os.ReadFile(s.Path(collection))
	s.metrics.RecordStoreOp(collection, "load", err)
	if err != nil {
		s.log.Error("failed to read collection", zap.String("collection", collection), zap.Error(err))
		return nil, &ReadError{Collection: collection, Err: err}
	}

	s.log.Debug("collection loaded", zap.String("collection", collection), zap.Int("bytes", len(data)))
	return data, nil
}

// Save replaces the collection file with data. The new contents are written
// to a temporary file in the same directory and renamed over the old file,
// so a failed save leaves the previous contents intact.
func (s *FileStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Collection: collection, Err: err}
	}

	err := s.writeFile(s.Path(collection), data)
	s.metrics.RecordStoreOp(collection, "save", err)
	if err != nil {
		s.log.Error("failed to write collection", zap.String("collection", collection), zap.Error(err))
		return &WriteError{Collection: collection, Err: err}
	}

	s.log.Debug("collection saved", zap.String("collection", collection), zap.Int("bytes", len(data)))
	return nil
}

func (s *FileStore) writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace collection file: %w", err)
	}
	return nil
}

// Exists reports whether the collection file is present.
func (s *FileStore) Exists(collection string) (bool, error) {
	_, err := os.Stat(s.Path(collection))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Lock acquires the write lock of the named collection and returns the
// function that releases it.
func (s *FileStore) Lock(collection string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
