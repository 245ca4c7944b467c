// Package objectstore declares the object-store collaborator's contract.
// Uploading source PDFs to durable object storage is explicitly out of
// scope for the reconstruction core (spec.md SS1): the core only ever
// receives PDF bytes that some caller already has in hand. LocalStore
// below is a thin, filesystem-backed adapter good enough for local runs
// and tests; a production deployment swaps in an S3/GCS-backed
// implementation of the same contract.
package objectstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eurostatements/statementcore/internal/common"
)

// ObjectStore uploads original PDF bytes keyed by a name-space UUID
// derived from the source URL, and returns the URL the bytes can be
// fetched back from.
type ObjectStore interface {
	Put(sourceURL string, tag string, data []byte) (string, error)
}

// LocalStore implements ObjectStore by writing to a directory on disk,
// naming each file after the same namespaced UUID key
// internal/common.NewObjectKey derives for any other collaborator
// keying off the same (sourceURL, tag) pair.
type LocalStore struct {
	dir string
}

// NewLocalStore builds a LocalStore rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: create root %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Put derives a namespaced key from sourceURL and tag, writes data under
// that key and returns a file:// URL to it.
func (s *LocalStore) Put(sourceURL string, tag string, data []byte) (string, error) {
	key := common.NewObjectKey(sourceURL, tag)
	path := filepath.Join(s.dir, key+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("objectstore: write %s: %w", path, err)
	}
	return "file://" + path, nil
}
