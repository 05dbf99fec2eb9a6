package fs

import (
	"context"

	"github.com/fwojciec/htmlpatch"
)

// Ensure DocumentStore implements htmlpatch.DocumentStore at compile time.
var _ htmlpatch.DocumentStore = (*DocumentStore)(nil)

// DocumentStore reads and atomically replaces HTML documents on disk.
type DocumentStore struct{}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

func (s *DocumentStore) Read(ctx context.Context, path string) ([]byte, error) {
	return readFile(path)
}

func (s *DocumentStore) Write(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomic(path, content)
}
