package mock

import (
	"context"

	"github.com/fwojciec/htmlpatch"
)

var (
	_ htmlpatch.MetaStore     = (*MetaStore)(nil)
	_ htmlpatch.DocumentStore = (*DocumentStore)(nil)
)

// MetaStore is a mock implementation of htmlpatch.MetaStore.
type MetaStore struct {
	LoadFn    func(ctx context.Context, path string) (*htmlpatch.DocumentMeta, error)
	SaveFn    func(ctx context.Context, path string, meta *htmlpatch.DocumentMeta) error
	PathForFn func(dir, sourcePath string) string
}

func (s *MetaStore) Load(ctx context.Context, path string) (*htmlpatch.DocumentMeta, error) {
	return s.LoadFn(ctx, path)
}

func (s *MetaStore) Save(ctx context.Context, path string, meta *htmlpatch.DocumentMeta) error {
	return s.SaveFn(ctx, path, meta)
}

func (s *MetaStore) PathFor(dir, sourcePath string) string {
	return s.PathForFn(dir, sourcePath)
}

// DocumentStore is a mock implementation of htmlpatch.DocumentStore.
type DocumentStore struct {
	ReadFn  func(ctx context.Context, path string) ([]byte, error)
	WriteFn func(ctx context.Context, path string, content []byte) error
}

func (s *DocumentStore) Read(ctx context.Context, path string) ([]byte, error) {
	return s.ReadFn(ctx, path)
}

func (s *DocumentStore) Write(ctx context.Context, path string, content []byte) error {
	return s.WriteFn(ctx, path, content)
}
