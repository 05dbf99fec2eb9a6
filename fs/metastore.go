package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/htmlpatch"
)

// Ensure MetaStore implements htmlpatch.MetaStore at compile time.
var _ htmlpatch.MetaStore = (*MetaStore)(nil)

// MetaStore keeps metadata records as indented JSON files named
// <stem>_meta.json.
type MetaStore struct{}

// NewMetaStore creates a new MetaStore.
func NewMetaStore() *MetaStore {
	return &MetaStore{}
}

// PathFor returns dir/<stem>_meta.json for sourcePath.
func (s *MetaStore) PathFor(dir, sourcePath string) string {
	stem, _ := splitName(sourcePath)
	return filepath.Join(dir, stem+"_meta.json")
}

func (s *MetaStore) Load(ctx context.Context, path string) (*htmlpatch.DocumentMeta, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var meta htmlpatch.DocumentMeta
	if err := json.Unmarshal(content, &meta); err != nil {
		return nil, htmlpatch.Errorf(htmlpatch.EINVALID, "invalid metadata file %s: %v", path, err)
	}
	return &meta, nil
}

func (s *MetaStore) Save(ctx context.Context, path string, meta *htmlpatch.DocumentMeta) error {
	content, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	content = append(content, '\n')
	return writeFileAtomic(path, content)
}
