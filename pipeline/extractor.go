package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fwojciec/htmlpatch"
)

// Extractor turns one HTML document into a metadata record awaiting
// rewriting.
type Extractor struct {
	Segmenter htmlpatch.Segmenter
	Documents htmlpatch.DocumentStore
	Backups   htmlpatch.BackupService
	Meta      htmlpatch.MetaStore
	Now       func() time.Time
}

// Extract backs up the document at htmlPath, segments it and saves the
// record as <stem>_meta.json in outDir with status pending_rewrite. When
// the segmenter stamps markers the annotated document replaces the source.
// Returns the record and its path.
func (e *Extractor) Extract(ctx context.Context, htmlPath, outDir string) (*htmlpatch.DocumentMeta, string, error) {
	path, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", htmlPath, err)
	}

	snap, err := e.Backups.Backup(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("backup %s: %w", path, err)
	}

	content, err := e.Documents.Read(ctx, path)
	if err != nil {
		return nil, "", err
	}

	result, err := e.Segmenter.Segment(string(content))
	if err != nil {
		return nil, "", fmt.Errorf("segment %s: %w", path, err)
	}

	if result.HTML != "" && result.HTML != string(content) {
		if err := e.Documents.Write(ctx, path, []byte(result.HTML)); err != nil {
			return nil, "", fmt.Errorf("write markers to %s: %w", path, err)
		}
	}

	meta := &htmlpatch.DocumentMeta{
		SourceFile:          path,
		SourceHash:          snap.Hash,
		BackupPath:          snap.Path,
		OriginalTitle:       result.Title,
		OriginalDescription: result.Description,
		Sections:            result.Sections,
		TotalSections:       len(result.Sections),
		ExtractedAt:         clock(e.Now),
		Status:              htmlpatch.StatusPendingRewrite,
	}

	metaPath := e.Meta.PathFor(outDir, path)
	if err := e.Meta.Save(ctx, metaPath, meta); err != nil {
		return nil, "", fmt.Errorf("save %s: %w", metaPath, err)
	}
	return meta, metaPath, nil
}
