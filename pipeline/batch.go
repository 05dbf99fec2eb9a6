package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fwojciec/htmlpatch"
)

// BatchProcessor runs extraction and update over every document below a
// folder, one document at a time. Progress is persisted after every
// document and a failing document never stops the batch.
type BatchProcessor struct {
	Batches   htmlpatch.BatchService
	Extractor *Extractor
	Updater   *Updater

	// Discover lists the documents below a folder in processing order.
	Discover func(folder string) ([]string, error)

	Now func() time.Time
}

// BatchResult holds the outcome of one batch run.
type BatchResult struct {
	Batch     *htmlpatch.Batch
	Succeeded int
	Failed    int
	Skipped   int
}

// Parse discovers the documents below folder, records them as a new batch
// and extracts each one. Records go to outDir/<parent folder name>/.
func (p *BatchProcessor) Parse(ctx context.Context, folder, outDir string, progress ProgressFunc) (*BatchResult, error) {
	root, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", folder, err)
	}

	paths, err := p.Discover(root)
	if err != nil {
		return nil, err
	}

	batch := &htmlpatch.Batch{
		SourceFolder: root,
		OutputDir:    outDir,
		Status:       htmlpatch.BatchPending,
	}
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		batch.Files = append(batch.Files, &htmlpatch.BatchFile{
			Source:       path,
			RelativePath: rel,
			Name:         filepath.Base(path),
		})
	}

	if err := p.Batches.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	return p.parse(ctx, batch, progress)
}

// Resume extracts the documents of an existing batch that are still
// pending.
func (p *BatchProcessor) Resume(ctx context.Context, batchID string, progress ProgressFunc) (*BatchResult, error) {
	batch, err := p.Batches.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return p.parse(ctx, batch, progress)
}

func (p *BatchProcessor) parse(ctx context.Context, batch *htmlpatch.Batch, progress ProgressFunc) (*BatchResult, error) {
	pending := htmlpatch.FilePending
	files, err := p.Batches.FindBatchFiles(ctx, htmlpatch.BatchFileFilter{BatchID: &batch.ID, Status: &pending})
	if err != nil {
		return nil, err
	}

	res := &BatchResult{}
	total := len(files)
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outDir := filepath.Join(batch.OutputDir, filepath.Base(filepath.Dir(f.Source)))
		meta, metaPath, err := p.Extractor.Extract(ctx, f.Source, outDir)
		if err != nil {
			res.Failed++
			if err := p.fail(ctx, f, err); err != nil {
				return nil, err
			}
			progress.emit(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, Path: f.Source, Error: err})
			continue
		}

		status := htmlpatch.FileParsed
		sections := len(meta.Sections)
		noError := ""
		if _, err := p.Batches.UpdateBatchFile(ctx, f.ID, htmlpatch.BatchFileUpdate{
			MetaFile: &metaPath,
			Status:   &status,
			Sections: &sections,
			Error:    &noError,
		}); err != nil {
			return nil, fmt.Errorf("record progress: %w", err)
		}
		res.Succeeded++
		progress.emit(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, Path: f.Source, Sections: sections})
	}

	all, err := p.Batches.FindBatchFiles(ctx, htmlpatch.BatchFileFilter{BatchID: &batch.ID})
	if err != nil {
		return nil, err
	}
	counts := htmlpatch.CountByStatus(all)
	status := htmlpatch.BatchParsed
	if counts[htmlpatch.FileFailed] > 0 || counts[htmlpatch.FilePending] > 0 {
		status = htmlpatch.BatchPartial
	}
	if res.Batch, err = p.finish(ctx, batch.ID, status); err != nil {
		return nil, err
	}

	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return res, nil
}

// Update applies every document of a batch whose record has been confirmed
// as rewritten. Such documents are marked rewritten before the update runs.
// Documents not yet rewritten are skipped and keep their status. Documents
// whose earlier update failed are retried.
func (p *BatchProcessor) Update(ctx context.Context, batchID string, progress ProgressFunc) (*BatchResult, error) {
	batch, err := p.Batches.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	all, err := p.Batches.FindBatchFiles(ctx, htmlpatch.BatchFileFilter{BatchID: &batch.ID})
	if err != nil {
		return nil, err
	}
	var files []*htmlpatch.BatchFile
	for _, f := range all {
		if updatable(f) {
			files = append(files, f)
		}
	}

	res := &BatchResult{}
	total := len(files)
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := p.updateFile(ctx, f)
		switch {
		case htmlpatch.ErrorCode(err) == htmlpatch.ENOTREADY:
			res.Skipped++
			progress.emit(ProgressEvent{Type: ProgressSkipped, Completed: i + 1, Total: total, Path: f.Source})
			continue
		case err != nil:
			res.Failed++
			if err := p.fail(ctx, f, err); err != nil {
				return nil, err
			}
			progress.emit(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, Path: f.Source, Error: err})
			continue
		}

		status := htmlpatch.FileUpdated
		noError := ""
		if _, err := p.Batches.UpdateBatchFile(ctx, f.ID, htmlpatch.BatchFileUpdate{Status: &status, Error: &noError}); err != nil {
			return nil, fmt.Errorf("record progress: %w", err)
		}
		res.Succeeded++
		event := ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, Path: f.Source}
		if result.Stats != nil {
			event.Sections = result.Stats.Sections
		}
		progress.emit(event)
	}

	all, err = p.Batches.FindBatchFiles(ctx, htmlpatch.BatchFileFilter{BatchID: &batch.ID})
	if err != nil {
		return nil, err
	}
	status := htmlpatch.BatchUpdated
	if htmlpatch.CountByStatus(all)[htmlpatch.FileUpdated] != len(all) {
		status = htmlpatch.BatchPartial
	}
	if res.Batch, err = p.finish(ctx, batch.ID, status); err != nil {
		return nil, err
	}

	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return res, nil
}

// updateFile marks f rewritten once its record is confirmed, then applies
// the record to the document.
func (p *BatchProcessor) updateFile(ctx context.Context, f *htmlpatch.BatchFile) (*Result, error) {
	meta, err := p.Updater.Preview(ctx, f.MetaFile)
	if err != nil {
		return nil, err
	}
	if !meta.Ready() {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTREADY, "%s is not rewritten yet", f.MetaFile)
	}
	if f.Status != htmlpatch.FileRewritten {
		rewritten := htmlpatch.FileRewritten
		if _, err := p.Batches.UpdateBatchFile(ctx, f.ID, htmlpatch.BatchFileUpdate{Status: &rewritten}); err != nil {
			return nil, fmt.Errorf("record progress: %w", err)
		}
	}
	return p.Updater.Update(ctx, f.MetaFile)
}

// updatable reports whether f has a record that an update run may apply.
// Files that failed extraction have no record and need a fresh parse.
func updatable(f *htmlpatch.BatchFile) bool {
	if f.MetaFile == "" {
		return false
	}
	switch f.Status {
	case htmlpatch.FileParsed, htmlpatch.FileRewritten, htmlpatch.FileFailed:
		return true
	}
	return false
}

// fail records cause on a batch file.
func (p *BatchProcessor) fail(ctx context.Context, f *htmlpatch.BatchFile, cause error) error {
	status := htmlpatch.FileFailed
	msg := htmlpatch.ErrorMessage(cause)
	if htmlpatch.ErrorCode(cause) == htmlpatch.EINTERNAL {
		msg = cause.Error()
	}
	if _, err := p.Batches.UpdateBatchFile(ctx, f.ID, htmlpatch.BatchFileUpdate{Status: &status, Error: &msg}); err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return nil
}

func (p *BatchProcessor) finish(ctx context.Context, id string, status htmlpatch.BatchStatus) (*htmlpatch.Batch, error) {
	now := clock(p.Now)
	batch, err := p.Batches.UpdateBatch(ctx, id, htmlpatch.BatchUpdate{Status: &status, CompletedAt: &now})
	if err != nil {
		return nil, fmt.Errorf("update batch: %w", err)
	}
	return batch, nil
}
