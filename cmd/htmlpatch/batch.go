package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/pipeline"
)

// Run executes the batch parse command.
func (c *BatchParseCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Parsing %s\n", c.Folder)
	res, err := deps.Processor.Parse(deps.Ctx, c.Folder, deps.OutDir, progressPrinter(deps, "parsed"))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	printBatchResult(deps, res, "Parsed")
	fmt.Fprintf(deps.Stdout, "Next: htmlpatch prepare <record>, then htmlpatch batch update %s\n", res.Batch.ID)
	return nil
}

// Run executes the batch resume command.
func (c *BatchResumeCmd) Run(deps *Dependencies) error {
	res, err := deps.Processor.Resume(deps.Ctx, c.ID, progressPrinter(deps, "parsed"))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	printBatchResult(deps, res, "Parsed")
	return nil
}

// Run executes the batch update command.
func (c *BatchUpdateCmd) Run(deps *Dependencies) error {
	res, err := deps.Processor.Update(deps.Ctx, c.ID, progressPrinter(deps, "updated"))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	printBatchResult(deps, res, "Updated")
	return nil
}

// Run executes the batch status command.
func (c *BatchStatusCmd) Run(deps *Dependencies) error {
	batch, err := deps.Batches.FindBatchByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}
	files, err := deps.Batches.FindBatchFiles(deps.Ctx, htmlpatch.BatchFileFilter{BatchID: &batch.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	sections := 0
	for _, f := range files {
		sections += f.Sections
	}
	counts := htmlpatch.CountByStatus(files)

	fmt.Fprintf(deps.Stdout, "Batch %s: %s\n", batch.ID, batch.Status)
	fmt.Fprintf(deps.Stdout, "  Source: %s\n", batch.SourceFolder)
	fmt.Fprintf(deps.Stdout, "  Output: %s\n", batch.OutputDir)
	fmt.Fprintf(deps.Stdout, "  Files: %d, sections: %d\n", batch.TotalFiles, sections)
	for _, s := range fileStatuses {
		fmt.Fprintf(deps.Stdout, "  %-10s %d\n", s+":", counts[s])
	}

	if counts[htmlpatch.FileFailed] > 0 {
		fmt.Fprintln(deps.Stdout, "Failed files:")
		for _, f := range files {
			if f.Status == htmlpatch.FileFailed {
				fmt.Fprintf(deps.Stdout, "  %s: %s\n", f.RelativePath, f.Error)
			}
		}
	}
	if counts[htmlpatch.FileParsed] > 0 {
		fmt.Fprintf(deps.Stdout, "Next: rewrite the records in %s, then htmlpatch batch update %s\n", batch.OutputDir, batch.ID)
	}
	return nil
}

// Run executes the batch list command.
func (c *BatchListCmd) Run(deps *Dependencies) error {
	if c.ID == "" {
		return listBatches(deps)
	}

	filter := htmlpatch.BatchFileFilter{BatchID: &c.ID}
	if c.Status != "" {
		status := htmlpatch.FileStatus(c.Status)
		if !slices.Contains(fileStatuses, status) {
			fmt.Fprintf(deps.Stderr, "error: unknown status %q\n", c.Status)
			return htmlpatch.Errorf(htmlpatch.EINVALID, "unknown status %q", c.Status)
		}
		filter.Status = &status
	}

	batch, err := deps.Batches.FindBatchByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}
	files, err := deps.Batches.FindBatchFiles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Files in batch %s (%d total):\n", batch.ID, batch.TotalFiles)
	for _, f := range files {
		fmt.Fprintf(deps.Stdout, "  [%-9s] %s (%d sections)\n", f.Status, f.RelativePath, f.Sections)
	}
	return nil
}

func listBatches(deps *Dependencies) error {
	batches, err := deps.Batches.FindBatches(deps.Ctx, htmlpatch.BatchFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	if len(batches) == 0 {
		fmt.Fprintln(deps.Stdout, "No batches found. Use 'htmlpatch batch parse' to create one.")
		return nil
	}

	for _, b := range batches {
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %d files  %s\n", b.ID, b.Status, b.TotalFiles, b.SourceFolder)
	}
	return nil
}

var fileStatuses = []htmlpatch.FileStatus{
	htmlpatch.FilePending,
	htmlpatch.FileParsed,
	htmlpatch.FileRewritten,
	htmlpatch.FileUpdated,
	htmlpatch.FileFailed,
}

func progressPrinter(deps *Dependencies, done string) pipeline.ProgressFunc {
	return func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d files\n", event.Total)
		case pipeline.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s %s (%d sections)\n", event.Completed, event.Total, done, event.Path, event.Sections)
		case pipeline.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] skip %s: not rewritten\n", event.Completed, event.Total, event.Path)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %v\n", event.Completed, event.Total, event.Path, event.Error)
		case pipeline.ProgressFinished:
			// Summary printed after the run completes
		}
	}
}

func printBatchResult(deps *Dependencies, res *pipeline.BatchResult, verb string) {
	fmt.Fprintf(deps.Stdout, "Batch %s: %s\n", res.Batch.ID, res.Batch.Status)
	fmt.Fprintf(deps.Stdout, "  %s: %d, failed: %d, skipped: %d\n", verb, res.Succeeded, res.Failed, res.Skipped)
}
