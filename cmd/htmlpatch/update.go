package main

import (
	"fmt"

	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/pipeline"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	if c.DryRun {
		meta, err := deps.Updater.Preview(deps.Ctx, c.Meta)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
			return err
		}
		if !meta.Ready() {
			return notRewritten(deps, c.Meta, meta.Status)
		}
		fmt.Fprintln(deps.Stdout, "Preview:")
		fmt.Fprintln(deps.Stdout, htmlpatch.FormatPreview(meta))
		return nil
	}

	res, err := deps.Updater.Update(deps.Ctx, c.Meta)
	if htmlpatch.ErrorCode(err) == htmlpatch.ENOTREADY {
		return notRewritten(deps, c.Meta, "")
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		if res != nil && res.State == pipeline.StateRolledBack {
			fmt.Fprintf(deps.Stderr, "Restored %s from %s\n", res.Source, res.Snapshot.Path)
		}
		return err
	}

	stats := res.Stats
	fmt.Fprintf(deps.Stdout, "Updated %s\n", res.Source)
	fmt.Fprintf(deps.Stdout, "  Title: %s\n", yesNo(stats.Title))
	fmt.Fprintf(deps.Stdout, "  Description: %s\n", yesNo(stats.Description))
	fmt.Fprintf(deps.Stdout, "  Sections: %d\n", stats.Sections)
	fmt.Fprintf(deps.Stdout, "  Headings: %d\n", stats.Headings)
	fmt.Fprintf(deps.Stdout, "  Paragraphs: %d\n", stats.Paragraphs)
	if stats.LowConfidence > 0 {
		fmt.Fprintf(deps.Stdout, "  Low confidence: %d (review the result)\n", stats.LowConfidence)
	}
	if len(stats.Skipped) > 0 {
		fmt.Fprintf(deps.Stdout, "  Not matched: %v\n", stats.Skipped)
	}
	fmt.Fprintf(deps.Stdout, "Backup: %s\n", res.Snapshot.Path)
	fmt.Fprintf(deps.Stdout, "To undo: htmlpatch rollback %s\n", c.Meta)
	return nil
}

func notRewritten(deps *Dependencies, metaPath string, status htmlpatch.Status) error {
	msg := "content not rewritten yet"
	if status != "" {
		msg = fmt.Sprintf("content not rewritten yet (status %s)", status)
	}
	fmt.Fprintf(deps.Stderr, "error: %s. Run 'htmlpatch prepare %s' and set the status to rewritten.\n", msg, metaPath)
	return htmlpatch.Errorf(htmlpatch.ENOTREADY, "%s", msg)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
