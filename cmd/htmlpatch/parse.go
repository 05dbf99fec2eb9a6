package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/htmlpatch"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	out := c.Out
	if out == "" {
		out = filepath.Dir(c.File)
	}

	fmt.Fprintf(deps.Stdout, "Parsing %s\n", c.File)
	meta, metaPath, err := deps.Extractor.Extract(deps.Ctx, c.File, out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Backup: %s\n", meta.BackupPath)
	fmt.Fprintf(deps.Stdout, "  Extracted %d sections\n", len(meta.Sections))
	for _, s := range meta.Sections {
		tag := s.HeadingTag
		if tag == "" {
			tag = "intro"
		}
		fmt.Fprintf(deps.Stdout, "    [%d] %s %s (%d paragraphs)\n",
			s.Index, tag, htmlpatch.Ellipsize(s.HeadingText, 60), len(s.Paragraphs))
	}
	fmt.Fprintf(deps.Stdout, "  Saved %s\n", metaPath)
	fmt.Fprintf(deps.Stdout, "Next: htmlpatch prepare %s\n", metaPath)
	return nil
}
