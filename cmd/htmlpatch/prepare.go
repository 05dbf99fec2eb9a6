package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/htmlpatch"
)

// Run executes the prepare command.
func (c *PrepareCmd) Run(deps *Dependencies) error {
	meta, err := deps.Meta.Load(deps.Ctx, c.Meta)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	only := make(map[int]bool, len(c.Sections))
	for _, i := range c.Sections {
		only[i] = true
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(deps.Stdout, "Loaded %d sections from %s\n\n", len(meta.Sections), meta.SourceFile)
	fmt.Fprintln(deps.Stdout, rule)
	fmt.Fprintln(deps.Stdout, "Rewrite the following sections:")
	fmt.Fprintln(deps.Stdout, rule)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, htmlpatch.FormatSections(meta.Sections, only))
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, rule)
	fmt.Fprintf(deps.Stdout, "Then fill in each rewritten section of %s:\n", c.Meta)
	fmt.Fprintln(deps.Stdout, `  "rewritten_heading": "..."`)
	fmt.Fprintln(deps.Stdout, `  "rewritten_content": "..." (paragraphs separated by blank lines)`)
	fmt.Fprintln(deps.Stdout, `and set "status": "rewritten".`)
	fmt.Fprintln(deps.Stdout, rule)
	return nil
}
