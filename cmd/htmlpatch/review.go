package main

import (
	"fmt"

	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/goquery"
)

// Run executes the review command.
func (c *ReviewCmd) Run(deps *Dependencies) error {
	content, err := deps.Documents.Read(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	body, err := goquery.ExtractContent(string(content))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	markdown, err := deps.Converter.Convert(body)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, markdown)
	return nil
}
