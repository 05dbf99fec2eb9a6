package main

import (
	"fmt"

	"github.com/fwojciec/htmlpatch"
)

// Run executes the rollback command.
func (c *RollbackCmd) Run(deps *Dependencies) error {
	meta, err := deps.Updater.Rollback(deps.Ctx, c.Meta)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlpatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Restored %s from %s\n", meta.SourceFile, meta.BackupPath)
	return nil
}
