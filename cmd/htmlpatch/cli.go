package main

import (
	"context"
	"io"

	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	OutDir    string
	Meta      htmlpatch.MetaStore
	Documents htmlpatch.DocumentStore
	Extractor *pipeline.Extractor
	Updater   *pipeline.Updater
	Converter htmlpatch.Converter
	Batches   htmlpatch.BatchService
	Processor *pipeline.BatchProcessor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"YAML config file (default: HTMLPATCH_CONFIG env var)" type:"path"`
	DB      string `name:"db" help:"Batch database (default: HTMLPATCH_DB env var or <out>/batch.db)" type:"path"`
	Verbose bool   `short:"v" help:"Log every step to stderr"`

	Parse    ParseCmd    `cmd:"" help:"Extract sections of an HTML file into a metadata record"`
	Prepare  PrepareCmd  `cmd:"" help:"Print sections of a record for rewriting"`
	Update   UpdateCmd   `cmd:"" help:"Write rewritten content back into the HTML file"`
	Rollback RollbackCmd `cmd:"" help:"Restore the HTML file from its extraction backup"`
	Review   ReviewCmd   `cmd:"" help:"Print the content of an HTML file as Markdown"`
	Batch    BatchCmd    `cmd:"" help:"Process every HTML file below a folder"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File    string `arg:"" help:"HTML file to parse" type:"path"`
	Out     string `short:"o" help:"Output directory for the record (default: next to the file)" type:"path"`
	Markers bool   `help:"Stamp stable markers into the HTML file"`
}

// PrepareCmd is the "prepare" subcommand.
type PrepareCmd struct {
	Meta     string `arg:"" help:"Metadata record" type:"path"`
	Sections []int  `help:"Only these section indexes (comma separated)"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Meta   string `arg:"" help:"Metadata record" type:"path"`
	DryRun bool   `help:"Preview changes without writing"`
}

// RollbackCmd is the "rollback" subcommand.
type RollbackCmd struct {
	Meta string `arg:"" help:"Metadata record" type:"path"`
}

// ReviewCmd is the "review" subcommand.
type ReviewCmd struct {
	File   string `arg:"" help:"HTML file" type:"path"`
	Domain string `help:"Domain for resolving relative links"`
}

// BatchCmd groups the batch subcommands.
type BatchCmd struct {
	Out string `short:"o" help:"Metadata output directory (default: <folder>/.htmlpatch-meta)" type:"path"`

	Parse  BatchParseCmd  `cmd:"" help:"Parse every HTML file below a folder"`
	Resume BatchResumeCmd `cmd:"" help:"Continue parsing the pending files of a batch"`
	Update BatchUpdateCmd `cmd:"" help:"Update every rewritten file of a batch"`
	Status BatchStatusCmd `cmd:"" help:"Show progress of a batch"`
	List   BatchListCmd   `cmd:"" help:"List batches, or the files of one batch"`
}

// BatchParseCmd is the "batch parse" subcommand.
type BatchParseCmd struct {
	Folder  string `arg:"" help:"Folder containing HTML files" type:"path"`
	Markers bool   `help:"Stamp stable markers into the HTML files"`
}

// BatchResumeCmd is the "batch resume" subcommand.
type BatchResumeCmd struct {
	ID string `arg:"" help:"Batch ID"`
}

// BatchUpdateCmd is the "batch update" subcommand.
type BatchUpdateCmd struct {
	ID string `arg:"" help:"Batch ID"`
}

// BatchStatusCmd is the "batch status" subcommand.
type BatchStatusCmd struct {
	ID string `arg:"" help:"Batch ID"`
}

// BatchListCmd is the "batch list" subcommand.
type BatchListCmd struct {
	ID     string `arg:"" optional:"" help:"Batch ID"`
	Status string `short:"s" help:"Only files with this status (pending, parsed, rewritten, updated, failed)"`
}
