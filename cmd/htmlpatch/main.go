package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/bluemonday"
	"github.com/fwojciec/htmlpatch/fs"
	"github.com/fwojciec/htmlpatch/goquery"
	"github.com/fwojciec/htmlpatch/htmltomarkdown"
	"github.com/fwojciec/htmlpatch/pipeline"
	hpslog "github.com/fwojciec/htmlpatch/slog"
	"github.com/fwojciec/htmlpatch/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Batch database path. Overrides the <out>/batch.db default when set.
	DBPath string

	// Config file path. Defaults are used when empty.
	ConfigPath string

	// SQLite database used by the batch commands.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     os.Getenv("HTMLPATCH_DB"),
		ConfigPath: os.Getenv("HTMLPATCH_CONFIG"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("htmlpatch"),
		kong.Description("Extract content from HTML files and patch rewritten text back in place."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'htmlpatch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Config != "" {
		m.ConfigPath = cli.Config
	}
	cfg := NewConfig()
	if m.ConfigPath != "" {
		if cfg, err = LoadConfigFile(m.ConfigPath); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HTMLPATCH_CONFIG or --config to a readable YAML file\n")
			return err
		}
	}
	deps.Config = cfg

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire core services into dependencies
	var (
		backups   htmlpatch.BackupService = fs.NewBackupService(fs.WithBackupDir(cfg.BackupDir))
		segmenter htmlpatch.Segmenter     = goquery.NewSegmenter(segmenterOptions(cli, cfg)...)
		patcher   htmlpatch.Patcher       = goquery.NewPatcher(cfg.patcherOptions(bluemonday.NewSanitizer())...)
	)
	if logger != nil {
		backups = hpslog.NewLoggingBackupService(backups, logger)
		segmenter = hpslog.NewLoggingSegmenter(segmenter, logger)
		patcher = hpslog.NewLoggingPatcher(patcher, logger)
	}

	meta := fs.NewMetaStore()
	docs := fs.NewDocumentStore()
	deps.Meta = meta
	deps.Documents = docs
	deps.Extractor = &pipeline.Extractor{
		Segmenter: segmenter,
		Documents: docs,
		Backups:   backups,
		Meta:      meta,
	}
	deps.Updater = &pipeline.Updater{
		Meta:      meta,
		Documents: docs,
		Backups:   backups,
		Patcher:   patcher,
	}

	// Wire command-specific dependencies based on command
	command := kongCtx.Command()
	if strings.HasPrefix(command, "review") {
		deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(cli.Review.Domain))
	}

	if strings.HasPrefix(command, "batch") {
		out := cli.Batch.Out
		if out == "" && strings.HasPrefix(command, "batch parse") {
			out = filepath.Join(cli.Batch.Parse.Folder, cfg.MetaDir)
		}
		deps.OutDir = out

		path := m.dbPath(cli.DB, out)
		if path == "" {
			fmt.Fprintf(stderr, "Hint: Pass --out with the metadata folder of the batch, or set HTMLPATCH_DB\n")
			return htmlpatch.Errorf(htmlpatch.EINVALID, "batch database location unknown")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database folder: %w", err)
		}

		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HTMLPATCH_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()

		deps.Batches = sqlite.NewBatchService(m.DB)
		skip := []string{cfg.BackupDir, filepath.Base(out)}
		deps.Processor = &pipeline.BatchProcessor{
			Batches:   deps.Batches,
			Extractor: deps.Extractor,
			Updater:   deps.Updater,
			Discover: func(folder string) ([]string, error) {
				return fs.FindHTMLFiles(folder, cfg.FilePattern, skip...)
			},
		}
	}

	return kongCtx.Run(deps)
}

// dbPath resolves the batch database: --db, then HTMLPATCH_DB, then
// batch.db inside the output folder.
func (m *Main) dbPath(flag, out string) string {
	switch {
	case flag != "":
		return flag
	case m.DBPath != "":
		return m.DBPath
	case out != "":
		return filepath.Join(out, "batch.db")
	}
	return ""
}

func segmenterOptions(cli *CLI, cfg *Config) []goquery.SegmenterOption {
	if cfg.Markers || cli.Parse.Markers || cli.Batch.Parse.Markers {
		return []goquery.SegmenterOption{goquery.WithMarkers()}
	}
	return nil
}
