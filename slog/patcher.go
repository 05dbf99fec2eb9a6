package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlpatch"
)

// Ensure LoggingPatcher implements htmlpatch.Patcher.
var _ htmlpatch.Patcher = (*LoggingPatcher)(nil)

// LoggingPatcher wraps a Patcher with debug logging.
type LoggingPatcher struct {
	next   htmlpatch.Patcher
	logger *slog.Logger
}

// NewLoggingPatcher creates a new LoggingPatcher.
func NewLoggingPatcher(next htmlpatch.Patcher, logger *slog.Logger) *LoggingPatcher {
	return &LoggingPatcher{next: next, logger: logger}
}

// Patch delegates to the wrapped patcher and logs what was applied.
// Skipped sections are logged at warn level.
func (p *LoggingPatcher) Patch(html string, meta *htmlpatch.DocumentMeta) (out string, stats *htmlpatch.UpdateStats, err error) {
	defer func(begin time.Time) {
		source := ""
		if meta != nil {
			source = meta.SourceFile
		}
		var applied htmlpatch.UpdateStats
		if stats != nil {
			applied = *stats
		}
		p.logger.Info("patch",
			"source", source,
			"sections", applied.Sections,
			"paragraphs", applied.Paragraphs,
			"low_confidence", applied.LowConfidence,
			"duration", time.Since(begin),
			"err", err,
		)
		if len(applied.Skipped) > 0 {
			p.logger.Warn("sections not matched",
				"source", source,
				"indexes", applied.Skipped,
			)
		}
	}(time.Now())
	return p.next.Patch(html, meta)
}
