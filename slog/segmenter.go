// Package slog provides logging decorators for htmlpatch services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlpatch"
)

// Ensure LoggingSegmenter implements htmlpatch.Segmenter.
var _ htmlpatch.Segmenter = (*LoggingSegmenter)(nil)

// LoggingSegmenter wraps a Segmenter with debug logging.
type LoggingSegmenter struct {
	next   htmlpatch.Segmenter
	logger *slog.Logger
}

// NewLoggingSegmenter creates a new LoggingSegmenter.
func NewLoggingSegmenter(next htmlpatch.Segmenter, logger *slog.Logger) *LoggingSegmenter {
	return &LoggingSegmenter{next: next, logger: logger}
}

// Segment delegates to the wrapped segmenter and logs the section count.
func (s *LoggingSegmenter) Segment(html string) (result *htmlpatch.Extraction, err error) {
	defer func(begin time.Time) {
		sections := 0
		if result != nil {
			sections = len(result.Sections)
		}
		s.logger.Info("segment",
			"bytes", len(html),
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Segment(html)
}
