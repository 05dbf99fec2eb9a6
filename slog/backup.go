package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/htmlpatch"
)

// Ensure LoggingBackupService implements htmlpatch.BackupService.
var _ htmlpatch.BackupService = (*LoggingBackupService)(nil)

// LoggingBackupService wraps a BackupService with debug logging.
type LoggingBackupService struct {
	next   htmlpatch.BackupService
	logger *slog.Logger
}

// NewLoggingBackupService creates a new LoggingBackupService.
func NewLoggingBackupService(next htmlpatch.BackupService, logger *slog.Logger) *LoggingBackupService {
	return &LoggingBackupService{next: next, logger: logger}
}

// Backup delegates to the wrapped service and logs the snapshot path.
func (s *LoggingBackupService) Backup(ctx context.Context, path string) (snap *htmlpatch.Snapshot, err error) {
	defer func(begin time.Time) {
		snapshot := ""
		if snap != nil {
			snapshot = snap.Path
		}
		s.logger.Info("backup",
			"path", path,
			"snapshot", snapshot,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Backup(ctx, path)
}

// Restore delegates to the wrapped service and logs the operation.
func (s *LoggingBackupService) Restore(ctx context.Context, snapshotPath, path, hash string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("restore",
			"path", path,
			"snapshot", snapshotPath,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Restore(ctx, snapshotPath, path, hash)
}
