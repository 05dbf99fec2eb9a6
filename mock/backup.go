package mock

import (
	"context"

	"github.com/fwojciec/htmlpatch"
)

var _ htmlpatch.BackupService = (*BackupService)(nil)

// BackupService is a mock implementation of htmlpatch.BackupService.
type BackupService struct {
	BackupFn  func(ctx context.Context, path string) (*htmlpatch.Snapshot, error)
	RestoreFn func(ctx context.Context, snapshotPath, path, hash string) error
}

func (s *BackupService) Backup(ctx context.Context, path string) (*htmlpatch.Snapshot, error) {
	return s.BackupFn(ctx, path)
}

func (s *BackupService) Restore(ctx context.Context, snapshotPath, path, hash string) error {
	return s.RestoreFn(ctx, snapshotPath, path, hash)
}
