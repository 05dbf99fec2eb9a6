package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/htmlpatch"
)

// Ensure BackupService implements htmlpatch.BackupService at compile time.
var _ htmlpatch.BackupService = (*BackupService)(nil)

// DefaultBackupDir is the sidecar directory created next to each document.
const DefaultBackupDir = ".htmlpatch-backups"

// backupTimeFormat is the timestamp embedded in snapshot names.
const backupTimeFormat = "20060102-150405"

// BackupService stores full-copy snapshots in a sidecar directory next to
// each document. Snapshots are never overwritten or deleted.
type BackupService struct {
	dirName string
	now     func() time.Time
}

// BackupOption configures a BackupService.
type BackupOption func(*BackupService)

// WithBackupDir sets the name of the sidecar directory.
func WithBackupDir(name string) BackupOption {
	return func(s *BackupService) {
		s.dirName = name
	}
}

// WithClock sets the clock used to name snapshots.
func WithClock(now func() time.Time) BackupOption {
	return func(s *BackupService) {
		s.now = now
	}
}

// NewBackupService creates a new BackupService.
func NewBackupService(opts ...BackupOption) *BackupService {
	s := &BackupService{
		dirName: DefaultBackupDir,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DirName returns the name of the sidecar directory.
func (s *BackupService) DirName() string {
	return s.dirName
}

// Backup copies the document at path to
// <dir>/<backup dir>/<stem>_<timestamp><ext>.bak. When that name is taken a
// -N counter is added before the extension.
func (s *BackupService) Backup(ctx context.Context, path string) (*htmlpatch.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(filepath.Dir(path), s.dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	now := s.now()
	stem, ext := splitName(path)
	name := stem + "_" + now.Format(backupTimeFormat)

	target := filepath.Join(dir, name+ext+".bak")
	for n := 1; exists(target); n++ {
		target = filepath.Join(dir, fmt.Sprintf("%s-%d%s.bak", name, n, ext))
	}

	if err := writeFileAtomic(target, content); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	return &htmlpatch.Snapshot{
		Path:      target,
		Source:    path,
		Hash:      HashContent(content),
		CreatedAt: now,
	}, nil
}

// Restore overwrites the document at path with the snapshot content. A
// snapshot that does not hash to hash is never written.
func (s *BackupService) Restore(ctx context.Context, snapshotPath, path, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshotPath == "" {
		return htmlpatch.Errorf(htmlpatch.ENOTFOUND, "no snapshot recorded for %s", path)
	}

	content, err := readFile(snapshotPath)
	if err != nil {
		return err
	}

	if hash != "" && HashContent(content) != hash {
		return htmlpatch.Errorf(htmlpatch.EUNRECOVERABLE, "snapshot %s is corrupt: hash %s, recorded %s",
			snapshotPath, HashContent(content), hash)
	}

	if err := writeFileAtomic(path, content); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
