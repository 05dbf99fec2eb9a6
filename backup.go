package htmlpatch

import (
	"context"
	"time"
)

// Snapshot is an immutable full copy of a document taken before mutation.
type Snapshot struct {
	Path      string    `json:"path"`
	Source    string    `json:"source"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackupService takes and restores document snapshots.
type BackupService interface {
	// Backup copies the document at path into the backup area and returns
	// the snapshot. An existing snapshot is never overwritten.
	Backup(ctx context.Context, path string) (*Snapshot, error)

	// Restore overwrites the document at path with the snapshot content.
	// When hash is not empty the snapshot must hash to it, otherwise nothing
	// is written and EUNRECOVERABLE is returned. Returns ENOTFOUND if the
	// snapshot does not exist.
	Restore(ctx context.Context, snapshotPath, path, hash string) error
}
