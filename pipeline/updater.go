package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/htmlpatch"
)

// State is the position of one document in the update state machine.
type State int

// Update states. A run ends in StateSucceeded or StateRolledBack, or stays
// earlier when it aborted before touching the document.
const (
	StateNotStarted State = iota
	StateBackedUp
	StateParsed
	StateApplied
	StateSucceeded
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateBackedUp:
		return "backed-up"
	case StateParsed:
		return "parsed"
	case StateApplied:
		return "applied"
	case StateSucceeded:
		return "succeeded"
	case StateRolledBack:
		return "rolled-back"
	}
	return "not-started"
}

// Result holds the outcome of updating one document.
type Result struct {
	Source   string
	State    State
	Snapshot *htmlpatch.Snapshot
	Stats    *htmlpatch.UpdateStats
}

// Updater applies rewritten metadata records to their source documents.
type Updater struct {
	Meta      htmlpatch.MetaStore
	Documents htmlpatch.DocumentStore
	Backups   htmlpatch.BackupService
	Patcher   htmlpatch.Patcher
	Now       func() time.Time
}

// Update applies the record at metaPath to its source document. The record
// is validated and the document snapshotted first; any failure after that
// restores the snapshot and marks the record update_failed_rolled_back. If
// the restore itself fails the error is EUNRECOVERABLE.
func (u *Updater) Update(ctx context.Context, metaPath string) (*Result, error) {
	meta, err := u.Meta.Load(ctx, metaPath)
	if err != nil {
		return nil, err
	}
	if err := meta.Validate(); err != nil {
		return nil, htmlpatch.Errorf(htmlpatch.EINVALID, "%s: %s", metaPath, htmlpatch.ErrorMessage(err))
	}
	if !meta.Ready() {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTREADY,
			"%s is not ready for update: status is %q, expected %q", metaPath, meta.Status, htmlpatch.StatusRewritten)
	}

	res := &Result{Source: meta.SourceFile, State: StateNotStarted}

	snap, err := u.Backups.Backup(ctx, meta.SourceFile)
	if err != nil {
		return res, fmt.Errorf("backup %s: %w", meta.SourceFile, err)
	}
	res.Snapshot = snap
	res.State = StateBackedUp
	meta.UpdateBackupPath = snap.Path

	if err := u.apply(ctx, metaPath, meta, res); err != nil {
		return res, u.rollback(ctx, metaPath, meta, res, err)
	}
	return res, nil
}

func (u *Updater) apply(ctx context.Context, metaPath string, meta *htmlpatch.DocumentMeta, res *Result) error {
	content, err := u.Documents.Read(ctx, meta.SourceFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", meta.SourceFile, err)
	}
	res.State = StateParsed

	out, stats, err := u.Patcher.Patch(string(content), meta)
	if err != nil {
		return fmt.Errorf("patch %s: %w", meta.SourceFile, err)
	}
	res.State = StateApplied
	res.Stats = stats

	if err := u.Documents.Write(ctx, meta.SourceFile, []byte(out)); err != nil {
		return fmt.Errorf("write %s: %w", meta.SourceFile, err)
	}

	now := clock(u.Now)
	meta.Status = htmlpatch.StatusUpdated
	meta.UpdatedAt = &now
	meta.UpdateStats = stats
	meta.Error = ""
	if err := u.Meta.Save(ctx, metaPath, meta); err != nil {
		return fmt.Errorf("save %s: %w", metaPath, err)
	}

	res.State = StateSucceeded
	return nil
}

// rollback restores the update snapshot after cause and records the
// failure in the metadata record.
func (u *Updater) rollback(ctx context.Context, metaPath string, meta *htmlpatch.DocumentMeta, res *Result, cause error) error {
	if err := u.Backups.Restore(ctx, res.Snapshot.Path, meta.SourceFile, res.Snapshot.Hash); err != nil {
		return htmlpatch.Errorf(htmlpatch.EUNRECOVERABLE,
			"update of %s failed (%v) and restoring %s failed: %v", meta.SourceFile, cause, res.Snapshot.Path, err)
	}
	res.State = StateRolledBack

	meta.Status = htmlpatch.StatusUpdateFailedRolledBack
	meta.UpdatedAt = nil
	meta.UpdateStats = nil
	meta.Error = cause.Error()
	if err := u.Meta.Save(ctx, metaPath, meta); err != nil {
		return errors.Join(cause, fmt.Errorf("record rollback in %s: %w", metaPath, err))
	}
	return cause
}

// Rollback restores the source document of the record at metaPath from its
// extraction-time backup and marks the record rolled_back.
func (u *Updater) Rollback(ctx context.Context, metaPath string) (*htmlpatch.DocumentMeta, error) {
	meta, err := u.Meta.Load(ctx, metaPath)
	if err != nil {
		return nil, err
	}
	if meta.BackupPath == "" {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTFOUND, "%s records no backup", metaPath)
	}

	if err := u.Backups.Restore(ctx, meta.BackupPath, meta.SourceFile, meta.SourceHash); err != nil {
		return nil, err
	}

	meta.Status = htmlpatch.StatusRolledBack
	meta.Error = ""
	if err := u.Meta.Save(ctx, metaPath, meta); err != nil {
		return nil, fmt.Errorf("save %s: %w", metaPath, err)
	}
	return meta, nil
}

// Preview loads the record at metaPath without touching its document, for
// dry runs.
func (u *Updater) Preview(ctx context.Context, metaPath string) (*htmlpatch.DocumentMeta, error) {
	return u.Meta.Load(ctx, metaPath)
}
