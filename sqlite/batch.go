package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/htmlpatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ htmlpatch.BatchService = (*BatchService)(nil)

// BatchService implements htmlpatch.BatchService using SQLite.
type BatchService struct {
	db *DB
}

// NewBatchService creates a new BatchService.
func NewBatchService(db *DB) *BatchService {
	return &BatchService{db: db}
}

// CreateBatch creates a new batch and its files in one transaction.
// IDs, positions and the creation time are assigned here.
func (s *BatchService) CreateBatch(ctx context.Context, batch *htmlpatch.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	batch.ID = uuid.New().String()
	batch.CreatedAt = time.Now().UTC()
	batch.TotalFiles = len(batch.Files)
	if batch.Status == "" {
		batch.Status = htmlpatch.BatchPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, source_folder, output_dir, status, total_files, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, batch.ID, batch.SourceFolder, batch.OutputDir, batch.Status, batch.TotalFiles,
		batch.CreatedAt.Format(time.RFC3339), formatNullTime(batch.CompletedAt))
	if err != nil {
		return err
	}

	for i, f := range batch.Files {
		f.ID = uuid.New().String()
		f.BatchID = batch.ID
		f.Position = i
		if f.Status == "" {
			f.Status = htmlpatch.FilePending
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO batch_files (id, batch_id, position, source, relative_path, name, meta_file, status, sections, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, f.ID, f.BatchID, f.Position, f.Source, f.RelativePath, f.Name, f.MetaFile, f.Status, f.Sections, f.Error)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindBatchByID retrieves a batch by ID.
func (s *BatchService) FindBatchByID(ctx context.Context, id string) (*htmlpatch.Batch, error) {
	batches, err := s.FindBatches(ctx, htmlpatch.BatchFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTFOUND, "batch not found")
	}
	return batches[0], nil
}

// FindBatches retrieves batches matching the filter, newest first.
func (s *BatchService) FindBatches(ctx context.Context, filter htmlpatch.BatchFilter) ([]*htmlpatch.Batch, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_folder, output_dir, status, total_files, created_at, completed_at FROM batches WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceFolder != nil {
		query.WriteString(" AND source_folder = ?")
		args = append(args, *filter.SourceFolder)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*htmlpatch.Batch
	for rows.Next() {
		var batch htmlpatch.Batch
		var createdAt string
		var completedAt sql.NullString

		if err := rows.Scan(&batch.ID, &batch.SourceFolder, &batch.OutputDir, &batch.Status,
			&batch.TotalFiles, &createdAt, &completedAt); err != nil {
			return nil, err
		}

		if batch.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if batch.CompletedAt, err = parseNullRFC3339(completedAt, "completed_at"); err != nil {
			return nil, err
		}

		batches = append(batches, &batch)
	}

	return batches, rows.Err()
}

// UpdateBatch updates an existing batch.
func (s *BatchService) UpdateBatch(ctx context.Context, id string, upd htmlpatch.BatchUpdate) (*htmlpatch.Batch, error) {
	batch, err := s.FindBatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		batch.Status = *upd.Status
	}
	if upd.CompletedAt != nil {
		t := upd.CompletedAt.UTC()
		batch.CompletedAt = &t
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE batches
		SET status = ?, completed_at = ?
		WHERE id = ?
	`, batch.Status, formatNullTime(batch.CompletedAt), id)
	if err != nil {
		return nil, err
	}

	return batch, nil
}

// FindBatchFiles retrieves files matching the filter in batch position order.
func (s *BatchService) FindBatchFiles(ctx context.Context, filter htmlpatch.BatchFileFilter) ([]*htmlpatch.BatchFile, error) {
	return s.findBatchFiles(ctx, "", filter)
}

func (s *BatchService) findBatchFiles(ctx context.Context, id string, filter htmlpatch.BatchFileFilter) ([]*htmlpatch.BatchFile, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, batch_id, position, source, relative_path, name, meta_file, status, sections, error
		FROM batch_files WHERE 1=1`)

	if id != "" {
		query.WriteString(" AND id = ?")
		args = append(args, id)
	}
	if filter.BatchID != nil {
		query.WriteString(" AND batch_id = ?")
		args = append(args, *filter.BatchID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY batch_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*htmlpatch.BatchFile
	for rows.Next() {
		var f htmlpatch.BatchFile
		if err := rows.Scan(&f.ID, &f.BatchID, &f.Position, &f.Source, &f.RelativePath, &f.Name,
			&f.MetaFile, &f.Status, &f.Sections, &f.Error); err != nil {
			return nil, err
		}
		files = append(files, &f)
	}

	return files, rows.Err()
}

// UpdateBatchFile updates an existing batch file.
func (s *BatchService) UpdateBatchFile(ctx context.Context, id string, upd htmlpatch.BatchFileUpdate) (*htmlpatch.BatchFile, error) {
	files, err := s.findBatchFiles(ctx, id, htmlpatch.BatchFileFilter{})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTFOUND, "batch file not found")
	}
	f := files[0]

	if upd.MetaFile != nil {
		f.MetaFile = *upd.MetaFile
	}
	if upd.Status != nil {
		f.Status = *upd.Status
	}
	if upd.Sections != nil {
		f.Sections = *upd.Sections
	}
	if upd.Error != nil {
		f.Error = *upd.Error
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE batch_files
		SET meta_file = ?, status = ?, sections = ?, error = ?
		WHERE id = ?
	`, f.MetaFile, f.Status, f.Sections, f.Error, id)
	if err != nil {
		return nil, err
	}

	return f, nil
}
