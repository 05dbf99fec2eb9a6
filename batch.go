package htmlpatch

import (
	"context"
	"time"
)

// BatchStatus is the overall status of a batch.
type BatchStatus string

// Batch statuses.
const (
	BatchPending BatchStatus = "pending"
	BatchParsed  BatchStatus = "parsed"
	BatchPartial BatchStatus = "partial"
	BatchUpdated BatchStatus = "updated"
)

// FileStatus is the status of one file within a batch.
type FileStatus string

// File statuses.
const (
	FilePending   FileStatus = "pending"
	FileParsed    FileStatus = "parsed"
	FileRewritten FileStatus = "rewritten"
	FileUpdated   FileStatus = "updated"
	FileFailed    FileStatus = "failed"
)

// Batch tracks the processing of every HTML file under a source folder.
type Batch struct {
	ID           string      `json:"id"`
	SourceFolder string      `json:"sourceFolder"`
	OutputDir    string      `json:"outputDir"`
	Status       BatchStatus `json:"status"`
	TotalFiles   int         `json:"totalFiles"`
	CreatedAt    time.Time   `json:"createdAt"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`

	Files []*BatchFile `json:"files,omitempty"`
}

// Validate returns an error if the batch contains invalid fields.
func (b *Batch) Validate() error {
	if b.SourceFolder == "" {
		return Errorf(EINVALID, "batch source folder required")
	}
	if b.OutputDir == "" {
		return Errorf(EINVALID, "batch output directory required")
	}
	return nil
}

// BatchFile is one file of a batch.
type BatchFile struct {
	ID           string     `json:"id"`
	BatchID      string     `json:"batchId"`
	Position     int        `json:"position"`
	Source       string     `json:"source"`
	RelativePath string     `json:"relativePath"`
	Name         string     `json:"name"`
	MetaFile     string     `json:"metaFile,omitempty"`
	Status       FileStatus `json:"status"`
	Sections     int        `json:"sections"`
	Error        string     `json:"error,omitempty"`
}

// BatchService represents a service for managing batch manifests.
type BatchService interface {
	// CreateBatch creates a batch together with its files.
	CreateBatch(ctx context.Context, batch *Batch) error

	// FindBatchByID retrieves a batch by ID, without its files.
	// Returns ENOTFOUND if batch does not exist.
	FindBatchByID(ctx context.Context, id string) (*Batch, error)

	// FindBatches retrieves batches, newest first.
	FindBatches(ctx context.Context, filter BatchFilter) ([]*Batch, error)

	// UpdateBatch updates an existing batch.
	// Returns ENOTFOUND if batch does not exist.
	UpdateBatch(ctx context.Context, id string, upd BatchUpdate) (*Batch, error)

	// FindBatchFiles retrieves files matching the filter in position order.
	FindBatchFiles(ctx context.Context, filter BatchFileFilter) ([]*BatchFile, error)

	// UpdateBatchFile updates an existing file.
	// Returns ENOTFOUND if file does not exist.
	UpdateBatchFile(ctx context.Context, id string, upd BatchFileUpdate) (*BatchFile, error)
}

// BatchFilter represents a filter for FindBatches.
type BatchFilter struct {
	ID           *string `json:"id"`
	SourceFolder *string `json:"sourceFolder"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BatchUpdate represents fields that can be updated on a batch.
type BatchUpdate struct {
	Status      *BatchStatus `json:"status"`
	CompletedAt *time.Time   `json:"completedAt"`
}

// BatchFileFilter represents a filter for FindBatchFiles.
type BatchFileFilter struct {
	BatchID *string     `json:"batchId"`
	Status  *FileStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BatchFileUpdate represents fields that can be updated on a batch file.
type BatchFileUpdate struct {
	MetaFile *string     `json:"metaFile"`
	Status   *FileStatus `json:"status"`
	Sections *int        `json:"sections"`
	Error    *string     `json:"error"`
}

// CountByStatus tallies files by status.
func CountByStatus(files []*BatchFile) map[FileStatus]int {
	counts := make(map[FileStatus]int)
	for _, f := range files {
		counts[f.Status]++
	}
	return counts
}
