package htmlpatch

import (
	"context"
	"time"
)

// Status is the lifecycle status of a document's metadata record.
type Status string

// Document statuses. Only the editor moves a record from StatusPendingRewrite
// to StatusRewritten; everything else is set by the update pipeline.
const (
	StatusPendingRewrite         Status = "pending_rewrite"
	StatusRewritten              Status = "rewritten"
	StatusUpdated                Status = "updated"
	StatusUpdateFailedRolledBack Status = "update_failed_rolled_back"
	StatusRolledBack             Status = "rolled_back"
)

// DocumentMeta is the metadata record of one extracted document. It carries
// the sections handed to the editor and, after an update, the outcome.
type DocumentMeta struct {
	SourceFile          string    `json:"source_file"`
	SourceHash          string    `json:"source_hash,omitempty"`
	BackupPath          string    `json:"backup_path"`
	UpdateBackupPath    string    `json:"update_backup_path,omitempty"`
	OriginalTitle       string    `json:"original_title"`
	OriginalDescription string    `json:"original_description"`
	Sections            []Section `json:"sections"`
	TotalSections       int       `json:"total_sections"`
	ExtractedAt         time.Time `json:"extracted_at"`
	Status              Status    `json:"status"`

	// Populated by the external editor.
	RewrittenTitle       string `json:"rewritten_title,omitempty"`
	RewrittenDescription string `json:"rewritten_description,omitempty"`

	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
	UpdateStats *UpdateStats `json:"update_stats,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (m *DocumentMeta) Validate() error {
	if m.SourceFile == "" {
		return Errorf(EINVALID, "source file required")
	}
	switch m.Status {
	case StatusPendingRewrite, StatusRewritten, StatusUpdated,
		StatusUpdateFailedRolledBack, StatusRolledBack:
	default:
		return Errorf(EINVALID, "unknown status %q", m.Status)
	}
	return ValidateSections(m.Sections)
}

// Ready reports whether the record is confirmed as rewritten and may be
// applied to its source document.
func (m *DocumentMeta) Ready() bool {
	return m.Status == StatusRewritten
}

// RewrittenSections returns the sections that carry replacement content.
func (m *DocumentMeta) RewrittenSections() []Section {
	var out []Section
	for _, s := range m.Sections {
		if s.HasRewrite() {
			out = append(out, s)
		}
	}
	return out
}

// UpdateStats is the per-document outcome of applying rewritten sections.
type UpdateStats struct {
	Title       bool `json:"title"`
	Description bool `json:"description"`
	Sections    int  `json:"sections"`
	Headings    int  `json:"headings"`
	Paragraphs  int  `json:"paragraphs"`

	// Replacements that had to clear a node's children because no safer
	// text target existed.
	LowConfidence int `json:"low_confidence"`

	// Indexes of sections with rewritten content where nothing matched.
	Skipped []int `json:"skipped,omitempty"`
}

// MetaStore persists document metadata records.
type MetaStore interface {
	// Load reads the record at path.
	// Returns ENOTFOUND if no record exists at path.
	Load(ctx context.Context, path string) (*DocumentMeta, error)

	// Save writes the record to path, replacing any previous version.
	Save(ctx context.Context, path string, meta *DocumentMeta) error

	// PathFor returns where the record for sourcePath lives inside dir.
	PathFor(dir, sourcePath string) string
}

// DocumentStore reads and writes the HTML documents being patched.
type DocumentStore interface {
	// Read returns the full content of the document.
	// Returns ENOTFOUND if the document does not exist.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write replaces the document content. Implementations must never leave
	// a partially written document in place.
	Write(ctx context.Context, path string, content []byte) error
}
