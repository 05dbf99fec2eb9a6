package htmlpatch

// Patcher applies the rewritten content of a metadata record to a document.
type Patcher interface {
	// Patch locates each rewritten section in html, replaces its text while
	// preserving surrounding markup, applies title and description rewrites,
	// and returns the full updated document. Sections that cannot be
	// located are skipped and reported in the stats, not returned as errors.
	Patch(html string, meta *DocumentMeta) (string, *UpdateStats, error)
}

// Sanitizer cleans externally produced text before it is inserted into a
// document.
type Sanitizer interface {
	// Sanitize returns s as plain text with any markup removed.
	Sanitize(s string) string
}
