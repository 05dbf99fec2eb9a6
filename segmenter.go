package htmlpatch

// Extraction holds everything the segmenter pulls out of one document.
type Extraction struct {
	// Title is the normalized text of the document's <title>.
	Title string

	// Description is the content of the description meta tag.
	Description string

	// Sections are the ordered content sections, indexed 0..n-1.
	Sections []Section

	// HTML is the full document annotated with stable markers.
	// Empty unless the segmenter was configured to stamp markers.
	HTML string
}

// Segmenter partitions an HTML document into content sections.
type Segmenter interface {
	// Segment parses html and returns its sections in document order.
	// Segmenting the same document twice yields identical sections.
	Segment(html string) (*Extraction, error)
}
