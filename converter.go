package htmlpatch

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Used to render a document's content for human review.
	Convert(html string) (string, error)
}
