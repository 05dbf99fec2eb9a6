package mock

import "github.com/fwojciec/htmlpatch"

var _ htmlpatch.Segmenter = (*Segmenter)(nil)

// Segmenter is a mock implementation of htmlpatch.Segmenter.
type Segmenter struct {
	SegmentFn func(html string) (*htmlpatch.Extraction, error)
}

func (s *Segmenter) Segment(html string) (*htmlpatch.Extraction, error) {
	return s.SegmentFn(html)
}
