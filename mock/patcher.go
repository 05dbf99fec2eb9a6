package mock

import "github.com/fwojciec/htmlpatch"

var (
	_ htmlpatch.Patcher   = (*Patcher)(nil)
	_ htmlpatch.Sanitizer = (*Sanitizer)(nil)
)

// Patcher is a mock implementation of htmlpatch.Patcher.
type Patcher struct {
	PatchFn func(html string, meta *htmlpatch.DocumentMeta) (string, *htmlpatch.UpdateStats, error)
}

func (p *Patcher) Patch(html string, meta *htmlpatch.DocumentMeta) (string, *htmlpatch.UpdateStats, error) {
	return p.PatchFn(html, meta)
}

// Sanitizer is a mock implementation of htmlpatch.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(s string) string
}

func (s *Sanitizer) Sanitize(v string) string {
	return s.SanitizeFn(v)
}
