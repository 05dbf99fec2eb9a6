package mock

import "github.com/fwojciec/htmlpatch"

var _ htmlpatch.Converter = (*Converter)(nil)

// Converter is a mock implementation of htmlpatch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
