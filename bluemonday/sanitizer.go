// Package bluemonday strips markup from externally rewritten text before it
// is inserted into a document.
package bluemonday

import (
	"html"

	"github.com/fwojciec/htmlpatch"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements htmlpatch.Sanitizer at compile time.
var _ htmlpatch.Sanitizer = (*Sanitizer)(nil)

// Sanitizer removes every tag from its input. Script and style content is
// dropped with its element.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns s as plain text. Entities are decoded because the
// patcher escapes text again on insertion.
func (s *Sanitizer) Sanitize(v string) string {
	return html.UnescapeString(s.policy.Sanitize(v))
}
