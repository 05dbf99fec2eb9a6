// Package htmlpatch provides a local, CLI-based content refresh tool for
// static HTML sites. It segments pages into heading + paragraph sections,
// hands those sections to an external editor, and patches the rewritten text
// back into the original markup without disturbing layout.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, bluemonday/).
package htmlpatch
