package semantics

import (
	"slc/internal/diagnostics"
)

// Context carries the per-compilation state the resolution engine needs:
// the diagnostics sink and the file the current scope belongs to.
// Reporting through the sink never aborts resolution; operations continue
// with a degraded result so one pass can surface every diagnostic.
type Context struct {
	FilePath    string
	Diagnostics *diagnostics.DiagnosticBag
}

// NewContext creates a resolution context for a single file
func NewContext(filePath string, bag *diagnostics.DiagnosticBag) *Context {
	return &Context{FilePath: filePath, Diagnostics: bag}
}
