package blockgen

import (
	"io/fs"

	"github.com/goliatone/go-blockgen/pkg/document"
)

// ParseTemplate decodes a JSON or YAML template.
func ParseTemplate(raw []byte, source string) (Template, error) {
	return document.Parse(raw, source)
}

// LoadTemplates indexes the templates and data sets found in fsys.
func LoadTemplates(fsys fs.FS) (*document.Store, error) {
	return document.LoadFS(fsys)
}

// SamplesFS exposes the bundled sample templates.
func SamplesFS() fs.FS {
	return document.SamplesFS()
}
