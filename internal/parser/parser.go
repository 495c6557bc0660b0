// Package parser turns e-book files into plain-text documents. Formats
// register themselves at init time; unknown extensions fall back to plain
// text so the reader can open whatever it is pointed at.
package parser

import (
	"path/filepath"
	"strings"

	"github.com/karitori/leaf/internal/document"
)

// Format parses one container format into a document.
type Format interface {
	Name() string
	Extensions() []string
	Parse(path string) (*document.Document, error)
}

var registry []Format

// Register adds a format to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Open parses path with the format registered for its extension, falling
// back to plain text for unregistered extensions. The returned document is
// normalized: contiguous chapter indices and at least one readable chapter.
func Open(path string) (*document.Document, error) {
	doc, err := parse(path)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	doc.Normalize()
	return doc, nil
}

func parse(path string) (*document.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f.Parse(path)
			}
		}
	}
	return readPlainText(path)
}

// Supported returns registered format names with their extensions.
func Supported() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

// stem returns the file name without directory or extension, the usual
// fallback title for books without metadata.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
