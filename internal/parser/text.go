package parser

import (
	"os"

	"github.com/karitori/leaf/internal/document"
)

// TextFormat reads plain text files as a single chapter.
type TextFormat struct{}

func init() {
	Register(&TextFormat{})
}

func (f *TextFormat) Name() string         { return "Text" }
func (f *TextFormat) Extensions() []string { return []string{".txt"} }

func (f *TextFormat) Parse(path string) (*document.Document, error) {
	return readPlainText(path)
}

// readPlainText is both the .txt parser and the fallback for extensions no
// format claims.
func readPlainText(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	title := stem(path)
	return &document.Document{
		Path:   path,
		Title:  title,
		Format: "Text",
		Chapters: []document.Chapter{{
			Title:   title,
			Content: normalizeNewlines(decodeBytes(data)),
		}},
	}, nil
}
