package parser

import (
	"os"
	"regexp"
	"strings"

	"github.com/karitori/leaf/internal/document"
)

// MarkdownFormat splits Markdown files into chapters on level-1 headers.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

// h1Regex matches a level-1 header line and captures its title.
var h1Regex = regexp.MustCompile(`^#\s+(.+)$`)

func (f *MarkdownFormat) Parse(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content := normalizeNewlines(decodeBytes(data))
	lines := strings.Split(content, "\n")

	doc := &document.Document{Path: path, Format: "Markdown"}

	var (
		title string // current chapter title, empty while in the preamble
		body  []string
	)
	flush := func() {
		text := cleanChapterBody(body)
		body = nil
		if title == "" {
			// Text before the first header becomes its own chapter
			// only when it says something.
			if strings.TrimSpace(text) != "" {
				doc.Chapters = append(doc.Chapters, document.Chapter{Title: "Preface", Content: text})
			}
			return
		}
		doc.Chapters = append(doc.Chapters, document.Chapter{Title: title, Content: text})
	}

	sawHeader := false
	for _, line := range lines {
		if m := h1Regex.FindStringSubmatch(line); m != nil {
			flush()
			sawHeader = true
			title = strings.TrimSpace(m[1])
			if doc.Title == "" {
				doc.Title = title
			}
			continue
		}
		body = append(body, line)
	}

	if !sawHeader {
		// No level-1 headers anywhere; serve the whole file as one chapter.
		doc.Title = stem(path)
		doc.Chapters = []document.Chapter{{Title: doc.Title, Content: cleanChapterBody(lines)}}
		return doc, nil
	}

	flush()
	if doc.Title == "" {
		doc.Title = stem(path)
	}
	return doc, nil
}

// cleanChapterBody strips per-line indentation, collapses runs of blank
// lines down to a single blank line, and drops blank edges. Indented prose
// is common in exported Markdown and would otherwise wrap badly at narrow
// widths.
func cleanChapterBody(lines []string) string {
	var out []string
	blankRun := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blankRun++
			if blankRun > 1 || len(out) == 0 {
				continue
			}
		} else {
			blankRun = 0
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
