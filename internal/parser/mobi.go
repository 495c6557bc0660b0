package parser

import (
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/karitori/leaf/internal/document"
)

// minRunLen is the shortest decoded rune sequence worth keeping when
// scraping text out of a binary MOBI record. Shorter runs are almost
// always format noise.
const minRunLen = 16

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func init() {
	Register(&MOBIFormat{})
}

// MOBIFormat scrapes readable text out of MOBI/AZW containers. There is
// no full PalmDoc decoder here; uncompressed text records and embedded
// HTML are recovered as printable runs and served as a single chapter.
type MOBIFormat struct{}

func (f *MOBIFormat) Name() string { return "MOBI" }

func (f *MOBIFormat) Extensions() []string { return []string{".mobi", ".azw", ".azw3"} }

func (f *MOBIFormat) Parse(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mobi: %w", err)
	}

	var text string
	if utf8.Valid(data) {
		// Some .mobi files in the wild are just renamed text exports.
		text = decodeBytes(data)
	} else {
		text = extractPrintableRuns(data)
	}

	text = tagPattern.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = normalizeNewlines(text)
	text = collapseBlankLines(tidyLines(text))

	doc := &document.Document{
		Title:  stem(path),
		Format: "MOBI",
		Chapters: []document.Chapter{
			{Index: 0, Title: stem(path), Content: text},
		},
	}
	return doc, nil
}

// extractPrintableRuns walks the raw bytes and keeps maximal sequences of
// printable runes. Invalid UTF-8 and control bytes break a run; runs
// shorter than minRunLen are discarded.
func extractPrintableRuns(data []byte) string {
	var out strings.Builder
	var run []rune

	flush := func() {
		if len(run) >= minRunLen {
			out.WriteString(strings.TrimSpace(string(run)))
			out.WriteByte('\n')
		}
		run = run[:0]
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			flush()
			i++
			continue
		}
		if r == '\n' || r == '\t' || r == ' ' || unicode.IsPrint(r) {
			run = append(run, r)
		} else {
			flush()
		}
		i += size
	}
	flush()

	return out.String()
}

// tidyLines trims per-line whitespace and drops lines that carry no
// letters or digits at all, which filters out residual markup debris.
func tidyLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			kept = append(kept, "")
			continue
		}
		hasWord := false
		for _, r := range line {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				hasWord = true
				break
			}
		}
		if hasWord {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
