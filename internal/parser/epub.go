package parser

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"

	"github.com/karitori/leaf/internal/document"
)

// EPUBFormat parses EPUB containers into chaptered documents.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Parse(filename string) (*document.Document, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	titles := ncxTitles(filename, book)

	doc := &document.Document{
		Path:   filename,
		Title:  strings.TrimSpace(book.Title),
		Author: strings.TrimSpace(book.Creator),
		Format: "EPUB",
	}
	if doc.Title == "" {
		doc.Title = stem(filename)
	}

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil || skipSpineItem(ref.Item) {
			continue
		}

		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		text, heading, pageTitle := htmlToText(string(data))
		if strings.TrimSpace(text) == "" {
			continue
		}

		doc.Chapters = append(doc.Chapters, document.Chapter{
			Title:   chapterTitle(ref.Item.HREF, titles, heading, pageTitle, len(doc.Chapters)+1),
			Content: text,
		})
	}

	if len(doc.Chapters) == 0 {
		return nil, fmt.Errorf("epub has no readable chapters")
	}
	return doc, nil
}

// skipSpineItem filters out front-matter items that carry no prose. Cover,
// nav, and toc pages routinely appear in the spine but would paginate as
// junk chapters.
func skipSpineItem(item *epub.Item) bool {
	id := strings.ToLower(item.ID)
	href := strings.ToLower(path.Base(item.HREF))
	for _, marker := range []string{"cover", "toc", "nav"} {
		if strings.Contains(id, marker) || strings.Contains(href, marker) {
			return true
		}
	}
	return false
}

// chapterTitle picks the best available name for a spine item: its NCX
// entry, else its first heading, else the page title, else a number.
func chapterTitle(href string, titles map[string]string, heading, pageTitle string, num int) string {
	if href != "" {
		if t, ok := titles[href]; ok && t != "" {
			return t
		}
		if t, ok := titles[path.Base(href)]; ok && t != "" {
			return t
		}
	}
	if heading != "" {
		return heading
	}
	if pageTitle != "" {
		return pageTitle
	}
	return fmt.Sprintf("Chapter %d", num)
}
