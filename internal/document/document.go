// Package document defines the parsed book model consumed by the pagination
// engine and the reading session.
package document

import "strings"

// Chapter is one ordered unit of readable text. Content is plain text with
// newline-delimited logical lines; markup is stripped by the parsers.
type Chapter struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Document is a parsed book: metadata plus ordered chapters. Chapter
// indices are contiguous from zero.
type Document struct {
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Author   string    `json:"author,omitempty"`
	Format   string    `json:"format"`
	Chapters []Chapter `json:"chapters"`
}

// TotalChapters returns the chapter count.
func (d *Document) TotalChapters() int { return len(d.Chapters) }

// Chapter returns the chapter at index i.
func (d *Document) Chapter(i int) (Chapter, bool) {
	if i < 0 || i >= len(d.Chapters) {
		return Chapter{}, false
	}
	return d.Chapters[i], true
}

// TotalLines returns the logical line count across all chapters, before any
// wrapping.
func (d *Document) TotalLines() int {
	n := 0
	for _, ch := range d.Chapters {
		n += strings.Count(ch.Content, "\n") + 1
	}
	return n
}

// Normalize reindexes chapters contiguously from zero and guarantees the
// document can produce at least one page. The pagination engine drops
// chapters that reflow to nothing, so a document whose every chapter is
// blank gets a single placeholder chapter instead of becoming unreadable.
func (d *Document) Normalize() {
	if strings.TrimSpace(d.Title) == "" {
		d.Title = "Untitled"
	}

	blank := true
	for _, ch := range d.Chapters {
		if strings.TrimSpace(ch.Content) != "" {
			blank = false
			break
		}
	}
	if len(d.Chapters) == 0 || blank {
		d.Chapters = []Chapter{{
			Title:   d.Title,
			Content: "This document contains no readable text.",
		}}
	}

	for i := range d.Chapters {
		d.Chapters[i].Index = i
		if strings.TrimSpace(d.Chapters[i].Title) == "" {
			d.Chapters[i].Title = "Untitled chapter"
		}
	}
}
