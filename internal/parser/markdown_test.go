package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownChapters(t *testing.T) {
	src := "Intro paragraph.\n\n# First Steps\n\nBody one.\n\n\n\nStill body one.\n\n# Deep Water\n\nBody two.\n"
	path := writeFile(t, "book.md", []byte(src))

	doc, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "First Steps", doc.Title)
	assert.Equal(t, "Markdown", doc.Format)

	require.Len(t, doc.Chapters, 3)
	assert.Equal(t, "Preface", doc.Chapters[0].Title)
	assert.Equal(t, "Intro paragraph.", doc.Chapters[0].Content)
	assert.Equal(t, "First Steps", doc.Chapters[1].Title)
	assert.Equal(t, "Body one.\n\nStill body one.", doc.Chapters[1].Content)
	assert.Equal(t, "Deep Water", doc.Chapters[2].Title)
	assert.Equal(t, "Body two.", doc.Chapters[2].Content)
}

func TestMarkdownBlankPreambleSkipped(t *testing.T) {
	path := writeFile(t, "book.md", []byte("\n\n# Only Chapter\n\ntext\n"))

	doc, err := Open(path)
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "Only Chapter", doc.Chapters[0].Title)
}

func TestMarkdownNoHeaders(t *testing.T) {
	path := writeFile(t, "plain.md", []byte("just text\nmore text"))

	doc, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "plain", doc.Title)
	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "plain", doc.Chapters[0].Title)
	assert.Equal(t, "just text\nmore text", doc.Chapters[0].Content)
}

func TestMarkdownSubheadersStayInChapter(t *testing.T) {
	src := "# Top\n\n## Section\n\ntext under section\n"
	path := writeFile(t, "sub.md", []byte(src))

	doc, err := Open(path)
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "Top", doc.Chapters[0].Title)
	assert.Equal(t, "## Section\n\ntext under section", doc.Chapters[0].Content)
}

func TestMarkdownWindowsLineEndings(t *testing.T) {
	src := "# One\r\n\r\nline a\r\nline b\r\n"
	path := writeFile(t, "crlf.md", []byte(src))

	doc, err := Open(path)
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "One", doc.Chapters[0].Title)
	assert.Equal(t, "line a\nline b", doc.Chapters[0].Content)
}

func TestCleanChapterBody(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want string
	}{
		{"surrounding whitespace trimmed", []string{"a  ", "\tb\t"}, "a\nb"},
		{"indentation stripped", []string{"    indented", "  more"}, "indented\nmore"},
		{"blank runs collapsed", []string{"a", "", "", "", "b"}, "a\n\nb"},
		{"blank edges dropped", []string{"", "a", ""}, "a"},
		{"all blank", []string{"", "  ", ""}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanChapterBody(tc.in))
		})
	}
}
