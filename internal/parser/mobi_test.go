package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMOBIExtractsPrintableRuns(t *testing.T) {
	var data []byte
	data = append(data, "BOOKMOBI"...)
	data = append(data, 0x00, 0x01, 0x02, 0x03)
	data = append(data, "The quick brown fox jumps over the lazy dog."...)
	data = append(data, 0xff, 0xfe, 0x00)
	data = append(data, "short"...)
	data = append(data, 0x00)
	data = append(data, "Another long passage of readable book text here."...)
	data = append(data, 0x04)

	path := writeFile(t, "story.mobi", data)

	doc, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "story", doc.Title)
	assert.Equal(t, "MOBI", doc.Format)
	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "story", doc.Chapters[0].Title)

	content := doc.Chapters[0].Content
	assert.Contains(t, content, "The quick brown fox")
	assert.Contains(t, content, "Another long passage")
	assert.NotContains(t, content, "short")
	assert.NotContains(t, content, "BOOKMOBI")
}

func TestMOBIPlainTextFallback(t *testing.T) {
	path := writeFile(t, "plain.mobi", []byte("An entire book exported as plain text.\n\n\n\nWith paragraphs."))

	doc, err := Open(path)
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "An entire book exported as plain text.\n\nWith paragraphs.", doc.Chapters[0].Content)
}

func TestMOBIStripsMarkup(t *testing.T) {
	src := "<html><body><p>A tale of two long sentences stretched out.</p></body></html>"
	path := writeFile(t, "markup.mobi", []byte(src))

	doc, err := Open(path)
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "A tale of two long sentences stretched out.", doc.Chapters[0].Content)
}

func TestMOBIEntitiesUnescaped(t *testing.T) {
	src := "Fish &amp; chips for everyone tonight, plus a &quot;dessert&quot; course."
	path := writeFile(t, "entities.azw", []byte(src))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, `Fish & chips for everyone tonight, plus a "dessert" course.`, doc.Chapters[0].Content)
}

func TestMOBINoReadableText(t *testing.T) {
	path := writeFile(t, "junk.mobi", []byte{0x00, 0x01, 0xff, 0xfe, 0x03})

	doc, err := Open(path)
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "This document contains no readable text.", doc.Chapters[0].Content)
}
