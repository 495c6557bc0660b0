package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// decodeBytes converts raw file bytes to UTF-8 text. Valid UTF-8 passes
// through; anything else is sniffed and decoded, and when even that fails
// the invalid sequences are replaced rather than failing the whole parse.
func decodeBytes(data []byte) string {
	if utf8.Valid(data) {
		return stripBOM(string(data))
	}

	enc, _, _ := charset.DetermineEncoding(data, "")
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err == nil && utf8.Valid(decoded) {
		return stripBOM(string(decoded))
	}
	return strings.ToValidUTF8(string(data), "�")
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

// normalizeNewlines rewrites Windows and old Mac line endings as plain
// newlines so the pagination engine sees one logical-line convention.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
