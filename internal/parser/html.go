package parser

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// blockTags start a fresh logical line when entered and left.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dd": true, "dt": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true,
	"ul": true,
}

// paraTags additionally leave a blank line behind them, separating
// paragraphs and headings visually.
var paraTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "blockquote": true,
}

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true}

// htmlToText strips markup from one XHTML chapter file, keeping block
// structure as logical lines. It also reports the first h1/h2/h3 text and
// the document title, both used as chapter-title fallbacks.
func htmlToText(src string) (text, heading, title string) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", "", ""
	}

	var (
		out  strings.Builder
		line strings.Builder
	)
	flush := func() {
		t := strings.TrimSpace(line.String())
		line.Reset()
		if t != "" {
			out.WriteString(t)
			out.WriteByte('\n')
		}
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			line.WriteString(collapseInline(n.Data))
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "title":
				if title == "" {
					title = strings.TrimSpace(nodeText(n))
				}
				return
			case "br":
				flush()
				return
			}
		}

		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			if heading == "" && headingTags[n.Data] {
				heading = strings.TrimSpace(line.String())
			}
			flush()
			if paraTags[n.Data] {
				out.WriteByte('\n')
			}
		}
	}
	walk(root)
	flush()

	text = collapseBlankLines(out.String())
	return text, heading, title
}

// collapseInline rewrites source-formatting whitespace (indentation,
// wrapped lines) as single spaces while keeping word boundaries intact.
func collapseInline(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	joined := strings.Join(fields, " ")
	if isSpaceByte(s[0]) {
		joined = " " + joined
	}
	if isSpaceByte(s[len(s)-1]) {
		joined += " "
	}
	return joined
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// nodeText returns the concatenated text content of a subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

var blankRunRegex = regexp.MustCompile(`\n{3,}`)

// collapseBlankLines caps blank-line runs at one and trims blank edges.
func collapseBlankLines(s string) string {
	s = blankRunRegex.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, "\n")
}
