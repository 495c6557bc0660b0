package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/karitori/leaf/internal/textutil"
)

const (
	headerTitleCells = 20
	barCells         = 20

	// One header line plus the bar and help lines of the footer.
	chromeLines = 3
)

func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeBookmarks:
		return m.viewBookmarks()
	default:
		return m.viewReading()
	}
}

func (m *Model) viewReading() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewBody(),
		m.viewFooter(),
	)
}

func (m *Model) viewHeader() string {
	doc := m.session.Document()
	title := titleStyle.Render(textutil.Truncate(doc.Title, headerTitleCells, "…"))

	chapter, _, _ := m.session.Position()
	total := m.session.TotalPages()
	pct := 0
	if total > 0 {
		pct = m.session.PageNumber() * 100 / total
	}
	info := headerInfoStyle.Render(fmt.Sprintf("Ch %d/%d  Page %d/%d  %d%%",
		chapter+1, doc.TotalChapters(), m.session.PageNumber(), total, pct))

	return title + " " + info
}

func (m *Model) viewBody() string {
	rows := m.bodyRows()

	var content string
	if page, ok := m.session.CurrentPage(); ok {
		content = page.Content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// bodyRows is the number of terminal rows left for page content. Pages
// are wrapped to fewer lines than this, so the body pads rather than
// clips.
func (m *Model) bodyRows() int {
	rows := m.height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) viewFooter() string {
	bar := barStyle.Render(m.progressBar())

	line := bar
	if m.status != "" {
		line += "  " + statusStyle.Render(m.status)
	}
	return line + "\n" + m.help.View(m.keys)
}

func (m *Model) progressBar() string {
	total := m.session.TotalPages()
	filled := 0
	if total > 0 {
		filled = m.session.PageNumber() * barCells / total
	}
	if filled > barCells {
		filled = barCells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

func (m *Model) viewHelp() string {
	full := m.help
	full.ShowAll = true

	body := lipgloss.JoinVertical(lipgloss.Left,
		overlayTitleStyle.Render("Help"),
		"",
		full.View(m.keys),
		"",
		dimStyle.Render("press ? or q to return"),
	)
	return m.padToHeight(body)
}

func (m *Model) viewBookmarks() string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render(fmt.Sprintf("Bookmarks (%d)", len(m.bookmarks))))
	b.WriteString("\n\n")

	for i, bm := range m.bookmarks {
		row := fmt.Sprintf("%3d  p.%-4d %-20s %s",
			bm.ID, bm.PageNumber,
			textutil.Truncate(bm.ChapterTitle, headerTitleCells, "…"),
			bm.Preview)
		if i == m.selected {
			row = selectedRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: jump  d: delete  q: back"))
	return m.padToHeight(b.String())
}

// padToHeight fills an overlay out to the full terminal height so the
// previous frame never shows through underneath.
func (m *Model) padToHeight(s string) string {
	lines := strings.Count(s, "\n") + 1
	if m.height <= lines {
		return s
	}
	return s + strings.Repeat("\n", m.height-lines)
}
