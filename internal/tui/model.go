// Package tui implements the full-screen reading view on top of
// bubbletea. It renders one page at a time with a header, a progress
// bar and a help footer, and layers help and bookmark overlays over
// the page when asked.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/karitori/leaf/internal/reading"
	"github.com/karitori/leaf/internal/store"
)

// statusTimeout is how long a transient status message stays visible.
const statusTimeout = 2 * time.Second

type mode int

const (
	modeReading mode = iota
	modeHelp
	modeBookmarks
)

// clearStatusMsg expires the transient status line. The sequence
// number ties it to the flash that scheduled it, so a stale timer
// cannot wipe a newer message.
type clearStatusMsg struct {
	seq int
}

// Model is the bubbletea model for the reader.
type Model struct {
	session *reading.Session
	keys    keyMap
	overlay overlayKeyMap
	help    help.Model
	log     zerolog.Logger

	width  int
	height int
	ready  bool

	mode      mode
	status    string
	statusSeq int

	bookmarks []store.Bookmark
	selected  int
}

// New builds the reader UI over an open session.
func New(session *reading.Session, log zerolog.Logger) *Model {
	return &Model{
		session: session,
		keys:    defaultKeyMap(),
		overlay: defaultOverlayKeyMap(),
		help:    help.New(),
		log:     log,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = msg.Width > 0 && msg.Height > 0
		m.help.Width = msg.Width
		m.session.Resize(msg.Height, msg.Width)
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeHelp:
			return m.updateHelp(msg)
		case modeBookmarks:
			return m.updateBookmarks(msg)
		default:
			return m.updateReading(msg)
		}
	}
	return m, nil
}

func (m *Model) updateReading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.session.Close(); err != nil {
			m.log.Warn().Err(err).Msg("saving progress on quit")
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPage):
		if !m.session.NextPage() {
			return m.flash("End of book")
		}

	case key.Matches(msg, m.keys.PrevPage):
		if !m.session.PrevPage() {
			return m.flash("Start of book")
		}

	case key.Matches(msg, m.keys.NextChapter):
		if !m.session.NextChapter() {
			return m.flash("No next chapter")
		}

	case key.Matches(msg, m.keys.PrevChapter):
		if !m.session.PrevChapter() {
			return m.flash("No previous chapter")
		}

	case key.Matches(msg, m.keys.Start):
		m.session.JumpToStart()

	case key.Matches(msg, m.keys.End):
		m.session.JumpToEnd()

	case key.Matches(msg, m.keys.Mark):
		bm, err := m.session.AddBookmark("")
		if err != nil {
			if errors.Is(err, store.ErrTooManyBookmarks) {
				return m.flash("Bookmark limit reached")
			}
			m.log.Warn().Err(err).Msg("adding bookmark")
			return m.flash("Could not save bookmark")
		}
		return m.flash(fmt.Sprintf("Bookmark %d added", bm.ID))

	case key.Matches(msg, m.keys.Bookmarks):
		return m.openBookmarks()

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}
	return m, nil
}

func (m *Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeReading
	}
	return m, nil
}

func (m *Model) openBookmarks() (tea.Model, tea.Cmd) {
	marks, err := m.session.Bookmarks()
	if err != nil {
		m.log.Warn().Err(err).Msg("listing bookmarks")
		return m.flash("Could not load bookmarks")
	}
	if len(marks) == 0 {
		return m.flash("No bookmarks yet")
	}
	m.bookmarks = marks
	m.selected = 0
	m.mode = modeBookmarks
	return m, nil
}

func (m *Model) updateBookmarks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.overlay.Close):
		m.mode = modeReading

	case key.Matches(msg, m.overlay.Down):
		if m.selected < len(m.bookmarks)-1 {
			m.selected++
		}

	case key.Matches(msg, m.overlay.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.overlay.Jump):
		if len(m.bookmarks) == 0 {
			return m, nil
		}
		bm := m.bookmarks[m.selected]
		m.mode = modeReading
		if !m.session.JumpToBookmark(bm.ID) {
			return m.flash("Bookmark points past the end")
		}

	case key.Matches(msg, m.overlay.Delete):
		if len(m.bookmarks) == 0 {
			return m, nil
		}
		bm := m.bookmarks[m.selected]
		if err := m.session.RemoveBookmark(bm.ID); err != nil {
			m.log.Warn().Err(err).Msg("deleting bookmark")
			return m.flash("Could not delete bookmark")
		}
		m.bookmarks = append(m.bookmarks[:m.selected], m.bookmarks[m.selected+1:]...)
		if m.selected >= len(m.bookmarks) && m.selected > 0 {
			m.selected--
		}
		if len(m.bookmarks) == 0 {
			m.mode = modeReading
			return m.flash("No bookmarks left")
		}
	}
	return m, nil
}

// flash shows a transient status message and schedules its removal.
func (m *Model) flash(text string) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
