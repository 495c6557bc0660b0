package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the reading-view keybindings.
type keyMap struct {
	NextPage    key.Binding
	PrevPage    key.Binding
	NextChapter key.Binding
	PrevChapter key.Binding
	Start       key.Binding
	End         key.Binding
	Mark        key.Binding
	Bookmarks   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPage: key.NewBinding(
			key.WithKeys("j", " ", "down", "enter"),
			key.WithHelp("j/space", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "prev page"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "next chapter"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "prev chapter"),
		),
		Start: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first page"),
		),
		End: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last page"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "bookmark page"),
		),
		Bookmarks: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmarks"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.Mark, k.Bookmarks, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.NextChapter, k.PrevChapter},
		{k.Start, k.End, k.Mark, k.Bookmarks},
		{k.Help, k.Quit},
	}
}

// overlayKeyMap drives the bookmark overlay, where enter means jump
// rather than page forward.
type overlayKeyMap struct {
	Down   key.Binding
	Up     key.Binding
	Jump   key.Binding
	Delete key.Binding
	Close  key.Binding
}

func defaultOverlayKeyMap() overlayKeyMap {
	return overlayKeyMap{
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Jump:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Close:  key.NewBinding(key.WithKeys("q", "esc", "b"), key.WithHelp("q", "back")),
	}
}
