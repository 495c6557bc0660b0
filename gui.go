//go:build gui

package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/karitori/leaf/internal/config"
	"github.com/karitori/leaf/internal/logutil"
	"github.com/karitori/leaf/internal/reading"
	"github.com/karitori/leaf/internal/store"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// The desktop window paginates at a fixed logical viewport; the
// monospace label renders pages exactly as wrapped. 30x86 leaves a
// 24-row, 80-column content area after chrome.
const (
	guiRows = 30
	guiCols = 86
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Leaf - Desktop Book Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  leaf [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  Previous/next page\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     Previous/next chapter\n")
		fmt.Fprintf(os.Stderr, "  Home/End    First/last page\n")
		fmt.Fprintf(os.Stderr, "  Q           Quit\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("leaf %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No book given. Try: leaf -h")
		os.Exit(1)
	}
	path := flag.Arg(0)

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stateDir := store.StateDir()

	logger, logCloser, err := logutil.New(cfg.Log.Level, cfg.LogFile(stateDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser()

	sess, err := reading.Open(path, guiRows, guiCols, reading.Stores{
		Progress:  store.NewProgressStore(stateDir),
		Bookmarks: store.NewBookmarkStore(stateDir),
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open '%s': %v\n", path, err)
		os.Exit(1)
	}

	runWindow(sess)
}

func runWindow(sess *reading.Session) {
	doc := sess.Document()

	a := app.New()
	w := a.NewWindow("leaf - " + doc.Title)

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter

	pageLabel := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	pageScroll := container.NewScroll(pageLabel)

	titles := make([]string, doc.TotalChapters())
	for i := range titles {
		ch, _ := doc.Chapter(i)
		titles[i] = fmt.Sprintf("%d. %s", i+1, ch.Title)
	}

	// Programmatic select updates must not re-trigger the jump, or a
	// mid-chapter page would snap back to the chapter start.
	var updating bool
	chapterSelect := widget.NewSelect(titles, nil)

	updateDisplay := func() {
		if page, ok := sess.CurrentPage(); ok {
			pageLabel.SetText(page.Content)
		} else {
			pageLabel.SetText("")
		}

		chapter, _, _ := sess.Position()
		pct := 0
		if total := sess.TotalPages(); total > 0 {
			pct = sess.PageNumber() * 100 / total
		}
		statusLabel.SetText(fmt.Sprintf("Chapter %d/%d | Page %d/%d (%d%%)",
			chapter+1, doc.TotalChapters(), sess.PageNumber(), sess.TotalPages(), pct))

		if chapter >= 0 && chapter < len(titles) {
			updating = true
			chapterSelect.SetSelectedIndex(chapter)
			updating = false
		}
		pageScroll.ScrollToTop()
	}

	chapterSelect.OnChanged = func(string) {
		if updating {
			return
		}
		if sess.JumpToChapter(chapterSelect.SelectedIndex()) {
			updateDisplay()
		}
	}

	controls := container.NewHBox(
		widget.NewButton("<< Chapter", func() {
			if sess.PrevChapter() {
				updateDisplay()
			}
		}),
		widget.NewButton("< Page", func() {
			if sess.PrevPage() {
				updateDisplay()
			}
		}),
		widget.NewButton("Page >", func() {
			if sess.NextPage() {
				updateDisplay()
			}
		}),
		widget.NewButton("Chapter >>", func() {
			if sess.NextChapter() {
				updateDisplay()
			}
		}),
		chapterSelect,
	)

	var closeOnce sync.Once
	saveAndClose := func() {
		closeOnce.Do(func() {
			if err := sess.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving progress: %v\n", err)
			}
		})
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyLeft:
			if sess.PrevPage() {
				updateDisplay()
			}
		case fyne.KeyRight, fyne.KeySpace:
			if sess.NextPage() {
				updateDisplay()
			}
		case fyne.KeyUp:
			if sess.PrevChapter() {
				updateDisplay()
			}
		case fyne.KeyDown:
			if sess.NextChapter() {
				updateDisplay()
			}
		case fyne.KeyHome:
			sess.JumpToStart()
			updateDisplay()
		case fyne.KeyEnd:
			sess.JumpToEnd()
			updateDisplay()
		case fyne.KeyQ:
			saveAndClose()
			a.Quit()
		}
	})

	w.SetOnClosed(saveAndClose)

	w.Resize(fyne.NewSize(900, 700))
	w.SetContent(container.NewBorder(statusLabel, controls, nil, nil, pageScroll))
	updateDisplay()
	w.ShowAndRun()
}
