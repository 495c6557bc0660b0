// Package output renders the command line surfaces of leaf: the book
// splash, the reading history table and status messages.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/karitori/leaf/internal/store"
	"github.com/karitori/leaf/internal/textutil"
)

// Formatter handles formatted output for leaf.
type Formatter struct {
	quiet   bool
	writer  io.Writer
	spinner *spinner.Spinner
}

// SplashInfo describes the book about to open.
type SplashInfo struct {
	Title      string
	Author     string
	Format     string
	Chapters   int
	Pages      int
	ResumePage int
}

// NewFormatter creates a new Formatter. It checks the NO_COLOR
// environment variable to determine if colour output should be
// disabled.
func NewFormatter(quiet bool, w io.Writer) *Formatter {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	return &Formatter{quiet: quiet, writer: w}
}

// PrintSplash prints the book banner shown before the reader opens.
func (f *Formatter) PrintSplash(info SplashInfo) {
	if f.quiet {
		return
	}

	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	_, _ = cyan.Fprintf(f.writer, "%s\n", info.Title)
	if info.Author != "" {
		_, _ = white.Fprintf(f.writer, "by %s\n", info.Author)
	}
	_, _ = dim.Fprintf(f.writer, "%s | %d chapters | %d pages\n",
		info.Format, info.Chapters, info.Pages)
	if info.ResumePage > 1 {
		_, _ = dim.Fprintf(f.writer, "resuming at page %d\n", info.ResumePage)
	}
	_, _ = fmt.Fprintln(f.writer, "")
}

// PrintRecent renders the reading history, most recent first.
func (f *Formatter) PrintRecent(records []store.Progress) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(f.writer, "No reading history yet.")
		return
	}

	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	_, _ = cyan.Fprintln(f.writer, "Recent books")
	for i, rec := range records {
		pct := 0
		if rec.TotalPages > 0 {
			pct = rec.CurrentPage * 100 / rec.TotalPages
		}
		_, _ = white.Fprintf(f.writer, "%2d. %-32s ", i+1,
			textutil.Truncate(rec.FileName, 32, "…"))
		_, _ = dim.Fprintf(f.writer, "page %d/%d (%d%%) | %s\n",
			rec.CurrentPage, rec.TotalPages, pct, formatSince(rec.LastReadTime))
	}
}

// PrintFormats lists the supported input formats.
func (f *Formatter) PrintFormats(formats []string) {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite)

	_, _ = cyan.Fprintln(f.writer, "Supported formats")
	for _, line := range formats {
		_, _ = white.Fprintf(f.writer, "  %s\n", line)
	}
}

// PrintSuccess prints a confirmation line.
func (f *Formatter) PrintSuccess(msg string) {
	if f.quiet {
		return
	}
	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(f.writer, "%s\n", msg)
}

// PrintInfo prints a neutral status line.
func (f *Formatter) PrintInfo(msg string) {
	if f.quiet {
		return
	}
	dim := color.New(color.FgHiBlack)
	_, _ = dim.Fprintf(f.writer, "%s\n", msg)
}

// PrintError prints an error line. Errors ignore the quiet flag.
func (f *Formatter) PrintError(err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprintf(f.writer, "Error: %v\n", err)
}

// StartSpinner shows an animated spinner with the given message. A
// spinner that is already running is stopped first.
func (f *Formatter) StartSpinner(msg string) {
	if f.quiet {
		return
	}
	f.StopSpinner()
	f.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(f.writer))
	f.spinner.Suffix = " " + msg
	f.spinner.Start()
}

// StopSpinner halts the active spinner, if any.
func (f *Formatter) StopSpinner() {
	if f.spinner != nil {
		f.spinner.Stop()
		f.spinner = nil
	}
}

func formatSince(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours())/24)
	}
}
