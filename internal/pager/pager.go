// Package pager implements a minimal full-screen scroller for flattened
// book text, in the spirit of less: raw terminal input, an alternate screen
// buffer, and line- or page-granular movement above a pinned status row.
//
// The pager operates on a caller-supplied string and returns the final
// cursor line; mapping lines back to pages is the caller's concern.
package pager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/karitori/leaf/internal/textutil"
)

// Terminal control sequences.
const (
	clearScreen    = "\x1b[2J\x1b[H"
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	inverseOn      = "\x1b[7m"
	attrReset      = "\x1b[0m"

	ctrlC = 0x03
)

// Test seams for terminal control.
var (
	makeRaw     = term.MakeRaw
	restoreTerm = term.Restore
	isTerminal  = term.IsTerminal
)

// Pager scrolls a block of text in a raw terminal, one keystroke at a time.
// One terminal row is always reserved for the status bar. At rest the
// cursor stays within [0, max(0, total-displayLines)] so the screen is full
// whenever enough content remains.
type Pager struct {
	lines        []string
	current      int
	displayLines int
	cols         int

	in  io.Reader
	out io.Writer
}

// New builds a pager over content for a rows x cols terminal.
func New(content string, rows, cols int) *Pager {
	dl := rows - 1
	if dl < 1 {
		dl = 1
	}
	return &Pager{
		lines:        strings.Split(content, "\n"),
		displayLines: dl,
		cols:         cols,
		in:           os.Stdin,
		out:          os.Stdout,
	}
}

// SetStart seeds the cursor, clamped into [0, total-1]. Seeding past the
// resting range is allowed; the first transition pulls the cursor back.
func (p *Pager) SetStart(line int) {
	if line > len(p.lines)-1 {
		line = len(p.lines) - 1
	}
	if line < 0 {
		line = 0
	}
	p.current = line
}

// CurrentLine returns the cursor position.
func (p *Pager) CurrentLine() int { return p.current }

// TotalLines returns the line count of the content.
func (p *Pager) TotalLines() int { return len(p.lines) }

// DisplayLines returns the number of content rows drawn per screen.
func (p *Pager) DisplayLines() int { return p.displayLines }

func (p *Pager) maxStart() int {
	m := len(p.lines) - p.displayLines
	if m < 0 {
		m = 0
	}
	return m
}

func (p *Pager) moveTo(target int) bool {
	if target > p.maxStart() {
		target = p.maxStart()
	}
	if target < 0 {
		target = 0
	}
	if target == p.current {
		return false
	}
	p.current = target
	return true
}

// NextPage advances one screenful, reporting whether the cursor moved.
func (p *Pager) NextPage() bool { return p.moveTo(p.current + p.displayLines) }

// PrevPage backs up one screenful.
func (p *Pager) PrevPage() bool { return p.moveTo(p.current - p.displayLines) }

// NextLine scrolls down a single line.
func (p *Pager) NextLine() bool { return p.moveTo(p.current + 1) }

// PrevLine scrolls up a single line.
func (p *Pager) PrevLine() bool { return p.moveTo(p.current - 1) }

// GotoStart jumps to the first line.
func (p *Pager) GotoStart() bool { return p.moveTo(0) }

// GotoEnd jumps so the final screen is exactly filled.
func (p *Pager) GotoEnd() bool { return p.moveTo(p.maxStart()) }

// handleKey applies one keystroke. Unrecognized keys change nothing, which
// suppresses the redraw.
func (p *Pager) handleKey(b byte) (changed, quit bool) {
	switch b {
	case 'q', 'Q', ctrlC:
		return false, true
	case ' ', 'f':
		return p.NextPage(), false
	case 'b':
		return p.PrevPage(), false
	case 'j', '\r', '\n':
		return p.NextLine(), false
	case 'k':
		return p.PrevLine(), false
	case 'g':
		return p.GotoStart(), false
	case 'G':
		return p.GotoEnd(), false
	}
	return false, false
}

// render paints one screen: displayLines rows from the cursor, blank-padded
// at the tail, with the status bar pinned to the last terminal row.
func (p *Pager) render(w *bufio.Writer) error {
	if _, err := w.WriteString(clearScreen); err != nil {
		return err
	}
	for i := 0; i < p.displayLines; i++ {
		idx := p.current + i
		if idx < len(p.lines) {
			if _, err := w.WriteString(textutil.Truncate(p.lines[idx], p.cols, "")); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("\r\n"); err != nil {
			return err
		}
	}
	if _, err := w.WriteString(p.statusLine()); err != nil {
		return err
	}
	return w.Flush()
}

// statusLine formats the inverse-video position readout, for example
// " 19-41/312 (13%)  SPACE/f:page b:back j/k:line g/G:top/end q:quit ".
func (p *Pager) statusLine() string {
	total := len(p.lines)
	first := p.current + 1
	last := p.current + p.displayLines
	if last > total {
		last = total
	}
	pct := 100
	if total > 0 {
		pct = last * 100 / total
	}
	s := fmt.Sprintf(" %d-%d/%d (%d%%)  SPACE/f:page b:back j/k:line g/G:top/end q:quit ",
		first, last, total, pct)
	return inverseOn + textutil.Truncate(s, p.cols, "") + attrReset
}

// Run drives the interactive session and returns the final cursor line.
// When standard input is not a terminal the content is written out once,
// unstyled, and the returned cursor is zero.
//
// Raw mode and the alternate screen are entered together and restored on
// every exit path, so a quit, an input error, or a dead output pipe all
// leave the caller's terminal intact.
func (p *Pager) Run() (int, error) {
	f, ok := p.in.(*os.File)
	if !ok || !isTerminal(int(f.Fd())) {
		p.dump()
		return 0, nil
	}

	fd := int(f.Fd())
	oldState, err := makeRaw(fd)
	if err != nil {
		return p.current, fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(p.out, leaveAltScreen+showCursor)
		_ = restoreTerm(fd, oldState)
	}()

	if _, err := io.WriteString(p.out, enterAltScreen+hideCursor); err != nil {
		if isClosedPipe(err) {
			return p.current, nil
		}
		return p.current, err
	}

	w := bufio.NewWriter(p.out)
	if err := p.render(w); err != nil {
		if isClosedPipe(err) {
			return p.current, nil
		}
		return p.current, err
	}

	r := bufio.NewReader(p.in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			// Input gone; treat like a quit.
			return p.current, nil
		}

		changed, quit := p.handleKey(b)
		if quit {
			return p.current, nil
		}
		if changed {
			if err := p.render(w); err != nil {
				if isClosedPipe(err) {
					return p.current, nil
				}
				return p.current, err
			}
		}
	}
}

// dump writes the whole content once for non-interactive callers. A closed
// downstream pipe ends the dump quietly.
func (p *Pager) dump() {
	w := bufio.NewWriter(p.out)
	for _, line := range p.lines {
		if _, err := w.WriteString(line); err != nil {
			return
		}
		if err := w.WriteByte('\n'); err != nil {
			return
		}
	}
	_ = w.Flush()
}

// isClosedPipe reports whether err means the downstream reader went away,
// which ends a session normally rather than failing it.
func isClosedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
