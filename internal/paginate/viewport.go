package paginate

import (
	"os"

	"golang.org/x/term"
)

// Fallback geometry for environments without a detectable terminal (pipes,
// dumb terminals, tests).
const (
	FallbackRows = 24
	FallbackCols = 80
)

// termSize is swapped out by tests.
var termSize = term.GetSize

// DetectViewport returns the terminal size of stdout in rows and columns,
// or the 24x80 fallback when no terminal is attached.
func DetectViewport() (rows, cols int) {
	w, h, err := termSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return FallbackRows, FallbackCols
	}
	return h, w
}
