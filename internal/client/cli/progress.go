package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Terminal probes, replaceable in tests.
var (
	isTerminal = term.IsTerminal
	getSize    = term.GetSize
)

const (
	barMaxWidth = 40
	barMinWidth = 10
	milestone   = 25
)

// progressBar draws upload progress. On a terminal it redraws one line in
// place; otherwise it prints a line at every 25% milestone.
type progressBar struct {
	w     io.Writer
	tty   bool
	width int
	shown int
	drawn bool
}

func newProgressBar(w io.Writer, fd int) *progressBar {
	b := &progressBar{w: w, shown: -1, width: barMaxWidth}
	if !isTerminal(fd) {
		return b
	}
	b.tty = true
	if cols, _, err := getSize(fd); err == nil {
		// room for brackets and " 100%"
		b.width = min(barMaxWidth, max(barMinWidth, cols-8))
	}
	return b
}

// Update renders p (0-100). Repeated values are not redrawn.
func (b *progressBar) Update(p float64) {
	pct := int(p)
	pct = min(100, max(0, pct))
	if pct == b.shown {
		return
	}

	if b.tty {
		b.shown = pct
		b.drawn = true
		fmt.Fprintf(b.w, "\r%s", renderBar(pct, b.width))
		return
	}

	next := (b.shown/milestone + 1) * milestone
	if b.shown < 0 {
		next = 0
	}
	if pct < next {
		return
	}
	b.shown = pct - pct%milestone
	fmt.Fprintf(b.w, "Generating documentation... %d%%\n", b.shown)
}

// Done terminates the in-place line.
func (b *progressBar) Done() {
	if b.tty && b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

func renderBar(pct, width int) string {
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), pct)
}
