// Package progress draws the upload progress indicator on a terminal.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/term"
)

const (
	defaultWidth = 40
	maxWidth     = 60
	// step is the percentage granularity of line output on non-terminals.
	step = 10
)

// Bar is an upload.Indicator. On a terminal it redraws a single line in
// place; otherwise it prints a line every step percent so logs stay short.
type Bar struct {
	mu      sync.Mutex
	w       io.Writer
	tty     bool
	width   int
	visible bool
	value   int
	printed int
}

type fder interface {
	Fd() uintptr
}

// NewBar detects whether w is a terminal and sizes the bar to it.
func NewBar(w io.Writer) *Bar {
	tty, width := false, defaultWidth
	if f, ok := w.(fder); ok && term.IsTerminal(int(f.Fd())) {
		tty = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = min(max(cols-10, 10), maxWidth)
		}
	}
	return newBar(w, tty, width)
}

func newBar(w io.Writer, tty bool, width int) *Bar {
	return &Bar{w: w, tty: tty, width: width, printed: -step}
}

func (b *Bar) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.visible {
		return
	}
	b.visible = true
	b.printed = -step
	b.draw()
}

func (b *Bar) Set(percent int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = min(max(percent, 0), 100)
	if b.visible {
		b.draw()
	}
}

func (b *Bar) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible {
		return
	}
	b.visible = false
	if b.tty {
		fmt.Fprint(b.w, "\r"+strings.Repeat(" ", b.width+8)+"\r")
	}
}

func (b *Bar) Value() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

func (b *Bar) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// draw expects b.mu to be held.
func (b *Bar) draw() {
	if b.tty {
		filled := b.width * b.value / 100
		fmt.Fprintf(b.w, "\r[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", b.width-filled), b.value)
		return
	}
	if b.value-b.printed >= step || (b.value == 100 && b.printed != 100) {
		fmt.Fprintf(b.w, "upload progress: %d%%\n", b.value)
		b.printed = b.value
	}
}
