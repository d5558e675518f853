package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

type ProgressStyle int

const (
	// ProgressOff drops every update.
	ProgressOff ProgressStyle = iota
	// ProgressLines prints each update on its own line.
	ProgressLines
	// ProgressInPlace keeps rewriting a single status line.
	ProgressInPlace
)

// Progress is the status line shared by the indexer and the relocator. In
// place mode it returns to column zero and pads with spaces so a shorter
// line fully covers the previous one.
type Progress struct {
	mu      sync.Mutex
	dst     io.Writer
	style   ProgressStyle
	lastLen int
}

func NewProgress(dst io.Writer, style ProgressStyle) *Progress {
	if dst == nil {
		style = ProgressOff
	}
	return &Progress{dst: dst, style: style}
}

// SupportsInPlaceUpdates reports whether dst is a terminal.
func SupportsInPlaceUpdates(dst io.Writer) bool {
	file, ok := dst.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func (p *Progress) Update(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.style {
	case ProgressLines:
		fmt.Fprintln(p.dst, line)
	case ProgressInPlace:
		width := runewidth.StringWidth(line)
		pad := ""
		if p.lastLen > width {
			pad = strings.Repeat(" ", p.lastLen-width)
		}
		fmt.Fprintf(p.dst, "\r%s%s", line, pad)
		p.lastLen = width
	}
}

// Step reports item index (1-based) of total with a bar in front of line.
func (p *Progress) Step(index, total int, line string) {
	percent := 100.0
	if total > 0 {
		percent = float64(index) / float64(total) * 100
	}
	p.Update(fmt.Sprintf("%s %d/%d %s", RenderBar(percent, 20), index, total, line))
}

// Break ends an active status line so other output starts on a fresh one.
func (p *Progress) Break() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.style == ProgressInPlace && p.lastLen > 0 {
		fmt.Fprintln(p.dst)
		p.lastLen = 0
	}
}

// RenderBar draws percent as [####----] followed by the number.
func RenderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if width <= 0 {
		width = 16
	}
	filled := int((percent / 100) * float64(width))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("[%s] %5.1f%%", bar, percent)
}
