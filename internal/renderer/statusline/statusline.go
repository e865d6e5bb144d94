// Package statusline draws the two bottom rows of the editor: the status
// bar with file information and the message bar below it.
package statusline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/typotamer/internal/renderer/backend"
	"github.com/dshills/typotamer/internal/renderer/core"
)

// FileNameWidth is the most grapheme clusters of the file name shown.
const FileNameWidth = 20

// Height is the number of rows the status line uses.
const Height = 2

// StatusLine holds what the status and message bars display.
type StatusLine struct {
	filename   string // empty for an unnamed document
	modified   bool
	line       int // 1-indexed
	col        int // 1-indexed
	totalLines int
	message    string

	barStyle core.Style
	width    int
}

// New creates a status line drawn with the given bar colors.
func New(fg, bg core.Color) *StatusLine {
	return &StatusLine{
		barStyle: core.DefaultStyle().WithForeground(fg).WithBackground(bg),
		line:     1,
		col:      1,
	}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetMessage sets the message bar text. An empty message blanks the bar.
func (s *StatusLine) SetMessage(msg string) {
	s.message = msg
}

// ClearMessage clears the message bar.
func (s *StatusLine) ClearMessage() {
	s.message = ""
}

// Resize updates the width the bars are padded and clipped to.
func (s *StatusLine) Resize(width int) {
	s.width = max(width, 0)
}

// Text returns the status bar content padded or clipped to the width.
func (s *StatusLine) Text() string {
	name := "[No Name]"
	if s.filename != "" {
		name = Truncate(s.filename, FileNameWidth)
	}
	modified := ""
	if s.modified {
		modified = " (modified)"
	}
	left := fmt.Sprintf("%s - %d lines%s", name, s.totalLines, modified)
	right := fmt.Sprintf("%d:%d", s.line, s.col)

	gap := s.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	text := left + strings.Repeat(" ", max(gap, 0)) + right
	n := utf8.RuneCountInString(text)
	if n < s.width {
		return text + strings.Repeat(" ", s.width-n)
	}
	return clip(text, s.width)
}

// Render draws the status bar at row and the message bar at row+1.
func (s *StatusLine) Render(b backend.Backend, row int) {
	b.ClearLine(row)
	DrawText(b, row, s.Text(), s.barStyle)

	b.ClearLine(row + 1)
	DrawText(b, row+1, Truncate(s.message, s.width), core.DefaultStyle())
}

// DrawText writes s to row y one rune per cell, clipped at the right edge.
// Tabs are drawn as blanks and other control characters as '?'.
func DrawText(b backend.Backend, y int, s string, style core.Style) {
	width, _ := b.Size()
	x := 0
	for _, r := range s {
		if x >= width {
			return
		}
		b.SetCell(x, y, core.NewStyledCell(displayRune(r), style))
		x++
	}
}

func displayRune(r rune) rune {
	switch {
	case r == '\t':
		return ' '
	case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
		return '?'
	}
	return r
}

// Truncate returns the longest prefix of s that holds at most n grapheme
// clusters, so a base character is never split from its combining marks.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	count, end := 0, 0
	for g.Next() {
		if count == n {
			break
		}
		_, end = g.Positions()
		count++
	}
	return s[:end]
}

// clip returns the first n runes of s.
func clip(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
