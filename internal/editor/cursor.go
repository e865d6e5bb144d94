package editor

import (
	"github.com/dshills/typotamer/internal/document"
	"github.com/dshills/typotamer/internal/renderer/backend"
)

// moveCursor applies a navigation key. The cursor may rest one row past the
// last row, and x is clamped to the width of the row it lands on.
func (e *Editor) moveCursor(key backend.Key) {
	_, textHeight := e.textSize()
	x, y := e.cursor.X, e.cursor.Y
	height := e.doc.Len()
	width := e.doc.RowLen(y)

	switch key {
	case backend.KeyUp:
		y = document.SaturatingSub(y, 1)
	case backend.KeyDown:
		if y < height {
			y++
		}
	case backend.KeyLeft:
		if x > 0 {
			x--
		} else if y > 0 {
			y--
			x = e.doc.RowLen(y)
		}
	case backend.KeyRight:
		if x < width {
			x++
		} else if y < height {
			y++
			x = 0
		}
	case backend.KeyPageUp:
		y = document.SaturatingSub(y, textHeight)
	case backend.KeyPageDown:
		y = min(y+textHeight, height)
	case backend.KeyHome:
		x = 0
	case backend.KeyEnd:
		x = width
	}

	x = min(x, e.doc.RowLen(y))
	e.cursor = document.Position{X: x, Y: y}
}

// scroll moves the viewport the minimum distance that keeps the cursor
// inside the text area.
func (e *Editor) scroll() {
	width, height := e.textSize()
	x, y := e.cursor.X, e.cursor.Y

	if y < e.offset.Y {
		e.offset.Y = y
	} else if height > 0 && y >= e.offset.Y+height {
		e.offset.Y = y - height + 1
	}
	if x < e.offset.X {
		e.offset.X = x
	} else if width > 0 && x >= e.offset.X+width {
		e.offset.X = x - width + 1
	}
}
