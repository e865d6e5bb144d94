package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/typotamer/internal/renderer/core"
	"github.com/dshills/typotamer/internal/renderer/statusline"
)

const farewell = "Goodbye."

// refreshScreen draws one complete frame.
func (e *Editor) refreshScreen() {
	e.term.HideCursor()

	if e.quitting {
		e.term.Clear()
		statusline.DrawText(e.term, 0, farewell, core.DefaultStyle())
		e.term.ShowCursor(0, 1)
		e.term.Show()
		return
	}

	width, height := e.textSize()
	e.drawRows(width, height)
	e.drawStatus(width, height)

	rel := e.cursor.Sub(e.offset)
	e.term.ShowCursor(rel.X, rel.Y)
	e.term.Show()
}

func (e *Editor) drawRows(width, height int) {
	for y := 0; y < height; y++ {
		e.term.ClearLine(y)
		if row := e.doc.Row(e.offset.Y + y); row != nil {
			statusline.DrawText(e.term, y, row.Render(e.offset.X, e.offset.X+width), core.DefaultStyle())
			continue
		}
		if e.doc.IsEmpty() && y == height/3 {
			statusline.DrawText(e.term, y, e.welcome(width), core.DefaultStyle())
			continue
		}
		statusline.DrawText(e.term, y, "~", core.DefaultStyle())
	}
}

func (e *Editor) welcome(width int) string {
	msg := statusline.Truncate(fmt.Sprintf("TypoTamer editor -- version %s", e.version), width)
	padding := (width - utf8.RuneCountInString(msg)) / 2
	if padding <= 0 {
		return msg
	}
	return "~" + strings.Repeat(" ", padding-1) + msg
}

// drawStatus fills the status line from editor state and draws it below
// the text area. Messages older than the timeout are not shown.
func (e *Editor) drawStatus(width, row int) {
	e.bar.Resize(width)
	e.bar.SetFilename(e.doc.FileName())
	e.bar.SetModified(e.doc.IsDirty())
	e.bar.SetTotalLines(e.doc.Len())
	e.bar.SetPosition(e.cursor.Y+1, e.cursor.X+1)
	if e.now().Sub(e.status.Time) < e.settings.Editor.MessageTimeout {
		e.bar.SetMessage(e.status.Text)
	} else {
		e.bar.ClearMessage()
	}
	e.bar.Render(e.term, row)
}
