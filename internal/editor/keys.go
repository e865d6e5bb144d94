package editor

import (
	"fmt"

	"github.com/dshills/typotamer/internal/renderer/backend"
)

// processEvent blocks for one terminal event and applies it.
func (e *Editor) processEvent() error {
	ev, err := e.term.PollEvent()
	if err != nil {
		return fmt.Errorf("read key: %w", err)
	}
	return e.handleEvent(ev)
}

func (e *Editor) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		if err := e.processKey(ev); err != nil {
			return err
		}
	case backend.EventResize:
		e.logger.Debug("resize to %dx%d", ev.Width, ev.Height)
	case backend.EventInterrupt:
		// Unsaved changes are dropped; the quit confirmation does not apply.
		e.logger.Info("interrupted, dirty=%t", e.doc.IsDirty())
		e.quitting = true
		return nil
	}
	e.scroll()
	return nil
}

// processKey dispatches a single key press.
func (e *Editor) processKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlQ:
		e.quit()
	case backend.KeyCtrlS:
		return e.save()
	case backend.KeyCtrlF:
		return e.search()
	case backend.KeyRune:
		e.insert(ev.Rune)
	case backend.KeyEnter:
		e.insert('\n')
	case backend.KeyTab:
		e.insert('\t')
	case backend.KeyDelete:
		e.doc.Delete(e.cursor)
	case backend.KeyBackspace:
		if !e.cursor.IsZero() {
			e.moveCursor(backend.KeyLeft)
			e.doc.Delete(e.cursor)
		}
	case backend.KeyUp, backend.KeyDown, backend.KeyLeft, backend.KeyRight,
		backend.KeyPageUp, backend.KeyPageDown, backend.KeyHome, backend.KeyEnd:
		e.moveCursor(ev.Key)
	default:
		e.logger.Debug("ignored key %s", ev.Key)
	}
	return nil
}

func (e *Editor) insert(ch rune) {
	e.doc.Insert(e.cursor, ch)
	e.moveCursor(backend.KeyRight)
}

// quit leaves the running state unless the document is dirty and the
// warning budget is not yet spent. The budget is never replenished.
func (e *Editor) quit() {
	if e.doc.IsDirty() && e.quitTimes > 1 {
		e.quitTimes--
		e.setStatusf("WARNING! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
		e.logger.Debug("quit refused, %d presses left", e.quitTimes)
		return
	}
	e.quitting = true
}

func (e *Editor) save() error {
	if !e.doc.HasFileName() {
		name, err := e.prompt("Save as: ", noopPrompt{})
		if err != nil {
			return err
		}
		if name == "" {
			e.setStatus("Save aborted.")
			return nil
		}
		e.doc.SetFileName(name)
	}

	if err := e.doc.Save(); err != nil {
		e.logger.Error("save: %v", err)
		e.setStatus("Error writing file!")
		return nil
	}
	e.logger.Info("saved %s (%d lines)", e.doc.FileName(), e.doc.Len())
	e.setStatus("File saved successfully.")
	return nil
}

func (e *Editor) search() error {
	h := &searchPrompt{from: e.cursor}
	query, err := e.prompt("Search: ", h)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}
	if pos, ok := e.doc.Find(query, h.from); ok {
		e.cursor = pos
		e.scroll()
		return nil
	}
	e.logger.Debug("search miss: %q", query)
	e.setStatusf("Search for '%s' failed", query)
	return nil
}
