package editor

import (
	"fmt"
	"unicode"

	"github.com/dshills/typotamer/internal/document"
	"github.com/dshills/typotamer/internal/renderer/backend"
)

// PromptHandler reacts to each keystroke of a prompt. It runs after the
// keystroke has been applied to input and may move the cursor or set state
// of its own.
type PromptHandler interface {
	OnKeystroke(e *Editor, ev backend.Event, input string)
}

// PromptFunc adapts a function to PromptHandler.
type PromptFunc func(e *Editor, ev backend.Event, input string)

func (f PromptFunc) OnKeystroke(e *Editor, ev backend.Event, input string) {
	f(e, ev, input)
}

type noopPrompt struct{}

func (noopPrompt) OnKeystroke(*Editor, backend.Event, string) {}

// searchPrompt runs an incremental search as the query is typed.
// from is where the current match search starts; Right and Down advance it
// to the next match.
type searchPrompt struct {
	from document.Position
}

func (s *searchPrompt) OnKeystroke(e *Editor, ev backend.Event, input string) {
	if ev.Key == backend.KeyRight || ev.Key == backend.KeyDown {
		next := document.Position{X: e.cursor.X + 1, Y: e.cursor.Y}
		if pos, ok := e.doc.Find(input, next); ok {
			s.from = pos
			e.cursor = pos
			e.scroll()
		}
		return
	}
	if pos, ok := e.doc.Find(input, s.from); ok {
		e.cursor = pos
		e.scroll()
	}
}

// prompt shows label followed by the typed input in the message bar until
// Enter or Esc. Esc and an interrupt discard the input. An empty result
// means the prompt was aborted.
func (e *Editor) prompt(label string, h PromptHandler) (string, error) {
	if h == nil {
		h = noopPrompt{}
	}
	var input []rune

loop:
	for {
		e.setStatus(label + string(input))
		e.refreshScreen()

		ev, err := e.term.PollEvent()
		if err != nil {
			return "", fmt.Errorf("prompt %q: %w", label, err)
		}
		if ev.Type == backend.EventInterrupt {
			e.quitting = true
			input = nil
			break loop
		}
		if ev.Type != backend.EventKey {
			continue
		}

		switch ev.Key {
		case backend.KeyBackspace:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case backend.KeyEnter:
			break loop
		case backend.KeyEscape:
			input = nil
			break loop
		case backend.KeyRune:
			if !unicode.IsControl(ev.Rune) {
				input = append(input, ev.Rune)
			}
		}
		h.OnKeystroke(e, ev, string(input))
	}

	e.setStatus("")
	return string(input), nil
}
