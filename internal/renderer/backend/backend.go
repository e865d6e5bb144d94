// Package backend provides the terminal abstraction the editor draws to and
// reads keys from.
package backend

import (
	"errors"

	"github.com/dshills/typotamer/internal/renderer/core"
)

// ErrClosed is returned by PollEvent once the event source is exhausted or
// the screen has been finalized.
var ErrClosed = errors.New("terminal closed")

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt asks the editor to stop. It is posted from outside
	// the event loop, for example on SIGTERM.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int
}

// KeyEvent returns a key event for a special key.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent returns a key event for a printable character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlF
	KeyCtrlQ
	KeyCtrlS
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyCtrlC:     "Ctrl-C",
	KeyCtrlF:     "Ctrl-F",
	KeyCtrlQ:     "Ctrl-Q",
	KeyCtrlS:     "Ctrl-S",
}

// String returns the key name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Backend defines the interface for terminal/display backends.
// Drawing calls only touch an internal buffer; Show makes them visible.
type Backend interface {
	// Init puts the terminal into raw mode and prepares the screen.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores the terminal to its original state.
	// It is safe to call more than once.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// ClearLine blanks screen row y with the default style.
	ClearLine(y int)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() (Event, error)

	// PostEvent queues a synthetic event for PollEvent.
	PostEvent(event Event)
}

// NullBackend is an in-memory backend for testing.
// PollEvent replays posted events in order and returns ErrClosed once the
// queue is empty instead of blocking.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	shutdown      bool
	events        []Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{width: width, height: height}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

func (b *NullBackend) Shutdown() {
	b.shutdown = true
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at the given position.
// Returns an empty cell for positions outside the terminal.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) ClearLine(y int) {
	if y < 0 || y >= b.height {
		return
	}
	for x := range b.cells[y] {
		b.cells[y][x] = core.EmptyCell()
	}
}

func (b *NullBackend) Clear() {
	for y := range b.cells {
		b.ClearLine(y)
	}
}

func (b *NullBackend) Show() {
	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() (Event, error) {
	if len(b.events) == 0 {
		return Event{}, ErrClosed
	}
	ev := b.events[0]
	b.events = b.events[1:]
	if ev.Type == EventResize {
		b.Resize(ev.Width, ev.Height)
	}
	return ev, nil
}

func (b *NullBackend) PostEvent(event Event) {
	b.events = append(b.events, event)
}

// PostKeys queues key events for the given keys.
func (b *NullBackend) PostKeys(keys ...Key) {
	for _, k := range keys {
		b.PostEvent(KeyEvent(k))
	}
}

// PostString queues one rune event per character of s.
func (b *NullBackend) PostString(s string) {
	for _, r := range s {
		b.PostEvent(RuneEvent(r))
	}
}

// Pending returns the number of queued events.
func (b *NullBackend) Pending() int {
	return len(b.events)
}

// Line returns the text of screen row y.
func (b *NullBackend) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return core.StringFromCells(b.cells[y])
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Shows returns how many frames were shown.
func (b *NullBackend) Shows() int {
	return b.shows
}

// IsShutdown reports whether Shutdown was called.
func (b *NullBackend) IsShutdown() bool {
	return b.shutdown
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
}
