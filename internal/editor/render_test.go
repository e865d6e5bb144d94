package editor

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/typotamer/internal/config"
	"github.com/dshills/typotamer/internal/document"
	"github.com/dshills/typotamer/internal/renderer/backend"
	"github.com/dshills/typotamer/internal/renderer/statusline"
)

func line(term *backend.NullBackend, y int) string {
	return strings.TrimRight(term.Line(y), " ")
}

func TestRenderEmptyDocument(t *testing.T) {
	e, term := newTestEditor(t, 80, 24)
	e.refreshScreen()

	for y := 0; y < 22; y++ {
		got := line(term, y)
		if y == 7 {
			if !strings.HasPrefix(got, "~ ") || !strings.HasSuffix(got, "TypoTamer editor -- version test") {
				t.Errorf("welcome row = %q", got)
			}
			continue
		}
		if got != "~" {
			t.Errorf("row %d = %q, want ~", y, got)
		}
	}

	status := term.Line(22)
	if len([]rune(status)) != 80 {
		t.Errorf("status bar width = %d", len([]rune(status)))
	}
	if !strings.HasPrefix(status, "[No Name] - 0 lines ") || !strings.HasSuffix(status, " 1:1") {
		t.Errorf("status bar = %q", status)
	}
	if got := line(term, 23); got != DefaultHelp {
		t.Errorf("message bar = %q", got)
	}

	x, y, visible := term.CursorPosition()
	if x != 0 || y != 0 || !visible {
		t.Errorf("cursor = (%d,%d) visible=%v", x, y, visible)
	}
	if term.Shows() != 1 {
		t.Errorf("shows = %d, want 1", term.Shows())
	}
}

func TestRenderRowsThroughViewport(t *testing.T) {
	e, term := newTestEditor(t, 10, 5, document.WithContent("abcdefghijklmno\na\tb\nx\n"))
	e.refreshScreen()

	want := []string{"abcdefghij", "a b", "x"}
	for y, w := range want {
		if got := line(term, y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}

	e.offset = document.Position{X: 3, Y: 0}
	e.cursor = document.Position{X: 5, Y: 1}
	e.refreshScreen()
	if got := line(term, 0); got != "defghijklm" {
		t.Errorf("shifted row 0 = %q", got)
	}
	if got := line(term, 1); got != "" {
		t.Errorf("shifted row 1 = %q, want blank", got)
	}
	if x, y, _ := term.CursorPosition(); x != 2 || y != 1 {
		t.Errorf("screen cursor = (%d,%d), want (2,1)", x, y)
	}
}

func TestRenderNoWelcomeForContent(t *testing.T) {
	e, term := newTestEditor(t, 80, 24, document.WithContent("x\n"))
	e.refreshScreen()

	if got := line(term, 7); got != "~" {
		t.Errorf("row 7 = %q, want ~", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	e, term := newTestEditor(t, 60, 10,
		document.WithFileName("a-very-long-file-name-indeed.txt"), document.WithContent("one\ntwo\n"))
	press(t, e, backend.KeyEvent(backend.KeyDown), backend.RuneEvent('!'))
	e.refreshScreen()

	status := term.Line(8)
	if !strings.HasPrefix(status, "a-very-long-file-nam - 2 lines (modified) ") {
		t.Errorf("status bar = %q", status)
	}
	if !strings.HasSuffix(status, " 2:2") {
		t.Errorf("status bar position = %q", status)
	}

	settings := config.Default()
	cell := term.GetCell(0, 8)
	if !cell.Style.Foreground.Equals(settings.UI.StatusForeground) ||
		!cell.Style.Background.Equals(settings.UI.StatusBackground) {
		t.Errorf("status style = %+v", cell.Style)
	}
	if cell := term.GetCell(0, 0); !cell.Style.IsDefault() {
		t.Errorf("text style = %+v, want default", cell.Style)
	}
}

func TestRenderStatusBarTruncated(t *testing.T) {
	e, term := newTestEditor(t, 12, 4, document.WithFileName("notes.txt"))
	e.refreshScreen()

	if got := term.Line(2); got != "notes.txt - " {
		t.Errorf("status bar = %q", got)
	}
}

func TestMessageTimeout(t *testing.T) {
	term := backend.NewNullBackend(40, 6)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := New(term, nil, Config{Now: clock.Now, InitialStatus: "hello there"})

	e.refreshScreen()
	if got := line(term, 5); got != "hello there" {
		t.Fatalf("message bar = %q", got)
	}

	clock.Advance(4 * time.Second)
	e.refreshScreen()
	if got := line(term, 5); got != "hello there" {
		t.Errorf("message bar after 4s = %q", got)
	}

	clock.Advance(time.Second)
	e.refreshScreen()
	if got := line(term, 5); got != "" {
		t.Errorf("message bar after 5s = %q, want blank", got)
	}
}

func TestMessageBarTruncated(t *testing.T) {
	// each cluster is two runes and a cell holds one rune
	term := backend.NewNullBackend(5, 4)
	e := New(term, nil, Config{InitialStatus: strings.Repeat("e\u0301", 6)})

	if got := statusline.Truncate(e.Status().Text, 3); got != strings.Repeat("e\u0301", 3) {
		t.Errorf("truncate = %q", got)
	}
	e.refreshScreen()
	if got := term.Line(3); got != "e\u0301e\u0301e" {
		t.Errorf("message bar = %q", got)
	}
}

func TestRenderFarewell(t *testing.T) {
	e, term := newTestEditor(t, 80, 24, document.WithContent("text\n"))
	e.refreshScreen()
	press(t, e, backend.KeyEvent(backend.KeyCtrlQ))
	e.refreshScreen()

	if got := line(term, 0); got != farewell {
		t.Errorf("row 0 = %q, want %q", got, farewell)
	}
	for y := 1; y < 24; y++ {
		if got := line(term, y); got != "" {
			t.Errorf("row %d = %q, want blank", y, got)
		}
	}
}
