package editor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/typotamer/internal/config"
	"github.com/dshills/typotamer/internal/document"
	"github.com/dshills/typotamer/internal/renderer/backend"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type failingFS struct{}

func (failingFS) ReadFile(string) ([]byte, error) { return nil, errors.New("read failed") }

func (failingFS) WriteFile(string, []byte) error { return errors.New("disk full") }

func newTestEditor(t *testing.T, width, height int, opts ...document.Option) (*Editor, *backend.NullBackend) {
	t.Helper()
	term := backend.NewNullBackend(width, height)
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	e := New(term, document.New(opts...), Config{Version: "test", Now: clock.Now})
	return e, term
}

func rowsOf(d *document.Document) []string {
	out := make([]string, d.Len())
	for i := range out {
		out[i] = d.Row(i).String()
	}
	return out
}

func press(t *testing.T, e *Editor, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		if err := e.handleEvent(ev); err != nil {
			t.Fatalf("handleEvent(%v): %v", ev.Key, err)
		}
	}
}

func typed(s string) []backend.Event {
	var out []backend.Event
	for _, r := range s {
		out = append(out, backend.RuneEvent(r))
	}
	return out
}

func TestTypeAndSaveAs(t *testing.T) {
	fs := document.NewMemFS()
	e, term := newTestEditor(t, 80, 24, document.WithFileSystem(fs))

	term.PostString("abc")
	term.PostKeys(backend.KeyCtrlS)
	term.PostString("out.txt")
	term.PostKeys(backend.KeyEnter, backend.KeyCtrlQ)

	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	doc := e.Document()
	if got := rowsOf(doc); len(got) != 1 || got[0] != "abc" {
		t.Errorf("rows = %q, want [abc]", got)
	}
	if doc.IsDirty() {
		t.Error("document should be clean after save")
	}
	if doc.FileName() != "out.txt" {
		t.Errorf("FileName = %q, want out.txt", doc.FileName())
	}
	data, err := fs.ReadFile("out.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "abc\n" {
		t.Errorf("file = %q, want %q", data, "abc\n")
	}
	if got := e.Status().Text; got != "File saved successfully." {
		t.Errorf("status = %q", got)
	}
	if !e.IsQuitting() {
		t.Error("expected editor to quit")
	}
	if !strings.HasPrefix(term.Line(0), farewell) {
		t.Errorf("last frame line 0 = %q, want farewell", term.Line(0))
	}
}

func TestSaveAborted(t *testing.T) {
	tests := []struct {
		name   string
		prompt []backend.Event
	}{
		{"escape", append(typed("name.txt"), backend.KeyEvent(backend.KeyEscape))},
		{"empty enter", []backend.Event{backend.KeyEvent(backend.KeyEnter)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := document.NewMemFS()
			e, term := newTestEditor(t, 80, 24, document.WithFileSystem(fs))
			press(t, e, backend.RuneEvent('x'))

			for _, ev := range tt.prompt {
				term.PostEvent(ev)
			}
			press(t, e, backend.KeyEvent(backend.KeyCtrlS))

			if got := e.Status().Text; got != "Save aborted." {
				t.Errorf("status = %q, want %q", got, "Save aborted.")
			}
			if !e.Document().IsDirty() {
				t.Error("document should still be dirty")
			}
			if e.Document().HasFileName() {
				t.Errorf("file name set to %q", e.Document().FileName())
			}
			if fs.Writes() != 0 {
				t.Errorf("writes = %d, want 0", fs.Writes())
			}
		})
	}
}

func TestSaveNamedDocumentSkipsPrompt(t *testing.T) {
	fs := document.NewMemFS()
	e, term := newTestEditor(t, 80, 24,
		document.WithFileSystem(fs), document.WithFileName("notes.txt"), document.WithContent("one\n"))

	press(t, e, backend.KeyEvent(backend.KeyEnd), backend.RuneEvent('!'), backend.KeyEvent(backend.KeyCtrlS))

	if term.Pending() != 0 {
		t.Errorf("pending = %d", term.Pending())
	}
	data, err := fs.ReadFile("notes.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "one!\n" {
		t.Errorf("file = %q", data)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24,
		document.WithFileSystem(failingFS{}), document.WithFileName("out.txt"))

	press(t, e, backend.RuneEvent('a'), backend.KeyEvent(backend.KeyCtrlS))

	if got := e.Status().Text; got != "Error writing file!" {
		t.Errorf("status = %q", got)
	}
	if !e.Document().IsDirty() {
		t.Error("failed save must leave document dirty")
	}
}

func TestDeleteAndBackspace(t *testing.T) {
	tests := []struct {
		name       string
		keys       []backend.Key
		wantRows   []string
		wantCursor document.Position
	}{
		{"delete at row end joins", []backend.Key{backend.KeyEnd, backend.KeyDelete}, []string{"helloworld"}, document.Position{X: 5, Y: 0}},
		{"delete mid row", []backend.Key{backend.KeyDelete}, []string{"ello", "world"}, document.Position{}},
		{"backspace at origin", []backend.Key{backend.KeyBackspace}, []string{"hello", "world"}, document.Position{}},
		{"backspace mid row", []backend.Key{backend.KeyEnd, backend.KeyBackspace}, []string{"hell", "world"}, document.Position{X: 4, Y: 0}},
		{"backspace at row start joins", []backend.Key{backend.KeyDown, backend.KeyBackspace}, []string{"helloworld"}, document.Position{X: 5, Y: 0}},
		{"delete past last row", []backend.Key{backend.KeyPageDown, backend.KeyDelete}, []string{"hello", "world"}, document.Position{X: 0, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, 80, 24, document.WithContent("hello\nworld\n"))
			for _, k := range tt.keys {
				press(t, e, backend.KeyEvent(k))
			}
			got := rowsOf(e.Document())
			if strings.Join(got, "|") != strings.Join(tt.wantRows, "|") {
				t.Errorf("rows = %q, want %q", got, tt.wantRows)
			}
			if e.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %v, want %v", e.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestInsertGrowsRowInOrder(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24)
	input := "typo tamer"

	for i, r := range input {
		press(t, e, backend.RuneEvent(r))
		if got := e.Document().RowLen(0); got != i+1 {
			t.Fatalf("after %d inserts row len = %d", i+1, got)
		}
	}
	if got := e.Document().Row(0).String(); got != input {
		t.Errorf("row = %q, want %q", got, input)
	}
	if e.Cursor() != (document.Position{X: len(input), Y: 0}) {
		t.Errorf("cursor = %v", e.Cursor())
	}
}

func TestEnterAndTab(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24, document.WithContent("ab\n"))

	press(t, e,
		backend.KeyEvent(backend.KeyRight),
		backend.KeyEvent(backend.KeyEnter),
		backend.KeyEvent(backend.KeyTab))

	got := rowsOf(e.Document())
	if strings.Join(got, "|") != "a|\tb" {
		t.Errorf("rows = %q", got)
	}
	if e.Cursor() != (document.Position{X: 1, Y: 1}) {
		t.Errorf("cursor = %v, want (1,1)", e.Cursor())
	}
}

func TestIgnoredKeys(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24, document.WithContent("abc\n"))

	press(t, e, backend.KeyEvent(backend.KeyInsert), backend.KeyEvent(backend.KeyEscape), backend.KeyEvent(backend.KeyCtrlC))

	if e.Document().IsDirty() || e.Cursor() != (document.Position{}) || e.IsQuitting() {
		t.Error("ignored keys changed editor state")
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantCursor document.Position
		wantStatus string
	}{
		{"match on second row", "world", document.Position{X: 0, Y: 1}, ""},
		{"no match", "xyz", document.Position{}, "Search for 'xyz' failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, term := newTestEditor(t, 80, 24, document.WithContent("hello\nworld\n"))
			term.PostString(tt.query)
			term.PostKeys(backend.KeyEnter)

			press(t, e, backend.KeyEvent(backend.KeyCtrlF))

			if e.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %v, want %v", e.Cursor(), tt.wantCursor)
			}
			if got := e.Status().Text; got != tt.wantStatus {
				t.Errorf("status = %q, want %q", got, tt.wantStatus)
			}
		})
	}
}

func TestSearchNextMatchIsKept(t *testing.T) {
	e, term := newTestEditor(t, 80, 24, document.WithContent("ab ab ab\n"))
	term.PostString("ab")
	term.PostKeys(backend.KeyRight, backend.KeyEnter)

	press(t, e, backend.KeyEvent(backend.KeyCtrlF))

	if e.Cursor() != (document.Position{X: 3, Y: 0}) {
		t.Errorf("cursor = %v, want (3,0)", e.Cursor())
	}
}

func TestSearchPromptLiveUpdate(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24, document.WithContent("hello\nworld\n"))
	sp := &searchPrompt{}

	steps := []struct {
		ev   backend.Event
		want document.Position
	}{
		{backend.RuneEvent('l'), document.Position{X: 2, Y: 0}},
		{backend.KeyEvent(backend.KeyRight), document.Position{X: 3, Y: 0}},
		{backend.KeyEvent(backend.KeyDown), document.Position{X: 3, Y: 1}},
		{backend.KeyEvent(backend.KeyRight), document.Position{X: 3, Y: 1}},
	}
	for i, step := range steps {
		sp.OnKeystroke(e, step.ev, "l")
		if e.Cursor() != step.want {
			t.Errorf("step %d: cursor = %v, want %v", i, e.Cursor(), step.want)
		}
	}
}

func TestPromptEditing(t *testing.T) {
	e, term := newTestEditor(t, 80, 24)
	term.PostString("ab")
	term.PostKeys(backend.KeyBackspace)
	term.PostString("c")
	term.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: '\x01'})
	term.PostKeys(backend.KeyEnter)

	var seen []string
	got, err := e.prompt("Label: ", PromptFunc(func(_ *Editor, _ backend.Event, input string) {
		seen = append(seen, input)
	}))
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got != "ac" {
		t.Errorf("prompt = %q, want %q", got, "ac")
	}
	want := []string{"a", "ab", "a", "ac", "ac"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("callback inputs = %q, want %q", seen, want)
	}
	if e.Status().Text != "" {
		t.Errorf("status = %q, want cleared", e.Status().Text)
	}
}

func TestPromptShowsLabel(t *testing.T) {
	e, term := newTestEditor(t, 80, 24)
	term.PostString("x")

	_, err := e.prompt("Find: ", nil)
	if !errors.Is(err, backend.ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
	if got := strings.TrimRight(term.Line(23), " "); got != "Find: x" {
		t.Errorf("message bar = %q", got)
	}
}

func TestQuitConfirmation(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24)
	press(t, e, backend.RuneEvent('a'))

	for i, wantLeft := range []int{2, 1} {
		press(t, e, backend.KeyEvent(backend.KeyCtrlQ))
		if e.IsQuitting() {
			t.Fatalf("press %d: quit while dirty", i+1)
		}
		if e.QuitTimes() != wantLeft {
			t.Errorf("press %d: quit times = %d, want %d", i+1, e.QuitTimes(), wantLeft)
		}
		if !strings.Contains(e.Status().Text, "unsaved changes") {
			t.Errorf("press %d: status = %q", i+1, e.Status().Text)
		}
	}

	press(t, e, backend.KeyEvent(backend.KeyCtrlQ))
	if !e.IsQuitting() {
		t.Error("third press should quit")
	}
}

func TestQuitCounterNotReset(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24)
	press(t, e,
		backend.RuneEvent('a'),
		backend.KeyEvent(backend.KeyCtrlQ),
		backend.RuneEvent('b'),
		backend.KeyEvent(backend.KeyCtrlQ))

	if e.QuitTimes() != 1 {
		t.Errorf("quit times = %d, want 1", e.QuitTimes())
	}
	press(t, e, backend.KeyEvent(backend.KeyCtrlQ))
	if !e.IsQuitting() {
		t.Error("expected quit")
	}
}

func TestQuitCleanDocument(t *testing.T) {
	e, _ := newTestEditor(t, 80, 24, document.WithContent("x\n"))
	press(t, e, backend.KeyEvent(backend.KeyCtrlQ))
	if !e.IsQuitting() {
		t.Error("clean document should quit on first press")
	}
}

func TestQuitTimesFromSettings(t *testing.T) {
	settings := config.Default()
	settings.Editor.QuitTimes = 1
	e := New(backend.NewNullBackend(80, 24), nil, Config{Settings: settings})

	press(t, e, backend.RuneEvent('a'), backend.KeyEvent(backend.KeyCtrlQ))
	if !e.IsQuitting() {
		t.Error("quit times of 1 should quit on first press")
	}
}

func TestInterruptQuitsDirtyDocument(t *testing.T) {
	e, term := newTestEditor(t, 80, 24)
	term.PostString("a")
	term.PostEvent(backend.Event{Type: backend.EventInterrupt})

	if err := e.Run(); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if !e.IsQuitting() {
		t.Error("interrupt should quit")
	}
	if !e.Document().IsDirty() {
		t.Error("interrupt should not touch the document")
	}
	if e.QuitTimes() != 3 {
		t.Errorf("quit times = %d, interrupt should bypass the confirmation", e.QuitTimes())
	}
	if !strings.HasPrefix(term.Line(0), farewell) {
		t.Errorf("last frame line 0 = %q, want farewell", term.Line(0))
	}
}

func TestInterruptDuringPrompt(t *testing.T) {
	e, term := newTestEditor(t, 80, 24)
	term.PostString("a")
	term.PostKeys(backend.KeyCtrlS)
	term.PostString("out.txt")
	term.PostEvent(backend.Event{Type: backend.EventInterrupt})

	if err := e.Run(); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if e.Document().HasFileName() {
		t.Errorf("interrupted prompt should not name the file, got %q", e.Document().FileName())
	}
	if !e.IsQuitting() {
		t.Error("interrupt in a prompt should quit")
	}
}

func TestRunReturnsReadError(t *testing.T) {
	e, term := newTestEditor(t, 80, 24)
	term.PostString("a")

	err := e.Run()
	if !errors.Is(err, backend.ErrClosed) {
		t.Fatalf("Run = %v, want ErrClosed", err)
	}
	if e.IsQuitting() {
		t.Error("editor should not be quitting after a read error")
	}
}

func TestRunPromptReadError(t *testing.T) {
	e, term := newTestEditor(t, 80, 24)
	term.PostKeys(backend.KeyCtrlS)

	if err := e.Run(); !errors.Is(err, backend.ErrClosed) {
		t.Fatalf("Run = %v, want ErrClosed", err)
	}
}

func TestResizeRescrolls(t *testing.T) {
	content := strings.Repeat("line\n", 10)
	e, term := newTestEditor(t, 80, 24, document.WithContent(content))
	e.cursor = document.Position{Y: 9}
	e.scroll()
	if e.Offset().Y != 0 {
		t.Fatalf("offset = %v, want (0,0)", e.Offset())
	}

	term.PostEvent(backend.Event{Type: backend.EventResize, Width: 80, Height: 5})
	if err := e.processEvent(); err != nil {
		t.Fatalf("processEvent: %v", err)
	}
	if e.Offset().Y != 7 {
		t.Errorf("offset.Y = %d, want 7", e.Offset().Y)
	}
}
