package editor

import (
	"fmt"
	"time"

	"github.com/dshills/typotamer/internal/config"
	"github.com/dshills/typotamer/internal/document"
	"github.com/dshills/typotamer/internal/logging"
	"github.com/dshills/typotamer/internal/renderer/backend"
	"github.com/dshills/typotamer/internal/renderer/statusline"
)

// DefaultHelp is the status message shown at startup.
const DefaultHelp = "HELP: Ctrl-S = save | Ctrl-F = find | Ctrl-Q = quit"

// Config is the startup configuration of an Editor.
type Config struct {
	// Settings holds runtime settings. Defaults are used when nil.
	Settings *config.Settings
	// Logger receives diagnostics. NullLogger is used when nil.
	Logger *logging.Logger
	// InitialStatus is shown in the message bar on the first frame.
	// DefaultHelp is used when empty.
	InitialStatus string
	// Version is shown in the welcome banner.
	Version string
	// Now returns the current time. time.Now is used when nil.
	Now func() time.Time
}

// StatusMessage is the text shown in the message bar and when it was set.
type StatusMessage struct {
	Text string
	Time time.Time
}

// Editor is the editing state machine.
type Editor struct {
	term     backend.Backend
	doc      *document.Document
	settings *config.Settings
	logger   *logging.Logger
	now      func() time.Time
	version  string
	bar      *statusline.StatusLine

	cursor    document.Position // document space
	offset    document.Position // top-left visible document position
	status    StatusMessage
	quitTimes int
	quitting  bool
}

// New creates an editor for doc drawing to term.
// A nil doc starts with an empty document.
func New(term backend.Backend, doc *document.Document, cfg Config) *Editor {
	if doc == nil {
		doc = document.New()
	}
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NullLogger
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.InitialStatus == "" {
		cfg.InitialStatus = DefaultHelp
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	e := &Editor{
		term:      term,
		doc:       doc,
		settings:  cfg.Settings,
		logger:    cfg.Logger.WithComponent("editor"),
		now:       cfg.Now,
		version:   cfg.Version,
		bar:       statusline.New(cfg.Settings.UI.StatusForeground, cfg.Settings.UI.StatusBackground),
		quitTimes: cfg.Settings.Editor.QuitTimes,
	}
	e.setStatus(cfg.InitialStatus)
	return e
}

// Run renders and processes keys until the user quits.
// A terminal read error ends the loop and is returned; the caller is
// responsible for restoring the terminal.
func (e *Editor) Run() error {
	for {
		e.refreshScreen()
		if e.quitting {
			e.logger.Info("quit")
			return nil
		}
		if err := e.processEvent(); err != nil {
			e.logger.Error("fatal: %v", err)
			return err
		}
	}
}

// Document returns the edited document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Cursor returns the cursor position in document space.
func (e *Editor) Cursor() document.Position {
	return e.cursor
}

// Offset returns the viewport offset.
func (e *Editor) Offset() document.Position {
	return e.offset
}

// Status returns the current status message.
func (e *Editor) Status() StatusMessage {
	return e.status
}

// IsQuitting reports whether the editor has left the running state.
func (e *Editor) IsQuitting() bool {
	return e.quitting
}

// QuitTimes returns the remaining Ctrl-Q presses needed to quit while the
// document is dirty.
func (e *Editor) QuitTimes() int {
	return e.quitTimes
}

func (e *Editor) setStatus(text string) {
	e.status = StatusMessage{Text: text, Time: e.now()}
}

func (e *Editor) setStatusf(format string, args ...any) {
	e.setStatus(fmt.Sprintf(format, args...))
}

// textSize returns the size of the document area: the full terminal minus
// the status line.
func (e *Editor) textSize() (width, height int) {
	w, h := e.term.Size()
	return max(w, 0), max(h-statusline.Height, 0)
}
