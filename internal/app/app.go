// Package app wires settings, logging, the document and the terminal into
// a running editor and owns the terminal for the lifetime of the session.
package app

import (
	"io"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/typotamer/internal/config"
	"github.com/dshills/typotamer/internal/document"
	"github.com/dshills/typotamer/internal/editor"
	"github.com/dshills/typotamer/internal/logging"
	"github.com/dshills/typotamer/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// Path is the file to open. Empty starts with an empty document.
	Path string

	// ConfigPath is the path to the settings file.
	ConfigPath string

	// LogFile and LogLevel override the logging settings when set.
	LogFile  string
	LogLevel string

	// Version is shown in the welcome banner.
	Version string

	// FileSystem is used for the edited document. Defaults to the OS.
	FileSystem document.FileSystem

	// ConfigOptions are passed to config.Load after the path option.
	ConfigOptions []config.Option
}

// Application is one editing session.
type Application struct {
	opts     Options
	settings *config.Settings
	logger   *logging.Logger
	logFile  io.Closer
	doc      *document.Document
	status   string

	running atomic.Bool
}

// New resolves settings, opens the log file and loads the document.
// A document that cannot be opened is not an error: the session starts
// empty with an error status instead.
func New(opts Options) (*Application, error) {
	if opts.FileSystem == nil {
		opts.FileSystem = document.DefaultFS()
	}
	app := &Application{opts: opts, logger: logging.NullLogger}

	if err := app.loadSettings(); err != nil {
		return nil, err
	}
	if err := app.openLog(); err != nil {
		return nil, err
	}
	app.openDocument()
	return app, nil
}

func (app *Application) loadSettings() error {
	var configOpts []config.Option
	if app.opts.ConfigPath != "" {
		configOpts = append(configOpts, config.WithPath(app.opts.ConfigPath))
	}
	configOpts = append(configOpts, app.opts.ConfigOptions...)

	settings, err := config.Load(configOpts...)
	if err != nil {
		return NewComponentError("config", "load", err)
	}
	if app.opts.LogLevel != "" {
		settings.Logging.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		settings.Logging.File = app.opts.LogFile
	}
	app.settings = settings
	return nil
}

// openLog starts file logging when a log file is configured. The terminal
// belongs to the editor, so nothing is ever logged to stderr.
func (app *Application) openLog() error {
	if app.settings.Logging.File == "" {
		return nil
	}
	f, err := logging.OpenFile(app.settings.Logging.File)
	if err != nil {
		return NewComponentError("logging", "open "+app.settings.Logging.File, err)
	}
	app.logFile = f

	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(app.settings.Logging.Level)
	cfg.Output = f
	app.logger = logging.New(cfg).WithField("session", uuid.NewString())
	app.logger.Info("starting version=%s settings=%q", app.opts.Version, app.settings.Source)
	return nil
}

func (app *Application) openDocument() {
	fsOpt := document.WithFileSystem(app.opts.FileSystem)
	if app.opts.Path == "" {
		app.doc = document.New(fsOpt)
		return
	}

	doc, err := document.Open(app.opts.Path, fsOpt)
	if err != nil {
		app.logger.Warn("%v", err)
		app.doc = document.New(fsOpt)
		app.status = "ERR: Could not open file: " + app.opts.Path
		return
	}
	app.logger.Info("opened %s (%d lines)", app.opts.Path, doc.Len())
	app.doc = doc
}

// Run takes over term and edits the document until the user quits.
// The terminal is restored on every exit path, including a panic in the
// editor, which is returned as a RecoveredPanicError.
func (app *Application) Run(term backend.Backend) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := term.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer term.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			perr := NewRecoveredPanicError(r, string(debug.Stack()))
			app.logger.Error("%v", perr)
			err = perr
		}
	}()

	ed := editor.New(term, app.doc, editor.Config{
		Settings:      app.settings,
		Logger:        app.logger,
		InitialStatus: app.status,
		Version:       app.opts.Version,
	})
	if err := ed.Run(); err != nil {
		return NewComponentError("editor", "run", err)
	}
	return nil
}

// Close releases the log file.
func (app *Application) Close() error {
	if app.logFile == nil {
		return nil
	}
	app.logger.Info("exiting")
	err := app.logFile.Close()
	app.logFile = nil
	return err
}

// Settings returns the resolved settings.
func (app *Application) Settings() *config.Settings {
	return app.settings
}

// Document returns the document being edited.
func (app *Application) Document() *document.Document {
	return app.doc
}

// InitialStatus returns the status message the editor starts with, or ""
// for the default help text.
func (app *Application) InitialStatus() string {
	return app.status
}
