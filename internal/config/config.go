package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/typotamer/internal/config/loader"
	"github.com/dshills/typotamer/internal/logging"
	"github.com/dshills/typotamer/internal/renderer/core"
)

// Defaults.
const (
	DefaultQuitTimes      = 3
	DefaultMessageTimeout = 5 * time.Second
	DefaultEnvPrefix      = "TYPOTAMER_"
)

// Settings holds every resolved runtime setting.
type Settings struct {
	Editor  EditorSettings
	UI      UISettings
	Logging LoggingSettings

	// Source is the settings file that was read, or "" if none was.
	Source string
}

// EditorSettings configures editing behavior.
type EditorSettings struct {
	// QuitTimes is the number of Ctrl-Q presses required to quit while the
	// document has unsaved changes.
	QuitTimes int
	// MessageTimeout is how long a status message stays on screen.
	MessageTimeout time.Duration
}

// UISettings configures colors.
type UISettings struct {
	StatusForeground core.Color
	StatusBackground core.Color
}

// LoggingSettings configures the log file.
type LoggingSettings struct {
	Level string
	File  string
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Editor: EditorSettings{
			QuitTimes:      DefaultQuitTimes,
			MessageTimeout: DefaultMessageTimeout,
		},
		UI: UISettings{
			StatusForeground: core.ColorFromRGB(63, 63, 63),
			StatusBackground: core.ColorFromRGB(239, 239, 0),
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// options collects Load options.
type options struct {
	path          string
	fs            loader.FileSystem
	env           loader.Loader
	userConfigDir func() (string, error)
}

// Option configures Load.
type Option func(*options)

// WithPath names the settings file explicitly. The file must exist.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFileSystem sets the file system settings files are read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnvLoader replaces the environment layer. Pass nil to skip it.
func WithEnvLoader(l loader.Loader) Option {
	return func(o *options) {
		o.env = l
	}
}

// WithUserConfigDir overrides how the default settings directory is found.
func WithUserConfigDir(fn func() (string, error)) Option {
	return func(o *options) {
		o.userConfigDir = fn
	}
}

// DefaultPath returns <user config dir>/typotamer/config.toml.
func DefaultPath(userConfigDir func() (string, error)) (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "typotamer", "config.toml"), nil
}

// Load resolves settings from defaults, the settings file and the
// environment.
func Load(opts ...Option) (*Settings, error) {
	o := options{
		fs:            loader.DefaultFS(),
		env:           loader.NewEnvLoader(DefaultEnvPrefix),
		userConfigDir: os.UserConfigDir,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var envValues map[string]any
	if o.env != nil {
		var err error
		if envValues, err = o.env.Load(); err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
	}

	path, required := o.path, o.path != ""
	if !required {
		if v, ok := loader.GetByPath(envValues, "paths.config"); ok {
			if s, ok := v.(string); ok && s != "" {
				path, required = s, true
			}
		}
	}
	if !required {
		// No usable config dir just means no default file.
		path, _ = DefaultPath(o.userConfigDir)
	}

	var fileValues map[string]any
	source := ""
	if path != "" {
		var err error
		fileValues, err = loader.ForPath(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		if fileValues == nil && required {
			if _, statErr := o.fs.ReadFile(path); errors.Is(statErr, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
		}
		if fileValues != nil {
			source = path
		}
	}

	merged := loader.DeepMerge(fileValues, envValues)
	s := Default()
	if err := s.apply(merged); err != nil {
		return nil, err
	}
	s.Source = source
	return s, nil
}

// apply overlays values onto s and validates them.
func (s *Settings) apply(values map[string]any) error {
	if v, ok := loader.GetByPath(values, "editor.quitTimes"); ok {
		n, err := toInt(v)
		if err != nil {
			return &SettingError{Path: "editor.quitTimes", Value: v, Err: err}
		}
		if n < 1 {
			return &SettingError{Path: "editor.quitTimes", Value: v, Err: ErrValidationFailed}
		}
		s.Editor.QuitTimes = n
	}

	if v, ok := loader.GetByPath(values, "editor.messageTimeout"); ok {
		d, err := toDuration(v)
		if err != nil {
			return &SettingError{Path: "editor.messageTimeout", Value: v, Err: err}
		}
		if d <= 0 {
			return &SettingError{Path: "editor.messageTimeout", Value: v, Err: ErrValidationFailed}
		}
		s.Editor.MessageTimeout = d
	}

	colors := []struct {
		path string
		dst  *core.Color
	}{
		{"ui.statusForeground", &s.UI.StatusForeground},
		{"ui.statusBackground", &s.UI.StatusBackground},
	}
	for _, c := range colors {
		v, ok := loader.GetByPath(values, c.path)
		if !ok {
			continue
		}
		hex, isString := v.(string)
		if !isString {
			// Unquoted digits in a file arrive as numbers.
			return &SettingError{Path: c.path, Value: v, Err: ErrTypeMismatch}
		}
		color, err := core.ColorFromHex(hex)
		if err != nil {
			return &SettingError{Path: c.path, Value: v, Err: errors.Join(ErrValidationFailed, err)}
		}
		*c.dst = color
	}

	if v, ok := loader.GetByPath(values, "logging.level"); ok {
		level := toString(v)
		if !logging.ValidLevel(level) {
			return &SettingError{Path: "logging.level", Value: v, Err: ErrValidationFailed}
		}
		s.Logging.Level = level
	}

	if v, ok := loader.GetByPath(values, "logging.file"); ok {
		s.Logging.File = toString(v)
	}

	return nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, ErrTypeMismatch
		}
		return int(n), nil
	default:
		return 0, ErrTypeMismatch
	}
}

func toDuration(v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, errors.Join(ErrTypeMismatch, err)
		}
		return parsed, nil
	default:
		// Bare numbers are seconds.
		n, err := toInt(v)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * time.Second, nil
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
