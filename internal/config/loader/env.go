package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "TYPOTAMER_")
	mapping map[string]string // Env var -> config path

	// textPaths are config paths whose values are kept verbatim. A color
	// such as 000000 must not become the integer 0.
	textPaths map[string]bool
	environ   func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "TYPOTAMER_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:    prefix,
		mapping:   defaultEnvMapping(prefix),
		textPaths: defaultTextPaths(),
		environ:   os.Environ,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "QUIT_TIMES":      "editor.quitTimes",
		prefix + "MESSAGE_TIMEOUT": "editor.messageTimeout",
		prefix + "STATUS_FG":       "ui.statusForeground",
		prefix + "STATUS_BG":       "ui.statusBackground",
		prefix + "LOG_LEVEL":       "logging.level",
		prefix + "LOG_FILE":        "logging.file",
		prefix + "CONFIG":          "paths.config",
	}
}

func defaultTextPaths() map[string]bool {
	return map[string]bool{
		"ui.statusForeground": true,
		"ui.statusBackground": true,
		"logging.level":       true,
		"logging.file":        true,
		"paths.config":        true,
	}
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			// TYPOTAMER_EDITOR_QUIT_TIMES becomes editor.quitTimes
			path = l.envToPath(name)
		}
		if l.textPaths[path] {
			setByPath(config, path, value)
			continue
		}
		setByPath(config, path, l.parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts PREFIX_EDITOR_QUIT_TIMES to editor.quitTimes.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)

	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return strings.ToLower(name)
	}

	// First part is the section, the rest form a camelCase setting name.
	settingName := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			settingName += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}

	return strings.ToLower(parts[0]) + "." + settingName
}

// parseValue attempts to parse the string value into an appropriate type.
func (l *EnvLoader) parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only try float if it contains a decimal point to avoid misinterpreting ints
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	return s
}
