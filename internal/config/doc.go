// Package config provides the runtime settings for typotamer.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← TYPOTAMER_* (highest priority)
//	├─────────────────────────────┤
//	│  2. Settings File           │  ← ~/.config/typotamer/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The settings file may be TOML or YAML, chosen by extension. A missing
// default file is ignored; a file named explicitly must exist.
//
//	settings, err := config.Load(config.WithPath("typotamer.yaml"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(settings.Editor.QuitTimes)
//
// Recognized keys:
//
//	editor.quitTimes        int       Ctrl-Q presses needed to leave a modified file (default 3)
//	editor.messageTimeout   duration  how long status messages stay visible (default 5s)
//	ui.statusForeground     color     status bar text color (default #3f3f3f)
//	ui.statusBackground     color     status bar background (default #efef00)
//	logging.level           string    debug, info, warn or error (default info)
//	logging.file            string    log file path; logging is off when empty
package config
