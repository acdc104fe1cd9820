// Package config loads codepad's settings.
//
// Settings are read once at start-up and never written back. Sources are
// applied in order, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. The config file, TOML or YAML chosen by extension
//  3. Environment variables (CODEPAD_LOG_LEVEL, CODEPAD_THEME, ...)
//  4. Command line flags, applied by the caller
//
// A missing config file is not an error; keys the file leaves out keep
// their defaults. Unknown keys are rejected so typos do not go unnoticed.
//
// # Example
//
//	# ~/.config/codepad/config.toml
//	[editor]
//	indent_width = 2
//
//	[ui]
//	theme = "light"
//
//	[keys]
//	"file.save" = "Ctrl+S, F2"
package config
