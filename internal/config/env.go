package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix starts every environment variable codepad reads.
const EnvPrefix = "CODEPAD_"

// envMapping lists the environment variables and the settings they set.
var envMapping = []struct {
	name string
	set  func(c *Config, v string) error
}{
	{"CODEPAD_LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{"CODEPAD_LOG_FILE", func(c *Config, v string) error { c.Logging.File = v; return nil }},
	{"CODEPAD_THEME", func(c *Config, v string) error { c.UI.Theme = v; return nil }},
	{"CODEPAD_LANGUAGES", func(c *Config, v string) error { c.Languages.File = v; return nil }},
	{"CODEPAD_INDENT_WIDTH", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Editor.IndentWidth = n
		return nil
	}},
}

// EnvVars returns the names of the environment variables ApplyEnv reads.
func EnvVars() []string {
	names := make([]string, len(envMapping))
	for i, m := range envMapping {
		names[i] = m.name
	}
	return names
}

// ApplyEnv overrides settings from environment variables found by lookup,
// normally os.LookupEnv. Empty values are ignored.
func ApplyEnv(c *Config, lookup func(string) (string, bool)) error {
	for _, m := range envMapping {
		v, ok := lookup(m.name)
		if !ok || v == "" {
			continue
		}
		if err := m.set(c, v); err != nil {
			return fmt.Errorf("environment %s=%q: %w", m.name, v, err)
		}
	}
	return nil
}
