package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

var runeNames = map[string]rune{
	"space": ' ',
	"plus":  '+',
	"minus": '-',
}

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space", "F3"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P", "Shift+Tab"
//
// The result is normalized, so "Ctrl+s" and "ctrl+S" parse to the same event.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	parts := []string{spec}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		parts = strings.Split(spec, "+")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	ev, err := parseKey(parts[len(parts)-1], mods)
	if err != nil {
		return Event{}, err
	}
	return ev.Normalize(), nil
}

func parseKey(name string, mods Modifier) (Event, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	runes := []rune(trimmed)
	if len(runes) == 1 {
		r := runes[0]
		if !unicode.IsPrint(r) {
			return Event{}, fmt.Errorf("%w: unprintable key %q", ErrInvalidSpec, r)
		}
		return NewRuneEvent(r, mods), nil
	}

	lower := strings.ToLower(trimmed)
	if r, ok := runeNames[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, trimmed)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.String(), nil
}
