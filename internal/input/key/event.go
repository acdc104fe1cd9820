package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character typed without
// Ctrl, Alt or Meta, i.e. something that should be inserted as text.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.IsModified()
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// since Shift changes the character itself.
func (e Event) IsModified() bool {
	if e.Key == KeyRune {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the canonical form used for keymap lookups: Shift is
// dropped from plain characters and Ctrl/Alt letters are lowercased, since
// terminals report Ctrl+S and Ctrl+s alike.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	if !e.IsModified() {
		e.Modifiers = e.Modifiers.Without(ModShift)
		return e
	}
	e.Rune = unicode.ToLower(e.Rune)
	return e
}

// String returns the specification form, e.g. "a", "Ctrl+S", "Shift+Tab".
// Parse accepts everything String produces.
func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune && e.Rune == '+':
		name = "Plus"
	case e.Key == KeyRune:
		name = string(e.Rune)
		if e.IsModified() {
			name = strings.ToUpper(name)
		}
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.Key == KeyRune && !e.IsModified() {
		mods = ModNone
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// IsPlain returns true if this is k with no modifiers.
func (e Event) IsPlain(k Key) bool {
	return e.Key == k && e.Modifiers == ModNone
}

// IsBacktab returns true for Shift+Tab.
func (e Event) IsBacktab() bool {
	return e.Key == KeyTab && e.Modifiers == ModShift
}
