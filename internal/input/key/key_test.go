package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEnter, "Enter"},
		{KeyPageDown, "PageDown"},
		{KeyF12, "F12"},
		{KeyRune, "Rune"},
		{Key(999), "Key(999)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"Enter", KeyEnter},
		{"return", KeyEnter},
		{"ESC", KeyEscape},
		{"pgdn", KeyPageDown},
		{"f3", KeyF3},
		{" Tab ", KeyTab},
		{"rune", KeyNone},
		{"nope", KeyNone},
	}
	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyClasses(t *testing.T) {
	if !KeyLeft.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey mismatch")
	}
	if !KeyPageUp.IsNavigationKey() || KeyEnter.IsNavigationKey() {
		t.Error("IsNavigationKey mismatch")
	}
	if !KeyF1.IsFunctionKey() || KeyRune.IsFunctionKey() {
		t.Error("IsFunctionKey mismatch")
	}
	if KeyRune.IsSpecial() || KeyNone.IsSpecial() || !KeyTab.IsSpecial() {
		t.Error("IsSpecial mismatch")
	}
}

func TestModifiers(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModShift)
	if !mod.HasCtrl() || !mod.HasShift() || mod.HasAlt() || mod.HasMeta() {
		t.Errorf("unexpected modifier set %v", mod)
	}
	if got := mod.String(); got != "Ctrl+Shift" {
		t.Errorf("String() = %q, want Ctrl+Shift", got)
	}
	if mod.Without(ModCtrl) != ModShift {
		t.Error("Without(ModCtrl) should leave Shift")
	}
	if ModifierFromName("Cmd") != ModMeta || ModifierFromName("hyper") != ModNone {
		t.Error("ModifierFromName mismatch")
	}
}
