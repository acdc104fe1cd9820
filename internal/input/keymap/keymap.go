package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/codepad/internal/input/key"
)

// ErrUnknownAction is returned when binding a key to an action no part of the
// editor handles.
var ErrUnknownAction = errors.New("unknown action")

// Binding is one key-to-action mapping, as listed by Bindings.
type Binding struct {
	// Keys is the canonical key specification, e.g. "Ctrl+S".
	Keys string

	// Action is the command to execute, e.g. "file.save".
	Action string

	// Description provides documentation for the binding.
	Description string
}

// Keymap holds key bindings. The zero value is not usable; call New or Default.
type Keymap struct {
	bindings map[key.Event]string
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[key.Event]string)}
}

// Bind maps the key specification to action, replacing whatever the key was
// bound to before.
func (k *Keymap) Bind(spec, action string) error {
	if _, ok := actions[action]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	ev, err := key.Parse(spec)
	if err != nil {
		return err
	}
	k.bindings[ev] = action
	return nil
}

// Unbind removes every binding of action.
func (k *Keymap) Unbind(action string) {
	for ev, a := range k.bindings {
		if a == action {
			delete(k.bindings, ev)
		}
	}
}

// Lookup returns the action bound to ev.
func (k *Keymap) Lookup(ev key.Event) (string, bool) {
	action, ok := k.bindings[ev.Normalize()]
	return action, ok
}

// KeysFor returns the canonical specifications bound to action, sorted.
func (k *Keymap) KeysFor(action string) []string {
	var keys []string
	for ev, a := range k.bindings {
		if a == action {
			keys = append(keys, ev.String())
		}
	}
	sort.Strings(keys)
	return keys
}

// Apply rebinds actions from a configuration map of action to key
// specifications. Several keys may be given separated by commas; an empty
// value unbinds the action. Entries that fail are reported together and the
// rest still apply.
func (k *Keymap) Apply(overrides map[string]string) error {
	names := make([]string, 0, len(overrides))
	for action := range overrides {
		names = append(names, action)
	}
	sort.Strings(names)

	var errs []error
	for _, action := range names {
		if _, ok := actions[action]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAction, action))
			continue
		}
		var parsed []key.Event
		var failed bool
		for _, spec := range strings.Split(overrides[action], ",") {
			if strings.TrimSpace(spec) == "" {
				continue
			}
			ev, err := key.Parse(spec)
			if err != nil {
				errs = append(errs, fmt.Errorf("keys.%s: %w", action, err))
				failed = true
				break
			}
			parsed = append(parsed, ev)
		}
		if failed {
			continue
		}
		k.Unbind(action)
		for _, ev := range parsed {
			k.bindings[ev] = action
		}
	}
	return errors.Join(errs...)
}

// Bindings returns every binding sorted by action, then keys.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for ev, action := range k.bindings {
		out = append(out, Binding{
			Keys:        ev.String(),
			Action:      action,
			Description: actions[action],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}

// Clone returns an independent copy.
func (k *Keymap) Clone() *Keymap {
	c := New()
	for ev, a := range k.bindings {
		c.bindings[ev] = a
	}
	return c
}
