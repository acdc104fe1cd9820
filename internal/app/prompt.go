package app

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/codepad/internal/input/key"
	"github.com/dshills/codepad/internal/renderer/backend"
	"github.com/dshills/codepad/internal/workspace"
)

// prompt reads a line of text on the status line. It runs its own small
// event loop: resize and file events are still handled while it waits.
// ok is false when the user pressed Escape.
func (app *Application) prompt(label, initial string) (text string, ok bool) {
	input := []rune(initial)
	defer func() {
		app.status.Prompt = ""
		app.status.Input = ""
	}()

	for {
		app.status.Prompt = label
		app.status.Input = string(input)
		app.render()

		ev := app.backend.PollEvent()
		switch ev.Type {
		case backend.EventResize:
			app.handleResize(ev)
			continue
		case backend.EventInterrupt:
			if app.handleInterrupt(ev) != nil {
				// Leave the quit request for the main loop.
				app.backend.PostEvent(ev)
				return "", false
			}
			continue
		case backend.EventKey:
		default:
			continue
		}

		k := ev.Key
		switch {
		case k.IsPlain(key.KeyEnter):
			return strings.TrimSpace(string(input)), true
		case k.IsPlain(key.KeyEscape):
			return "", false
		case k.Key == key.KeyBackspace:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case k.Matches("Ctrl+U"):
			input = input[:0]
		case k.IsChar():
			input = append(input, k.Rune)
		}
	}
}

// choose asks a question answered by a single key. Escape picks cancel.
func (app *Application) choose(question string, answers map[rune]workspace.Choice) workspace.Choice {
	defer func() { app.status.Prompt = "" }()

	for {
		app.status.Prompt = question + " "
		app.render()

		ev := app.backend.PollEvent()
		switch ev.Type {
		case backend.EventResize:
			app.handleResize(ev)
		case backend.EventInterrupt:
			if app.handleInterrupt(ev) != nil {
				app.backend.PostEvent(ev)
				return workspace.ChoiceCancel
			}
		case backend.EventKey:
			if ev.Key.IsPlain(key.KeyEscape) {
				return workspace.ChoiceCancel
			}
			if ev.Key.IsChar() {
				if c, ok := answers[unicode.ToLower(ev.Key.Rune)]; ok {
					return c
				}
			}
			app.backend.Beep()
		}
	}
}

// confirm asks a yes/no question.
func (app *Application) confirm(question string) bool {
	return app.choose(question, map[rune]workspace.Choice{
		'y': workspace.ChoiceSave,
		'n': workspace.ChoiceCancel,
	}) == workspace.ChoiceSave
}

// statusPrompter answers workspace questions from the status line.
type statusPrompter struct {
	app *Application
}

func (app *Application) prompter() workspace.Prompter {
	return statusPrompter{app: app}
}

// ConfirmClose implements workspace.Prompter.
func (p statusPrompter) ConfirmClose(name string) workspace.Choice {
	return p.app.choose(fmt.Sprintf("Save changes to %s? (y)es (n)o (c)ancel", name), map[rune]workspace.Choice{
		'y': workspace.ChoiceSave,
		'n': workspace.ChoiceDiscard,
		'c': workspace.ChoiceCancel,
	})
}

// SavePath implements workspace.Prompter.
func (p statusPrompter) SavePath(suggested string) (string, bool) {
	return p.app.prompt("Save as: ", suggested)
}
