package editor

import (
	"errors"
	"unicode"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/engine/history"
	"github.com/dshills/codepad/internal/input/key"
)

// HandleKey applies ev to the pane. The input handler gets the first look;
// anything it leaves alone gets the default editing behavior. It reports
// whether the key did anything.
func (p *Pane) HandleKey(ev key.Event) (bool, error) {
	consumed, err := p.handler.Handle(p, ev)
	if consumed || err != nil {
		p.ensureVisible()
		return consumed, err
	}
	consumed, err = p.defaultKey(ev)
	p.ensureVisible()
	return consumed, err
}

func (p *Pane) defaultKey(ev key.Event) (bool, error) {
	if ev.IsChar() {
		return true, p.InsertText(string(ev.Rune))
	}

	mods := ev.Modifiers
	extend := mods.HasShift()

	if ev.Key == key.KeyRune && mods == key.ModCtrl {
		switch ev.Rune {
		case 'z':
			return true, ignoreEmpty(p.Undo())
		case 'y':
			return true, ignoreEmpty(p.Redo())
		case 'a':
			p.SelectAll()
			return true, nil
		}
		return false, nil
	}

	switch ev.Key {
	case key.KeyEnter:
		return true, p.InsertText("\n")
	case key.KeyBackspace:
		return true, p.backspace()
	case key.KeyDelete:
		return true, p.deleteForward()
	case key.KeyLeft:
		p.moveTo(p.left(mods.HasCtrl()), extend)
	case key.KeyRight:
		p.moveTo(p.right(mods.HasCtrl()), extend)
	case key.KeyUp:
		p.moveVertical(-1, extend)
	case key.KeyDown:
		p.moveVertical(1, extend)
	case key.KeyPageUp:
		p.moveVertical(-p.viewHeight, extend)
	case key.KeyPageDown:
		p.moveVertical(p.viewHeight, extend)
	case key.KeyHome:
		if mods.HasCtrl() {
			p.moveTo(document.Position{}, extend)
		} else {
			p.moveTo(p.home(), extend)
		}
	case key.KeyEnd:
		if mods.HasCtrl() {
			p.moveTo(p.doc.End(), extend)
		} else {
			p.moveTo(document.Position{Line: p.cursor.Line, Col: p.doc.LineLen(p.cursor.Line)}, extend)
		}
	default:
		return false, nil
	}
	return true, nil
}

func (p *Pane) backspace() error {
	if deleted, err := p.DeleteSelection(); deleted || err != nil {
		return err
	}
	if p.cursor == (document.Position{}) {
		return nil
	}
	prev := p.left(false)
	if err := p.doc.Delete(prev, p.cursor); err != nil {
		return err
	}
	p.SetCursor(prev)
	return nil
}

func (p *Pane) deleteForward() error {
	if deleted, err := p.DeleteSelection(); deleted || err != nil {
		return err
	}
	if p.cursor == p.doc.End() {
		return nil
	}
	return p.doc.Delete(p.cursor, p.right(false))
}

// moveTo moves the cursor, extending the selection when extend is set.
func (p *Pane) moveTo(pos document.Position, extend bool) {
	if extend {
		if !p.selecting {
			p.anchor = p.cursor
			p.selecting = true
		}
		p.cursor = pos
	} else {
		p.cursor = pos
		p.selecting = false
	}
	p.goalCol = pos.Col
}

func (p *Pane) moveVertical(lines int, extend bool) {
	line := p.cursor.Line + lines
	switch {
	case line < 0:
		p.moveTo(document.Position{}, extend)
		return
	case line >= p.doc.LineCount():
		p.moveTo(p.doc.End(), extend)
		return
	}
	goal := p.goalCol
	p.moveTo(p.doc.Clamp(document.Position{Line: line, Col: goal}), extend)
	p.goalCol = goal
	if lines > 1 || lines < -1 {
		p.scrollTop += lines
	}
}

func (p *Pane) left(word bool) document.Position {
	c := p.cursor
	if c.Col == 0 {
		if c.Line == 0 {
			return c
		}
		return document.Position{Line: c.Line - 1, Col: p.doc.LineLen(c.Line - 1)}
	}
	if !word {
		return document.Position{Line: c.Line, Col: c.Col - 1}
	}
	runes := p.doc.LineRunes(c.Line)
	col := c.Col
	for col > 0 && !isWordRune(runes[col-1]) {
		col--
	}
	for col > 0 && isWordRune(runes[col-1]) {
		col--
	}
	return document.Position{Line: c.Line, Col: col}
}

func (p *Pane) right(word bool) document.Position {
	c := p.cursor
	runes := p.doc.LineRunes(c.Line)
	if c.Col >= len(runes) {
		if c.Line >= p.doc.LineCount()-1 {
			return c
		}
		return document.Position{Line: c.Line + 1}
	}
	if !word {
		return document.Position{Line: c.Line, Col: c.Col + 1}
	}
	col := c.Col
	for col < len(runes) && isWordRune(runes[col]) {
		col++
	}
	for col < len(runes) && !isWordRune(runes[col]) {
		col++
	}
	return document.Position{Line: c.Line, Col: col}
}

// home toggles between the first non-blank character and column 0.
func (p *Pane) home() document.Position {
	runes := p.doc.LineRunes(p.cursor.Line)
	first := 0
	for first < len(runes) && (runes[first] == ' ' || runes[first] == '\t') {
		first++
	}
	if p.cursor.Col == first {
		first = 0
	}
	return document.Position{Line: p.cursor.Line, Col: first}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ignoreEmpty drops the error for undo or redo with nothing to do.
func ignoreEmpty(err error) error {
	if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
		return nil
	}
	return err
}
