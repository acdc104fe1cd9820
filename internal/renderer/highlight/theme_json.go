package highlight

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/codepad/internal/renderer/core"
)

// ErrInvalidTheme is returned when theme JSON cannot be parsed.
var ErrInvalidTheme = errors.New("invalid theme")

// chrome maps JSON keys to the theme's chrome color fields.
func chrome(t *Theme) []struct {
	key   string
	color *core.Color
} {
	return []struct {
		key   string
		color *core.Color
	}{
		{"background", &t.Background},
		{"foreground", &t.Foreground},
		{"selection", &t.Selection},
		{"line_highlight", &t.LineHighlight},
		{"gutter_foreground", &t.GutterForeground},
		{"gutter_background", &t.GutterBackground},
	}
}

// ParseThemeJSON reads a theme document layered on top of base. Keys that are
// absent keep the base value, so a theme file may override a single color.
//
//	{
//	  "name": "midnight",
//	  "background": "#101010",
//	  "styles": {
//	    "keyword": {"foreground": "#ff79c6", "bold": true}
//	  }
//	}
func ParseThemeJSON(data []byte, base *Theme) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidTheme)
	}
	if base == nil {
		base = DarkTheme()
	}
	t := base.Clone()

	root := gjson.ParseBytes(data)
	if name := root.Get("name"); name.Exists() {
		t.Name = name.String()
	}

	for _, f := range chrome(t) {
		v := root.Get(f.key)
		if !v.Exists() {
			continue
		}
		c, err := core.ColorFromHex(v.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTheme, f.key, err)
		}
		*f.color = c
	}

	var err error
	root.Get("styles").ForEach(func(key, value gjson.Result) bool {
		cat, ok := ParseCategory(key.String())
		if !ok || cat == CategoryNone {
			err = fmt.Errorf("%w: unknown category %q", ErrInvalidTheme, key.String())
			return false
		}
		prev, ok := t.Styles[cat]
		if !ok {
			prev = core.DefaultStyle()
		}
		var style core.Style
		style, err = parseStyle(value, prev)
		if err != nil {
			err = fmt.Errorf("%w: styles.%s: %v", ErrInvalidTheme, key.String(), err)
			return false
		}
		t.Styles[cat] = style
		return true
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func parseStyle(v gjson.Result, base core.Style) (core.Style, error) {
	style := base
	if fg := v.Get("foreground"); fg.Exists() {
		c, err := core.ColorFromHex(fg.String())
		if err != nil {
			return style, err
		}
		style.Foreground = c
	}
	if bg := v.Get("background"); bg.Exists() {
		c, err := core.ColorFromHex(bg.String())
		if err != nil {
			return style, err
		}
		style.Background = c
	}
	for _, a := range []struct {
		key  string
		attr core.Attribute
	}{
		{"bold", core.AttrBold},
		{"italic", core.AttrItalic},
		{"underline", core.AttrUnderline},
	} {
		f := v.Get(a.key)
		if !f.Exists() {
			continue
		}
		if f.Bool() {
			style.Attributes |= a.attr
		} else {
			style.Attributes &^= a.attr
		}
	}
	return style, nil
}

// ExportJSON renders the theme in the format ParseThemeJSON reads.
func (t *Theme) ExportJSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}

	set("name", t.Name)
	for _, f := range chrome(t) {
		if !f.color.IsDefault() {
			set(f.key, f.color.ToHex())
		}
	}
	for _, cat := range Categories() {
		style, ok := t.Styles[cat]
		if !ok {
			continue
		}
		prefix := "styles." + cat.String() + "."
		if !style.Foreground.IsDefault() {
			set(prefix+"foreground", style.Foreground.ToHex())
		}
		if !style.Background.IsDefault() {
			set(prefix+"background", style.Background.ToHex())
		}
		if style.Attributes.Has(core.AttrBold) {
			set(prefix+"bold", true)
		}
		if style.Attributes.Has(core.AttrItalic) {
			set(prefix+"italic", true)
		}
		if style.Attributes.Has(core.AttrUnderline) {
			set(prefix+"underline", true)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("export theme %q: %w", t.Name, err)
	}
	return out, nil
}
