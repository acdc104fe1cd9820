package highlight

import (
	"sort"
	"strings"

	"github.com/dshills/codepad/internal/renderer/core"
)

// Theme is the style table: it maps token categories to display styles and
// carries the editor chrome colors.
type Theme struct {
	// Name is the lookup name of the theme ("dark", "light", ...).
	Name string

	// Background is the editor background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// Selection is the selection highlight color.
	Selection core.Color

	// LineHighlight is the current line highlight color.
	LineHighlight core.Color

	// GutterForeground is the line number color.
	GutterForeground core.Color

	// GutterBackground is the line number area background.
	GutterBackground core.Color

	// Styles maps categories to their styles.
	Styles map[Category]core.Style
}

// StyleFor returns the style for a category. A rule set's own tint for the
// category wins over the theme. Unknown categories fall back to the theme
// foreground.
func (t *Theme) StyleFor(c Category, rs *RuleSet) core.Style {
	if rs != nil {
		if style, ok := rs.Styles[c]; ok {
			return style
		}
	}
	if style, ok := t.Styles[c]; ok {
		return style
	}
	return core.NewStyle(t.Foreground)
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	c := *t
	c.Styles = make(map[Category]core.Style, len(t.Styles))
	for k, v := range t.Styles {
		c.Styles[k] = v
	}
	return &c
}

// DarkTheme returns the default dark palette.
func DarkTheme() *Theme {
	return &Theme{
		Name:             "dark",
		Background:       core.MustHex("#1e1e1e"),
		Foreground:       core.MustHex("#d4d4d4"),
		Selection:        core.MustHex("#264f78"),
		LineHighlight:    core.MustHex("#2b2b2b"),
		GutterForeground: core.MustHex("#858585"),
		GutterBackground: core.MustHex("#1e1e1e"),
		Styles:           darkStyles(),
	}
}

func darkStyles() map[Category]core.Style {
	purple := core.MustHex("#C586C0")
	blue := core.MustHex("#569CD6")
	lightBlue := core.MustHex("#9CDCFE")
	orange := core.MustHex("#CE9178")
	yellow := core.MustHex("#DCDCAA")
	teal := core.MustHex("#4EC9B0")
	green := core.MustHex("#B5CEA8")

	return map[Category]core.Style{
		CategoryKeyword:     core.NewStyle(purple),
		CategoryControlFlow: core.NewStyle(purple),
		CategoryOperator:    core.NewStyle(core.MustHex("#D4D4D4")).Bold(),
		CategoryString:      core.NewStyle(orange),
		CategoryComment:     core.NewStyle(core.MustHex("#6A9955")),
		CategoryNumber:      core.NewStyle(green),
		CategoryClass:       core.NewStyle(core.MustHex("#C678DD")).Bold(),
		CategoryFunction:    core.NewStyle(yellow),
		CategoryType:        core.NewStyle(blue),
		CategoryBuiltin:     core.NewStyle(blue),
		CategoryVariable:    core.NewStyle(lightBlue),
		CategorySymbol:      core.NewStyle(teal),
		CategoryConstant:    core.NewStyle(blue),
		CategoryTag:         core.NewStyle(blue),
		CategoryAttribute:   core.NewStyle(lightBlue),
		CategorySelector:    core.NewStyle(core.MustHex("#D7BA7D")),
		CategoryProperty:    core.NewStyle(lightBlue),
		CategoryValue:       core.NewStyle(orange),
		CategoryAtRule:      core.NewStyle(purple),
		CategoryKey:         core.NewStyle(lightBlue),
		CategoryCommand:     core.NewStyle(blue),
		CategoryHeading:     core.NewStyle(blue).Bold(),
		CategoryBold:        core.NewStyle(yellow).Bold(),
		CategoryItalic:      core.NewStyle(orange).Italic(),
		CategoryLink:        core.NewStyle(teal).Underline(),
		CategoryListItem:    core.NewStyle(green),
	}
}

// LightTheme returns a light palette.
func LightTheme() *Theme {
	return &Theme{
		Name:             "light",
		Background:       core.MustHex("#ffffff"),
		Foreground:       core.MustHex("#000000"),
		Selection:        core.MustHex("#add6ff"),
		LineHighlight:    core.MustHex("#f5f5f5"),
		GutterForeground: core.MustHex("#237893"),
		GutterBackground: core.MustHex("#ffffff"),
		Styles:           lightStyles(),
	}
}

func lightStyles() map[Category]core.Style {
	comment := core.ColorFromRGB(0, 128, 0)
	keyword := core.ColorFromRGB(0, 0, 255)
	str := core.ColorFromRGB(163, 21, 21)
	number := core.ColorFromRGB(9, 134, 88)
	function := core.ColorFromRGB(121, 94, 38)
	typ := core.ColorFromRGB(38, 127, 153)
	variable := core.ColorFromRGB(0, 16, 128)
	control := core.ColorFromRGB(175, 0, 219)

	return map[Category]core.Style{
		CategoryKeyword:     core.NewStyle(keyword),
		CategoryControlFlow: core.NewStyle(control),
		CategoryOperator:    core.NewStyle(core.ColorFromRGB(0, 0, 0)),
		CategoryString:      core.NewStyle(str),
		CategoryComment:     core.NewStyle(comment).Italic(),
		CategoryNumber:      core.NewStyle(number),
		CategoryClass:       core.NewStyle(typ).Bold(),
		CategoryFunction:    core.NewStyle(function),
		CategoryType:        core.NewStyle(typ),
		CategoryBuiltin:     core.NewStyle(keyword),
		CategoryVariable:    core.NewStyle(variable),
		CategorySymbol:      core.NewStyle(typ),
		CategoryConstant:    core.NewStyle(keyword),
		CategoryTag:         core.NewStyle(core.ColorFromRGB(128, 0, 0)),
		CategoryAttribute:   core.NewStyle(core.ColorFromRGB(229, 0, 0)),
		CategorySelector:    core.NewStyle(core.ColorFromRGB(128, 0, 0)),
		CategoryProperty:    core.NewStyle(core.ColorFromRGB(229, 0, 0)),
		CategoryValue:       core.NewStyle(keyword),
		CategoryAtRule:      core.NewStyle(control),
		CategoryKey:         core.NewStyle(core.ColorFromRGB(4, 81, 165)),
		CategoryCommand:     core.NewStyle(function),
		CategoryHeading:     core.NewStyle(keyword).Bold(),
		CategoryBold:        core.DefaultStyle().Bold(),
		CategoryItalic:      core.DefaultStyle().Italic(),
		CategoryLink:        core.NewStyle(typ).Underline(),
		CategoryListItem:    core.NewStyle(number),
	}
}

// ThemeRegistry holds available themes by lowercase name.
type ThemeRegistry struct {
	themes map[string]*Theme
}

// NewThemeRegistry creates a registry with the built-in themes.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{themes: make(map[string]*Theme)}
	r.Register(DarkTheme())
	r.Register(LightTheme())
	return r
}

// Register adds or replaces a theme.
func (r *ThemeRegistry) Register(theme *Theme) {
	r.themes[strings.ToLower(theme.Name)] = theme
}

// Get returns a theme by name, case-insensitively.
func (r *ThemeRegistry) Get(name string) (*Theme, bool) {
	t, ok := r.themes[strings.ToLower(name)]
	return t, ok
}

// Names returns all registered theme names, sorted.
func (r *ThemeRegistry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
